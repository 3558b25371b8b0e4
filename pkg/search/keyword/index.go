package keyword

import "context"

// Hit is a single match returned by the keyword engine.
type Hit struct {
	DocID   string
	Title   string
	Excerpt string
	Score   float64
}

// Filters narrows a keyword search to structured document attributes.
type Filters struct {
	EquipmentType string
	ErrorCode     string
}

// Index defines the contract for an inverted-index search backend.
type Index interface {
	// Search returns up to limit hits ordered by engine-native score.
	Search(ctx context.Context, text string, filters Filters, limit int) ([]Hit, error)

	// Index upserts documents into the backend.
	Index(ctx context.Context, docs []Document) error

	// Delete removes documents by id. Absent ids are ignored.
	Delete(ctx context.Context, ids []string) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}

// Document is a unit of knowledge stored in the keyword index.
type Document struct {
	ID            string `json:"-"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	EquipmentType string `json:"equipment_type,omitempty"`
	ErrorCode     string `json:"error_code,omitempty"`
	Category      string `json:"category,omitempty"`
}
