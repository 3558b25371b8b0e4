package vector

import "context"

// Hit is a single nearest-neighbor match from the vector store.
type Hit struct {
	DocID   string
	Title   string
	Excerpt string
	Score   float64
}

// Filters narrows similarity search to structured document attributes.
type Filters struct {
	EquipmentType string
	ErrorCode     string
}

// Index defines the contract for a nearest-neighbor vector backend. The
// caller computes the query embedding before calling QuerySimilar.
type Index interface {
	QuerySimilar(ctx context.Context, embedding []float32, filters Filters, limit int) ([]Hit, error)
	Ping(ctx context.Context) error
}
