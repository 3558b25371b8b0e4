package entity

import (
	"time"

	"github.com/google/uuid"
)

// KnowledgeEmbedding is one embedded knowledge document chunk. DocId is the
// content-hash identifier shared with the keyword index so hybrid fusion can
// deduplicate across engines.
type KnowledgeEmbedding struct {
	Id             uuid.UUID
	DocId          string
	Title          string
	Document       string
	EquipmentType  string
	ErrorCode      string
	Category       string
	EmbeddingValue []float32
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
