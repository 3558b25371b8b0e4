package contract

import (
	"context"

	"equipment-chatbot-be/internal/entity"
)

// ScoredKnowledgeEmbedding pairs an embedding row with its cosine similarity
// against the query vector.
type ScoredKnowledgeEmbedding struct {
	Embedding  *entity.KnowledgeEmbedding
	Similarity float64
}

// VectorFilters narrows similarity search to structured attributes.
type VectorFilters struct {
	EquipmentType string
	ErrorCode     string
}

type KnowledgeEmbeddingRepository interface {
	Upsert(ctx context.Context, embedding *entity.KnowledgeEmbedding) error
	DeleteByDocId(ctx context.Context, docId string) error
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, filters VectorFilters) ([]*ScoredKnowledgeEmbedding, error)
}
