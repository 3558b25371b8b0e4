package vector

import (
	"context"

	"equipment-chatbot-be/internal/repository/contract"

	"gorm.io/gorm"
)

// PgVectorIndex implements Index on top of the knowledge_embeddings table.
type PgVectorIndex struct {
	repo contract.KnowledgeEmbeddingRepository
	db   *gorm.DB
}

var _ Index = &PgVectorIndex{}

func NewPgVectorIndex(repo contract.KnowledgeEmbeddingRepository, db *gorm.DB) *PgVectorIndex {
	return &PgVectorIndex{repo: repo, db: db}
}

func (p *PgVectorIndex) QuerySimilar(ctx context.Context, embedding []float32, filters Filters, limit int) ([]Hit, error) {
	scored, err := p.repo.SearchSimilarWithScore(ctx, embedding, limit, contract.VectorFilters{
		EquipmentType: filters.EquipmentType,
		ErrorCode:     filters.ErrorCode,
	})
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(scored))
	for _, s := range scored {
		hits = append(hits, Hit{
			DocID:   s.Embedding.DocId,
			Title:   s.Embedding.Title,
			Excerpt: truncateExcerpt(s.Embedding.Document, excerptRuneLimit),
			Score:   s.Similarity,
		})
	}
	return hits, nil
}

const excerptRuneLimit = 300

// truncateExcerpt cuts on a rune boundary. Document content carries
// multi-byte units (°C, μm) and a byte slice could split one in half.
func truncateExcerpt(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func (p *PgVectorIndex) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
