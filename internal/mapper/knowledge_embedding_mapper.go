package mapper

import (
	"equipment-chatbot-be/internal/entity"
	"equipment-chatbot-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type KnowledgeEmbeddingMapper struct{}

func NewKnowledgeEmbeddingMapper() *KnowledgeEmbeddingMapper {
	return &KnowledgeEmbeddingMapper{}
}

func (m *KnowledgeEmbeddingMapper) ToModel(e *entity.KnowledgeEmbedding) *model.KnowledgeEmbedding {
	return &model.KnowledgeEmbedding{
		Id:             e.Id,
		DocId:          e.DocId,
		Title:          e.Title,
		Document:       e.Document,
		EquipmentType:  e.EquipmentType,
		ErrorCode:      e.ErrorCode,
		Category:       e.Category,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func (m *KnowledgeEmbeddingMapper) ToEntity(mdl *model.KnowledgeEmbedding) *entity.KnowledgeEmbedding {
	return &entity.KnowledgeEmbedding{
		Id:             mdl.Id,
		DocId:          mdl.DocId,
		Title:          mdl.Title,
		Document:       mdl.Document,
		EquipmentType:  mdl.EquipmentType,
		ErrorCode:      mdl.ErrorCode,
		Category:       mdl.Category,
		EmbeddingValue: mdl.EmbeddingValue.Slice(),
		CreatedAt:      mdl.CreatedAt,
		UpdatedAt:      mdl.UpdatedAt,
	}
}
