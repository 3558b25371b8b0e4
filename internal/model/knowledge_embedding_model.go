package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocId          string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	Title          string          `gorm:"type:text"`
	Document       string          `gorm:"type:text"`
	EquipmentType  string          `gorm:"type:varchar(32);index"`
	ErrorCode      string          `gorm:"type:varchar(32);index"`
	Category       string          `gorm:"type:varchar(64)"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text emits 768 dimensions
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt  `gorm:"index"`
}

func (KnowledgeEmbedding) TableName() string {
	return "knowledge_embeddings"
}
