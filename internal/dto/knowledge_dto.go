package dto

type KnowledgeDocumentDTO struct {
	Title         string `json:"title" validate:"required"`
	Content       string `json:"content" validate:"required"`
	EquipmentType string `json:"equipment_type,omitempty"`
	ErrorCode     string `json:"error_code,omitempty"`
	Category      string `json:"category,omitempty"`
}

type IngestKnowledgeRequest struct {
	Documents []KnowledgeDocumentDTO `json:"documents" validate:"required,min=1,max=100,dive"`
}

type IngestKnowledgeResponse struct {
	Queued int `json:"queued"`
}

// IndexKnowledgeMessage is the queue payload for one document awaiting
// embedding and indexing.
type IndexKnowledgeMessage struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	EquipmentType string `json:"equipment_type,omitempty"`
	ErrorCode     string `json:"error_code,omitempty"`
	Category      string `json:"category,omitempty"`
}
