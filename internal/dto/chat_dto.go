package dto

import "time"

// ChatFiltersDTO is the structured part of a troubleshooting query.
type ChatFiltersDTO struct {
	EquipmentType string  `json:"equipment_type,omitempty"`
	ErrorCode     string  `json:"error_code,omitempty"`
	SensorName    string  `json:"sensor_name,omitempty"`
	SensorValue   float64 `json:"sensor_value,omitempty"`
}

type SendChatRequest struct {
	SessionId string          `json:"session_id" validate:"required"`
	Text      string          `json:"text"`
	Filters   *ChatFiltersDTO `json:"filters,omitempty"`
}

type CitationDTO struct {
	DocId string `json:"doc_id"`
	Title string `json:"title"`
}

type LatencyDTO struct {
	RetrievalMs  int64 `json:"retrieval_ms"`
	CompletionMs int64 `json:"completion_ms"`
}

type SendChatResponse struct {
	SessionId     string        `json:"session_id"`
	Answer        string        `json:"answer"`
	AgentClass    string        `json:"agent_class"`
	Citations     []CitationDTO `json:"citations"`
	Degraded      bool          `json:"degraded"`
	FailedSources []string      `json:"failed_sources,omitempty"`
	Latency       LatencyDTO    `json:"latency"`
}

type TurnDTO struct {
	Query         string    `json:"query"`
	AgentClass    string    `json:"agent_class"`
	AnswerSummary string    `json:"answer_summary"`
	CreatedAt     time.Time `json:"created_at"`
}

type GetSessionHistoryResponse struct {
	SessionId string    `json:"session_id"`
	LastAgent string    `json:"last_agent,omitempty"`
	Turns     []TurnDTO `json:"turns"`
}
