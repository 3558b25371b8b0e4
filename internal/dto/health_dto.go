package dto

type BackendStatusDTO struct {
	Name   string `json:"name"`
	Status string `json:"status"` // "ok" | "down"
	Error  string `json:"error,omitempty"`
}

type ReadinessResponse struct {
	Status   string             `json:"status"` // "ok" | "degraded" | "down"
	Degraded bool               `json:"degraded"`
	Backends []BackendStatusDTO `json:"backends"`
}
