package retrieval

import "time"

// Origin identifies which engine produced a document.
type Origin string

const (
	OriginKeyword Origin = "keyword"
	OriginVector  Origin = "vector"
	OriginBoth    Origin = "both"
)

// Source names used in Result.FailedSources.
const (
	SourceKeyword = "keyword"
	SourceVector  = "vector"
)

// Filters carries the structured part of a troubleshooting query.
type Filters struct {
	EquipmentType string  `json:"equipment_type,omitempty"`
	ErrorCode     string  `json:"error_code,omitempty"`
	SensorName    string  `json:"sensor_name,omitempty"`
	SensorValue   float64 `json:"sensor_value,omitempty"`
}

// Document is a retrieved knowledge excerpt after fusion. Immutable once
// produced.
type Document struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Excerpt      string  `json:"excerpt"`
	Origin       Origin  `json:"origin"`
	KeywordScore float64 `json:"keyword_score"`
	VectorScore  float64 `json:"vector_score"`
	FusedScore   float64 `json:"fused_score"`
}

// Result is the ordered outcome of one hybrid retrieval. Documents are
// deduplicated by ID and sorted by fused score descending, ties broken by ID.
type Result struct {
	Fingerprint   string        `json:"fingerprint"`
	Documents     []Document    `json:"documents"`
	Degraded      bool          `json:"degraded"`
	FailedSources []string      `json:"failed_sources,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	TTL           time.Duration `json:"ttl"`
}

// Fresh reports whether the result is still within its TTL window.
func (r *Result) Fresh(now time.Time) bool {
	return now.Before(r.CreatedAt.Add(r.TTL))
}
