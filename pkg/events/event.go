package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "TROUBLESHOOT_TURN").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the standard Event implementation.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewTurnCompleted builds the audit event published after each answered
// troubleshooting turn.
func NewTurnCompleted(sessionID, agentClass string, degraded bool, retrievalMs, completionMs int64) Event {
	return BaseEvent{
		Type: "TROUBLESHOOT_TURN",
		Data: map[string]interface{}{
			"session_id":    sessionID,
			"agent_class":   agentClass,
			"degraded":      degraded,
			"retrieval_ms":  retrievalMs,
			"completion_ms": completionMs,
		},
		OccurredAt: time.Now(),
	}
}
