package session

import "time"

// Turn is one completed exchange in a conversation.
type Turn struct {
	Query         string    `json:"query"`
	AgentClass    string    `json:"agent_class"`
	AnswerSummary string    `json:"answer_summary"`
	CreatedAt     time.Time `json:"created_at"`
}

// Session is the server-side memory of a multi-turn conversation. History is
// bounded FIFO; the oldest turn is evicted first. A session is owned by one
// conversation at a time and mutated only through the Manager.
type Session struct {
	ID         string    `json:"id"`
	History    []Turn    `json:"history"`
	LastAgent  string    `json:"last_agent"`
	LastActive time.Time `json:"last_active"`
}
