package agent

import "errors"

// ErrCompletionUnavailable is returned when the completion capability errors
// or times out. Retry policy belongs to the orchestrator, not the agent.
var ErrCompletionUnavailable = errors.New("completion unavailable")
