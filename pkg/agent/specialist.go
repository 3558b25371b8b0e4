package agent

import (
	"context"
	"fmt"
	"log"
	"time"

	"equipment-chatbot-be/internal/constant"
	"equipment-chatbot-be/pkg/llm"
	"equipment-chatbot-be/pkg/retrieval"
	"equipment-chatbot-be/pkg/session"
)

// Config bounds the completion call and the prompt context window.
type Config struct {
	ContextCharBudget int
	HistoryTurns      int
	MaxTokens         int
	CompletionTimeout time.Duration
}

// DefaultConfig returns the default agent configuration.
func DefaultConfig() Config {
	return Config{
		ContextCharBudget: 6000,
		HistoryTurns:      5,
		MaxTokens:         2000,
		CompletionTimeout: 60 * time.Second,
	}
}

// Request is everything a specialist needs to answer one query.
type Request struct {
	Query        string
	SeverityHint string
	Retrieval    *retrieval.Result
	History      []session.Turn
}

// Citation points at a retrieved document used in an answer.
type Citation struct {
	DocID string `json:"doc_id"`
	Title string `json:"title"`
}

// Answer is the generated response plus its provenance and latency
// breakdown. It is returned to the caller and summarized into the session.
type Answer struct {
	Text             string     `json:"text"`
	Citations        []Citation `json:"citations"`
	AgentClass       Class      `json:"agent_class"`
	Degraded         bool       `json:"degraded"`
	RetrievalMillis  int64      `json:"retrieval_ms"`
	CompletionMillis int64      `json:"completion_ms"`
}

// Specialist wraps one domain's prompt-construction policy around the shared
// completion pipeline.
type Specialist struct {
	class       Class
	llmProvider llm.LLMProvider
	config      Config
	logger      *log.Logger
}

func NewSpecialist(class Class, llmProvider llm.LLMProvider, config Config, logger *log.Logger) *Specialist {
	return &Specialist{
		class:       class,
		llmProvider: llmProvider,
		config:      config,
		logger:      logger,
	}
}

func (s *Specialist) Class() Class {
	return s.class
}

// systemPrompt selects the domain framing. The variant set is closed.
func (s *Specialist) systemPrompt() string {
	switch s.class {
	case ClassElectrical:
		return constant.ElectricalAgentSystemPromptV1
	case ClassMechanical:
		return constant.MechanicalAgentSystemPromptV1
	case ClassSoftware:
		return constant.SoftwareAgentSystemPromptV1
	default:
		return constant.GeneralAgentSystemPromptV1
	}
}

// Respond builds the bounded context window, invokes the completion
// capability and returns the answer with citations. Fails with
// ErrCompletionUnavailable when the capability errors or times out; retry
// policy belongs to the orchestrator.
func (s *Specialist) Respond(ctx context.Context, req Request) (*Answer, error) {
	prompt := NewContextBuilder(
		req.Query,
		req.SeverityHint,
		req.Retrieval,
		req.History,
		s.config.ContextCharBudget,
		s.config.HistoryTurns,
	).Build()

	history := []llm.Message{
		{Role: "system", Content: s.systemPrompt()},
		{Role: "user", Content: prompt},
	}

	cctx, cancel := context.WithTimeout(ctx, s.config.CompletionTimeout)
	defer cancel()

	start := time.Now()
	text, err := s.llmProvider.Chat(cctx, history, llm.WithMaxTokens(s.config.MaxTokens))
	elapsed := time.Since(start)
	if err != nil {
		s.logger.Printf("[ERROR] %s agent completion failed after %s: %v", s.class, elapsed, err)
		return nil, fmt.Errorf("%w: %v", ErrCompletionUnavailable, err)
	}

	answer := &Answer{
		Text:             text,
		AgentClass:       s.class,
		CompletionMillis: elapsed.Milliseconds(),
	}
	if req.Retrieval != nil {
		answer.Degraded = req.Retrieval.Degraded
		for _, doc := range req.Retrieval.Documents {
			answer.Citations = append(answer.Citations, Citation{DocID: doc.ID, Title: doc.Title})
		}
	}

	return answer, nil
}

// Registry holds the closed set of specialists.
type Registry struct {
	electrical *Specialist
	mechanical *Specialist
	software   *Specialist
	general    *Specialist
}

func NewRegistry(llmProvider llm.LLMProvider, config Config, logger *log.Logger) *Registry {
	return &Registry{
		electrical: NewSpecialist(ClassElectrical, llmProvider, config, logger),
		mechanical: NewSpecialist(ClassMechanical, llmProvider, config, logger),
		software:   NewSpecialist(ClassSoftware, llmProvider, config, logger),
		general:    NewSpecialist(ClassGeneral, llmProvider, config, logger),
	}
}

// For dispatches by explicit match on the class tag.
func (r *Registry) For(class Class) *Specialist {
	switch class {
	case ClassElectrical:
		return r.electrical
	case ClassMechanical:
		return r.mechanical
	case ClassSoftware:
		return r.software
	default:
		return r.general
	}
}
