package service

import (
	"context"
	"errors"
	"time"

	"equipment-chatbot-be/internal/constant"
	"equipment-chatbot-be/internal/dto"
	"equipment-chatbot-be/internal/pkg/logger"
	"equipment-chatbot-be/pkg/agent"
	"equipment-chatbot-be/pkg/events"
	pkgNats "equipment-chatbot-be/pkg/nats"
	"equipment-chatbot-be/pkg/retrieval"
	"equipment-chatbot-be/pkg/session"
)

const answerSummaryLimit = 240

type IChatService interface {
	SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetSessionHistory(ctx context.Context, sessionId string) (*dto.GetSessionHistoryResponse, error)
	ResetSession(ctx context.Context, sessionId string) error
}

// chatService drives one troubleshooting turn through its fixed stages:
// load session, classify, retrieve, answer, persist. Stages before the
// answer fail the request with a typed error; everything after the answer
// is best-effort so a produced answer is never discarded.
type chatService struct {
	retriever      *retrieval.Retriever
	router         *agent.Router
	agents         *agent.Registry
	sessions       *session.Manager
	eventPublisher *pkgNats.Publisher
	sysLogger      logger.ILogger
	retryBackoff   time.Duration
}

func NewChatService(
	retriever *retrieval.Retriever,
	router *agent.Router,
	agents *agent.Registry,
	sessions *session.Manager,
	eventPublisher *pkgNats.Publisher,
	sysLogger logger.ILogger,
) IChatService {
	return &chatService{
		retriever:      retriever,
		router:         router,
		agents:         agents,
		sessions:       sessions,
		eventPublisher: eventPublisher,
		sysLogger:      sysLogger,
		retryBackoff:   500 * time.Millisecond,
	}
}

func (s *chatService) SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	filters := toRetrievalFilters(req.Filters)

	s.sysLogger.Info("CHAT_SERVICE", "Turn received", map[string]interface{}{
		"session_id": req.SessionId,
		"query_len":  len(req.Text),
	})

	sess := s.sessions.Load(ctx, req.SessionId)

	class := s.router.Classify(req.Text, filters)
	s.sysLogger.Info("CHAT_SERVICE", "Query classified", map[string]interface{}{
		"session_id":  req.SessionId,
		"agent_class": string(class),
		"last_agent":  sess.LastAgent,
	})

	retrievalStart := time.Now()
	result, err := s.retriever.Retrieve(ctx, req.Text, filters, 0)
	if err != nil {
		s.sysLogger.Error("CHAT_SERVICE", "Retrieval failed", map[string]interface{}{
			"session_id": req.SessionId,
			"error":      err.Error(),
		})
		return nil, err
	}
	retrievalMillis := time.Since(retrievalStart).Milliseconds()

	severityHint := ""
	if req.Filters != nil && req.Filters.SensorName != "" {
		severityHint = constant.AssessSensorReading(
			req.Filters.EquipmentType, req.Filters.SensorName, req.Filters.SensorValue)
	}

	answer, err := s.respondWithRetry(ctx, class, agent.Request{
		Query:        req.Text,
		SeverityHint: severityHint,
		Retrieval:    result,
		History:      sess.History,
	})
	if err != nil {
		return nil, err
	}
	answer.RetrievalMillis = retrievalMillis

	s.sysLogger.Info("CHAT_SERVICE", "Turn answered", map[string]interface{}{
		"session_id":    req.SessionId,
		"agent_class":   string(answer.AgentClass),
		"degraded":      answer.Degraded,
		"retrieval_ms":  answer.RetrievalMillis,
		"completion_ms": answer.CompletionMillis,
	})

	// History persistence never fails an answered turn. The response goes
	// out; a store outage only costs continuity on the next turn.
	turn := session.Turn{
		Query:         req.Text,
		AgentClass:    string(answer.AgentClass),
		AnswerSummary: agent.Summarize(answer.Text, answerSummaryLimit),
		CreatedAt:     time.Now(),
	}
	if err := s.sessions.Append(ctx, req.SessionId, turn); err != nil {
		s.sysLogger.Warn("CHAT_SERVICE", "Session persist failed, turn not recorded", map[string]interface{}{
			"session_id": req.SessionId,
			"error":      err.Error(),
		})
	}

	s.publishTurnEvent(ctx, req.SessionId, answer)

	return toSendChatResponse(req.SessionId, result, answer), nil
}

// respondWithRetry dispatches to the specialist and retries a failed
// completion exactly once after a short backoff.
func (s *chatService) respondWithRetry(ctx context.Context, class agent.Class, req agent.Request) (*agent.Answer, error) {
	specialist := s.agents.For(class)

	answer, err := specialist.Respond(ctx, req)
	if err == nil {
		return answer, nil
	}
	if !errors.Is(err, agent.ErrCompletionUnavailable) || ctx.Err() != nil {
		return nil, err
	}

	s.sysLogger.Warn("CHAT_SERVICE", "Completion failed, retrying once", map[string]interface{}{
		"agent_class": string(class),
		"error":       err.Error(),
	})

	select {
	case <-ctx.Done():
		return nil, err
	case <-time.After(s.retryBackoff):
	}

	return specialist.Respond(ctx, req)
}

func (s *chatService) publishTurnEvent(ctx context.Context, sessionId string, answer *agent.Answer) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.NewTurnCompleted(sessionId, string(answer.AgentClass), answer.Degraded,
		answer.RetrievalMillis, answer.CompletionMillis)
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.sysLogger.Warn("CHAT_SERVICE", "Turn event publish failed", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}
}

func (s *chatService) GetSessionHistory(ctx context.Context, sessionId string) (*dto.GetSessionHistoryResponse, error) {
	sess := s.sessions.Load(ctx, sessionId)

	// Reading an ongoing conversation counts as activity: refresh the TTL
	// so the history outlives an operator who pauses between turns.
	if err := s.sessions.Touch(ctx, sessionId); err != nil {
		s.sysLogger.Warn("CHAT_SERVICE", "Session TTL refresh failed", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}

	turns := make([]dto.TurnDTO, 0, len(sess.History))
	for _, turn := range sess.History {
		turns = append(turns, dto.TurnDTO{
			Query:         turn.Query,
			AgentClass:    turn.AgentClass,
			AnswerSummary: turn.AnswerSummary,
			CreatedAt:     turn.CreatedAt,
		})
	}

	return &dto.GetSessionHistoryResponse{
		SessionId: sessionId,
		LastAgent: sess.LastAgent,
		Turns:     turns,
	}, nil
}

func (s *chatService) ResetSession(ctx context.Context, sessionId string) error {
	if err := s.sessions.Reset(ctx, sessionId); err != nil {
		s.sysLogger.Error("CHAT_SERVICE", "Session reset failed", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return err
	}
	return nil
}

func toRetrievalFilters(f *dto.ChatFiltersDTO) retrieval.Filters {
	if f == nil {
		return retrieval.Filters{}
	}
	return retrieval.Filters{
		EquipmentType: f.EquipmentType,
		ErrorCode:     f.ErrorCode,
		SensorName:    f.SensorName,
		SensorValue:   f.SensorValue,
	}
}

func toSendChatResponse(sessionId string, result *retrieval.Result, answer *agent.Answer) *dto.SendChatResponse {
	citations := make([]dto.CitationDTO, 0, len(answer.Citations))
	for _, c := range answer.Citations {
		citations = append(citations, dto.CitationDTO{DocId: c.DocID, Title: c.Title})
	}

	return &dto.SendChatResponse{
		SessionId:     sessionId,
		Answer:        answer.Text,
		AgentClass:    string(answer.AgentClass),
		Citations:     citations,
		Degraded:      answer.Degraded,
		FailedSources: result.FailedSources,
		Latency: dto.LatencyDTO{
			RetrievalMs:  answer.RetrievalMillis,
			CompletionMs: answer.CompletionMillis,
		},
	}
}
