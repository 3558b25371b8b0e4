package service

import (
	"context"
	"errors"
	"io"
	"log"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-chatbot-be/internal/dto"
	"equipment-chatbot-be/pkg/agent"
	"equipment-chatbot-be/pkg/cache"
	"equipment-chatbot-be/pkg/embedding"
	"equipment-chatbot-be/pkg/llm"
	"equipment-chatbot-be/pkg/retrieval"
	"equipment-chatbot-be/pkg/search/keyword"
	"equipment-chatbot-be/pkg/search/vector"
	"equipment-chatbot-be/pkg/session"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type stubKeywordIndex struct {
	hits []keyword.Hit
	err  error
}

func (s *stubKeywordIndex) Search(_ context.Context, _ string, _ keyword.Filters, _ int) ([]keyword.Hit, error) {
	return s.hits, s.err
}
func (s *stubKeywordIndex) Index(_ context.Context, _ []keyword.Document) error { return nil }
func (s *stubKeywordIndex) Delete(_ context.Context, _ []string) error          { return nil }
func (s *stubKeywordIndex) Ping(_ context.Context) error                        { return nil }

type stubVectorIndex struct {
	hits []vector.Hit
	err  error
}

func (s *stubVectorIndex) QuerySimilar(_ context.Context, _ []float32, _ vector.Filters, _ int) ([]vector.Hit, error) {
	return s.hits, s.err
}
func (s *stubVectorIndex) Ping(_ context.Context) error { return nil }

type stubEmbedder struct{}

func (stubEmbedder) Generate(_ string, _ string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.5, 0.5}},
	}, nil
}

// scriptedLLM fails the first `failures` calls, then answers.
type scriptedLLM struct {
	failures int32
	reply    string
	calls    int32
}

func (s *scriptedLLM) Chat(_ context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	n := atomic.AddInt32(&s.calls, 1)
	if n <= s.failures {
		return "", errors.New("model offline")
	}
	return s.reply, nil
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

type brokenStore struct{}

func (brokenStore) Get(_ context.Context, _ string) ([]byte, bool, error) {
	return nil, false, errors.New("store down")
}
func (brokenStore) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return errors.New("store down")
}
func (brokenStore) Delete(_ context.Context, _ string) error { return errors.New("store down") }
func (brokenStore) Ping(_ context.Context) error             { return errors.New("store down") }

func newTestChatService(t *testing.T, llmProv llm.LLMProvider, store cache.Store) (IChatService, *session.Manager) {
	t.Helper()

	quiet := log.New(io.Discard, "", 0)
	kw := &stubKeywordIndex{hits: []keyword.Hit{
		{DocID: "k1", Title: "Press motor thermal faults", Excerpt: "Overheating usually points to blocked vents.", Score: 6.2},
	}}
	vec := &stubVectorIndex{hits: []vector.Hit{
		{DocID: "v1", Title: "E204 fault catalog entry", Excerpt: "E204 is raised by the drive thermal sensor.", Score: 0.91},
	}}

	retriever := retrieval.NewRetriever(kw, vec, stubEmbedder{}, store, retrieval.DefaultConfig(), quiet)
	sessions := session.NewManager(store, session.DefaultConfig(), quiet)
	agents := agent.NewRegistry(llmProv, agent.DefaultConfig(), quiet)

	svc := NewChatService(retriever, agent.NewRouter(), agents, sessions, nil, nopLogger{}).(*chatService)
	svc.retryBackoff = time.Millisecond
	return svc, sessions
}

func TestSendChatRoutesAndAnswers(t *testing.T) {
	llmProv := &scriptedLLM{reply: "Check the drive cooling fan and clear vent blockage (Reference [1])."}
	svc, sessions := newTestChatService(t, llmProv, cache.NewMemoryStore(time.Hour))

	res, err := svc.SendChat(context.Background(), &dto.SendChatRequest{
		SessionId: "s1",
		Text:      "motor overheating error E204",
		Filters:   &dto.ChatFiltersDTO{EquipmentType: "PRESS"},
	})
	require.NoError(t, err)

	assert.Equal(t, "mechanical", res.AgentClass)
	assert.Equal(t, llmProv.reply, res.Answer)
	assert.False(t, res.Degraded)
	require.Len(t, res.Citations, 2)

	cited := map[string]bool{}
	for _, c := range res.Citations {
		cited[c.DocId] = true
	}
	assert.True(t, cited["k1"], "keyword hit missing from citations: %+v", res.Citations)
	assert.True(t, cited["v1"], "vector hit missing from citations: %+v", res.Citations)

	sess := sessions.Load(context.Background(), "s1")
	require.Len(t, sess.History, 1)
	assert.Equal(t, "mechanical", sess.History[0].AgentClass)
	assert.NotEmpty(t, sess.History[0].AnswerSummary)
}

func TestSendChatRejectsBlankText(t *testing.T) {
	svc, _ := newTestChatService(t, &scriptedLLM{reply: "x"}, cache.NewMemoryStore(time.Hour))

	_, err := svc.SendChat(context.Background(), &dto.SendChatRequest{SessionId: "s1", Text: "   "})
	require.ErrorIs(t, err, retrieval.ErrInvalidQuery)
}

func TestSendChatRetriesFailedCompletionOnce(t *testing.T) {
	llmProv := &scriptedLLM{failures: 1, reply: "Recovered answer."}
	svc, _ := newTestChatService(t, llmProv, cache.NewMemoryStore(time.Hour))

	res, err := svc.SendChat(context.Background(), &dto.SendChatRequest{
		SessionId: "s1",
		Text:      "plc timeout on line 3",
	})
	require.NoError(t, err, "one completion failure must be absorbed by the retry")
	assert.Equal(t, "Recovered answer.", res.Answer)
	assert.EqualValues(t, 2, atomic.LoadInt32(&llmProv.calls))
}

func TestSendChatFailsWhenCompletionStaysDown(t *testing.T) {
	llmProv := &scriptedLLM{failures: 100}
	svc, _ := newTestChatService(t, llmProv, cache.NewMemoryStore(time.Hour))

	_, err := svc.SendChat(context.Background(), &dto.SendChatRequest{
		SessionId: "s1",
		Text:      "plc timeout on line 3",
	})
	require.ErrorIs(t, err, agent.ErrCompletionUnavailable)
	assert.EqualValues(t, 2, atomic.LoadInt32(&llmProv.calls), "want exactly one retry")
}

func TestSendChatSurvivesStoreOutage(t *testing.T) {
	llmProv := &scriptedLLM{reply: "Answer without a session store."}
	svc, _ := newTestChatService(t, llmProv, brokenStore{})

	res, err := svc.SendChat(context.Background(), &dto.SendChatRequest{
		SessionId: "s1",
		Text:      "bearing vibration on the spindle",
	})
	require.NoError(t, err, "store outage must not fail the turn")
	assert.NotEmpty(t, res.Answer)
}

func TestGetSessionHistoryAndReset(t *testing.T) {
	llmProv := &scriptedLLM{reply: "Inspect the relay wiring."}
	svc, _ := newTestChatService(t, llmProv, cache.NewMemoryStore(time.Hour))
	ctx := context.Background()

	_, err := svc.SendChat(ctx, &dto.SendChatRequest{SessionId: "s1", Text: "relay fault E101"})
	require.NoError(t, err)

	history, err := svc.GetSessionHistory(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history.Turns, 1)
	assert.Equal(t, "electrical", history.LastAgent)

	require.NoError(t, svc.ResetSession(ctx, "s1"))

	history, err = svc.GetSessionHistory(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, history.Turns)
}
