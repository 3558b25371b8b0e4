package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"equipment-chatbot-be/internal/dto"
	"equipment-chatbot-be/internal/entity"
	"equipment-chatbot-be/internal/repository/contract"
)

type capturingPublisher struct {
	payloads [][]byte
	err      error
}

func (p *capturingPublisher) Publish(_ context.Context, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.payloads = append(p.payloads, payload)
	return nil
}

type stubEmbeddingRepo struct {
	deleted []string
}

func (s *stubEmbeddingRepo) Upsert(_ context.Context, _ *entity.KnowledgeEmbedding) error {
	return nil
}

func (s *stubEmbeddingRepo) DeleteByDocId(_ context.Context, docId string) error {
	s.deleted = append(s.deleted, docId)
	return nil
}

func (s *stubEmbeddingRepo) SearchSimilarWithScore(_ context.Context, _ []float32, _ int, _ contract.VectorFilters) ([]*contract.ScoredKnowledgeEmbedding, error) {
	return nil, nil
}

func TestIngestQueuesEveryDocument(t *testing.T) {
	pub := &capturingPublisher{}
	svc := NewKnowledgeService(pub, &stubEmbeddingRepo{}, &stubKeywordIndex{}, nopLogger{})

	res, err := svc.Ingest(context.Background(), &dto.IngestKnowledgeRequest{
		Documents: []dto.KnowledgeDocumentDTO{
			{Title: "Press hydraulics", Content: "Bleed the hydraulic circuit.", EquipmentType: "PRESS"},
			{Title: "Weld current table", Content: "Reference currents per electrode.", EquipmentType: "WELD", ErrorCode: "E112"},
		},
	})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if res.Queued != 2 {
		t.Errorf("queued = %d, want 2", res.Queued)
	}
	if len(pub.payloads) != 2 {
		t.Fatalf("published = %d messages, want 2", len(pub.payloads))
	}

	var msg dto.IndexKnowledgeMessage
	if err := json.Unmarshal(pub.payloads[1], &msg); err != nil {
		t.Fatalf("payload not valid JSON: %v", err)
	}
	if msg.Title != "Weld current table" || msg.ErrorCode != "E112" {
		t.Errorf("unexpected payload: %+v", msg)
	}
}

func TestIngestPropagatesPublishFailure(t *testing.T) {
	pub := &capturingPublisher{err: errors.New("bus closed")}
	svc := NewKnowledgeService(pub, &stubEmbeddingRepo{}, &stubKeywordIndex{}, nopLogger{})

	_, err := svc.Ingest(context.Background(), &dto.IngestKnowledgeRequest{
		Documents: []dto.KnowledgeDocumentDTO{{Title: "t", Content: "c"}},
	})
	if err == nil {
		t.Fatal("expected publish failure to surface")
	}
}

func TestDeleteDocumentRemovesFromBothIndexes(t *testing.T) {
	repo := &stubEmbeddingRepo{}
	svc := NewKnowledgeService(&capturingPublisher{}, repo, &stubKeywordIndex{}, nopLogger{})

	if err := svc.DeleteDocument(context.Background(), "abc123"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "abc123" {
		t.Errorf("vector rows deleted = %v, want [abc123]", repo.deleted)
	}
}

func TestDocumentIdIsContentStable(t *testing.T) {
	a := DocumentId("identical content")
	b := DocumentId("identical content")
	c := DocumentId("different content")

	if a != b {
		t.Errorf("same content produced different ids: %s vs %s", a, b)
	}
	if a == c {
		t.Error("different content produced the same id")
	}
	if len(a) != 32 {
		t.Errorf("id length = %d, want 32 hex chars", len(a))
	}
}
