package retrieval

import (
	"math"
	"testing"

	"equipment-chatbot-be/pkg/search/keyword"
	"equipment-chatbot-be/pkg/search/vector"
)

func TestFuseMergesAndRanks(t *testing.T) {
	kw := []keyword.Hit{
		{DocID: "a", Title: "Doc A", Excerpt: "ex-a", Score: 10},
		{DocID: "b", Title: "Doc B", Excerpt: "ex-b", Score: 5},
	}
	vec := []vector.Hit{
		{DocID: "b", Title: "Doc B", Score: 0.9},
		{DocID: "c", Title: "Doc C", Excerpt: "ex-c", Score: 0.5},
	}

	docs := Fuse(kw, vec, 0.5, 10)

	if len(docs) != 3 {
		t.Fatalf("expected 3 fused docs, got %d", len(docs))
	}

	// kw normalized: a=1, b=0; vec normalized: b=1, c=0.
	// fused: a=0.5, b=0.5, c=0. Tie a/b broken by id ascending.
	if docs[0].ID != "a" || docs[1].ID != "b" || docs[2].ID != "c" {
		t.Fatalf("unexpected order: %s, %s, %s", docs[0].ID, docs[1].ID, docs[2].ID)
	}

	byID := map[string]Document{}
	for _, d := range docs {
		byID[d.ID] = d
	}

	if byID["a"].Origin != OriginKeyword {
		t.Errorf("doc a origin = %s, want keyword", byID["a"].Origin)
	}
	if byID["b"].Origin != OriginBoth {
		t.Errorf("doc b origin = %s, want both", byID["b"].Origin)
	}
	if byID["c"].Origin != OriginVector {
		t.Errorf("doc c origin = %s, want vector", byID["c"].Origin)
	}

	if math.Abs(byID["a"].FusedScore-0.5) > 1e-9 {
		t.Errorf("doc a fused = %f, want 0.5", byID["a"].FusedScore)
	}
	if math.Abs(byID["b"].FusedScore-0.5) > 1e-9 {
		t.Errorf("doc b fused = %f, want 0.5", byID["b"].FusedScore)
	}
}

func TestFuseAlphaWeighting(t *testing.T) {
	kw := []keyword.Hit{
		{DocID: "a", Score: 10},
		{DocID: "b", Score: 1},
	}
	vec := []vector.Hit{
		{DocID: "b", Score: 0.99},
		{DocID: "a", Score: 0.1},
	}

	// Alpha 1.0 means keyword only: a must win.
	docs := Fuse(kw, vec, 1.0, 10)
	if docs[0].ID != "a" {
		t.Errorf("alpha=1.0 winner = %s, want a", docs[0].ID)
	}

	// Alpha 0.0 means vector only: b must win.
	docs = Fuse(kw, vec, 0.0, 10)
	if docs[0].ID != "b" {
		t.Errorf("alpha=0.0 winner = %s, want b", docs[0].ID)
	}
}

func TestFuseSingleHitNormalizesToOne(t *testing.T) {
	docs := Fuse([]keyword.Hit{{DocID: "only", Score: 3.7}}, nil, 0.5, 10)
	if len(docs) != 1 {
		t.Fatalf("expected 1 doc, got %d", len(docs))
	}
	if docs[0].KeywordScore != 1.0 {
		t.Errorf("lone hit keyword score = %f, want 1.0", docs[0].KeywordScore)
	}
	if math.Abs(docs[0].FusedScore-0.5) > 1e-9 {
		t.Errorf("lone hit fused = %f, want 0.5", docs[0].FusedScore)
	}
}

func TestFuseTruncatesToTopK(t *testing.T) {
	kw := []keyword.Hit{
		{DocID: "a", Score: 5},
		{DocID: "b", Score: 4},
		{DocID: "c", Score: 3},
		{DocID: "d", Score: 2},
	}
	docs := Fuse(kw, nil, 0.5, 2)
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs after truncation, got %d", len(docs))
	}
	if docs[0].ID != "a" || docs[1].ID != "b" {
		t.Errorf("truncation kept %s, %s; want a, b", docs[0].ID, docs[1].ID)
	}
}

func TestFuseEmptyInputs(t *testing.T) {
	if docs := Fuse(nil, nil, 0.5, 10); len(docs) != 0 {
		t.Errorf("expected no docs, got %d", len(docs))
	}
}

func TestFuseIsDeterministic(t *testing.T) {
	kw := []keyword.Hit{
		{DocID: "x", Score: 2},
		{DocID: "y", Score: 2},
		{DocID: "z", Score: 2},
	}
	vec := []vector.Hit{
		{DocID: "y", Score: 0.5},
		{DocID: "w", Score: 0.5},
	}

	first := Fuse(kw, vec, 0.5, 10)
	for i := 0; i < 20; i++ {
		again := Fuse(kw, vec, 0.5, 10)
		for j := range first {
			if again[j].ID != first[j].ID {
				t.Fatalf("run %d position %d: %s != %s", i, j, again[j].ID, first[j].ID)
			}
		}
	}
}
