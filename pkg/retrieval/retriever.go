package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"equipment-chatbot-be/pkg/cache"
	"equipment-chatbot-be/pkg/embedding"
	"equipment-chatbot-be/pkg/search/keyword"
	"equipment-chatbot-be/pkg/search/vector"
)

const cacheKeyPrefix = "retrieval:"

// Config encapsulates retrieval parameters. Alpha weights the keyword list
// in fusion; the rest bound the external calls.
type Config struct {
	Alpha          float64
	TopK           int
	CacheTTL       time.Duration
	KeywordTimeout time.Duration
	VectorTimeout  time.Duration
}

// DefaultConfig returns the default retrieval configuration.
func DefaultConfig() Config {
	return Config{
		Alpha:          0.5,
		TopK:           10,
		CacheTTL:       5 * time.Minute,
		KeywordTimeout: 5 * time.Second,
		VectorTimeout:  5 * time.Second,
	}
}

// Retriever issues parallel keyword and vector queries, fuses the results
// and caches them keyed by query fingerprint.
type Retriever struct {
	keywordIndex      keyword.Index
	vectorIndex       vector.Index
	embeddingProvider embedding.EmbeddingProvider
	store             cache.Store
	config            Config
	logger            *log.Logger
}

func NewRetriever(
	keywordIndex keyword.Index,
	vectorIndex vector.Index,
	embeddingProvider embedding.EmbeddingProvider,
	store cache.Store,
	config Config,
	logger *log.Logger,
) *Retriever {
	return &Retriever{
		keywordIndex:      keywordIndex,
		vectorIndex:       vectorIndex,
		embeddingProvider: embeddingProvider,
		store:             store,
		config:            config,
		logger:            logger,
	}
}

type sourceOutcome struct {
	source  string
	kwHits  []keyword.Hit
	vecHits []vector.Hit
	err     error
}

// Retrieve runs one hybrid retrieval. It fails with ErrInvalidQuery on blank
// text and with ErrRetrievalUnavailable only when both backends fail; a
// single-backend failure yields a flagged partial result. Zero hits from
// both engines is an empty result, not an error.
func (r *Retriever) Retrieve(ctx context.Context, text string, filters Filters, topK int) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrInvalidQuery
	}
	if topK <= 0 {
		topK = r.config.TopK
	}

	fingerprint := Fingerprint(text, filters)

	if cached := r.loadCached(ctx, fingerprint); cached != nil {
		r.logger.Printf("[CACHE] Hit for fingerprint %s (%d docs)", fingerprint[:12], len(cached.Documents))
		return cached, nil
	}

	outcomes := make(chan sourceOutcome, 2)

	go func() {
		kctx, cancel := context.WithTimeout(ctx, r.config.KeywordTimeout)
		defer cancel()
		hits, err := r.keywordIndex.Search(kctx, text, keyword.Filters{
			EquipmentType: filters.EquipmentType,
			ErrorCode:     filters.ErrorCode,
		}, topK)
		outcomes <- sourceOutcome{source: SourceKeyword, kwHits: hits, err: err}
	}()

	go func() {
		vctx, cancel := context.WithTimeout(ctx, r.config.VectorTimeout)
		defer cancel()
		hits, err := r.queryVector(vctx, text, filters, topK)
		outcomes <- sourceOutcome{source: SourceVector, vecHits: hits, err: err}
	}()

	var kwHits []keyword.Hit
	var vecHits []vector.Hit
	var failed []string

	for i := 0; i < 2; i++ {
		out := <-outcomes
		if out.err != nil {
			r.logger.Printf("[WARN] %s search failed: %v", out.source, out.err)
			failed = append(failed, out.source)
			continue
		}
		switch out.source {
		case SourceKeyword:
			kwHits = out.kwHits
		case SourceVector:
			vecHits = out.vecHits
		}
	}

	if len(failed) == 2 {
		return nil, ErrRetrievalUnavailable
	}

	result := &Result{
		Fingerprint:   fingerprint,
		Documents:     Fuse(kwHits, vecHits, r.config.Alpha, topK),
		Degraded:      len(failed) > 0,
		FailedSources: failed,
		CreatedAt:     time.Now(),
		TTL:           r.config.CacheTTL,
	}

	r.logger.Printf("[FUSION] fingerprint=%s keyword=%d vector=%d fused=%d degraded=%v",
		fingerprint[:12], len(kwHits), len(vecHits), len(result.Documents), result.Degraded)

	// Cache write is best-effort; a failure never fails the retrieval.
	if data, err := json.Marshal(result); err == nil {
		if err := r.store.Set(ctx, cacheKeyPrefix+fingerprint, data, r.config.CacheTTL); err != nil {
			r.logger.Printf("[WARN] Retrieval cache write failed: %v", err)
		}
	}

	return result, nil
}

func (r *Retriever) queryVector(ctx context.Context, text string, filters Filters, topK int) ([]vector.Hit, error) {
	embeddingRes, err := r.embeddingProvider.Generate(text, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}
	return r.vectorIndex.QuerySimilar(ctx, embeddingRes.Embedding.Values, vector.Filters{
		EquipmentType: filters.EquipmentType,
		ErrorCode:     filters.ErrorCode,
	}, topK)
}

func (r *Retriever) loadCached(ctx context.Context, fingerprint string) *Result {
	data, found, err := r.store.Get(ctx, cacheKeyPrefix+fingerprint)
	if err != nil {
		r.logger.Printf("[WARN] Retrieval cache read failed: %v", err)
		return nil
	}
	if !found {
		return nil
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		r.logger.Printf("[WARN] Corrupt cached retrieval for %s: %v", fingerprint[:12], err)
		return nil
	}
	if !result.Fresh(time.Now()) {
		return nil
	}
	return &result
}
