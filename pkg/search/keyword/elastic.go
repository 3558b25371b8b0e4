package keyword

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ElasticIndex implements Index against an Elasticsearch-compatible HTTP API.
type ElasticIndex struct {
	BaseURL   string
	IndexName string
	Client    *http.Client
}

var _ Index = &ElasticIndex{}

func NewElasticIndex(baseURL, indexName string) *ElasticIndex {
	if indexName == "" {
		indexName = "equipment_docs"
	}
	return &ElasticIndex{
		BaseURL:   baseURL,
		IndexName: indexName,
		Client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

const excerptRuneLimit = 300

// truncateExcerpt cuts on a rune boundary. Document content carries
// multi-byte units (°C, μm) and a byte slice could split one in half.
func truncateExcerpt(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// --- Request/Response structs (internal to this package) ---

type esQuery struct {
	Query     esBoolWrapper `json:"query"`
	Size      int           `json:"size"`
	Highlight *esHighlight  `json:"highlight,omitempty"`
}

type esBoolWrapper struct {
	Bool esBool `json:"bool"`
}

type esBool struct {
	Must   []map[string]interface{} `json:"must"`
	Filter []map[string]interface{} `json:"filter,omitempty"`
}

type esHighlight struct {
	Fields map[string]struct{} `json:"fields"`
}

type esSearchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string  `json:"_id"`
			Score  float64 `json:"_score"`
			Source struct {
				Title   string `json:"title"`
				Content string `json:"content"`
			} `json:"_source"`
			Highlight map[string][]string `json:"highlight"`
		} `json:"hits"`
	} `json:"hits"`
}

// --- Interface implementation ---

func (e *ElasticIndex) Search(ctx context.Context, text string, filters Filters, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 5
	}

	must := []map[string]interface{}{
		{
			"multi_match": map[string]interface{}{
				"query":     text,
				"fields":    []string{"content^2", "title^1.5"},
				"type":      "best_fields",
				"fuzziness": "AUTO",
			},
		},
	}

	var filter []map[string]interface{}
	if filters.EquipmentType != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]string{"equipment_type": filters.EquipmentType},
		})
	}
	if filters.ErrorCode != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]string{"error_code": filters.ErrorCode},
		})
	}

	body := esQuery{
		Query: esBoolWrapper{Bool: esBool{Must: must, Filter: filter}},
		Size:  limit,
		Highlight: &esHighlight{
			Fields: map[string]struct{}{"content": {}},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal search body: %w", err)
	}

	url := fmt.Sprintf("%s/%s/_search", e.BaseURL, e.IndexName)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("keyword search request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("keyword search error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var esResp esSearchResponse
	if err := json.Unmarshal(bodyBytes, &esResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	hits := make([]Hit, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		excerpt := h.Source.Content
		if frags, ok := h.Highlight["content"]; ok && len(frags) > 0 {
			excerpt = frags[0]
		} else {
			excerpt = truncateExcerpt(excerpt, excerptRuneLimit)
		}
		hits = append(hits, Hit{
			DocID:   h.ID,
			Title:   h.Source.Title,
			Excerpt: excerpt,
			Score:   h.Score,
		})
	}
	return hits, nil
}

// Index bulk-upserts documents using the _bulk NDJSON endpoint.
func (e *ElasticIndex) Index(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, doc := range docs {
		action := map[string]interface{}{
			"index": map[string]string{
				"_index": e.IndexName,
				"_id":    doc.ID,
			},
		}
		actionLine, err := json.Marshal(action)
		if err != nil {
			return fmt.Errorf("marshal bulk action: %w", err)
		}
		sourceLine, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal bulk source: %w", err)
		}
		buf.Write(actionLine)
		buf.WriteByte('\n')
		buf.Write(sourceLine)
		buf.WriteByte('\n')
	}

	url := fmt.Sprintf("%s/_bulk", e.BaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, &buf)
	if err != nil {
		return fmt.Errorf("create bulk request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-ndjson")

	resp, err := e.Client.Do(req)
	if err != nil {
		return fmt.Errorf("bulk index request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bulk index error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}
	return nil
}

// Delete removes documents by id via the _bulk NDJSON endpoint.
func (e *ElasticIndex) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for _, id := range ids {
		action := map[string]interface{}{
			"delete": map[string]string{
				"_index": e.IndexName,
				"_id":    id,
			},
		}
		actionLine, err := json.Marshal(action)
		if err != nil {
			return fmt.Errorf("marshal bulk delete action: %w", err)
		}
		buf.Write(actionLine)
		buf.WriteByte('\n')
	}

	url := fmt.Sprintf("%s/_bulk", e.BaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, &buf)
	if err != nil {
		return fmt.Errorf("create bulk delete request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-ndjson")

	resp, err := e.Client.Do(req)
	if err != nil {
		return fmt.Errorf("bulk delete request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bulk delete error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}
	return nil
}

func (e *ElasticIndex) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", e.BaseURL, nil)
	if err != nil {
		return err
	}
	resp, err := e.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("keyword index ping: status %d", resp.StatusCode)
	}
	return nil
}
