package retrieval

import (
	"sort"

	"equipment-chatbot-be/pkg/search/keyword"
	"equipment-chatbot-be/pkg/search/vector"
)

// Fuse combines keyword and vector hit lists into one deduplicated ranking.
// Scores are min-max normalized per list, then combined as
// alpha*keyword + (1-alpha)*vector; a document present in only one list gets
// zero for the missing term. Output is sorted by fused score descending with
// ties broken by document id for determinism.
func Fuse(kwHits []keyword.Hit, vecHits []vector.Hit, alpha float64, topK int) []Document {
	kwNorm := normalizeKeyword(kwHits)
	vecNorm := normalizeVector(vecHits)

	merged := make(map[string]*Document)

	for i, h := range kwHits {
		merged[h.DocID] = &Document{
			ID:           h.DocID,
			Title:        h.Title,
			Excerpt:      h.Excerpt,
			Origin:       OriginKeyword,
			KeywordScore: kwNorm[i],
		}
	}

	for i, h := range vecHits {
		if doc, ok := merged[h.DocID]; ok {
			doc.Origin = OriginBoth
			doc.VectorScore = vecNorm[i]
			if doc.Excerpt == "" {
				doc.Excerpt = h.Excerpt
			}
			continue
		}
		merged[h.DocID] = &Document{
			ID:          h.DocID,
			Title:       h.Title,
			Excerpt:     h.Excerpt,
			Origin:      OriginVector,
			VectorScore: vecNorm[i],
		}
	}

	docs := make([]Document, 0, len(merged))
	for _, doc := range merged {
		doc.FusedScore = alpha*doc.KeywordScore + (1-alpha)*doc.VectorScore
		docs = append(docs, *doc)
	}

	sort.Slice(docs, func(i, j int) bool {
		if docs[i].FusedScore != docs[j].FusedScore {
			return docs[i].FusedScore > docs[j].FusedScore
		}
		return docs[i].ID < docs[j].ID
	})

	if topK > 0 && len(docs) > topK {
		docs = docs[:topK]
	}
	return docs
}

// normalizeKeyword min-max scales engine-native scores over the returned set.
// A single-element or constant list maps to 1.0 so a lone hit is not zeroed.
func normalizeKeyword(hits []keyword.Hit) []float64 {
	scores := make([]float64, len(hits))
	for i, h := range hits {
		scores[i] = h.Score
	}
	return minMax(scores)
}

func normalizeVector(hits []vector.Hit) []float64 {
	scores := make([]float64, len(hits))
	for i, h := range hits {
		scores[i] = h.Score
	}
	return minMax(scores)
}

func minMax(scores []float64) []float64 {
	if len(scores) == 0 {
		return scores
	}

	min, max := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}

	normalized := make([]float64, len(scores))
	if max == min {
		for i := range normalized {
			normalized[i] = 1.0
		}
		return normalized
	}
	for i, s := range scores {
		normalized[i] = (s - min) / (max - min)
	}
	return normalized
}
