package agent

import (
	"strings"
	"testing"
	"unicode/utf8"

	"equipment-chatbot-be/pkg/retrieval"
	"equipment-chatbot-be/pkg/session"
)

func TestBuildIncludesTopRankedReferences(t *testing.T) {
	result := &retrieval.Result{
		Documents: []retrieval.Document{
			{ID: "a", Title: "Bearing replacement", Excerpt: "Replace the bearing when vibration exceeds limits."},
			{ID: "b", Title: "Lubrication schedule", Excerpt: "Grease intervals for press spindles."},
		},
	}

	prompt := NewContextBuilder("bearing noise", "", result, nil, 6000, 5).Build()

	if !strings.Contains(prompt, "[Reference 1] Bearing replacement") {
		t.Error("missing first reference")
	}
	if !strings.Contains(prompt, "[Reference 2] Lubrication schedule") {
		t.Error("missing second reference")
	}
	if !strings.Contains(prompt, "<user_query>\nbearing noise\n</user_query>") {
		t.Error("missing user query section")
	}
}

func TestBuildStopsAtCharBudget(t *testing.T) {
	big := strings.Repeat("x", 300)
	result := &retrieval.Result{
		Documents: []retrieval.Document{
			{ID: "a", Title: "First", Excerpt: big},
			{ID: "b", Title: "Second", Excerpt: big},
		},
	}

	prompt := NewContextBuilder("q", "", result, nil, 400, 5).Build()

	if !strings.Contains(prompt, "[Reference 1] First") {
		t.Error("highest ranked document must survive the budget")
	}
	if strings.Contains(prompt, "[Reference 2] Second") {
		t.Error("budget exceeded: second document should have been dropped")
	}
}

func TestBuildNotesDegradedRetrieval(t *testing.T) {
	result := &retrieval.Result{
		Documents:     []retrieval.Document{{ID: "a", Title: "Doc", Excerpt: "text"}},
		Degraded:      true,
		FailedSources: []string{"vector"},
	}

	prompt := NewContextBuilder("q", "", result, nil, 6000, 5).Build()

	if !strings.Contains(prompt, "Only partial search results are available (vector unavailable).") {
		t.Error("missing degraded note")
	}
}

func TestBuildHandlesNoDocuments(t *testing.T) {
	prompt := NewContextBuilder("q", "", &retrieval.Result{}, nil, 6000, 5).Build()
	if !strings.Contains(prompt, "No matching documents were found") {
		t.Error("missing empty knowledge base note")
	}
}

func TestBuildLimitsHistoryTurns(t *testing.T) {
	history := []session.Turn{
		{Query: "first question", AnswerSummary: "first answer"},
		{Query: "second question", AnswerSummary: "second answer"},
		{Query: "third question", AnswerSummary: "third answer"},
	}

	prompt := NewContextBuilder("q", "", nil, history, 6000, 2).Build()

	if strings.Contains(prompt, "first question") {
		t.Error("oldest turn should have been trimmed")
	}
	if !strings.Contains(prompt, "second question") || !strings.Contains(prompt, "third question") {
		t.Error("recent turns missing from history section")
	}
}

func TestBuildIncludesSensorAssessment(t *testing.T) {
	hint := "PRESS vibration reading 14.0mm/s is WARNING (normal range 3.2-8.5mm/s)"
	prompt := NewContextBuilder("q", hint, nil, nil, 6000, 5).Build()
	if !strings.Contains(prompt, "<sensor_assessment>\n"+hint) {
		t.Error("missing sensor assessment section")
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		limit  int
		want   string
	}{
		{
			name:   "collapses whitespace",
			answer: "Check  the\nbearing\t\ttemperature",
			limit:  100,
			want:   "Check the bearing temperature",
		},
		{
			name:   "truncates at limit",
			answer: "abcdefghij",
			limit:  4,
			want:   "abcd…",
		},
		{
			name:   "short answer unchanged",
			answer: "ok",
			limit:  10,
			want:   "ok",
		},
		{
			name:   "cuts between multi-byte runes",
			answer: "Keep below 85°C at all times",
			limit:  14,
			want:   "Keep below 85°…",
		},
		{
			name:   "micrometer units survive whole",
			answer: "μμμμμμ",
			limit:  4,
			want:   "μμμμ…",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.answer, tt.limit)
			if got != tt.want {
				t.Errorf("Summarize() = %q, want %q", got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("Summarize() produced invalid UTF-8: %q", got)
			}
		})
	}
}
