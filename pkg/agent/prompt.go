package agent

import (
	"fmt"
	"strings"

	"equipment-chatbot-be/pkg/retrieval"
	"equipment-chatbot-be/pkg/session"
)

// ContextBuilder assembles the user-side prompt shared by all specialists:
// retrieved reference material under a character budget, condensed session
// history, then the query itself.
type ContextBuilder struct {
	query        string
	severityHint string
	retrieval    *retrieval.Result
	history      []session.Turn
	charBudget   int
	historyTurns int
}

func NewContextBuilder(query, severityHint string, result *retrieval.Result, history []session.Turn, charBudget, historyTurns int) *ContextBuilder {
	return &ContextBuilder{
		query:        query,
		severityHint: severityHint,
		retrieval:    result,
		history:      history,
		charBudget:   charBudget,
		historyTurns: historyTurns,
	}
}

// Build creates the prompt. Documents enter in fused-score order and stop
// when the character budget is spent, so the highest-ranked evidence is
// always preserved.
func (b *ContextBuilder) Build() string {
	var prompt strings.Builder

	b.writeReferenceMaterial(&prompt)
	b.writeSensorReading(&prompt)
	b.writeHistory(&prompt)
	b.writeUserQuery(&prompt)

	return prompt.String()
}

func (b *ContextBuilder) writeReferenceMaterial(prompt *strings.Builder) {
	if b.retrieval == nil || len(b.retrieval.Documents) == 0 {
		prompt.WriteString("<reference_material>\nNo matching documents were found in the knowledge base.\n</reference_material>\n\n")
		return
	}

	prompt.WriteString("<reference_material>\n")
	used := 0
	for i, doc := range b.retrieval.Documents {
		entry := fmt.Sprintf("[Reference %d] %s\n%s\n\n", i+1, doc.Title, doc.Excerpt)
		if b.charBudget > 0 && used+len(entry) > b.charBudget {
			break
		}
		prompt.WriteString(entry)
		used += len(entry)
	}
	prompt.WriteString("</reference_material>\n\n")

	if b.retrieval.Degraded {
		prompt.WriteString(fmt.Sprintf("<note>Only partial search results are available (%s unavailable).</note>\n\n",
			strings.Join(b.retrieval.FailedSources, ", ")))
	}
}

func (b *ContextBuilder) writeSensorReading(prompt *strings.Builder) {
	if b.severityHint == "" {
		return
	}
	prompt.WriteString("<sensor_assessment>\n")
	prompt.WriteString(b.severityHint)
	prompt.WriteString("\n</sensor_assessment>\n\n")
}

func (b *ContextBuilder) writeHistory(prompt *strings.Builder) {
	if len(b.history) == 0 {
		return
	}

	turns := b.history
	if b.historyTurns > 0 && len(turns) > b.historyTurns {
		turns = turns[len(turns)-b.historyTurns:]
	}

	prompt.WriteString("<conversation_history>\n")
	for _, turn := range turns {
		prompt.WriteString("User: ")
		prompt.WriteString(turn.Query)
		prompt.WriteString("\nAssistant: ")
		prompt.WriteString(turn.AnswerSummary)
		prompt.WriteString("\n")
	}
	prompt.WriteString("</conversation_history>\n\n")
}

func (b *ContextBuilder) writeUserQuery(prompt *strings.Builder) {
	prompt.WriteString("<user_query>\n")
	prompt.WriteString(b.query)
	prompt.WriteString("\n</user_query>\n")
}

// Summarize condenses an answer into a single history line. Session turns
// keep a summary, not the full completion. The limit counts runes so
// threshold answers with °C or μm never get cut mid-character.
func Summarize(answer string, limit int) string {
	condensed := strings.Join(strings.Fields(answer), " ")
	if limit <= 0 {
		return condensed
	}
	runes := []rune(condensed)
	if len(runes) > limit {
		condensed = string(runes[:limit]) + "…"
	}
	return condensed
}
