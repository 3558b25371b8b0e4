package agent

import (
	"strings"

	"equipment-chatbot-be/pkg/retrieval"
)

// Router classifies a query into an agent class. Classification is a pure
// function of query text and filters so identical input always routes the
// same way; unclassifiable queries resolve to the general fallback.
type Router struct{}

func NewRouter() *Router {
	return &Router{}
}

// Error code families follow the equipment issue catalog: E1xx electrical,
// E2xx mechanical, E5xx software.
var errorCodePrefixes = map[string]Class{
	"E1": ClassElectrical,
	"E2": ClassMechanical,
	"E5": ClassSoftware,
}

var classLexicon = map[Class][]string{
	ClassElectrical: {
		"voltage", "current", "circuit", "wiring", "fuse", "breaker",
		"short", "insulation", "relay", "grounding", "power supply",
		"electrical", "arc", "spark",
	},
	ClassMechanical: {
		"motor", "bearing", "vibration", "overheat", "pressure",
		"hydraulic", "pneumatic", "leak", "gear", "belt", "alignment",
		"torque", "lubrication", "noise", "wear", "crack", "jam",
		"mechanical", "spindle", "coupling",
	},
	ClassSoftware: {
		"plc", "firmware", "software", "hmi", "network", "communication",
		"timeout", "reboot", "update", "configuration", "parameter",
		"program", "log", "interface", "protocol", "driver",
	},
}

// Classify never fails. Resolution order: explicit error-code family, then
// lexicon match counts over the query text, then general fallback. Ties are
// broken by the fixed class priority order for determinism.
func (r *Router) Classify(text string, filters retrieval.Filters) Class {
	if code := strings.ToUpper(strings.TrimSpace(filters.ErrorCode)); len(code) >= 2 {
		if class, ok := errorCodePrefixes[code[:2]]; ok {
			return class
		}
	}

	lowered := strings.ToLower(text)
	if code := extractErrorCode(lowered); code != "" {
		if class, ok := errorCodePrefixes[strings.ToUpper(code[:2])]; ok {
			return class
		}
	}

	best := ClassGeneral
	bestCount := 0
	for _, class := range Classes() {
		terms, ok := classLexicon[class]
		if !ok {
			continue
		}
		count := 0
		for _, term := range terms {
			if strings.Contains(lowered, term) {
				count++
			}
		}
		if count > bestCount {
			best = class
			bestCount = count
		}
	}

	return best
}

// extractErrorCode finds an inline code like "e204" in the query text.
func extractErrorCode(lowered string) string {
	for _, field := range strings.Fields(lowered) {
		field = strings.Trim(field, ".,;:()[]")
		if len(field) >= 2 && field[0] == 'e' && isDigits(field[1:]) {
			return field
		}
	}
	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
