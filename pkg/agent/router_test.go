package agent

import (
	"testing"

	"equipment-chatbot-be/pkg/retrieval"
)

func TestClassify(t *testing.T) {
	router := NewRouter()

	tests := []struct {
		name    string
		text    string
		filters retrieval.Filters
		want    Class
	}{
		{
			name:    "error code filter wins over text",
			text:    "something is wrong with the software",
			filters: retrieval.Filters{ErrorCode: "E105"},
			want:    ClassElectrical,
		},
		{
			name: "inline mechanical error code",
			text: "motor overheating error E204 on press line",
			want: ClassMechanical,
		},
		{
			name: "inline code with punctuation",
			text: "the panel shows e512.",
			want: ClassSoftware,
		},
		{
			name: "electrical lexicon",
			text: "voltage drop and a tripped breaker on the main circuit",
			want: ClassElectrical,
		},
		{
			name: "mechanical lexicon",
			text: "loud bearing noise and heavy vibration on the spindle",
			want: ClassMechanical,
		},
		{
			name: "software lexicon",
			text: "plc communication timeout after the firmware update",
			want: ClassSoftware,
		},
		{
			name: "unknown code family falls through to lexicon",
			text: "gear jam after error E900",
			want: ClassMechanical,
		},
		{
			name: "no signal falls back to general",
			text: "can you help me with this machine",
			want: ClassGeneral,
		},
		{
			name: "empty text falls back to general",
			text: "",
			want: ClassGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := router.Classify(tt.text, tt.filters)
			if got != tt.want {
				t.Errorf("Classify(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	router := NewRouter()
	text := "current spike with motor noise and a plc fault"

	first := router.Classify(text, retrieval.Filters{})
	for i := 0; i < 50; i++ {
		if got := router.Classify(text, retrieval.Filters{}); got != first {
			t.Fatalf("run %d: %s != %s", i, got, first)
		}
	}
}
