package constant

import (
	"strings"
	"testing"
)

func TestAssessSensorReading(t *testing.T) {
	tests := []struct {
		name      string
		equipment string
		sensor    string
		value     float64
		wantLevel string
	}{
		{"press pressure normal", "PRESS", "PRESSURE", 85, "NORMAL"},
		{"press pressure warning", "PRESS", "PRESSURE", 110, "WARNING"},
		{"press pressure critical", "PRESS", "PRESSURE", 130, "CRITICAL"},
		{"press vibration warning above normal", "PRESS", "VIBRATION", 10.5, "WARNING"},
		{"weld temperature normal", "WELD", "TEMPERATURE", 200, "NORMAL"},
		{"paint voltage low critical", "paint", "voltage", 170, "CRITICAL"},
		{"case insensitive lookup", "press", "pressure", 85, "NORMAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := AssessSensorReading(tt.equipment, tt.sensor, tt.value)
			if hint == "" {
				t.Fatal("expected a hint for a known equipment/sensor pair")
			}
			if !strings.Contains(hint, tt.wantLevel) {
				t.Errorf("hint = %q, want level %s", hint, tt.wantLevel)
			}
		})
	}
}

func TestAssessSensorReadingUnknownPair(t *testing.T) {
	if hint := AssessSensorReading("LATHE", "PRESSURE", 50); hint != "" {
		t.Errorf("unknown equipment should yield no hint, got %q", hint)
	}
	if hint := AssessSensorReading("PRESS", "HUMIDITY", 50); hint != "" {
		t.Errorf("unknown sensor should yield no hint, got %q", hint)
	}
}
