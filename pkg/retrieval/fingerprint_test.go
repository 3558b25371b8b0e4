package retrieval

import "testing"

func TestFingerprintNormalization(t *testing.T) {
	tests := []struct {
		name     string
		textA    string
		textB    string
		filtersA Filters
		filtersB Filters
		wantSame bool
	}{
		{
			name:     "case and whitespace insensitive",
			textA:    "Motor   Overheating\tError E204",
			textB:    "motor overheating error e204",
			wantSame: true,
		},
		{
			name:     "different text differs",
			textA:    "motor overheating",
			textB:    "pump overheating",
			wantSame: false,
		},
		{
			name:     "filter case insensitive",
			textA:    "leak",
			textB:    "leak",
			filtersA: Filters{EquipmentType: "PRESS"},
			filtersB: Filters{EquipmentType: "press"},
			wantSame: true,
		},
		{
			name:     "equipment filter differs",
			textA:    "leak",
			textB:    "leak",
			filtersA: Filters{EquipmentType: "PRESS"},
			filtersB: Filters{EquipmentType: "WELD"},
			wantSame: false,
		},
		{
			name:     "sensor value differs",
			textA:    "vibration high",
			textB:    "vibration high",
			filtersA: Filters{SensorName: "VIBRATION", SensorValue: 9.1},
			filtersB: Filters{SensorName: "VIBRATION", SensorValue: 14.2},
			wantSame: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Fingerprint(tt.textA, tt.filtersA)
			b := Fingerprint(tt.textB, tt.filtersB)
			if (a == b) != tt.wantSame {
				t.Errorf("Fingerprint equality = %v, want %v (a=%s b=%s)", a == b, tt.wantSame, a, b)
			}
		})
	}
}

func TestFingerprintIsStable(t *testing.T) {
	f := Filters{EquipmentType: "PAINT", ErrorCode: "E512"}
	first := Fingerprint("hmi frozen after update", f)
	for i := 0; i < 10; i++ {
		if got := Fingerprint("hmi frozen after update", f); got != first {
			t.Fatalf("Fingerprint not deterministic: %s != %s", got, first)
		}
	}
	if len(first) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(first))
	}
}
