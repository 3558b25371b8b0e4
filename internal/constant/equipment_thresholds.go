package constant

import (
	"fmt"
	"strings"
)

// SensorThreshold holds the box-analysis reference values for one sensor on
// one equipment type.
type SensorThreshold struct {
	NormalMin   float64
	NormalMax   float64
	WarningMin  float64
	WarningMax  float64
	CriticalMin float64
	CriticalMax float64
	Unit        string
}

// EquipmentThresholds maps equipment type -> sensor name -> reference values.
// Values come from the EDA team's per-equipment box analysis.
var EquipmentThresholds = map[string]map[string]SensorThreshold{
	"PRESS": {
		"PRESSURE": {
			NormalMin: 75, NormalMax: 95,
			WarningMin: 65, WarningMax: 105,
			CriticalMin: 0, CriticalMax: 125,
			Unit: "bar",
		},
		"VIBRATION": {
			NormalMin: 3.2, NormalMax: 8.5,
			WarningMin: 0, WarningMax: 12.0,
			CriticalMin: 0, CriticalMax: 15.0,
			Unit: "mm/s",
		},
		"CURRENT": {
			NormalMin: 4.8, NormalMax: 6.2,
			WarningMin: 0, WarningMax: 8.0,
			CriticalMin: 0, CriticalMax: 10.0,
			Unit: "A",
		},
	},
	"WELD": {
		"SENSOR_VALUE": {
			NormalMin: 8.5, NormalMax: 12.3,
			WarningMin: 7.0, WarningMax: 99,
			CriticalMin: 5.0, CriticalMax: 99,
			Unit: "V",
		},
		"TEMPERATURE": {
			NormalMin: 180, NormalMax: 220,
			WarningMin: 0, WarningMax: 250,
			CriticalMin: 0, CriticalMax: 300,
			Unit: "°C",
		},
	},
	"PAINT": {
		"THICKNESS": {
			NormalMin: 22, NormalMax: 28,
			WarningMin: 18, WarningMax: 99,
			CriticalMin: 15, CriticalMax: 99,
			Unit: "μm",
		},
		"VOLTAGE": {
			NormalMin: 215, NormalMax: 235,
			WarningMin: 200, WarningMax: 250,
			CriticalMin: 180, CriticalMax: 270,
			Unit: "V",
		},
		"TEMPERATURE": {
			NormalMin: 60, NormalMax: 80,
			WarningMin: 0, WarningMax: 90,
			CriticalMin: 0, CriticalMax: 100,
			Unit: "°C",
		},
	},
}

// AssessSensorReading classifies a sensor reading against the threshold
// table and returns a hint suitable for prompt injection, or "" when the
// equipment/sensor pair is unknown.
func AssessSensorReading(equipmentType, sensorName string, value float64) string {
	sensors, ok := EquipmentThresholds[strings.ToUpper(equipmentType)]
	if !ok {
		return ""
	}
	th, ok := sensors[strings.ToUpper(sensorName)]
	if !ok {
		return ""
	}

	level := "NORMAL"
	switch {
	case value > th.CriticalMax || (th.CriticalMin > 0 && value < th.CriticalMin):
		level = "CRITICAL"
	case value > th.WarningMax || (th.WarningMin > 0 && value < th.WarningMin):
		level = "WARNING"
	case value < th.NormalMin || value > th.NormalMax:
		level = "WARNING"
	}

	return fmt.Sprintf("%s %s reading %.1f%s is %s (normal range %.1f-%.1f%s)",
		strings.ToUpper(equipmentType), strings.ToLower(sensorName), value, th.Unit,
		level, th.NormalMin, th.NormalMax, th.Unit)
}
