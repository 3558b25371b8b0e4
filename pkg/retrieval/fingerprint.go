package retrieval

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Fingerprint computes a deterministic cache key for a query. The text is
// lowercased and whitespace-collapsed so equivalent phrasings share one cache
// entry; filters are serialized in a fixed field order.
func Fingerprint(text string, filters Filters) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(text)), " ")

	var b strings.Builder
	b.WriteString(normalized)
	b.WriteString("|equipment=")
	b.WriteString(strings.ToLower(filters.EquipmentType))
	b.WriteString("|error=")
	b.WriteString(strings.ToLower(filters.ErrorCode))
	b.WriteString("|sensor=")
	b.WriteString(strings.ToLower(filters.SensorName))
	if filters.SensorValue != 0 {
		fmt.Fprintf(&b, "=%g", filters.SensorValue)
	}

	sum := sha256.Sum256([]byte(b.String()))
	return fmt.Sprintf("%x", sum)
}
