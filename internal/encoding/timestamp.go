package encoding

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"squeeze/internal/services"
)

// ParseTimestamp reads "[[HH:]MM:]SS[.fff]" into seconds. Empty fields count
// as zero, so ":30" and "1::5" are accepted.
func ParseTimestamp(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, invalidTimestamp(value, "empty")
	}
	fields := strings.Split(trimmed, ":")
	if len(fields) > 3 {
		return 0, invalidTimestamp(value, "too many fields")
	}
	var total float64
	for _, field := range fields {
		n := 0.0
		if field = strings.TrimSpace(field); field != "" {
			parsed, err := strconv.ParseFloat(field, 64)
			if err != nil || parsed < 0 || math.IsInf(parsed, 0) || math.IsNaN(parsed) {
				return 0, invalidTimestamp(value, fmt.Sprintf("bad field %q", field))
			}
			n = parsed
		}
		total = total*60 + n
	}
	return total, nil
}

func invalidTimestamp(value, reason string) error {
	return services.Wrap(services.ErrValidation, "trim", "timestamp", fmt.Sprintf("%q: %s", value, reason), nil)
}
