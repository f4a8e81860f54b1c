package transaction

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	maxDescriptionLen = 200
	maxNotesLen       = 300
)

// NormalizeType coerces any value that is not exactly "income" to expense.
func NormalizeType(raw string) Type {
	if raw == string(TypeIncome) {
		return TypeIncome
	}

	return TypeExpense
}

// NormalizeAmount coerces a loosely typed amount into a finite float64.
// Missing, non-numeric and non-finite values all become 0. The sign is not
// enforced here; strict positivity is the entry form's job.
func NormalizeAmount(raw any) float64 {
	var amount float64

	switch v := raw.(type) {
	case float64:
		amount = v
	case float32:
		amount = float64(v)
	case int:
		amount = float64(v)
	case int64:
		amount = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0
		}

		amount = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}

		amount = parsed
	default:
		return 0
	}

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0
	}

	return amount
}

// NormalizeDescription trims and caps the description at 200 characters.
func NormalizeDescription(raw string) string {
	return truncate(strings.TrimSpace(raw), maxDescriptionLen)
}

// NormalizeNotes trims and caps notes at 300 characters.
func NormalizeNotes(raw string) string {
	return truncate(strings.TrimSpace(raw), maxNotesLen)
}

// NormalizeCategory substitutes "other" for a missing category. Unrecognized
// non-empty values are kept as-is; display lookups resolve them to the
// "other" entry.
func NormalizeCategory(raw string) string {
	if raw == "" {
		return CategoryOther
	}

	return raw
}

// NormalizeDate coerces the input to YYYY-MM-DD. Full timestamps are reduced
// to their calendar date; anything unparsable is replaced with the current
// date according to now.
func NormalizeDate(raw string, now func() time.Time) string {
	if t, err := parseDate(raw); err == nil {
		return t.Format(time.DateOnly)
	}

	return now().Format(time.DateOnly)
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)

	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}

	return time.Parse(time.RFC3339, raw)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	return string(runes[:limit])
}
