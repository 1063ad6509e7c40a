package upstream

import (
	"math"
	"strconv"
)

// The government datasets are inconsistent about field naming: the same
// attribute arrives under different names depending on dataset vintage
// (district_name vs district, Car_CNT vs car_spaces). The Pick helpers
// walk an ordered candidate list so adapters declare the chain once
// instead of repeating per-field fallback expressions.

// PickString returns the first non-empty string among the candidate
// fields, or fallback when none is usable.
func PickString(m map[string]any, fallback string, candidates ...string) string {
	for _, name := range candidates {
		switch v := m[name].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return fallback
}

// PickFloat returns the first parseable numeric value among the
// candidate fields. NaN and unparseable strings are skipped.
func PickFloat(m map[string]any, candidates ...string) (float64, bool) {
	for _, name := range candidates {
		switch v := m[name].(type) {
		case float64:
			if !math.IsNaN(v) {
				return v, true
			}
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err == nil && !math.IsNaN(f) {
				return f, true
			}
		}
	}
	return 0, false
}

// PickInt is PickFloat truncated to an int.
func PickInt(m map[string]any, candidates ...string) (int, bool) {
	f, ok := PickFloat(m, candidates...)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// FloatOr returns the first parseable numeric candidate or the given
// default. Used for secondary fields that coerce rather than drop.
func FloatOr(m map[string]any, fallback float64, candidates ...string) float64 {
	if f, ok := PickFloat(m, candidates...); ok {
		return f
	}
	return fallback
}

// IntOr returns the first parseable integer candidate or the given
// default.
func IntOr(m map[string]any, fallback int, candidates ...string) int {
	if n, ok := PickInt(m, candidates...); ok {
		return n
	}
	return fallback
}
