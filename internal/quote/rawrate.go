package quote

import (
	"math"
	"strconv"
	"strings"
)

// RawRate is an untyped rate payload as emitted by one of the quote sources
// (manual entry, quick quote, smart quote, AI advisor). Field names vary by
// source; no invariants hold on it. The normalizer is the only consumer.
type RawRate map[string]any

// Str returns the first non-empty string found under the given keys.
// Non-string values are ignored.
func (r RawRate) Str(keys ...string) string {
	for _, k := range keys {
		if s, ok := r[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Num returns the first key whose value coerces to a non-zero number, or 0.
func (r RawRate) Num(keys ...string) float64 {
	for _, k := range keys {
		if v, ok := r[k]; ok {
			if n := SafeNumber(v); n != 0 {
				return n
			}
		}
	}
	return 0
}

// NumSet reports the first key that is present and its coerced value,
// distinguishing "absent" from "present but zero".
func (r RawRate) NumSet(keys ...string) (float64, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return SafeNumber(v), true
		}
	}
	return 0, false
}

// Bool returns the first key holding a true boolean.
func (r RawRate) Bool(keys ...string) bool {
	for _, k := range keys {
		if b, ok := r[k].(bool); ok && b {
			return true
		}
	}
	return false
}

// Slice returns the value under key as a []any, or nil.
func (r RawRate) Slice(key string) []any {
	if s, ok := r[key].([]any); ok {
		return s
	}
	return nil
}

// Child returns the nested object under key, or nil.
func (r RawRate) Child(key string) RawRate {
	switch v := r[key].(type) {
	case map[string]any:
		return RawRate(v)
	case RawRate:
		return v
	}
	return nil
}

// Has reports whether the key is present with a non-nil value.
func (r RawRate) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// SafeNumber coerces an arbitrary value to a finite float64. Strings may
// carry currency symbols and thousands separators ("1,234.50"). Anything
// non-finite or unparseable degrades to 0.
func SafeNumber(v any) float64 {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case float32:
		n = float64(t)
	case int:
		n = float64(t)
	case int64:
		n = float64(t)
	case string:
		s := strings.TrimSpace(t)
		s = strings.ReplaceAll(s, ",", "")
		s = strings.TrimLeft(s, "$€£₹ ")
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// Round2 rounds to two decimal places, the precision of every stored amount.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
