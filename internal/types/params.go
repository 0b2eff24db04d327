// internal/types/params.go
package types

import (
	"math"
	"strconv"
	"strings"
)

/*
 * Parameter bag coercion.
 *
 * Condition and effect params arrive as an untyped map whose shape is a
 * convention per type. Every accessor takes a default and never fails: a
 * missing key, a null, or a value of the wrong shape yields the default.
 *
 * Coercion rules:
 *   - Number: float64/int/int64 as-is, numeric strings parsed (trimmed)
 *   - String: strings as-is, numbers formatted, bools formatted
 *   - Bool: bools as-is, "true"/"false" strings parsed
 *
 * Raw access is kept for values that may carry a game-variable encoding;
 * those are handed to the resolver untouched.
 */

// Params is the untyped key-value bag attached to conditions and effects.
type Params map[string]any

// Raw returns the value stored under key, or def when absent or null.
func (p Params) Raw(key string, def any) any {
	if p == nil {
		return def
	}
	v, ok := p[key]
	if !ok || v == nil {
		return def
	}
	return v
}

// Has reports whether key holds a non-null value.
func (p Params) Has(key string) bool {
	if p == nil {
		return false
	}
	v, ok := p[key]
	return ok && v != nil
}

// String returns key coerced to a string, or def.
// Empty strings count as absent.
func (p Params) String(key, def string) string {
	switch v := p.Raw(key, nil).(type) {
	case string:
		if v == "" {
			return def
		}
		return v
	case float64, int, int64:
		f, _ := ToFloat64(v)
		return FormatNumber(f)
	case bool:
		return strconv.FormatBool(v)
	default:
		return def
	}
}

// Number returns key coerced to float64, or def.
func (p Params) Number(key string, def float64) float64 {
	if f, ok := ToFloat64(p.Raw(key, nil)); ok {
		return f
	}
	return def
}

// Int returns key coerced to an int (truncated), or def.
func (p Params) Int(key string, def int) int {
	if f, ok := ToFloat64(p.Raw(key, nil)); ok {
		return int(f)
	}
	return def
}

// Bool returns key coerced to a bool, or def.
func (p Params) Bool(key string, def bool) bool {
	switch v := p.Raw(key, nil).(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return def
		}
		return b
	default:
		return def
	}
}

// ToFloat64 converts numeric values and numeric strings to float64.
// Handles float64, int, int64 from JSON unmarshaling and editor input.
func ToFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// FormatNumber renders f in its shortest decimal form ("10", "1.5", "-0.25").
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
