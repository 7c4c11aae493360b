package document

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Fields is a candidate document as delivered by the index: field name to
// value. Accessors never fail; absent or mistyped values degrade to the zero
// value of the requested type.
type Fields map[string]any

// String returns the first non-empty string stored under keys.
func (f Fields) String(keys ...string) string {
	for _, k := range keys {
		if s, ok := f[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Strings returns the sequence stored under key. A bare string is treated as
// a one-element sequence; non-string elements are skipped.
func (f Fields) Strings(key string) []string {
	switch v := f[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}

// Float returns the number stored under key, or 0.
func (f Fields) Float(key string) float64 {
	var n float64
	switch v := f[key].(type) {
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int64:
		n = float64(v)
	case int32:
		n = float64(v)
	case json.Number:
		n, _ = v.Float64()
	case string:
		n, _ = strconv.ParseFloat(strings.TrimSpace(v), 64)
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// Int returns the integer stored under key, or 0. Fractional values are
// truncated.
func (f Fields) Int(key string) int64 {
	switch v := f[key].(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case int32:
		return int64(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return n
		}
	}
	n := f.Float(key)
	if n >= math.MaxInt64 || n <= math.MinInt64 {
		return 0
	}
	return int64(n)
}
