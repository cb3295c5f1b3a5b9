// Package record defines the flat record model shared by the report,
// analytics and export layers. A Record is a mapping from field name to a
// scalar value (string, number, boolean or date-like string); every record
// in a collection processed together carries the same field set.
package record

import "strconv"

// Record is a single flat data row keyed by field name.
type Record map[string]any

// Clone returns a shallow copy of the record. The report pipeline never
// mutates records in place; Clone exists for callers that need to.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// NumericValue reports the value as a float64 when it is a genuine numeric
// type. Numeric strings are NOT coerced here: whether a field compares
// numerically is decided by the record value's actual type, never by how
// a filter value happens to parse.
func NumericValue(v any) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case float32:
		return float64(val), true
	case float64:
		return val, true
	default:
		return 0, false
	}
}

// ToFloat64 converts a value of various numeric types to a float64,
// additionally accepting numeric strings. It returns the converted value
// and a boolean indicating whether the conversion succeeded.
func ToFloat64(v any) (float64, bool) {
	if f, ok := NumericValue(v); ok {
		return f, true
	}
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	}
	return 0, false
}
