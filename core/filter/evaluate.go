package filter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MSP-CL4-T1/GotoGro-MRM/core/record"
)

// Evaluate reports whether a single field value passes the rule.
//
// Coercion policy: the comparison is numeric iff the record value is a
// genuine numeric type AND the rule value parses as a number; in every
// other case both sides are compared as trimmed, lowercased strings. A
// non-numeric rule value against a numeric field therefore falls back to
// string comparison instead of comparing against NaN.
func Evaluate(value any, rule Rule) bool {
	raw := strings.TrimSpace(rule.Value)
	if raw == "" {
		return true
	}

	if rule.Kind == KindRange {
		if num, ok := record.NumericValue(value); ok {
			b := ParseBounds(raw, true)
			if b.Empty() {
				return true
			}
			return b.ContainsNumber(num)
		}
		b := ParseBounds(raw, false)
		if b.Empty() {
			return true
		}
		return b.ContainsString(normalize(value))
	}

	if num, ok := record.NumericValue(value); ok {
		if rv, err := strconv.ParseFloat(raw, 64); err == nil {
			return compareNumbers(num, rv, rule.Kind)
		}
	}
	return compareStrings(normalize(value), strings.ToLower(raw), rule.Kind)
}

func compareNumbers(fieldValue, ruleValue float64, kind Kind) bool {
	switch kind {
	case KindEqual:
		return fieldValue == ruleValue
	case KindDifferent:
		return fieldValue != ruleValue
	case KindGreater:
		return fieldValue > ruleValue
	case KindSmaller:
		return fieldValue < ruleValue
	default:
		return true
	}
}

func compareStrings(fieldValue, ruleValue string, kind Kind) bool {
	switch kind {
	case KindEqual:
		return fieldValue == ruleValue
	case KindDifferent:
		return fieldValue != ruleValue
	case KindGreater:
		return fieldValue > ruleValue
	case KindSmaller:
		return fieldValue < ruleValue
	default:
		return true
	}
}

// normalize renders a field value as the trimmed, lowercased string used
// for the fallback comparison. Missing fields (nil) normalize to "".
func normalize(v any) string {
	if v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprintf("%v", v)
	}
	return strings.ToLower(strings.TrimSpace(s))
}
