// Package filter implements the per-field comparison rules applied by the
// report screens: equality, inequality, ordering, and optionally open-ended
// ranges. Rules carry their value as raw text exactly as typed into the
// filter menu; evaluation decides between numeric and string comparison
// based on the record field's type.
package filter

import (
	"fmt"
	"strings"
)

// Kind identifies the comparison a rule performs.
type Kind string

const (
	KindEqual     Kind = "equal"
	KindDifferent Kind = "different"
	KindGreater   Kind = "greater"
	KindSmaller   Kind = "smaller"
	KindRange     Kind = "range"
)

var validKinds = map[Kind]struct{}{
	KindEqual:     {},
	KindDifferent: {},
	KindGreater:   {},
	KindSmaller:   {},
	KindRange:     {},
}

// Valid reports whether the kind is one of the supported comparisons.
func (k Kind) Valid() bool {
	_, ok := validKinds[k]
	return ok
}

// Rule is a single per-field filter. An empty (or whitespace-only) Value
// makes the rule inert: it passes every record.
type Rule struct {
	Field string
	Kind  Kind
	Value string
}

// NewRule builds a validated rule. The kind and field are checked at
// construction so a malformed rule can never reach evaluation.
func NewRule(field string, kind Kind, value string) (Rule, error) {
	if field == "" {
		return Rule{}, fmt.Errorf("filter rule requires a field name")
	}
	if !kind.Valid() {
		return Rule{}, fmt.Errorf("unsupported filter kind %q for field %q", kind, field)
	}
	return Rule{Field: field, Kind: kind, Value: value}, nil
}

// Inert reports whether the rule passes everything.
func (r Rule) Inert() bool {
	return strings.TrimSpace(r.Value) == ""
}
