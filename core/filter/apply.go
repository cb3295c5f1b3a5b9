package filter

import (
	"github.com/MSP-CL4-T1/GotoGro-MRM/core/record"
)

// Apply returns the records that pass every rule. Rules are AND-combined
// and independent per field, so evaluation order never changes the
// surviving subset. The input slice is never mutated.
func Apply(records []record.Record, rules []Rule) []record.Record {
	out := make([]record.Record, 0, len(records))
	for _, rec := range records {
		if Passes(rec, rules) {
			out = append(out, rec)
		}
	}
	return out
}

// Passes reports whether a single record satisfies every rule.
func Passes(rec record.Record, rules []Rule) bool {
	for _, rule := range rules {
		if !Evaluate(rec[rule.Field], rule) {
			return false
		}
	}
	return true
}
