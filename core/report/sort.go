// Package report composes the displayed view of a fetched collection:
// fuzzy search, then field filters, then a stable single-key sort. The
// composition order is fixed; searching runs against the full collection
// so filter choices never bias the match ranking.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MSP-CL4-T1/GotoGro-MRM/core/record"
)

// Direction of a sort.
type Direction string

const (
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"
)

// SortSpec names the single active sort key and its direction.
type SortSpec struct {
	Key       string
	Direction Direction
}

// Toggle returns the spec with its direction flipped. Repeatedly clicking
// a column header alternates ascending and descending.
func (s SortSpec) Toggle() SortSpec {
	if s.Direction == DirectionDesc {
		s.Direction = DirectionAsc
	} else {
		s.Direction = DirectionDesc
	}
	return s
}

// SortBy orders the records by the spec's key. When both values are
// numeric the comparison is numeric; otherwise it falls back to
// lexicographic ordering. The sort is stable: ties preserve the original
// relative order, which keeps CSV exports reproducible.
func SortBy(records []record.Record, spec SortSpec) []record.Record {
	out := append([]record.Record(nil), records...)
	if spec.Key == "" {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i][spec.Key], out[j][spec.Key]
		if spec.Direction == DirectionDesc {
			return lessValue(b, a)
		}
		return lessValue(a, b)
	})
	return out
}

func lessValue(a, b any) bool {
	fa, okA := record.NumericValue(a)
	fb, okB := record.NumericValue(b)
	if okA && okB {
		return fa < fb
	}
	return sortKey(a) < sortKey(b)
}

func sortKey(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.ToLower(s)
	}
	return strings.ToLower(fmt.Sprintf("%v", v))
}
