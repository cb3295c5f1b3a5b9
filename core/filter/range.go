package filter

import (
	"strconv"
	"strings"
)

// Bounds holds the optional endpoints of a parsed "start-end" range
// expression. Either side may be absent, giving an open-ended range; when
// both are absent the range is empty and the owning rule is inert.
type Bounds struct {
	numeric  bool
	startNum *float64
	endNum   *float64
	startStr string
	endStr   string
}

// ParseBounds splits raw on the first '-' and trims both parts. In numeric
// mode a part that fails to parse as a number is treated as absent rather
// than producing an error; a malformed range never rejects records it was
// not asked to reject.
func ParseBounds(raw string, numeric bool) Bounds {
	head, tail, _ := strings.Cut(raw, "-")
	start := strings.TrimSpace(head)
	end := strings.TrimSpace(tail)

	b := Bounds{numeric: numeric}
	if numeric {
		if start != "" {
			if f, err := strconv.ParseFloat(start, 64); err == nil {
				b.startNum = &f
			}
		}
		if end != "" {
			if f, err := strconv.ParseFloat(end, 64); err == nil {
				b.endNum = &f
			}
		}
		return b
	}
	b.startStr = strings.ToLower(start)
	b.endStr = strings.ToLower(end)
	return b
}

// Empty reports whether neither endpoint is present.
func (b Bounds) Empty() bool {
	if b.numeric {
		return b.startNum == nil && b.endNum == nil
	}
	return b.startStr == "" && b.endStr == ""
}

// ContainsNumber checks v against the inclusive numeric bounds.
func (b Bounds) ContainsNumber(v float64) bool {
	if b.startNum != nil && v < *b.startNum {
		return false
	}
	if b.endNum != nil && v > *b.endNum {
		return false
	}
	return true
}

// ContainsString checks s (already normalized) against the inclusive
// lexicographic bounds.
func (b Bounds) ContainsString(s string) bool {
	if b.startStr != "" && s < b.startStr {
		return false
	}
	if b.endStr != "" && s > b.endStr {
		return false
	}
	return true
}
