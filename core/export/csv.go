// Package export writes the displayed view of a collection to CSV. The
// export mirrors the screen exactly: the same rows in the same order, and
// only the columns the user left visible.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/MSP-CL4-T1/GotoGro-MRM/core/record"
)

// Column pairs a record field with its visibility toggle.
type Column struct {
	Field   string
	Visible bool
}

// ColumnMask is the ordered column list of a collection view. Order is
// fixed at construction; toggling visibility never reorders columns.
type ColumnMask []Column

// NewMask builds a mask over the given fields, all visible.
func NewMask(fields ...string) ColumnMask {
	m := make(ColumnMask, len(fields))
	for i, f := range fields {
		m[i] = Column{Field: f, Visible: true}
	}
	return m
}

// Toggle flips the visibility of the named field. Unknown fields are
// ignored.
func (m ColumnMask) Toggle(field string) {
	for i := range m {
		if m[i].Field == field {
			m[i].Visible = !m[i].Visible
			return
		}
	}
}

// Visible returns the visible field names in mask order.
func (m ColumnMask) Visible() []string {
	out := make([]string, 0, len(m))
	for _, c := range m {
		if c.Visible {
			out = append(out, c.Field)
		}
	}
	return out
}

// WriteCSV writes the records to w as CSV: one header row of visible
// field names, then one row per record in input order. Values absent from
// a record render as empty cells.
func WriteCSV(w io.Writer, records []record.Record, mask ColumnMask) error {
	fields := mask.Visible()
	cw := csv.NewWriter(w)

	if err := cw.Write(fields); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	row := make([]string, len(fields))
	for _, rec := range records {
		for i, f := range fields {
			row[i] = formatValue(rec[f])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return nil
}

// Save writes the records to a CSV file at path, replacing any existing
// file.
func Save(path string, records []record.Record, mask ColumnMask) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := WriteCSV(f, records, mask); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}
	return nil
}

// formatValue renders a cell. Integers print without a decimal point and
// floats keep the shortest representation that round-trips, so prices
// export as "4.5" rather than "4.500000".
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", val)
	}
}
