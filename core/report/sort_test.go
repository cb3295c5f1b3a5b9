package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MSP-CL4-T1/GotoGro-MRM/core/record"
)

func TestSortBy(t *testing.T) {
	rows := []record.Record{
		{"product_id": int64(1), "product_name": "Milk", "price": 3.10},
		{"product_id": int64(2), "product_name": "bread", "price": 6.50},
		{"product_id": int64(3), "product_name": "Eggs", "price": 3.10},
	}

	t.Run("numeric ascending", func(t *testing.T) {
		out := SortBy(rows, SortSpec{Key: "price", Direction: DirectionAsc})
		require.Len(t, out, 3)
		assert.Equal(t, int64(1), out[0]["product_id"])
		assert.Equal(t, int64(3), out[1]["product_id"])
		assert.Equal(t, int64(2), out[2]["product_id"])
	})

	t.Run("numeric descending keeps tie order", func(t *testing.T) {
		out := SortBy(rows, SortSpec{Key: "price", Direction: DirectionDesc})
		assert.Equal(t, int64(2), out[0]["product_id"])
		// Ties stay in input order regardless of direction.
		assert.Equal(t, int64(1), out[1]["product_id"])
		assert.Equal(t, int64(3), out[2]["product_id"])
	})

	t.Run("string sort is case insensitive", func(t *testing.T) {
		out := SortBy(rows, SortSpec{Key: "product_name", Direction: DirectionAsc})
		assert.Equal(t, "bread", out[0]["product_name"])
		assert.Equal(t, "Eggs", out[1]["product_name"])
		assert.Equal(t, "Milk", out[2]["product_name"])
	})

	t.Run("empty key returns copy unchanged", func(t *testing.T) {
		out := SortBy(rows, SortSpec{})
		assert.Equal(t, rows, out)
	})

	t.Run("idempotent", func(t *testing.T) {
		spec := SortSpec{Key: "price", Direction: DirectionAsc}
		once := SortBy(rows, spec)
		twice := SortBy(once, spec)
		assert.Equal(t, once, twice)
	})

	t.Run("input not mutated", func(t *testing.T) {
		SortBy(rows, SortSpec{Key: "price", Direction: DirectionDesc})
		assert.Equal(t, int64(1), rows[0]["product_id"])
	})
}

func TestSortSpecToggle(t *testing.T) {
	spec := SortSpec{Key: "price", Direction: DirectionAsc}
	spec = spec.Toggle()
	assert.Equal(t, DirectionDesc, spec.Direction)
	spec = spec.Toggle()
	assert.Equal(t, DirectionAsc, spec.Direction)

	// An unset direction toggles to descending first.
	assert.Equal(t, DirectionDesc, SortSpec{Key: "price"}.Toggle().Direction)
}
