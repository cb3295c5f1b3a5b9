// Package analytics derives dashboard figures from the fetched collections:
// inventory valuation, stock extremes, hot-product rankings, low-stock
// detection and chart-ready series.
package analytics

import (
	"github.com/MSP-CL4-T1/GotoGro-MRM/core/record"
)

// InventorySummary is the headline inventory card on the dashboard. The
// extremes are nil when the catalog is empty; a caller rendering them must
// check before dereferencing.
type InventorySummary struct {
	TotalProducts   int
	TotalStockValue float64
	LowestStocked   *record.Product
	HighestStocked  *record.Product
}

// Summarize walks the catalog once, accumulating the total stock value
// (price times stock per product) and tracking the least and most stocked
// products. On stock ties the first occurrence in catalog order wins, so
// the result is deterministic for a stable input order.
func Summarize(products []record.Product) InventorySummary {
	s := InventorySummary{TotalProducts: len(products)}
	for i := range products {
		p := &products[i]
		s.TotalStockValue += p.Price * float64(p.StockQuantity)
		if s.LowestStocked == nil || p.StockQuantity < s.LowestStocked.StockQuantity {
			s.LowestStocked = p
		}
		if s.HighestStocked == nil || p.StockQuantity > s.HighestStocked.StockQuantity {
			s.HighestStocked = p
		}
	}
	return s
}

// MinByKey returns the record with the smallest numeric value under key,
// or nil when no record has a numeric value there. First occurrence wins
// on ties.
func MinByKey(records []record.Record, key string) record.Record {
	return extremeByKey(records, key, func(candidate, best float64) bool {
		return candidate < best
	})
}

// MaxByKey returns the record with the largest numeric value under key,
// or nil when no record has a numeric value there. First occurrence wins
// on ties.
func MaxByKey(records []record.Record, key string) record.Record {
	return extremeByKey(records, key, func(candidate, best float64) bool {
		return candidate > best
	})
}

func extremeByKey(records []record.Record, key string, better func(candidate, best float64) bool) record.Record {
	var out record.Record
	var best float64
	for _, rec := range records {
		v, ok := record.ToFloat64(rec[key])
		if !ok {
			continue
		}
		if out == nil || better(v, best) {
			out = rec
			best = v
		}
	}
	return out
}
