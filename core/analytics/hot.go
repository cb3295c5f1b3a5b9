package analytics

import (
	"sort"

	"github.com/MSP-CL4-T1/GotoGro-MRM/core/record"
)

// HotProduct is one row of the best-sellers ranking.
type HotProduct struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	TotalSold   int64  `json:"total_sold"`
}

// HotProducts ranks the catalog by units sold over the given sales. Every
// catalog product appears in the result, never-sold ones with a zero
// total; sales referencing products absent from the catalog are ignored.
// Ties keep catalog order, so the ranking is stable across refreshes.
func HotProducts(products []record.Product, sales []record.SaleRecord) []HotProduct {
	sold := make(map[int64]int64, len(products))
	for _, p := range products {
		sold[p.ProductID] = 0
	}
	for _, s := range sales {
		if _, ok := sold[s.ProductID]; ok {
			sold[s.ProductID] += s.Quantity
		}
	}

	out := make([]HotProduct, len(products))
	for i, p := range products {
		out[i] = HotProduct{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			TotalSold:   sold[p.ProductID],
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalSold > out[j].TotalSold })
	return out
}

// TopN truncates a ranking to its first n rows.
func TopN(ranking []HotProduct, n int) []HotProduct {
	if n < 0 {
		n = 0
	}
	if n > len(ranking) {
		n = len(ranking)
	}
	return ranking[:n]
}
