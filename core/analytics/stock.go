package analytics

import (
	"github.com/MSP-CL4-T1/GotoGro-MRM/core/record"
)

const (
	// DefaultLowStockThreshold marks a product as needing reorder when its
	// stock is at or below this level.
	DefaultLowStockThreshold = 5

	// DefaultReorderIncrement is the quantity added per product by a bulk
	// reorder.
	DefaultReorderIncrement = 10
)

// LowStock returns the products whose stock is at or below the threshold,
// in catalog order.
func LowStock(products []record.Product, threshold int64) []record.Product {
	out := make([]record.Product, 0)
	for _, p := range products {
		if p.StockQuantity <= threshold {
			out = append(out, p)
		}
	}
	return out
}
