package sqlite

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/MSP-CL4-T1/GotoGro-MRM/core/record"
)

// reorderConcurrency bounds the parallel stock updates issued by a bulk
// reorder.
const reorderConcurrency = 8

// ReorderResult reports the outcome of one product's reorder. Err is nil
// on success; a failed item never rolls back the others.
type ReorderResult struct {
	ProductID   int64
	ProductName string
	Previous    int64
	Current     int64
	Err         error
}

// ReorderLowStock raises the stock of every product at or below the
// threshold by increment. All updates are dispatched concurrently and the
// call waits for every one to finish, returning a result per affected
// product in catalog order. A single sales-changed style event fires at
// the end rather than one per product.
func (s *Store) ReorderLowStock(ctx context.Context, threshold, increment int64) ([]ReorderResult, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog for reorder: %w", err)
	}

	low := make([]record.Product, 0)
	for _, p := range products {
		if p.StockQuantity <= threshold {
			low = append(low, p)
		}
	}
	if len(low) == 0 {
		return []ReorderResult{}, nil
	}

	results := make([]ReorderResult, len(low))
	var g errgroup.Group
	g.SetLimit(reorderConcurrency)
	for i, p := range low {
		g.Go(func() error {
			next := p.StockQuantity + increment
			_, err := s.db.ExecContext(ctx,
				`UPDATE Products SET stock_quantity = ? WHERE product_id = ?`,
				next, p.ProductID)
			results[i] = ReorderResult{
				ProductID:   p.ProductID,
				ProductName: p.ProductName,
				Previous:    p.StockQuantity,
				Current:     next,
				Err:         err,
			}
			if err != nil {
				results[i].Current = p.StockQuantity
			}
			return nil
		})
	}
	g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	s.logger.Info("bulk reorder finished",
		zap.Int("reordered", len(results)-failed),
		zap.Int("failed", failed))

	s.emit(EventProductsChanged, "reorder", 0)
	return results, nil
}
