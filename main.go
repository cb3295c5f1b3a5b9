package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/MSP-CL4-T1/GotoGro-MRM/core/analytics"
	"github.com/MSP-CL4-T1/GotoGro-MRM/core/export"
	"github.com/MSP-CL4-T1/GotoGro-MRM/core/filter"
	"github.com/MSP-CL4-T1/GotoGro-MRM/core/record"
	"github.com/MSP-CL4-T1/GotoGro-MRM/core/report"
	"github.com/MSP-CL4-T1/GotoGro-MRM/store/sqlite"
)

const (
	dbFileName  = "gotogro.db"
	csvFileName = "products_report.csv"
)

func main() {
	// Remove the database file if it already exists to start fresh
	if err := os.Remove(dbFileName); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing database file %s: %v", dbFileName, err)
	}
	fmt.Printf("Starting fresh: removed existing %s (if any).\n", dbFileName)

	store, err := sqlite.Open(dbFileName, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer func() {
		if cErr := store.Close(); cErr != nil {
			log.Printf("Error closing store: %v", cErr)
		}
		fmt.Println("Store closed.")
	}()

	ctx := context.Background()
	pipeline := report.NewPipeline(nil)

	store.Subscribe(sqlite.EventProductsChanged, func(ctx context.Context, event sqlite.StoreEvent) error {
		pipeline.Invalidate()
		fmt.Printf("Products changed (%s, id=%d)\n", event.Operation, event.ID)
		return nil
	})

	fmt.Println("Seeding sample data...")
	seedProducts := []record.Product{
		{ProductName: "Whole Milk 2L", Description: "Full cream milk", Price: 3.10, StockQuantity: 24},
		{ProductName: "Sourdough Loaf", Description: "Baked daily", Price: 6.50, StockQuantity: 4},
		{ProductName: "Free Range Eggs", Description: "Dozen", Price: 7.20, StockQuantity: 12},
		{ProductName: "Olive Oil 500ml", Description: "Extra virgin", Price: 12.00, StockQuantity: 2},
		{ProductName: "Bananas 1kg", Description: "Cavendish", Price: 4.90, StockQuantity: 30},
	}
	for _, p := range seedProducts {
		if _, err := store.AddProduct(ctx, p); err != nil {
			log.Fatalf("Failed to add product %q: %v", p.ProductName, err)
		}
	}

	alice, err := store.AddMember(ctx, record.Member{
		FirstName: "Alice", LastName: "Smith", Email: "alice@example.com",
		DateJoined: time.Now().Format("2006-01-02"),
	})
	if err != nil {
		log.Fatalf("Failed to add member: %v", err)
	}

	sales := []record.SaleRecord{
		{MemberID: alice.MemberID, ProductID: 1, SaleDate: "2026-08-01", Quantity: 3, TotalAmount: 9.30},
		{MemberID: alice.MemberID, ProductID: 1, SaleDate: "2026-08-12", Quantity: 2, TotalAmount: 6.20},
		{MemberID: alice.MemberID, ProductID: 2, SaleDate: "2026-08-15", Quantity: 1, TotalAmount: 6.50},
	}
	for _, s := range sales {
		if _, err := store.InsertSaleRecord(ctx, s); err != nil {
			log.Fatalf("Failed to insert sale: %v", err)
		}
	}

	products, err := store.Products(ctx)
	if err != nil {
		log.Fatalf("Failed to load products: %v", err)
	}

	// Displayed view: search the full catalog, keep items priced 3-10,
	// sort by price ascending.
	view := report.ViewState{
		Query:      "",
		SearchKeys: []string{"product_name", "description"},
		Rules: []filter.Rule{
			{Field: "price", Kind: filter.KindRange, Value: "3-10"},
		},
		Sort: report.SortSpec{Key: "price", Direction: report.DirectionAsc},
	}
	displayed := pipeline.Displayed(record.Flatten(products), view)

	fmt.Println("----------------------------------------------------------")
	fmt.Printf("%-4s %-20s %-10s %-6s\n", "ID", "Name", "Price", "Stock")
	fmt.Println("----------------------------------------------------------")
	for _, row := range displayed {
		fmt.Printf("%-4d %-20s %-10.2f %-6d\n",
			row["product_id"].(int64),
			row["product_name"].(string),
			row["price"].(float64),
			row["stock_quantity"].(int64))
	}
	fmt.Println("----------------------------------------------------------")

	mask := export.NewMask("product_id", "product_name", "description", "price", "stock_quantity")
	mask.Toggle("description")
	if err := export.Save(csvFileName, displayed, mask); err != nil {
		log.Fatalf("Failed to export CSV: %v", err)
	}
	fmt.Printf("Exported displayed rows to %s\n", csvFileName)

	summary := analytics.Summarize(products)
	fmt.Printf("\nInventory: %d products, total stock value %.2f\n",
		summary.TotalProducts, summary.TotalStockValue)
	if summary.LowestStocked != nil && summary.HighestStocked != nil {
		fmt.Printf("Least stocked: %s (%d), most stocked: %s (%d)\n",
			summary.LowestStocked.ProductName, summary.LowestStocked.StockQuantity,
			summary.HighestStocked.ProductName, summary.HighestStocked.StockQuantity)
	}

	start, end := analytics.MonthRange(2026, time.August)
	monthSales, err := store.SalesByDateRange(ctx, start, end)
	if err != nil {
		log.Fatalf("Failed to load sales: %v", err)
	}
	fmt.Println("\nHot products this month:")
	for _, hp := range analytics.TopN(analytics.HotProducts(products, monthSales), 3) {
		fmt.Printf("  %-20s sold %d\n", hp.ProductName, hp.TotalSold)
	}

	series := analytics.SalesOverTime(monthSales)
	if series.Plottable() {
		fmt.Printf("\nSales over time: %d points from %s to %s\n",
			len(series.Labels), series.Labels[0], series.Labels[len(series.Labels)-1])
	} else {
		fmt.Println("\nNot enough sales data to plot.")
	}

	fmt.Println("\nReordering low stock products...")
	results, err := store.ReorderLowStock(ctx, analytics.DefaultLowStockThreshold, analytics.DefaultReorderIncrement)
	if err != nil {
		log.Fatalf("Bulk reorder failed: %v", err)
	}
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("  %-20s FAILED: %v\n", r.ProductName, r.Err)
			continue
		}
		fmt.Printf("  %-20s %d -> %d\n", r.ProductName, r.Previous, r.Current)
	}
}
