package analytics

import (
	"fmt"

	"github.com/MSP-CL4-T1/GotoGro-MRM/core/record"
)

// Series is chart-ready data: parallel label and value slices in source
// order. The adapter never buckets or re-orders; callers control shape by
// what they fetch.
type Series struct {
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Plottable reports whether the series has enough points to draw. A line
// or bar chart with fewer than two points carries no trend, so callers
// render a "not enough data" notice instead.
func (s Series) Plottable() bool {
	return len(s.Labels) >= 2
}

// ToSeries projects two fields of a record collection into a series.
// Records whose value field is missing or non-numeric are skipped along
// with their labels, keeping the slices parallel.
func ToSeries(title string, records []record.Record, labelField, valueField string) Series {
	s := Series{
		Title:  title,
		Labels: make([]string, 0, len(records)),
		Values: make([]float64, 0, len(records)),
	}
	for _, rec := range records {
		v, ok := record.ToFloat64(rec[valueField])
		if !ok {
			continue
		}
		s.Labels = append(s.Labels, labelOf(rec[labelField]))
		s.Values = append(s.Values, v)
	}
	return s
}

// SalesOverTime builds the quantity-per-sale time series, one point per
// sale in the order fetched. The store returns sales ordered by date, so
// the x axis is already chronological.
func SalesOverTime(sales []record.SaleRecord) Series {
	s := Series{
		Title:  "Sales Over Time",
		Labels: make([]string, 0, len(sales)),
		Values: make([]float64, 0, len(sales)),
	}
	for _, sale := range sales {
		s.Labels = append(s.Labels, sale.SaleDate)
		s.Values = append(s.Values, float64(sale.Quantity))
	}
	return s
}

// StockDistribution builds the stock-per-product distribution across the
// catalog.
func StockDistribution(products []record.Product) Series {
	s := Series{
		Title:  "Stock Distribution",
		Labels: make([]string, 0, len(products)),
		Values: make([]float64, 0, len(products)),
	}
	for _, p := range products {
		s.Labels = append(s.Labels, p.ProductName)
		s.Values = append(s.Values, float64(p.StockQuantity))
	}
	return s
}

// RevenuePotential builds the price-times-stock series across the catalog,
// the per-product contribution to the total stock value.
func RevenuePotential(products []record.Product) Series {
	s := Series{
		Title:  "Revenue Potential",
		Labels: make([]string, 0, len(products)),
		Values: make([]float64, 0, len(products)),
	}
	for _, p := range products {
		s.Labels = append(s.Labels, p.ProductName)
		s.Values = append(s.Values, p.Price*float64(p.StockQuantity))
	}
	return s
}

// palette is the fixed cycle of segment colors used by distribution
// charts. Keeping it fixed makes the same dataset render identically on
// every refresh.
var palette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

// Colors returns n segment colors, cycling the palette as needed.
func Colors(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = palette[i%len(palette)]
	}
	return out
}

func labelOf(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
