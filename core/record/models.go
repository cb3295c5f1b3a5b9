package record

// The three tables managed by GotoGro. Field names in the Record form match
// the column names used by the backing store, so filter rules, sort keys and
// CSV columns all address the same identifiers.

// Member is a registered store member. Deleted members are retained with
// the soft-delete flag set and excluded from searches.
type Member struct {
	MemberID    int64  `json:"member_id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	DateJoined  string `json:"date_joined"`
	Deleted     bool   `json:"deleted"`
	TimeDeleted string `json:"time_deleted,omitempty"`
}

// ToRecord flattens the member for the report pipeline.
func (m Member) ToRecord() Record {
	return Record{
		"member_id":   m.MemberID,
		"first_name":  m.FirstName,
		"last_name":   m.LastName,
		"email":       m.Email,
		"date_joined": m.DateJoined,
		"deleted":     m.Deleted,
	}
}

// Product is a catalog item carried by the store.
type Product struct {
	ProductID     int64   `json:"product_id"`
	ProductName   string  `json:"product_name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int64   `json:"stock_quantity"`
	Image         string  `json:"image,omitempty"`
	Deleted       bool    `json:"deleted"`
}

// ToRecord flattens the product for the report pipeline.
func (p Product) ToRecord() Record {
	return Record{
		"product_id":     p.ProductID,
		"product_name":   p.ProductName,
		"description":    p.Description,
		"price":          p.Price,
		"stock_quantity": p.StockQuantity,
	}
}

// SaleRecord is one recorded sale of a product to a member.
// SaleDate uses the "2006-01-02" layout.
type SaleRecord struct {
	SaleID      int64   `json:"sale_id"`
	MemberID    int64   `json:"member_id"`
	ProductID   int64   `json:"product_id"`
	SaleDate    string  `json:"sale_date"`
	Quantity    int64   `json:"quantity"`
	TotalAmount float64 `json:"total_amount"`
}

// ToRecord flattens the sale for the report pipeline.
func (s SaleRecord) ToRecord() Record {
	return Record{
		"sale_id":      s.SaleID,
		"member_id":    s.MemberID,
		"product_id":   s.ProductID,
		"sale_date":    s.SaleDate,
		"quantity":     s.Quantity,
		"total_amount": s.TotalAmount,
	}
}

// Flatten converts a typed slice into the Record form consumed by the
// report pipeline.
func Flatten[T interface{ ToRecord() Record }](items []T) []Record {
	out := make([]Record, len(items))
	for i, item := range items {
		out[i] = item.ToRecord()
	}
	return out
}
