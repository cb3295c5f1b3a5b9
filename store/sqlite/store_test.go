package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MSP-CL4-T1/GotoGro-MRM/core/record"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seedProducts(t *testing.T, s *Store) []record.Product {
	t.Helper()
	ctx := context.Background()
	seed := []record.Product{
		{ProductName: "Whole Milk 2L", Description: "Full cream milk", Price: 3.10, StockQuantity: 24},
		{ProductName: "Sourdough Loaf", Description: "Baked daily", Price: 6.50, StockQuantity: 4},
		{ProductName: "Olive Oil 500ml", Description: "Extra virgin", Price: 12.00, StockQuantity: 2},
	}
	out := make([]record.Product, 0, len(seed))
	for _, p := range seed {
		stored, err := s.AddProduct(ctx, p)
		require.NoError(t, err)
		out = append(out, *stored)
	}
	return out
}

func TestProductCRUD(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	t.Run("ids are allocated sequentially", func(t *testing.T) {
		stored := seedProducts(t, s)
		assert.Equal(t, int64(1), stored[0].ProductID)
		assert.Equal(t, int64(2), stored[1].ProductID)
		assert.Equal(t, int64(3), stored[2].ProductID)
	})

	t.Run("list returns catalog order", func(t *testing.T) {
		products, err := s.Products(ctx)
		require.NoError(t, err)
		require.Len(t, products, 3)
		assert.Equal(t, "Whole Milk 2L", products[0].ProductName)
	})

	t.Run("retrieve", func(t *testing.T) {
		p, err := s.RetrieveProduct(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "Sourdough Loaf", p.ProductName)

		_, err = s.RetrieveProduct(ctx, 99)
		assert.Error(t, err)
	})

	t.Run("update", func(t *testing.T) {
		p, err := s.RetrieveProduct(ctx, 2)
		require.NoError(t, err)
		p.Price = 7.00
		require.NoError(t, s.UpdateProduct(ctx, *p))

		again, err := s.RetrieveProduct(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, 7.00, again.Price)
	})

	t.Run("update unknown product fails", func(t *testing.T) {
		err := s.UpdateProduct(ctx, record.Product{ProductID: 99, ProductName: "ghost"})
		assert.Error(t, err)
	})

	t.Run("soft delete hides from lists but keeps row", func(t *testing.T) {
		require.NoError(t, s.SoftDeleteProduct(ctx, 3))

		products, err := s.Products(ctx)
		require.NoError(t, err)
		assert.Len(t, products, 2)

		p, err := s.RetrieveProduct(ctx, 3)
		require.NoError(t, err)
		assert.True(t, p.Deleted)
	})

	t.Run("id reuse is avoided after delete", func(t *testing.T) {
		p, err := s.AddProduct(ctx, record.Product{ProductName: "Bananas 1kg", Price: 4.90, StockQuantity: 30})
		require.NoError(t, err)
		assert.Equal(t, int64(4), p.ProductID)
	})
}

func TestSearchProducts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedProducts(t, s)

	t.Run("substring match", func(t *testing.T) {
		out, err := s.SearchProducts(ctx, "milk")
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "Whole Milk 2L", out[0].ProductName)
	})

	t.Run("case insensitive", func(t *testing.T) {
		out, err := s.SearchProducts(ctx, "MILK")
		require.NoError(t, err)
		assert.Len(t, out, 1)
	})

	t.Run("empty term returns all", func(t *testing.T) {
		out, err := s.SearchProducts(ctx, "")
		require.NoError(t, err)
		assert.Len(t, out, 3)
	})

	t.Run("deleted products excluded", func(t *testing.T) {
		require.NoError(t, s.SoftDeleteProduct(ctx, 1))
		out, err := s.SearchProducts(ctx, "milk")
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}

func TestMemberLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	alice, err := s.AddMember(ctx, record.Member{
		FirstName: "Alice", LastName: "Smith", Email: "alice@example.com", DateJoined: "2026-01-15",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), alice.MemberID)

	bob, err := s.AddMember(ctx, record.Member{
		FirstName: "Bob", LastName: "Jones", Email: "bob@example.com", DateJoined: "2026-02-01",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), bob.MemberID)

	t.Run("search by first or last name", func(t *testing.T) {
		out, err := s.SearchMembers(ctx, "smi")
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "Alice", out[0].FirstName)

		out, err = s.SearchMembers(ctx, "bob")
		require.NoError(t, err)
		assert.Len(t, out, 1)
	})

	t.Run("update", func(t *testing.T) {
		alice.Email = "alice.smith@example.com"
		require.NoError(t, s.UpdateMember(ctx, *alice))

		got, err := s.RetrieveMember(ctx, alice.MemberID)
		require.NoError(t, err)
		assert.Equal(t, "alice.smith@example.com", got.Email)
	})

	t.Run("soft delete records the time", func(t *testing.T) {
		require.NoError(t, s.SoftDeleteMember(ctx, bob.MemberID))

		members, err := s.Members(ctx)
		require.NoError(t, err)
		assert.Len(t, members, 1)

		got, err := s.RetrieveMember(ctx, bob.MemberID)
		require.NoError(t, err)
		assert.True(t, got.Deleted)
		assert.NotEmpty(t, got.TimeDeleted)
	})
}

func TestSales(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedProducts(t, s)

	sales := []record.SaleRecord{
		{MemberID: 1, ProductID: 1, SaleDate: "2026-08-12", Quantity: 2, TotalAmount: 6.20},
		{MemberID: 1, ProductID: 1, SaleDate: "2026-08-01", Quantity: 3, TotalAmount: 9.30},
		{MemberID: 1, ProductID: 2, SaleDate: "2026-09-02", Quantity: 1, TotalAmount: 6.50},
	}
	for _, sale := range sales {
		_, err := s.InsertSaleRecord(ctx, sale)
		require.NoError(t, err)
	}

	t.Run("date range is start inclusive end exclusive", func(t *testing.T) {
		out, err := s.SalesByDateRange(ctx, "2026-08-01", "2026-09-01")
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "2026-08-01", out[0].SaleDate)
		assert.Equal(t, "2026-08-12", out[1].SaleDate)
	})

	t.Run("open ends return everything", func(t *testing.T) {
		out, err := s.SalesByDateRange(ctx, "", "")
		require.NoError(t, err)
		assert.Len(t, out, 3)
	})

	t.Run("sales for one product", func(t *testing.T) {
		out, err := s.SalesForProduct(ctx, 1)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "2026-08-01", out[0].SaleDate)
	})
}

func TestReorderLowStock(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	seedProducts(t, s)

	t.Run("raises every low product by the increment", func(t *testing.T) {
		results, err := s.ReorderLowStock(ctx, 5, 10)
		require.NoError(t, err)
		require.Len(t, results, 2)

		byID := map[int64]ReorderResult{}
		for _, r := range results {
			require.NoError(t, r.Err)
			byID[r.ProductID] = r
		}
		assert.Equal(t, int64(4), byID[2].Previous)
		assert.Equal(t, int64(14), byID[2].Current)
		assert.Equal(t, int64(2), byID[3].Previous)
		assert.Equal(t, int64(12), byID[3].Current)

		p, err := s.RetrieveProduct(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(14), p.StockQuantity)
	})

	t.Run("results keep catalog order", func(t *testing.T) {
		s2 := openTestStore(t)
		seedProducts(t, s2)
		results, err := s2.ReorderLowStock(ctx, 5, 10)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, int64(2), results[0].ProductID)
		assert.Equal(t, int64(3), results[1].ProductID)
	})

	t.Run("nothing low is a no-op", func(t *testing.T) {
		results, err := s.ReorderLowStock(ctx, 5, 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestStoreEvents(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	got := make(chan StoreEvent, 8)
	id := s.Subscribe(EventProductsChanged, func(ctx context.Context, event StoreEvent) error {
		got <- event
		return nil
	})

	_, err := s.AddProduct(ctx, record.Product{ProductName: "Bananas 1kg", Price: 4.90, StockQuantity: 30})
	require.NoError(t, err)

	select {
	case ev := <-got:
		assert.Equal(t, EventProductsChanged, ev.Type)
		assert.Equal(t, "insert", ev.Operation)
		assert.Equal(t, int64(1), ev.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a products-changed event")
	}

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		s.Unsubscribe(id)
		require.NoError(t, s.SoftDeleteProduct(ctx, 1))

		select {
		case ev := <-got:
			t.Fatalf("unexpected event after unsubscribe: %+v", ev)
		case <-time.After(200 * time.Millisecond):
		}
	})

	t.Run("member changes use their own event type", func(t *testing.T) {
		memberEvents := make(chan StoreEvent, 1)
		s.Subscribe(EventMembersChanged, func(ctx context.Context, event StoreEvent) error {
			memberEvents <- event
			return nil
		})

		_, err := s.AddMember(ctx, record.Member{FirstName: "Alice", LastName: "Smith", Email: "a@example.com", DateJoined: "2026-01-01"})
		require.NoError(t, err)

		select {
		case ev := <-memberEvents:
			assert.Equal(t, EventMembersChanged, ev.Type)
		case <-time.After(2 * time.Second):
			t.Fatal("expected a members-changed event")
		}
	})
}
