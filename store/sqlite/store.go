// Package sqlite is the backing store for members, products and sale
// records. It owns the schema, the soft-delete convention for members and
// products, and the change-event bus the report layer subscribes to for
// cache invalidation.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/asaidimu/go-events"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/MSP-CL4-T1/GotoGro-MRM/core/record"
)

// Store wraps the SQLite database and the typed change-event bus.
type Store struct {
	db     *sql.DB
	bus    *events.TypedEventBus[StoreEvent]
	logger *zap.Logger

	subMu sync.RWMutex
	subs  map[string]func()
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS Members (
	member_id    INTEGER PRIMARY KEY,
	first_name   TEXT NOT NULL,
	last_name    TEXT NOT NULL,
	email        TEXT NOT NULL,
	date_joined  TEXT NOT NULL,
	deleted      INTEGER NOT NULL DEFAULT 0,
	time_deleted TEXT
);
CREATE TABLE IF NOT EXISTS Products (
	product_id     INTEGER PRIMARY KEY,
	product_name   TEXT NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	price          REAL NOT NULL,
	stock_quantity INTEGER NOT NULL,
	image          TEXT NOT NULL DEFAULT '',
	deleted        INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS SaleRecords (
	sale_id      INTEGER PRIMARY KEY,
	member_id    INTEGER NOT NULL,
	product_id   INTEGER NOT NULL,
	sale_date    TEXT NOT NULL,
	quantity     INTEGER NOT NULL,
	total_amount REAL NOT NULL
);
`

// Open opens (creating if needed) the database at path and ensures the
// schema exists. Use ":memory:" for an ephemeral store. A nil logger is
// replaced with a no-op logger.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	// SQLite serializes writers anyway, and a single pooled connection
	// keeps ":memory:" databases from fragmenting across connections.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	bus, err := events.NewTypedEventBus[StoreEvent](events.DefaultConfig())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not initialize event bus: %w", err)
	}

	return &Store{
		db:     db,
		bus:    bus,
		logger: logger,
		subs:   map[string]func(){},
	}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// Products returns the active catalog, oldest product first.
func (s *Store) Products(ctx context.Context) ([]record.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT product_id, product_name, description, price, stock_quantity, image
		 FROM Products WHERE deleted = 0 ORDER BY product_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	return scanProducts(rows)
}

// SearchProducts returns active products whose name contains the term,
// case-insensitively. An empty term returns the full catalog.
func (s *Store) SearchProducts(ctx context.Context, term string) ([]record.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT product_id, product_name, description, price, stock_quantity, image
		 FROM Products WHERE deleted = 0 AND product_name LIKE '%' || ? || '%'
		 ORDER BY product_id`, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return scanProducts(rows)
}

// RetrieveProduct fetches one product by id, including soft-deleted ones.
func (s *Store) RetrieveProduct(ctx context.Context, id int64) (*record.Product, error) {
	var p record.Product
	var deleted int64
	err := s.db.QueryRowContext(ctx,
		`SELECT product_id, product_name, description, price, stock_quantity, image, deleted
		 FROM Products WHERE product_id = ?`, id).
		Scan(&p.ProductID, &p.ProductName, &p.Description, &p.Price, &p.StockQuantity, &p.Image, &deleted)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve product %d: %w", id, err)
	}
	p.Deleted = deleted != 0
	return &p, nil
}

// AddProduct inserts a product, assigning the next id. Returns the stored
// product with its id populated.
func (s *Store) AddProduct(ctx context.Context, p record.Product) (*record.Product, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(product_id), 0) + 1 FROM Products`).Scan(&p.ProductID); err != nil {
		return nil, fmt.Errorf("failed to allocate product id: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO Products (product_id, product_name, description, price, stock_quantity, image, deleted)
		 VALUES (?, ?, ?, ?, ?, ?, 0)`,
		p.ProductID, p.ProductName, p.Description, p.Price, p.StockQuantity, p.Image)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit product insert: %w", err)
	}

	s.emit(EventProductsChanged, "insert", p.ProductID)
	return &p, nil
}

// UpdateProduct overwrites all editable fields of an existing product.
func (s *Store) UpdateProduct(ctx context.Context, p record.Product) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE Products SET product_name = ?, description = ?, price = ?, stock_quantity = ?, image = ?
		 WHERE product_id = ?`,
		p.ProductName, p.Description, p.Price, p.StockQuantity, p.Image, p.ProductID)
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", p.ProductID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to confirm product update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("product %d not found", p.ProductID)
	}

	s.emit(EventProductsChanged, "update", p.ProductID)
	return nil
}

// SoftDeleteProduct flags a product as deleted without removing the row,
// so historical sale records keep resolving.
func (s *Store) SoftDeleteProduct(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE Products SET deleted = 1 WHERE product_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to confirm product delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("product %d not found", id)
	}

	s.emit(EventProductsChanged, "delete", id)
	return nil
}

// Members returns the active member list, oldest member first.
func (s *Store) Members(ctx context.Context) ([]record.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT member_id, first_name, last_name, email, date_joined
		 FROM Members WHERE deleted = 0 ORDER BY member_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	return scanMembers(rows)
}

// SearchMembers returns active members whose first or last name contains
// the term, case-insensitively.
func (s *Store) SearchMembers(ctx context.Context, term string) ([]record.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT member_id, first_name, last_name, email, date_joined
		 FROM Members WHERE deleted = 0
		 AND (first_name LIKE '%' || ? || '%' OR last_name LIKE '%' || ? || '%')
		 ORDER BY member_id`, term, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search members: %w", err)
	}
	return scanMembers(rows)
}

// RetrieveMember fetches one member by id, including soft-deleted ones.
func (s *Store) RetrieveMember(ctx context.Context, id int64) (*record.Member, error) {
	var m record.Member
	var deleted int64
	var timeDeleted sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT member_id, first_name, last_name, email, date_joined, deleted, time_deleted
		 FROM Members WHERE member_id = ?`, id).
		Scan(&m.MemberID, &m.FirstName, &m.LastName, &m.Email, &m.DateJoined, &deleted, &timeDeleted)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("member %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve member %d: %w", id, err)
	}
	m.Deleted = deleted != 0
	m.TimeDeleted = timeDeleted.String
	return &m, nil
}

// AddMember inserts a member, assigning the next id.
func (s *Store) AddMember(ctx context.Context, m record.Member) (*record.Member, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(member_id), 0) + 1 FROM Members`).Scan(&m.MemberID); err != nil {
		return nil, fmt.Errorf("failed to allocate member id: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO Members (member_id, first_name, last_name, email, date_joined, deleted)
		 VALUES (?, ?, ?, ?, ?, 0)`,
		m.MemberID, m.FirstName, m.LastName, m.Email, m.DateJoined)
	if err != nil {
		return nil, fmt.Errorf("failed to insert member: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit member insert: %w", err)
	}

	s.emit(EventMembersChanged, "insert", m.MemberID)
	return &m, nil
}

// UpdateMember overwrites all editable fields of an existing member.
func (s *Store) UpdateMember(ctx context.Context, m record.Member) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE Members SET first_name = ?, last_name = ?, email = ?, date_joined = ?
		 WHERE member_id = ?`,
		m.FirstName, m.LastName, m.Email, m.DateJoined, m.MemberID)
	if err != nil {
		return fmt.Errorf("failed to update member %d: %w", m.MemberID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to confirm member update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("member %d not found", m.MemberID)
	}

	s.emit(EventMembersChanged, "update", m.MemberID)
	return nil
}

// SoftDeleteMember flags a member as deleted and records when, keeping
// the row for historical sale records.
func (s *Store) SoftDeleteMember(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE Members SET deleted = 1, time_deleted = ? WHERE member_id = ?`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("failed to delete member %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to confirm member delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("member %d not found", id)
	}

	s.emit(EventMembersChanged, "delete", id)
	return nil
}

// SalesByDateRange returns sales with start <= sale_date < end, ordered
// by date then id. An empty start or end leaves that side open; both
// empty returns every sale.
func (s *Store) SalesByDateRange(ctx context.Context, start, end string) ([]record.SaleRecord, error) {
	q := `SELECT sale_id, member_id, product_id, sale_date, quantity, total_amount
	      FROM SaleRecords WHERE 1 = 1`
	args := make([]any, 0, 2)
	if start != "" {
		q += ` AND sale_date >= ?`
		args = append(args, start)
	}
	if end != "" {
		q += ` AND sale_date < ?`
		args = append(args, end)
	}
	q += ` ORDER BY sale_date, sale_id`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	return scanSales(rows)
}

// SalesForProduct returns every sale of one product, ordered by date
// then id.
func (s *Store) SalesForProduct(ctx context.Context, productID int64) ([]record.SaleRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sale_id, member_id, product_id, sale_date, quantity, total_amount
		 FROM SaleRecords WHERE product_id = ? ORDER BY sale_date, sale_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales for product %d: %w", productID, err)
	}
	return scanSales(rows)
}

// InsertSaleRecord records a sale, assigning the next id.
func (s *Store) InsertSaleRecord(ctx context.Context, sale record.SaleRecord) (*record.SaleRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(sale_id), 0) + 1 FROM SaleRecords`).Scan(&sale.SaleID); err != nil {
		return nil, fmt.Errorf("failed to allocate sale id: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO SaleRecords (sale_id, member_id, product_id, sale_date, quantity, total_amount)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sale.SaleID, sale.MemberID, sale.ProductID, sale.SaleDate, sale.Quantity, sale.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to insert sale record: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sale insert: %w", err)
	}

	s.emit(EventSalesChanged, "insert", sale.SaleID)
	return &sale, nil
}

func scanProducts(rows *sql.Rows) ([]record.Product, error) {
	defer rows.Close()
	out := make([]record.Product, 0)
	for rows.Next() {
		var p record.Product
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.Description, &p.Price, &p.StockQuantity, &p.Image); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product rows: %w", err)
	}
	return out, nil
}

func scanMembers(rows *sql.Rows) ([]record.Member, error) {
	defer rows.Close()
	out := make([]record.Member, 0)
	for rows.Next() {
		var m record.Member
		if err := rows.Scan(&m.MemberID, &m.FirstName, &m.LastName, &m.Email, &m.DateJoined); err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read member rows: %w", err)
	}
	return out, nil
}

func scanSales(rows *sql.Rows) ([]record.SaleRecord, error) {
	defer rows.Close()
	out := make([]record.SaleRecord, 0)
	for rows.Next() {
		var r record.SaleRecord
		if err := rows.Scan(&r.SaleID, &r.MemberID, &r.ProductID, &r.SaleDate, &r.Quantity, &r.TotalAmount); err != nil {
			return nil, fmt.Errorf("failed to scan sale row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sale rows: %w", err)
	}
	return out, nil
}
