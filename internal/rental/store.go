package rental

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	sqlite3 "github.com/mutecomm/go-sqlcipher/v4"

	"github.com/miniapartment/e2e/internal/errs"
)

// SQLiteDriverName is the project-specific SQLCipher driver registration.
const SQLiteDriverName = "sqlite3_miniapartment"

func init() {
	sql.Register(SQLiteDriverName, &sqlite3.SQLiteDriver{})
}

const schema = `
CREATE TABLE IF NOT EXISTS rooms (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	address     TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	price       INTEGER NOT NULL DEFAULT 0,
	status      TEXT NOT NULL DEFAULT 'AVAILABLE',
	created_at  INTEGER NOT NULL,
	updated_at  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS assets (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	condition  TEXT NOT NULL DEFAULT '',
	room_id    TEXT NOT NULL DEFAULT '',
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS invoices (
	id                 TEXT PRIMARY KEY,
	room_id            TEXT NOT NULL,
	month_year         TEXT NOT NULL,
	electricity_start  INTEGER NOT NULL,
	electricity_end    INTEGER NOT NULL,
	water_start        INTEGER NOT NULL,
	water_end          INTEGER NOT NULL,
	electricity_charge INTEGER NOT NULL,
	water_charge       INTEGER NOT NULL,
	total              INTEGER NOT NULL,
	status             TEXT NOT NULL DEFAULT 'UNPAID',
	paid_at            INTEGER,
	created_at         INTEGER NOT NULL,
	updated_at         INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS notifications (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	body       TEXT NOT NULL DEFAULT '',
	audience   TEXT NOT NULL DEFAULT 'ALL',
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL,
	created_at    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_rooms_name ON rooms(name);
CREATE INDEX IF NOT EXISTS idx_invoices_room ON invoices(room_id);
CREATE INDEX IF NOT EXISTS idx_assets_room ON assets(room_id);
`

// Store is the sqlite-backed persistence layer of the reference server.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and bootstraps the
// schema. The parent directory is created when missing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	dsn := path + "?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on"
	db, err := sql.Open(SQLiteDriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying handle for health probes and fixture resets.
func (s *Store) DB() *sql.DB { return s.db }

// Reset deletes all domain rows. Used by test fixtures between tests.
func (s *Store) Reset(ctx context.Context) error {
	for _, table := range []string{"rooms", "assets", "invoices", "notifications"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}

// normalizeListParams applies defaults and validates the pagination window.
func normalizeListParams(p *ListParams) error {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Limit == 0 {
		p.Limit = 10
	}
	if p.Page < 1 {
		return errs.New(errs.InvalidArgument, "page must be a positive integer")
	}
	if p.Limit < 1 || p.Limit > MaxPageLimit {
		return errs.New(errs.InvalidArgument, fmt.Sprintf("limit must be between 1 and %d", MaxPageLimit))
	}
	switch p.SortOrder {
	case "", "asc", "desc":
	default:
		return errs.New(errs.InvalidArgument, "sortOrder must be asc or desc")
	}
	return nil
}

var roomSortColumns = map[string]string{
	"":          "created_at",
	"name":      "name",
	"price":     "price",
	"status":    "status",
	"address":   "address",
	"createdAt": "created_at",
}

// =============================================================================
// Rooms
// =============================================================================

// CreateRoom inserts a room with a server-assigned ID.
func (s *Store) CreateRoom(ctx context.Context, r Room) (Room, error) {
	if strings.TrimSpace(r.Name) == "" {
		return Room{}, errs.New(errs.InvalidArgument, "room name is required")
	}
	if r.Status == "" {
		r.Status = RoomAvailable
	}
	now := time.Now().UTC()
	r.ID = uuid.NewString()
	r.CreatedAt = now
	r.UpdatedAt = now
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rooms (id, name, address, description, price, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.Address, r.Description, r.Price, r.Status,
		r.CreatedAt.UnixNano(), r.UpdatedAt.UnixNano())
	if err != nil {
		return Room{}, fmt.Errorf("insert room: %w", err)
	}
	return r, nil
}

// GetRoom fetches one room by ID.
func (s *Store) GetRoom(ctx context.Context, id string) (Room, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, address, description, price, status, created_at, updated_at
		 FROM rooms WHERE id = ?`, id)
	return scanRoom(row)
}

// UpdateRoom replaces the mutable fields of a room and bumps updated_at.
func (s *Store) UpdateRoom(ctx context.Context, id string, r Room) (Room, error) {
	existing, err := s.GetRoom(ctx, id)
	if err != nil {
		return Room{}, err
	}
	if strings.TrimSpace(r.Name) == "" {
		return Room{}, errs.New(errs.InvalidArgument, "room name is required")
	}
	if r.Status == "" {
		r.Status = existing.Status
	}
	updatedAt := time.Now().UTC()
	if !updatedAt.After(existing.UpdatedAt) {
		updatedAt = existing.UpdatedAt.Add(time.Nanosecond)
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE rooms SET name = ?, address = ?, description = ?, price = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		r.Name, r.Address, r.Description, r.Price, r.Status, updatedAt.UnixNano(), id)
	if err != nil {
		return Room{}, fmt.Errorf("update room: %w", err)
	}
	return s.GetRoom(ctx, id)
}

// DeleteRoom removes a room. Rooms with unpaid invoices cannot be removed.
func (s *Store) DeleteRoom(ctx context.Context, id string) error {
	if _, err := s.GetRoom(ctx, id); err != nil {
		return err
	}
	var unpaid int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM invoices WHERE room_id = ? AND status = ?`, id, InvoiceUnpaid).Scan(&unpaid)
	if err != nil {
		return fmt.Errorf("count unpaid invoices: %w", err)
	}
	if unpaid > 0 {
		return errs.New(errs.FailedPrecondition, "room has unpaid invoices")
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	return nil
}

// ListRooms returns one page of rooms with optional status filter, search
// over name/address/description, and a whitelisted sort.
func (s *Store) ListRooms(ctx context.Context, p ListParams) ([]Room, Pagination, error) {
	if err := normalizeListParams(&p); err != nil {
		return nil, Pagination{}, err
	}
	col, ok := roomSortColumns[p.SortBy]
	if !ok {
		return nil, Pagination{}, errs.New(errs.InvalidArgument, "unsupported sortBy field")
	}
	order := "ASC"
	if p.SortOrder == "desc" {
		order = "DESC"
	}

	where := "1=1"
	args := []any{}
	if p.Status != "" {
		where += " AND status = ?"
		args = append(args, p.Status)
	}
	if p.Search != "" {
		where += " AND (name LIKE ? OR address LIKE ? OR description LIKE ?)"
		like := "%" + p.Search + "%"
		args = append(args, like, like, like)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM rooms WHERE "+where, args...).Scan(&total); err != nil {
		return nil, Pagination{}, fmt.Errorf("count rooms: %w", err)
	}

	// Secondary sort on id keeps page boundaries stable when the primary
	// sort column has duplicates.
	query := fmt.Sprintf(
		`SELECT id, name, address, description, price, status, created_at, updated_at
		 FROM rooms WHERE %s ORDER BY %s %s, id ASC LIMIT ? OFFSET ?`, where, col, order)
	args = append(args, p.Limit, (p.Page-1)*p.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	items := []Room{}
	for rows.Next() {
		r, err := scanRoom(rows)
		if err != nil {
			return nil, Pagination{}, err
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, Pagination{}, fmt.Errorf("iterate rooms: %w", err)
	}
	return items, NewPagination(p.Page, p.Limit, total), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(row rowScanner) (Room, error) {
	var r Room
	var created, updated int64
	err := row.Scan(&r.ID, &r.Name, &r.Address, &r.Description, &r.Price, &r.Status, &created, &updated)
	if err == sql.ErrNoRows {
		return Room{}, errs.New(errs.NotFound, "room not found")
	}
	if err != nil {
		return Room{}, fmt.Errorf("scan room: %w", err)
	}
	r.CreatedAt = time.Unix(0, created).UTC()
	r.UpdatedAt = time.Unix(0, updated).UTC()
	return r, nil
}

// =============================================================================
// Assets
// =============================================================================

// CreateAsset inserts an asset, optionally assigned to an existing room.
func (s *Store) CreateAsset(ctx context.Context, a Asset) (Asset, error) {
	if strings.TrimSpace(a.Name) == "" {
		return Asset{}, errs.New(errs.InvalidArgument, "asset name is required")
	}
	if a.RoomID != "" {
		if _, err := s.GetRoom(ctx, a.RoomID); err != nil {
			return Asset{}, err
		}
	}
	now := time.Now().UTC()
	a.ID = uuid.NewString()
	a.CreatedAt = now
	a.UpdatedAt = now
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assets (id, name, condition, room_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Condition, a.RoomID, a.CreatedAt.UnixNano(), a.UpdatedAt.UnixNano())
	if err != nil {
		return Asset{}, fmt.Errorf("insert asset: %w", err)
	}
	return a, nil
}

// GetAsset fetches one asset by ID.
func (s *Store) GetAsset(ctx context.Context, id string) (Asset, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, condition, room_id, created_at, updated_at FROM assets WHERE id = ?`, id)
	return scanAsset(row)
}

// UpdateAsset replaces the mutable fields of an asset.
func (s *Store) UpdateAsset(ctx context.Context, id string, a Asset) (Asset, error) {
	existing, err := s.GetAsset(ctx, id)
	if err != nil {
		return Asset{}, err
	}
	if strings.TrimSpace(a.Name) == "" {
		return Asset{}, errs.New(errs.InvalidArgument, "asset name is required")
	}
	if a.RoomID != "" && a.RoomID != existing.RoomID {
		if _, err := s.GetRoom(ctx, a.RoomID); err != nil {
			return Asset{}, err
		}
	}
	updatedAt := time.Now().UTC()
	if !updatedAt.After(existing.UpdatedAt) {
		updatedAt = existing.UpdatedAt.Add(time.Nanosecond)
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE assets SET name = ?, condition = ?, room_id = ?, updated_at = ? WHERE id = ?`,
		a.Name, a.Condition, a.RoomID, updatedAt.UnixNano(), id)
	if err != nil {
		return Asset{}, fmt.Errorf("update asset: %w", err)
	}
	return s.GetAsset(ctx, id)
}

// DeleteAsset removes an asset. Assets assigned to a room are protected.
func (s *Store) DeleteAsset(ctx context.Context, id string) error {
	a, err := s.GetAsset(ctx, id)
	if err != nil {
		return err
	}
	if a.RoomID != "" {
		return errs.New(errs.FailedPrecondition, "asset is assigned to a room and cannot be deleted")
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM assets WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	return nil
}

// ListAssets returns one page of assets with optional search over names.
func (s *Store) ListAssets(ctx context.Context, p ListParams) ([]Asset, Pagination, error) {
	if err := normalizeListParams(&p); err != nil {
		return nil, Pagination{}, err
	}

	where := "1=1"
	args := []any{}
	if p.Search != "" {
		where += " AND name LIKE ?"
		args = append(args, "%"+p.Search+"%")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM assets WHERE "+where, args...).Scan(&total); err != nil {
		return nil, Pagination{}, fmt.Errorf("count assets: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT id, name, condition, room_id, created_at, updated_at
		 FROM assets WHERE %s ORDER BY created_at ASC, id ASC LIMIT ? OFFSET ?`, where)
	args = append(args, p.Limit, (p.Page-1)*p.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	items := []Asset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, Pagination{}, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, Pagination{}, fmt.Errorf("iterate assets: %w", err)
	}
	return items, NewPagination(p.Page, p.Limit, total), nil
}

func scanAsset(row rowScanner) (Asset, error) {
	var a Asset
	var created, updated int64
	err := row.Scan(&a.ID, &a.Name, &a.Condition, &a.RoomID, &created, &updated)
	if err == sql.ErrNoRows {
		return Asset{}, errs.New(errs.NotFound, "asset not found")
	}
	if err != nil {
		return Asset{}, fmt.Errorf("scan asset: %w", err)
	}
	a.CreatedAt = time.Unix(0, created).UTC()
	a.UpdatedAt = time.Unix(0, updated).UTC()
	return a, nil
}

// =============================================================================
// Invoices
// =============================================================================

// CreateInvoice validates meter readings, computes charges, and inserts the
// invoice as UNPAID.
func (s *Store) CreateInvoice(ctx context.Context, inv Invoice) (Invoice, error) {
	if _, err := s.GetRoom(ctx, inv.RoomID); err != nil {
		return Invoice{}, err
	}
	if strings.TrimSpace(inv.MonthYear) == "" {
		return Invoice{}, errs.New(errs.InvalidArgument, "monthYear is required")
	}
	if err := ComputeCharges(&inv); err != nil {
		return Invoice{}, err
	}
	now := time.Now().UTC()
	inv.ID = uuid.NewString()
	inv.Status = InvoiceUnpaid
	inv.PaidAt = nil
	inv.CreatedAt = now
	inv.UpdatedAt = now
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO invoices (id, room_id, month_year, electricity_start, electricity_end,
		 water_start, water_end, electricity_charge, water_charge, total, status, paid_at,
		 created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, ?, ?)`,
		inv.ID, inv.RoomID, inv.MonthYear, inv.ElectricityStart, inv.ElectricityEnd,
		inv.WaterStart, inv.WaterEnd, inv.ElectricityCharge, inv.WaterCharge, inv.Total,
		inv.Status, inv.CreatedAt.UnixNano(), inv.UpdatedAt.UnixNano())
	if err != nil {
		return Invoice{}, fmt.Errorf("insert invoice: %w", err)
	}
	return inv, nil
}

// GetInvoice fetches one invoice by ID.
func (s *Store) GetInvoice(ctx context.Context, id string) (Invoice, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, room_id, month_year, electricity_start, electricity_end, water_start,
		 water_end, electricity_charge, water_charge, total, status, paid_at, created_at, updated_at
		 FROM invoices WHERE id = ?`, id)
	return scanInvoice(row)
}

// UpdateInvoice replaces the meter readings of an unpaid invoice and
// recomputes its charges. Paid invoices are immutable.
func (s *Store) UpdateInvoice(ctx context.Context, id string, inv Invoice) (Invoice, error) {
	existing, err := s.GetInvoice(ctx, id)
	if err != nil {
		return Invoice{}, err
	}
	if existing.Status == InvoicePaid {
		return Invoice{}, errs.New(errs.FailedPrecondition, "a paid invoice cannot be modified")
	}
	if err := ComputeCharges(&inv); err != nil {
		return Invoice{}, err
	}
	updatedAt := time.Now().UTC()
	if !updatedAt.After(existing.UpdatedAt) {
		updatedAt = existing.UpdatedAt.Add(time.Nanosecond)
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE invoices SET electricity_start = ?, electricity_end = ?, water_start = ?,
		 water_end = ?, electricity_charge = ?, water_charge = ?, total = ?, updated_at = ?
		 WHERE id = ?`,
		inv.ElectricityStart, inv.ElectricityEnd, inv.WaterStart, inv.WaterEnd,
		inv.ElectricityCharge, inv.WaterCharge, inv.Total, updatedAt.UnixNano(), id)
	if err != nil {
		return Invoice{}, fmt.Errorf("update invoice: %w", err)
	}
	return s.GetInvoice(ctx, id)
}

// MarkInvoicePaid transitions an invoice UNPAID -> PAID. Paying twice is
// rejected so double payments surface in tests.
func (s *Store) MarkInvoicePaid(ctx context.Context, id string) (Invoice, error) {
	existing, err := s.GetInvoice(ctx, id)
	if err != nil {
		return Invoice{}, err
	}
	if existing.Status == InvoicePaid {
		return Invoice{}, errs.New(errs.FailedPrecondition, "invoice is already paid")
	}
	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`UPDATE invoices SET status = ?, paid_at = ?, updated_at = ? WHERE id = ?`,
		InvoicePaid, now.UnixNano(), now.UnixNano(), id)
	if err != nil {
		return Invoice{}, fmt.Errorf("mark invoice paid: %w", err)
	}
	return s.GetInvoice(ctx, id)
}

// DeleteInvoice removes an unpaid invoice. Paid invoices are retained as
// payment records.
func (s *Store) DeleteInvoice(ctx context.Context, id string) error {
	existing, err := s.GetInvoice(ctx, id)
	if err != nil {
		return err
	}
	if existing.Status == InvoicePaid {
		return errs.New(errs.FailedPrecondition, "a paid invoice cannot be deleted")
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// ListInvoices returns one page of invoices with optional status filter.
func (s *Store) ListInvoices(ctx context.Context, p ListParams) ([]Invoice, Pagination, error) {
	if err := normalizeListParams(&p); err != nil {
		return nil, Pagination{}, err
	}

	where := "1=1"
	args := []any{}
	if p.Status != "" {
		where += " AND status = ?"
		args = append(args, p.Status)
	}
	if p.Search != "" {
		where += " AND month_year LIKE ?"
		args = append(args, "%"+p.Search+"%")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM invoices WHERE "+where, args...).Scan(&total); err != nil {
		return nil, Pagination{}, fmt.Errorf("count invoices: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT id, room_id, month_year, electricity_start, electricity_end, water_start,
		 water_end, electricity_charge, water_charge, total, status, paid_at, created_at, updated_at
		 FROM invoices WHERE %s ORDER BY created_at DESC, id ASC LIMIT ? OFFSET ?`, where)
	args = append(args, p.Limit, (p.Page-1)*p.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	items := []Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, Pagination{}, err
		}
		items = append(items, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, Pagination{}, fmt.Errorf("iterate invoices: %w", err)
	}
	return items, NewPagination(p.Page, p.Limit, total), nil
}

func scanInvoice(row rowScanner) (Invoice, error) {
	var inv Invoice
	var paidAt sql.NullInt64
	var created, updated int64
	err := row.Scan(&inv.ID, &inv.RoomID, &inv.MonthYear, &inv.ElectricityStart,
		&inv.ElectricityEnd, &inv.WaterStart, &inv.WaterEnd, &inv.ElectricityCharge,
		&inv.WaterCharge, &inv.Total, &inv.Status, &paidAt, &created, &updated)
	if err == sql.ErrNoRows {
		return Invoice{}, errs.New(errs.NotFound, "invoice not found")
	}
	if err != nil {
		return Invoice{}, fmt.Errorf("scan invoice: %w", err)
	}
	if paidAt.Valid {
		t := time.Unix(0, paidAt.Int64).UTC()
		inv.PaidAt = &t
	}
	inv.CreatedAt = time.Unix(0, created).UTC()
	inv.UpdatedAt = time.Unix(0, updated).UTC()
	return inv, nil
}

// =============================================================================
// Notifications
// =============================================================================

// CreateNotification inserts an announcement.
func (s *Store) CreateNotification(ctx context.Context, n Notification) (Notification, error) {
	if strings.TrimSpace(n.Title) == "" {
		return Notification{}, errs.New(errs.InvalidArgument, "notification title is required")
	}
	if n.Audience == "" {
		n.Audience = "ALL"
	}
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notifications (id, title, body, audience, created_at) VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.Title, n.Body, n.Audience, n.CreatedAt.UnixNano())
	if err != nil {
		return Notification{}, fmt.Errorf("insert notification: %w", err)
	}
	return n, nil
}

// DeleteNotification removes an announcement.
func (s *Store) DeleteNotification(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.New(errs.NotFound, "notification not found")
	}
	return nil
}

// ListNotifications returns one page of announcements visible to a role.
func (s *Store) ListNotifications(ctx context.Context, role string, p ListParams) ([]Notification, Pagination, error) {
	if err := normalizeListParams(&p); err != nil {
		return nil, Pagination{}, err
	}

	where := "(audience = 'ALL' OR audience = ?)"
	args := []any{role}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM notifications WHERE "+where, args...).Scan(&total); err != nil {
		return nil, Pagination{}, fmt.Errorf("count notifications: %w", err)
	}

	query := `SELECT id, title, body, audience, created_at FROM notifications
		 WHERE ` + where + ` ORDER BY created_at DESC, id ASC LIMIT ? OFFSET ?`
	args = append(args, p.Limit, (p.Page-1)*p.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	items := []Notification{}
	for rows.Next() {
		var n Notification
		var created int64
		if err := rows.Scan(&n.ID, &n.Title, &n.Body, &n.Audience, &created); err != nil {
			return nil, Pagination{}, fmt.Errorf("scan notification: %w", err)
		}
		n.CreatedAt = time.Unix(0, created).UTC()
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, Pagination{}, fmt.Errorf("iterate notifications: %w", err)
	}
	return items, NewPagination(p.Page, p.Limit, total), nil
}

// =============================================================================
// Dashboard aggregates
// =============================================================================

// MonthlyRevenue sums paid invoice totals for a month plus the rent of
// currently occupied rooms. Feeds the dashboard revenue card.
func (s *Store) MonthlyRevenue(ctx context.Context, monthYear string) (int64, error) {
	var invoiced sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT SUM(total) FROM invoices WHERE month_year = ? AND status = ?`,
		monthYear, InvoicePaid).Scan(&invoiced)
	if err != nil {
		return 0, fmt.Errorf("sum paid invoices: %w", err)
	}
	var rent sql.NullInt64
	err = s.db.QueryRowContext(ctx,
		`SELECT SUM(price) FROM rooms WHERE status = ?`, RoomOccupied).Scan(&rent)
	if err != nil {
		return 0, fmt.Errorf("sum occupied rent: %w", err)
	}
	return invoiced.Int64 + rent.Int64, nil
}

// CountRooms returns total rooms and how many are occupied.
func (s *Store) CountRooms(ctx context.Context) (total, occupied int, err error) {
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&total); err != nil {
		return 0, 0, fmt.Errorf("count rooms: %w", err)
	}
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms WHERE status = ?`, RoomOccupied).Scan(&occupied); err != nil {
		return 0, 0, fmt.Errorf("count occupied rooms: %w", err)
	}
	return total, occupied, nil
}
