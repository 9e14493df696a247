/*
Package sqlite provides the SQLite-backed implementation of parking.Store.

PURPOSE:
  Persists the five domain tables (users, parking spots, reservations,
  payments, transaction log) so records survive process restarts. In
  production the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

KEY TABLES:
  users          - upserted on balance/role changes
  parking_spots  - insert-only
  reservations   - insert-only, amount fixed at creation
  payments       - insert-only
  transactions   - append-only audit log, keyed by ID with an indexed
                   timestamp column (two entries may share a tick)

MONEY:
  Decimal amounts are stored as TEXT and parsed back with
  shopspring/decimal, so no precision is lost round-tripping.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): readers don't block,
  single writer at a time, better crash recovery.

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - parking/store.go: interface definition
  - parking/store/memory.go: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/parkwise/parking-engine/parking"
)

// Store implements parking.Store using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		email TEXT NOT NULL,
		phone_number TEXT,
		first_name TEXT,
		last_name TEXT,
		balance TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS parking_spots (
		id TEXT PRIMARY KEY,
		admin_id TEXT NOT NULL,
		location TEXT NOT NULL,
		status TEXT NOT NULL,
		price_per_hour TEXT NOT NULL,
		number_of_spots INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_spots_location
		ON parking_spots(location);

	CREATE TABLE IF NOT EXISTS reservations (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		spot_id TEXT NOT NULL,
		reserved_at INTEGER NOT NULL,
		duration_hours INTEGER NOT NULL,
		status TEXT NOT NULL,
		amount_payable TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reservations_user
		ON reservations(user_id);

	CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		reservation_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	-- Append-only audit log. Keyed by id; timestamp is an indexed
	-- attribute so same-tick entries cannot collide.
	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		fee TEXT NOT NULL,
		timestamp INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_user
		ON transactions(user_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_timestamp
		ON transactions(timestamp);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// USERS
// =============================================================================

func (s *Store) PutUser(ctx context.Context, u parking.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, password_hash, role, email, phone_number, first_name, last_name, balance, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			password_hash = excluded.password_hash,
			role = excluded.role,
			email = excluded.email,
			phone_number = excluded.phone_number,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			balance = excluded.balance`,
		u.ID, u.Username, u.PasswordHash, string(u.Role), u.Email,
		u.PhoneNumber, u.FirstName, u.LastName, u.Balance.String(), u.CreatedAt)
	return err
}

func (s *Store) GetUser(ctx context.Context, id string) (*parking.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, role, email, phone_number, first_name, last_name, balance, created_at
		FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]parking.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, username, password_hash, role, email, phone_number, first_name, last_name, balance, created_at
		FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []parking.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*parking.User, error) {
	var u parking.User
	var role, balance string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &u.Email,
		&u.PhoneNumber, &u.FirstName, &u.LastName, &balance, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = parking.Role(role)
	b, err := decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("corrupt balance for user %s: %w", u.ID, err)
	}
	u.Balance = b
	return &u, nil
}

// =============================================================================
// PARKING SPOTS
// =============================================================================

func (s *Store) PutSpot(ctx context.Context, sp parking.ParkingSpot) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO parking_spots (id, admin_id, location, status, price_per_hour, number_of_spots, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sp.ID, sp.AdminID, sp.Location, string(sp.Status),
		sp.PricePerHour.String(), sp.NumberOfSpots, sp.CreatedAt)
	return err
}

func (s *Store) GetSpot(ctx context.Context, id string) (*parking.ParkingSpot, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, admin_id, location, status, price_per_hour, number_of_spots, created_at
		FROM parking_spots WHERE id = ?`, id)
	sp, err := scanSpot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *Store) ListSpots(ctx context.Context) ([]parking.ParkingSpot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, admin_id, location, status, price_per_hour, number_of_spots, created_at
		FROM parking_spots ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var spots []parking.ParkingSpot
	for rows.Next() {
		sp, err := scanSpot(rows)
		if err != nil {
			return nil, err
		}
		spots = append(spots, *sp)
	}
	return spots, rows.Err()
}

func scanSpot(row scanner) (*parking.ParkingSpot, error) {
	var sp parking.ParkingSpot
	var status, price string
	if err := row.Scan(&sp.ID, &sp.AdminID, &sp.Location, &status,
		&price, &sp.NumberOfSpots, &sp.CreatedAt); err != nil {
		return nil, err
	}
	sp.Status = parking.SpotStatus(status)
	p, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("corrupt price for spot %s: %w", sp.ID, err)
	}
	sp.PricePerHour = p
	return &sp, nil
}

// =============================================================================
// RESERVATIONS
// =============================================================================

func (s *Store) PutReservation(ctx context.Context, r parking.Reservation) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reservations (id, user_id, spot_id, reserved_at, duration_hours, status, amount_payable, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.SpotID, r.ReservedAt, r.DurationHours,
		r.Status, r.AmountPayable.String(), r.CreatedAt)
	return err
}

func (s *Store) GetReservation(ctx context.Context, id string) (*parking.Reservation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, spot_id, reserved_at, duration_hours, status, amount_payable, created_at
		FROM reservations WHERE id = ?`, id)
	r, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Store) ListReservations(ctx context.Context) ([]parking.Reservation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, spot_id, reserved_at, duration_hours, status, amount_payable, created_at
		FROM reservations ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []parking.Reservation
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *r)
	}
	return reservations, rows.Err()
}

func scanReservation(row scanner) (*parking.Reservation, error) {
	var r parking.Reservation
	var amount string
	if err := row.Scan(&r.ID, &r.UserID, &r.SpotID, &r.ReservedAt,
		&r.DurationHours, &r.Status, &amount, &r.CreatedAt); err != nil {
		return nil, err
	}
	a, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("corrupt amount for reservation %s: %w", r.ID, err)
	}
	r.AmountPayable = a
	return &r, nil
}

// =============================================================================
// PAYMENTS
// =============================================================================

func (s *Store) PutPayment(ctx context.Context, p parking.Payment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payments (id, reservation_id, amount, status, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.ReservationID, p.Amount.String(), p.Status, p.CreatedAt)
	return err
}

func (s *Store) ListPayments(ctx context.Context) ([]parking.Payment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, reservation_id, amount, status, created_at
		FROM payments ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []parking.Payment
	for rows.Next() {
		var p parking.Payment
		var amount string
		if err := rows.Scan(&p.ID, &p.ReservationID, &amount, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		a, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount for payment %s: %w", p.ID, err)
		}
		p.Amount = a
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// =============================================================================
// TRANSACTION LOG (append-only)
// =============================================================================

func (s *Store) AppendTransaction(ctx context.Context, t parking.Transaction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, amount, fee, timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Amount.String(), t.Fee.String(), t.Timestamp)
	return err
}

func (s *Store) ListTransactions(ctx context.Context) ([]parking.Transaction, error) {
	return s.queryTransactions(ctx, `
		SELECT id, user_id, amount, fee, timestamp
		FROM transactions ORDER BY timestamp, rowid`)
}

func (s *Store) ListTransactionsByUser(ctx context.Context, userID string) ([]parking.Transaction, error) {
	return s.queryTransactions(ctx, `
		SELECT id, user_id, amount, fee, timestamp
		FROM transactions WHERE user_id = ? ORDER BY timestamp, rowid`, userID)
}

func (s *Store) FindTransactionByTimestamp(ctx context.Context, timestamp int64) (*parking.Transaction, error) {
	txs, err := s.queryTransactions(ctx, `
		SELECT id, user_id, amount, fee, timestamp
		FROM transactions WHERE timestamp = ? ORDER BY rowid LIMIT 1`, timestamp)
	if err != nil {
		return nil, err
	}
	if len(txs) == 0 {
		return nil, nil
	}
	return &txs[0], nil
}

func (s *Store) queryTransactions(ctx context.Context, query string, args ...any) ([]parking.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []parking.Transaction
	for rows.Next() {
		var t parking.Transaction
		var amount, fee string
		if err := rows.Scan(&t.ID, &t.UserID, &amount, &fee, &t.Timestamp); err != nil {
			return nil, err
		}
		a, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount for transaction %s: %w", t.ID, err)
		}
		f, err := decimal.NewFromString(fee)
		if err != nil {
			return nil, fmt.Errorf("corrupt fee for transaction %s: %w", t.ID, err)
		}
		t.Amount = a
		t.Fee = f
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
