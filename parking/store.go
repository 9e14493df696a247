/*
store.go - Persistence interface for the five domain tables

PURPOSE:
  Defines the boundary between domain logic and the database. Each entity
  lives in its own table keyed by a unique string ID. The engine only needs
  insert, get-by-key and full enumeration; there are no cross-table queries
  at the storage level.

TABLES:
  users, parking_spots, reservations, payments, transactions

MUTABILITY CONTRACT:
  - Users are upserted (balance and role changes rewrite the record).
  - Spots, reservations and payments are insert-only.
  - Transactions are APPEND-ONLY: no update, no delete. The log is the
    audit trail for every balance change.

ABSENCE:
  Get* methods return (nil, nil) when the key does not exist. Storage
  errors are reserved for real failures.

IMPLEMENTATIONS:
  - store/sqlite: production SQLite store
  - parking/store: in-memory store for tests and dev

SEE ALSO:
  - service.go: the only consumer of this interface
*/
package parking

import "context"

// Store persists the five domain tables.
type Store interface {
	// Users. PutUser is an upsert: balance and role mutations rewrite the row.
	PutUser(ctx context.Context, u User) error
	GetUser(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)

	// Parking spots. Insert-only after creation.
	PutSpot(ctx context.Context, s ParkingSpot) error
	GetSpot(ctx context.Context, id string) (*ParkingSpot, error)
	ListSpots(ctx context.Context) ([]ParkingSpot, error)

	// Reservations. Insert-only; never mutated after creation.
	PutReservation(ctx context.Context, r Reservation) error
	GetReservation(ctx context.Context, id string) (*Reservation, error)
	ListReservations(ctx context.Context) ([]Reservation, error)

	// Payments. Insert-only.
	PutPayment(ctx context.Context, p Payment) error
	ListPayments(ctx context.Context) ([]Payment, error)

	// Transaction log. Append-only, keyed by Transaction.ID with Timestamp
	// as an indexed attribute.
	AppendTransaction(ctx context.Context, t Transaction) error
	ListTransactions(ctx context.Context) ([]Transaction, error)
	ListTransactionsByUser(ctx context.Context, userID string) ([]Transaction, error)
	FindTransactionByTimestamp(ctx context.Context, timestamp int64) (*Transaction, error)
}
