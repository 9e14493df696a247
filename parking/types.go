/*
Package parking contains the core domain for the parking reservation and
payment engine.

PURPOSE:
  Users register and hold an internal balance, administrators publish parking
  spots, users reserve spots and settle the reservation from their balance.
  Every balance change is recorded in an append-only transaction log.

KEY CONCEPTS IN THIS FILE (types.go):
  - User: account with a role and a non-negative balance
  - ParkingSpot: a priced, located spot owned by an admin
  - Reservation: a spot booking with a payable amount fixed at creation
  - Payment: a completed settlement against a reservation
  - Transaction: an immutable audit entry for every balance change

DESIGN PRINCIPLES:
  1. Precision: money is decimal.Decimal, never float64
  2. Auditability: deposits, withdrawals and settlements all log a Transaction
  3. Immutability: reservations, payments and transactions are never mutated

SEE ALSO:
  - service.go: operations over these types
  - store.go: persistence interface
  - errors.go: typed error kinds returned by operations
*/
package parking

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// ROLES AND STATUSES
// =============================================================================

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return r == RoleUser || r == RoleAdmin }

type SpotStatus string

const (
	SpotAvailable SpotStatus = "available"
	SpotOccupied  SpotStatus = "occupied"
)

// Reservation and payment statuses are free text in the stored records.
// Reservations stay "reserved" even after settlement; see DESIGN.md.
const (
	ReservationStatusReserved = "reserved"
	PaymentStatusCompleted    = "completed"
)

// =============================================================================
// ENTITIES
// =============================================================================

// User is an account holder. Balance is kept in the smallest currency unit
// and is never allowed to go negative.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	Email        string
	PhoneNumber  string
	FirstName    string
	LastName     string
	Balance      decimal.Decimal
	CreatedAt    int64
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// ParkingSpot is a bookable location published by an admin.
// AdminID is recorded but not validated against the user table, and
// NumberOfSpots is checked for availability but never decremented.
type ParkingSpot struct {
	ID            string
	AdminID       string
	Location      string
	Status        SpotStatus
	PricePerHour  decimal.Decimal
	NumberOfSpots uint64
	CreatedAt     int64
}

// Reservation books a spot for a number of hours. AmountPayable is fixed at
// creation time (price per hour times duration) and settlement must match it
// exactly.
type Reservation struct {
	ID            string
	UserID        string
	SpotID        string
	ReservedAt    int64
	DurationHours uint64
	Status        string
	AmountPayable decimal.Decimal
	CreatedAt     int64
}

// Payment records a completed settlement against a reservation.
type Payment struct {
	ID            string
	ReservationID string
	Amount        decimal.Decimal
	Status        string
	CreatedAt     int64
}

// Transaction is an append-only audit record of a balance change.
// The record is keyed by its own ID; Timestamp is an indexed attribute so
// two transactions in the same clock tick cannot collide.
type Transaction struct {
	ID        string
	UserID    string
	Amount    decimal.Decimal
	Fee       decimal.Decimal
	Timestamp int64
}

// =============================================================================
// PAYLOADS - Operation inputs
// =============================================================================

// UserPayload creates a user or an admin. Password arrives in clear and is
// hashed before storage; it is never persisted as-is.
type UserPayload struct {
	Username    string
	Password    string
	Email       string
	PhoneNumber string
	FirstName   string
	LastName    string
}

type ParkingSpotPayload struct {
	AdminID       string
	NumberOfSpots uint64
	Location      string
	PricePerHour  string
}

type ReservationPayload struct {
	UserID        string
	SpotID        string
	DurationHours uint64
}

type PaymentPayload struct {
	ReservationID string
	Amount        string
}

// FundsPayload moves money into or out of a user balance.
type FundsPayload struct {
	UserID string
	Amount string
}

type ChangeUserRolePayload struct {
	// ActorID identifies who requested the change. It is consulted by the
	// Authorizer; the permissive default ignores it.
	ActorID string
	UserID  string
	Role    Role
}
