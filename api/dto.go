/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for the HTTP contract, decoupled from the domain types.
  Money travels as decimal strings on the wire (the persisted contract);
  timestamps are int64 nanoseconds.

NAMING CONVENTION:
  - *DTO: response types returned to clients
  - *Request: request body types from clients

The password hash never appears in a DTO.
*/
package api

import (
	"github.com/parkwise/parking-engine/parking"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// CreateUserRequest creates a user or admin account.
type CreateUserRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
}

type CreateSpotRequest struct {
	AdminID       string `json:"admin_id"`
	NumberOfSpots uint64 `json:"number_of_spots"`
	Location      string `json:"location"`
	PricePerHour  string `json:"price_per_hour"`
}

type CreateReservationRequest struct {
	UserID        string `json:"user_id"`
	SpotID        string `json:"spot_id"`
	DurationHours uint64 `json:"duration_hours"`
}

type CreatePaymentRequest struct {
	ReservationID string `json:"reservation_id"`
	Amount        string `json:"amount"`
}

// FundsRequest deposits or withdraws; the user comes from the URL.
type FundsRequest struct {
	Amount string `json:"amount"`
}

type ChangeRoleRequest struct {
	ActorID string `json:"actor_id,omitempty"`
	Role    string `json:"role"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

type UserDTO struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Balance     string `json:"balance"`
	CreatedAt   int64  `json:"created_at"`
}

type SpotDTO struct {
	ID            string `json:"id"`
	AdminID       string `json:"admin_id"`
	Location      string `json:"location"`
	Status        string `json:"status"`
	PricePerHour  string `json:"price_per_hour"`
	NumberOfSpots uint64 `json:"number_of_spots"`
	CreatedAt     int64  `json:"created_at"`
}

type ReservationDTO struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	SpotID        string `json:"spot_id"`
	ReservedAt    int64  `json:"reserved_at"`
	DurationHours uint64 `json:"duration_hours"`
	Status        string `json:"status"`
	AmountPayable string `json:"amount_payable"`
	CreatedAt     int64  `json:"created_at"`
}

type PaymentDTO struct {
	ID            string `json:"id"`
	ReservationID string `json:"reservation_id"`
	Amount        string `json:"amount"`
	Status        string `json:"status"`
	CreatedAt     int64  `json:"created_at"`
}

type TransactionDTO struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Amount    string `json:"amount"`
	Fee       string `json:"fee"`
	Timestamp int64  `json:"timestamp"`
}

// MessageResponse carries operation confirmations (deposit, withdrawal).
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toUserDTO(u parking.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		Role:        string(u.Role),
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Balance:     u.Balance.String(),
		CreatedAt:   u.CreatedAt,
	}
}

func toUserDTOs(users []parking.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = toUserDTO(u)
	}
	return dtos
}

func toSpotDTO(s parking.ParkingSpot) SpotDTO {
	return SpotDTO{
		ID:            s.ID,
		AdminID:       s.AdminID,
		Location:      s.Location,
		Status:        string(s.Status),
		PricePerHour:  s.PricePerHour.String(),
		NumberOfSpots: s.NumberOfSpots,
		CreatedAt:     s.CreatedAt,
	}
}

func toSpotDTOs(spots []parking.ParkingSpot) []SpotDTO {
	dtos := make([]SpotDTO, len(spots))
	for i, s := range spots {
		dtos[i] = toSpotDTO(s)
	}
	return dtos
}

func toReservationDTO(r parking.Reservation) ReservationDTO {
	return ReservationDTO{
		ID:            r.ID,
		UserID:        r.UserID,
		SpotID:        r.SpotID,
		ReservedAt:    r.ReservedAt,
		DurationHours: r.DurationHours,
		Status:        r.Status,
		AmountPayable: r.AmountPayable.String(),
		CreatedAt:     r.CreatedAt,
	}
}

func toReservationDTOs(rs []parking.Reservation) []ReservationDTO {
	dtos := make([]ReservationDTO, len(rs))
	for i, r := range rs {
		dtos[i] = toReservationDTO(r)
	}
	return dtos
}

func toPaymentDTO(p parking.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            p.ID,
		ReservationID: p.ReservationID,
		Amount:        p.Amount.String(),
		Status:        p.Status,
		CreatedAt:     p.CreatedAt,
	}
}

func toPaymentDTOs(ps []parking.Payment) []PaymentDTO {
	dtos := make([]PaymentDTO, len(ps))
	for i, p := range ps {
		dtos[i] = toPaymentDTO(p)
	}
	return dtos
}

func toTransactionDTO(t parking.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:        t.ID,
		UserID:    t.UserID,
		Amount:    t.Amount.String(),
		Fee:       t.Fee.String(),
		Timestamp: t.Timestamp,
	}
}

func toTransactionDTOs(txs []parking.Transaction) []TransactionDTO {
	dtos := make([]TransactionDTO, len(txs))
	for i, t := range txs {
		dtos[i] = toTransactionDTO(t)
	}
	return dtos
}
