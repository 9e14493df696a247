/*
handlers.go - HTTP handlers for the parking engine

PURPOSE:
  Exposes the parking service over REST. Handlers parse the request,
  delegate to the service, and translate results and typed errors into
  JSON responses.

ERROR HANDLING:
  Domain error kinds map to HTTP statuses:
  - InvalidPayload           400
  - NotFound                 404 (including empty list queries)
  - Forbidden                403
  - InsufficientBalance      409
  - anything else            500

SEE ALSO:
  - dto.go: request/response shapes
  - server.go: router and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/parkwise/parking-engine/parking"
)

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	Service *parking.Service
	Log     *logrus.Logger
}

// NewHandler creates a handler backed by the given service.
func NewHandler(svc *parking.Service, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{Service: svc, Log: log}
}

// =============================================================================
// USERS AND ADMINS
// =============================================================================

// CreateUser registers a regular user.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	h.createAccount(w, r, false)
}

// CreateAdmin registers an administrator.
func (h *Handler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	h.createAccount(w, r, true)
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request, admin bool) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	payload := parking.UserPayload{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
	}

	var (
		user *parking.User
		err  error
	)
	if admin {
		user, err = h.Service.CreateAdmin(r.Context(), payload)
	} else {
		user, err = h.Service.CreateUser(r.Context(), payload)
	}
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserDTO(*user))
}

// ListUsers returns every account.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.GetUsers(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTOs(users))
}

// ListAdmins returns accounts holding the admin role.
func (h *Handler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.Service.GetAdmins(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTOs(admins))
}

// GetUser returns a single account by ID.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.GetUserByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(*user))
}

// ChangeRole overwrites a user's role.
func (h *Handler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	var req ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.Service.ChangeUserRole(r.Context(), parking.ChangeUserRolePayload{
		ActorID: req.ActorID,
		UserID:  chi.URLParam(r, "id"),
		Role:    parking.Role(req.Role),
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(*user))
}

// =============================================================================
// FUNDS
// =============================================================================

// Deposit credits a user balance.
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.moveFunds(w, r, h.Service.DepositFunds)
}

// Withdraw debits a user balance, retaining the fee.
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.moveFunds(w, r, h.Service.WithdrawFunds)
}

func (h *Handler) moveFunds(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, p parking.FundsPayload) (string, error)) {
	var req FundsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	msg, err := op(r.Context(), parking.FundsPayload{
		UserID: chi.URLParam(r, "id"),
		Amount: req.Amount,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: msg})
}

// =============================================================================
// PARKING SPOTS
// =============================================================================

// CreateSpot publishes a parking spot.
func (h *Handler) CreateSpot(w http.ResponseWriter, r *http.Request) {
	var req CreateSpotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	spot, err := h.Service.CreateParkingSpot(r.Context(), parking.ParkingSpotPayload{
		AdminID:       req.AdminID,
		NumberOfSpots: req.NumberOfSpots,
		Location:      req.Location,
		PricePerHour:  req.PricePerHour,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSpotDTO(*spot))
}

// ListSpots returns every published spot.
func (h *Handler) ListSpots(w http.ResponseWriter, r *http.Request) {
	spots, err := h.Service.GetParkingSpots(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSpotDTOs(spots))
}

// ListAvailableSpots returns spots whose status is available.
func (h *Handler) ListAvailableSpots(w http.ResponseWriter, r *http.Request) {
	spots, err := h.Service.GetAvailableParkingSpots(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSpotDTOs(spots))
}

// FindSpotByLocation returns the first spot at the given location.
func (h *Handler) FindSpotByLocation(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		writeError(w, http.StatusBadRequest, "Missing location parameter", nil)
		return
	}
	spot, err := h.Service.GetParkingSpotByLocation(r.Context(), location)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSpotDTO(*spot))
}

// =============================================================================
// RESERVATIONS AND PAYMENTS
// =============================================================================

// CreateReservation books a spot.
func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	reservation, err := h.Service.CreateReservation(r.Context(), parking.ReservationPayload{
		UserID:        req.UserID,
		SpotID:        req.SpotID,
		DurationHours: req.DurationHours,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReservationDTO(*reservation))
}

// ListReservations returns every reservation.
func (h *Handler) ListReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.Service.GetReservations(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationDTOs(reservations))
}

// CreatePayment settles a reservation from the reserving user's balance.
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	payment, err := h.Service.CreatePayment(r.Context(), parking.PaymentPayload{
		ReservationID: req.ReservationID,
		Amount:        req.Amount,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentDTO(*payment))
}

// ListPayments returns every payment.
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Service.GetPayments(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentDTOs(payments))
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// ListTransactions returns the full audit log.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.Service.GetTransactions(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionDTOs(txs))
}

// GetTransactionByTimestamp returns the entry logged at a clock value.
func (h *Handler) GetTransactionByTimestamp(w http.ResponseWriter, r *http.Request) {
	ts, err := strconv.ParseInt(chi.URLParam(r, "timestamp"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid timestamp", err)
		return
	}
	tx, err := h.Service.GetTransactionByTimestamp(r.Context(), ts)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionDTO(*tx))
}

// ListUserTransactions returns the audit entries for one user.
func (h *Handler) ListUserTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.Service.GetUserTransactions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionDTOs(txs))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, parking.ErrInvalidPayload):
		writeErrorCode(w, http.StatusBadRequest, err.Error(), "invalid_payload")
	case errors.Is(err, parking.ErrNotFound):
		writeErrorCode(w, http.StatusNotFound, err.Error(), "not_found")
	case errors.Is(err, parking.ErrForbidden):
		writeErrorCode(w, http.StatusForbidden, err.Error(), "forbidden")
	case errors.Is(err, parking.ErrInsufficientBalance):
		writeErrorCode(w, http.StatusConflict, err.Error(), "insufficient_balance")
	default:
		h.Log.WithError(err).Error("internal error")
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func writeErrorCode(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}
