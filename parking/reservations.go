/*
reservations.go - Reservation creation and payment settlement

PURPOSE:
  The reservation/payment workflow couples the store and the balance rules.
  A reservation fixes its payable amount at creation time (price per hour
  times duration, exact decimal arithmetic). Settlement succeeds only when
  the offered amount matches that figure exactly and the paying user can
  cover it.

PRESERVED CONTRACT QUIRKS (see DESIGN.md):
  - NumberOfSpots is checked for zero but never decremented.
  - The spot is never flipped to occupied.
  - The reservation status stays "reserved" after settlement.
  - Nothing prevents a second payment against the same reservation.
*/
package parking

import (
	"context"

	"github.com/shopspring/decimal"
)

// CreateReservation books a spot for a user. The payable amount is computed
// here and never changes afterwards.
func (s *Service) CreateReservation(ctx context.Context, payload ReservationPayload) (*Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.store.GetUser(ctx, payload.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("User not found")
	}

	spot, err := s.store.GetSpot(ctx, payload.SpotID)
	if err != nil {
		return nil, err
	}
	if spot == nil {
		return nil, notFound("Parking spot not found")
	}
	if spot.NumberOfSpots == 0 {
		return nil, invalidPayload("No available parking spots")
	}

	now := s.clock.Now()
	reservation := Reservation{
		ID:            s.ids.NewID(),
		UserID:        payload.UserID,
		SpotID:        payload.SpotID,
		ReservedAt:    now,
		DurationHours: payload.DurationHours,
		Status:        ReservationStatusReserved,
		AmountPayable: spot.PricePerHour.Mul(decimal.NewFromInt(int64(payload.DurationHours))),
		CreatedAt:     now,
	}

	if err := s.store.PutReservation(ctx, reservation); err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]any{
		"reservation_id": reservation.ID,
		"user_id":        reservation.UserID,
		"spot_id":        reservation.SpotID,
		"amount_payable": reservation.AmountPayable.String(),
	}).Info("reservation created")

	return &reservation, nil
}

// CreatePayment settles a reservation from the reserving user's balance.
// The amount must equal the reservation's payable amount exactly.
func (s *Service) CreatePayment(ctx context.Context, payload PaymentPayload) (*Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	amount, err := ParseAmount(payload.Amount)
	if err != nil {
		return nil, err
	}
	if err := ValidatePaymentAmount(amount); err != nil {
		return nil, err
	}

	reservation, err := s.store.GetReservation(ctx, payload.ReservationID)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, notFound("Reservation not found")
	}

	if !reservation.AmountPayable.Equal(amount) {
		return nil, invalidPayload("Amount does not match the amount payable")
	}

	user, err := s.store.GetUser(ctx, reservation.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("User not found")
	}

	if user.Balance.LessThan(amount) {
		return nil, &InsufficientBalanceError{
			UserID:    user.ID,
			Available: user.Balance,
			Requested: amount,
		}
	}

	user.Balance = user.Balance.Sub(amount)
	if err := s.store.PutUser(ctx, *user); err != nil {
		return nil, err
	}

	payment := Payment{
		ID:            s.ids.NewID(),
		ReservationID: reservation.ID,
		Amount:        amount,
		Status:        PaymentStatusCompleted,
		CreatedAt:     s.clock.Now(),
	}
	if err := s.store.PutPayment(ctx, payment); err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]any{
		"payment_id":     payment.ID,
		"reservation_id": reservation.ID,
		"user_id":        user.ID,
		"amount":         amount.String(),
		"balance":        user.Balance.String(),
	}).Info("payment completed")

	return &payment, nil
}
