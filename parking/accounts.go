/*
accounts.go - Deposit, withdrawal and balance bookkeeping

PURPOSE:
  The only code that mutates a user balance lives here and in the payment
  settlement (reservations.go). Every mutation appends a Transaction to the
  audit log in the same operation.

RULES:
  - Balance never goes negative.
  - Withdrawals charge a 1% fee, floored to a whole unit. The sufficiency
    check compares the balance against the GROSS amount, while only
    amount-minus-fee is deducted. That asymmetry is part of the upstream
    contract and is preserved; see DESIGN.md.
  - Deposits carry a zero fee.
*/
package parking

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// withdrawalFee is 1% of the gross amount, floored.
func withdrawalFee(amount decimal.Decimal) decimal.Decimal {
	return amount.Div(hundred).Floor()
}

// DepositFunds credits a user balance and logs the transaction.
// There is no upper bound on deposits.
func (s *Service) DepositFunds(ctx context.Context, payload FundsPayload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	amount, err := ParseAmount(payload.Amount)
	if err != nil {
		return "", err
	}
	if amount.IsNegative() {
		return "", invalidPayload("Amount must not be negative")
	}

	user, err := s.store.GetUser(ctx, payload.UserID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", notFound("User not found")
	}

	user.Balance = user.Balance.Add(amount)
	if err := s.store.PutUser(ctx, *user); err != nil {
		return "", err
	}

	if err := s.logTransaction(ctx, user.ID, amount, decimal.Zero); err != nil {
		return "", err
	}

	s.log.WithFields(map[string]any{
		"user_id": user.ID,
		"amount":  amount.String(),
		"balance": user.Balance.String(),
	}).Info("deposit")

	return "Deposit successful", nil
}

// WithdrawFunds debits a user balance, retaining a 1% fee, and logs the
// transaction. Fails when the balance is below the gross amount.
func (s *Service) WithdrawFunds(ctx context.Context, payload FundsPayload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	amount, err := ParseAmount(payload.Amount)
	if err != nil {
		return "", err
	}
	if !amount.IsPositive() {
		return "", invalidPayload("Amount must be greater than zero")
	}

	user, err := s.store.GetUser(ctx, payload.UserID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", notFound("User not found")
	}

	if user.Balance.LessThan(amount) {
		return "", &InsufficientBalanceError{
			UserID:    user.ID,
			Available: user.Balance,
			Requested: amount,
		}
	}

	fee := withdrawalFee(amount)
	user.Balance = user.Balance.Sub(amount.Sub(fee))
	if err := s.store.PutUser(ctx, *user); err != nil {
		return "", err
	}

	if err := s.logTransaction(ctx, user.ID, amount, fee); err != nil {
		return "", err
	}

	s.log.WithFields(map[string]any{
		"user_id": user.ID,
		"amount":  amount.String(),
		"fee":     fee.String(),
		"balance": user.Balance.String(),
	}).Info("withdrawal")

	return fmt.Sprintf("Withdrawal successful. Fee applied: %s", fee.String()), nil
}

// logTransaction appends an audit record keyed by a generated ID. The
// timestamp is an attribute, so two entries in the same clock tick never
// overwrite each other.
func (s *Service) logTransaction(ctx context.Context, userID string, amount, fee decimal.Decimal) error {
	return s.store.AppendTransaction(ctx, Transaction{
		ID:        s.ids.NewID(),
		UserID:    userID,
		Amount:    amount,
		Fee:       fee,
		Timestamp: s.clock.Now(),
	})
}
