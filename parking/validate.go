// validate.go - Pure payload validation.
//
// Validators are side-effect free and total over their input shape. They
// return InvalidPayload errors with the message the API contract promises.
package parking

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ValidateUserPayload checks the required fields for user and admin creation.
func ValidateUserPayload(p UserPayload) error {
	if strings.TrimSpace(p.Username) == "" ||
		strings.TrimSpace(p.Password) == "" ||
		strings.TrimSpace(p.Email) == "" {
		return invalidPayload("Required fields missing")
	}
	return nil
}

// ValidateSpotPayload checks the required fields for spot creation.
func ValidateSpotPayload(p ParkingSpotPayload) error {
	if strings.TrimSpace(p.AdminID) == "" || strings.TrimSpace(p.Location) == "" {
		return invalidPayload("Missing required fields")
	}
	return nil
}

// ValidatePaymentAmount rejects non-positive settlement amounts.
func ValidatePaymentAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return invalidPayload("Amount must be greater than zero")
	}
	return nil
}

// ParseAmount converts a decimal-as-string from the wire into an exact
// decimal. The original contract carries money as strings; parsing failures
// are invalid payloads, not internal errors.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, invalidPayload("Amount is not a valid number")
	}
	return d, nil
}
