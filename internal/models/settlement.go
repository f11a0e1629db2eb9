package models

import "github.com/shopspring/decimal"

// Settlement represents a payment between two users to clear debts.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// PayerID is the user who paid (debtor settling up).
	PayerID string

	// ReceiverID is the user who received payment (creditor being paid).
	ReceiverID string

	// Amount is the payment amount.
	Amount decimal.Decimal

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64

	// CreatedBy is the user ID who recorded this settlement.
	CreatedBy string

	// Note is an optional description for the settlement.
	Note string
}
