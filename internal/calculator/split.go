package calculator

import "github.com/shopspring/decimal"

// Share returns the per-person share of an expense: amount / len(SplitMembers).
// The second result is false when the expense contributes nothing (nil, no
// payer, no split members or a negative amount).
func Share(e *Expense) (decimal.Decimal, bool) {
	if e == nil || e.PaidBy.ID == "" || len(e.SplitMembers) == 0 {
		return decimal.Zero, false
	}
	if e.Amount.IsNegative() {
		return decimal.Zero, false
	}
	return e.Amount.Div(decimal.NewFromInt(int64(len(e.SplitMembers)))), true
}

// Shares computes every split member's share of the expense, keyed by member id.
// A member listed twice owes two shares.
func Shares(e *Expense) map[string]decimal.Decimal {
	share, ok := Share(e)
	if !ok {
		return nil
	}
	shares := make(map[string]decimal.Decimal, len(e.SplitMembers))
	for _, m := range e.SplitMembers {
		shares[m.ID] = shares[m.ID].Add(share)
	}
	return shares
}
