package calculator

import "github.com/shopspring/decimal"

type position struct {
	member Member
	amount decimal.Decimal // always positive
}

// Reduce matches debtors with creditors greedily.
//
// Debtors (negative balances) and creditors (positive balances) keep the
// order of the input. The first outstanding debtor pays the first
// outstanding creditor min(debt, credit), and whichever side reaches zero
// moves on. The result clears every balance when they sum to zero, but it
// is not guaranteed to have the fewest possible transfers.
func Reduce(balances []Balance) []Transfer {
	var debtors, creditors []position
	for _, b := range balances {
		switch {
		case b.Amount.IsNegative():
			debtors = append(debtors, position{member: b.Member, amount: b.Amount.Neg()})
		case b.Amount.IsPositive():
			creditors = append(creditors, position{member: b.Member, amount: b.Amount})
		}
	}

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := decimal.Min(debtor.amount, creditor.amount)
		if amount.IsPositive() {
			transfers = append(transfers, Transfer{
				From:   debtor.member,
				To:     creditor.member,
				Amount: amount,
			})
		}

		debtor.amount = debtor.amount.Sub(amount)
		creditor.amount = creditor.amount.Sub(amount)

		if !debtor.amount.IsPositive() {
			i++
		}
		if !creditor.amount.IsPositive() {
			j++
		}
	}

	return transfers
}
