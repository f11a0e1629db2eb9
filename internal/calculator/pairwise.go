package calculator

import "github.com/shopspring/decimal"

// ComputePairwiseNet computes how much the counterparty owes the subject and
// how much the subject owes the counterparty across the given expenses.
//
// For every expense paid by the subject, each occurrence of the counterparty
// among the split members adds one share to SubjectCanPay; the symmetric case
// adds to CounterpartyCanPay. Expenses that fail Share are skipped. No
// rounding is applied.
func ComputePairwiseNet(subjectID string, expenses []*Expense, counterpartyID string) PairwiseNet {
	net := PairwiseNet{SubjectCanPay: decimal.Zero, CounterpartyCanPay: decimal.Zero}

	for _, e := range expenses {
		share, ok := Share(e)
		if !ok {
			continue
		}

		subjectPaid := e.PaidBy.ID == subjectID
		counterpartyPaid := e.PaidBy.ID == counterpartyID

		for _, m := range e.SplitMembers {
			switch {
			case subjectPaid && m.ID == counterpartyID:
				net.SubjectCanPay = net.SubjectCanPay.Add(share)
			case counterpartyPaid && m.ID == subjectID:
				net.CounterpartyCanPay = net.CounterpartyCanPay.Add(share)
			}
		}
	}

	return net
}
