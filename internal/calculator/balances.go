package calculator

import "github.com/shopspring/decimal"

// ledger tracks one signed balance per member in discovery order.
type ledger struct {
	members  []Member
	index    map[string]int
	balances []decimal.Decimal
}

func newLedger() *ledger {
	return &ledger{index: make(map[string]int)}
}

// add registers a member; the first record seen for an id wins.
func (l *ledger) add(m Member) {
	if m.ID == "" {
		return
	}
	if _, exists := l.index[m.ID]; exists {
		return
	}
	l.index[m.ID] = len(l.members)
	l.members = append(l.members, m)
	l.balances = append(l.balances, decimal.Zero)
}

// move records that from owes to the given amount.
func (l *ledger) move(fromID, toID string, amount decimal.Decimal) bool {
	from, okFrom := l.index[fromID]
	to, okTo := l.index[toID]
	if !okFrom || !okTo {
		return false
	}
	l.balances[from] = l.balances[from].Sub(amount)
	l.balances[to] = l.balances[to].Add(amount)
	return true
}

func (l *ledger) snapshot() []Balance {
	out := make([]Balance, len(l.members))
	for i, m := range l.members {
		out[i] = Balance{Member: m, Amount: l.balances[i]}
	}
	return out
}

// mergeExpenses flattens the groups' expense lists, coalescing repeats.
// The key is the expense ID when set and the pointer otherwise, so the same
// object shared by two groups counts once while two distinct objects with
// identical content and no ID both count.
func mergeExpenses(groups []Group) []*Expense {
	seenIDs := make(map[string]bool)
	seenPtrs := make(map[*Expense]bool)

	var merged []*Expense
	for _, g := range groups {
		for _, e := range g.Expenses {
			if e == nil {
				continue
			}
			if e.ID != "" {
				if seenIDs[e.ID] {
					continue
				}
				seenIDs[e.ID] = true
			} else {
				if seenPtrs[e] {
					continue
				}
				seenPtrs[e] = true
			}
			merged = append(merged, e)
		}
	}
	return merged
}

// Balances aggregates every pairwise net across the members of all groups
// into one signed balance per member, then re-bases the result on the
// recorded settlements.
//
// Algorithm:
//   - Members are deduplicated by id in discovery order, starting at zero
//   - Each unordered pair (A, B) is processed once, A before B in discovery order
//   - What A owes B moves from A to B and what B owes A moves from B to A
//   - A settlement from payer to receiver moves its amount back from receiver
//     to payer; settlements naming unknown members or non-positive amounts are skipped
func Balances(groups []Group, settlements []Settlement) []Balance {
	l := newLedger()
	for _, g := range groups {
		for _, m := range g.Members {
			l.add(m)
		}
	}

	expenses := mergeExpenses(groups)

	for i := 0; i < len(l.members); i++ {
		for j := i + 1; j < len(l.members); j++ {
			a, b := l.members[i], l.members[j]
			net := ComputePairwiseNet(a.ID, expenses, b.ID)

			l.move(a.ID, b.ID, net.CounterpartyCanPay)
			l.move(b.ID, a.ID, net.SubjectCanPay)
		}
	}

	for _, s := range settlements {
		if !s.Amount.IsPositive() {
			continue
		}
		// The payer has covered part of their debt: the receiver now "owes"
		// that amount back into the ledger.
		l.move(s.ReceiverID, s.PayerID, s.Amount)
	}

	return l.snapshot()
}

// Summary bundles the balances and the transfers that clear them.
type Summary struct {
	Balances  []Balance
	Transfers []Transfer
}

// Summarize computes balances and reduces them in one call.
func Summarize(groups []Group, settlements []Settlement) Summary {
	balances := Balances(groups, settlements)
	return Summary{
		Balances:  balances,
		Transfers: Reduce(balances),
	}
}
