package calculator

// Simplify turns the expenses of the given groups, re-based on the recorded
// settlements, into a list of suggested transfers.
//
// It is Reduce(Balances(groups, settlements)). An empty settlement list
// reduces the raw expense balances directly.
func Simplify(groups []Group, settlements []Settlement) []Transfer {
	return Reduce(Balances(groups, settlements))
}
