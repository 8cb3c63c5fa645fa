package settlement

import (
	"sort"

	"github.com/shopspring/decimal"
)

type party struct {
	id        string
	remaining decimal.Decimal
}

// PlanTransfers derives a short list of payments that settles every balance:
// debtors and creditors are each sorted largest-first and matched greedily
// with two cursors, transferring min(debt, credit) at every step.
//
// Greedy matching is an approximation - finding the true minimum number of
// transfers is a partition problem - but it never emits more than
// (number of unsettled participants - 1) payments.
//
// Sorting breaks amount ties by participant ID, so the plan is deterministic
// even though BalanceMap iteration order is not.
func PlanTransfers(balances BalanceMap) []Transfer {
	var creditors, debtors []party
	for id, balance := range balances {
		switch {
		case balance.GreaterThan(settleTolerance):
			creditors = append(creditors, party{id: id, remaining: balance})
		case balance.LessThan(settleTolerance.Neg()):
			debtors = append(debtors, party{id: id, remaining: balance.Neg()})
		}
	}

	sortLargestFirst(creditors)
	sortLargestFirst(debtors)

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := &debtors[i], &creditors[j]

		amount := decimal.Min(debtor.remaining, creditor.remaining)
		transfers = append(transfers, Transfer{
			FromID: debtor.id,
			ToID:   creditor.id,
			Amount: amount,
		})

		debtor.remaining = debtor.remaining.Sub(amount)
		creditor.remaining = creditor.remaining.Sub(amount)

		if debtor.remaining.LessThanOrEqual(settleTolerance) {
			i++
		}
		if creditor.remaining.LessThanOrEqual(settleTolerance) {
			j++
		}
	}

	return transfers
}

func sortLargestFirst(parties []party) {
	sort.Slice(parties, func(i, j int) bool {
		if !parties[i].remaining.Equal(parties[j].remaining) {
			return parties[i].remaining.GreaterThan(parties[j].remaining)
		}
		return parties[i].id < parties[j].id
	})
}
