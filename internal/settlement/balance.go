package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/campuspool/ridepool/internal/expense"
	"github.com/campuspool/ridepool/internal/expense/split"
)

// settleTolerance is the band around zero inside which a balance counts as
// settled. Shares are cents-exact, but recorded payments and hand-entered
// unequal splits can leave sub-cent drift.
var settleTolerance = decimal.New(1, -2) // 0.01

// ComputeBalances folds a ride's expenses into each participant's net
// position: the payer is credited the full amount, every split participant is
// debited their share. A payer who is also in the split nets amount minus
// their own share.
//
// Expenses are assumed to have been validated at creation time; one whose
// split no longer computes is skipped rather than aborting the whole fold.
// Split entries for users outside the supplied participant list are ignored,
// as is a payer outside the list - the function never invents balance keys.
//
// The result is a fresh map on every call: same inputs, same output,
// regardless of expense order.
func ComputeBalances(participantIDs []string, expenses []*expense.ExpenseWithSplits) BalanceMap {
	balances := make(BalanceMap, len(participantIDs))
	for _, id := range participantIDs {
		balances[id] = decimal.Zero
	}

	factory := split.NewFactory()
	for _, e := range expenses {
		strategy, err := factory.Create(e.Expense.SplitPolicy)
		if err != nil {
			continue
		}
		shares, err := strategy.Compute(e.Expense.Amount, e.ParticipantIDs(), e.Weights())
		if err != nil {
			continue
		}

		if _, ok := balances[e.Expense.PayerID]; ok {
			balances[e.Expense.PayerID] = balances[e.Expense.PayerID].Add(e.Expense.Amount)
		}
		for id, share := range shares {
			if _, ok := balances[id]; ok {
				balances[id] = balances[id].Sub(share)
			}
		}
	}

	return balances
}

// ApplySettlements folds recorded payments into the balance map: the payer's
// debt shrinks, the receiver's credit shrinks. Settlements involving users
// outside the map are ignored the same way unknown expense participants are.
func ApplySettlements(balances BalanceMap, settlements []*Settlement) BalanceMap {
	for _, s := range settlements {
		if _, ok := balances[s.FromUserID]; ok {
			balances[s.FromUserID] = balances[s.FromUserID].Add(s.Amount)
		}
		if _, ok := balances[s.ToUserID]; ok {
			balances[s.ToUserID] = balances[s.ToUserID].Sub(s.Amount)
		}
	}
	return balances
}
