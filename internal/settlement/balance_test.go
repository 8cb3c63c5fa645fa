package settlement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuspool/ridepool/internal/expense"
	"github.com/campuspool/ridepool/internal/expense/split"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// makeExpense builds an expense with stored splits the way the expense
// service would have persisted it
func makeExpense(payerID, amount string, policy split.Policy, participantIDs []string, weights map[string]string) *expense.ExpenseWithSplits {
	ews := &expense.ExpenseWithSplits{
		Expense: &expense.Expense{
			ID:          "exp-" + payerID + amount,
			RideID:      "ride-1",
			PayerID:     payerID,
			Amount:      d(amount),
			SplitPolicy: policy,
		},
	}
	for _, id := range participantIDs {
		s := &expense.Split{ExpenseID: ews.Expense.ID, UserID: id}
		if w, ok := weights[id]; ok {
			wd := d(w)
			s.Weight = &wd
		}
		ews.Splits = append(ews.Splits, s)
	}
	return ews
}

func TestComputeBalancesEqualSplit(t *testing.T) {
	participants := []string{"a", "b", "c"}
	expenses := []*expense.ExpenseWithSplits{
		makeExpense("a", "90", split.PolicyEqual, participants, nil),
	}

	balances := ComputeBalances(participants, expenses)

	assert.True(t, balances["a"].Equal(d("60")), "a = %s", balances["a"])
	assert.True(t, balances["b"].Equal(d("-30")), "b = %s", balances["b"])
	assert.True(t, balances["c"].Equal(d("-30")), "c = %s", balances["c"])
}

func TestComputeBalancesPayerIncludedInSplit(t *testing.T) {
	// Payer a covers a 30 expense split equally among a, b, c: their own
	// share nets out, leaving +20
	participants := []string{"a", "b", "c"}
	expenses := []*expense.ExpenseWithSplits{
		makeExpense("a", "30", split.PolicyEqual, participants, nil),
	}

	balances := ComputeBalances(participants, expenses)
	assert.True(t, balances["a"].Equal(d("20")), "a = %s", balances["a"])
}

func TestComputeBalancesPayerOutsideSplit(t *testing.T) {
	// Payer not in the split set is credited the full amount
	participants := []string{"a", "b"}
	expenses := []*expense.ExpenseWithSplits{
		makeExpense("a", "50", split.PolicyEqual, []string{"b"}, nil),
	}

	balances := ComputeBalances(participants, expenses)
	assert.True(t, balances["a"].Equal(d("50")))
	assert.True(t, balances["b"].Equal(d("-50")))
}

func TestComputeBalancesZeroSum(t *testing.T) {
	participants := []string{"a", "b", "c", "d"}
	expenses := []*expense.ExpenseWithSplits{
		makeExpense("a", "100", split.PolicyEqual, participants, nil),
		makeExpense("b", "33.35", split.PolicyShares, []string{"a", "b", "c"}, map[string]string{"a": "2"}),
		makeExpense("c", "75.50", split.PolicyPercentage, []string{"c", "d"}, map[string]string{"c": "25", "d": "75"}),
		makeExpense("d", "19.99", split.PolicyUnequal, []string{"a", "d"}, map[string]string{"a": "10", "d": "9.99"}),
	}

	balances := ComputeBalances(participants, expenses)

	sum := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b)
	}
	assert.True(t, sum.Abs().LessThanOrEqual(d("0.01")), "balances sum to %s", sum)
}

func TestComputeBalancesOrderIndependent(t *testing.T) {
	participants := []string{"a", "b", "c"}
	e1 := makeExpense("a", "100", split.PolicyEqual, participants, nil)
	e2 := makeExpense("b", "60", split.PolicyShares, participants, map[string]string{"b": "4"})

	forward := ComputeBalances(participants, []*expense.ExpenseWithSplits{e1, e2})
	backward := ComputeBalances(participants, []*expense.ExpenseWithSplits{e2, e1})

	require.Equal(t, len(forward), len(backward))
	for id, balance := range forward {
		assert.True(t, balance.Equal(backward[id]), "balance for %s differs by order", id)
	}
}

func TestComputeBalancesIdempotent(t *testing.T) {
	participants := []string{"a", "b"}
	expenses := []*expense.ExpenseWithSplits{
		makeExpense("a", "45.67", split.PolicyEqual, participants, nil),
	}

	first := ComputeBalances(participants, expenses)
	second := ComputeBalances(participants, expenses)

	require.Equal(t, len(first), len(second))
	for id, balance := range first {
		assert.True(t, balance.Equal(second[id]))
	}
}

func TestComputeBalancesSkipsUnknownParticipants(t *testing.T) {
	// "ghost" appears in the split but is not a supplied participant:
	// their debit is dropped and no balance key is invented for them
	participants := []string{"a", "b"}
	expenses := []*expense.ExpenseWithSplits{
		makeExpense("a", "90", split.PolicyEqual, []string{"a", "b", "ghost"}, nil),
	}

	balances := ComputeBalances(participants, expenses)

	require.Len(t, balances, 2)
	assert.True(t, balances["a"].Equal(d("60")))
	assert.True(t, balances["b"].Equal(d("-30")))
}

func TestComputeBalancesSkipsUnknownPayer(t *testing.T) {
	participants := []string{"a", "b"}
	expenses := []*expense.ExpenseWithSplits{
		makeExpense("ghost", "40", split.PolicyEqual, []string{"a", "b"}, nil),
	}

	balances := ComputeBalances(participants, expenses)

	require.Len(t, balances, 2)
	assert.True(t, balances["a"].Equal(d("-20")))
	assert.True(t, balances["b"].Equal(d("-20")))
}

func TestComputeBalancesSkipsBrokenExpense(t *testing.T) {
	// An expense whose stored weights no longer validate is skipped
	// instead of poisoning the whole fold
	participants := []string{"a", "b"}
	broken := makeExpense("a", "100", split.PolicyUnequal, participants, map[string]string{"a": "10", "b": "20"})
	good := makeExpense("b", "50", split.PolicyEqual, participants, nil)

	balances := ComputeBalances(participants, []*expense.ExpenseWithSplits{broken, good})

	assert.True(t, balances["a"].Equal(d("-25")))
	assert.True(t, balances["b"].Equal(d("25")))
}

func TestComputeBalancesNoExpenses(t *testing.T) {
	balances := ComputeBalances([]string{"a", "b"}, nil)

	require.Len(t, balances, 2)
	assert.True(t, balances["a"].IsZero())
	assert.True(t, balances["b"].IsZero())
}

func TestEqualSplitEndToEnd(t *testing.T) {
	// One 90 expense paid by a, split equally among a, b, c: the plan is
	// b and c each paying a 30
	participants := []string{"a", "b", "c"}
	expenses := []*expense.ExpenseWithSplits{
		makeExpense("a", "90", split.PolicyEqual, participants, nil),
	}

	transfers := PlanTransfers(ComputeBalances(participants, expenses))

	require.Len(t, transfers, 2)
	for _, tr := range transfers {
		assert.Equal(t, "a", tr.ToID)
		assert.True(t, tr.Amount.Equal(d("30")))
	}
	assert.Equal(t, "b", transfers[0].FromID)
	assert.Equal(t, "c", transfers[1].FromID)
}

func TestApplySettlements(t *testing.T) {
	balances := BalanceMap{
		"a": d("60"),
		"b": d("-30"),
		"c": d("-30"),
	}

	settled := ApplySettlements(balances, []*Settlement{
		{FromUserID: "b", ToUserID: "a", Amount: d("30")},
		{FromUserID: "ghost", ToUserID: "a", Amount: d("5")},
	})

	assert.True(t, settled["a"].Equal(d("25")))
	assert.True(t, settled["b"].IsZero())
	assert.True(t, settled["c"].Equal(d("-30")))
}
