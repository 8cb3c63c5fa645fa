package settlement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func balancesOf(m map[string]string) BalanceMap {
	balances := make(BalanceMap, len(m))
	for id, v := range m {
		balances[id] = d(v)
	}
	return balances
}

// applyPlan replays a transfer list against a balance map so tests can check
// the plan actually settles everyone
func applyPlan(balances BalanceMap, transfers []Transfer) BalanceMap {
	out := make(BalanceMap, len(balances))
	for id, b := range balances {
		out[id] = b
	}
	for _, t := range transfers {
		out[t.FromID] = out[t.FromID].Add(t.Amount)
		out[t.ToID] = out[t.ToID].Sub(t.Amount)
	}
	return out
}

func TestPlanTransfersSingleCreditor(t *testing.T) {
	balances := balancesOf(map[string]string{
		"a": "60",
		"b": "-30",
		"c": "-30",
	})

	transfers := PlanTransfers(balances)

	require.Len(t, transfers, 2)
	assert.Equal(t, "b", transfers[0].FromID)
	assert.Equal(t, "a", transfers[0].ToID)
	assert.True(t, transfers[0].Amount.Equal(d("30")))
	assert.Equal(t, "c", transfers[1].FromID)
	assert.Equal(t, "a", transfers[1].ToID)
	assert.True(t, transfers[1].Amount.Equal(d("30")))
}

func TestPlanTransfersSettlesEveryBalance(t *testing.T) {
	tests := []struct {
		name     string
		balances map[string]string
	}{
		{
			name:     "one debtor one creditor",
			balances: map[string]string{"a": "12.50", "b": "-12.50"},
		},
		{
			name:     "chain",
			balances: map[string]string{"a": "100", "b": "-40", "c": "-35", "d": "-25"},
		},
		{
			name:     "mixed magnitudes",
			balances: map[string]string{"a": "70.25", "b": "29.75", "c": "-50", "d": "-50"},
		},
		{
			name:     "sub-cent drift tolerated",
			balances: map[string]string{"a": "33.34", "b": "-33.33", "c": "-0.01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances := balancesOf(tt.balances)
			transfers := PlanTransfers(balances)

			settled := applyPlan(balances, transfers)
			for id, remaining := range settled {
				assert.True(t, remaining.Abs().LessThanOrEqual(d("0.01")),
					"%s left with %s", id, remaining)
			}
		})
	}
}

func TestPlanTransfersCountBound(t *testing.T) {
	// never more than unsettled participants minus one
	balances := balancesOf(map[string]string{
		"a": "55",
		"b": "20",
		"c": "-25",
		"d": "-25",
		"e": "-25",
		"f": "0",
	})

	transfers := PlanTransfers(balances)
	assert.LessOrEqual(t, len(transfers), 4)
}

func TestPlanTransfersDeterministic(t *testing.T) {
	balances := map[string]string{
		"a": "25", "b": "25", "c": "-25", "d": "-25",
	}

	first := PlanTransfers(balancesOf(balances))
	for i := 0; i < 20; i++ {
		again := PlanTransfers(balancesOf(balances))
		require.Equal(t, first, again)
	}

	// equal amounts break ties by ID
	require.Len(t, first, 2)
	assert.Equal(t, "c", first[0].FromID)
	assert.Equal(t, "a", first[0].ToID)
	assert.Equal(t, "d", first[1].FromID)
	assert.Equal(t, "b", first[1].ToID)
}

func TestPlanTransfersLargestFirst(t *testing.T) {
	balances := balancesOf(map[string]string{
		"big":   "-80",
		"small": "-20",
		"rich":  "100",
	})

	transfers := PlanTransfers(balances)

	require.Len(t, transfers, 2)
	assert.Equal(t, "big", transfers[0].FromID)
	assert.True(t, transfers[0].Amount.Equal(d("80")))
	assert.Equal(t, "small", transfers[1].FromID)
}

func TestPlanTransfersNoSelfTransfer(t *testing.T) {
	balances := balancesOf(map[string]string{
		"a": "40", "b": "-15", "c": "-25",
	})

	for _, tr := range PlanTransfers(balances) {
		assert.NotEqual(t, tr.FromID, tr.ToID)
		assert.True(t, tr.Amount.GreaterThan(decimal.Zero))
	}
}

func TestPlanTransfersAllSettled(t *testing.T) {
	balances := balancesOf(map[string]string{
		"a": "0", "b": "0.01", "c": "-0.01",
	})

	assert.Empty(t, PlanTransfers(balances))
}

func TestPlanTransfersEmpty(t *testing.T) {
	assert.Empty(t, PlanTransfers(BalanceMap{}))
}

func TestDescribeBalance(t *testing.T) {
	tests := []struct {
		name    string
		balance string
		want    string
	}{
		{"creditor", "60", "is owed $60.00"},
		{"debtor", "-30.5", "owes $30.50"},
		{"zero", "0", "settled"},
		{"sub-cent drift", "0.005", "settled"},
		{"rounds half up", "10.555", "is owed $10.56"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DescribeBalance(d(tt.balance)))
		})
	}
}

func TestDescribeTransfer(t *testing.T) {
	got := DescribeTransfer("Sara", "Omar", d("30"))
	assert.Equal(t, "Sara pays Omar $30.00", got)

	got = DescribeTransfer("Omar", "Lina", d("12.345"))
	assert.Equal(t, "Omar pays Lina $12.35", got)
}
