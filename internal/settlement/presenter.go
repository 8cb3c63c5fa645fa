package settlement

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Display formatting for balances and transfers. Pure string building;
// display names come from the caller's ride membership, never from here.
// All amounts are shown rounded half-up to cents.

// DescribeBalance phrases a participant's net position
func DescribeBalance(balance decimal.Decimal) string {
	switch {
	case balance.GreaterThan(settleTolerance):
		return "is owed $" + balance.Round(2).StringFixed(2)
	case balance.LessThan(settleTolerance.Neg()):
		return "owes $" + balance.Abs().Round(2).StringFixed(2)
	default:
		return "settled"
	}
}

// DescribeTransfer phrases a suggested payment
func DescribeTransfer(fromName, toName string, amount decimal.Decimal) string {
	return fmt.Sprintf("%s pays %s $%s", fromName, toName, amount.Round(2).StringFixed(2))
}
