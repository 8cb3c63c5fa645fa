package expense

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/campuspool/ridepool/internal/expense/split"
)

// Category represents what an expense was for
type Category string

const (
	CategoryFuel          Category = "FUEL"
	CategoryToll          Category = "TOLL"
	CategoryParking       Category = "PARKING"
	CategoryFood          Category = "FOOD"
	CategoryAccommodation Category = "ACCOMMODATION"
	CategoryShopping      Category = "SHOPPING"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryOther         Category = "OTHER"
)

// Expense represents a shared expense within a ride
type Expense struct {
	ID          string          `json:"id"`
	RideID      string          `json:"ride_id"`
	PayerID     string          `json:"payer_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Category    Category        `json:"category"`
	SplitPolicy split.Policy    `json:"split_policy"`
	CreatedAt   time.Time       `json:"created_at"`

	// Populated via JOIN
	PayerName string `json:"payer_name,omitempty"`
}

// Split represents one participant's computed share of an expense.
// Weight preserves the input that produced the share (entered amount for
// UNEQUAL, percentage points for PERCENTAGE, relative weight for SHARES) so
// balances can be recomputed from first principles.
type Split struct {
	ID         string           `json:"id"`
	ExpenseID  string           `json:"expense_id"`
	UserID     string           `json:"user_id"`
	AmountOwed decimal.Decimal  `json:"amount_owed"`
	Weight     *decimal.Decimal `json:"weight,omitempty"`

	// Populated via JOIN
	UserName string `json:"user_name,omitempty"`
}

// ExpenseWithSplits combines an expense with its stored splits
type ExpenseWithSplits struct {
	Expense *Expense
	Splits  []*Split
}

// ParticipantIDs returns the IDs of every participant included in the split
func (e *ExpenseWithSplits) ParticipantIDs() []string {
	ids := make([]string, len(e.Splits))
	for i, s := range e.Splits {
		ids[i] = s.UserID
	}
	return ids
}

// Weights rebuilds the weight mapping for the expense's split policy.
// Participants without a stored weight are left out, which matches the
// policy defaults (zero for UNEQUAL, one share for SHARES).
func (e *ExpenseWithSplits) Weights() map[string]decimal.Decimal {
	weights := make(map[string]decimal.Decimal)
	for _, s := range e.Splits {
		if s.Weight != nil {
			weights[s.UserID] = *s.Weight
		}
	}
	return weights
}
