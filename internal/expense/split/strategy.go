package split

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Policy identifies how an expense amount is divided among participants
type Policy string

const (
	PolicyEqual      Policy = "EQUAL"
	PolicyUnequal    Policy = "UNEQUAL"
	PolicyPercentage Policy = "PERCENTAGE"
	PolicyShares     Policy = "SHARES"
)

// Strategy is the interface that all split policies implement.
// Compute returns each participant's owed amount for a single expense;
// the payer is not treated specially, their own share is included.
type Strategy interface {
	// Compute calculates the owed amount per participant ID
	Compute(amount decimal.Decimal, participantIDs []string, weights map[string]decimal.Decimal) (map[string]decimal.Decimal, error)

	// Policy returns the policy identifier for this strategy
	Policy() Policy

	// Validate checks if the inputs are valid for this policy
	Validate(amount decimal.Decimal, participantIDs []string, weights map[string]decimal.Decimal) error
}

// Factory creates split strategies based on the requested policy
type Factory struct{}

// NewFactory creates a new factory instance
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the strategy implementation for the given policy
func (f *Factory) Create(policy Policy) (Strategy, error) {
	switch policy {
	case PolicyEqual:
		return &EqualStrategy{}, nil
	case PolicyUnequal:
		return &UnequalStrategy{}, nil
	case PolicyPercentage:
		return &PercentageStrategy{}, nil
	case PolicyShares:
		return &SharesStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPolicy, policy)
	}
}

// CreateFromString creates a strategy from a string policy (useful for API requests)
func (f *Factory) CreateFromString(policy string) (Strategy, error) {
	return f.Create(Policy(policy))
}

var (
	ErrUnknownPolicy      = errors.New("unknown split policy")
	ErrNoParticipants     = errors.New("at least one participant is required")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrAmountMismatch     = errors.New("split amounts must sum to the expense amount")
	ErrPercentageMismatch = errors.New("percentages must sum to 100")
	ErrInvalidWeight      = errors.New("share weights must be positive")
)

// MismatchError reports how far the supplied weights are from the required
// sum, so the client can show the user exactly what to correct.
type MismatchError struct {
	Reason   error // ErrAmountMismatch or ErrPercentageMismatch
	Actual   decimal.Decimal
	Expected decimal.Decimal
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: got %s, want %s", e.Reason, e.Actual.StringFixed(2), e.Expected.StringFixed(2))
}

func (e *MismatchError) Unwrap() error {
	return e.Reason
}

// tolerance allowed on user-supplied sums (unequal amounts, percentages)
var tolerance = decimal.New(1, -2) // 0.01

// validateBase checks the constraints shared by every policy
func validateBase(amount decimal.Decimal, participantIDs []string) error {
	if len(participantIDs) == 0 {
		return ErrNoParticipants
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// roundCents rounds half-up to two decimal places
func roundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// assignRemainder corrects accumulated rounding so the shares sum exactly to
// the expense amount. The residual cents go to the first participant in
// ascending ID order, which keeps the result deterministic regardless of the
// order participants were selected in.
func assignRemainder(amount decimal.Decimal, participantIDs []string, shares map[string]decimal.Decimal) {
	total := decimal.Zero
	for _, id := range participantIDs {
		total = total.Add(shares[id])
	}
	diff := amount.Sub(total)
	if diff.IsZero() {
		return
	}

	ids := make([]string, len(participantIDs))
	copy(ids, participantIDs)
	sort.Strings(ids)
	shares[ids[0]] = shares[ids[0]].Add(diff)
}
