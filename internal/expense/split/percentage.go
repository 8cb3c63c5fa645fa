package split

import "github.com/shopspring/decimal"

// =============================================================================
// PERCENTAGE SPLIT
// Divides the expense by the percentage entered for each participant
// =============================================================================

var hundred = decimal.NewFromInt(100)

// PercentageStrategy implements the Strategy interface for percentage splits
type PercentageStrategy struct{}

// Policy returns the policy identifier
func (s *PercentageStrategy) Policy() Policy {
	return PolicyPercentage
}

// Validate checks that the percentages sum to 100 within tolerance.
// A participant with no entry counts as zero percent.
func (s *PercentageStrategy) Validate(amount decimal.Decimal, participantIDs []string, weights map[string]decimal.Decimal) error {
	if err := validateBase(amount, participantIDs); err != nil {
		return err
	}

	sum := decimal.Zero
	for _, id := range participantIDs {
		sum = sum.Add(weights[id])
	}
	if sum.Sub(hundred).Abs().GreaterThan(tolerance) {
		return &MismatchError{Reason: ErrPercentageMismatch, Actual: sum, Expected: hundred}
	}
	return nil
}

// Compute gives each participant amount * percentage / 100, rounded to cents,
// with residual cents assigned to the first participant by ID.
func (s *PercentageStrategy) Compute(amount decimal.Decimal, participantIDs []string, weights map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	if err := s.Validate(amount, participantIDs, weights); err != nil {
		return nil, err
	}

	shares := make(map[string]decimal.Decimal, len(participantIDs))
	for _, id := range participantIDs {
		shares[id] = roundCents(amount.Mul(weights[id]).Div(hundred))
	}

	assignRemainder(amount, participantIDs, shares)
	return shares, nil
}
