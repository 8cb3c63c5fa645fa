package split

import "github.com/shopspring/decimal"

// =============================================================================
// UNEQUAL SPLIT
// Each participant owes an explicitly entered amount (must sum to the total)
// =============================================================================

// UnequalStrategy implements the Strategy interface for unequal splits
type UnequalStrategy struct{}

// Policy returns the policy identifier
func (s *UnequalStrategy) Policy() Policy {
	return PolicyUnequal
}

// Validate checks that the entered amounts sum to the expense amount within
// a one-cent tolerance. A participant with no entry counts as zero.
func (s *UnequalStrategy) Validate(amount decimal.Decimal, participantIDs []string, weights map[string]decimal.Decimal) error {
	if err := validateBase(amount, participantIDs); err != nil {
		return err
	}

	sum := decimal.Zero
	for _, id := range participantIDs {
		sum = sum.Add(weights[id])
	}
	if sum.Sub(amount).Abs().GreaterThan(tolerance) {
		return &MismatchError{Reason: ErrAmountMismatch, Actual: sum, Expected: amount}
	}
	return nil
}

// Compute uses the entered amounts verbatim. The caller asked for these exact
// figures, so no rounding correction is applied on top of them.
func (s *UnequalStrategy) Compute(amount decimal.Decimal, participantIDs []string, weights map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	if err := s.Validate(amount, participantIDs, weights); err != nil {
		return nil, err
	}

	shares := make(map[string]decimal.Decimal, len(participantIDs))
	for _, id := range participantIDs {
		shares[id] = weights[id]
	}
	return shares, nil
}
