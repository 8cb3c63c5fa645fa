package split

import "github.com/shopspring/decimal"

// =============================================================================
// SHARES SPLIT
// Divides the expense by relative weight, e.g. the driver takes 2 shares and
// every passenger takes 1. A participant with no entry defaults to 1 share.
// =============================================================================

// SharesStrategy implements the Strategy interface for weighted share splits
type SharesStrategy struct{}

// Policy returns the policy identifier
func (s *SharesStrategy) Policy() Policy {
	return PolicyShares
}

// Validate checks that every entered weight is positive. Missing weights are
// fine, they default to one share in Compute.
func (s *SharesStrategy) Validate(amount decimal.Decimal, participantIDs []string, weights map[string]decimal.Decimal) error {
	if err := validateBase(amount, participantIDs); err != nil {
		return err
	}

	for _, id := range participantIDs {
		if w, ok := weights[id]; ok && !w.IsPositive() {
			return ErrInvalidWeight
		}
	}
	return nil
}

// Compute gives each participant amount * weight / totalShares, rounded to
// cents, with residual cents assigned to the first participant by ID.
func (s *SharesStrategy) Compute(amount decimal.Decimal, participantIDs []string, weights map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	if err := s.Validate(amount, participantIDs, weights); err != nil {
		return nil, err
	}

	totalShares := decimal.Zero
	for _, id := range participantIDs {
		totalShares = totalShares.Add(s.weightOf(weights, id))
	}

	shares := make(map[string]decimal.Decimal, len(participantIDs))
	for _, id := range participantIDs {
		shares[id] = roundCents(amount.Mul(s.weightOf(weights, id)).Div(totalShares))
	}

	assignRemainder(amount, participantIDs, shares)
	return shares, nil
}

// weightOf returns the participant's weight, defaulting to 1 when unset
func (s *SharesStrategy) weightOf(weights map[string]decimal.Decimal, id string) decimal.Decimal {
	if w, ok := weights[id]; ok {
		return w
	}
	return decimal.NewFromInt(1)
}
