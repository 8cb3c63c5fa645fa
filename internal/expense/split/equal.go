package split

import "github.com/shopspring/decimal"

// =============================================================================
// EQUAL SPLIT
// Divides the expense evenly among all selected participants
// =============================================================================

// EqualStrategy implements the Strategy interface for equal splits
type EqualStrategy struct{}

// Policy returns the policy identifier
func (s *EqualStrategy) Policy() Policy {
	return PolicyEqual
}

// Validate checks if the inputs are valid for an equal split.
// Weights are ignored for this policy.
func (s *EqualStrategy) Validate(amount decimal.Decimal, participantIDs []string, _ map[string]decimal.Decimal) error {
	return validateBase(amount, participantIDs)
}

// Compute gives every participant amount/count, rounded to cents. Residual
// cents from uneven divisions (e.g. 100/3) go to the first participant by ID.
func (s *EqualStrategy) Compute(amount decimal.Decimal, participantIDs []string, weights map[string]decimal.Decimal) (map[string]decimal.Decimal, error) {
	if err := s.Validate(amount, participantIDs, weights); err != nil {
		return nil, err
	}

	count := decimal.NewFromInt(int64(len(participantIDs)))
	perPerson := roundCents(amount.Div(count))

	shares := make(map[string]decimal.Decimal, len(participantIDs))
	for _, id := range participantIDs {
		shares[id] = perPerson
	}

	assignRemainder(amount, participantIDs, shares)
	return shares, nil
}
