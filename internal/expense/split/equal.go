package split

// =============================================================================
// EQUAL SPLIT STRATEGY
// Divides the expense equally among all participants
// =============================================================================

// EqualStrategy implements the Strategy interface for equal splits
type EqualStrategy struct{}

// Type returns the split type identifier
func (s *EqualStrategy) Type() SplitType {
	return SplitTypeEqual
}

// Validate checks if the inputs are valid for an equal split
func (s *EqualStrategy) Validate(totalAmount float64, participants []Participant) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if totalAmount <= 0 {
		return ErrNonPositiveAmount
	}
	return nil
}

// Calculate divides the total amount evenly among all participants.
// Every participant receives the rounded quotient; when the division does
// not terminate cleanly at 2 decimals, the leftover cents are spread one
// cent each over the first participants in input order. Shares always sum
// to exactly the total, never go negative, and the assignment is
// deterministic.
func (s *EqualStrategy) Calculate(totalAmount float64, paidBy int64, participants []Participant) ([]Share, error) {
	if err := s.Validate(totalAmount, participants); err != nil {
		return nil, err
	}

	sharePerPerson := round2(totalAmount / float64(len(participants)))
	remainder := round2(totalAmount - sharePerPerson*float64(len(participants)))

	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{
			ParticipantID: p.ParticipantID,
			Amount:        sharePerPerson,
		}
	}
	spreadRemainder(shares, remainder)

	markPaid(shares, paidBy)
	return shares, nil
}
