package split

// =============================================================================
// PERCENTAGE SPLIT STRATEGY
// Divides the expense based on specified percentages for each participant
// =============================================================================

// PercentageStrategy implements the Strategy interface for percentage-based splits
type PercentageStrategy struct{}

// Type returns the split type identifier
func (s *PercentageStrategy) Type() SplitType {
	return SplitTypePercentage
}

// Validate checks if the inputs are valid for a percentage split
func (s *PercentageStrategy) Validate(totalAmount float64, participants []Participant) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if totalAmount <= 0 {
		return ErrNonPositiveAmount
	}

	var sum float64
	for _, p := range participants {
		if p.Percentage == nil {
			return ErrMissingPercentage
		}
		if *p.Percentage < 0 || *p.Percentage > 100 {
			return ErrPercentageOutOfRange
		}
		sum += *p.Percentage
	}

	if round2(sum) != 100 {
		return &PercentageMismatchError{Sum: round2(sum)}
	}

	return nil
}

// Calculate divides the total amount based on each participant's percentage.
// Each share is amount*percentage/100 rounded; rounding drift is spread one
// cent at a time over the first participants, same rule as the equal split,
// so the shares sum to exactly the total and never go negative.
func (s *PercentageStrategy) Calculate(totalAmount float64, paidBy int64, participants []Participant) ([]Share, error) {
	if err := s.Validate(totalAmount, participants); err != nil {
		return nil, err
	}

	shares := make([]Share, len(participants))
	var distributed float64
	for i, p := range participants {
		amount := round2(totalAmount * (*p.Percentage) / 100)
		distributed += amount
		shares[i] = Share{
			ParticipantID: p.ParticipantID,
			Amount:        amount,
		}
	}

	spreadRemainder(shares, round2(totalAmount-distributed))

	markPaid(shares, paidBy)
	return shares, nil
}
