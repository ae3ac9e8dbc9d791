package split

// =============================================================================
// CUSTOM SPLIT STRATEGY
// Each participant owes a caller-supplied exact amount (must sum to total)
// =============================================================================

// CustomStrategy implements the Strategy interface for custom amount splits
type CustomStrategy struct{}

// Type returns the split type identifier
func (s *CustomStrategy) Type() SplitType {
	return SplitTypeCustom
}

// Validate checks if the inputs are valid for a custom split
func (s *CustomStrategy) Validate(totalAmount float64, participants []Participant) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if totalAmount <= 0 {
		return ErrNonPositiveAmount
	}

	var sum float64
	for _, p := range participants {
		if p.Amount == nil {
			return ErrMissingAmount
		}
		if *p.Amount < 0 {
			return ErrNegativeAmount
		}
		sum += *p.Amount
	}

	// Rounding first keeps sub-cent float noise from tripping the check
	// while a real one-cent gap still fails.
	if round2(sum) != round2(totalAmount) {
		return &AmountMismatchError{Sum: round2(sum), Total: totalAmount}
	}

	return nil
}

// Calculate returns the caller-supplied amounts unchanged apart from
// rounding. The engine computes nothing here; the work is all in Validate.
func (s *CustomStrategy) Calculate(totalAmount float64, paidBy int64, participants []Participant) ([]Share, error) {
	if err := s.Validate(totalAmount, participants); err != nil {
		return nil, err
	}

	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{
			ParticipantID: p.ParticipantID,
			Amount:        round2(*p.Amount),
		}
	}

	markPaid(shares, paidBy)
	return shares, nil
}
