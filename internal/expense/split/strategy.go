package split

import (
	"errors"
	"fmt"
	"math"

	"github.com/voyago/tripsplit/internal/money"
)

// SplitType defines the type of split strategy
type SplitType string

const (
	SplitTypeEqual      SplitType = "EQUAL"
	SplitTypeCustom     SplitType = "CUSTOM"
	SplitTypePercentage SplitType = "PERCENTAGE"
)

// Participant represents one participant in a split with policy-specific inputs
type Participant struct {
	ParticipantID int64    `json:"participant_id"`
	Amount        *float64 `json:"amount,omitempty"`     // For CUSTOM split
	Percentage    *float64 `json:"percentage,omitempty"` // For PERCENTAGE split
}

// Share is the calculated owed amount for a single participant.
// Paid is true only on the payer's share, and only if the payer is among
// the participants; a payer who doesn't co-owe produces no paid share.
type Share struct {
	ParticipantID int64   `json:"participant_id"`
	Amount        float64 `json:"amount"`
	Paid          bool    `json:"paid"`
}

// Strategy is the interface that all split strategies must implement
type Strategy interface {
	// Calculate computes one share per participant, in input order.
	// Shares of a successful EQUAL or PERCENTAGE calculation sum to
	// exactly the total; CUSTOM shares sum to within money.Epsilon.
	Calculate(totalAmount float64, paidBy int64, participants []Participant) ([]Share, error)

	// Type returns the type identifier for this strategy
	Type() SplitType

	// Validate checks if the inputs are valid for this strategy
	Validate(totalAmount float64, participants []Participant) error
}

// Factory creates split strategies based on the requested type
type Factory struct{}

// NewFactory creates a new factory instance
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the appropriate strategy implementation based on the type
func (f *Factory) Create(splitType SplitType) (Strategy, error) {
	switch splitType {
	case SplitTypeEqual:
		return &EqualStrategy{}, nil
	case SplitTypeCustom:
		return &CustomStrategy{}, nil
	case SplitTypePercentage:
		return &PercentageStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown split type: %s", splitType)
	}
}

// CreateFromString creates a strategy from a string type (useful for API requests)
func (f *Factory) CreateFromString(splitType string) (Strategy, error) {
	return f.Create(SplitType(splitType))
}

var (
	ErrNoParticipants       = errors.New("at least one participant is required")
	ErrNonPositiveAmount    = errors.New("expense amount must be greater than zero")
	ErrNegativeAmount       = errors.New("amounts cannot be negative")
	ErrMissingAmount        = errors.New("amount value required for all participants")
	ErrMissingPercentage    = errors.New("percentage value required for all participants")
	ErrPercentageOutOfRange = errors.New("percentage must be between 0 and 100")
)

// AmountMismatchError reports custom amounts that do not add up to the
// expense total. It carries both sums so callers can show the delta.
type AmountMismatchError struct {
	Sum   float64 // sum of the supplied amounts
	Total float64 // the expense amount they should add up to
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("custom amounts sum to %.2f, expected %.2f", e.Sum, e.Total)
}

// PercentageMismatchError reports percentages that do not add up to 100.
type PercentageMismatchError struct {
	Sum float64 // sum of the supplied percentages
}

func (e *PercentageMismatchError) Error() string {
	return fmt.Sprintf("percentages sum to %.2f, expected 100", e.Sum)
}

// markPaid flags the payer's share. If the payer is not among the
// participants no share is marked; paying without co-owing is legal.
func markPaid(shares []Share, paidBy int64) {
	for i := range shares {
		if shares[i].ParticipantID == paidBy {
			shares[i].Paid = true
			return
		}
	}
}

func round2(v float64) float64 {
	return money.Round2(v)
}

// spreadRemainder distributes a rounding remainder over the shares one
// cent at a time, starting from the first share in input order. When the
// remainder is negative, shares too small to give up a cent are skipped,
// so no share ever drops below zero.
func spreadRemainder(shares []Share, remainder float64) {
	cents := int(math.Round(remainder / 0.01))
	step := 0.01
	if cents < 0 {
		step = -0.01
		cents = -cents
	}
	for cents > 0 {
		applied := false
		for i := range shares {
			if cents == 0 {
				break
			}
			if step < 0 && shares[i].Amount < 0.01 {
				continue
			}
			shares[i].Amount = round2(shares[i].Amount + step)
			cents--
			applied = true
		}
		if !applied {
			break
		}
	}
}
