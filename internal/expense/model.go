package expense

import (
	"time"

	"github.com/voyago/tripsplit/internal/expense/split"
)

// Expense represents a single payable item within a trip
type Expense struct {
	ID                  int64     `json:"id"`
	TripID              int64     `json:"trip_id"`
	PaidByParticipantID int64     `json:"paid_by_participant_id"`
	Amount              float64   `json:"amount"`
	Currency            string    `json:"currency"`
	Category            string    `json:"category"`
	Description         string    `json:"description"`
	Date                time.Time `json:"date"`
	SplitType           string    `json:"split_type"` // EQUAL, CUSTOM, PERCENTAGE
	CreatedAt           time.Time `json:"created_at"`

	// Populated via JOIN
	PaidByName string `json:"paid_by_name,omitempty"`
}

// Split is one participant's share of one expense. Paid is true only on
// the payer's split. The splits of an expense are always written and
// replaced as a batch, never individually, so their amounts are guaranteed
// to sum to the expense amount.
type Split struct {
	ID            int64     `json:"id"`
	ExpenseID     int64     `json:"expense_id"`
	ParticipantID int64     `json:"participant_id"`
	Amount        float64   `json:"amount"`
	Paid          bool      `json:"paid"`
	CreatedAt     time.Time `json:"created_at"`

	// Populated via JOIN
	ParticipantName string `json:"participant_name,omitempty"`
}

// ExpenseWithSplits combines an expense with its splits
type ExpenseWithSplits struct {
	Expense *Expense
	Splits  []*Split
}

// SplitParticipant is one roster entry in a split request
type SplitParticipant struct {
	ParticipantID int64    `json:"participant_id" validate:"required"`
	Amount        *float64 `json:"amount,omitempty"`     // For CUSTOM split
	Percentage    *float64 `json:"percentage,omitempty"` // For PERCENTAGE split
}

// ToSplitParticipant converts to the split package's input type
func (p *SplitParticipant) ToSplitParticipant() split.Participant {
	return split.Participant{
		ParticipantID: p.ParticipantID,
		Amount:        p.Amount,
		Percentage:    p.Percentage,
	}
}
