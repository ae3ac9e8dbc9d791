package expense

import (
	"time"

	"github.com/voyago/tripsplit/internal/ledger"
)

// CreateExpenseRequest represents the request to create an expense.
// Participants lists everyone who co-owes the expense; the payer does not
// have to appear in it (paying in full without co-owing is legal).
type CreateExpenseRequest struct {
	TripID              int64               `json:"trip_id" validate:"required"`
	PaidByParticipantID int64               `json:"paid_by_participant_id" validate:"required"`
	Amount              float64             `json:"amount" validate:"required,gt=0"`
	Currency            string              `json:"currency" validate:"omitempty,len=3"`
	Category            string              `json:"category" validate:"required,min=1,max=50"`
	Description         string              `json:"description" validate:"required,min=1,max=255"`
	Date                time.Time           `json:"date" validate:"required"`
	SplitType           string              `json:"split_type" validate:"required,oneof=EQUAL CUSTOM PERCENTAGE"`
	Participants        []*SplitParticipant `json:"participants" validate:"required,min=1,dive"`
}

// UpdateExpenseRequest represents the request to update expense metadata.
// Amount and splits are deliberately absent: changing what is owed goes
// through ReplaceSplits so the splits can never go stale against the amount.
type UpdateExpenseRequest struct {
	Category    *string    `json:"category,omitempty" validate:"omitempty,min=1,max=50"`
	Description *string    `json:"description,omitempty" validate:"omitempty,min=1,max=255"`
	Date        *time.Time `json:"date,omitempty"`
}

// ReplaceSplitsRequest re-divides an expense. The whole split set is
// replaced in one transaction; optionally the amount and payer change too.
type ReplaceSplitsRequest struct {
	Amount              *float64            `json:"amount,omitempty" validate:"omitempty,gt=0"`
	PaidByParticipantID *int64              `json:"paid_by_participant_id,omitempty"`
	SplitType           string              `json:"split_type" validate:"required,oneof=EQUAL CUSTOM PERCENTAGE"`
	Participants        []*SplitParticipant `json:"participants" validate:"required,min=1,dive"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID                  int64            `json:"id"`
	TripID              int64            `json:"trip_id"`
	PaidByParticipantID int64            `json:"paid_by_participant_id"`
	PaidByName          string           `json:"paid_by_name,omitempty"`
	Amount              float64          `json:"amount"`
	Currency            string           `json:"currency"`
	Category            string           `json:"category"`
	Description         string           `json:"description"`
	Date                string           `json:"date"`
	SplitType           string           `json:"split_type"`
	CreatedAt           string           `json:"created_at"`
	Splits              []*SplitResponse `json:"splits,omitempty"`
}

// SplitResponse represents the response for a split
type SplitResponse struct {
	ID              int64   `json:"id"`
	ExpenseID       int64   `json:"expense_id"`
	ParticipantID   int64   `json:"participant_id"`
	ParticipantName string  `json:"participant_name,omitempty"`
	Amount          float64 `json:"amount"`
	Paid            bool    `json:"paid"`
}

// ParticipantBalanceResponse is one participant's totals in the summary
type ParticipantBalanceResponse struct {
	ParticipantID int64   `json:"participant_id"`
	Name          string  `json:"name"`
	TotalPaid     float64 `json:"total_paid"`
	TotalOwed     float64 `json:"total_owed"`
	Net           float64 `json:"net"`
}

// SummaryResponse is the trip spending overview
type SummaryResponse struct {
	TripID       int64                         `json:"trip_id"`
	Currency     string                        `json:"currency"`
	TotalSpent   float64                       `json:"total_spent"`
	ByCategory   map[string]float64            `json:"by_category"`
	Balances     []*ParticipantBalanceResponse `json:"balances"`
	ExpenseCount int                           `json:"expense_count"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:                  e.ID,
		TripID:              e.TripID,
		PaidByParticipantID: e.PaidByParticipantID,
		PaidByName:          e.PaidByName,
		Amount:              e.Amount,
		Currency:            e.Currency,
		Category:            e.Category,
		Description:         e.Description,
		Date:                e.Date.Format("2006-01-02"),
		SplitType:           e.SplitType,
		CreatedAt:           e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Split model to a SplitResponse DTO
func (s *Split) ToResponse() *SplitResponse {
	return &SplitResponse{
		ID:              s.ID,
		ExpenseID:       s.ExpenseID,
		ParticipantID:   s.ParticipantID,
		ParticipantName: s.ParticipantName,
		Amount:          s.Amount,
		Paid:            s.Paid,
	}
}

func balanceResponse(name string, b ledger.Balance) *ParticipantBalanceResponse {
	return &ParticipantBalanceResponse{
		ParticipantID: b.ParticipantID,
		Name:          name,
		TotalPaid:     b.TotalPaid,
		TotalOwed:     b.TotalOwed,
		Net:           b.Net,
	}
}
