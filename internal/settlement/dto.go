package settlement

// CreateSettlementRequest represents the request to record a settlement
type CreateSettlementRequest struct {
	TripID            int64   `json:"trip_id" validate:"required"`
	FromParticipantID int64   `json:"from_participant_id" validate:"required"`
	ToParticipantID   int64   `json:"to_participant_id" validate:"required"`
	Amount            float64 `json:"amount" validate:"required,gt=0"`
	Currency          string  `json:"currency" validate:"omitempty,len=3"`
	Note              *string `json:"note,omitempty" validate:"omitempty,max=500"`
}

// SettlementResponse represents the response for a settlement
type SettlementResponse struct {
	ID                  int64   `json:"id"`
	TripID              int64   `json:"trip_id"`
	FromParticipantID   int64   `json:"from_participant_id"`
	FromParticipantName string  `json:"from_participant_name,omitempty"`
	ToParticipantID     int64   `json:"to_participant_id"`
	ToParticipantName   string  `json:"to_participant_name,omitempty"`
	Amount              float64 `json:"amount"`
	Currency            string  `json:"currency"`
	Note                *string `json:"note,omitempty"`
	SettledAt           string  `json:"settled_at"`
}

// TransferResponse is one suggested settling payment
type TransferResponse struct {
	FromParticipantID   int64   `json:"from_participant_id"`
	FromParticipantName string  `json:"from_participant_name,omitempty"`
	ToParticipantID     int64   `json:"to_participant_id"`
	ToParticipantName   string  `json:"to_participant_name,omitempty"`
	Amount              float64 `json:"amount"`
}

// BalanceResponse is one participant's current position after all
// expenses and recorded settlements
type BalanceResponse struct {
	ParticipantID int64   `json:"participant_id"`
	Name          string  `json:"name"`
	TotalPaid     float64 `json:"total_paid"`
	TotalOwed     float64 `json:"total_owed"`
	Net           float64 `json:"net"`
}

// SuggestionsResponse is the full settle-up plan for a trip
type SuggestionsResponse struct {
	TripID    int64               `json:"trip_id"`
	Currency  string              `json:"currency"`
	Transfers []*TransferResponse `json:"transfers"`
}

// ToResponse converts a Settlement model to a SettlementResponse DTO
func (s *Settlement) ToResponse() *SettlementResponse {
	return &SettlementResponse{
		ID:                  s.ID,
		TripID:              s.TripID,
		FromParticipantID:   s.FromParticipantID,
		FromParticipantName: s.FromParticipantName,
		ToParticipantID:     s.ToParticipantID,
		ToParticipantName:   s.ToParticipantName,
		Amount:              s.Amount,
		Currency:            s.Currency,
		Note:                s.Note,
		SettledAt:           s.SettledAt.Format("2006-01-02T15:04:05Z"),
	}
}
