package settlement

import "time"

// Settlement is a recorded payment between two trip participants that
// reduces outstanding balance. Settlements are append-only ledger entries:
// once created they are never updated or deleted, and the current state of
// the trip is always re-derived from expenses, splits and settlements.
type Settlement struct {
	ID                int64     `json:"id"`
	TripID            int64     `json:"trip_id"`
	FromParticipantID int64     `json:"from_participant_id"` // who paid
	ToParticipantID   int64     `json:"to_participant_id"`   // who received
	Amount            float64   `json:"amount"`
	Currency          string    `json:"currency"`
	Note              *string   `json:"note,omitempty"`
	SettledAt         time.Time `json:"settled_at"`

	// Populated via JOIN
	FromParticipantName string `json:"from_participant_name,omitempty"`
	ToParticipantName   string `json:"to_participant_name,omitempty"`
}
