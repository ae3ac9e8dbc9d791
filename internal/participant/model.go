package participant

import "time"

// Participant represents one member of a trip's roster. A participant may
// or may not be linked to a registered user account; unlinked participants
// are placeholder entries the trip owner created by name. IsOwner is
// advisory: it marks the entry created from the trip owner's account but is
// not structurally enforced to be unique.
//
// Participants carry no paid/owed accumulators. Balances are derived by the
// ledger from expenses, splits and settlements so they can never drift from
// the source records.
type Participant struct {
	ID          int64     `json:"id"`
	TripID      int64     `json:"trip_id"`
	Name        string    `json:"name"`
	Email       *string   `json:"email,omitempty"`
	UserID      *int64    `json:"user_id,omitempty"` // linked account, if any
	IsOwner     bool      `json:"is_owner"`
	InviteToken string    `json:"invite_token,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
