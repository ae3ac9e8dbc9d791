package trip

import "time"

// Trip represents a trip whose expenses are tracked and settled together.
// Currency is the trip's unit of account: all balances and settlement
// suggestions are denominated in it.
type Trip struct {
	ID          int64      `json:"id"`
	OwnerID     int64      `json:"owner_id"` // user who created the trip
	Name        string     `json:"name"`
	Destination string     `json:"destination"`
	Currency    string     `json:"currency"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// DefaultCurrency resolves the currency for a record created under this
// trip: an explicit request wins, otherwise the trip's unit of account.
// The trip may be nil when the caller's lookup found no row.
func DefaultCurrency(t *Trip, requested string) (string, error) {
	if requested != "" {
		return requested, nil
	}
	if t == nil {
		return "", ErrTripNotFound
	}
	return t.Currency, nil
}
