package trip

import "time"

// CreateTripRequest represents the request to create a trip
type CreateTripRequest struct {
	Name        string     `json:"name" validate:"required,min=1,max=255"`
	Destination string     `json:"destination" validate:"required,min=1,max=255"`
	Currency    string     `json:"currency" validate:"omitempty,len=3"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	OwnerName   string     `json:"owner_name" validate:"required,min=1,max=100"` // roster name for the creator
}

// UpdateTripRequest represents the request to update a trip
type UpdateTripRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Destination *string    `json:"destination,omitempty" validate:"omitempty,min=1,max=255"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// TripResponse represents the response for a trip
type TripResponse struct {
	ID          int64   `json:"id"`
	OwnerID     int64   `json:"owner_id"`
	Name        string  `json:"name"`
	Destination string  `json:"destination"`
	Currency    string  `json:"currency"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// ToResponse converts a Trip model to a TripResponse DTO
func (t *Trip) ToResponse() *TripResponse {
	resp := &TripResponse{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Name:        t.Name,
		Destination: t.Destination,
		Currency:    t.Currency,
		CreatedAt:   t.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if t.StartDate != nil {
		s := t.StartDate.Format("2006-01-02")
		resp.StartDate = &s
	}
	if t.EndDate != nil {
		e := t.EndDate.Format("2006-01-02")
		resp.EndDate = &e
	}
	return resp
}
