package participant

// AddParticipantRequest represents the request to add a participant to a trip
type AddParticipantRequest struct {
	TripID int64   `json:"trip_id" validate:"required"`
	Name   string  `json:"name" validate:"required,min=1,max=100"`
	Email  *string `json:"email,omitempty" validate:"omitempty,email"`
}

// UpdateParticipantRequest represents the request to update a participant
type UpdateParticipantRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

// LinkParticipantRequest links a roster entry to the calling user's account
type LinkParticipantRequest struct {
	InviteToken string `json:"invite_token" validate:"required,uuid4"`
}

// ParticipantResponse represents the response for a participant
type ParticipantResponse struct {
	ID          int64   `json:"id"`
	TripID      int64   `json:"trip_id"`
	Name        string  `json:"name"`
	Email       *string `json:"email,omitempty"`
	UserID      *int64  `json:"user_id,omitempty"`
	IsOwner     bool    `json:"is_owner"`
	InviteToken string  `json:"invite_token,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// ToResponse converts a Participant model to a ParticipantResponse DTO
func (p *Participant) ToResponse() *ParticipantResponse {
	return &ParticipantResponse{
		ID:          p.ID,
		TripID:      p.TripID,
		Name:        p.Name,
		Email:       p.Email,
		UserID:      p.UserID,
		IsOwner:     p.IsOwner,
		InviteToken: p.InviteToken,
		CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
