package participant

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrInviteTokenNotFound = errors.New("invite token not found")
	ErrAlreadyLinked       = errors.New("participant is already linked to an account")
	ErrHasPaidExpenses     = errors.New("cannot remove a participant who paid for expenses")
)

// Service handles participant business logic
type Service struct {
	repo *Repository
}

// NewService creates a new participant service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Add adds a participant to a trip's roster. Every participant gets a fresh
// invite token so they can later claim the entry with their own account.
func (s *Service) Add(ctx context.Context, req *AddParticipantRequest) (*Participant, error) {
	return s.repo.Create(ctx, req.TripID, req.Name, req.Email, nil, false, uuid.NewString())
}

// AddOwner creates the roster entry for the trip owner, linked to their
// account and flagged as owner. Called when a trip is created.
func (s *Service) AddOwner(ctx context.Context, tripID, userID int64, name string) (*Participant, error) {
	return s.repo.Create(ctx, tripID, name, nil, &userID, true, uuid.NewString())
}

// GetByID retrieves a participant by ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Participant, error) {
	participant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, ErrParticipantNotFound
	}
	return participant, nil
}

// ListByTripID retrieves a trip's roster in stable order
func (s *Service) ListByTripID(ctx context.Context, tripID int64) ([]*Participant, error) {
	return s.repo.ListByTripID(ctx, tripID)
}

// Update modifies a participant's name or email
func (s *Service) Update(ctx context.Context, id int64, req *UpdateParticipantRequest) (*Participant, error) {
	participant, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, ErrParticipantNotFound
	}
	return participant, nil
}

// Link claims a roster entry for the calling user via its invite token
func (s *Service) Link(ctx context.Context, userID int64, req *LinkParticipantRequest) (*Participant, error) {
	participant, err := s.repo.GetByInviteToken(ctx, req.InviteToken)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, ErrInviteTokenNotFound
	}
	if participant.UserID != nil {
		return nil, ErrAlreadyLinked
	}

	return s.repo.LinkUser(ctx, participant.ID, userID)
}

// Remove deletes a participant and, via cascade, their splits. A
// participant who is recorded as payer of any expense cannot be removed;
// those expenses must be deleted or reassigned first.
func (s *Service) Remove(ctx context.Context, id int64) error {
	participant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if participant == nil {
		return ErrParticipantNotFound
	}

	paidCount, err := s.repo.CountExpensesPaidBy(ctx, id)
	if err != nil {
		return err
	}
	if paidCount > 0 {
		return ErrHasPaidExpenses
	}

	return s.repo.Delete(ctx, id)
}
