package trip

import (
	"context"
	"errors"

	"github.com/voyago/tripsplit/internal/participant"
)

// Common errors
var (
	ErrTripNotFound = errors.New("trip not found")
	ErrNotOwner     = errors.New("only the trip owner can perform this action")
	ErrNotMember    = errors.New("you don't have access to this trip")
)

// Service handles trip business logic
type Service struct {
	repo         *Repository
	participants *participant.Service
}

// NewService creates a new trip service
func NewService(repo *Repository, participants *participant.Service) *Service {
	return &Service{repo: repo, participants: participants}
}

// Create creates a trip and seeds its roster with the owner's entry
func (s *Service) Create(ctx context.Context, ownerID int64, req *CreateTripRequest) (*Trip, error) {
	trip, err := s.repo.Create(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}

	if _, err := s.participants.AddOwner(ctx, trip.ID, ownerID, req.OwnerName); err != nil {
		return nil, err
	}

	return trip, nil
}

// GetByID retrieves a trip, enforcing membership
func (s *Service) GetByID(ctx context.Context, id, userID int64) (*Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}

	member, err := s.repo.IsMember(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotMember
	}

	return trip, nil
}

// ListByUserID retrieves trips the user owns or participates in
func (s *Service) ListByUserID(ctx context.Context, userID int64, page, perPage int) ([]*Trip, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByUserID(ctx, userID, perPage, offset)
}

// Update modifies a trip; owner only
func (s *Service) Update(ctx context.Context, id, userID int64, req *UpdateTripRequest) (*Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, ErrTripNotFound
	}
	if trip.OwnerID != userID {
		return nil, ErrNotOwner
	}

	return s.repo.Update(ctx, id, req)
}

// Delete removes a trip and everything under it; owner only
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if trip == nil {
		return ErrTripNotFound
	}
	if trip.OwnerID != userID {
		return ErrNotOwner
	}

	return s.repo.Delete(ctx, id)
}
