package participant

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles participant data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new participant repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new participant into the database
func (r *Repository) Create(ctx context.Context, tripID int64, name string, email *string, userID *int64, isOwner bool, inviteToken string) (*Participant, error) {
	query := `
		INSERT INTO participants (trip_id, name, email, user_id, is_owner, invite_token)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, trip_id, name, email, user_id, is_owner, invite_token, created_at
	`

	participant := &Participant{}
	err := r.db.QueryRowContext(ctx, query, tripID, name, email, userID, isOwner, inviteToken).Scan(
		&participant.ID,
		&participant.TripID,
		&participant.Name,
		&participant.Email,
		&participant.UserID,
		&participant.IsOwner,
		&participant.InviteToken,
		&participant.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}

	return participant, nil
}

// GetByID retrieves a participant by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Participant, error) {
	query := `
		SELECT id, trip_id, name, email, user_id, is_owner, invite_token, created_at
		FROM participants
		WHERE id = $1
	`

	participant := &Participant{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&participant.ID,
		&participant.TripID,
		&participant.Name,
		&participant.Email,
		&participant.UserID,
		&participant.IsOwner,
		&participant.InviteToken,
		&participant.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	return participant, nil
}

// GetByInviteToken retrieves a participant by its invite token
func (r *Repository) GetByInviteToken(ctx context.Context, token string) (*Participant, error) {
	query := `
		SELECT id, trip_id, name, email, user_id, is_owner, invite_token, created_at
		FROM participants
		WHERE invite_token = $1
	`

	participant := &Participant{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&participant.ID,
		&participant.TripID,
		&participant.Name,
		&participant.Email,
		&participant.UserID,
		&participant.IsOwner,
		&participant.InviteToken,
		&participant.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get participant by token: %w", err)
	}

	return participant, nil
}

// ListByTripID retrieves the full roster of a trip in insertion order.
// Roster order matters: the split engine assigns rounding remainders to the
// first participant, so the ordering must be stable.
func (r *Repository) ListByTripID(ctx context.Context, tripID int64) ([]*Participant, error) {
	query := `
		SELECT id, trip_id, name, email, user_id, is_owner, invite_token, created_at
		FROM participants
		WHERE trip_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []*Participant
	for rows.Next() {
		participant := &Participant{}
		if err := rows.Scan(
			&participant.ID,
			&participant.TripID,
			&participant.Name,
			&participant.Email,
			&participant.UserID,
			&participant.IsOwner,
			&participant.InviteToken,
			&participant.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, participant)
	}

	return participants, nil
}

// Update modifies a participant's name and email
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateParticipantRequest) (*Participant, error) {
	query := `
		UPDATE participants
		SET name = COALESCE($2, name), email = COALESCE($3, email)
		WHERE id = $1
		RETURNING id, trip_id, name, email, user_id, is_owner, invite_token, created_at
	`

	participant := &Participant{}
	err := r.db.QueryRowContext(ctx, query, id, req.Name, req.Email).Scan(
		&participant.ID,
		&participant.TripID,
		&participant.Name,
		&participant.Email,
		&participant.UserID,
		&participant.IsOwner,
		&participant.InviteToken,
		&participant.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update participant: %w", err)
	}

	return participant, nil
}

// LinkUser sets the linked user account on a participant
func (r *Repository) LinkUser(ctx context.Context, id, userID int64) (*Participant, error) {
	query := `
		UPDATE participants
		SET user_id = $2
		WHERE id = $1
		RETURNING id, trip_id, name, email, user_id, is_owner, invite_token, created_at
	`

	participant := &Participant{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&participant.ID,
		&participant.TripID,
		&participant.Name,
		&participant.Email,
		&participant.UserID,
		&participant.IsOwner,
		&participant.InviteToken,
		&participant.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to link participant: %w", err)
	}

	return participant, nil
}

// Delete removes a participant. The participant's splits go with it via the
// ON DELETE CASCADE on splits.participant_id, so no split can be left
// referencing a deleted participant.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM participants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("participant not found")
	}

	return nil
}

// CountExpensesPaidBy counts expenses where this participant is the payer.
// Deleting the payer of recorded expenses would orphan the paid-by
// reference, so the service refuses it.
func (r *Repository) CountExpensesPaidBy(ctx context.Context, id int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM expenses WHERE paid_by_participant_id = $1`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count expenses: %w", err)
	}
	return count, nil
}
