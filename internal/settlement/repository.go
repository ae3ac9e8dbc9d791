package settlement

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles settlement data persistence. Settlements are
// insert-only; there are no update or delete queries on purpose.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new settlement into the database
func (r *Repository) Create(ctx context.Context, req *CreateSettlementRequest) (*Settlement, error) {
	query := `
		INSERT INTO settlements (trip_id, from_participant_id, to_participant_id, amount, currency, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, trip_id, from_participant_id, to_participant_id, amount, currency, note, settled_at
	`

	settlement := &Settlement{}
	err := r.db.QueryRowContext(ctx, query,
		req.TripID,
		req.FromParticipantID,
		req.ToParticipantID,
		req.Amount,
		req.Currency,
		req.Note,
	).Scan(
		&settlement.ID,
		&settlement.TripID,
		&settlement.FromParticipantID,
		&settlement.ToParticipantID,
		&settlement.Amount,
		&settlement.Currency,
		&settlement.Note,
		&settlement.SettledAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create settlement: %w", err)
	}

	return settlement, nil
}

// GetByID retrieves a settlement by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Settlement, error) {
	query := `
		SELECT s.id, s.trip_id, s.from_participant_id, s.to_participant_id, s.amount, s.currency, s.note, s.settled_at,
		       f.name AS from_name, t.name AS to_name
		FROM settlements s
		JOIN participants f ON s.from_participant_id = f.id
		JOIN participants t ON s.to_participant_id = t.id
		WHERE s.id = $1
	`

	settlement := &Settlement{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&settlement.ID,
		&settlement.TripID,
		&settlement.FromParticipantID,
		&settlement.ToParticipantID,
		&settlement.Amount,
		&settlement.Currency,
		&settlement.Note,
		&settlement.SettledAt,
		&settlement.FromParticipantName,
		&settlement.ToParticipantName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}

	return settlement, nil
}

// ListByTripID retrieves all settlements for a trip, newest first
func (r *Repository) ListByTripID(ctx context.Context, tripID int64, limit, offset int) ([]*Settlement, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM settlements WHERE trip_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, tripID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count settlements: %w", err)
	}

	query := `
		SELECT s.id, s.trip_id, s.from_participant_id, s.to_participant_id, s.amount, s.currency, s.note, s.settled_at,
		       f.name AS from_name, t.name AS to_name
		FROM settlements s
		JOIN participants f ON s.from_participant_id = f.id
		JOIN participants t ON s.to_participant_id = t.id
		WHERE s.trip_id = $1
		ORDER BY s.settled_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, tripID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*Settlement
	for rows.Next() {
		settlement := &Settlement{}
		if err := rows.Scan(
			&settlement.ID,
			&settlement.TripID,
			&settlement.FromParticipantID,
			&settlement.ToParticipantID,
			&settlement.Amount,
			&settlement.Currency,
			&settlement.Note,
			&settlement.SettledAt,
			&settlement.FromParticipantName,
			&settlement.ToParticipantName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, settlement)
	}

	return settlements, total, nil
}

// ListAllByTripID retrieves every settlement for a trip without pagination,
// ordered by id. Used when deriving balances, where the full history matters.
func (r *Repository) ListAllByTripID(ctx context.Context, tripID int64) ([]*Settlement, error) {
	query := `
		SELECT id, trip_id, from_participant_id, to_participant_id, amount, currency, note, settled_at
		FROM settlements
		WHERE trip_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*Settlement
	for rows.Next() {
		settlement := &Settlement{}
		if err := rows.Scan(
			&settlement.ID,
			&settlement.TripID,
			&settlement.FromParticipantID,
			&settlement.ToParticipantID,
			&settlement.Amount,
			&settlement.Currency,
			&settlement.Note,
			&settlement.SettledAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, settlement)
	}

	return settlements, nil
}
