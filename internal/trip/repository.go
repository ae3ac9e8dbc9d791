package trip

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles trip data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new trip repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new trip into the database
func (r *Repository) Create(ctx context.Context, ownerID int64, req *CreateTripRequest) (*Trip, error) {
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	query := `
		INSERT INTO trips (owner_id, name, destination, currency, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, owner_id, name, destination, currency, start_date, end_date, created_at
	`

	trip := &Trip{}
	err := r.db.QueryRowContext(ctx, query,
		ownerID,
		req.Name,
		req.Destination,
		currency,
		req.StartDate,
		req.EndDate,
	).Scan(
		&trip.ID,
		&trip.OwnerID,
		&trip.Name,
		&trip.Destination,
		&trip.Currency,
		&trip.StartDate,
		&trip.EndDate,
		&trip.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	return trip, nil
}

// GetByID retrieves a trip by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Trip, error) {
	query := `
		SELECT id, owner_id, name, destination, currency, start_date, end_date, created_at
		FROM trips
		WHERE id = $1
	`

	trip := &Trip{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&trip.ID,
		&trip.OwnerID,
		&trip.Name,
		&trip.Destination,
		&trip.Currency,
		&trip.StartDate,
		&trip.EndDate,
		&trip.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	return trip, nil
}

// ListByUserID retrieves trips the user owns or participates in
func (r *Repository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*Trip, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(DISTINCT t.id)
		FROM trips t
		LEFT JOIN participants p ON p.trip_id = t.id
		WHERE t.owner_id = $1 OR p.user_id = $1
	`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count trips: %w", err)
	}

	query := `
		SELECT DISTINCT t.id, t.owner_id, t.name, t.destination, t.currency, t.start_date, t.end_date, t.created_at
		FROM trips t
		LEFT JOIN participants p ON p.trip_id = t.id
		WHERE t.owner_id = $1 OR p.user_id = $1
		ORDER BY t.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []*Trip
	for rows.Next() {
		trip := &Trip{}
		if err := rows.Scan(
			&trip.ID,
			&trip.OwnerID,
			&trip.Name,
			&trip.Destination,
			&trip.Currency,
			&trip.StartDate,
			&trip.EndDate,
			&trip.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, trip)
	}

	return trips, total, nil
}

// Update modifies a trip's mutable fields
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateTripRequest) (*Trip, error) {
	query := `
		UPDATE trips
		SET name = COALESCE($2, name),
		    destination = COALESCE($3, destination),
		    start_date = COALESCE($4, start_date),
		    end_date = COALESCE($5, end_date)
		WHERE id = $1
		RETURNING id, owner_id, name, destination, currency, start_date, end_date, created_at
	`

	trip := &Trip{}
	err := r.db.QueryRowContext(ctx, query, id, req.Name, req.Destination, req.StartDate, req.EndDate).Scan(
		&trip.ID,
		&trip.OwnerID,
		&trip.Name,
		&trip.Destination,
		&trip.Currency,
		&trip.StartDate,
		&trip.EndDate,
		&trip.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update trip: %w", err)
	}

	return trip, nil
}

// Delete removes a trip. Participants, expenses, splits and settlements all
// hang off the trip with ON DELETE CASCADE.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("trip not found")
	}

	return nil
}

// IsMember reports whether the user owns the trip or is linked to one of
// its roster entries.
func (r *Repository) IsMember(ctx context.Context, tripID, userID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM trips t
			LEFT JOIN participants p ON p.trip_id = t.id
			WHERE t.id = $1 AND (t.owner_id = $2 OR p.user_id = $2)
		)
	`
	if err := r.db.QueryRowContext(ctx, query, tripID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}
