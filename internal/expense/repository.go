package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/voyago/tripsplit/internal/expense/split"
)

// Repository handles expense and split data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateExpenseWithSplits inserts an expense and all its splits in one
// transaction. Splits never exist partially: either the expense lands with
// its full batch or nothing is written.
func (r *Repository) CreateExpenseWithSplits(ctx context.Context, req *CreateExpenseRequest, shares []split.Share) (*Expense, []*Split, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO expenses (trip_id, paid_by_participant_id, amount, currency, category, description, date, split_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, trip_id, paid_by_participant_id, amount, currency, category, description, date, split_type, created_at
	`

	expense := &Expense{}
	err = tx.QueryRowContext(ctx, query,
		req.TripID,
		req.PaidByParticipantID,
		req.Amount,
		req.Currency,
		req.Category,
		req.Description,
		req.Date,
		req.SplitType,
	).Scan(
		&expense.ID,
		&expense.TripID,
		&expense.PaidByParticipantID,
		&expense.Amount,
		&expense.Currency,
		&expense.Category,
		&expense.Description,
		&expense.Date,
		&expense.SplitType,
		&expense.CreatedAt,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create expense: %w", err)
	}

	splits, err := insertSplits(ctx, tx, expense.ID, shares)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit expense: %w", err)
	}

	return expense, splits, nil
}

// ReplaceSplits deletes the expense's splits and inserts the new batch in
// one transaction, optionally updating the amount, payer and split type.
// Partial mutation of a split set is not supported by design.
func (r *Repository) ReplaceSplits(ctx context.Context, expenseID int64, amount *float64, paidBy *int64, splitType string, shares []split.Share) (*Expense, []*Split, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM splits WHERE expense_id = $1`, expenseID); err != nil {
		return nil, nil, fmt.Errorf("failed to delete old splits: %w", err)
	}

	query := `
		UPDATE expenses
		SET amount = COALESCE($2, amount),
		    paid_by_participant_id = COALESCE($3, paid_by_participant_id),
		    split_type = $4
		WHERE id = $1
		RETURNING id, trip_id, paid_by_participant_id, amount, currency, category, description, date, split_type, created_at
	`

	expense := &Expense{}
	err = tx.QueryRowContext(ctx, query, expenseID, amount, paidBy, splitType).Scan(
		&expense.ID,
		&expense.TripID,
		&expense.PaidByParticipantID,
		&expense.Amount,
		&expense.Currency,
		&expense.Category,
		&expense.Description,
		&expense.Date,
		&expense.SplitType,
		&expense.CreatedAt,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to update expense: %w", err)
	}

	splits, err := insertSplits(ctx, tx, expenseID, shares)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit split replacement: %w", err)
	}

	return expense, splits, nil
}

func insertSplits(ctx context.Context, tx *sql.Tx, expenseID int64, shares []split.Share) ([]*Split, error) {
	query := `
		INSERT INTO splits (expense_id, participant_id, amount, paid)
		VALUES ($1, $2, $3, $4)
		RETURNING id, expense_id, participant_id, amount, paid, created_at
	`

	splits := make([]*Split, len(shares))
	for i, share := range shares {
		s := &Split{}
		err := tx.QueryRowContext(ctx, query, expenseID, share.ParticipantID, share.Amount, share.Paid).Scan(
			&s.ID,
			&s.ExpenseID,
			&s.ParticipantID,
			&s.Amount,
			&s.Paid,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create split: %w", err)
		}
		splits[i] = s
	}

	return splits, nil
}

// GetExpenseByID retrieves an expense by its ID
func (r *Repository) GetExpenseByID(ctx context.Context, id int64) (*Expense, error) {
	query := `
		SELECT e.id, e.trip_id, e.paid_by_participant_id, e.amount, e.currency, e.category, e.description, e.date, e.split_type, e.created_at, p.name
		FROM expenses e
		JOIN participants p ON e.paid_by_participant_id = p.id
		WHERE e.id = $1
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID,
		&expense.TripID,
		&expense.PaidByParticipantID,
		&expense.Amount,
		&expense.Currency,
		&expense.Category,
		&expense.Description,
		&expense.Date,
		&expense.SplitType,
		&expense.CreatedAt,
		&expense.PaidByName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// GetSplitsByExpenseID retrieves all splits for an expense
func (r *Repository) GetSplitsByExpenseID(ctx context.Context, expenseID int64) ([]*Split, error) {
	query := `
		SELECT s.id, s.expense_id, s.participant_id, s.amount, s.paid, s.created_at, p.name
		FROM splits s
		JOIN participants p ON s.participant_id = p.id
		WHERE s.expense_id = $1
		ORDER BY s.id
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	return scanSplits(rows)
}

// ListExpensesByTripID retrieves expenses for a trip, newest first
func (r *Repository) ListExpensesByTripID(ctx context.Context, tripID int64, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE trip_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, tripID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.trip_id, e.paid_by_participant_id, e.amount, e.currency, e.category, e.description, e.date, e.split_type, e.created_at, p.name
		FROM expenses e
		JOIN participants p ON e.paid_by_participant_id = p.id
		WHERE e.trip_id = $1
		ORDER BY e.date DESC, e.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, tripID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.TripID,
			&expense.PaidByParticipantID,
			&expense.Amount,
			&expense.Currency,
			&expense.Category,
			&expense.Description,
			&expense.Date,
			&expense.SplitType,
			&expense.CreatedAt,
			&expense.PaidByName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, total, nil
}

// ListAllByTripID retrieves every expense of a trip without pagination,
// for balance derivation.
func (r *Repository) ListAllByTripID(ctx context.Context, tripID int64) ([]*Expense, error) {
	query := `
		SELECT id, trip_id, paid_by_participant_id, amount, currency, category, description, date, split_type, created_at
		FROM expenses
		WHERE trip_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.TripID,
			&expense.PaidByParticipantID,
			&expense.Amount,
			&expense.Currency,
			&expense.Category,
			&expense.Description,
			&expense.Date,
			&expense.SplitType,
			&expense.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, nil
}

// ListSplitsByTripID retrieves every split of a trip for balance derivation
func (r *Repository) ListSplitsByTripID(ctx context.Context, tripID int64) ([]*Split, error) {
	query := `
		SELECT s.id, s.expense_id, s.participant_id, s.amount, s.paid, s.created_at, ''
		FROM splits s
		JOIN expenses e ON s.expense_id = e.id
		WHERE e.trip_id = $1
		ORDER BY s.id
	`

	rows, err := r.db.QueryContext(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}
	defer rows.Close()

	return scanSplits(rows)
}

func scanSplits(rows *sql.Rows) ([]*Split, error) {
	var splits []*Split
	for rows.Next() {
		s := &Split{}
		if err := rows.Scan(
			&s.ID,
			&s.ExpenseID,
			&s.ParticipantID,
			&s.Amount,
			&s.Paid,
			&s.CreatedAt,
			&s.ParticipantName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, s)
	}
	return splits, nil
}

// UpdateExpense modifies expense metadata
func (r *Repository) UpdateExpense(ctx context.Context, id int64, req *UpdateExpenseRequest) (*Expense, error) {
	query := `
		UPDATE expenses
		SET category = COALESCE($2, category),
		    description = COALESCE($3, description),
		    date = COALESCE($4, date)
		WHERE id = $1
		RETURNING id, trip_id, paid_by_participant_id, amount, currency, category, description, date, split_type, created_at
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id, req.Category, req.Description, req.Date).Scan(
		&expense.ID,
		&expense.TripID,
		&expense.PaidByParticipantID,
		&expense.Amount,
		&expense.Currency,
		&expense.Category,
		&expense.Description,
		&expense.Date,
		&expense.SplitType,
		&expense.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return expense, nil
}

// DeleteExpense removes an expense and its splits in one transaction
func (r *Repository) DeleteExpense(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM splits WHERE expense_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete splits: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("expense not found")
	}

	return tx.Commit()
}
