package expense

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/voyago/tripsplit/internal/expense/split"
	"github.com/voyago/tripsplit/internal/ledger"
	"github.com/voyago/tripsplit/internal/notification"
	"github.com/voyago/tripsplit/internal/participant"
	"github.com/voyago/tripsplit/internal/trip"
)

// Common errors
var (
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrUnknownParticipant = errors.New("participant does not belong to this trip")
)

// Service handles expense business logic
type Service struct {
	repo          *Repository
	trips         *trip.Repository
	participants  *participant.Repository
	splitFactory  *split.Factory // Factory pattern for creating split strategies
	notifications *notification.Service
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, trips *trip.Repository, participants *participant.Repository, splitFactory *split.Factory, notifications *notification.Service) *Service {
	return &Service{
		repo:          repo,
		trips:         trips,
		participants:  participants,
		splitFactory:  splitFactory,
		notifications: notifications,
	}
}

// CreateExpense creates an expense and its splits in one transaction.
// The payer and every listed participant must belong to the trip's roster;
// the payer does not have to appear among the split participants.
func (s *Service) CreateExpense(ctx context.Context, req *CreateExpenseRequest) (*ExpenseWithSplits, error) {
	roster, err := s.participants.ListByTripID(ctx, req.TripID)
	if err != nil {
		return nil, err
	}
	if err := checkRoster(roster, req.PaidByParticipantID, req.Participants); err != nil {
		return nil, err
	}

	// Use FACTORY PATTERN to get the appropriate split strategy
	strategy, err := s.splitFactory.CreateFromString(req.SplitType)
	if err != nil {
		return nil, err
	}

	inputs := make([]split.Participant, len(req.Participants))
	for i, p := range req.Participants {
		inputs[i] = p.ToSplitParticipant()
	}

	// Use STRATEGY PATTERN - calculate shares using the selected strategy
	shares, err := strategy.Calculate(req.Amount, req.PaidByParticipantID, inputs)
	if err != nil {
		return nil, err
	}

	if req.Currency == "" {
		tripRow, err := s.trips.GetByID(ctx, req.TripID)
		if err != nil {
			return nil, err
		}
		if req.Currency, err = trip.DefaultCurrency(tripRow, ""); err != nil {
			return nil, err
		}
	}

	expense, splits, err := s.repo.CreateExpenseWithSplits(ctx, req, shares)
	if err != nil {
		return nil, err
	}

	s.notifySplits(ctx, roster, expense, splits)

	return &ExpenseWithSplits{Expense: expense, Splits: splits}, nil
}

// GetExpenseByID retrieves an expense with its splits
func (s *Service) GetExpenseByID(ctx context.Context, id int64) (*ExpenseWithSplits, error) {
	expense, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	splits, err := s.repo.GetSplitsByExpenseID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithSplits{Expense: expense, Splits: splits}, nil
}

// ListByTripID retrieves expenses for a trip with pagination
func (s *Service) ListByTripID(ctx context.Context, tripID int64, page, perPage int) ([]*Expense, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListExpensesByTripID(ctx, tripID, perPage, offset)
}

// UpdateExpense modifies expense metadata. Amount and splits are out of
// scope here; use ReplaceSplits to change what is owed.
func (s *Service) UpdateExpense(ctx context.Context, id int64, req *UpdateExpenseRequest) (*Expense, error) {
	existing, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrExpenseNotFound
	}

	return s.repo.UpdateExpense(ctx, id, req)
}

// ReplaceSplits recalculates an expense's split set and swaps it in one
// transaction. The amount and payer may change at the same time.
func (s *Service) ReplaceSplits(ctx context.Context, id int64, req *ReplaceSplitsRequest) (*ExpenseWithSplits, error) {
	existing, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrExpenseNotFound
	}

	amount := existing.Amount
	if req.Amount != nil {
		amount = *req.Amount
	}
	paidBy := existing.PaidByParticipantID
	if req.PaidByParticipantID != nil {
		paidBy = *req.PaidByParticipantID
	}

	roster, err := s.participants.ListByTripID(ctx, existing.TripID)
	if err != nil {
		return nil, err
	}
	if err := checkRoster(roster, paidBy, req.Participants); err != nil {
		return nil, err
	}

	strategy, err := s.splitFactory.CreateFromString(req.SplitType)
	if err != nil {
		return nil, err
	}

	inputs := make([]split.Participant, len(req.Participants))
	for i, p := range req.Participants {
		inputs[i] = p.ToSplitParticipant()
	}

	shares, err := strategy.Calculate(amount, paidBy, inputs)
	if err != nil {
		return nil, err
	}

	expense, splits, err := s.repo.ReplaceSplits(ctx, id, req.Amount, req.PaidByParticipantID, req.SplitType, shares)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithSplits{Expense: expense, Splits: splits}, nil
}

// DeleteExpense removes an expense and its splits
func (s *Service) DeleteExpense(ctx context.Context, id int64) error {
	existing, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrExpenseNotFound
	}

	return s.repo.DeleteExpense(ctx, id)
}

// Summary builds the trip spending overview: total spent, per-category
// totals, and per-participant balances recomputed from scratch.
func (s *Service) Summary(ctx context.Context, tripID int64) (*SummaryResponse, error) {
	tripRow, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if tripRow == nil {
		return nil, trip.ErrTripNotFound
	}

	roster, err := s.participants.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.repo.ListAllByTripID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	splits, err := s.repo.ListSplitsByTripID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(roster))
	names := make(map[int64]string, len(roster))
	for i, p := range roster {
		ids[i] = p.ID
		names[p.ID] = p.Name
	}

	ledgerExpenses := make([]ledger.Expense, len(expenses))
	for i, e := range expenses {
		ledgerExpenses[i] = ledger.Expense{
			ID:       e.ID,
			PaidBy:   e.PaidByParticipantID,
			Amount:   e.Amount,
			Category: e.Category,
		}
	}

	ledgerSplits := make([]ledger.Split, len(splits))
	for i, sp := range splits {
		ledgerSplits[i] = ledger.Split{
			ExpenseID:     sp.ExpenseID,
			ParticipantID: sp.ParticipantID,
			Amount:        sp.Amount,
		}
	}

	balances := ledger.Recompute(ids, ledgerExpenses, ledgerSplits)
	summary := ledger.Summarize(ledgerExpenses)

	out := make([]*ParticipantBalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, balanceResponse(names[b.ParticipantID], b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ParticipantID < out[j].ParticipantID })

	return &SummaryResponse{
		TripID:       tripID,
		Currency:     tripRow.Currency,
		TotalSpent:   summary.TotalSpent,
		ByCategory:   summary.ByCategory,
		Balances:     out,
		ExpenseCount: len(expenses),
	}, nil
}

// checkRoster verifies the payer and every split participant belong to
// the trip's roster.
func checkRoster(roster []*participant.Participant, paidBy int64, participants []*SplitParticipant) error {
	members := make(map[int64]bool, len(roster))
	for _, p := range roster {
		members[p.ID] = true
	}

	if !members[paidBy] {
		return fmt.Errorf("payer %d: %w", paidBy, ErrUnknownParticipant)
	}
	for _, p := range participants {
		if !members[p.ParticipantID] {
			return fmt.Errorf("participant %d: %w", p.ParticipantID, ErrUnknownParticipant)
		}
	}
	return nil
}

// notifySplits tells linked participants about a new expense. Notification
// failures are swallowed; the expense is already committed.
func (s *Service) notifySplits(ctx context.Context, roster []*participant.Participant, expense *Expense, splits []*Split) {
	if s.notifications == nil {
		return
	}

	users := make(map[int64]*int64, len(roster))
	for _, p := range roster {
		users[p.ID] = p.UserID
	}

	entityType := "EXPENSE"
	for _, sp := range splits {
		if sp.Paid {
			continue
		}
		userID := users[sp.ParticipantID]
		if userID == nil {
			continue
		}
		message := fmt.Sprintf("You owe %.2f %s for %q", sp.Amount, expense.Currency, expense.Description)
		_, _ = s.notifications.Create(ctx, *userID, message, &entityType, &expense.ID)
	}
}
