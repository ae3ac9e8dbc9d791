package settlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/voyago/tripsplit/internal/expense"
	"github.com/voyago/tripsplit/internal/ledger"
	"github.com/voyago/tripsplit/internal/notification"
	"github.com/voyago/tripsplit/internal/participant"
	"github.com/voyago/tripsplit/internal/trip"
)

// Common errors
var (
	ErrSettlementNotFound = errors.New("settlement not found")
	ErrSameParticipant    = errors.New("payer and recipient must be different participants")
	ErrNotInTrip          = errors.New("participant does not belong to this trip")
)

// Service handles settlement business logic
type Service struct {
	repo          *Repository
	trips         *trip.Repository
	expenses      *expense.Repository
	participants  *participant.Repository
	notifications *notification.Service
}

// NewService creates a new settlement service with dependencies injected
func NewService(repo *Repository, trips *trip.Repository, expenses *expense.Repository, participants *participant.Repository, notifications *notification.Service) *Service {
	return &Service{
		repo:          repo,
		trips:         trips,
		expenses:      expenses,
		participants:  participants,
		notifications: notifications,
	}
}

// Record stores a settlement payment. Both participants must belong to
// the trip and must be distinct. The settlement is never reconciled
// against outstanding debt; overpaying simply swings the balance the
// other way on the next recompute.
func (s *Service) Record(ctx context.Context, req *CreateSettlementRequest) (*Settlement, error) {
	if req.FromParticipantID == req.ToParticipantID {
		return nil, ErrSameParticipant
	}

	roster, err := s.participants.ListByTripID(ctx, req.TripID)
	if err != nil {
		return nil, err
	}

	members := make(map[int64]*participant.Participant, len(roster))
	for _, p := range roster {
		members[p.ID] = p
	}
	from, ok := members[req.FromParticipantID]
	if !ok {
		return nil, fmt.Errorf("participant %d: %w", req.FromParticipantID, ErrNotInTrip)
	}
	to, ok := members[req.ToParticipantID]
	if !ok {
		return nil, fmt.Errorf("participant %d: %w", req.ToParticipantID, ErrNotInTrip)
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

	settlement, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.notifications != nil && to.UserID != nil {
		_, _ = s.notifications.NotifySettlementRecorded(ctx, *to.UserID, from.Name, settlement.Amount, settlement.Currency, settlement.ID)
	}

	return settlement, nil
}

// GetByID retrieves a settlement by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Settlement, error) {
	settlement, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if settlement == nil {
		return nil, ErrSettlementNotFound
	}
	return settlement, nil
}

// ListByTripID retrieves settlements for a trip with pagination
func (s *Service) ListByTripID(ctx context.Context, tripID int64, page, perPage int) ([]*Settlement, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByTripID(ctx, tripID, perPage, offset)
}

// Balances recomputes every participant's position from the trip's full
// history: all expenses and splits, then all recorded settlements.
func (s *Service) Balances(ctx context.Context, tripID int64) ([]*BalanceResponse, error) {
	balances, names, _, err := s.currentBalances(ctx, tripID)
	if err != nil {
		return nil, err
	}

	out := make([]*BalanceResponse, 0, len(balances))
	for _, b := range balances {
		out = append(out, &BalanceResponse{
			ParticipantID: b.ParticipantID,
			Name:          names[b.ParticipantID],
			TotalPaid:     b.TotalPaid,
			TotalOwed:     b.TotalOwed,
			Net:           b.Net,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ParticipantID < out[j].ParticipantID })

	return out, nil
}

// SuggestTransfers proposes the settle-up plan for a trip: the greedy
// minimal set of payments that clears all outstanding balances.
func (s *Service) SuggestTransfers(ctx context.Context, tripID int64) (*SuggestionsResponse, error) {
	balances, names, currency, err := s.currentBalances(ctx, tripID)
	if err != nil {
		return nil, err
	}

	nets := make([]NetBalance, 0, len(balances))
	for _, b := range balances {
		nets = append(nets, NetBalance{ParticipantID: b.ParticipantID, Net: b.Net})
	}

	transfers, err := ReduceDebts(nets)
	if err != nil {
		// A drifted ledger means corrupted data, not a bad request.
		slog.Error("trip ledger does not sum to zero", "trip_id", tripID, "error", err)
		return nil, err
	}

	out := make([]*TransferResponse, len(transfers))
	for i, t := range transfers {
		out[i] = &TransferResponse{
			FromParticipantID:   t.FromParticipantID,
			FromParticipantName: names[t.FromParticipantID],
			ToParticipantID:     t.ToParticipantID,
			ToParticipantName:   names[t.ToParticipantID],
			Amount:              t.Amount,
		}
	}

	return &SuggestionsResponse{
		TripID:    tripID,
		Currency:  currency,
		Transfers: out,
	}, nil
}

// currentBalances loads the trip's roster and full history and derives
// each participant's current position.
func (s *Service) currentBalances(ctx context.Context, tripID int64) (map[int64]ledger.Balance, map[int64]string, string, error) {
	tripRow, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, nil, "", err
	}
	if tripRow == nil {
		return nil, nil, "", trip.ErrTripNotFound
	}

	roster, err := s.participants.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, nil, "", err
	}

	expenses, err := s.expenses.ListAllByTripID(ctx, tripID)
	if err != nil {
		return nil, nil, "", err
	}

	splits, err := s.expenses.ListSplitsByTripID(ctx, tripID)
	if err != nil {
		return nil, nil, "", err
	}

	settlements, err := s.repo.ListAllByTripID(ctx, tripID)
	if err != nil {
		return nil, nil, "", err
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

	ledgerSettlements := make([]ledger.Settlement, len(settlements))
	for i, st := range settlements {
		ledgerSettlements[i] = ledger.Settlement{
			FromParticipantID: st.FromParticipantID,
			ToParticipantID:   st.ToParticipantID,
			Amount:            st.Amount,
		}
	}

	balances := ledger.Recompute(ids, ledgerExpenses, ledgerSplits)
	balances = ledger.ApplySettlements(balances, ledgerSettlements)

	return balances, names, tripRow.Currency, nil
}
