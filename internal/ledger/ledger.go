// Package ledger derives per-participant balances for a trip.
//
// Balances are always recomputed in full from the expense, split and
// settlement records; nothing is incrementally patched. A cached running
// total can drift from its source rows after a missed update, a full
// recompute cannot, and the inputs are small enough that recomputing is
// cheap. Everything here is a pure function of its arguments.
package ledger

import "github.com/voyago/tripsplit/internal/money"

// Expense carries the fields of an expense the ledger needs.
type Expense struct {
	ID       int64
	PaidBy   int64   // participant who paid the full amount
	Amount   float64
	Category string
}

// Split carries the fields of a split the ledger needs.
type Split struct {
	ExpenseID     int64
	ParticipantID int64
	Amount        float64 // this participant's owed share
}

// Settlement is a recorded transfer between two participants.
type Settlement struct {
	FromParticipantID int64
	ToParticipantID   int64
	Amount            float64
}

// Balance is one participant's aggregate position.
// Net > 0 means the group owes them, Net < 0 means they owe the group.
type Balance struct {
	ParticipantID int64   `json:"participant_id"`
	TotalPaid     float64 `json:"total_paid"`
	TotalOwed     float64 `json:"total_owed"`
	Net           float64 `json:"net"`
}

// Recompute derives every participant's totals from scratch.
//
// totalPaid is the sum of expense amounts the participant paid for,
// totalOwed the sum of their split shares, net the difference. Every id in
// participantIDs appears in the result even with zero activity; splits or
// expenses referencing ids outside the roster are ignored rather than
// invented into the result.
func Recompute(participantIDs []int64, expenses []Expense, splits []Split) map[int64]Balance {
	balances := make(map[int64]Balance, len(participantIDs))
	for _, id := range participantIDs {
		balances[id] = Balance{ParticipantID: id}
	}

	for _, e := range expenses {
		b, ok := balances[e.PaidBy]
		if !ok {
			continue
		}
		b.TotalPaid += e.Amount
		balances[e.PaidBy] = b
	}

	for _, s := range splits {
		b, ok := balances[s.ParticipantID]
		if !ok {
			continue
		}
		b.TotalOwed += s.Amount
		balances[s.ParticipantID] = b
	}

	for id, b := range balances {
		b.TotalPaid = money.Round2(b.TotalPaid)
		b.TotalOwed = money.Round2(b.TotalOwed)
		b.Net = money.Round2(b.TotalPaid - b.TotalOwed)
		balances[id] = b
	}

	return balances
}

// ApplySettlements folds recorded settlements into a fresh copy of balances.
// Paying a settlement counts toward the debtor's totalPaid and the
// creditor's totalOwed: the debtor owes less, the creditor is owed less.
// Participants unknown to the balance map are skipped, matching Recompute.
func ApplySettlements(balances map[int64]Balance, settlements []Settlement) map[int64]Balance {
	adjusted := make(map[int64]Balance, len(balances))
	for id, b := range balances {
		adjusted[id] = b
	}

	for _, s := range settlements {
		if from, ok := adjusted[s.FromParticipantID]; ok {
			from.TotalPaid = money.Round2(from.TotalPaid + s.Amount)
			from.Net = money.Round2(from.TotalPaid - from.TotalOwed)
			adjusted[s.FromParticipantID] = from
		}
		if to, ok := adjusted[s.ToParticipantID]; ok {
			to.TotalOwed = money.Round2(to.TotalOwed + s.Amount)
			to.Net = money.Round2(to.TotalPaid - to.TotalOwed)
			adjusted[s.ToParticipantID] = to
		}
	}

	return adjusted
}

// Summary is the trip-level spending overview.
type Summary struct {
	TotalSpent float64            `json:"total_spent"`
	ByCategory map[string]float64 `json:"by_category"`
}

// Summarize totals all expenses and breaks them down by category.
func Summarize(expenses []Expense) Summary {
	summary := Summary{ByCategory: make(map[string]float64)}
	for _, e := range expenses {
		summary.TotalSpent += e.Amount
		summary.ByCategory[e.Category] += e.Amount
	}
	summary.TotalSpent = money.Round2(summary.TotalSpent)
	for c, v := range summary.ByCategory {
		summary.ByCategory[c] = money.Round2(v)
	}
	return summary
}
