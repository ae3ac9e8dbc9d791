package ledger

import (
	"math"
	"testing"
)

func TestRecompute(t *testing.T) {
	expenses := []Expense{
		{ID: 1, PaidBy: 1, Amount: 150.0, Category: "food"},
		{ID: 2, PaidBy: 2, Amount: 60.0, Category: "transport"},
	}
	splits := []Split{
		{ExpenseID: 1, ParticipantID: 1, Amount: 50.0},
		{ExpenseID: 1, ParticipantID: 2, Amount: 50.0},
		{ExpenseID: 1, ParticipantID: 3, Amount: 50.0},
		{ExpenseID: 2, ParticipantID: 1, Amount: 20.0},
		{ExpenseID: 2, ParticipantID: 2, Amount: 20.0},
		{ExpenseID: 2, ParticipantID: 3, Amount: 20.0},
	}

	balances := Recompute([]int64{1, 2, 3, 4}, expenses, splits)

	tests := []struct {
		participantID int64
		paid, owed    float64
	}{
		{1, 150.0, 70.0},
		{2, 60.0, 70.0},
		{3, 0.0, 70.0},
		{4, 0.0, 0.0}, // no activity, still present
	}
	for _, tt := range tests {
		b, ok := balances[tt.participantID]
		if !ok {
			t.Fatalf("participant %d missing from balances", tt.participantID)
		}
		if b.TotalPaid != tt.paid || b.TotalOwed != tt.owed {
			t.Errorf("participant %d: paid=%v owed=%v, want paid=%v owed=%v",
				tt.participantID, b.TotalPaid, b.TotalOwed, tt.paid, tt.owed)
		}
		if want := tt.paid - tt.owed; b.Net != want {
			t.Errorf("participant %d: net=%v, want %v", tt.participantID, b.Net, want)
		}
	}

	// A closed system nets to zero.
	var sum float64
	for _, b := range balances {
		sum += b.Net
	}
	if math.Abs(sum) > 0.01 {
		t.Errorf("net balances sum to %v, want ~0", sum)
	}
}

func TestRecomputeOrderIndependent(t *testing.T) {
	expenses := []Expense{
		{ID: 1, PaidBy: 1, Amount: 33.34},
		{ID: 2, PaidBy: 2, Amount: 12.5},
		{ID: 3, PaidBy: 1, Amount: 99.99},
	}
	splits := []Split{
		{ExpenseID: 1, ParticipantID: 2, Amount: 33.34},
		{ExpenseID: 2, ParticipantID: 1, Amount: 12.5},
		{ExpenseID: 3, ParticipantID: 2, Amount: 99.99},
	}
	reversedExpenses := []Expense{expenses[2], expenses[1], expenses[0]}
	reversedSplits := []Split{splits[2], splits[1], splits[0]}

	forward := Recompute([]int64{1, 2}, expenses, splits)
	backward := Recompute([]int64{1, 2}, reversedExpenses, reversedSplits)

	for id, b := range forward {
		if backward[id] != b {
			t.Errorf("participant %d: %+v (forward) != %+v (backward)", id, b, backward[id])
		}
	}
}

func TestRecomputeIgnoresUnknownParticipants(t *testing.T) {
	expenses := []Expense{{ID: 1, PaidBy: 99, Amount: 50.0}}
	splits := []Split{{ExpenseID: 1, ParticipantID: 99, Amount: 50.0}}

	balances := Recompute([]int64{1}, expenses, splits)
	if len(balances) != 1 {
		t.Fatalf("got %d balances, want 1", len(balances))
	}
	if b := balances[1]; b.TotalPaid != 0 || b.TotalOwed != 0 {
		t.Errorf("roster participant picked up foreign records: %+v", b)
	}
}

func TestApplySettlements(t *testing.T) {
	balances := map[int64]Balance{
		1: {ParticipantID: 1, TotalPaid: 100.0, TotalOwed: 30.0, Net: 70.0},
		2: {ParticipantID: 2, TotalPaid: 0.0, TotalOwed: 70.0, Net: -70.0},
	}

	adjusted := ApplySettlements(balances, []Settlement{
		{FromParticipantID: 2, ToParticipantID: 1, Amount: 70.0},
	})

	if b := adjusted[2]; b.Net != 0 {
		t.Errorf("debtor net after settling = %v, want 0", b.Net)
	}
	if b := adjusted[1]; b.Net != 0 {
		t.Errorf("creditor net after being paid = %v, want 0", b.Net)
	}

	// Input map must be untouched.
	if balances[2].Net != -70.0 || balances[1].Net != 70.0 {
		t.Error("ApplySettlements mutated its input")
	}
}

func TestApplySettlementsPartial(t *testing.T) {
	balances := map[int64]Balance{
		1: {ParticipantID: 1, TotalPaid: 90.0, TotalOwed: 30.0, Net: 60.0},
		2: {ParticipantID: 2, TotalPaid: 0.0, TotalOwed: 60.0, Net: -60.0},
	}

	adjusted := ApplySettlements(balances, []Settlement{
		{FromParticipantID: 2, ToParticipantID: 1, Amount: 25.0},
	})

	if b := adjusted[2]; b.Net != -35.0 {
		t.Errorf("debtor net after partial settlement = %v, want -35", b.Net)
	}
	if b := adjusted[1]; b.Net != 35.0 {
		t.Errorf("creditor net after partial settlement = %v, want 35", b.Net)
	}
}

func TestSummarize(t *testing.T) {
	summary := Summarize([]Expense{
		{ID: 1, Amount: 120.0, Category: "food"},
		{ID: 2, Amount: 80.0, Category: "food"},
		{ID: 3, Amount: 45.5, Category: "transport"},
	})

	if summary.TotalSpent != 245.5 {
		t.Errorf("TotalSpent = %v, want 245.5", summary.TotalSpent)
	}
	if summary.ByCategory["food"] != 200.0 {
		t.Errorf("food = %v, want 200", summary.ByCategory["food"])
	}
	if summary.ByCategory["transport"] != 45.5 {
		t.Errorf("transport = %v, want 45.5", summary.ByCategory["transport"])
	}
}
