package settlement

import (
	"errors"
	"math"
	"testing"
)

// applyTransfers replays transfers against the input balances.
func applyTransfers(balances []NetBalance, transfers []Transfer) map[int64]float64 {
	result := make(map[int64]float64, len(balances))
	for _, b := range balances {
		result[b.ParticipantID] = b.Net
	}
	for _, tr := range transfers {
		result[tr.FromParticipantID] += tr.Amount
		result[tr.ToParticipantID] -= tr.Amount
	}
	return result
}

func TestReduceDebts(t *testing.T) {
	tests := []struct {
		name          string
		balances      []NetBalance
		wantTransfers []Transfer
	}{
		{
			name: "two debtors one creditor",
			balances: []NetBalance{
				{ParticipantID: 1, Net: 100.0},
				{ParticipantID: 2, Net: -70.0},
				{ParticipantID: 3, Net: -30.0},
			},
			wantTransfers: []Transfer{
				{FromParticipantID: 2, ToParticipantID: 1, Amount: 70.0},
				{FromParticipantID: 3, ToParticipantID: 1, Amount: 30.0},
			},
		},
		{
			name: "largest pair matched first",
			balances: []NetBalance{
				{ParticipantID: 1, Net: 50.0},
				{ParticipantID: 2, Net: 30.0},
				{ParticipantID: 3, Net: -40.0},
				{ParticipantID: 4, Net: -40.0},
			},
			// debtor ties break by id: 3 before 4
			wantTransfers: []Transfer{
				{FromParticipantID: 3, ToParticipantID: 1, Amount: 40.0},
				{FromParticipantID: 4, ToParticipantID: 1, Amount: 10.0},
				{FromParticipantID: 4, ToParticipantID: 2, Amount: 30.0},
			},
		},
		{
			name: "single pair",
			balances: []NetBalance{
				{ParticipantID: 1, Net: 25.5},
				{ParticipantID: 2, Net: -25.5},
			},
			wantTransfers: []Transfer{
				{FromParticipantID: 2, ToParticipantID: 1, Amount: 25.5},
			},
		},
		{
			name: "already settled participants excluded",
			balances: []NetBalance{
				{ParticipantID: 1, Net: 20.0},
				{ParticipantID: 2, Net: -20.0},
				{ParticipantID: 3, Net: 0.0},
				{ParticipantID: 4, Net: 0.005},
				{ParticipantID: 5, Net: -0.005},
			},
			wantTransfers: []Transfer{
				{FromParticipantID: 2, ToParticipantID: 1, Amount: 20.0},
			},
		},
		{
			name:          "everyone settled",
			balances:      []NetBalance{{ParticipantID: 1, Net: 0.0}, {ParticipantID: 2, Net: 0.0}},
			wantTransfers: nil,
		},
		{
			name:          "empty input",
			balances:      nil,
			wantTransfers: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transfers, err := ReduceDebts(tt.balances)
			if err != nil {
				t.Fatalf("ReduceDebts() error: %v", err)
			}
			if len(transfers) != len(tt.wantTransfers) {
				t.Fatalf("got %d transfers %v, want %d", len(transfers), transfers, len(tt.wantTransfers))
			}
			for i, want := range tt.wantTransfers {
				if transfers[i] != want {
					t.Errorf("transfer[%d] = %+v, want %+v", i, transfers[i], want)
				}
			}

			// All resulting balances must land within epsilon of zero.
			for id, net := range applyTransfers(tt.balances, transfers) {
				if math.Abs(net) > 0.01 {
					t.Errorf("participant %d left with net %v after transfers", id, net)
				}
			}
		})
	}
}

func TestReduceDebtsMinimalityBound(t *testing.T) {
	balances := []NetBalance{
		{ParticipantID: 1, Net: 120.0},
		{ParticipantID: 2, Net: 45.5},
		{ParticipantID: 3, Net: 12.25},
		{ParticipantID: 4, Net: -60.0},
		{ParticipantID: 5, Net: -55.25},
		{ParticipantID: 6, Net: -40.0},
		{ParticipantID: 7, Net: -22.5},
	}

	transfers, err := ReduceDebts(balances)
	if err != nil {
		t.Fatalf("ReduceDebts() error: %v", err)
	}

	creditors, debtors := 3, 4
	if len(transfers) > creditors+debtors-1 {
		t.Errorf("got %d transfers, bound is %d", len(transfers), creditors+debtors-1)
	}

	for id, net := range applyTransfers(balances, transfers) {
		if math.Abs(net) > 0.01 {
			t.Errorf("participant %d left with net %v", id, net)
		}
	}
}

func TestReduceDebtsUnbalanced(t *testing.T) {
	tests := []struct {
		name     string
		balances []NetBalance
	}{
		{
			name:     "sum is positive",
			balances: []NetBalance{{ParticipantID: 1, Net: 50.0}, {ParticipantID: 2, Net: -40.0}},
		},
		{
			name:     "sum is negative",
			balances: []NetBalance{{ParticipantID: 1, Net: 10.0}, {ParticipantID: 2, Net: -10.5}},
		},
		{
			name:     "lone debtor",
			balances: []NetBalance{{ParticipantID: 1, Net: -99.0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transfers, err := ReduceDebts(tt.balances)
			if !errors.Is(err, ErrUnbalancedLedger) {
				t.Fatalf("ReduceDebts() error = %v, want ErrUnbalancedLedger", err)
			}
			if transfers != nil {
				t.Error("unbalanced input must never produce transfers")
			}
		})
	}
}

func TestReduceDebtsDeterministic(t *testing.T) {
	balances := []NetBalance{
		{ParticipantID: 3, Net: 40.0},
		{ParticipantID: 1, Net: 40.0},
		{ParticipantID: 2, Net: -80.0},
	}

	first, err := ReduceDebts(balances)
	if err != nil {
		t.Fatalf("ReduceDebts() error: %v", err)
	}
	second, err := ReduceDebts(balances)
	if err != nil {
		t.Fatalf("ReduceDebts() error: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("got %d transfers, want 2", len(first))
	}
	// Equal creditors: lower id first.
	if first[0].ToParticipantID != 1 || first[1].ToParticipantID != 3 {
		t.Errorf("tie-break order wrong: %+v", first)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("transfer[%d] differs between runs", i)
		}
	}
}
