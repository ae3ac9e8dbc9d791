package split

import (
	"errors"
	"math"
	"testing"
)

func f(v float64) *float64 { return &v }

func sumShares(shares []Share) float64 {
	var sum float64
	for _, s := range shares {
		sum += s.Amount
	}
	return sum
}

func paidCount(shares []Share) int {
	var n int
	for _, s := range shares {
		if s.Paid {
			n++
		}
	}
	return n
}

func TestEqualStrategy(t *testing.T) {
	tests := []struct {
		name         string
		total        float64
		paidBy       int64
		participants []Participant
		wantErr      error
		wantAmounts  []float64
	}{
		{
			name:         "clean division",
			total:        90.0,
			paidBy:       1,
			participants: []Participant{{ParticipantID: 1}, {ParticipantID: 2}, {ParticipantID: 3}},
			wantAmounts:  []float64{30.0, 30.0, 30.0},
		},
		{
			name:         "remainder cent goes to first participant",
			total:        100.0,
			paidBy:       1,
			participants: []Participant{{ParticipantID: 1}, {ParticipantID: 2}, {ParticipantID: 3}},
			wantAmounts:  []float64{33.34, 33.33, 33.33},
		},
		{
			name:         "negative remainder taken from first participant",
			total:        100.01,
			paidBy:       2,
			participants: []Participant{{ParticipantID: 1}, {ParticipantID: 2}, {ParticipantID: 3}},
			wantAmounts:  []float64{33.33, 33.34, 33.34},
		},
		{
			name:   "multi-cent remainder spreads one cent per participant",
			total:  100.0,
			paidBy: 1,
			participants: []Participant{
				{ParticipantID: 1}, {ParticipantID: 2}, {ParticipantID: 3},
				{ParticipantID: 4}, {ParticipantID: 5}, {ParticipantID: 6},
			},
			wantAmounts: []float64{16.66, 16.66, 16.67, 16.67, 16.67, 16.67},
		},
		{
			name:   "tiny amount never produces a negative share",
			total:  0.09,
			paidBy: 1,
			participants: []Participant{
				{ParticipantID: 1}, {ParticipantID: 2}, {ParticipantID: 3},
				{ParticipantID: 4}, {ParticipantID: 5}, {ParticipantID: 6},
			},
			wantAmounts: []float64{0.01, 0.01, 0.01, 0.02, 0.02, 0.02},
		},
		{
			name:         "amount below one cent per head",
			total:        0.01,
			paidBy:       1,
			participants: []Participant{{ParticipantID: 1}, {ParticipantID: 2}},
			wantAmounts:  []float64{0.00, 0.01},
		},
		{
			name:         "single participant owes everything",
			total:        42.5,
			paidBy:       1,
			participants: []Participant{{ParticipantID: 1}},
			wantAmounts:  []float64{42.5},
		},
		{
			name:    "no participants",
			total:   50.0,
			paidBy:  1,
			wantErr: ErrNoParticipants,
		},
		{
			name:         "zero amount",
			total:        0,
			paidBy:       1,
			participants: []Participant{{ParticipantID: 1}},
			wantErr:      ErrNonPositiveAmount,
		},
	}

	strategy := &EqualStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := strategy.Calculate(tt.total, tt.paidBy, tt.participants)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Calculate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Calculate() unexpected error: %v", err)
			}
			if len(shares) != len(tt.wantAmounts) {
				t.Fatalf("got %d shares, want %d", len(shares), len(tt.wantAmounts))
			}
			for i, want := range tt.wantAmounts {
				if shares[i].Amount != want {
					t.Errorf("share[%d] = %v, want %v", i, shares[i].Amount, want)
				}
				if shares[i].Amount < 0 {
					t.Errorf("share[%d] = %v, owed amounts must not be negative", i, shares[i].Amount)
				}
			}
			if sum := sumShares(shares); math.Abs(sum-tt.total) > 0.001 {
				t.Errorf("shares sum to %v, want exactly %v", sum, tt.total)
			}
		})
	}
}

func TestEqualStrategyDeterministic(t *testing.T) {
	strategy := &EqualStrategy{}
	participants := []Participant{{ParticipantID: 7}, {ParticipantID: 3}, {ParticipantID: 9}}

	first, err := strategy.Calculate(100.0, 3, participants)
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}
	second, err := strategy.Calculate(100.0, 3, participants)
	if err != nil {
		t.Fatalf("Calculate() error: %v", err)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("share[%d] differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestCustomStrategy(t *testing.T) {
	tests := []struct {
		name         string
		total        float64
		participants []Participant
		wantErr      error
		wantMismatch bool
		wantSum      float64
	}{
		{
			name:  "amounts sum to total",
			total: 90.0,
			participants: []Participant{
				{ParticipantID: 1, Amount: f(30)},
				{ParticipantID: 2, Amount: f(30)},
				{ParticipantID: 3, Amount: f(30)},
			},
		},
		{
			name:  "one cent short fails",
			total: 90.0,
			participants: []Participant{
				{ParticipantID: 1, Amount: f(30)},
				{ParticipantID: 2, Amount: f(30)},
				{ParticipantID: 3, Amount: f(29.99)},
			},
			wantMismatch: true,
			wantSum:      89.99,
		},
		{
			name:  "sub-cent float drift passes",
			total: 0.30,
			participants: []Participant{
				{ParticipantID: 1, Amount: f(0.10)},
				{ParticipantID: 2, Amount: f(0.10)},
				{ParticipantID: 3, Amount: f(0.10)},
			},
		},
		{
			name:  "missing amount",
			total: 50.0,
			participants: []Participant{
				{ParticipantID: 1, Amount: f(50)},
				{ParticipantID: 2},
			},
			wantErr: ErrMissingAmount,
		},
		{
			name:  "negative amount",
			total: 50.0,
			participants: []Participant{
				{ParticipantID: 1, Amount: f(60)},
				{ParticipantID: 2, Amount: f(-10)},
			},
			wantErr: ErrNegativeAmount,
		},
	}

	strategy := &CustomStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := strategy.Calculate(tt.total, 1, tt.participants)
			if tt.wantMismatch {
				var mismatch *AmountMismatchError
				if !errors.As(err, &mismatch) {
					t.Fatalf("Calculate() error = %v, want AmountMismatchError", err)
				}
				if mismatch.Sum != tt.wantSum || mismatch.Total != tt.total {
					t.Errorf("mismatch carries sum=%v total=%v, want sum=%v total=%v",
						mismatch.Sum, mismatch.Total, tt.wantSum, tt.total)
				}
				if shares != nil {
					t.Error("failed validation must not return shares")
				}
				return
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Calculate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Calculate() unexpected error: %v", err)
			}
			if sum := sumShares(shares); math.Abs(sum-tt.total) > 0.01 {
				t.Errorf("shares sum to %v, want ~%v", sum, tt.total)
			}
		})
	}
}

func TestPercentageStrategy(t *testing.T) {
	tests := []struct {
		name         string
		total        float64
		participants []Participant
		wantMismatch bool
		wantErr      error
		wantAmounts  []float64
	}{
		{
			name:  "even percentages",
			total: 200.0,
			participants: []Participant{
				{ParticipantID: 1, Percentage: f(50)},
				{ParticipantID: 2, Percentage: f(25)},
				{ParticipantID: 3, Percentage: f(25)},
			},
			wantAmounts: []float64{100.0, 50.0, 50.0},
		},
		{
			name:  "rounding drift folded into first participant",
			total: 100.0,
			participants: []Participant{
				{ParticipantID: 1, Percentage: f(33.33)},
				{ParticipantID: 2, Percentage: f(33.33)},
				{ParticipantID: 3, Percentage: f(33.34)},
			},
			// 33.33 + 33.33 + 33.34 = 100.00, no drift
			wantAmounts: []float64{33.33, 33.33, 33.34},
		},
		{
			name:  "thirds drift",
			total: 100.0,
			participants: []Participant{
				{ParticipantID: 1, Percentage: f(33.333)},
				{ParticipantID: 2, Percentage: f(33.333)},
				{ParticipantID: 3, Percentage: f(33.334)},
			},
			// each rounds to 33.33, drift of 0.01 lands on the first
			wantAmounts: []float64{33.34, 33.33, 33.33},
		},
		{
			name:  "zero percent participant never absorbs drift",
			total: 0.05,
			participants: []Participant{
				{ParticipantID: 1, Percentage: f(0)},
				{ParticipantID: 2, Percentage: f(50)},
				{ParticipantID: 3, Percentage: f(50)},
			},
			// 0.025 rounds up twice, the extra cent comes out of the
			// first share large enough to give one up
			wantAmounts: []float64{0.00, 0.02, 0.03},
		},
		{
			name:  "percentages do not reach 100",
			total: 100.0,
			participants: []Participant{
				{ParticipantID: 1, Percentage: f(50)},
				{ParticipantID: 2, Percentage: f(40)},
			},
			wantMismatch: true,
		},
		{
			name:  "percentage above 100",
			total: 100.0,
			participants: []Participant{
				{ParticipantID: 1, Percentage: f(120)},
			},
			wantErr: ErrPercentageOutOfRange,
		},
		{
			name:  "missing percentage",
			total: 100.0,
			participants: []Participant{
				{ParticipantID: 1, Percentage: f(100)},
				{ParticipantID: 2},
			},
			wantErr: ErrMissingPercentage,
		},
	}

	strategy := &PercentageStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := strategy.Calculate(tt.total, 1, tt.participants)
			if tt.wantMismatch {
				var mismatch *PercentageMismatchError
				if !errors.As(err, &mismatch) {
					t.Fatalf("Calculate() error = %v, want PercentageMismatchError", err)
				}
				return
			}
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Calculate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Calculate() unexpected error: %v", err)
			}
			for i, want := range tt.wantAmounts {
				if shares[i].Amount != want {
					t.Errorf("share[%d] = %v, want %v", i, shares[i].Amount, want)
				}
				if shares[i].Amount < 0 {
					t.Errorf("share[%d] = %v, owed amounts must not be negative", i, shares[i].Amount)
				}
			}
			if sum := sumShares(shares); math.Abs(sum-tt.total) > 0.001 {
				t.Errorf("shares sum to %v, want exactly %v", sum, tt.total)
			}
		})
	}
}

func TestPaidFlag(t *testing.T) {
	strategy := &EqualStrategy{}
	participants := []Participant{{ParticipantID: 1}, {ParticipantID: 2}, {ParticipantID: 3}}

	t.Run("payer among participants", func(t *testing.T) {
		shares, err := strategy.Calculate(60.0, 2, participants)
		if err != nil {
			t.Fatalf("Calculate() error: %v", err)
		}
		if paidCount(shares) != 1 {
			t.Fatalf("want exactly one paid share, got %d", paidCount(shares))
		}
		for _, s := range shares {
			if s.Paid != (s.ParticipantID == 2) {
				t.Errorf("share %d paid = %v", s.ParticipantID, s.Paid)
			}
		}
	})

	t.Run("payer outside participants", func(t *testing.T) {
		shares, err := strategy.Calculate(60.0, 99, participants)
		if err != nil {
			t.Fatalf("Calculate() error: %v", err)
		}
		if paidCount(shares) != 0 {
			t.Errorf("payer who doesn't co-owe must produce no paid share, got %d", paidCount(shares))
		}
	})
}

func TestFactory(t *testing.T) {
	factory := NewFactory()

	for _, splitType := range []SplitType{SplitTypeEqual, SplitTypeCustom, SplitTypePercentage} {
		strategy, err := factory.Create(splitType)
		if err != nil {
			t.Fatalf("Create(%s) error: %v", splitType, err)
		}
		if strategy.Type() != splitType {
			t.Errorf("Create(%s).Type() = %s", splitType, strategy.Type())
		}
	}

	if _, err := factory.CreateFromString("RANDOM"); err == nil {
		t.Error("unknown split type should error")
	}
}
