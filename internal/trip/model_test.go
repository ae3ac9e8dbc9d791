package trip

import (
	"errors"
	"testing"
)

func TestDefaultCurrency(t *testing.T) {
	tests := []struct {
		name      string
		trip      *Trip
		requested string
		want      string
		wantErr   error
	}{
		{
			name:      "explicit currency wins",
			trip:      &Trip{Currency: "EUR"},
			requested: "JPY",
			want:      "JPY",
		},
		{
			name: "empty request falls back to the trip's currency",
			trip: &Trip{Currency: "EUR"},
			want: "EUR",
		},
		{
			name:      "explicit request needs no trip row",
			requested: "USD",
			want:      "USD",
		},
		{
			name:    "missing trip with no request",
			wantErr: ErrTripNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DefaultCurrency(tt.trip, tt.requested)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("DefaultCurrency() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DefaultCurrency() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DefaultCurrency() = %q, want %q", got, tt.want)
			}
		})
	}
}
