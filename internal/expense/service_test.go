package expense

import (
	"errors"
	"testing"

	"github.com/voyago/tripsplit/internal/participant"
)

func TestCheckRoster(t *testing.T) {
	roster := []*participant.Participant{
		{ID: 1, Name: "Ada"},
		{ID: 2, Name: "Grace"},
		{ID: 3, Name: "Edsger"},
	}

	tests := []struct {
		name         string
		paidBy       int64
		participants []*SplitParticipant
		wantErr      bool
	}{
		{
			name:         "all known",
			paidBy:       1,
			participants: []*SplitParticipant{{ParticipantID: 2}, {ParticipantID: 3}},
		},
		{
			name:         "payer not among split participants",
			paidBy:       1,
			participants: []*SplitParticipant{{ParticipantID: 2}},
		},
		{
			name:         "unknown payer",
			paidBy:       99,
			participants: []*SplitParticipant{{ParticipantID: 1}},
			wantErr:      true,
		},
		{
			name:         "unknown split participant",
			paidBy:       1,
			participants: []*SplitParticipant{{ParticipantID: 2}, {ParticipantID: 99}},
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkRoster(roster, tt.paidBy, tt.participants)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownParticipant) {
					t.Errorf("got %v, want ErrUnknownParticipant", err)
				}
				return
			}
			if err != nil {
				t.Errorf("got %v, want nil", err)
			}
		})
	}
}
