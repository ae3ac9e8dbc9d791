package settlement

import (
	"errors"
	"sort"

	"github.com/voyago/tripsplit/internal/money"
)

// ErrUnbalancedLedger means the net balances do not sum to zero. Balances
// are derived from a closed system (every cent owed is a cent paid), so a
// nonzero sum is an upstream bookkeeping defect, not a user error. The
// reducer refuses to emit transfers rather than guess.
var ErrUnbalancedLedger = errors.New("net balances do not sum to zero")

// NetBalance is one participant's net position fed into the reducer.
type NetBalance struct {
	ParticipantID int64   `json:"participant_id"`
	Net           float64 `json:"net"` // positive = is owed, negative = owes
}

// Transfer is a suggested payment that moves balances toward zero.
type Transfer struct {
	FromParticipantID int64   `json:"from_participant_id"`
	ToParticipantID   int64   `json:"to_participant_id"`
	Amount            float64 `json:"amount"`
}

type party struct {
	id        int64
	remaining float64
}

// ReduceDebts turns net balances into a small set of settling transfers.
//
// Participants within epsilon of zero are already settled and excluded.
// Creditors are sorted by balance descending, debtors by owed amount
// descending (participant id breaks ties, so equal balances still reduce
// deterministically). The head creditor and head debtor are then matched
// repeatedly: the transfer is the smaller of the two remaining amounts, and
// whichever party reaches zero is dropped. Every transfer retires at least
// one party and the last retires two, so at most
// len(creditors)+len(debtors)-1 transfers are produced.
//
// Applying the returned transfers to the input balances brings every
// participant within epsilon of zero.
func ReduceDebts(balances []NetBalance) ([]Transfer, error) {
	var sum float64
	for _, b := range balances {
		sum += b.Net
	}
	if !money.ApproxEqual(sum, 0) {
		return nil, ErrUnbalancedLedger
	}

	var creditors, debtors []party
	for _, b := range balances {
		switch {
		case b.Net > money.Epsilon:
			creditors = append(creditors, party{id: b.ParticipantID, remaining: b.Net})
		case b.Net < -money.Epsilon:
			debtors = append(debtors, party{id: b.ParticipantID, remaining: -b.Net})
		}
	}

	sort.Slice(creditors, func(i, j int) bool {
		if creditors[i].remaining != creditors[j].remaining {
			return creditors[i].remaining > creditors[j].remaining
		}
		return creditors[i].id < creditors[j].id
	})
	sort.Slice(debtors, func(i, j int) bool {
		if debtors[i].remaining != debtors[j].remaining {
			return debtors[i].remaining > debtors[j].remaining
		}
		return debtors[i].id < debtors[j].id
	})

	var transfers []Transfer
	for len(creditors) > 0 && len(debtors) > 0 {
		creditor := &creditors[0]
		debtor := &debtors[0]

		amount := creditor.remaining
		if debtor.remaining < amount {
			amount = debtor.remaining
		}
		amount = money.Round2(amount)

		transfers = append(transfers, Transfer{
			FromParticipantID: debtor.id,
			ToParticipantID:   creditor.id,
			Amount:            amount,
		})

		creditor.remaining = money.Round2(creditor.remaining - amount)
		debtor.remaining = money.Round2(debtor.remaining - amount)

		if money.IsZero(creditor.remaining) {
			creditors = creditors[1:]
		}
		if money.IsZero(debtor.remaining) {
			debtors = debtors[1:]
		}
	}

	return transfers, nil
}
