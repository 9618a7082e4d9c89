// Package split computes per-participant shares for an expense. The split is
// exact: shares always sum to the total, with indivisible remainder cents
// assigned to the earliest participants in the given order.
package split

import (
	"errors"

	"splitledger/pkg/money"
)

var (
	ErrNoParticipants = errors.New("at least one participant is required")
	ErrNegativeAmount = errors.New("amount cannot be negative")
)

// Even divides total equally among the participants. Each participant gets
// floor(total/n) minor units; the first (total mod n) participants in input
// order receive one extra unit. The result is deterministic for a given
// input order, shares differ by at most one minor unit, and they sum to
// total exactly.
//
// Participant ids must already be distinct; duplicate detection is the
// caller's responsibility.
func Even(total money.Money, participantIDs []int64) ([]money.Money, error) {
	n := int64(len(participantIDs))
	if n == 0 {
		return nil, ErrNoParticipants
	}
	if total.IsNegative() {
		return nil, ErrNegativeAmount
	}

	units := total.MinorUnits()
	base := units / n
	remainder := units % n

	shares := make([]money.Money, n)
	for i := range shares {
		share := base
		if int64(i) < remainder {
			share++
		}
		shares[i] = money.FromMinorUnits(share)
	}

	return shares, nil
}
