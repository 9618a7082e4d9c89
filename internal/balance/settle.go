package balance

import "splitledger/pkg/money"

// Settle turns net positions into the minimal set of transfers that drives
// every balance to exactly zero.
//
// Members are partitioned into debtors (negative balance) and creditors
// (positive balance), preserving their order of appearance. Two cursors walk
// the partitions: each step transfers min(debtor remaining, creditor
// remaining) and advances whichever side reached zero. Because the positions
// sum to zero, both partitions exhaust together, after at most
// (nonzero members - 1) transfers.
//
// The pairing favors transfer-count minimization over payment-history
// fidelity: a debt may be routed to a creditor the debtor never shared an
// expense with.
func Settle(positions []NetPosition) []Transfer {
	type party struct {
		userID    int64
		username  string
		remaining money.Money // always positive
	}

	var debtors, creditors []party
	for _, p := range positions {
		switch {
		case p.Balance.IsNegative():
			debtors = append(debtors, party{p.UserID, p.Username, p.Balance.Abs()})
		case !p.Balance.IsZero():
			creditors = append(creditors, party{p.UserID, p.Username, p.Balance})
		}
	}

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := debtors[i].remaining
		if creditors[j].remaining < amount {
			amount = creditors[j].remaining
		}

		if !amount.IsZero() {
			transfers = append(transfers, Transfer{
				FromUserID:   debtors[i].userID,
				FromUsername: debtors[i].username,
				ToUserID:     creditors[j].userID,
				ToUsername:   creditors[j].username,
				Amount:       amount,
			})
		}

		debtors[i].remaining = debtors[i].remaining.Sub(amount)
		creditors[j].remaining = creditors[j].remaining.Sub(amount)

		if debtors[i].remaining.IsZero() {
			i++
		}
		if creditors[j].remaining.IsZero() {
			j++
		}
	}

	return transfers
}
