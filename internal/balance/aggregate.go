// Package balance derives net positions from a group's expenses and
// simplifies them into a minimal set of settlement transfers. Both
// computations are pure functions over minor-unit integers; the service
// wraps them with storage reads.
package balance

import (
	"splitledger/internal/expense"
	"splitledger/pkg/money"
)

// Aggregate computes net positions over the union of the given member ids
// and every payer or participant appearing in the expenses. A balance is the
// sum of expense totals paid minus the sum of shares owed. Members with no
// activity get a zero position; users with split rows who have since left
// the member list keep theirs, appended after the members in order of first
// appearance, so the ledger never forgets a debt.
//
// Because every split share is drawn from exactly one expense total, which is
// credited to exactly one payer, the returned balances sum to zero.
func Aggregate(memberIDs []int64, expenses []*expense.ExpenseWithSplits) []NetPosition {
	balances := make(map[int64]money.Money, len(memberIDs))
	seen := make(map[int64]bool, len(memberIDs))
	for _, id := range memberIDs {
		seen[id] = true
	}

	var departed []int64
	note := func(id int64) {
		if !seen[id] {
			seen[id] = true
			departed = append(departed, id)
		}
	}

	for _, e := range expenses {
		note(e.Expense.PayerID)
		balances[e.Expense.PayerID] = balances[e.Expense.PayerID].Add(e.Expense.Amount)
		for _, s := range e.Splits {
			note(s.ParticipantID)
			balances[s.ParticipantID] = balances[s.ParticipantID].Sub(s.Share)
		}
	}

	positions := make([]NetPosition, 0, len(memberIDs)+len(departed))
	for _, id := range memberIDs {
		positions = append(positions, NetPosition{UserID: id, Balance: balances[id]})
	}
	for _, id := range departed {
		positions = append(positions, NetPosition{UserID: id, Balance: balances[id]})
	}
	return positions
}
