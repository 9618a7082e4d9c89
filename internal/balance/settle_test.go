package balance

import (
	"testing"

	"splitledger/pkg/money"
)

func positionsFrom(balances map[int64]int64, order []int64) []NetPosition {
	positions := make([]NetPosition, len(order))
	for i, id := range order {
		positions[i] = NetPosition{UserID: id, Balance: money.FromMinorUnits(balances[id])}
	}
	return positions
}

// applyTransfers replays a settlement plan against the original balances and
// returns the resulting balances.
func applyTransfers(balances map[int64]int64, transfers []Transfer) map[int64]int64 {
	result := make(map[int64]int64, len(balances))
	for id, b := range balances {
		result[id] = b
	}
	for _, tr := range transfers {
		result[tr.FromUserID] += tr.Amount.MinorUnits()
		result[tr.ToUserID] -= tr.Amount.MinorUnits()
	}
	return result
}

func TestSettleOnePayerTwoDebtors(t *testing.T) {
	balances := map[int64]int64{1: 6000, 2: -3000, 3: -3000}
	transfers := Settle(positionsFrom(balances, []int64{1, 2, 3}))

	if len(transfers) != 2 {
		t.Fatalf("got %d transfers, want 2", len(transfers))
	}
	// Deterministic: debtors in order of appearance, both paying member 1.
	if transfers[0].FromUserID != 2 || transfers[0].ToUserID != 1 || transfers[0].Amount.MinorUnits() != 3000 {
		t.Errorf("transfers[0] = %+v, want 2->1 3000", transfers[0])
	}
	if transfers[1].FromUserID != 3 || transfers[1].ToUserID != 1 || transfers[1].Amount.MinorUnits() != 3000 {
		t.Errorf("transfers[1] = %+v, want 3->1 3000", transfers[1])
	}
}

func TestSettleSingleDebtorSingleCreditor(t *testing.T) {
	balances := map[int64]int64{1: 4200, 2: -4200}
	transfers := Settle(positionsFrom(balances, []int64{1, 2}))

	if len(transfers) != 1 {
		t.Fatalf("got %d transfers, want 1", len(transfers))
	}
	if transfers[0].FromUserID != 2 || transfers[0].ToUserID != 1 || transfers[0].Amount.MinorUnits() != 4200 {
		t.Errorf("transfer = %+v, want 2->1 4200", transfers[0])
	}
}

func TestSettleAllZero(t *testing.T) {
	balances := map[int64]int64{1: 0, 2: 0, 3: 0}
	if transfers := Settle(positionsFrom(balances, []int64{1, 2, 3})); len(transfers) != 0 {
		t.Errorf("got %d transfers for a settled group, want 0", len(transfers))
	}
}

func TestSettleSingleMember(t *testing.T) {
	if transfers := Settle(positionsFrom(map[int64]int64{1: 0}, []int64{1})); len(transfers) != 0 {
		t.Errorf("got %d transfers for a single member, want 0", len(transfers))
	}
}

func TestSettleCrossedDebts(t *testing.T) {
	// From the aggregate scenario: A:+3000, B:-1500, C:-1500.
	balances := map[int64]int64{1: 3000, 2: -1500, 3: -1500}
	transfers := Settle(positionsFrom(balances, []int64{1, 2, 3}))

	if len(transfers) > 2 {
		t.Fatalf("got %d transfers, want at most 2", len(transfers))
	}
	after := applyTransfers(balances, transfers)
	for id, b := range after {
		if b != 0 {
			t.Errorf("member %d left with balance %d after settlement", id, b)
		}
	}
}

func TestSettleProperties(t *testing.T) {
	tests := []struct {
		name     string
		balances map[int64]int64
		order    []int64
	}{
		{
			name:     "chain of debts",
			balances: map[int64]int64{1: 5000, 2: 2500, 3: -2500, 4: -5000},
			order:    []int64{1, 2, 3, 4},
		},
		{
			name:     "one big debtor",
			balances: map[int64]int64{1: 1, 2: 99, 3: 900, 4: -1000},
			order:    []int64{1, 2, 3, 4},
		},
		{
			name:     "odd cents",
			balances: map[int64]int64{1: 34, 2: -33, 3: -1, 4: 0},
			order:    []int64{1, 2, 3, 4},
		},
		{
			name:     "two creditors two debtors uneven",
			balances: map[int64]int64{1: 7000, 2: -1000, 3: 500, 4: -6500},
			order:    []int64{1, 2, 3, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transfers := Settle(positionsFrom(tt.balances, tt.order))

			// Every transfer carries a positive amount.
			for _, tr := range transfers {
				if tr.Amount.MinorUnits() <= 0 {
					t.Errorf("transfer %+v has non-positive amount", tr)
				}
			}

			// Applying the plan zeroes every balance.
			for id, b := range applyTransfers(tt.balances, transfers) {
				if b != 0 {
					t.Errorf("member %d left with balance %d", id, b)
				}
			}

			// Cardinality bound: at most (nonzero members - 1) transfers.
			nonzero := 0
			for _, b := range tt.balances {
				if b != 0 {
					nonzero++
				}
			}
			if nonzero > 0 && len(transfers) > nonzero-1 {
				t.Errorf("got %d transfers for %d unbalanced members, want <= %d",
					len(transfers), nonzero, nonzero-1)
			}
		})
	}
}

func TestSettleDeterminism(t *testing.T) {
	balances := map[int64]int64{1: 7000, 2: -1000, 3: 500, 4: -6500}
	order := []int64{1, 2, 3, 4}

	first := Settle(positionsFrom(balances, order))
	second := Settle(positionsFrom(balances, order))

	if len(first) != len(second) {
		t.Fatalf("plan lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("transfers[%d] differ between identical calls: %+v vs %+v", i, first[i], second[i])
		}
	}
}
