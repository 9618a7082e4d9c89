package split

import (
	"errors"
	"testing"

	"splitledger/pkg/money"
)

func TestEven(t *testing.T) {
	tests := []struct {
		name         string
		total        int64
		participants []int64
		want         []int64
		wantErr      error
	}{
		{
			name:         "divides evenly",
			total:        9000,
			participants: []int64{1, 2, 3},
			want:         []int64{3000, 3000, 3000},
		},
		{
			name:         "remainder goes to earliest participants",
			total:        100,
			participants: []int64{1, 2, 3},
			want:         []int64{34, 33, 33},
		},
		{
			name:         "two units of remainder",
			total:        101,
			participants: []int64{1, 2, 3},
			want:         []int64{34, 34, 33},
		},
		{
			name:         "single participant takes all",
			total:        777,
			participants: []int64{9},
			want:         []int64{777},
		},
		{
			name:         "zero total",
			total:        0,
			participants: []int64{1, 2},
			want:         []int64{0, 0},
		},
		{
			name:         "total smaller than group size",
			total:        2,
			participants: []int64{1, 2, 3},
			want:         []int64{1, 1, 0},
		},
		{
			name:         "no participants",
			total:        100,
			participants: nil,
			wantErr:      ErrNoParticipants,
		},
		{
			name:         "negative total",
			total:        -1,
			participants: []int64{1},
			wantErr:      ErrNegativeAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := Even(money.FromMinorUnits(tt.total), tt.participants)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Even() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Even() error = %v", err)
			}
			if len(shares) != len(tt.want) {
				t.Fatalf("Even() returned %d shares, want %d", len(shares), len(tt.want))
			}
			for i, want := range tt.want {
				if shares[i].MinorUnits() != want {
					t.Errorf("share[%d] = %d, want %d", i, shares[i].MinorUnits(), want)
				}
			}
		})
	}
}

// Shares must sum to the total exactly and differ by at most one minor unit,
// for any total and group size.
func TestEvenExactnessAndFairness(t *testing.T) {
	totals := []int64{0, 1, 2, 99, 100, 101, 333, 1000, 9999, 123457}

	for _, total := range totals {
		for n := 1; n <= 50; n++ {
			ids := make([]int64, n)
			for i := range ids {
				ids[i] = int64(i + 1)
			}

			shares, err := Even(money.FromMinorUnits(total), ids)
			if err != nil {
				t.Fatalf("Even(%d, n=%d) error = %v", total, n, err)
			}

			var sum, min, max int64
			min, max = shares[0].MinorUnits(), shares[0].MinorUnits()
			for _, s := range shares {
				u := s.MinorUnits()
				sum += u
				if u < min {
					min = u
				}
				if u > max {
					max = u
				}
				if u < 0 {
					t.Fatalf("Even(%d, n=%d) produced negative share %d", total, n, u)
				}
			}

			if sum != total {
				t.Errorf("Even(%d, n=%d) shares sum to %d", total, n, sum)
			}
			if max-min > 1 {
				t.Errorf("Even(%d, n=%d) share spread = %d, want <= 1", total, n, max-min)
			}
		}
	}
}

func TestEvenDeterminism(t *testing.T) {
	ids := []int64{7, 3, 11, 5}

	first, err := Even(money.FromMinorUnits(1003), ids)
	if err != nil {
		t.Fatalf("Even() error = %v", err)
	}
	second, err := Even(money.FromMinorUnits(1003), ids)
	if err != nil {
		t.Fatalf("Even() error = %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("share[%d] differs between identical calls: %d vs %d", i, first[i], second[i])
		}
	}
}
