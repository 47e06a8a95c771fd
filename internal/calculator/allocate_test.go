package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func equalWeights(ids ...string) []Participant {
	out := make([]Participant, len(ids))
	for i, id := range ids {
		out[i] = Participant{PersonID: id, Weight: decimal.NewFromInt(1)}
	}
	return out
}

func sumBalances(r *AllocationResult) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range r.Allocations {
		sum = sum.Add(a.Balance)
	}
	return sum
}

func sumShares(r *AllocationResult) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range r.Allocations {
		sum = sum.Add(a.Share)
	}
	return sum
}

func TestAllocate_SingleParticipant(t *testing.T) {
	res, err := Allocate(d("42.17"), "a", equalWeights("a"))
	require.NoError(t, err)
	require.Len(t, res.Allocations, 1)

	assert.True(t, res.Allocations[0].Share.Equal(d("42.17")))
	assert.True(t, res.Allocations[0].Balance.IsZero(), "balance = %s", res.Allocations[0].Balance)
}

func TestAllocate_TwoEqual(t *testing.T) {
	res, err := Allocate(d("10.00"), "a", equalWeights("a", "b"))
	require.NoError(t, err)

	balances := res.Balances()
	assert.True(t, balances["a"].Equal(d("5.00")), "a = %s", balances["a"])
	assert.True(t, balances["b"].Equal(d("-5.00")), "b = %s", balances["b"])
}

func TestAllocate_ThreeEqualRemainderGoesToLowestID(t *testing.T) {
	res, err := Allocate(d("10.00"), "a", equalWeights("c", "a", "b"))
	require.NoError(t, err)

	shares := res.Shares()
	assert.True(t, shares["a"].Equal(d("3.34")), "a = %s", shares["a"])
	assert.True(t, shares["b"].Equal(d("3.33")), "b = %s", shares["b"])
	assert.True(t, shares["c"].Equal(d("3.33")), "c = %s", shares["c"])
	assert.True(t, sumShares(res).Equal(d("10.00")))

	// Input order is preserved.
	assert.Equal(t, "c", res.Allocations[0].PersonID)
	assert.Equal(t, "a", res.Allocations[1].PersonID)

	balances := res.Balances()
	assert.True(t, balances["a"].Equal(d("6.66")), "a = %s", balances["a"])
	assert.True(t, sumBalances(res).IsZero())
}

func TestAllocate_OverRoundedRemovesFromSmallestResidue(t *testing.T) {
	// 0.05 split 1:1:1 -> raw 1.666.. cents each, all round up to 2 (6 > 5),
	// so one cent must come back out. Every residue ties, lowest id loses it.
	res, err := Allocate(d("0.05"), "x", equalWeights("z", "y", "x"))
	require.NoError(t, err)

	shares := res.Shares()
	assert.True(t, shares["x"].Equal(d("0.01")), "x = %s", shares["x"])
	assert.True(t, shares["y"].Equal(d("0.02")), "y = %s", shares["y"])
	assert.True(t, shares["z"].Equal(d("0.02")), "z = %s", shares["z"])
	assert.True(t, sumShares(res).Equal(d("0.05")))
}

func TestAllocate_WeightedLargestResidueWins(t *testing.T) {
	// 1.00 with weights 1, 2, 4 -> raw cents 14.285, 28.571, 57.142
	// rounded 14, 29, 57 = 100, no remainder.
	participants := []Participant{
		{PersonID: "a", Weight: d("1")},
		{PersonID: "b", Weight: d("2")},
		{PersonID: "c", Weight: d("4")},
	}
	res, err := Allocate(d("1.00"), "c", participants)
	require.NoError(t, err)

	shares := res.Shares()
	assert.True(t, shares["a"].Equal(d("0.14")), "a = %s", shares["a"])
	assert.True(t, shares["b"].Equal(d("0.29")), "b = %s", shares["b"])
	assert.True(t, shares["c"].Equal(d("0.57")), "c = %s", shares["c"])

	// 0.10 with weights 1, 1.5 -> raw 4, 6 exactly.
	res, err = Allocate(d("0.10"), "a", []Participant{
		{PersonID: "a", Weight: d("1")},
		{PersonID: "b", Weight: d("1.5")},
	})
	require.NoError(t, err)
	assert.True(t, res.Shares()["a"].Equal(d("0.04")))
	assert.True(t, res.Shares()["b"].Equal(d("0.06")))
}

func TestAllocate_FractionalResidueOrdering(t *testing.T) {
	// 0.10 with weights 3, 3, 1 -> raw 4.2857, 4.2857, 1.4285 cents
	// rounded 4, 4, 1 = 9, one cent missing. c has the largest residue
	// (0.4285 vs 0.2857) and gets it even though a sorts first.
	participants := []Participant{
		{PersonID: "a", Weight: d("3")},
		{PersonID: "b", Weight: d("3")},
		{PersonID: "c", Weight: d("1")},
	}
	res, err := Allocate(d("0.10"), "a", participants)
	require.NoError(t, err)

	shares := res.Shares()
	assert.True(t, shares["a"].Equal(d("0.04")), "a = %s", shares["a"])
	assert.True(t, shares["b"].Equal(d("0.04")), "b = %s", shares["b"])
	assert.True(t, shares["c"].Equal(d("0.02")), "c = %s", shares["c"])
}

func TestAllocate_ZeroAmount(t *testing.T) {
	res, err := Allocate(decimal.Zero, "a", equalWeights("a", "b"))
	require.NoError(t, err)
	for _, a := range res.Allocations {
		assert.True(t, a.Share.IsZero())
		assert.True(t, a.Balance.IsZero())
	}
}

func TestAllocate_AmountRoundedToCents(t *testing.T) {
	res, err := Allocate(d("10.005"), "a", equalWeights("a", "b"))
	require.NoError(t, err)
	assert.True(t, res.Amount.Equal(d("10.01")), "amount = %s", res.Amount)
	assert.True(t, sumShares(res).Equal(d("10.01")))
}

func TestAllocate_Errors(t *testing.T) {
	tests := []struct {
		name         string
		amount       decimal.Decimal
		payer        string
		participants []Participant
		wantErr      error
	}{
		{
			name:         "negative amount",
			amount:       d("-1"),
			payer:        "a",
			participants: equalWeights("a"),
			wantErr:      ErrInvalidAmount,
		},
		{
			name:         "no participants",
			amount:       d("1"),
			payer:        "a",
			participants: nil,
			wantErr:      ErrNoParticipants,
		},
		{
			name:    "zero weight",
			amount:  d("1"),
			payer:   "a",
			wantErr: ErrInvalidWeight,
			participants: []Participant{
				{PersonID: "a", Weight: d("1")},
				{PersonID: "b", Weight: decimal.Zero},
			},
		},
		{
			name:    "negative weight",
			amount:  d("1"),
			payer:   "a",
			wantErr: ErrInvalidWeight,
			participants: []Participant{
				{PersonID: "a", Weight: d("-0.5")},
			},
		},
		{
			name:         "duplicate participant",
			amount:       d("1"),
			payer:        "a",
			participants: equalWeights("a", "b", "a"),
			wantErr:      ErrDuplicateParticipant,
		},
		{
			name:         "payer outside participants",
			amount:       d("1"),
			payer:        "z",
			participants: equalWeights("a", "b"),
			wantErr:      ErrPayerNotParticipant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Allocate(tt.amount, tt.payer, tt.participants)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, res)
		})
	}
}

func TestAllocate_SumsAndBalances(t *testing.T) {
	amounts := []string{"0.01", "0.99", "1.00", "10.00", "33.33", "99.99", "1234.56", "100000.07"}
	weightSets := [][]string{
		{"1"},
		{"1", "1"},
		{"1", "1", "1"},
		{"1", "2", "3"},
		{"0.5", "1.5", "2.25", "0.1"},
		{"7", "7", "7", "7", "7", "7", "7"},
		{"1.333", "2.666", "0.001"},
	}
	ids := []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7"}

	for _, amountStr := range amounts {
		for _, weights := range weightSets {
			amount := d(amountStr)
			participants := make([]Participant, len(weights))
			for i, w := range weights {
				participants[i] = Participant{PersonID: ids[i], Weight: d(w)}
			}
			payer := ids[len(weights)-1]

			res, err := Allocate(amount, payer, participants)
			require.NoError(t, err)

			assert.True(t, sumShares(res).Equal(amount), "amount %s weights %v: shares sum %s", amount, weights, sumShares(res))
			assert.True(t, sumBalances(res).IsZero(), "amount %s weights %v: balances sum %s", amount, weights, sumBalances(res))

			// Reconstruct the amount from the balances: what the others owe plus
			// the payer's own share.
			reconstructed := decimal.Zero
			for _, a := range res.Allocations {
				if a.PersonID == payer {
					reconstructed = reconstructed.Add(amount.Sub(a.Balance))
				} else {
					reconstructed = reconstructed.Add(a.Balance.Abs())
				}
			}
			assert.True(t, reconstructed.Equal(amount), "reconstructed %s != %s", reconstructed, amount)

			for _, a := range res.Allocations {
				assert.True(t, a.Share.Equal(a.Share.Round(CurrencyPlaces)), "share %s not at currency precision", a.Share)
				assert.False(t, a.Share.IsNegative())
			}
		}
	}
}
