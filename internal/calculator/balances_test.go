package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSplit(t *testing.T, bill Bill) *BillSplit {
	t.Helper()
	split, err := SplitBill(bill)
	require.NoError(t, err)
	return split
}

func TestCalculateBalances_AcrossBills(t *testing.T) {
	dinner := mustSplit(t, Bill{
		TotalAmount:  d("90"),
		PayerID:      "alice",
		Participants: equalWeights("alice", "bob", "carol"),
	})
	taxi := mustSplit(t, Bill{
		TotalAmount:  d("30"),
		PayerID:      "bob",
		Participants: equalWeights("alice", "bob", "carol"),
	})

	balances, transfers := CalculateBalances([]*BillSplit{dinner, taxi}, nil)
	require.Len(t, balances, 3)

	// Sorted by person id.
	assert.Equal(t, "alice", balances[0].PersonID)
	assert.True(t, balances[0].NetBalance.Equal(d("50")), "alice = %s", balances[0].NetBalance)
	assert.True(t, balances[1].NetBalance.Equal(d("-10")), "bob = %s", balances[1].NetBalance)
	assert.True(t, balances[2].NetBalance.Equal(d("-40")), "carol = %s", balances[2].NetBalance)
	assert.True(t, balances[0].TotalPaid.Equal(d("90")))
	assert.True(t, balances[0].TotalOwed.Equal(d("40")))

	require.Len(t, transfers, 2)
	assert.Equal(t, Transfer{From: "carol", To: "alice", Amount: transfers[0].Amount}, transfers[0])
	assert.True(t, transfers[0].Amount.Equal(d("40")))
	assert.Equal(t, "bob", transfers[1].From)
	assert.True(t, transfers[1].Amount.Equal(d("10")))
}

func TestCalculateBalances_Settlements(t *testing.T) {
	lunch := mustSplit(t, Bill{
		TotalAmount:  d("20"),
		PayerID:      "alice",
		Participants: equalWeights("alice", "bob"),
	})

	balances, transfers := CalculateBalances(
		[]*BillSplit{lunch},
		[]Settlement{{FromPersonID: "bob", ToPersonID: "alice", Amount: d("10")}},
	)

	for _, b := range balances {
		assert.True(t, b.NetBalance.IsZero(), "%s = %s", b.PersonID, b.NetBalance)
	}
	assert.Empty(t, transfers)
}

func TestCalculateBalances_Empty(t *testing.T) {
	balances, transfers := CalculateBalances(nil, nil)
	assert.Empty(t, balances)
	assert.Empty(t, transfers)
}

func TestSettlements(t *testing.T) {
	itemized := mustSplit(t, Bill{
		PayerID:      "alice",
		Participants: equalWeights("alice", "bob", "carol", "dan"),
		Items: []Item{
			{ID: "x", Title: "X", Amount: d("10"), PayerID: "bob", ParticipantIDs: []string{"bob", "carol"}},
			{ID: "y", Title: "Y", Amount: d("6"), ParticipantIDs: []string{"alice", "carol"}},
			{ID: "z", Title: "Z", Amount: d("10"), ParticipantIDs: []string{"alice", "dan"}},
		},
	})
	plain := mustSplit(t, Bill{
		TotalAmount:  d("30"),
		PayerID:      "alice",
		Participants: equalWeights("alice", "bob", "carol"),
	})

	tests := []struct {
		name     string
		split    *BillSplit
		personID string
		amount   string
		want     []Settlement
	}{
		{
			name: "debts to two item payers", split: itemized, personID: "carol", amount: "8",
			want: []Settlement{
				{FromPersonID: "carol", ToPersonID: "bob", Amount: d("5")},
				{FromPersonID: "carol", ToPersonID: "alice", Amount: d("3")},
			},
		},
		{
			name: "debt to the bill payer through an item", split: itemized, personID: "dan", amount: "5",
			want: []Settlement{{FromPersonID: "dan", ToPersonID: "alice", Amount: d("5")}},
		},
		{
			name: "bill without items", split: plain, personID: "bob", amount: "10",
			want: []Settlement{{FromPersonID: "bob", ToPersonID: "alice", Amount: d("10")}},
		},
		{name: "creditor owes nobody", split: plain, personID: "alice", amount: "10"},
		{name: "nothing paid", split: plain, personID: "bob", amount: "0"},
		{name: "not on the bill", split: plain, personID: "mallory", amount: "10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.split.Settlements(tt.personID, d(tt.amount))
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for i, w := range tt.want {
				assert.Equal(t, w.FromPersonID, got[i].FromPersonID)
				assert.Equal(t, w.ToPersonID, got[i].ToPersonID)
				assert.True(t, w.Amount.Equal(got[i].Amount), "%s: %s", w.ToPersonID, got[i].Amount)
			}
		})
	}
}
