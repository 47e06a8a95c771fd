package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSplitBill(t *testing.T) {
	tests := []struct {
		name         string
		bill         Bill
		wantErr      error
		validateFunc func(t *testing.T, split *BillSplit)
	}{
		{
			name: "no items - bill total split among everyone",
			bill: Bill{
				TotalAmount:  d("100.00"),
				PayerID:      "alice",
				Participants: equalWeights("alice", "bob", "carol"),
			},
			validateFunc: func(t *testing.T, split *BillSplit) {
				if !split.TotalAmount.Equal(d("100")) {
					t.Errorf("total = %s, want 100", split.TotalAmount)
				}
				alice := split.Person("alice")
				if !alice.Share.Equal(d("33.34")) {
					t.Errorf("alice share = %s, want 33.34", alice.Share)
				}
				if !alice.Paid.Equal(d("100")) {
					t.Errorf("alice paid = %s, want 100", alice.Paid)
				}
				if !alice.Balance.Equal(d("66.66")) {
					t.Errorf("alice balance = %s, want 66.66", alice.Balance)
				}
				for _, id := range []string{"bob", "carol"} {
					p := split.Person(id)
					if !p.Balance.Equal(d("-33.33")) {
						t.Errorf("%s balance = %s, want -33.33", id, p.Balance)
					}
				}
			},
		},
		{
			name: "items with different payers net out per person",
			bill: Bill{
				PayerID:      "alice",
				Participants: equalWeights("alice", "bob"),
				Items: []Item{
					{ID: "i1", Title: "Pizza", Amount: d("20"), ParticipantIDs: []string{"alice", "bob"}},
					{ID: "i2", Title: "Taxi", Amount: d("12"), PayerID: "bob", ParticipantIDs: []string{"alice", "bob"}},
				},
			},
			validateFunc: func(t *testing.T, split *BillSplit) {
				// Pizza: alice +10, bob -10. Taxi: bob +6, alice -6.
				if !split.TotalAmount.Equal(d("32")) {
					t.Errorf("total = %s, want 32", split.TotalAmount)
				}
				alice := split.Person("alice")
				if !alice.Balance.Equal(d("4")) {
					t.Errorf("alice balance = %s, want 4", alice.Balance)
				}
				if !alice.Share.Equal(d("16")) {
					t.Errorf("alice share = %s, want 16", alice.Share)
				}
				if len(alice.Items) != 2 {
					t.Fatalf("alice items = %d, want 2", len(alice.Items))
				}
				if alice.Items[0].Title != "Pizza" || !alice.Items[0].Share.Equal(d("10")) {
					t.Errorf("alice first item = %+v", alice.Items[0])
				}
				bob := split.Person("bob")
				if !bob.Balance.Equal(d("-4")) {
					t.Errorf("bob balance = %s, want -4", bob.Balance)
				}
				if !bob.Paid.Equal(d("12")) {
					t.Errorf("bob paid = %s, want 12", bob.Paid)
				}
			},
		},
		{
			name: "item weights come from the bill",
			bill: Bill{
				PayerID: "alice",
				Participants: []Participant{
					{PersonID: "alice", Weight: d("1")},
					{PersonID: "bob", Weight: d("2")},
					{PersonID: "carol", Weight: d("1")},
				},
				Items: []Item{
					{Title: "Wine", Amount: d("30"), ParticipantIDs: []string{"alice", "bob"}},
				},
			},
			validateFunc: func(t *testing.T, split *BillSplit) {
				if !split.Person("bob").Share.Equal(d("20")) {
					t.Errorf("bob share = %s, want 20", split.Person("bob").Share)
				}
				carol := split.Person("carol")
				if !carol.Share.IsZero() || !carol.Balance.IsZero() || len(carol.Items) != 0 {
					t.Errorf("carol should be untouched, got %+v", carol)
				}
			},
		},
		{
			name: "item without participants is shared by all",
			bill: Bill{
				PayerID:      "bob",
				Participants: equalWeights("alice", "bob"),
				Items:        []Item{{Title: "Snacks", Amount: d("9")}},
			},
			validateFunc: func(t *testing.T, split *BillSplit) {
				if !split.Person("alice").Balance.Equal(d("-4.5")) {
					t.Errorf("alice balance = %s, want -4.5", split.Person("alice").Balance)
				}
			},
		},
		{
			name: "item participant outside the bill",
			bill: Bill{
				PayerID:      "alice",
				Participants: equalWeights("alice"),
				Items:        []Item{{Title: "X", Amount: d("1"), ParticipantIDs: []string{"alice", "mallory"}}},
			},
			wantErr: ErrUnknownParticipant,
		},
		{
			name: "item payer outside item participants",
			bill: Bill{
				PayerID:      "alice",
				Participants: equalWeights("alice", "bob"),
				Items:        []Item{{Title: "X", Amount: d("1"), ParticipantIDs: []string{"bob"}}},
			},
			wantErr: ErrPayerNotParticipant,
		},
		{
			name: "bill payer outside participants",
			bill: Bill{
				PayerID:      "zed",
				Participants: equalWeights("alice", "bob"),
				Items:        []Item{{Title: "X", Amount: d("1"), PayerID: "alice"}},
			},
			wantErr: ErrPayerNotParticipant,
		},
		{
			name: "no payer anywhere",
			bill: Bill{
				TotalAmount:  d("5"),
				Participants: equalWeights("alice", "bob"),
			},
			wantErr: ErrMissingPayer,
		},
		{
			name: "negative item amount",
			bill: Bill{
				PayerID:      "alice",
				Participants: equalWeights("alice"),
				Items:        []Item{{Title: "Refund", Amount: d("-3")}},
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "no participants",
			bill:    Bill{TotalAmount: d("5"), PayerID: "alice"},
			wantErr: ErrNoParticipants,
		},
		{
			name: "duplicate bill participant",
			bill: Bill{
				TotalAmount:  d("5"),
				PayerID:      "alice",
				Participants: equalWeights("alice", "alice"),
			},
			wantErr: ErrDuplicateParticipant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split, err := SplitBill(tt.bill)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("SplitBill() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitBill() unexpected error: %v", err)
			}

			sum := decimal.Zero
			for _, p := range split.People {
				sum = sum.Add(p.Balance)
			}
			if !sum.IsZero() {
				t.Errorf("balances sum to %s, want 0", sum)
			}

			if tt.validateFunc != nil {
				tt.validateFunc(t, split)
			}
		})
	}
}
