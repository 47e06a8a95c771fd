package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownParticipant = errors.New("item participant is not a bill participant")
	ErrMissingPayer       = errors.New("payer required")
)

// Item represents a single line item on the bill.
// An item with no participants is shared by every bill participant.
// An item with no payer is paid by the bill payer.
type Item struct {
	ID             string
	Title          string
	Amount         decimal.Decimal
	PayerID        string
	ParticipantIDs []string
}

// Bill is the minimal view of a bill needed to compute its split.
type Bill struct {
	// TotalAmount is only used when the bill has no items.
	TotalAmount  decimal.Decimal
	PayerID      string
	Participants []Participant
	Items        []Item
}

// PersonItem represents an item's share for one person.
type PersonItem struct {
	ItemID  string
	Title   string
	PayerID string // who fronted the item
	Share   decimal.Decimal
	Balance decimal.Decimal
}

// PersonSplit represents the calculated split for one person.
type PersonSplit struct {
	PersonID string
	Weight   decimal.Decimal
	Share    decimal.Decimal // what this person consumed
	Paid     decimal.Decimal // what this person fronted
	Balance  decimal.Decimal // Paid - Share
	Items    []PersonItem
}

// BillSplit is the per-person outcome of a bill, in bill participant order.
type BillSplit struct {
	TotalAmount decimal.Decimal
	PayerID     string
	People      []PersonSplit
}

// Person returns the split for personID, or nil.
func (s *BillSplit) Person(personID string) *PersonSplit {
	for i := range s.People {
		if s.People[i].PersonID == personID {
			return &s.People[i]
		}
	}
	return nil
}

// SplitBill computes how much each bill participant owes or is owed.
//
// Without items the bill total is allocated among all participants with the
// bill payer. With items, each item is allocated among its own participants,
// using their bill-level weights, with the item payer; the bill total is the
// sum of the item amounts.
func SplitBill(bill Bill) (*BillSplit, error) {
	if _, err := validateParticipants(bill.Participants); err != nil {
		return nil, err
	}

	split := &BillSplit{PayerID: bill.PayerID, People: make([]PersonSplit, len(bill.Participants))}
	index := make(map[string]int, len(bill.Participants))
	for i, p := range bill.Participants {
		index[p.PersonID] = i
		split.People[i] = PersonSplit{
			PersonID: p.PersonID,
			Weight:   p.Weight,
			Share:    decimal.Zero,
			Paid:     decimal.Zero,
			Balance:  decimal.Zero,
		}
	}

	if _, ok := index[bill.PayerID]; bill.PayerID != "" && !ok {
		return nil, fmt.Errorf("%w: %q", ErrPayerNotParticipant, bill.PayerID)
	}

	if len(bill.Items) == 0 {
		if bill.PayerID == "" {
			return nil, ErrMissingPayer
		}
		res, err := Allocate(bill.TotalAmount, bill.PayerID, bill.Participants)
		if err != nil {
			return nil, err
		}
		split.TotalAmount = res.Amount
		split.People[index[res.PayerID]].Paid = res.Amount
		for _, a := range res.Allocations {
			person := &split.People[index[a.PersonID]]
			person.Share = a.Share
			person.Balance = a.Balance
		}
		return split, nil
	}

	total := decimal.Zero
	for _, item := range bill.Items {
		payerID := item.PayerID
		if payerID == "" {
			payerID = bill.PayerID
		}
		if payerID == "" {
			return nil, fmt.Errorf("item %q: %w", item.Title, ErrMissingPayer)
		}

		participants, err := itemParticipants(item, bill.Participants, index)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", item.Title, err)
		}

		res, err := Allocate(item.Amount, payerID, participants)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", item.Title, err)
		}
		total = total.Add(res.Amount)

		payer := &split.People[index[payerID]]
		payer.Paid = payer.Paid.Add(res.Amount)
		for _, a := range res.Allocations {
			person := &split.People[index[a.PersonID]]
			person.Share = person.Share.Add(a.Share)
			person.Balance = person.Balance.Add(a.Balance)
			person.Items = append(person.Items, PersonItem{
				ItemID:  item.ID,
				Title:   item.Title,
				PayerID: payerID,
				Share:   a.Share,
				Balance: a.Balance,
			})
		}
	}
	split.TotalAmount = total

	return split, nil
}

// itemParticipants resolves an item's participant ids to weighted participants.
func itemParticipants(item Item, billParticipants []Participant, index map[string]int) ([]Participant, error) {
	if len(item.ParticipantIDs) == 0 {
		return billParticipants, nil
	}
	out := make([]Participant, 0, len(item.ParticipantIDs))
	for _, id := range item.ParticipantIDs {
		i, ok := index[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownParticipant, id)
		}
		out = append(out, billParticipants[i])
	}
	return out, nil
}
