package calculator

import (
	"sort"

	"github.com/shopspring/decimal"
)

// MemberBalance represents the balance information for one person.
type MemberBalance struct {
	PersonID   string
	NetBalance decimal.Decimal // Positive = owed money, Negative = owes money
	TotalPaid  decimal.Decimal // Fronted on bills plus settlements paid out
	TotalOwed  decimal.Decimal // Consumed on bills plus settlements received
}

// Transfer represents a payment that would clear debts between two people.
type Transfer struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount decimal.Decimal
}

// Settlement represents money already handed from a debtor to a creditor.
type Settlement struct {
	FromPersonID string
	ToPersonID   string
	Amount       decimal.Decimal
}

// CalculateBalances aggregates bill splits and settlements into per-person
// balances and a simplified list of transfers.
//
// Algorithm:
// - For each split: a person paid what they fronted and owes their share
// - For each settlement: the debtor's paid total grows, the creditor's owed total grows
// - net_balance = total_paid - total_owed
// - Transfers: greedy matching of the largest debtor with the largest creditor
func CalculateBalances(splits []*BillSplit, settlements []Settlement) ([]MemberBalance, []Transfer) {
	balances := make(map[string]*MemberBalance)
	get := func(id string) *MemberBalance {
		b, ok := balances[id]
		if !ok {
			b = &MemberBalance{PersonID: id}
			balances[id] = b
		}
		return b
	}

	for _, split := range splits {
		for _, p := range split.People {
			b := get(p.PersonID)
			b.TotalPaid = b.TotalPaid.Add(p.Paid)
			b.TotalOwed = b.TotalOwed.Add(p.Share)
		}
	}

	for _, s := range settlements {
		from := get(s.FromPersonID)
		from.TotalPaid = from.TotalPaid.Add(s.Amount)
		to := get(s.ToPersonID)
		to.TotalOwed = to.TotalOwed.Add(s.Amount)
	}

	memberBalances := make([]MemberBalance, 0, len(balances))
	for _, b := range balances {
		b.NetBalance = b.TotalPaid.Sub(b.TotalOwed)
		memberBalances = append(memberBalances, *b)
	}
	sort.Slice(memberBalances, func(i, j int) bool {
		return memberBalances[i].PersonID < memberBalances[j].PersonID
	})

	return memberBalances, simplifyDebts(memberBalances)
}

// simplifyDebts matches debtors with creditors to minimize transactions.
func simplifyDebts(memberBalances []MemberBalance) []Transfer {
	type entry struct {
		id     string
		amount decimal.Decimal
	}

	var creditors, debtors []entry
	for _, b := range memberBalances {
		switch {
		case b.NetBalance.IsPositive():
			creditors = append(creditors, entry{b.PersonID, b.NetBalance})
		case b.NetBalance.IsNegative():
			debtors = append(debtors, entry{b.PersonID, b.NetBalance.Neg()})
		}
	}

	byAmount := func(list []entry) func(i, j int) bool {
		return func(i, j int) bool {
			if c := list[i].amount.Cmp(list[j].amount); c != 0 {
				return c > 0
			}
			return list[i].id < list[j].id
		}
	}
	sort.Slice(creditors, byAmount(creditors))
	sort.Slice(debtors, byAmount(debtors))

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := decimal.Min(debtors[i].amount, creditors[j].amount)
		if amount.IsPositive() {
			transfers = append(transfers, Transfer{
				From:   debtors[i].id,
				To:     creditors[j].id,
				Amount: amount,
			})
		}

		debtors[i].amount = debtors[i].amount.Sub(amount)
		creditors[j].amount = creditors[j].amount.Sub(amount)

		if !debtors[i].amount.IsPositive() {
			i++
		}
		if !creditors[j].amount.IsPositive() {
			j++
		}
	}

	return transfers
}

// Settlements spreads amount, paid back by personID, over the people that
// person owes on the split, in proportion to each debt. On an itemized bill
// the creditors are the payers of the items where the person's balance is
// negative; otherwise the bill payer is the only creditor.
func (s *BillSplit) Settlements(personID string, amount decimal.Decimal) ([]Settlement, error) {
	person := s.Person(personID)
	if person == nil || !amount.IsPositive() {
		return nil, nil
	}

	var creditors []Participant
	index := make(map[string]int)
	owe := func(creditorID string, debt decimal.Decimal) {
		if creditorID == personID || !debt.IsPositive() {
			return
		}
		i, ok := index[creditorID]
		if !ok {
			i = len(creditors)
			index[creditorID] = i
			creditors = append(creditors, Participant{PersonID: creditorID, Weight: decimal.Zero})
		}
		creditors[i].Weight = creditors[i].Weight.Add(debt)
	}

	if len(person.Items) == 0 {
		owe(s.PayerID, person.Balance.Neg())
	}
	for _, item := range person.Items {
		owe(item.PayerID, item.Balance.Neg())
	}

	switch len(creditors) {
	case 0:
		return nil, nil
	case 1:
		return []Settlement{{FromPersonID: personID, ToPersonID: creditors[0].PersonID, Amount: amount}}, nil
	}

	// Allocate needs its payer among the participants; only the shares are used here.
	res, err := Allocate(amount, creditors[0].PersonID, creditors)
	if err != nil {
		return nil, err
	}
	settlements := make([]Settlement, 0, len(res.Allocations))
	for _, a := range res.Allocations {
		if a.Share.IsPositive() {
			settlements = append(settlements, Settlement{FromPersonID: personID, ToPersonID: a.PersonID, Amount: a.Share})
		}
	}
	return settlements, nil
}
