package service

import (
	"time"

	"github.com/mmynk/billsplitter/internal/calculator"
	"github.com/mmynk/billsplitter/internal/models"
	"github.com/mmynk/billsplitter/pkg/api"
)

func unixTime(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: unixTime(u.CreatedAt),
	}
}

func toAPIPerson(p *models.Person) *api.Person {
	return &api.Person{
		ID:        p.ID,
		Name:      p.Name,
		Phone:     p.Phone,
		Email:     p.Email,
		Note:      p.Note,
		CreatedAt: unixTime(p.CreatedAt),
		UpdatedAt: unixTime(p.UpdatedAt),
	}
}

// toCalculatorBill strips a stored bill down to what the calculator needs.
func toCalculatorBill(b *models.Bill) calculator.Bill {
	participants := make([]calculator.Participant, len(b.Participants))
	for i, p := range b.Participants {
		participants[i] = calculator.Participant{PersonID: p.PersonID, Weight: p.ShareWeight}
	}
	items := make([]calculator.Item, len(b.Items))
	for i, item := range b.Items {
		items[i] = calculator.Item{
			ID:             item.ID,
			Title:          item.Title,
			Amount:         item.Amount,
			PayerID:        item.PayerID,
			ParticipantIDs: item.ParticipantIDs,
		}
	}
	return calculator.Bill{
		TotalAmount:  b.TotalAmount,
		PayerID:      b.PayerID,
		Participants: participants,
		Items:        items,
	}
}

func toAPISplit(split *calculator.BillSplit, names map[string]string) *api.Split {
	people := make([]*api.PersonSplit, len(split.People))
	for i, p := range split.People {
		var items []*api.ItemShare
		for _, item := range p.Items {
			items = append(items, &api.ItemShare{
				ItemID:  item.ItemID,
				Title:   item.Title,
				Share:   item.Share,
				Balance: item.Balance,
			})
		}
		people[i] = &api.PersonSplit{
			PersonID:   p.PersonID,
			Name:       names[p.PersonID],
			Weight:     p.Weight,
			Share:      p.Share,
			AmountPaid: p.Paid,
			Balance:    p.Balance,
			Items:      items,
		}
	}
	return &api.Split{TotalAmount: split.TotalAmount, People: people}
}

func toAPIBill(b *models.Bill, split *calculator.BillSplit, names map[string]string) *api.Bill {
	participants := make([]*api.Participant, len(b.Participants))
	for i, p := range b.Participants {
		participants[i] = &api.Participant{
			PersonID:      p.PersonID,
			Name:          names[p.PersonID],
			Weight:        p.ShareWeight,
			Paid:          p.Paid,
			SettledAmount: p.SettledAmount,
		}
	}

	var items []*api.Item
	for _, item := range b.Items {
		payerID := item.PayerID
		if payerID == "" {
			payerID = b.PayerID
		}
		items = append(items, &api.Item{
			ID:             item.ID,
			Title:          item.Title,
			Amount:         item.Amount,
			PayerID:        payerID,
			ParticipantIDs: item.ParticipantIDs,
		})
	}

	out := &api.Bill{
		ID:           b.ID,
		Title:        b.Title,
		Description:  b.Description,
		Status:       string(b.Status),
		TotalAmount:  b.TotalAmount,
		PayerID:      b.PayerID,
		Participants: participants,
		Items:        items,
		CreatedAt:    unixTime(b.CreatedAt),
		UpdatedAt:    unixTime(b.UpdatedAt),
	}
	if split != nil {
		out.Split = toAPISplit(split, names)
	}
	return out
}

func toAPISummary(b *models.Bill) *api.BillSummary {
	paid := 0
	for _, p := range b.Participants {
		if p.Paid {
			paid++
		}
	}
	return &api.BillSummary{
		ID:               b.ID,
		Title:            b.Title,
		Status:           string(b.Status),
		TotalAmount:      b.TotalAmount,
		PayerID:          b.PayerID,
		ParticipantCount: len(b.Participants),
		PaidCount:        paid,
		CreatedAt:        unixTime(b.CreatedAt),
	}
}
