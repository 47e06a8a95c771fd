package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// ParticipantInput names a person on a bill. A nil Weight means 1.
type ParticipantInput struct {
	PersonID string           `json:"personId"`
	Weight   *decimal.Decimal `json:"weight,omitempty"`
}

// ItemInput is a line item. An empty PayerID means the bill payer; empty
// ParticipantIDs means every bill participant.
type ItemInput struct {
	Title          string          `json:"title"`
	Amount         decimal.Decimal `json:"amount"`
	PayerID        string          `json:"payerId,omitempty"`
	ParticipantIDs []string        `json:"participantIds,omitempty"`
}

// Participant is a person on a stored bill.
type Participant struct {
	PersonID      string          `json:"personId"`
	Name          string          `json:"name"`
	Weight        decimal.Decimal `json:"weight"`
	Paid          bool            `json:"paid"`
	SettledAmount decimal.Decimal `json:"settledAmount"`
}

type Item struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Amount         decimal.Decimal `json:"amount"`
	PayerID        string          `json:"payerId"`
	ParticipantIDs []string        `json:"participantIds"`
}

// ItemShare is one person's part of one item.
type ItemShare struct {
	ItemID  string          `json:"itemId"`
	Title   string          `json:"title"`
	Share   decimal.Decimal `json:"share"`
	Balance decimal.Decimal `json:"balance"`
}

// PersonSplit is what one person owes and is owed on a bill.
// A positive Balance is owed to the person; negative means they owe.
type PersonSplit struct {
	PersonID   string          `json:"personId"`
	Name       string          `json:"name"`
	Weight     decimal.Decimal `json:"weight"`
	Share      decimal.Decimal `json:"share"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
	Balance    decimal.Decimal `json:"balance"`
	Items      []*ItemShare    `json:"items,omitempty"`
}

// Split is the computed allocation of a bill.
type Split struct {
	TotalAmount decimal.Decimal `json:"totalAmount"`
	People      []*PersonSplit  `json:"people"`
}

type Bill struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	Status       string          `json:"status"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	PayerID      string          `json:"payerId"`
	Participants []*Participant  `json:"participants"`
	Items        []*Item         `json:"items,omitempty"`
	Split        *Split          `json:"split"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// BillSummary is the list view of a bill.
type BillSummary struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Status           string          `json:"status"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	PayerID          string          `json:"payerId"`
	ParticipantCount int             `json:"participantCount"`
	PaidCount        int             `json:"paidCount"`
	CreatedAt        time.Time       `json:"createdAt"`
}

type PreviewSplitRequest struct {
	TotalAmount  decimal.Decimal     `json:"totalAmount"`
	PayerID      string              `json:"payerId"`
	Participants []*ParticipantInput `json:"participants"`
	Items        []*ItemInput        `json:"items,omitempty"`
}

type PreviewSplitResponse struct {
	Split *Split `json:"split"`
}

// CreateBillRequest describes a new bill. TotalAmount is ignored when Items
// are present; the total is then the sum of the items.
type CreateBillRequest struct {
	Title        string              `json:"title,omitempty"`
	Description  string              `json:"description,omitempty"`
	TotalAmount  decimal.Decimal     `json:"totalAmount"`
	PayerID      string              `json:"payerId"`
	Participants []*ParticipantInput `json:"participants"`
	Items        []*ItemInput        `json:"items,omitempty"`
}

type CreateBillResponse struct {
	Bill *Bill `json:"bill"`
}

type GetBillRequest struct {
	BillID string `json:"billId"`
}

type GetBillResponse struct {
	Bill *Bill `json:"bill"`
}

// ListBillsRequest optionally filters by status.
type ListBillsRequest struct {
	Status string `json:"status,omitempty"`
}

type ListBillsResponse struct {
	Bills []*BillSummary `json:"bills"`
}

type UpdateBillRequest struct {
	BillID       string              `json:"billId"`
	Title        string              `json:"title,omitempty"`
	Description  string              `json:"description,omitempty"`
	TotalAmount  decimal.Decimal     `json:"totalAmount"`
	PayerID      string              `json:"payerId"`
	Participants []*ParticipantInput `json:"participants"`
	Items        []*ItemInput        `json:"items,omitempty"`
}

type UpdateBillResponse struct {
	Bill *Bill `json:"bill"`
}

type DeleteBillRequest struct {
	BillID string `json:"billId"`
}

type DeleteBillResponse struct{}

type UpdateBillStatusRequest struct {
	BillID string `json:"billId"`
	Status string `json:"status"`
}

type UpdateBillStatusResponse struct {
	Bill *Bill `json:"bill"`
}

type UpdateParticipantPaymentRequest struct {
	BillID   string `json:"billId"`
	PersonID string `json:"personId"`
	Paid     bool   `json:"paid"`
}

type UpdateParticipantPaymentResponse struct {
	Bill *Bill `json:"bill"`
}

type GetStatisticsRequest struct{}

// GetStatisticsResponse summarises the caller's bills.
// Outstanding is what debtors still owe on pending bills.
type GetStatisticsResponse struct {
	BillCount       int             `json:"billCount"`
	PendingCount    int             `json:"pendingCount"`
	SettledCount    int             `json:"settledCount"`
	CancelledCount  int             `json:"cancelledCount"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	PendingAmount   decimal.Decimal `json:"pendingAmount"`
	SettledAmount   decimal.Decimal `json:"settledAmount"`
	CancelledAmount decimal.Decimal `json:"cancelledAmount"`
	Outstanding     decimal.Decimal `json:"outstanding"`
}

type GetBalancesRequest struct{}

type PersonBalance struct {
	PersonID   string          `json:"personId"`
	Name       string          `json:"name"`
	NetBalance decimal.Decimal `json:"netBalance"`
	TotalPaid  decimal.Decimal `json:"totalPaid"`
	TotalOwed  decimal.Decimal `json:"totalOwed"`
}

type Transfer struct {
	FromPersonID string          `json:"fromPersonId"`
	ToPersonID   string          `json:"toPersonId"`
	Amount       decimal.Decimal `json:"amount"`
}

type GetBalancesResponse struct {
	Balances  []*PersonBalance `json:"balances"`
	Transfers []*Transfer      `json:"transfers"`
}
