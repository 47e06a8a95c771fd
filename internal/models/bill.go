package models

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// BillStatus is the settlement state of a bill.
type BillStatus string

const (
	BillStatusPending   BillStatus = "pending"
	BillStatusSettled   BillStatus = "settled"
	BillStatusCancelled BillStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s BillStatus) Valid() bool {
	switch s {
	case BillStatusPending, BillStatusSettled, BillStatusCancelled:
		return true
	}
	return false
}

// Value implements driver.Valuer.
func (s BillStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// Scan implements sql.Scanner.
func (s *BillStatus) Scan(src any) error {
	switch v := src.(type) {
	case string:
		*s = BillStatus(v)
	case []byte:
		*s = BillStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into BillStatus", src)
	}
	return nil
}

// Bill represents an expense shared among participants.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string `db:"id"`

	// Title is the human-readable name. Auto-generated from participant names when empty.
	Title string `db:"title"`

	// Description is optional free text.
	Description string `db:"description"`

	// TotalAmount is the amount being split. When the bill has items it is
	// the sum of the item amounts.
	TotalAmount decimal.Decimal `db:"total_amount"`

	// Status tracks whether the bill has been settled.
	Status BillStatus `db:"status"`

	// PayerID is the person who fronted the bill. Items without their own
	// payer default to it.
	PayerID string `db:"payer_id"`

	// CreatedBy is the user who owns the bill.
	CreatedBy string `db:"created_by"`

	// Participants are the people sharing the bill, in entry order.
	Participants []BillParticipant `db:"-"`

	// Items are optional line items. A bill without items is split as a whole.
	Items []BillItem `db:"-"`

	CreatedAt int64 `db:"created_at"`
	UpdatedAt int64 `db:"updated_at"`
}

// ParticipantIDs returns the person ids of the bill participants.
func (b *Bill) ParticipantIDs() []string {
	ids := make([]string, len(b.Participants))
	for i, p := range b.Participants {
		ids[i] = p.PersonID
	}
	return ids
}

// Participant returns the participant for personID, or nil.
func (b *Bill) Participant(personID string) *BillParticipant {
	for i := range b.Participants {
		if b.Participants[i].PersonID == personID {
			return &b.Participants[i]
		}
	}
	return nil
}

// BillParticipant is one person on a bill.
type BillParticipant struct {
	BillID   string `db:"bill_id"`
	PersonID string `db:"person_id"`

	// ShareWeight is the relative share of this person (default 1).
	ShareWeight decimal.Decimal `db:"share_weight"`

	// Paid marks that this person has settled what they owe on the bill.
	Paid bool `db:"paid"`

	// SettledAmount snapshots what the person owed at the moment they were
	// marked as paid. Zero while unpaid.
	SettledAmount decimal.Decimal `db:"settled_amount"`

	// SortOrder keeps entry order stable across reads.
	SortOrder int `db:"sort_order"`
}

// BillItem represents a single line item on a bill.
type BillItem struct {
	ID     string          `db:"id"`
	BillID string          `db:"bill_id"`
	Title  string          `db:"title"`
	Amount decimal.Decimal `db:"amount"`

	// PayerID is who paid for this item. Empty means the bill payer.
	PayerID string `db:"payer_id"`

	// ParticipantIDs are the people sharing this item. Empty means everyone on the bill.
	ParticipantIDs []string `db:"-"`

	SortOrder int `db:"sort_order"`
}
