// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/billsplitter/internal/models"
)

var (
	// ErrNotFound is returned when a record does not exist or is not visible to the caller.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write violates a uniqueness or reference constraint.
	ErrConflict = errors.New("conflict")
)

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// PersonStore persists a user's address book.
type PersonStore interface {
	CreatePerson(ctx context.Context, person *models.Person) error
	// GetPerson returns ErrNotFound if the person does not belong to userID.
	GetPerson(ctx context.Context, userID, personID string) (*models.Person, error)
	// ListPeople returns the user's people, newest first.
	ListPeople(ctx context.Context, userID string) ([]*models.Person, error)
	// GetPeopleByIDs returns the subset of ids owned by userID, keyed by id.
	GetPeopleByIDs(ctx context.Context, userID string, ids []string) (map[string]*models.Person, error)
	UpdatePerson(ctx context.Context, person *models.Person) error
	// DeletePerson returns ErrConflict if the person is still on a bill.
	DeletePerson(ctx context.Context, userID, personID string) error
}

// BillStore persists bills with their participants and items.
type BillStore interface {
	// CreateBill persists a new bill. ID, timestamps and status are filled in if empty.
	CreateBill(ctx context.Context, bill *models.Bill) error
	// GetBill returns ErrNotFound if the bill was not created by userID.
	GetBill(ctx context.Context, userID, billID string) (*models.Bill, error)
	// ListBills returns the user's bills, newest first, fully loaded.
	ListBills(ctx context.Context, userID string) ([]*models.Bill, error)
	// UpdateBill replaces the bill's fields, participants and items.
	UpdateBill(ctx context.Context, bill *models.Bill) error
	DeleteBill(ctx context.Context, userID, billID string) error
	UpdateBillStatus(ctx context.Context, userID, billID string, status models.BillStatus) error
	// UpdateParticipantPayment writes Paid and SettledAmount of one participant.
	UpdateParticipantPayment(ctx context.Context, billID string, participant models.BillParticipant) error
}

// Store defines the interface for all storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	UserStore
	PersonStore
	BillStore

	// Close releases any resources held by the store.
	Close() error
}
