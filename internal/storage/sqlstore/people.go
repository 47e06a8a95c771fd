package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mmynk/billsplitter/internal/models"
	"github.com/mmynk/billsplitter/internal/storage"
)

const personColumns = `id, user_id, name, phone, email, note, created_at, updated_at`

// CreatePerson adds a person to the user's address book.
func (s *Store) CreatePerson(ctx context.Context, person *models.Person) error {
	if person.ID == "" {
		person.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if person.CreatedAt == 0 {
		person.CreatedAt = now
	}
	person.UpdatedAt = now

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO people (`+personColumns+`)
		VALUES (:id, :user_id, :name, :phone, :email, :note, :created_at, :updated_at)
	`, person)
	if isUniqueViolation(err) {
		return fmt.Errorf("person %s: %w", person.ID, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create person: %w", err)
	}
	return nil
}

// GetPerson retrieves one of the user's people.
func (s *Store) GetPerson(ctx context.Context, userID, personID string) (*models.Person, error) {
	person := &models.Person{}
	err := s.db.GetContext(ctx, person,
		s.db.Rebind(`SELECT `+personColumns+` FROM people WHERE id = ? AND user_id = ?`),
		personID, userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return person, nil
}

// ListPeople returns all of the user's people, newest first.
func (s *Store) ListPeople(ctx context.Context, userID string) ([]*models.Person, error) {
	var people []*models.Person
	err := s.db.SelectContext(ctx, &people,
		s.db.Rebind(`SELECT `+personColumns+` FROM people WHERE user_id = ? ORDER BY created_at DESC, name`),
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	return people, nil
}

// GetPeopleByIDs retrieves multiple people by their IDs.
// People that don't exist or belong to another user are omitted from the result.
func (s *Store) GetPeopleByIDs(ctx context.Context, userID string, ids []string) (map[string]*models.Person, error) {
	people := make(map[string]*models.Person, len(ids))
	if len(ids) == 0 {
		return people, nil
	}

	query, args, err := inQuery(s.db,
		`SELECT `+personColumns+` FROM people WHERE user_id = ? AND id IN (?)`, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build people query: %w", err)
	}

	var rows []*models.Person
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get people by IDs: %w", err)
	}
	for _, p := range rows {
		people[p.ID] = p
	}
	return people, nil
}

// UpdatePerson overwrites the editable fields of a person.
func (s *Store) UpdatePerson(ctx context.Context, person *models.Person) error {
	person.UpdatedAt = time.Now().Unix()

	res, err := s.db.NamedExecContext(ctx, `
		UPDATE people
		SET name = :name, phone = :phone, email = :email, note = :note, updated_at = :updated_at
		WHERE id = :id AND user_id = :user_id
	`, person)
	if err != nil {
		return fmt.Errorf("failed to update person: %w", err)
	}
	return checkAffected(res)
}

// DeletePerson removes a person who is not referenced by any bill.
func (s *Store) DeletePerson(ctx context.Context, userID, personID string) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		var owned int
		err := tx.GetContext(ctx, &owned,
			tx.Rebind(`SELECT COUNT(*) FROM people WHERE id = ? AND user_id = ?`), personID, userID)
		if err != nil {
			return fmt.Errorf("failed to get person: %w", err)
		}
		if owned == 0 {
			return storage.ErrNotFound
		}

		var refs int
		err = tx.GetContext(ctx, &refs, tx.Rebind(`
			SELECT
				(SELECT COUNT(*) FROM bill_participants WHERE person_id = ?) +
				(SELECT COUNT(*) FROM bill_item_participants WHERE person_id = ?) +
				(SELECT COUNT(*) FROM bills WHERE payer_id = ?)
		`), personID, personID, personID)
		if err != nil {
			return fmt.Errorf("failed to check person references: %w", err)
		}
		if refs > 0 {
			return fmt.Errorf("person %s is on %d bill record(s): %w", personID, refs, storage.ErrConflict)
		}

		res, err := tx.ExecContext(ctx,
			tx.Rebind(`DELETE FROM people WHERE id = ? AND user_id = ?`), personID, userID)
		if err != nil {
			return fmt.Errorf("failed to delete person: %w", err)
		}
		return checkAffected(res)
	})
}
