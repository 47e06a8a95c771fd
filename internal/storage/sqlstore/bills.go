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

const billColumns = `id, title, description, total_amount, status, payer_id, created_by, created_at, updated_at`

// CreateBill persists a new bill with its participants and items.
func (s *Store) CreateBill(ctx context.Context, bill *models.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if bill.CreatedAt == 0 {
		bill.CreatedAt = now
	}
	bill.UpdatedAt = now
	if bill.Status == "" {
		bill.Status = models.BillStatusPending
	}

	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO bills (`+billColumns+`)
			VALUES (:id, :title, :description, :total_amount, :status, :payer_id, :created_by, :created_at, :updated_at)
		`, bill)
		if isUniqueViolation(err) {
			return fmt.Errorf("bill %s: %w", bill.ID, storage.ErrConflict)
		}
		if err != nil {
			return fmt.Errorf("failed to insert bill: %w", err)
		}
		return insertChildren(ctx, tx, bill)
	})
}

// GetBill retrieves a bill by ID, including all participants and items.
func (s *Store) GetBill(ctx context.Context, userID, billID string) (*models.Bill, error) {
	bill := &models.Bill{}
	err := s.db.GetContext(ctx, bill,
		s.db.Rebind(`SELECT `+billColumns+` FROM bills WHERE id = ? AND created_by = ?`),
		billID, userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	if err := loadChildren(ctx, s.db, []*models.Bill{bill}); err != nil {
		return nil, err
	}
	return bill, nil
}

// ListBills returns the user's bills, newest first.
func (s *Store) ListBills(ctx context.Context, userID string) ([]*models.Bill, error) {
	var bills []*models.Bill
	err := s.db.SelectContext(ctx, &bills,
		s.db.Rebind(`SELECT `+billColumns+` FROM bills WHERE created_by = ? ORDER BY created_at DESC, id`),
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	if err := loadChildren(ctx, s.db, bills); err != nil {
		return nil, err
	}
	return bills, nil
}

// UpdateBill overwrites a bill and replaces its participants and items.
// Status is left alone; use UpdateBillStatus.
func (s *Store) UpdateBill(ctx context.Context, bill *models.Bill) error {
	bill.UpdatedAt = time.Now().Unix()

	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.NamedExecContext(ctx, `
			UPDATE bills
			SET title = :title, description = :description, total_amount = :total_amount,
			    payer_id = :payer_id, updated_at = :updated_at
			WHERE id = :id AND created_by = :created_by
		`, bill)
		if err != nil {
			return fmt.Errorf("failed to update bill: %w", err)
		}
		if err := checkAffected(res); err != nil {
			return err
		}

		if err := deleteChildren(ctx, tx, bill.ID); err != nil {
			return err
		}
		return insertChildren(ctx, tx, bill)
	})
}

// DeleteBill removes a bill and everything attached to it.
func (s *Store) DeleteBill(ctx context.Context, userID, billID string) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		var owned int
		err := tx.GetContext(ctx, &owned,
			tx.Rebind(`SELECT COUNT(*) FROM bills WHERE id = ? AND created_by = ?`), billID, userID)
		if err != nil {
			return fmt.Errorf("failed to check bill existence: %w", err)
		}
		if owned == 0 {
			return storage.ErrNotFound
		}

		if err := deleteChildren(ctx, tx, billID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM bills WHERE id = ?`), billID); err != nil {
			return fmt.Errorf("failed to delete bill: %w", err)
		}
		return nil
	})
}

// UpdateBillStatus sets the status of one of the user's bills.
func (s *Store) UpdateBillStatus(ctx context.Context, userID, billID string, status models.BillStatus) error {
	res, err := s.db.ExecContext(ctx,
		s.db.Rebind(`UPDATE bills SET status = ?, updated_at = ? WHERE id = ? AND created_by = ?`),
		status, time.Now().Unix(), billID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update bill status: %w", err)
	}
	return checkAffected(res)
}

// UpdateParticipantPayment writes the paid flag and settled amount of one participant.
func (s *Store) UpdateParticipantPayment(ctx context.Context, billID string, participant models.BillParticipant) error {
	res, err := s.db.ExecContext(ctx,
		s.db.Rebind(`UPDATE bill_participants SET paid = ?, settled_amount = ? WHERE bill_id = ? AND person_id = ?`),
		participant.Paid, participant.SettledAmount, billID, participant.PersonID,
	)
	if err != nil {
		return fmt.Errorf("failed to update participant payment: %w", err)
	}
	return checkAffected(res)
}

func insertChildren(ctx context.Context, tx *sqlx.Tx, bill *models.Bill) error {
	for i := range bill.Participants {
		p := &bill.Participants[i]
		p.BillID = bill.ID
		p.SortOrder = i
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO bill_participants (bill_id, person_id, share_weight, paid, settled_amount, sort_order)
			VALUES (:bill_id, :person_id, :share_weight, :paid, :settled_amount, :sort_order)
		`, p)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	for i := range bill.Items {
		item := &bill.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.BillID = bill.ID
		item.SortOrder = i

		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO bill_items (id, bill_id, title, amount, payer_id, sort_order)
			VALUES (:id, :bill_id, :title, :amount, :payer_id, :sort_order)
		`, item)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		for j, personID := range item.ParticipantIDs {
			_, err = tx.ExecContext(ctx,
				tx.Rebind(`INSERT INTO bill_item_participants (item_id, person_id, sort_order) VALUES (?, ?, ?)`),
				item.ID, personID, j,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item participant: %w", err)
			}
		}
	}
	return nil
}

func deleteChildren(ctx context.Context, tx *sqlx.Tx, billID string) error {
	stmts := []struct {
		query string
		what  string
	}{
		{`DELETE FROM bill_item_participants WHERE item_id IN (SELECT id FROM bill_items WHERE bill_id = ?)`, "item participants"},
		{`DELETE FROM bill_items WHERE bill_id = ?`, "items"},
		{`DELETE FROM bill_participants WHERE bill_id = ?`, "participants"},
	}
	for _, st := range stmts {
		if _, err := tx.ExecContext(ctx, tx.Rebind(st.query), billID); err != nil {
			return fmt.Errorf("failed to delete %s: %w", st.what, err)
		}
	}
	return nil
}

type itemParticipant struct {
	ItemID   string `db:"item_id"`
	PersonID string `db:"person_id"`
}

// loadChildren fills Participants and Items for the given bills with one query per table.
func loadChildren(ctx context.Context, db sqlx.ExtContext, bills []*models.Bill) error {
	if len(bills) == 0 {
		return nil
	}

	byID := make(map[string]*models.Bill, len(bills))
	billIDs := make([]string, len(bills))
	for i, b := range bills {
		byID[b.ID] = b
		billIDs[i] = b.ID
		b.Participants = nil
		b.Items = nil
	}

	query, args, err := inQuery(db, `
		SELECT bill_id, person_id, share_weight, paid, settled_amount, sort_order
		FROM bill_participants WHERE bill_id IN (?) ORDER BY bill_id, sort_order`, billIDs)
	if err != nil {
		return fmt.Errorf("failed to build participants query: %w", err)
	}
	var participants []models.BillParticipant
	if err := sqlx.SelectContext(ctx, db, &participants, query, args...); err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	for _, p := range participants {
		b := byID[p.BillID]
		b.Participants = append(b.Participants, p)
	}

	query, args, err = inQuery(db, `
		SELECT id, bill_id, title, amount, payer_id, sort_order
		FROM bill_items WHERE bill_id IN (?) ORDER BY bill_id, sort_order`, billIDs)
	if err != nil {
		return fmt.Errorf("failed to build items query: %w", err)
	}
	var items []models.BillItem
	if err := sqlx.SelectContext(ctx, db, &items, query, args...); err != nil {
		return fmt.Errorf("failed to get items: %w", err)
	}
	if len(items) == 0 {
		return nil
	}

	itemIDs := make([]string, len(items))
	for i, item := range items {
		itemIDs[i] = item.ID
	}
	query, args, err = inQuery(db, `
		SELECT item_id, person_id
		FROM bill_item_participants WHERE item_id IN (?) ORDER BY item_id, sort_order`, itemIDs)
	if err != nil {
		return fmt.Errorf("failed to build item participants query: %w", err)
	}
	var assigned []itemParticipant
	if err := sqlx.SelectContext(ctx, db, &assigned, query, args...); err != nil {
		return fmt.Errorf("failed to get item participants: %w", err)
	}
	byItem := make(map[string][]string)
	for _, a := range assigned {
		byItem[a.ItemID] = append(byItem[a.ItemID], a.PersonID)
	}

	for _, item := range items {
		item.ParticipantIDs = byItem[item.ID]
		b := byID[item.BillID]
		b.Items = append(b.Items, item)
	}
	return nil
}
