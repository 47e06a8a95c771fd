package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/asaskevich/govalidator"
	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplitter/internal/calculator"
	"github.com/mmynk/billsplitter/internal/metrics"
	"github.com/mmynk/billsplitter/internal/models"
	"github.com/mmynk/billsplitter/internal/storage"
	"github.com/mmynk/billsplitter/pkg/api"
	"github.com/mmynk/billsplitter/pkg/api/apiconnect"
)

var (
	errBillID          = errors.New("bill_id required")
	errPayerRequired   = errors.New("payer_id required")
	errTitleTooLong    = errors.New("title must be at most 100 characters")
	errNotPending      = errors.New("only pending bills can be changed")
	errBillCancelled   = errors.New("bill is cancelled")
	errUnknownStatus   = errors.New("unknown bill status")
	errNotOnBill       = errors.New("person is not a participant of this bill")
	errBadTransition   = errors.New("status change not allowed")
	errUnknownPerson   = errors.New("unknown person")
	errParticipantSlot = errors.New("participant person_id required")
)

// BillService implements the Connect BillService.
// Bills store amounts and weights; splits are recomputed on every read.
type BillService struct {
	apiconnect.UnimplementedBillServiceHandler
	store   storage.Store
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewBillService creates a new BillService with the given storage backend.
// m may be nil.
func NewBillService(store storage.Store, m *metrics.Metrics) *BillService {
	return &BillService{store: store, metrics: m, now: time.Now}
}

// billInput is the shared shape of PreviewSplit, CreateBill and UpdateBill.
type billInput struct {
	Title        string
	Description  string
	TotalAmount  decimal.Decimal
	PayerID      string
	Participants []*api.ParticipantInput
	Items        []*api.ItemInput
}

// buildBill validates input, computes its split and resolves participant names.
// The returned bill is not persisted.
func (s *BillService) buildBill(ctx context.Context, userID string, in billInput) (*models.Bill, *calculator.BillSplit, map[string]string, error) {
	title := strings.TrimSpace(in.Title)
	if !govalidator.StringLength(title, "0", "100") {
		return nil, nil, nil, invalidArgument(errTitleTooLong)
	}
	if len(in.Participants) == 0 {
		return nil, nil, nil, allocationError(s.metrics, calculator.ErrNoParticipants)
	}
	if in.PayerID == "" {
		return nil, nil, nil, invalidArgument(errPayerRequired)
	}

	participants := make([]models.BillParticipant, len(in.Participants))
	for i, p := range in.Participants {
		if p == nil || p.PersonID == "" {
			return nil, nil, nil, invalidArgument(fmt.Errorf("participant %d: %w", i+1, errParticipantSlot))
		}
		weight := decimal.NewFromInt(1)
		if p.Weight != nil {
			weight = *p.Weight
		}
		participants[i] = models.BillParticipant{PersonID: p.PersonID, ShareWeight: weight}
	}

	items := make([]models.BillItem, 0, len(in.Items))
	for i, it := range in.Items {
		if it == nil {
			continue
		}
		itemTitle := strings.TrimSpace(it.Title)
		if itemTitle == "" {
			itemTitle = fmt.Sprintf("Item %d", i+1)
		}
		items = append(items, models.BillItem{
			Title:          itemTitle,
			Amount:         it.Amount.Round(calculator.CurrencyPlaces),
			PayerID:        it.PayerID,
			ParticipantIDs: it.ParticipantIDs,
		})
	}

	bill := &models.Bill{
		Title:        title,
		Description:  strings.TrimSpace(in.Description),
		TotalAmount:  in.TotalAmount.Round(calculator.CurrencyPlaces),
		Status:       models.BillStatusPending,
		PayerID:      in.PayerID,
		CreatedBy:    userID,
		Participants: participants,
		Items:        items,
	}

	split, err := calculator.SplitBill(toCalculatorBill(bill))
	if err != nil {
		slog.Warn("Bill split rejected", "user_id", userID, "error", err)
		return nil, nil, nil, allocationError(s.metrics, err)
	}
	bill.TotalAmount = split.TotalAmount

	// Every id the split accepted is a bill participant; they must all be the caller's people.
	names, err := s.participantNames(ctx, userID, bill.ParticipantIDs(), true)
	if err != nil {
		return nil, nil, nil, err
	}

	if bill.Title == "" {
		ordered := make([]string, len(participants))
		for i, p := range participants {
			ordered[i] = names[p.PersonID]
		}
		bill.Title = generateTitle(ordered, s.now())
	}

	return bill, split, names, nil
}

// participantNames maps person ids to names. With strict set, an id outside
// the caller's address book is an InvalidArgument error.
func (s *BillService) participantNames(ctx context.Context, userID string, ids []string, strict bool) (map[string]string, error) {
	people, err := s.store.GetPeopleByIDs(ctx, userID, ids)
	if err != nil {
		return nil, storeError("GetPeopleByIDs", err)
	}
	names := make(map[string]string, len(people))
	for _, id := range ids {
		p, ok := people[id]
		if !ok {
			if strict {
				return nil, invalidArgument(fmt.Errorf("%w: %q", errUnknownPerson, id))
			}
			continue
		}
		names[id] = p.Name
	}
	return names, nil
}

// loadBill fetches a bill with its recomputed split and participant names.
func (s *BillService) loadBill(ctx context.Context, op, userID, billID string) (*models.Bill, *calculator.BillSplit, map[string]string, error) {
	if billID == "" {
		return nil, nil, nil, invalidArgument(errBillID)
	}
	bill, err := s.store.GetBill(ctx, userID, billID)
	if err != nil {
		return nil, nil, nil, storeError(op, err)
	}

	split, err := resplit(op, bill)
	if err != nil {
		return nil, nil, nil, err
	}

	names, err := s.participantNames(ctx, userID, bill.ParticipantIDs(), false)
	if err != nil {
		return nil, nil, nil, err
	}
	return bill, split, names, nil
}

// resplit recomputes the split of a stored bill. Stored bills were validated
// on write, so a failure here is an internal error.
func resplit(op string, bill *models.Bill) (*calculator.BillSplit, error) {
	split, err := calculator.SplitBill(toCalculatorBill(bill))
	if err != nil {
		slog.Error(op+": stored bill no longer splits", "bill_id", bill.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return split, nil
}

// PreviewSplit computes a split without saving anything.
func (s *BillService) PreviewSplit(ctx context.Context, req *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Debug("PreviewSplit request received",
		"user_id", userID,
		"participants", len(req.Msg.Participants),
		"items", len(req.Msg.Items),
	)

	_, split, names, err := s.buildBill(ctx, userID, billInput{
		TotalAmount:  req.Msg.TotalAmount,
		PayerID:      req.Msg.PayerID,
		Participants: req.Msg.Participants,
		Items:        req.Msg.Items,
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.PreviewSplitResponse{Split: toAPISplit(split, names)}), nil
}

// CreateBill validates, splits and persists a new bill.
func (s *BillService) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateBill request received",
		"user_id", userID,
		"participants", len(req.Msg.Participants),
		"items", len(req.Msg.Items),
	)

	bill, split, names, err := s.buildBill(ctx, userID, billInput{
		Title:        req.Msg.Title,
		Description:  req.Msg.Description,
		TotalAmount:  req.Msg.TotalAmount,
		PayerID:      req.Msg.PayerID,
		Participants: req.Msg.Participants,
		Items:        req.Msg.Items,
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.CreateBill(ctx, bill); err != nil {
		return nil, storeError("CreateBill", err)
	}
	s.metrics.IncrementBillsCreated()

	// Item ids are assigned on insert.
	if len(bill.Items) > 0 {
		if split, err = resplit("CreateBill", bill); err != nil {
			return nil, err
		}
	}

	slog.Info("Bill created", "bill_id", bill.ID, "total", bill.TotalAmount.StringFixed(calculator.CurrencyPlaces))
	return connect.NewResponse(&api.CreateBillResponse{Bill: toAPIBill(bill, split, names)}), nil
}

// GetBill retrieves a bill and recomputes its split.
func (s *BillService) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	bill, split, names, err := s.loadBill(ctx, "GetBill", userID, req.Msg.BillID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetBillResponse{Bill: toAPIBill(bill, split, names)}), nil
}

// ListBills returns summaries of the caller's bills, newest first.
func (s *BillService) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	status := models.BillStatus(req.Msg.Status)
	if status != "" && !status.Valid() {
		return nil, invalidArgument(fmt.Errorf("%w: %q", errUnknownStatus, req.Msg.Status))
	}

	bills, err := s.store.ListBills(ctx, userID)
	if err != nil {
		return nil, storeError("ListBills", err)
	}

	summaries := make([]*api.BillSummary, 0, len(bills))
	for _, bill := range bills {
		if status != "" && bill.Status != status {
			continue
		}
		summaries = append(summaries, toAPISummary(bill))
	}
	return connect.NewResponse(&api.ListBillsResponse{Bills: summaries}), nil
}

// UpdateBill replaces a pending bill's fields, participants and items.
// Payment marks are kept for people who stay on the bill and still owe what
// they paid; anyone else's mark is cleared. If every remaining debtor is then
// paid, the bill is settled.
func (s *BillService) UpdateBill(ctx context.Context, req *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.UpdateBillResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateBill request received", "user_id", userID, "bill_id", req.Msg.BillID)

	if req.Msg.BillID == "" {
		return nil, invalidArgument(errBillID)
	}
	existing, err := s.store.GetBill(ctx, userID, req.Msg.BillID)
	if err != nil {
		return nil, storeError("UpdateBill", err)
	}
	if existing.Status != models.BillStatusPending {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errNotPending)
	}

	bill, split, names, err := s.buildBill(ctx, userID, billInput{
		Title:        req.Msg.Title,
		Description:  req.Msg.Description,
		TotalAmount:  req.Msg.TotalAmount,
		PayerID:      req.Msg.PayerID,
		Participants: req.Msg.Participants,
		Items:        req.Msg.Items,
	})
	if err != nil {
		return nil, err
	}

	bill.ID = existing.ID
	bill.Status = existing.Status
	bill.CreatedAt = existing.CreatedAt
	if carryPaymentMarks(existing, bill, split) && allDebtorsPaid(bill, split) {
		bill.Status = models.BillStatusSettled
	}

	if err := s.store.UpdateBill(ctx, bill); err != nil {
		return nil, storeError("UpdateBill", err)
	}
	if bill.Status != existing.Status {
		if err := s.store.UpdateBillStatus(ctx, userID, bill.ID, bill.Status); err != nil {
			return nil, storeError("UpdateBill", err)
		}
		slog.Info("Bill settled by update", "bill_id", bill.ID)
	}
	if len(bill.Items) > 0 {
		if split, err = resplit("UpdateBill", bill); err != nil {
			return nil, err
		}
	}

	slog.Info("Bill updated", "bill_id", bill.ID)
	return connect.NewResponse(&api.UpdateBillResponse{Bill: toAPIBill(bill, split, names)}), nil
}

// carryPaymentMarks copies paid marks from prev onto next for participants
// whose owed amount on the new split equals what they settled. It reports
// whether any mark was carried.
func carryPaymentMarks(prev, next *models.Bill, split *calculator.BillSplit) bool {
	carried := false
	for i := range next.Participants {
		p := &next.Participants[i]
		old := prev.Participant(p.PersonID)
		if old == nil || !old.Paid {
			continue
		}
		if !owedAmount(split.Person(p.PersonID)).Equal(old.SettledAmount) {
			slog.Info("Payment mark cleared by bill update", "bill_id", prev.ID, "person_id", p.PersonID)
			continue
		}
		p.Paid = true
		p.SettledAmount = old.SettledAmount
		carried = true
	}
	return carried
}

// DeleteBill removes a bill.
func (s *BillService) DeleteBill(ctx context.Context, req *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("DeleteBill request received", "user_id", userID, "bill_id", req.Msg.BillID)

	if req.Msg.BillID == "" {
		return nil, invalidArgument(errBillID)
	}
	if err := s.store.DeleteBill(ctx, userID, req.Msg.BillID); err != nil {
		return nil, storeError("DeleteBill", err)
	}
	return connect.NewResponse(&api.DeleteBillResponse{}), nil
}

// allowedTransition reports whether a bill may move from one status to another.
// Settled and cancelled bills can only be reopened.
func allowedTransition(from, to models.BillStatus) bool {
	if from == to {
		return true
	}
	if from == models.BillStatusPending {
		return to == models.BillStatusSettled || to == models.BillStatusCancelled
	}
	return to == models.BillStatusPending
}

// UpdateBillStatus settles, cancels or reopens a bill.
func (s *BillService) UpdateBillStatus(ctx context.Context, req *connect.Request[api.UpdateBillStatusRequest]) (*connect.Response[api.UpdateBillStatusResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateBillStatus request received", "user_id", userID, "bill_id", req.Msg.BillID, "status", req.Msg.Status)

	status := models.BillStatus(req.Msg.Status)
	if !status.Valid() {
		return nil, invalidArgument(fmt.Errorf("%w: %q", errUnknownStatus, req.Msg.Status))
	}

	bill, _, _, err := s.loadBill(ctx, "UpdateBillStatus", userID, req.Msg.BillID)
	if err != nil {
		return nil, err
	}
	if !allowedTransition(bill.Status, status) {
		return nil, connect.NewError(connect.CodeFailedPrecondition,
			fmt.Errorf("%w: %s -> %s", errBadTransition, bill.Status, status))
	}

	if bill.Status != status {
		if err := s.store.UpdateBillStatus(ctx, userID, bill.ID, status); err != nil {
			return nil, storeError("UpdateBillStatus", err)
		}
	}

	bill, split, names, err := s.loadBill(ctx, "UpdateBillStatus", userID, bill.ID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.UpdateBillStatusResponse{Bill: toAPIBill(bill, split, names)}), nil
}

// owedAmount is what a person still owes on a split: the magnitude of a negative balance.
func owedAmount(p *calculator.PersonSplit) decimal.Decimal {
	if p == nil || !p.Balance.IsNegative() {
		return decimal.Zero
	}
	return p.Balance.Neg()
}

// allDebtorsPaid reports whether everyone who owes money on the bill is marked paid.
func allDebtorsPaid(bill *models.Bill, split *calculator.BillSplit) bool {
	for _, p := range bill.Participants {
		if owedAmount(split.Person(p.PersonID)).IsPositive() && !p.Paid {
			return false
		}
	}
	return true
}

// UpdateParticipantPayment marks a participant as paid or unpaid.
// Marking paid snapshots what they owed at that moment. A pending bill whose
// debtors are all paid becomes settled; unmarking reopens a settled bill.
func (s *BillService) UpdateParticipantPayment(ctx context.Context, req *connect.Request[api.UpdateParticipantPaymentRequest]) (*connect.Response[api.UpdateParticipantPaymentResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("UpdateParticipantPayment request received",
		"user_id", userID,
		"bill_id", req.Msg.BillID,
		"person_id", req.Msg.PersonID,
		"paid", req.Msg.Paid,
	)

	bill, split, _, err := s.loadBill(ctx, "UpdateParticipantPayment", userID, req.Msg.BillID)
	if err != nil {
		return nil, err
	}
	if bill.Status == models.BillStatusCancelled {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errBillCancelled)
	}

	participant := bill.Participant(req.Msg.PersonID)
	if participant == nil {
		return nil, connect.NewError(connect.CodeNotFound, errNotOnBill)
	}

	participant.Paid = req.Msg.Paid
	participant.SettledAmount = decimal.Zero
	if req.Msg.Paid {
		participant.SettledAmount = owedAmount(split.Person(participant.PersonID))
	}
	if err := s.store.UpdateParticipantPayment(ctx, bill.ID, *participant); err != nil {
		return nil, storeError("UpdateParticipantPayment", err)
	}

	settled := allDebtorsPaid(bill, split)
	next := bill.Status
	switch {
	case bill.Status == models.BillStatusPending && settled:
		next = models.BillStatusSettled
	case bill.Status == models.BillStatusSettled && !settled:
		next = models.BillStatusPending
	}
	if next != bill.Status {
		if err := s.store.UpdateBillStatus(ctx, userID, bill.ID, next); err != nil {
			return nil, storeError("UpdateParticipantPayment", err)
		}
		slog.Info("Bill status changed by payment", "bill_id", bill.ID, "status", next)
	}

	bill, split, names, err := s.loadBill(ctx, "UpdateParticipantPayment", userID, bill.ID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.UpdateParticipantPaymentResponse{Bill: toAPIBill(bill, split, names)}), nil
}
