package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplitter/internal/calculator"
	"github.com/mmynk/billsplitter/internal/metrics"
	"github.com/mmynk/billsplitter/internal/middleware"
	"github.com/mmynk/billsplitter/internal/storage"
)

var errAuthRequired = errors.New("authentication required")

// requireUser returns the authenticated user ID or an Unauthenticated error.
func requireUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errAuthRequired)
	}
	return userID, nil
}

func invalidArgument(err error) error {
	return connect.NewError(connect.CodeInvalidArgument, err)
}

// storeError maps a storage failure to a Connect error, logging unexpected ones.
func storeError(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrConflict):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}
	slog.Error(op+" failed", "error", err)
	return connect.NewError(connect.CodeInternal, err)
}

// allocationReasons labels the allocation failure metric.
var allocationReasons = []struct {
	err    error
	reason string
}{
	{calculator.ErrNoParticipants, "no_participants"},
	{calculator.ErrDuplicateParticipant, "duplicate_participant"},
	{calculator.ErrInvalidWeight, "invalid_weight"},
	{calculator.ErrZeroTotalWeight, "zero_total_weight"},
	{calculator.ErrInvalidAmount, "invalid_amount"},
	{calculator.ErrPayerNotParticipant, "payer_not_participant"},
	{calculator.ErrUnknownParticipant, "unknown_participant"},
	{calculator.ErrMissingPayer, "missing_payer"},
}

// allocationError reports a rejected split as InvalidArgument.
func allocationError(m *metrics.Metrics, err error) error {
	reason := "other"
	for _, r := range allocationReasons {
		if errors.Is(err, r.err) {
			reason = r.reason
			break
		}
	}
	m.IncrementAllocationFailure(reason)
	return invalidArgument(err)
}
