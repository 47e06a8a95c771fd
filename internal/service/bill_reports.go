package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplitter/internal/calculator"
	"github.com/mmynk/billsplitter/internal/models"
	"github.com/mmynk/billsplitter/pkg/api"
)

// GetStatistics summarises the caller's bills per status.
func (s *BillService) GetStatistics(ctx context.Context, req *connect.Request[api.GetStatisticsRequest]) (*connect.Response[api.GetStatisticsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	bills, err := s.store.ListBills(ctx, userID)
	if err != nil {
		return nil, storeError("GetStatistics", err)
	}

	resp := &api.GetStatisticsResponse{
		TotalAmount:     decimal.Zero,
		PendingAmount:   decimal.Zero,
		SettledAmount:   decimal.Zero,
		CancelledAmount: decimal.Zero,
		Outstanding:     decimal.Zero,
	}
	for _, bill := range bills {
		resp.BillCount++
		resp.TotalAmount = resp.TotalAmount.Add(bill.TotalAmount)

		switch bill.Status {
		case models.BillStatusPending:
			resp.PendingCount++
			resp.PendingAmount = resp.PendingAmount.Add(bill.TotalAmount)
		case models.BillStatusSettled:
			resp.SettledCount++
			resp.SettledAmount = resp.SettledAmount.Add(bill.TotalAmount)
			continue
		case models.BillStatusCancelled:
			resp.CancelledCount++
			resp.CancelledAmount = resp.CancelledAmount.Add(bill.TotalAmount)
			continue
		}

		split, err := calculator.SplitBill(toCalculatorBill(bill))
		if err != nil {
			slog.Error("GetStatistics: stored bill no longer splits", "bill_id", bill.ID, "error", err)
			continue
		}
		for _, p := range bill.Participants {
			if !p.Paid {
				resp.Outstanding = resp.Outstanding.Add(owedAmount(split.Person(p.PersonID)))
			}
		}
	}

	return connect.NewResponse(resp), nil
}

// GetBalances aggregates pending bills into net balances per person and the
// fewest transfers that would clear them. A participant marked paid counts as
// having paid their settled amount back to the people they owed on that bill.
func (s *BillService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	bills, err := s.store.ListBills(ctx, userID)
	if err != nil {
		return nil, storeError("GetBalances", err)
	}

	var (
		splits      []*calculator.BillSplit
		settlements []calculator.Settlement
		ids         []string
		seen        = make(map[string]bool)
	)
	for _, bill := range bills {
		if bill.Status != models.BillStatusPending {
			continue
		}
		split, err := calculator.SplitBill(toCalculatorBill(bill))
		if err != nil {
			slog.Error("GetBalances: stored bill no longer splits", "bill_id", bill.ID, "error", err)
			continue
		}
		splits = append(splits, split)

		for _, p := range bill.Participants {
			if !seen[p.PersonID] {
				seen[p.PersonID] = true
				ids = append(ids, p.PersonID)
			}
			if !p.Paid {
				continue
			}
			paid, err := split.Settlements(p.PersonID, p.SettledAmount)
			if err != nil {
				slog.Error("GetBalances: cannot spread settled amount", "bill_id", bill.ID, "person_id", p.PersonID, "error", err)
				return nil, connect.NewError(connect.CodeInternal, err)
			}
			settlements = append(settlements, paid...)
		}
	}

	memberBalances, transfers := calculator.CalculateBalances(splits, settlements)

	names, err := s.participantNames(ctx, userID, ids, false)
	if err != nil {
		return nil, err
	}

	resp := &api.GetBalancesResponse{
		Balances:  make([]*api.PersonBalance, 0, len(memberBalances)),
		Transfers: make([]*api.Transfer, 0, len(transfers)),
	}
	for _, b := range memberBalances {
		resp.Balances = append(resp.Balances, &api.PersonBalance{
			PersonID:   b.PersonID,
			Name:       names[b.PersonID],
			NetBalance: b.NetBalance,
			TotalPaid:  b.TotalPaid,
			TotalOwed:  b.TotalOwed,
		})
	}
	for _, t := range transfers {
		resp.Transfers = append(resp.Transfers, &api.Transfer{
			FromPersonID: t.From,
			ToPersonID:   t.To,
			Amount:       t.Amount,
		})
	}

	return connect.NewResponse(resp), nil
}
