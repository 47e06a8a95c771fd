package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount        = errors.New("amount must not be negative")
	ErrInvalidWeight        = errors.New("share weight must be greater than zero")
	ErrDuplicateParticipant = errors.New("participant listed more than once")
	ErrZeroTotalWeight      = errors.New("share weights must sum to a positive value")
	ErrNoParticipants       = errors.New("must have at least one participant")
	ErrPayerNotParticipant  = errors.New("payer must be one of the participants")
)

const (
	// CurrencyPlaces is the number of decimal places of the minimal currency unit.
	CurrencyPlaces = 2

	// residuePrecision bounds the digits kept for raw shares (in minimal units).
	residuePrecision = 16
)

// Participant is one person sharing an amount, with a relative share weight.
type Participant struct {
	PersonID string
	Weight   decimal.Decimal
}

// Allocation is one participant's outcome.
// Share is the unsigned portion of the amount assigned to the person.
// Balance is positive when the person is owed money and negative when they owe.
type Allocation struct {
	PersonID string
	Weight   decimal.Decimal
	Share    decimal.Decimal
	Balance  decimal.Decimal
}

// AllocationResult holds allocations in the same order as the input participants.
type AllocationResult struct {
	Amount      decimal.Decimal
	PayerID     string
	Allocations []Allocation
}

// Balances returns person id -> balance.
func (r *AllocationResult) Balances() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(r.Allocations))
	for _, a := range r.Allocations {
		out[a.PersonID] = a.Balance
	}
	return out
}

// Shares returns person id -> unsigned share.
func (r *AllocationResult) Shares() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(r.Allocations))
	for _, a := range r.Allocations {
		out[a.PersonID] = a.Share
	}
	return out
}

// Allocate splits amount among participants proportionally to their weights.
//
// Each raw share is rounded half-up to currency precision. Any remainder left
// by rounding is moved one minimal unit at a time: to the participant with the
// largest residue (raw - rounded) when cents are missing, or from the one with
// the smallest residue when too many were handed out, ties going to the lowest
// person id. Shares therefore always sum to the (rounded) amount.
//
// The payer must be one of the participants. The payer's balance is the amount
// minus their own share; everyone else's balance is the negative of their share.
func Allocate(amount decimal.Decimal, payerID string, participants []Participant) (*AllocationResult, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}

	totalWeight, err := validateParticipants(participants)
	if err != nil {
		return nil, err
	}

	payerFound := false
	for _, p := range participants {
		if p.PersonID == payerID {
			payerFound = true
			break
		}
	}
	if !payerFound {
		return nil, fmt.Errorf("%w: %q", ErrPayerNotParticipant, payerID)
	}

	amount = amount.Round(CurrencyPlaces)
	units := amount.Shift(CurrencyPlaces)

	shares := make([]decimal.Decimal, len(participants))
	residues := make([]decimal.Decimal, len(participants))
	allocated := decimal.Zero
	for i, p := range participants {
		raw := units.Mul(p.Weight).DivRound(totalWeight, residuePrecision)
		rounded := raw.Round(0)
		shares[i] = rounded
		residues[i] = raw.Sub(rounded)
		allocated = allocated.Add(rounded)
	}

	one := decimal.NewFromInt(1)
	for remainder := units.Sub(allocated).IntPart(); remainder != 0; {
		if remainder > 0 {
			i := pickResidue(participants, residues, true)
			shares[i] = shares[i].Add(one)
			residues[i] = residues[i].Sub(one)
			remainder--
		} else {
			i := pickResidue(participants, residues, false)
			shares[i] = shares[i].Sub(one)
			residues[i] = residues[i].Add(one)
			remainder++
		}
	}

	result := &AllocationResult{
		Amount:      amount,
		PayerID:     payerID,
		Allocations: make([]Allocation, len(participants)),
	}
	for i, p := range participants {
		share := shares[i].Shift(-CurrencyPlaces)
		balance := share.Neg()
		if p.PersonID == payerID {
			balance = amount.Sub(share)
		}
		result.Allocations[i] = Allocation{
			PersonID: p.PersonID,
			Weight:   p.Weight,
			Share:    share,
			Balance:  balance,
		}
	}

	return result, nil
}

// validateParticipants checks weights and ids and returns the total weight.
func validateParticipants(participants []Participant) (decimal.Decimal, error) {
	if len(participants) == 0 {
		return decimal.Zero, ErrNoParticipants
	}

	seen := make(map[string]struct{}, len(participants))
	total := decimal.Zero
	for _, p := range participants {
		if !p.Weight.IsPositive() {
			return decimal.Zero, fmt.Errorf("%w: %q has weight %s", ErrInvalidWeight, p.PersonID, p.Weight)
		}
		if _, dup := seen[p.PersonID]; dup {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrDuplicateParticipant, p.PersonID)
		}
		seen[p.PersonID] = struct{}{}
		total = total.Add(p.Weight)
	}

	if !total.IsPositive() {
		return decimal.Zero, ErrZeroTotalWeight
	}
	return total, nil
}

// pickResidue returns the index with the largest (or smallest) residue,
// preferring the lowest person id on ties.
func pickResidue(participants []Participant, residues []decimal.Decimal, largest bool) int {
	best := 0
	for i := 1; i < len(participants); i++ {
		cmp := residues[i].Cmp(residues[best])
		if !largest {
			cmp = -cmp
		}
		if cmp > 0 || (cmp == 0 && participants[i].PersonID < participants[best].PersonID) {
			best = i
		}
	}
	return best
}
