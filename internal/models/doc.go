// Package models defines the core domain models for billsplitter.
//
// # Models
//
//   - User: a registered account; owns people and bills
//   - Person: an entry in a user's address book who can take part in bills
//   - Bill: an expense fronted by a payer and shared by weighted participants
//   - BillParticipant: a person on a bill with their share weight and payment state
//   - BillItem: a line item with its own payer and subset of participants
//
// # Design Principles
//
//  1. Persist inputs, derive outputs: bills store amounts and weights; shares and
//     balances are recomputed by the calculator package on every read.
//  2. The only snapshot is BillParticipant.SettledAmount, captured when a
//     participant is marked as paid.
//  3. Relationships are ID strings, never pointers.
//  4. Money is decimal.Decimal, rounded to two places by the calculator.
package models
