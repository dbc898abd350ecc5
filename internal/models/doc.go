// Package models defines the core domain models for Fintrack.
//
// # Models
//
//   - User: a registered account; root owner of every other row
//   - Transaction: a single income or expense entry in a user's ledger
//   - Budget: a per-category spending limit with an accumulated spend counter
//
// # Ownership
//
// Transactions and budgets carry an OwnerID and are never shared or
// transferred. Stores filter every read and write on OwnerID; a row owned
// by someone else is indistinguishable from a row that does not exist.
//
// # Amounts
//
// Monetary fields use money.Amount (integer minor units). Conversion from
// and to decimal happens at the API boundary.
//
// # Design Principles
//
//  1. Avoid circular references: relationships are ID strings, not pointers
//  2. Validation is explicit: each model exposes Validate() returning an
//     error that matches ErrInvalidInput
//  3. Budget.Spent is maintained by the ledger coordinator, never by callers
package models
