// Package models defines the persisted domain models for SettleUp.
//
// # Models
//
//   - User: a registered account, optionally carrying a UPI payment address
//   - Member: a user as seen inside a group (id + display name)
//   - Group: a set of members sharing expenses
//   - Expense: one payment split evenly among some members of a group
//   - Settlement: a real-world payment between two users
//
// Balances and suggested transfers are derived on every request by the
// calculator package and are never stored.
//
// # Design Principles
//
// 1. **IDs, not pointers**: relationships are expressed with ID strings
// 2. **Exact money**: amounts are decimal.Decimal, stored as TEXT
// 3. **Unix timestamps**: CreatedAt/UpdatedAt are Unix seconds
package models
