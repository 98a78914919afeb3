// Package kernel provides the value objects shared by every aggregate of the
// restaurant engine.
//
// The package includes:
//   - UUID: identifier for users, orders, bids, feedback and answers
//   - Money: non-negative-aware decimal amount used for prices and balances
//
// Both are immutable and safe for concurrent use. Their zero values are either
// invalid (UUID) or a meaningful zero amount (Money).
package kernel
