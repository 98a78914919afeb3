// Package order contains the Order aggregate: the purchase, its line items,
// the delivery bids collected against it and the status machine that governs
// its lifecycle.
//
// Lifecycle:
//
//	Placed ──> Preparing ──> ReadyForPickup ──> OutForDelivery ──> Delivered ──> Closed
//	  │
//	  └──> Cancelled
//
// Every edge is declared once in Transitions(), together with the roles that
// may drive it and the operation that triggers it. Both the aggregate and the
// access table are derived from that list.
package order
