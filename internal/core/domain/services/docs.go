// Package services provides domain services that orchestrate business rules
// spanning more than one aggregate of the restaurant engine.
//
// The package includes:
//   - OrderDispatcher: hands a ready order to the author of the chosen bid
//   - StandingService: issues warnings and applies the blacklist/demotion cascade
//   - VIPEvaluator: promotes customers whose history qualifies them for VIP
//
// Cascades are explicit synchronous calls made by the application layer inside
// one unit of work, so their ordering is visible at the call site.
package services
