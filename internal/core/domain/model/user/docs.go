// Package user contains the User aggregate: an actor of the restaurant with a
// role, a blacklist flag and an append-only warning log.
//
// Standing rules enforced here:
//   - only Customer and VIP may switch roles, and only between each other
//   - at most MaxWarnings warnings are active at a time
//   - a user with MaxWarnings active warnings is blacklisted
//
// Cascades (warning → blacklist/demotion) are orchestrated by the domain
// services package, which calls the primitives exposed by User.
package user
