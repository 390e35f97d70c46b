// Package services provides domain services that orchestrate business
// operations across multiple aggregates of the dispatch engine. It
// implements workflows that don't naturally belong to a single aggregate
// root.
//
// The package includes:
//   - DispatchMatcher: selects the nearest fresh driver for a pending
//     consignment and executes the assignment handshake on both aggregates
//   - OrderAggregator: groups eligible orders sharing a pickup location
//     into consignment candidates
//
// Both services are pure: they read and mutate in-memory aggregates only,
// leaving transaction boundaries to the application layer.
package services
