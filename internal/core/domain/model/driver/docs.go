// Package driver provides the driver availability aggregate: the record the
// dispatch matcher reads and the location tracker and state machine write.
//
// The package includes:
//   - Driver: availability flag, last known location, active-consignment binding
//   - LocationSample: a validated position report from the driver client
//
// Key business rules:
//   - A driver holds at most one in-progress consignment at a time
//   - Location samples apply in timestamp order; older samples are rejected
//   - Staleness is derived at query time from the last sample's age, never
//     pushed as an event
//
// Only the location tracker mutates position fields and only the state
// machine mutates the binding, which keeps dispatch and telemetry updates
// from racing each other.
package driver
