// Package consignment provides the aggregate root of the dispatch engine:
// a physical delivery unit grouping one or more orders picked up from a
// single location and delivered across one or more stops.
//
// The package includes:
//   - Consignment: the aggregate root owning the delivery lifecycle
//   - Status: the lifecycle state machine with pure transition functions
//   - DeliveryStop: an entity tracking completion of a single drop-off
//
// Key business rules:
//   - A consignment has exactly one pickup location and one or more stops
//   - Constituent order references are fixed at creation
//   - Lifecycle transitions follow a strict table; illegal transitions are
//     rejected with a ConflictError and leave state unchanged
//   - Duplicate event delivery is a no-op, because mobile clients retry
//   - Pickup, delivery and failure events must originate from the bound driver
//   - Terminal statuses (Delivered, Failed, Cancelled) freeze the aggregate
package consignment
