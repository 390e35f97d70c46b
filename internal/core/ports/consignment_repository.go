// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, the external order feed,
// the geo provider and the event publisher. Adapters implement these
// interfaces; use cases depend only on them.
package ports

import (
	"context"

	"consignment/internal/core/domain/model/consignment"
	"consignment/internal/core/domain/model/kernel"
)

// ConsignmentRepository is the persistence contract for consignment
// aggregates.
type ConsignmentRepository interface {
	// Add persists a new consignment together with its delivery stops.
	Add(ctx context.Context, aggregate *consignment.Consignment) error

	// Update persists changes to an existing consignment and its stops.
	Update(ctx context.Context, aggregate *consignment.Consignment) error

	// Get retrieves a consignment by identifier, stops included.
	// Returns errs.ObjectNotFoundError when no row matches.
	Get(ctx context.Context, id kernel.UUID) (*consignment.Consignment, error)

	// GetAllPending retrieves every Pending consignment oldest-first, the
	// order the matcher processes them in.
	GetAllPending(ctx context.Context) ([]*consignment.Consignment, error)

	// GetAllActive retrieves consignments in a non-terminal status.
	GetAllActive(ctx context.Context) ([]*consignment.Consignment, error)

	// GetAllAssigned retrieves every Assigned consignment. The reclaim job
	// scans them for drivers that stopped reporting.
	GetAllAssigned(ctx context.Context) ([]*consignment.Consignment, error)

	// GetReferencedOrderIDs reports which of the given order identifiers
	// are already referenced by a live (non-terminal) consignment, so the
	// aggregator never consumes an order twice.
	GetReferencedOrderIDs(ctx context.Context, orderIDs []kernel.UUID) (map[kernel.UUID]bool, error)
}
