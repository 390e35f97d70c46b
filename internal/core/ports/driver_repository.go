package ports

import (
	"context"
	"time"

	"consignment/internal/core/domain/model/driver"
	"consignment/internal/core/domain/model/kernel"
)

// DriverRepository is the persistence contract for driver aggregates.
type DriverRepository interface {
	// Add persists a new driver.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver, including its last
	// location sample and active consignment binding.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver by identifier.
	// Returns errs.ObjectNotFoundError when no row matches.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetAllFreeFresh retrieves available drivers with no active
	// consignment whose last location sample was reported at or after the
	// cutoff. Staleness is a property of the query, not of the stored row.
	GetAllFreeFresh(ctx context.Context, cutoff time.Time) ([]*driver.Driver, error)
}
