package ports

import (
	"context"

	"consignment/internal/core/domain/model/driver"
	"consignment/internal/core/domain/model/kernel"
)

// TrackRepository is the append-only store of delivery track points.
type TrackRepository interface {
	// Append stores one track point. Entries are never updated or deleted.
	Append(ctx context.Context, point driver.TrackPoint) error

	// GetByConsignment retrieves the track of a consignment ordered by
	// report time ascending.
	GetByConsignment(ctx context.Context, consignmentID kernel.UUID) ([]driver.TrackPoint, error)
}
