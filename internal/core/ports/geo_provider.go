package ports

import (
	"context"

	"consignment/internal/core/domain/model/kernel"
)

// GeoProvider resolves addresses and road distances through an external
// geo service. Every call carries a bounded timeout; failures surface as
// errs.ExternalServiceError and are never fatal to a dispatch pass, the
// matcher falls back to the straight-line metric.
type GeoProvider interface {
	// Geocode resolves a human-readable address to coordinates.
	Geocode(ctx context.Context, address string) (kernel.GeoPoint, error)

	// Route returns the road distance in meters between two points.
	Route(ctx context.Context, from, to kernel.GeoPoint) (float64, error)

	// DistanceMatrix returns road distances in meters from each origin to
	// the destination, in origin order.
	DistanceMatrix(ctx context.Context, origins []kernel.GeoPoint, destination kernel.GeoPoint) ([]float64, error)
}
