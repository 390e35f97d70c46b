package ports

import (
	"context"

	"consignment/internal/core/domain/model/orderref"
)

// OrderFeed is the read-only view into the external Order/Payment
// subsystem. The engine never mutates orders; it only pulls the set
// eligible for aggregation.
type OrderFeed interface {
	// EligibleOrders returns orders that are paid and ready for pickup.
	// Orders already referenced by a live consignment may still appear
	// here; the aggregation handler filters them out.
	EligibleOrders(ctx context.Context) ([]orderref.OrderRef, error)
}
