// Package queries contains the read side of the engine: operator-facing
// views that bypass the aggregates and read the tables directly.
package queries

import (
	"errors"
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/pkg/guard"
)

var ErrGetActiveConsignmentsQueryIsNotConstructed = errors.New(
	"GetActiveConsignmentsQuery must be created via NewGetActiveConsignmentsQuery constructor",
)

// GetActiveConsignmentsQuery lists every consignment that has not reached
// a terminal status, the operator's live workload view.
type GetActiveConsignmentsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveConsignmentsQuery creates the query.
func NewGetActiveConsignmentsQuery() GetActiveConsignmentsQuery {
	return GetActiveConsignmentsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveConsignmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveConsignmentsQueryIsNotConstructed)
}

// GetActiveConsignmentsQueryResponse is one row of the live workload view.
type GetActiveConsignmentsQueryResponse struct {
	ID             kernel.UUID
	Status         string
	PickupAddress  string
	DriverID       *kernel.UUID
	TotalStops     int
	CompletedStops int
	CODAmount      int64
	CreatedAt      time.Time
}
