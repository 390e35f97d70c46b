package queries

import (
	"errors"
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/pkg/guard"
)

var ErrGetConsignmentTrackQueryIsNotConstructed = errors.New(
	"GetConsignmentTrackQuery must be created via NewGetConsignmentTrackQuery constructor",
)

// GetConsignmentTrackQuery returns the recorded delivery track of one
// consignment, the points reported between pickup and the terminal
// transition.
type GetConsignmentTrackQuery struct {
	consignmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetConsignmentTrackQuery creates the query.
func NewGetConsignmentTrackQuery(consignmentID kernel.UUID) (GetConsignmentTrackQuery, error) {
	if err := consignmentID.Validate(); err != nil {
		return GetConsignmentTrackQuery{}, err
	}

	return GetConsignmentTrackQuery{
		consignmentID: consignmentID,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// ConsignmentID returns the consignment whose track is requested.
func (q GetConsignmentTrackQuery) ConsignmentID() kernel.UUID {
	return q.consignmentID
}

// Validate ensures the query was created through the constructor.
func (q GetConsignmentTrackQuery) Validate() error {
	return q.guard.Validate(ErrGetConsignmentTrackQueryIsNotConstructed)
}

// GetConsignmentTrackQueryResponse is one point of the delivery track.
type GetConsignmentTrackQueryResponse struct {
	DriverID   kernel.UUID
	Latitude   float64
	Longitude  float64
	Speed      *float64
	Heading    *float64
	ReportedAt time.Time
}
