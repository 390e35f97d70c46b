package driver

import (
	"errors"
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/pkg/errs"
)

// ErrTrackPointIsNotConstructed is returned when using a zero-value TrackPoint.
var ErrTrackPointIsNotConstructed = errors.New(
	"TrackPoint must be created via NewTrackPoint constructor")

// TrackPoint is one append-only entry of a delivery track: where a driver
// was while carrying a specific consignment. Points are recorded only
// between pickup and the terminal transition.
type TrackPoint struct {
	driverID      kernel.UUID
	consignmentID kernel.UUID
	sample        LocationSample

	isConstructed bool
}

// NewTrackPoint creates a track entry from an accepted location sample.
func NewTrackPoint(
	driverID kernel.UUID,
	consignmentID kernel.UUID,
	sample LocationSample,
) (TrackPoint, error) {
	if err := errors.Join(driverID.Validate(), consignmentID.Validate(), sample.Validate()); err != nil {
		return TrackPoint{}, err
	}

	return TrackPoint{
		driverID:      driverID,
		consignmentID: consignmentID,
		sample:        sample,

		isConstructed: true,
	}, nil
}

// Validate ensures the point was created through the constructor.
func (p TrackPoint) Validate() error {
	if !p.isConstructed {
		return errs.NewValueIsRequiredErrorWithCause("trackPoint", ErrTrackPointIsNotConstructed)
	}
	return nil
}

// DriverID returns the reporting driver.
func (p TrackPoint) DriverID() kernel.UUID {
	return p.driverID
}

// ConsignmentID returns the consignment the point belongs to.
func (p TrackPoint) ConsignmentID() kernel.UUID {
	return p.consignmentID
}

// Sample returns the recorded location sample.
func (p TrackPoint) Sample() LocationSample {
	return p.sample
}

// RecordedAt returns the sample's report time.
func (p TrackPoint) RecordedAt() time.Time {
	return p.sample.ReportedAt()
}
