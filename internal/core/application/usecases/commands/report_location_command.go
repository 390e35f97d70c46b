package commands

import (
	"errors"
	"time"

	"consignment/internal/core/domain/model/driver"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/pkg/guard"
)

var ErrReportLocationCommandIsNotConstructed = errors.New(
	"ReportLocationCommand must be created via NewReportLocationCommand constructor",
)

// ReportLocationCommand carries one location sample posted by a driver's
// mobile client.
type ReportLocationCommand struct {
	driverID kernel.UUID
	sample   driver.LocationSample

	guard guard.ConstructorGuard
}

// NewReportLocationCommand creates the command from raw client input.
// Coordinate validation happens here, before any transaction opens.
func NewReportLocationCommand(
	driverID kernel.UUID,
	latitude float64,
	longitude float64,
	speed *float64,
	heading *float64,
	reportedAt time.Time,
) (ReportLocationCommand, error) {
	if err := driverID.Validate(); err != nil {
		return ReportLocationCommand{}, err
	}

	point, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return ReportLocationCommand{}, err
	}

	sample, err := driver.NewLocationSample(point, reportedAt, speed, heading)
	if err != nil {
		return ReportLocationCommand{}, err
	}

	return ReportLocationCommand{
		driverID: driverID,
		sample:   sample,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// DriverID returns the reporting driver.
func (c ReportLocationCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Sample returns the validated location sample.
func (c ReportLocationCommand) Sample() driver.LocationSample {
	return c.sample
}

// Validate ensures the command was created through the constructor.
func (c ReportLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportLocationCommandIsNotConstructed)
}
