package driver

import (
	"errors"
	"fmt"
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/pkg/errs"
	"consignment/internal/pkg/guard"
)

// ErrLocationSampleIsNotConstructed is returned when using a zero-value
// LocationSample instead of one built by NewLocationSample.
var ErrLocationSampleIsNotConstructed = errs.NewValueIsRequiredError(
	"location sample must be created via NewLocationSample constructor")

// LocationSample is an immutable value object carrying one position report
// from a driver client: coordinates, the client-side timestamp, and
// optional speed (m/s) and heading (degrees clockwise from north).
type LocationSample struct {
	point      kernel.GeoPoint
	reportedAt time.Time
	speed      *float64
	heading    *float64
	guard      guard.ConstructorGuard
}

// NewLocationSample creates a validated sample. The point must be a
// constructed GeoPoint, reportedAt must be non-zero, speed (when present)
// must be non-negative and heading (when present) must be within [0, 360).
func NewLocationSample(
	point kernel.GeoPoint,
	reportedAt time.Time,
	speed *float64,
	heading *float64,
) (LocationSample, error) {
	if err := point.Validate(); err != nil {
		return LocationSample{}, err
	}

	if reportedAt.IsZero() {
		return LocationSample{}, errs.NewValueIsRequiredError("reportedAt")
	}

	if speed != nil && *speed < 0 {
		return LocationSample{}, errs.NewValueIsInvalidErrorWithCause("speed",
			fmt.Errorf("%f is negative", *speed))
	}

	if heading != nil && (*heading < 0 || *heading >= 360) {
		return LocationSample{}, errs.NewValueIsOutOfRangeError("heading", *heading, 0, 360)
	}

	return LocationSample{
		point:      point,
		reportedAt: reportedAt,
		speed:      speed,
		heading:    heading,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the sample was created via NewLocationSample.
func (s LocationSample) Validate() error {
	return s.guard.Validate(ErrLocationSampleIsNotConstructed)
}

// Point returns the reported coordinates.
func (s LocationSample) Point() kernel.GeoPoint {
	return s.point
}

// ReportedAt returns the client-side report timestamp.
func (s LocationSample) ReportedAt() time.Time {
	return s.reportedAt
}

// Speed returns the reported speed in m/s, or nil when absent.
func (s LocationSample) Speed() *float64 {
	return s.speed
}

// Heading returns the reported heading in degrees, or nil when absent.
func (s LocationSample) Heading() *float64 {
	return s.heading
}

// IsNewerThan reports whether this sample supersedes other. Samples with
// equal timestamps do not supersede each other, so an exact duplicate
// delivery is dropped as stale.
func (s LocationSample) IsNewerThan(other LocationSample) (bool, error) {
	if err := errors.Join(s.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return s.reportedAt.After(other.reportedAt), nil
}

// AgeAt returns how old the sample is at the given instant.
func (s LocationSample) AgeAt(now time.Time) time.Duration {
	return now.Sub(s.reportedAt)
}
