package driver

import (
	"errors"
	"fmt"
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/pkg/errs"
)

// ErrDriverIsNotConstructed is returned when a Driver instance was not
// created through NewDriver or RestoreDriver.
var ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")

// Driver is the availability record the dispatch matcher selects from.
//
// Driver enforces these invariants:
//   - At most one active consignment at a time
//   - Location samples apply strictly in timestamp order
//   - Availability and binding only change through validated methods
//
// A driver record is created at onboarding, its position fields are written
// by the location tracker and its binding by the state machine; nothing
// else mutates it.
type Driver struct {
	// id is the unique identifier for the driver
	id kernel.UUID

	// name is the display name used by ops dashboards
	name string

	// available marks the driver as willing to take work
	available bool

	// lastSample is the most recent accepted position report (nil before
	// the first report)
	lastSample *LocationSample

	// activeConsignmentID is the in-progress consignment binding
	activeConsignmentID *kernel.UUID

	// isConstructed ensures the driver was created via a constructor
	isConstructed bool
}

// NewDriver creates an available driver with no position and no binding.
func NewDriver(id kernel.UUID, name string) (*Driver, error) {
	d := &Driver{
		available:     true,
		isConstructed: true,
	}

	if err := errors.Join(d.setID(id), d.setName(name)); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDriver reconstructs a driver from persistence.
func RestoreDriver(
	id kernel.UUID,
	name string,
	available bool,
	lastSample *LocationSample,
	activeConsignmentID *kernel.UUID,
) (*Driver, error) {
	d, err := NewDriver(id, name)
	if err != nil {
		return nil, err
	}

	if lastSample != nil {
		if err = lastSample.Validate(); err != nil {
			return nil, err
		}
	}

	if activeConsignmentID != nil {
		if err = activeConsignmentID.Validate(); err != nil {
			return nil, err
		}
	}

	d.available = available
	d.lastSample = lastSample
	d.activeConsignmentID = activeConsignmentID
	return d, nil
}

// Validate ensures the Driver was created through a constructor.
func (d *Driver) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDriverIsNotConstructed
	}
	return nil
}

// IsEqual compares two drivers by identifier.
func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the driver's display name.
func (d *Driver) Name() string {
	return d.name
}

// Available reports whether the driver is willing to take work. A driver
// may still be excluded from matching by staleness or an existing binding.
func (d *Driver) Available() bool {
	return d.available
}

// SetAvailable flips the dispatch pool membership flag. The reclaim pass
// parks unreachable drivers; the next accepted location report restores
// them. The flag never touches an existing binding.
func (d *Driver) SetAvailable(available bool) {
	d.available = available
}

// LastSample returns the most recent accepted position report, or nil if
// the driver has never reported.
func (d *Driver) LastSample() *LocationSample {
	return d.lastSample
}

// ActiveConsignment returns the bound consignment's identifier, or nil.
func (d *Driver) ActiveConsignment() *kernel.UUID {
	return d.activeConsignmentID
}

// HasActiveConsignment reports whether the driver holds in-progress work.
func (d *Driver) HasActiveConsignment() bool {
	return d.activeConsignmentID != nil
}

// ReportLocation applies a position report. Samples with a timestamp not
// strictly newer than the stored one are rejected with a StaleSampleError
// and leave the stored location unchanged; telemetry is delivered
// at-least-once and out of order, so this is a normal occurrence.
func (d *Driver) ReportLocation(sample LocationSample) error {
	if err := sample.Validate(); err != nil {
		return err
	}

	if d.lastSample != nil {
		newer, err := sample.IsNewerThan(*d.lastSample)
		if err != nil {
			return err
		}
		if !newer {
			return errs.NewStaleSampleErrorWithCause("reportedAt", fmt.Errorf(
				"sample at %s does not supersede stored sample at %s",
				sample.ReportedAt().Format(time.RFC3339),
				d.lastSample.ReportedAt().Format(time.RFC3339)))
		}
	}

	d.lastSample = &sample
	return nil
}

// IsFreshAt reports whether the driver's last sample is younger than the
// staleness threshold at the given instant. Drivers that never reported
// are never fresh.
func (d *Driver) IsFreshAt(now time.Time, staleness time.Duration) bool {
	if d.lastSample == nil {
		return false
	}
	return d.lastSample.AgeAt(now) < staleness
}

// BindConsignment records the driver's in-progress consignment. Binding
// while another consignment is active is a conflict: the matcher must
// never double-dispatch a driver. Rebinding the same consignment is a
// no-op to keep a retried matching pass harmless.
func (d *Driver) BindConsignment(consignmentID kernel.UUID) error {
	if err := consignmentID.Validate(); err != nil {
		return err
	}

	if d.activeConsignmentID != nil {
		if d.activeConsignmentID.IsEqual(consignmentID) {
			return nil
		}
		return errs.NewConflictError(fmt.Sprintf(
			"driver %s already has active consignment %s", d.id, d.activeConsignmentID))
	}

	d.activeConsignmentID = &consignmentID
	return nil
}

// ReleaseConsignment clears the binding when the consignment reaches a
// terminal status or reverts to Pending. Releasing an unbound driver is a
// no-op.
func (d *Driver) ReleaseConsignment() {
	d.activeConsignmentID = nil
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	d.name = name
	return nil
}
