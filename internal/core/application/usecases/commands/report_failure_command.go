package commands

import (
	"errors"
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/pkg/errs"
	"consignment/internal/pkg/guard"
)

var ErrReportFailureCommandIsNotConstructed = errors.New(
	"ReportFailureCommand must be created via NewReportFailureCommand constructor",
)

// ReportFailureCommand records a driver-reported delivery failure together
// with any cash collected at the stops completed before the failure.
type ReportFailureCommand struct {
	consignmentID kernel.UUID
	driverID      kernel.UUID
	reason        string
	codCollected  int64
	at            time.Time

	guard guard.ConstructorGuard
}

// NewReportFailureCommand creates the command. The reason is mandatory;
// codCollected is the partial amount already in the driver's hands, zero
// when nothing was collected.
func NewReportFailureCommand(
	consignmentID kernel.UUID,
	driverID kernel.UUID,
	reason string,
	codCollected int64,
	at time.Time,
) (ReportFailureCommand, error) {
	if err := errors.Join(consignmentID.Validate(), driverID.Validate()); err != nil {
		return ReportFailureCommand{}, err
	}

	if reason == "" {
		return ReportFailureCommand{}, errs.NewValueIsRequiredError("reason")
	}

	if codCollected < 0 {
		return ReportFailureCommand{}, errs.NewValueIsInvalidError("codCollected")
	}

	return ReportFailureCommand{
		consignmentID: consignmentID,
		driverID:      driverID,
		reason:        reason,
		codCollected:  codCollected,
		at:            at,

		guard: guard.NewConstructorGuard(),
	}, nil
}

// ConsignmentID returns the failing consignment.
func (c ReportFailureCommand) ConsignmentID() kernel.UUID {
	return c.consignmentID
}

// DriverID returns the reporting driver.
func (c ReportFailureCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Reason returns the failure reason.
func (c ReportFailureCommand) Reason() string {
	return c.reason
}

// CODCollected returns the partially collected cash in minor units.
func (c ReportFailureCommand) CODCollected() int64 {
	return c.codCollected
}

// At returns when the failure was reported.
func (c ReportFailureCommand) At() time.Time {
	return c.at
}

// Validate ensures the command was created through the constructor.
func (c ReportFailureCommand) Validate() error {
	return c.guard.Validate(ErrReportFailureCommandIsNotConstructed)
}
