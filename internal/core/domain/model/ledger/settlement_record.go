// Package ledger holds the cash-on-delivery reconciliation records. A
// settlement record is written once, in the same transaction as the
// consignment's terminal transition, and never changed afterwards.
package ledger

import (
	"errors"
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/pkg/errs"
)

// ErrSettlementRecordIsNotConstructed is returned when a SettlementRecord
// instance was created bypassing its constructors.
var ErrSettlementRecordIsNotConstructed = errors.New(
	"SettlementRecord must be created via NewSettlementRecord constructor")

// Outcome is the terminal result a settlement record reconciles.
type Outcome int

const (
	// OutcomeUnknown is the zero value and never valid.
	OutcomeUnknown Outcome = iota
	// OutcomeDelivered records a completed consignment.
	OutcomeDelivered
	// OutcomeFailed records a failed consignment, with or without partial
	// cash collection.
	OutcomeFailed
)

// Validate checks the outcome is one of the named values.
func (o Outcome) Validate() error {
	switch o {
	case OutcomeDelivered, OutcomeFailed:
		return nil
	default:
		return errs.NewValueIsInvalidError("outcome")
	}
}

func (o Outcome) String() string {
	switch o {
	case OutcomeDelivered:
		return "delivered"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SettlementRecord is the immutable reconciliation entry for a terminal
// consignment. At most one record exists per consignment; the unique
// constraint lives in storage, the invariants live here.
type SettlementRecord struct {
	id            kernel.UUID
	consignmentID kernel.UUID
	outcome       Outcome
	codDue        int64
	codCollected  int64
	proofRef      *string
	failureReason *string
	recordedAt    time.Time

	isConstructed bool
}

// NewSettlementRecord creates a reconciliation record for a terminal
// consignment.
//
// Invariants enforced here:
//   - a delivered consignment with cash due must have collected it in full
//   - collected cash never exceeds what was due
//   - a failed outcome must carry the failure reason
func NewSettlementRecord(
	id kernel.UUID,
	consignmentID kernel.UUID,
	outcome Outcome,
	codDue int64,
	codCollected int64,
	proofRef *string,
	failureReason *string,
	recordedAt time.Time,
) (*SettlementRecord, error) {
	if err := errors.Join(id.Validate(), consignmentID.Validate(), outcome.Validate()); err != nil {
		return nil, err
	}

	if codDue < 0 {
		return nil, errs.NewValueIsInvalidError("codDue")
	}

	if codCollected < 0 || codCollected > codDue {
		return nil, errs.NewValueIsOutOfRangeError("codCollected", codCollected, 0, codDue)
	}

	if outcome == OutcomeDelivered && codCollected != codDue {
		return nil, errs.NewValueIsInvalidError("codCollected")
	}

	if outcome == OutcomeFailed && (failureReason == nil || *failureReason == "") {
		return nil, errs.NewValueIsRequiredError("failureReason")
	}

	if recordedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("recordedAt")
	}

	return &SettlementRecord{
		id:            id,
		consignmentID: consignmentID,
		outcome:       outcome,
		codDue:        codDue,
		codCollected:  codCollected,
		proofRef:      proofRef,
		failureReason: failureReason,
		recordedAt:    recordedAt,

		isConstructed: true,
	}, nil
}

// RestoreSettlementRecord reconstructs a record from storage without
// re-running the business invariants. Repositories are the only intended
// caller.
func RestoreSettlementRecord(
	id kernel.UUID,
	consignmentID kernel.UUID,
	outcome Outcome,
	codDue int64,
	codCollected int64,
	proofRef *string,
	failureReason *string,
	recordedAt time.Time,
) (*SettlementRecord, error) {
	if err := errors.Join(id.Validate(), consignmentID.Validate(), outcome.Validate()); err != nil {
		return nil, err
	}

	return &SettlementRecord{
		id:            id,
		consignmentID: consignmentID,
		outcome:       outcome,
		codDue:        codDue,
		codCollected:  codCollected,
		proofRef:      proofRef,
		failureReason: failureReason,
		recordedAt:    recordedAt,

		isConstructed: true,
	}, nil
}

// Validate ensures the record was created through a constructor.
func (r *SettlementRecord) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrSettlementRecordIsNotConstructed
	}
	return nil
}

// ID returns the record's unique identifier.
func (r *SettlementRecord) ID() kernel.UUID {
	return r.id
}

// ConsignmentID returns the consignment this record settles.
func (r *SettlementRecord) ConsignmentID() kernel.UUID {
	return r.consignmentID
}

// Outcome returns the terminal result being reconciled.
func (r *SettlementRecord) Outcome() Outcome {
	return r.outcome
}

// CODDue returns the cash that was due on delivery, in minor units.
func (r *SettlementRecord) CODDue() int64 {
	return r.codDue
}

// CODCollected returns the cash actually collected, in minor units.
func (r *SettlementRecord) CODCollected() int64 {
	return r.codCollected
}

// ProofRef returns the delivery proof reference, if any.
func (r *SettlementRecord) ProofRef() *string {
	return r.proofRef
}

// FailureReason returns the failure reason for failed outcomes.
func (r *SettlementRecord) FailureReason() *string {
	return r.failureReason
}

// RecordedAt returns when the record was written.
func (r *SettlementRecord) RecordedAt() time.Time {
	return r.recordedAt
}
