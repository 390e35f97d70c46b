// Package settlementrepo persists the cash-on-delivery reconciliation
// ledger. The unique index on consignment_id enforces at most one record
// per consignment at the storage level.
package settlementrepo

import (
	"time"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/ledger"

	"github.com/google/uuid"
)

// SettlementDTO is the database row of a settlement record.
type SettlementDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConsignmentID uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Outcome       int
	CODDue        int64
	CODCollected  int64
	ProofRef      *string `gorm:"type:text"`
	FailureReason *string `gorm:"type:text"`
	RecordedAt    time.Time
}

// TableName overrides GORM's default naming.
func (SettlementDTO) TableName() string {
	return "settlement_records"
}

func fromDomain(record *ledger.SettlementRecord) SettlementDTO {
	return SettlementDTO{
		ID:            record.ID().Bytes(),
		ConsignmentID: record.ConsignmentID().Bytes(),
		Outcome:       int(record.Outcome()),
		CODDue:        record.CODDue(),
		CODCollected:  record.CODCollected(),
		ProofRef:      record.ProofRef(),
		FailureReason: record.FailureReason(),
		RecordedAt:    record.RecordedAt(),
	}
}

func toDomain(dto SettlementDTO) (*ledger.SettlementRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	consignmentID, err := kernel.UUIDFromBytes(dto.ConsignmentID[:])
	if err != nil {
		return nil, err
	}

	return ledger.RestoreSettlementRecord(
		id,
		consignmentID,
		ledger.Outcome(dto.Outcome),
		dto.CODDue,
		dto.CODCollected,
		dto.ProofRef,
		dto.FailureReason,
		dto.RecordedAt,
	)
}
