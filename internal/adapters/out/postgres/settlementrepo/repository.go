package settlementrepo

import (
	"context"
	"errors"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/ledger"
	"consignment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSettlementRepository implements ports.SettlementRepository.
type GormSettlementRepository struct {
	db *gorm.DB
}

// NewGormSettlementRepository creates the repository on the given
// connection. Ledger rows are write-once; no update path exists.
func NewGormSettlementRepository(db *gorm.DB) *GormSettlementRepository {
	return &GormSettlementRepository{db: db}
}

// Add persists a settlement record. A duplicate consignment violates the
// unique index and surfaces as a conflict.
func (r *GormSettlementRepository) Add(ctx context.Context, record *ledger.SettlementRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause(
				"consignment "+record.ConsignmentID().String()+" is already settled", err)
		}
		return err
	}

	return nil
}

// GetByConsignment retrieves the settlement record of a consignment.
func (r *GormSettlementRepository) GetByConsignment(
	ctx context.Context,
	consignmentID kernel.UUID,
) (*ledger.SettlementRecord, error) {
	var dto SettlementDTO
	err := r.db.WithContext(ctx).
		First(&dto, "consignment_id = ?", consignmentID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundErrorWithCause(
				"consignmentId", consignmentID.String(), err)
		}
		return nil, err
	}

	return toDomain(dto)
}
