package trackrepo

import (
	"context"

	"consignment/internal/core/domain/model/driver"
	"consignment/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormTrackRepository implements ports.TrackRepository.
type GormTrackRepository struct {
	db *gorm.DB
}

// NewGormTrackRepository creates the repository on the given connection.
// Track rows are insert-only; no aggregate tracking applies.
func NewGormTrackRepository(db *gorm.DB) *GormTrackRepository {
	return &GormTrackRepository{db: db}
}

// Append stores one track point.
func (r *GormTrackRepository) Append(ctx context.Context, point driver.TrackPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}

	dto := fromDomain(point)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByConsignment retrieves the track ordered by report time.
func (r *GormTrackRepository) GetByConsignment(
	ctx context.Context,
	consignmentID kernel.UUID,
) ([]driver.TrackPoint, error) {
	var dtos []TrackPointDTO
	err := r.db.WithContext(ctx).
		Where("consignment_id = ?", consignmentID.Bytes()).
		Order("reported_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	points := make([]driver.TrackPoint, 0, len(dtos))
	for _, dto := range dtos {
		point, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		points = append(points, point)
	}

	return points, nil
}
