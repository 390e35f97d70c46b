package driverrepo

import (
	"context"
	"errors"
	"time"

	"consignment/internal/core/domain/model/driver"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDriverRepository implements ports.DriverRepository.
type GormDriverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker records aggregates touched inside the unit of work.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDriverRepository creates the repository on the given connection.
func NewGormDriverRepository(db *gorm.DB, tracker aggregateTracker) *GormDriverRepository {
	return &GormDriverRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new driver.
func (r *GormDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing driver. Save rather than Updates: the
// active-consignment binding and the sample fields must persist their
// transitions back to NULL.
func (r *GormDriverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a driver by ID. Inside a transaction the row stays locked
// until commit, protecting the binding against concurrent writers.
func (r *GormDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	var dto DriverDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundErrorWithCause("driverId", id.String(), err)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllFreeFresh retrieves the dispatchable pool: available, unbound and
// reported at or after the cutoff. Drivers that never reported are
// excluded; freshness requires a position. Rows locked by another
// transaction are skipped, so overlapping matcher passes never select the
// same driver.
func (r *GormDriverRepository) GetAllFreeFresh(ctx context.Context, cutoff time.Time) ([]*driver.Driver, error) {
	var dtos []DriverDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{
			Strength: clause.LockingStrengthUpdate,
			Options:  clause.LockingOptionsSkipLocked,
		}).
		Where("available AND active_consignment_id IS NULL").
		Where("last_reported_at >= ?", cutoff).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	drivers := make([]*driver.Driver, 0, len(dtos))
	for _, dto := range dtos {
		drv, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		drivers = append(drivers, drv)
	}

	return drivers, nil
}
