package consignmentrepo

import (
	"context"
	"errors"

	"consignment/internal/core/domain/model/consignment"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormConsignmentRepository implements ports.ConsignmentRepository.
type GormConsignmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker records aggregates touched inside the unit of work.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormConsignmentRepository creates the repository on the given
// connection, usually the unit of work's transaction.
func NewGormConsignmentRepository(db *gorm.DB, tracker aggregateTracker) *GormConsignmentRepository {
	return &GormConsignmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new consignment with its stops.
func (r *GormConsignmentRepository) Add(ctx context.Context, aggregate *consignment.Consignment) error {
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

// Update saves an existing consignment. Stop rows are rewritten with the
// parent so completion flags persist.
func (r *GormConsignmentRepository) Update(ctx context.Context, aggregate *consignment.Consignment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a consignment with its stops in position order. Inside a
// transaction the row stays locked until commit, so the status a handler
// re-checks after Get cannot be overwritten by a concurrent transition.
func (r *GormConsignmentRepository) Get(ctx context.Context, id kernel.UUID) (*consignment.Consignment, error) {
	var dto ConsignmentDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Preload("Stops", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundErrorWithCause("consignmentId", id.String(), err)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPending retrieves pending consignments oldest-first.
func (r *GormConsignmentRepository) GetAllPending(ctx context.Context) ([]*consignment.Consignment, error) {
	return r.getAllByStatuses(ctx, []consignment.Status{consignment.Pending})
}

// GetAllAssigned retrieves assigned consignments oldest-first.
func (r *GormConsignmentRepository) GetAllAssigned(ctx context.Context) ([]*consignment.Consignment, error) {
	return r.getAllByStatuses(ctx, []consignment.Status{consignment.Assigned})
}

// GetAllActive retrieves every non-terminal consignment oldest-first.
func (r *GormConsignmentRepository) GetAllActive(ctx context.Context) ([]*consignment.Consignment, error) {
	return r.getAllByStatuses(ctx, []consignment.Status{
		consignment.Pending,
		consignment.Assigned,
		consignment.PickedUp,
		consignment.InTransit,
	})
}

// GetReferencedOrderIDs reports which of the given orders already sit on a
// live consignment.
func (r *GormConsignmentRepository) GetReferencedOrderIDs(
	ctx context.Context,
	orderIDs []kernel.UUID,
) (map[kernel.UUID]bool, error) {
	referenced := make(map[kernel.UUID]bool, len(orderIDs))
	if len(orderIDs) == 0 {
		return referenced, nil
	}

	raw := make([]uuid.UUID, 0, len(orderIDs))
	for _, id := range orderIDs {
		raw = append(raw, id.Bytes())
	}

	var rows []StopDTO
	err := r.db.WithContext(ctx).
		Joins("JOIN consignments c ON c.id = consignment_stops.consignment_id").
		Where("consignment_stops.order_id IN ?", raw).
		Where("c.status NOT IN ?", []int{
			int(consignment.Delivered),
			int(consignment.Failed),
			int(consignment.Cancelled),
		}).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		id, idErr := kernel.UUIDFromBytes(row.OrderID[:])
		if idErr != nil {
			return nil, idErr
		}
		referenced[id] = true
	}

	return referenced, nil
}

func (r *GormConsignmentRepository) getAllByStatuses(
	ctx context.Context,
	statuses []consignment.Status,
) ([]*consignment.Consignment, error) {
	values := make([]int, 0, len(statuses))
	for _, status := range statuses {
		values = append(values, int(status))
	}

	var dtos []ConsignmentDTO
	err := r.db.WithContext(ctx).
		Preload("Stops", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Where("status IN ?", values).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	consignments := make([]*consignment.Consignment, 0, len(dtos))
	for _, dto := range dtos {
		cons, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		consignments = append(consignments, cons)
	}

	return consignments, nil
}
