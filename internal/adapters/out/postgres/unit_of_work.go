// Package postgres provides the GORM-based Unit of Work holding every
// repository of the engine. One instance backs one business transaction:
// the assignment handshake, a terminal transition with its ledger row, a
// location report with its track append. Repositories handed out while a
// transaction is open run inside it; without one they fall back to the
// main connection.
//
// Each command execution gets a fresh instance from the factory, so
// concurrent handlers never share transactional state. Single-row reads
// inside a transaction take a FOR UPDATE lock, so the status a handler
// re-checks after reading holds until commit; concurrent transitions on
// the same consignment serialize instead of overwriting each other.
// Aggregates touched through the repositories are tracked for post-commit
// processing, for example publishing status events.
package postgres

import (
	"context"

	"consignment/internal/adapters/out/postgres/consignmentrepo"
	"consignment/internal/adapters/out/postgres/driverrepo"
	"consignment/internal/adapters/out/postgres/settlementrepo"
	"consignment/internal/adapters/out/postgres/trackrepo"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates isolated UnitOfWork instances over one
// shared GORM connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates the factory.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction across the
// consignment, driver, track and settlement repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling Begin on an instance that already
// holds one is a no-op; nested transactions are never created.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes the transaction. The instance cannot be reused after.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. Rolling back without an active
// transaction returns gorm.ErrInvalidTransaction, which deferred cleanup
// after a successful commit deliberately ignores.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// ConsignmentRepository returns the consignment repository bound to the
// current transaction.
func (uow *GormUnitOfWork) ConsignmentRepository() ports.ConsignmentRepository {
	return consignmentrepo.NewGormConsignmentRepository(uow.conn(), uow)
}

// DriverRepository returns the driver repository bound to the current
// transaction.
func (uow *GormUnitOfWork) DriverRepository() ports.DriverRepository {
	return driverrepo.NewGormDriverRepository(uow.conn(), uow)
}

// TrackRepository returns the track repository bound to the current
// transaction.
func (uow *GormUnitOfWork) TrackRepository() ports.TrackRepository {
	return trackrepo.NewGormTrackRepository(uow.conn())
}

// SettlementRepository returns the settlement repository bound to the
// current transaction.
func (uow *GormUnitOfWork) SettlementRepository() ports.SettlementRepository {
	return settlementrepo.NewGormSettlementRepository(uow.conn())
}

// TrackAggregate registers an aggregate as modified within this unit of
// work. Repositories call it on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
