package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "consignment/internal/adapters/out/postgres"
	"consignment/internal/adapters/out/postgres/consignmentrepo"
	"consignment/internal/adapters/out/postgres/driverrepo"
	"consignment/internal/adapters/out/postgres/settlementrepo"
	"consignment/internal/adapters/out/postgres/trackrepo"
	"consignment/internal/core/domain/model/consignment"
	"consignment/internal/core/domain/model/driver"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/ledger"
	"consignment/internal/core/ports"
	"consignment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM Unit of Work against a
// real PostgreSQL instance: the assignment handshake, terminal transitions
// with their settlement rows, the driver freshness queries and the order
// deduplication lookup all run through actual transactions here.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	// TranslateError turns driver-level unique violations into
	// gorm.ErrDuplicatedKey, which the settlement repository relies on.
	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&consignmentrepo.ConsignmentDTO{},
		&consignmentrepo.StopDTO{},
		&driverrepo.DriverDTO{},
		&trackrepo.TrackPointDTO{},
		&settlementrepo.SettlementDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE consignments, consignment_stops, drivers, track_points, settlement_records").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactoryCreatesIsolatedInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "factory should create separate instances")

	suite.NotNil(uow1.ConsignmentRepository())
	suite.NotNil(uow1.DriverRepository())
	suite.NotNil(uow2.TrackRepository())
	suite.NotNil(uow2.SettlementRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// Repeated Begin must not open a nested transaction.
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "commit without an active transaction must fail")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "rollback without an active transaction must fail")
}

// TestAssignmentHandshake verifies that binding a driver mutates the
// consignment and driver rows atomically within one transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestAssignmentHandshake() {
	ctx := context.Background()
	uow := suite.factory.Create()

	cons := createTestConsignment(suite.T(), 500)
	drv := createTestDriver(suite.T(), "Nikolai", time.Now().UTC())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.ConsignmentRepository().Add(ctx, cons)
	suite.Require().NoError(err)
	err = uow.DriverRepository().Add(ctx, drv)
	suite.Require().NoError(err)

	assignedAt := time.Now().UTC()
	err = cons.Assign(drv.ID(), assignedAt)
	suite.Require().NoError(err)
	err = drv.BindConsignment(cons.ID())
	suite.Require().NoError(err)

	err = uow.ConsignmentRepository().Update(ctx, cons)
	suite.Require().NoError(err)
	err = uow.DriverRepository().Update(ctx, drv)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	storedCons, err := newUow.ConsignmentRepository().Get(ctx, cons.ID())
	suite.Require().NoError(err)
	suite.Equal(consignment.Assigned, storedCons.Status())
	suite.Require().NotNil(storedCons.Driver())
	suite.True(drv.ID().IsEqual(*storedCons.Driver()))
	suite.Require().NotNil(storedCons.AssignedAt())

	storedDrv, err := newUow.DriverRepository().Get(ctx, drv.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(storedDrv.ActiveConsignment())
	suite.True(cons.ID().IsEqual(*storedDrv.ActiveConsignment()))
}

// TestRollbackDiscardsHandshake verifies a rolled-back assignment leaves
// neither side half-written.
func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscardsHandshake() {
	ctx := context.Background()
	uow := suite.factory.Create()

	cons := createTestConsignment(suite.T(), 0)
	drv := createTestDriver(suite.T(), "Vera", time.Now().UTC())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.ConsignmentRepository().Add(ctx, cons)
	suite.Require().NoError(err)
	err = uow.DriverRepository().Add(ctx, drv)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	_, err = newUow.ConsignmentRepository().Get(ctx, cons.ID())
	suite.Require().Error(err, "consignment must not exist after rollback")

	_, err = newUow.DriverRepository().Get(ctx, drv.ID())
	suite.Require().Error(err, "driver must not exist after rollback")
}

// TestDeliveryWorkflow drives one consignment from Pending through
// Delivered and verifies stops, the settlement row and the released driver.
func (suite *UnitOfWorkIntegrationTestSuite) TestDeliveryWorkflow() {
	ctx := context.Background()
	uow := suite.factory.Create()

	cons := createTestConsignment(suite.T(), 700)
	drv := createTestDriver(suite.T(), "Petr", time.Now().UTC())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.ConsignmentRepository().Add(ctx, cons)
	suite.Require().NoError(err)
	err = uow.DriverRepository().Add(ctx, drv)
	suite.Require().NoError(err)

	now := time.Now().UTC()
	suite.Require().NoError(cons.Assign(drv.ID(), now))
	suite.Require().NoError(drv.BindConsignment(cons.ID()))
	suite.Require().NoError(cons.ConfirmPickup(drv.ID(), now.Add(time.Minute)))
	suite.Require().NoError(cons.MarkInTransit())

	proof := "sig-0042"
	stop := cons.Stops()[0]
	err = cons.ConfirmStopDelivery(drv.ID(), stop.ID(), true, &proof, now.Add(10*time.Minute))
	suite.Require().NoError(err)

	drv.ReleaseConsignment()

	err = uow.ConsignmentRepository().Update(ctx, cons)
	suite.Require().NoError(err)
	err = uow.DriverRepository().Update(ctx, drv)
	suite.Require().NoError(err)

	record, err := ledger.NewSettlementRecord(
		kernel.NewUUID(), cons.ID(), ledger.OutcomeDelivered,
		cons.CODAmount(), cons.CODAmount(), cons.ProofRef(), nil, *cons.DeliveredAt())
	suite.Require().NoError(err)
	err = uow.SettlementRepository().Add(ctx, record)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	storedCons, err := newUow.ConsignmentRepository().Get(ctx, cons.ID())
	suite.Require().NoError(err)
	suite.Equal(consignment.Delivered, storedCons.Status())
	suite.True(storedCons.CODCollected())
	suite.Require().NotNil(storedCons.ProofRef())
	suite.Equal(proof, *storedCons.ProofRef())
	suite.Require().NotNil(storedCons.Driver(), "terminal consignment keeps its driver reference")
	for _, s := range storedCons.Stops() {
		suite.True(s.Completed(), "every stop should be completed")
	}

	storedDrv, err := newUow.DriverRepository().Get(ctx, drv.ID())
	suite.Require().NoError(err)
	suite.Nil(storedDrv.ActiveConsignment(), "driver should be released")

	storedRecord, err := newUow.SettlementRepository().GetByConsignment(ctx, cons.ID())
	suite.Require().NoError(err)
	suite.Equal(ledger.OutcomeDelivered, storedRecord.Outcome())
	suite.Equal(int64(700), storedRecord.CODDue())
	suite.Equal(int64(700), storedRecord.CODCollected())
}

// TestSettlementUniquePerConsignment verifies the ledger rejects a second
// row for the same consignment with a conflict error.
func (suite *UnitOfWorkIntegrationTestSuite) TestSettlementUniquePerConsignment() {
	ctx := context.Background()
	uow := suite.factory.Create()

	consignmentID := kernel.NewUUID()
	recordedAt := time.Now().UTC()

	first, err := ledger.NewSettlementRecord(
		kernel.NewUUID(), consignmentID, ledger.OutcomeDelivered, 300, 300, nil, nil, recordedAt)
	suite.Require().NoError(err)
	err = uow.SettlementRepository().Add(ctx, first)
	suite.Require().NoError(err)

	reason := "recipient refused"
	second, err := ledger.NewSettlementRecord(
		kernel.NewUUID(), consignmentID, ledger.OutcomeFailed, 300, 0, nil, &reason, recordedAt)
	suite.Require().NoError(err)
	err = uow.SettlementRepository().Add(ctx, second)
	suite.Require().Error(err, "second settlement row for one consignment must be rejected")
}

// TestGetAllFreeFresh verifies the dispatch candidate query filters on
// availability, binding and report freshness.
func (suite *UnitOfWorkIntegrationTestSuite) TestGetAllFreeFresh() {
	ctx := context.Background()
	uow := suite.factory.Create()

	now := time.Now().UTC()

	fresh := createTestDriver(suite.T(), "fresh", now.Add(-time.Minute))
	stale := createTestDriver(suite.T(), "stale", now.Add(-time.Hour))
	silent, err := driver.NewDriver(kernel.NewUUID(), "silent")
	suite.Require().NoError(err)
	parked := createTestDriver(suite.T(), "parked", now.Add(-time.Minute))
	parked.SetAvailable(false)
	bound := createTestDriver(suite.T(), "bound", now.Add(-time.Minute))
	suite.Require().NoError(bound.BindConsignment(kernel.NewUUID()))

	for _, d := range []*driver.Driver{fresh, stale, silent, parked, bound} {
		err := uow.DriverRepository().Add(ctx, d)
		suite.Require().NoError(err)
	}

	candidates, err := uow.DriverRepository().GetAllFreeFresh(ctx, now.Add(-5*time.Minute))
	suite.Require().NoError(err)
	suite.Require().Len(candidates, 1)
	suite.True(fresh.ID().IsEqual(candidates[0].ID()))
}

// TestGetReferencedOrderIDs verifies deduplication sees orders on live
// consignments but not on terminal ones.
func (suite *UnitOfWorkIntegrationTestSuite) TestGetReferencedOrderIDs() {
	ctx := context.Background()
	uow := suite.factory.Create()

	live := createTestConsignment(suite.T(), 0)
	err := uow.ConsignmentRepository().Add(ctx, live)
	suite.Require().NoError(err)

	cancelled := createTestConsignment(suite.T(), 0)
	suite.Require().NoError(cancelled.Cancel("sender request"))
	err = uow.ConsignmentRepository().Add(ctx, cancelled)
	suite.Require().NoError(err)

	liveOrderID := live.OrderIDs()[0]
	cancelledOrderID := cancelled.OrderIDs()[0]
	unknownOrderID := kernel.NewUUID()

	referenced, err := uow.ConsignmentRepository().GetReferencedOrderIDs(
		ctx, []kernel.UUID{liveOrderID, cancelledOrderID, unknownOrderID})
	suite.Require().NoError(err)

	suite.True(referenced[liveOrderID], "order on a live consignment is referenced")
	suite.False(referenced[cancelledOrderID], "order on a cancelled consignment is free again")
	suite.False(referenced[unknownOrderID])
}

// TestTrackAppendAndReplay verifies track points persist in report order
// and replay per consignment.
func (suite *UnitOfWorkIntegrationTestSuite) TestTrackAppendAndReplay() {
	ctx := context.Background()
	uow := suite.factory.Create()

	driverID := kernel.NewUUID()
	consignmentID := kernel.NewUUID()
	base := time.Now().UTC().Truncate(time.Microsecond)

	for i := 0; i < 3; i++ {
		point, err := kernel.NewGeoPoint(55.75+float64(i)*0.001, 37.61)
		suite.Require().NoError(err)
		sample, err := driver.NewLocationSample(point, base.Add(time.Duration(i)*time.Minute), nil, nil)
		suite.Require().NoError(err)
		tp, err := driver.NewTrackPoint(driverID, consignmentID, sample)
		suite.Require().NoError(err)

		err = uow.TrackRepository().Append(ctx, tp)
		suite.Require().NoError(err)
	}

	// A point for another consignment must not leak into the replay.
	otherPoint, err := kernel.NewGeoPoint(59.93, 30.31)
	suite.Require().NoError(err)
	otherSample, err := driver.NewLocationSample(otherPoint, base, nil, nil)
	suite.Require().NoError(err)
	other, err := driver.NewTrackPoint(driverID, kernel.NewUUID(), otherSample)
	suite.Require().NoError(err)
	err = uow.TrackRepository().Append(ctx, other)
	suite.Require().NoError(err)

	track, err := uow.TrackRepository().GetByConsignment(ctx, consignmentID)
	suite.Require().NoError(err)
	suite.Require().Len(track, 3)
	for i := 1; i < len(track); i++ {
		suite.False(track[i].Sample().ReportedAt().Before(track[i-1].Sample().ReportedAt()),
			"track points should replay in report order")
	}
}

// TestRepositoryIsolation verifies two units of work do not observe each
// other's uncommitted changes.
func (suite *UnitOfWorkIntegrationTestSuite) TestRepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	cons1 := createTestConsignment(suite.T(), 100)
	cons2 := createTestConsignment(suite.T(), 200)

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	suite.Require().NoError(uow1.ConsignmentRepository().Add(ctx, cons1))
	suite.Require().NoError(uow2.ConsignmentRepository().Add(ctx, cons2))

	_, err := uow1.ConsignmentRepository().Get(ctx, cons2.ID())
	suite.Require().Error(err, "uow1 must not see uow2's uncommitted consignment")

	_, err = uow2.ConsignmentRepository().Get(ctx, cons1.ID())
	suite.Require().Error(err, "uow2 must not see uow1's uncommitted consignment")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	newUow := suite.factory.Create()

	_, err = newUow.ConsignmentRepository().Get(ctx, cons1.ID())
	suite.Require().NoError(err, "committed consignment should persist")

	_, err = newUow.ConsignmentRepository().Get(ctx, cons2.ID())
	suite.Require().Error(err, "rolled-back consignment should not persist")
}

// TestWithoutTransaction verifies repositories auto-commit when no
// transaction was begun, which read-only callers rely on.
func (suite *UnitOfWorkIntegrationTestSuite) TestWithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	cons := createTestConsignment(suite.T(), 0)

	err := uow.ConsignmentRepository().Add(ctx, cons)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	stored, err := newUow.ConsignmentRepository().Get(ctx, cons.ID())
	suite.Require().NoError(err)
	suite.True(cons.ID().IsEqual(stored.ID()))
	suite.Require().Len(stored.Stops(), len(cons.Stops()))
}

// TestStatusQueries verifies the status-filtered listings used by the
// dispatch and reclaim passes.
func (suite *UnitOfWorkIntegrationTestSuite) TestStatusQueries() {
	ctx := context.Background()
	uow := suite.factory.Create()

	pending := createTestConsignment(suite.T(), 0)
	suite.Require().NoError(uow.ConsignmentRepository().Add(ctx, pending))

	assigned := createTestConsignment(suite.T(), 0)
	suite.Require().NoError(assigned.Assign(kernel.NewUUID(), time.Now().UTC()))
	suite.Require().NoError(uow.ConsignmentRepository().Add(ctx, assigned))

	cancelled := createTestConsignment(suite.T(), 0)
	suite.Require().NoError(cancelled.Cancel("warehouse closed"))
	suite.Require().NoError(uow.ConsignmentRepository().Add(ctx, cancelled))

	pendingList, err := uow.ConsignmentRepository().GetAllPending(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(pendingList, 1)
	suite.True(pending.ID().IsEqual(pendingList[0].ID()))

	assignedList, err := uow.ConsignmentRepository().GetAllAssigned(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(assignedList, 1)
	suite.True(assigned.ID().IsEqual(assignedList[0].ID()))

	activeList, err := uow.ConsignmentRepository().GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Len(activeList, 2, "cancelled consignments are not active")
}

// TestRowLockSerializesCancelAndPickup runs an operator cancel and a
// driver pickup against the same consignment in overlapping transactions.
// The pickup's read waits on the cancel's row lock and then observes the
// committed cancellation, so it conflicts instead of overwriting it.
func (suite *UnitOfWorkIntegrationTestSuite) TestRowLockSerializesCancelAndPickup() {
	ctx := context.Background()

	cons := createTestConsignment(suite.T(), 0)
	drv := createTestDriver(suite.T(), "Matvei", time.Now().UTC())

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.ConsignmentRepository().Add(ctx, cons))
	suite.Require().NoError(setup.DriverRepository().Add(ctx, drv))
	suite.Require().NoError(cons.Assign(drv.ID(), time.Now().UTC()))
	suite.Require().NoError(drv.BindConsignment(cons.ID()))
	suite.Require().NoError(setup.ConsignmentRepository().Update(ctx, cons))
	suite.Require().NoError(setup.DriverRepository().Update(ctx, drv))
	suite.Require().NoError(setup.Commit(ctx))

	cancelUow := suite.factory.Create()
	suite.Require().NoError(cancelUow.Begin(ctx))

	locked, err := cancelUow.ConsignmentRepository().Get(ctx, cons.ID())
	suite.Require().NoError(err)

	type pickupResult struct {
		status    consignment.Status
		pickupErr error
	}
	results := make(chan pickupResult, 1)

	go func() {
		pickupUow := suite.factory.Create()
		if beginErr := pickupUow.Begin(ctx); beginErr != nil {
			results <- pickupResult{pickupErr: beginErr}
			return
		}
		defer func() { _ = pickupUow.Rollback(ctx) }()

		// Blocks until the cancel transaction commits.
		reread, readErr := pickupUow.ConsignmentRepository().Get(ctx, cons.ID())
		if readErr != nil {
			results <- pickupResult{pickupErr: readErr}
			return
		}

		results <- pickupResult{
			status:    reread.Status(),
			pickupErr: reread.ConfirmPickup(drv.ID(), time.Now().UTC()),
		}
	}()

	// Let the pickup transaction reach the lock before the cancel commits.
	time.Sleep(200 * time.Millisecond)
	suite.Require().NoError(locked.Cancel("recipient withdrew the order"))
	suite.Require().NoError(cancelUow.ConsignmentRepository().Update(ctx, locked))
	suite.Require().NoError(cancelUow.Commit(ctx))

	select {
	case result := <-results:
		suite.Equal(consignment.Cancelled, result.status)
		suite.Require().ErrorIs(result.pickupErr, errs.ErrConflict)
	case <-time.After(10 * time.Second):
		suite.T().Fatal("pickup transaction never finished")
	}

	stored, err := suite.factory.Create().ConsignmentRepository().Get(ctx, cons.ID())
	suite.Require().NoError(err)
	suite.Equal(consignment.Cancelled, stored.Status())
}

// TestDispatchPoolSkipsLockedDrivers verifies overlapping matcher passes
// cannot select the same driver: pool rows held by one transaction are
// invisible to the next until it ends.
func (suite *UnitOfWorkIntegrationTestSuite) TestDispatchPoolSkipsLockedDrivers() {
	ctx := context.Background()
	cutoff := time.Now().UTC().Add(-5 * time.Minute)

	drv := createTestDriver(suite.T(), "Solo", time.Now().UTC())
	err := suite.factory.Create().DriverRepository().Add(ctx, drv)
	suite.Require().NoError(err)

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))

	pool, err := first.DriverRepository().GetAllFreeFresh(ctx, cutoff)
	suite.Require().NoError(err)
	suite.Require().Len(pool, 1)

	second := suite.factory.Create()
	suite.Require().NoError(second.Begin(ctx))

	contested, err := second.DriverRepository().GetAllFreeFresh(ctx, cutoff)
	suite.Require().NoError(err)
	suite.Empty(contested, "a driver held by another pass must not be offered twice")
	suite.Require().NoError(second.Rollback(ctx))

	suite.Require().NoError(first.Rollback(ctx))

	released, err := suite.factory.Create().DriverRepository().GetAllFreeFresh(ctx, cutoff)
	suite.Require().NoError(err)
	suite.Len(released, 1)
}

func createTestConsignment(t *testing.T, codAmount int64) *consignment.Consignment {
	t.Helper()

	pickup, err := kernel.NewGeoPoint(55.7558, 37.6173)
	if err != nil {
		t.Fatal(err)
	}
	dropoff, err := kernel.NewGeoPoint(55.7601, 37.6201)
	if err != nil {
		t.Fatal(err)
	}

	stop, err := consignment.NewDeliveryStop(kernel.NewUUID(), kernel.NewUUID(), "3 Dock Rd", dropoff)
	if err != nil {
		t.Fatal(err)
	}

	cons, err := consignment.NewConsignment(
		kernel.NewUUID(), "12 Wharf Lane", pickup,
		[]*consignment.DeliveryStop{stop}, codAmount, time.Now().UTC())
	if err != nil {
		t.Fatal(err)
	}
	return cons
}

func createTestDriver(t *testing.T, name string, reportedAt time.Time) *driver.Driver {
	t.Helper()

	drv, err := driver.NewDriver(kernel.NewUUID(), name)
	if err != nil {
		t.Fatal(err)
	}

	point, err := kernel.NewGeoPoint(55.7522, 37.6156)
	if err != nil {
		t.Fatal(err)
	}
	sample, err := driver.NewLocationSample(point, reportedAt, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := drv.ReportLocation(sample); err != nil {
		t.Fatal(err)
	}
	return drv
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
