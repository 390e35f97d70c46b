package commands_test

import (
	"context"
	"testing"
	"time"

	"consignment/internal/core/application/usecases/commands"
	"consignment/internal/core/domain/model/consignment"
	"consignment/internal/core/domain/model/driver"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/ledger"
	"consignment/internal/core/domain/model/orderref"
	"consignment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockConsignmentRepository struct{ mock.Mock }

func (m *MockConsignmentRepository) Add(ctx context.Context, aggregate *consignment.Consignment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockConsignmentRepository) Update(ctx context.Context, aggregate *consignment.Consignment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockConsignmentRepository) Get(ctx context.Context, id kernel.UUID) (*consignment.Consignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*consignment.Consignment), args.Error(1)
}

func (m *MockConsignmentRepository) GetAllPending(ctx context.Context) ([]*consignment.Consignment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*consignment.Consignment), args.Error(1)
}

func (m *MockConsignmentRepository) GetAllActive(ctx context.Context) ([]*consignment.Consignment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*consignment.Consignment), args.Error(1)
}

func (m *MockConsignmentRepository) GetAllAssigned(ctx context.Context) ([]*consignment.Consignment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*consignment.Consignment), args.Error(1)
}

func (m *MockConsignmentRepository) GetReferencedOrderIDs(
	ctx context.Context,
	orderIDs []kernel.UUID,
) (map[kernel.UUID]bool, error) {
	args := m.Called(ctx, orderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]bool), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetAllFreeFresh(ctx context.Context, cutoff time.Time) ([]*driver.Driver, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

type MockTrackRepository struct{ mock.Mock }

func (m *MockTrackRepository) Append(ctx context.Context, point driver.TrackPoint) error {
	args := m.Called(ctx, point)
	return args.Error(0)
}

func (m *MockTrackRepository) GetByConsignment(
	ctx context.Context,
	consignmentID kernel.UUID,
) ([]driver.TrackPoint, error) {
	args := m.Called(ctx, consignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]driver.TrackPoint), args.Error(1)
}

type MockSettlementRepository struct{ mock.Mock }

func (m *MockSettlementRepository) Add(ctx context.Context, record *ledger.SettlementRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockSettlementRepository) GetByConsignment(
	ctx context.Context,
	consignmentID kernel.UUID,
) (*ledger.SettlementRecord, error) {
	args := m.Called(ctx, consignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.SettlementRecord), args.Error(1)
}

// MockUnitOfWork satisfies every narrow unit-of-work view the handlers
// declare.
type MockUnitOfWork struct{ mock.Mock }

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) ConsignmentRepository() ports.ConsignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ConsignmentRepository)
}

func (m *MockUnitOfWork) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockUnitOfWork) TrackRepository() ports.TrackRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackRepository)
}

func (m *MockUnitOfWork) SettlementRepository() ports.SettlementRepository {
	args := m.Called()
	return args.Get(0).(ports.SettlementRepository)
}

type stubConsignmentUoWFactory struct{ uow *MockUnitOfWork }

func (f stubConsignmentUoWFactory) Create() commands.ConsignmentUoW { return f.uow }

type stubDriverUoWFactory struct{ uow *MockUnitOfWork }

func (f stubDriverUoWFactory) Create() commands.DriverUoW { return f.uow }

type stubDispatchUoWFactory struct{ uow *MockUnitOfWork }

func (f stubDispatchUoWFactory) Create() commands.DispatchUoW { return f.uow }

type stubTrackingUoWFactory struct{ uow *MockUnitOfWork }

func (f stubTrackingUoWFactory) Create() commands.TrackingUoW { return f.uow }

type stubTerminalUoWFactory struct{ uow *MockUnitOfWork }

func (f stubTerminalUoWFactory) Create() commands.TerminalUoW { return f.uow }

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishStatusChange(ctx context.Context, event ports.StatusChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) PublishLocation(ctx context.Context, event ports.LocationReportedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockOrderFeed struct{ mock.Mock }

func (m *MockOrderFeed) EligibleOrders(ctx context.Context) ([]orderref.OrderRef, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]orderref.OrderRef), args.Error(1)
}

// Aggregate builders shared across the handler tests.

func testPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return point
}

func pendingConsignment(t *testing.T, cod int64) *consignment.Consignment {
	t.Helper()
	stop, err := consignment.NewDeliveryStop(
		kernel.NewUUID(), kernel.NewUUID(), "3 Dock Rd", testPoint(t, 41.02, 29.01))
	require.NoError(t, err)

	cons, err := consignment.NewConsignment(
		kernel.NewUUID(), "W1", testPoint(t, 41.0, 29.0),
		[]*consignment.DeliveryStop{stop}, cod, time.Now())
	require.NoError(t, err)
	return cons
}

func assignedConsignment(t *testing.T, cod int64, driverID kernel.UUID) *consignment.Consignment {
	t.Helper()
	cons := pendingConsignment(t, cod)
	require.NoError(t, cons.Assign(driverID, time.Now()))
	return cons
}

func inTransitConsignment(t *testing.T, cod int64, driverID kernel.UUID) *consignment.Consignment {
	t.Helper()
	cons := assignedConsignment(t, cod, driverID)
	require.NoError(t, cons.ConfirmPickup(driverID, time.Now()))
	require.NoError(t, cons.MarkInTransit())
	return cons
}

func freshDriver(t *testing.T, name string, reportedAt time.Time) *driver.Driver {
	t.Helper()
	drv, err := driver.NewDriver(kernel.NewUUID(), name)
	require.NoError(t, err)

	sample, err := driver.NewLocationSample(testPoint(t, 41.001, 29.0), reportedAt, nil, nil)
	require.NoError(t, err)
	require.NoError(t, drv.ReportLocation(sample))
	return drv
}
