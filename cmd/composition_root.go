package cmd

import (
	"log/slog"

	"consignment/internal/adapters/out/postgres"
	"consignment/internal/core/application/usecases/commands"
	"consignment/internal/core/application/usecases/queries"
	"consignment/internal/core/domain/services"
	"consignment/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires the unit-of-work factory, domain services and
// external adapters into command and query handlers.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	aggregator services.OrderAggregator
	matcher    services.DispatchMatcher
	orderFeed  ports.OrderFeed
	geo        ports.GeoProvider
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCompositionRoot creates the root. geo may be nil; dispatch then
// relies on straight-line distances alone.
func NewCompositionRoot(
	gormDB *gorm.DB,
	aggregator services.OrderAggregator,
	orderFeed ports.OrderFeed,
	geo ports.GeoProvider,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		aggregator: aggregator,
		matcher:    services.NewDispatchMatcher(),
		orderFeed:  orderFeed,
		geo:        geo,
		publisher:  publisher,
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateRegisterDriverCommandHandler() commands.RegisterDriverCommandHandler {
	var f commands.DriverUoWFactory = FuncDriverUoWFactory(func() commands.DriverUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterDriverCommandHandler(f)
}

func (c *CompositionRoot) CreateAggregateOrdersCommandHandler() commands.AggregateOrdersCommandHandler {
	var f commands.ConsignmentUoWFactory = FuncConsignmentUoWFactory(func() commands.ConsignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAggregateOrdersCommandHandler(f, c.orderFeed, c.aggregator)
}

func (c *CompositionRoot) CreateDispatchConsignmentsCommandHandler() commands.DispatchConsignmentsCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchConsignmentsCommandHandler(f, c.matcher, c.geo, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateReportLocationCommandHandler() commands.ReportLocationCommandHandler {
	var f commands.TrackingUoWFactory = FuncTrackingUoWFactory(func() commands.TrackingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportLocationCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateConfirmPickupCommandHandler() commands.ConfirmPickupCommandHandler {
	var f commands.ConsignmentUoWFactory = FuncConsignmentUoWFactory(func() commands.ConsignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmPickupCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	var f commands.TerminalUoWFactory = FuncTerminalUoWFactory(func() commands.TerminalUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmDeliveryCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateReportFailureCommandHandler() commands.ReportFailureCommandHandler {
	var f commands.TerminalUoWFactory = FuncTerminalUoWFactory(func() commands.TerminalUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReportFailureCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCancelConsignmentCommandHandler() commands.CancelConsignmentCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelConsignmentCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateReclaimUnreachableCommandHandler() commands.ReclaimUnreachableCommandHandler {
	var f commands.DispatchUoWFactory = FuncDispatchUoWFactory(func() commands.DispatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReclaimUnreachableCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetActiveConsignmentsQueryHandler() queries.GetActiveConsignmentsQueryHandler {
	return queries.NewGetActiveConsignmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetConsignmentTrackQueryHandler() queries.GetConsignmentTrackQueryHandler {
	return queries.NewGetConsignmentTrackQueryHandler(c.gormDB)
}

type FuncDriverUoWFactory func() commands.DriverUoW

func (f FuncDriverUoWFactory) Create() commands.DriverUoW {
	return f()
}

type FuncConsignmentUoWFactory func() commands.ConsignmentUoW

func (f FuncConsignmentUoWFactory) Create() commands.ConsignmentUoW {
	return f()
}

type FuncDispatchUoWFactory func() commands.DispatchUoW

func (f FuncDispatchUoWFactory) Create() commands.DispatchUoW {
	return f()
}

type FuncTrackingUoWFactory func() commands.TrackingUoW

func (f FuncTrackingUoWFactory) Create() commands.TrackingUoW {
	return f()
}

type FuncTerminalUoWFactory func() commands.TerminalUoW

func (f FuncTerminalUoWFactory) Create() commands.TerminalUoW {
	return f()
}
