package main

import (
	"fmt"
	"log/slog"
	"os"

	"consignment/cmd"
	httpin "consignment/internal/adapters/in/http"
	"consignment/internal/adapters/out/geo"
	"consignment/internal/adapters/out/orderfeed"
	"consignment/internal/adapters/out/postgres/consignmentrepo"
	"consignment/internal/adapters/out/postgres/driverrepo"
	"consignment/internal/adapters/out/postgres/settlementrepo"
	"consignment/internal/adapters/out/postgres/trackrepo"
	"consignment/internal/adapters/out/redispub"
	"consignment/internal/core/domain/services"
	"consignment/internal/core/ports"
	"consignment/internal/jobs"
	"consignment/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redis "github.com/redis/go-redis/v9"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(config)

	registry := prometheus.NewRegistry()
	metricsSet := metrics.NewSet(registry)

	aggregator, err := services.NewOrderAggregator(config.AggregationWindow, config.MaxStops)
	if err != nil {
		log.Fatalf("Invalid aggregation tunables: %v", err)
	}

	orderFeed, err := orderfeed.NewHTTPFeed(config.OrderFeedURL, logger)
	if err != nil {
		log.Fatalf("Invalid order feed configuration: %v", err)
	}

	var geoProvider ports.GeoProvider
	if config.GeoBaseURL != "" {
		provider, err := geo.NewORSProvider(config.GeoBaseURL, config.GeoAPIKey)
		if err != nil {
			log.Fatalf("Invalid geo configuration: %v", err)
		}
		geoProvider = provider
	}

	redisClient := redis.NewClient(&redis.Options{Addr: config.RedisAddr})
	defer redisClient.Close()

	publisher, err := redispub.NewPublisher(redisClient)
	if err != nil {
		log.Fatalf("Invalid redis configuration: %v", err)
	}

	root := cmd.NewCompositionRoot(gormDB, aggregator, orderFeed, geoProvider, publisher, logger)

	jobManager := jobs.NewJobManager(
		root.CreateAggregateOrdersCommandHandler(),
		root.CreateDispatchConsignmentsCommandHandler(),
		root.CreateReclaimUnreachableCommandHandler(),
		config.SampleStaleness,
		config.UnreachableTimeout,
		metricsSet,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	server := httpin.NewServer(
		root.CreateRegisterDriverCommandHandler(),
		root.CreateReportLocationCommandHandler(),
		root.CreateConfirmPickupCommandHandler(),
		root.CreateConfirmDeliveryCommandHandler(),
		root.CreateReportFailureCommandHandler(),
		root.CreateCancelConsignmentCommandHandler(),
		root.CreateGetActiveConsignmentsQueryHandler(),
		root.CreateGetConsignmentTrackQueryHandler(),
		metricsSet,
	)

	e := echo.New()
	server.RegisterRoutes(e, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%d", config.HTTPPort)))
}

// mustConnectDB opens the connection and applies schema migrations.
// TranslateError maps unique violations onto gorm.ErrDuplicatedKey, which
// the settlement ledger depends on.
func mustConnectDB(config cmd.Config) *gorm.DB {
	db, err := gorm.Open(gorm_postgres.Open(config.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&consignmentrepo.ConsignmentDTO{},
		&consignmentrepo.StopDTO{},
		&driverrepo.DriverDTO{},
		&trackrepo.TrackPointDTO{},
		&settlementrepo.SettlementDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	return db
}
