package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apihttp "parcelflow/internal/adapters/in/http"
	"parcelflow/internal/adapters/out/inmemory"
	"parcelflow/internal/adapters/out/postgres"
	"parcelflow/internal/adapters/out/redisstream"
	"parcelflow/internal/core/application/agents"
	"parcelflow/internal/core/application/messages"
	"parcelflow/internal/core/application/usecases/commands"
	"parcelflow/internal/core/application/usecases/queries"
	"parcelflow/internal/core/domain/services"
	"parcelflow/internal/core/ports"
	"parcelflow/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Agent is the part of every agent the process needs to run it.
type Agent interface {
	Address() messages.Address
	Run(ctx context.Context) error
}

type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	redis      *redis.Client
	gormDB     *gorm.DB
	transport  ports.Transport
	uowFactory ports.UnitOfWorkFactory

	customer     *agents.Customer
	dispatcher   *agents.Dispatcher
	deliveryUnit *agents.DeliveryUnit
	routePlanner *agents.RoutePlanner
}

// NewCompositionRoot connects the configured transport and archive and builds the
// four agents on top of them.
func NewCompositionRoot(cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{cfg: cfg, logger: logger}

	if err := c.connectTransport(); err != nil {
		return nil, err
	}

	if err := c.connectArchive(); err != nil {
		return nil, errors.Join(err, c.Close())
	}

	if err := c.buildAgents(); err != nil {
		return nil, errors.Join(err, c.Close())
	}

	return c, nil
}

func (c *CompositionRoot) connectTransport() error {
	switch c.cfg.Transport {
	case TransportRedis:
		rdb, err := redisstream.NewClient(c.cfg.RedisURL)
		if err != nil {
			return err
		}
		c.redis = rdb

		tr, err := redisstream.NewTransport(rdb, redisstream.Config{}, c.logger)
		if err != nil {
			return err
		}
		c.transport = tr
	default:
		c.transport = inmemory.NewBus(0,
			messages.CustomerAddress,
			messages.DispatcherAddress,
			messages.DeliveryUnitAddress,
			messages.RoutePlannerAddress,
		)
	}

	c.logger.Info("Transport ready", "transport", c.cfg.Transport)
	return nil
}

func (c *CompositionRoot) connectArchive() error {
	if !c.cfg.UsesDatabase() {
		c.uowFactory = inmemory.NewArchive()
		c.logger.Info("Archive ready", "archive", "memory")
		return nil
	}

	dsn, err := c.cfg.Postgres().DSN()
	if err != nil {
		return fmt.Errorf("archive database: %w", err)
	}

	db, err := postgres.Open(dsn)
	if err != nil {
		return err
	}

	c.gormDB = db
	c.uowFactory = postgres.NewGormUnitOfWorkFactory(db)
	c.logger.Info("Archive ready", "archive", "postgres", "host", c.cfg.DBHost)
	return nil
}

func (c *CompositionRoot) buildAgents() error {
	var err error

	c.customer, err = agents.NewCustomer(agents.CustomerConfig{
		IdleTimeout: c.cfg.ReceiveTimeout,
	}, c.transport, c.logger)
	if err != nil {
		return err
	}

	c.dispatcher, err = agents.NewDispatcher(agents.DispatcherConfig{
		IdleTimeout: c.cfg.ReceiveTimeout,
	}, c.transport, c.logger)
	if err != nil {
		return err
	}

	traffic := services.ParseTrafficPolicy(c.cfg.TrafficOrders)
	c.deliveryUnit, err = agents.NewDeliveryUnit(agents.DeliveryUnitConfig{
		Traffic:     traffic,
		IdleTimeout: c.cfg.ReceiveTimeout,
	}, c.transport, c.logger)
	if err != nil {
		return err
	}
	c.logger.Info("Traffic policy", "flagged_orders", traffic.Flagged())

	c.routePlanner, err = agents.NewRoutePlanner(agents.RoutePlannerConfig{
		IdleTimeout: c.cfg.ReceiveTimeout,
	}, c.transport, c.logger)
	return err
}

// Agents returns every agent, each to be run on its own goroutine.
func (c *CompositionRoot) Agents() []Agent {
	return []Agent{c.customer, c.dispatcher, c.deliveryUnit, c.routePlanner}
}

func (c *CompositionRoot) CreateSubmitDeliveryRequestCommandHandler() commands.SubmitDeliveryRequestCommandHandler {
	return commands.NewSubmitDeliveryRequestCommandHandler(c.customer)
}

func (c *CompositionRoot) CreateArchiveConfirmedOrdersCommandHandler() commands.ArchiveConfirmedOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewArchiveConfirmedOrdersCommandHandler(c.dispatcher, f)
}

func (c *CompositionRoot) CreateGetTrackedOrdersQueryHandler() queries.GetTrackedOrdersQueryHandler {
	return queries.NewGetTrackedOrdersQueryHandler(c.dispatcher)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.dispatcher, c.uowFactory)
}

// CreateGetArchivedOrdersQueryHandler returns nil without an archive database.
func (c *CompositionRoot) CreateGetArchivedOrdersQueryHandler() *queries.GetArchivedOrdersQueryHandler {
	if c.gormDB == nil {
		return nil
	}
	h := queries.NewGetArchivedOrdersQueryHandler(c.gormDB)
	return &h
}

func (c *CompositionRoot) CreateHTTPServer() *apihttp.Server {
	return apihttp.NewServer(
		c.CreateSubmitDeliveryRequestCommandHandler(),
		c.CreateGetTrackedOrdersQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetArchivedOrdersQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	archiveJob := jobs.NewArchiveConfirmedOrdersJob(
		c.CreateArchiveConfirmedOrdersCommandHandler(),
		c.cfg.ArchiveSchedule,
		c.logger,
	)

	var demo *jobs.DemoScenario
	if c.cfg.DemoScenario {
		demo = jobs.NewDemoScenario(c.CreateSubmitDeliveryRequestCommandHandler(), c.cfg.DemoStagger, c.logger)
	}

	return jobs.NewJobManager(archiveJob, demo, c.logger)
}

// Close releases the Redis client and the database connection.
func (c *CompositionRoot) Close() error {
	var errList []error

	if c.redis != nil {
		errList = append(errList, c.redis.Close())
	}

	if c.gormDB != nil {
		if sqlDB, err := c.gormDB.DB(); err != nil {
			errList = append(errList, err)
		} else {
			errList = append(errList, sqlDB.Close())
		}
	}

	return errors.Join(errList...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
