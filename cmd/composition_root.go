package cmd

import (
	"log/slog"

	httpin "activation/internal/adapters/in/http"
	"activation/internal/adapters/out/fivesim"
	"activation/internal/adapters/out/postgres"
	"activation/internal/core/application/usecases/commands"
	"activation/internal/core/application/usecases/queries"
	"activation/internal/core/domain/model/kernel"
	"activation/internal/jobs"
	"activation/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	provider   *fivesim.Client
	registry   *prometheus.Registry
	metrics    *metrics.Metrics
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m, err := metrics.New(registry)
	if err != nil {
		return CompositionRoot{}, err
	}

	provider := fivesim.NewClient(configs.ProviderBaseURL, logger,
		fivesim.WithTimeouts(configs.ProviderBuyTimeout, configs.ProviderCheckTimeout),
		fivesim.WithMetrics(m),
	)

	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		provider:   provider,
		registry:   registry,
		metrics:    m,
		clock:      kernel.SystemClock{},
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateActivateOrderCommandHandler() commands.ActivateOrderCommandHandler {
	return commands.NewActivateOrderCommandHandler(c.orderUoWFactory(), c.provider, c.clock, c.logger)
}

func (c *CompositionRoot) CreateRequestReplacementCommandHandler() commands.RequestReplacementCommandHandler {
	return commands.NewRequestReplacementCommandHandler(c.orderUoWFactory(), c.provider, c.clock, c.logger)
}

func (c *CompositionRoot) CreatePollCodeCommandHandler() commands.PollCodeCommandHandler {
	return commands.NewPollCodeCommandHandler(c.orderUoWFactory(), c.provider, c.clock, c.logger)
}

func (c *CompositionRoot) CreateResetCodeCommandHandler() commands.ResetCodeCommandHandler {
	return commands.NewResetCodeCommandHandler(c.orderUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateCreateOrdersCommandHandler() commands.CreateOrdersCommandHandler {
	return commands.NewCreateOrdersCommandHandler(c.orderUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateDeleteOrdersCommandHandler() commands.DeleteOrdersCommandHandler {
	return commands.NewDeleteOrdersCommandHandler(c.orderUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.clock)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB, c.clock)
}

func (c *CompositionRoot) CreateCountOrdersByStageQueryHandler() queries.CountOrdersByStageQueryHandler {
	return queries.NewCountOrdersByStageQueryHandler(c.gormDB, c.clock)
}

// NewHTTPRouter builds the echo instance with every API route mounted.
func (c *CompositionRoot) NewHTTPRouter() (*echo.Echo, error) {
	server := httpin.NewServer(
		c.CreateActivateOrderCommandHandler(),
		c.CreateRequestReplacementCommandHandler(),
		c.CreatePollCodeCommandHandler(),
		c.CreateResetCodeCommandHandler(),
		c.CreateCreateOrdersCommandHandler(),
		c.CreateDeleteOrdersCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.configs.PublicBaseURL,
		c.logger,
	)

	return httpin.NewRouter(server, httpin.RouterConfig{
		AdminToken: c.configs.AdminToken,
		Metrics:    c.metrics,
		Gatherer:   c.registry,
		Logger:     c.logger,
	})
}

func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateCountOrdersByStageQueryHandler(), c.metrics, c.configs.StatsSchedule, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
