package cmd

import (
	"fmt"
	"log/slog"
	"os"

	httpin "autoimport/internal/adapters/in/http"
	"autoimport/internal/adapters/out/notifier"
	"autoimport/internal/adapters/out/paygate"
	"autoimport/internal/adapters/out/postgres"
	"autoimport/internal/adapters/out/postgres/auditrepo"
	"autoimport/internal/core/application/usecases/commands"
	"autoimport/internal/core/application/usecases/queries"
	"autoimport/internal/core/domain/model/kernel"
	"autoimport/internal/core/domain/model/order"
	"autoimport/internal/core/domain/model/pricing"
	"autoimport/internal/jobs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	logger        *slog.Logger
	pricingConfig pricing.Config
	systemActor   order.Actor

	paymentProvider *paygate.SandboxProvider
	auditLogger     *auditrepo.GormAuditLogger
	buyerNotifier   *notifier.LogNotifier
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	pricingConfig := pricing.DefaultConfig()
	if config.ExchangeRateNgnPerUsd != "" {
		rate, err := decimal.NewFromString(config.ExchangeRateNgnPerUsd)
		if err != nil {
			return CompositionRoot{}, fmt.Errorf("invalid EXCHANGE_RATE_NGN_PER_USD: %w", err)
		}
		pricingConfig.ExchangeRateNgnPerUsd = rate
	}
	if err := pricingConfig.Validate(); err != nil {
		return CompositionRoot{}, fmt.Errorf("invalid pricing config: %w", err)
	}

	systemActorID, err := kernel.UUIDFromString(config.SystemActorID)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("invalid SYSTEM_ACTOR_ID: %w", err)
	}
	systemActor, err := order.NewActor(systemActorID, order.RoleAdmin)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:          config,
		gormDB:          gormDB,
		uowFactory:      *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:          logger,
		pricingConfig:   pricingConfig,
		systemActor:     systemActor,
		paymentProvider: paygate.NewSandboxProvider(config.PaymentGateBaseURL),
		auditLogger:     auditrepo.NewGormAuditLogger(gormDB),
		buyerNotifier:   notifier.NewLogNotifier(logger),
	}, nil
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateCreateImportRequestCommandHandler() commands.CreateImportRequestCommandHandler {
	return commands.NewCreateImportRequestCommandHandler(c.orderUoWFactory(), c.pricingConfig)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.auditLogger, c.buyerNotifier)
}

func (c *CompositionRoot) CreateInitiatePaymentCommandHandler() commands.InitiatePaymentCommandHandler {
	return commands.NewInitiatePaymentCommandHandler(c.orderUoWFactory(), c.paymentProvider)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(
		c.orderUoWFactory(), c.paymentProvider, c.auditLogger, c.buyerNotifier, c.systemActor)
}

func (c *CompositionRoot) CreateReconcilePaymentsCommandHandler() commands.ReconcilePaymentsCommandHandler {
	return commands.NewReconcilePaymentsCommandHandler(
		c.orderUoWFactory(), c.paymentProvider, c.auditLogger, c.buyerNotifier, c.systemActor)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateImportRequestCommandHandler(),
		c.CreateTransitionOrderCommandHandler(),
		c.CreateInitiatePaymentCommandHandler(),
		c.CreateConfirmPaymentCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetOrdersQueryHandler(),
		c.pricingConfig,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateReconcilePaymentsCommandHandler(),
		c.config.ReconcileCronSchedule,
		c.logger,
	)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
