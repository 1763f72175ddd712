package jobs

import (
	"context"
	"log/slog"

	"autoimport/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// PaymentReconciliationJob periodically re-verifies pending payments with the
// payment provider. It catches transactions whose confirmation webhook never
// arrived, settling or failing them and advancing the workflow where the
// deposit came through.
type PaymentReconciliationJob struct {
	handler  commands.ReconcilePaymentsCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPaymentReconciliationJob creates a job that runs reconciliation on the
// given cron schedule (six-field expression, seconds included).
func NewPaymentReconciliationJob(
	handler commands.ReconcilePaymentsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *PaymentReconciliationJob {
	return &PaymentReconciliationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "payment_reconciliation_job"),
	}
}

// Start begins the reconciliation job on its schedule.
func (j *PaymentReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewReconcilePaymentsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Payment reconciliation job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Payment reconciliation job started", "schedule", j.schedule)
	return nil
}

// Stop stops the reconciliation job.
func (j *PaymentReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Payment reconciliation job stopped")
}
