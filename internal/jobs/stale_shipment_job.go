package jobs

import (
	"context"
	"log/slog"
	"time"

	"delivery/internal/core/application/usecases/queries"
	"delivery/internal/core/domain/model/delivery"

	"github.com/robfig/cron/v3"
)

// StaleShipmentJob periodically scans for deliveries that have been SHIPPED
// longer than the configured threshold and flags them for operators. The job
// is read-only: a stuck shipment needs human follow-up, not an automatic
// state change.
type StaleShipmentJob struct {
	handler   queries.GetDeliveriesByStatusQueryHandler
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStaleShipmentJob creates the stale shipment monitor.
// threshold is how long a delivery may stay SHIPPED before it is reported.
func NewStaleShipmentJob(
	handler queries.GetDeliveriesByStatusQueryHandler,
	threshold time.Duration,
	logger *slog.Logger,
) *StaleShipmentJob {
	return &StaleShipmentJob{
		handler:   handler,
		threshold: threshold,
		cron:      cron.New(),
		logger:    logger.With("component", "stale_shipment_job"),
	}
}

// Start begins the monitor, scanning once per minute.
func (j *StaleShipmentJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		j.scan(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "stale shipment job started",
		"threshold", j.threshold.String())
	return nil
}

// Stop stops the monitor.
func (j *StaleShipmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "stale shipment job stopped")
}

func (j *StaleShipmentJob) scan(ctx context.Context) {
	query, err := queries.NewGetDeliveriesByStatusQuery(delivery.Shipped)
	if err != nil {
		j.logger.ErrorContext(ctx, "failed to build stale shipment query", "error", err)
		return
	}

	shipped, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "stale shipment scan failed", "error", err)
		return
	}

	cutoff := time.Now().Add(-j.threshold)
	for _, d := range shipped {
		if d.StartedAt == nil || d.StartedAt.After(cutoff) {
			continue
		}
		j.logger.WarnContext(ctx, "delivery shipped but not completed past threshold",
			"orderId", d.OrderID,
			"startedAt", d.StartedAt.Format(time.RFC3339),
			"carrier", d.Carrier,
			"trackingNumber", d.TrackingNumber,
			"traceId", d.TraceID)
	}
}
