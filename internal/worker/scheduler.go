package worker

// scheduler.go
// Periodic background jobs on a cron scheduler:
//   - reorder scan: evaluates reorder alerts against current stock and logs
//     each one, with a Redis suppression window so a product that stays low
//     does not re-alert every tick
//   - DLQ watch: logs dead-letter queue depths so stuck jobs are visible

import (
	"context"
	"fmt"
	"time"

	"cloudledger/internal/config"
	"cloudledger/internal/dto"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const alertSuppressPrefix = "alerts:reorder:"

// AlertEvaluator is the slice of the alert service the scheduler needs.
// Declared here to keep the worker package free of service imports.
type AlertEvaluator interface {
	Evaluate(ctx context.Context) ([]dto.ReorderAlert, error)
}

// StartScheduler wires the periodic jobs and starts the cron loop.
// The returned cron can be stopped on shutdown.
func StartScheduler(ctx context.Context, cfg *config.Config, rdb *redis.Client, alerts AlertEvaluator) (*cron.Cron, error) {
	c := cron.New()

	reorderSpec := fmt.Sprintf("@every %dm", cfg.ReorderScanMinutes)
	if _, err := c.AddFunc(reorderSpec, func() {
		scanReorderAlerts(ctx, cfg, rdb, alerts)
	}); err != nil {
		return nil, fmt.Errorf("scheduler: reorder scan: %w", err)
	}

	if _, err := c.AddFunc("@every 5m", func() {
		watchDLQs(ctx, rdb)
	}); err != nil {
		return nil, fmt.Errorf("scheduler: dlq watch: %w", err)
	}

	c.Start()
	log.Info().Int("reorder_scan_minutes", cfg.ReorderScanMinutes).Msg("scheduler started")
	return c, nil
}

func scanReorderAlerts(ctx context.Context, cfg *config.Config, rdb *redis.Client, alerts AlertEvaluator) {
	found, err := alerts.Evaluate(ctx)
	if err != nil {
		log.Error().Err(err).Msg("reorder_scan: evaluation failed")
		return
	}

	for _, a := range found {
		key := alertSuppressPrefix + a.ProductID
		ttl := time.Duration(cfg.AlertSuppressMinutes) * time.Minute

		// SETNX: first scan to see the product low wins; repeats within the
		// suppression window are silent.
		set, err := rdb.SetNX(ctx, key, a.CurrentStock, ttl).Result()
		if err != nil {
			log.Error().Err(err).Str("product_id", a.ProductID).Msg("reorder_scan: suppress check failed")
			continue
		}
		if !set {
			continue
		}

		log.Warn().
			Str("product_id", a.ProductID).
			Str("product", a.Name).
			Int("current_stock", a.CurrentStock).
			Int("reorder_point", a.ReorderPoint).
			Msg("reorder_scan: product below reorder point")
	}
}

func watchDLQs(ctx context.Context, rdb *redis.Client) {
	for _, queue := range []string{QueueInvoice, QueueEmail} {
		n, err := DLQLength(ctx, rdb, queue)
		if err != nil {
			log.Error().Err(err).Str("queue", queue).Msg("dlq_watch: length check failed")
			continue
		}
		if n > 0 {
			log.Warn().Str("queue", queue).Int64("entries", n).Msg("dlq_watch: dead-lettered jobs pending")
		}
	}
}
