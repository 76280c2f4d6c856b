package core

// scheduler.go runs background maintenance.
//
// The audit retention job deletes audit entries older than the retention
// window. It runs once at start and then every CheckInterval until ctx is
// cancelled. A failed run is logged and retried on the next tick.

import (
	"context"
	"log/slog"
	"time"
)

// Retention defaults.
const (
	DefaultAuditRetentionDays = 365
	DefaultRetentionInterval  = 24 * time.Hour
)

// RetentionConfig holds configuration for the audit retention job.
type RetentionConfig struct {
	RetentionDays int           // Days to keep audit entries (default: 365)
	CheckInterval time.Duration // How often to run (default: 24h)
}

func (c RetentionConfig) withDefaults() RetentionConfig {
	if c.RetentionDays <= 0 {
		c.RetentionDays = DefaultAuditRetentionDays
	}
	if c.CheckInterval <= 0 {
		c.CheckInterval = DefaultRetentionInterval
	}
	return c
}

// StartAuditRetention purges old audit entries periodically.
// It blocks until ctx is cancelled.
func (s *Service) StartAuditRetention(ctx context.Context, cfg RetentionConfig) {
	cfg = cfg.withDefaults()
	slog.Info("audit retention started",
		"retention_days", cfg.RetentionDays,
		"interval", cfg.CheckInterval.String(),
	)

	s.runRetentionJob(ctx, cfg)

	ticker := time.NewTicker(cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("audit retention stopped")
			return
		case <-ticker.C:
			s.runRetentionJob(ctx, cfg)
		}
	}
}

// runRetentionJob performs one purge cycle and returns the rows removed.
func (s *Service) runRetentionJob(ctx context.Context, cfg RetentionConfig) int64 {
	start := time.Now()
	cutoff := s.now().AddDate(0, 0, -cfg.RetentionDays)

	purged, err := s.store.PurgeAudit(ctx, cutoff)
	if err != nil {
		slog.Error("audit purge failed", "error", err)
		return 0
	}

	slog.Info("purged audit entries",
		"entries_purged", purged,
		"cutoff", cutoff.Format(time.DateOnly),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return purged
}
