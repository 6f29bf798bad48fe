package core

// scheduler.go provides background job scheduling for maintenance tasks.
//
// Currently implements audit log pruning, which runs periodically to delete
// audit entries older than the retention window.
//
// The scheduler is long-running and context-aware for graceful shutdown.
// It logs progress and errors but does not fail the application if an
// individual prune fails.

import (
	"context"
	"log/slog"
	"time"
)

// PruneConfig holds configuration for the audit pruner.
// Zero fields fall back to defaults.
type PruneConfig struct {
	RetentionDays int           // Days to keep audit entries (default: 90)
	CheckInterval time.Duration // How often to run (default: 24h)
}

func (c PruneConfig) withDefaults() PruneConfig {
	if c.RetentionDays <= 0 {
		c.RetentionDays = 90
	}
	if c.CheckInterval <= 0 {
		c.CheckInterval = 24 * time.Hour
	}
	return c
}

// StartAuditPruner blocks, pruning old audit entries immediately and then
// every CheckInterval, until ctx is cancelled.
func (s *Service) StartAuditPruner(ctx context.Context, cfg PruneConfig) {
	cfg = cfg.withDefaults()
	slog.Info("audit pruner started",
		"retention_days", cfg.RetentionDays,
		"interval", cfg.CheckInterval,
	)

	s.runPruneJob(ctx, cfg)

	ticker := time.NewTicker(cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("audit pruner stopped")
			return
		case <-ticker.C:
			s.runPruneJob(ctx, cfg)
		}
	}
}

// PruneAudit deletes audit entries older than retentionDays and returns
// how many were removed.
func (s *Service) PruneAudit(ctx context.Context, retentionDays int) (int64, error) {
	cutoff := s.now().UTC().AddDate(0, 0, -retentionDays)
	return s.store.PruneAudit(ctx, cutoff)
}

func (s *Service) runPruneJob(ctx context.Context, cfg PruneConfig) {
	start := time.Now()
	pruned, err := s.PruneAudit(ctx, cfg.RetentionDays)
	if err != nil {
		slog.Error("audit prune failed", "error", err)
		return
	}
	slog.Info("pruned audit log entries",
		"entries_pruned", pruned,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
