package artifact

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Janitor enforces the retention window: on a cron schedule it sweeps
// artifacts older than the window out of the store. Pipelines do not depend
// on it (they release their own inputs); it only bounds how long outputs
// stay downloadable.
type Janitor struct {
	cron      *cron.Cron
	store     *Store
	retention time.Duration
	schedule  string
	logger    *slog.Logger
}

// NewJanitor creates a janitor for the given store and retention window.
func NewJanitor(store *Store, retention time.Duration, schedule string, logger *slog.Logger) *Janitor {
	return &Janitor{
		cron:      cron.New(),
		store:     store,
		retention: retention,
		schedule:  schedule,
		logger:    logger,
	}
}

// Start registers the sweep job and starts the cron scheduler.
func (j *Janitor) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.sweep); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", j.schedule, err)
	}
	j.cron.Start()
	j.logger.Info("retention janitor started", "schedule", j.schedule, "retention", j.retention.String())
	return nil
}

// Stop gracefully stops the cron scheduler.
func (j *Janitor) Stop() {
	j.cron.Stop()
	j.logger.Info("retention janitor stopped")
}

func (j *Janitor) sweep() {
	cutoff := time.Now().Add(-j.retention)
	removed, err := j.store.SweepOlderThan(cutoff)
	if err != nil {
		j.logger.Warn("artifact sweep failed", "error", err)
		return
	}
	if removed > 0 {
		j.logger.Info("swept expired artifacts", "removed", removed, "cutoff", cutoff.Format(time.RFC3339))
	}
}
