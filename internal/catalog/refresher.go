package catalog

import (
	"context"
	"time"
)

// DefaultRefreshInterval is how often the category cache is reloaded when no
// usable interval is configured.
const DefaultRefreshInterval = 6 * time.Hour

// StartRefresher reloads the category cache every interval until ctx is
// cancelled. It blocks, so launch it in its own goroutine. A non-positive
// interval falls back to DefaultRefreshInterval.
func (r *Repository) StartRefresher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		r.logger.WithField("interval", interval).Warn("Invalid refresh interval, using default")
		interval = DefaultRefreshInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.logger.WithField("interval", interval).Info("Catalog refresher started")

	if err := r.LoadCategories(ctx); err != nil && ctx.Err() == nil {
		r.logger.Warn("Initial catalog load failed, retrying on next tick")
	}

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Catalog refresher stopped")
			return
		case <-ticker.C:
			// LoadCategories logs its own failures.
			_ = r.LoadCategories(ctx)
		}
	}
}
