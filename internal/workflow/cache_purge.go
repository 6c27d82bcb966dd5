package workflow

import (
	"context"

	"github.com/yctseng/remindkit/internal/logging"
)

// CachePurge clears the device-local caches without touching remote state:
// cached items, the date/time configuration, the recent-search history, and
// the pending notifications for the purged items.
type CachePurge struct {
	local         LocalStore
	notifications Canceller
}

// NewCachePurge creates the cache-purge pipeline.
func NewCachePurge(local LocalStore, notifications Canceller) *CachePurge {
	return &CachePurge{
		local:         local,
		notifications: notifications,
	}
}

// Run executes the purge steps in strict order:
//
//  1. delete cached items, collecting affected ids
//  2. delete the cached date/time configuration
//  3. delete the cached recent-search history
//  4. cancel notifications for the ids from step 1 (fire-and-forget)
//
// The first failing step aborts the rest; completed steps are not undone.
func (w *CachePurge) Run(ctx context.Context) error {
	log := logging.WithComponent("workflow.cache_purge")

	ids, err := w.local.PurgeItems(ctx)
	if err != nil {
		return abort("cache purge", "item purge", err)
	}

	if err := w.local.DeleteConfig(ctx); err != nil {
		return abort("cache purge", "config delete", err)
	}

	if err := w.local.ClearSearches(ctx); err != nil {
		return abort("cache purge", "search history clear", err)
	}

	if len(ids) > 0 {
		w.notifications.Cancel(ctx, ids)
	}

	log.WithField("purged_items", len(ids)).Info("cache purge complete")
	return nil
}
