package notify

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yctseng/remindkit/internal/logging"
	"github.com/yctseng/remindkit/internal/models"
)

// MaxInFlightSaves caps concurrent schedule calls during bulk operations.
// The cap protects the external scheduler from burst load when every item's
// reminder must be recomputed at once; it is fixed, not tunable.
const MaxInFlightSaves = 3

// Rebalancer recomputes and re-schedules reminders for an entire item
// collection, typically after the account's lead-time configuration changed.
type Rebalancer struct {
	lifecycle *LifecycleCoordinator
	gateway   Gateway
}

// NewRebalancer creates a Rebalancer sharing the lifecycle coordinator's
// gateway.
func NewRebalancer(lifecycle *LifecycleCoordinator, gateway Gateway) *Rebalancer {
	return &Rebalancer{
		lifecycle: lifecycle,
		gateway:   gateway,
	}
}

// Rebalance cancels every existing reminder for the collection in one call,
// then re-saves each item with at most MaxInFlightSaves schedule calls in
// flight. The first failing save fails the whole operation; reminders already
// scheduled before the failure remain scheduled.
func (r *Rebalancer) Rebalance(ctx context.Context, items []*models.Item) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID.String()
	}
	r.gateway.Cancel(ctx, ids)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxInFlightSaves)
	for _, item := range items {
		item := item
		g.Go(func() error {
			return r.lifecycle.Save(gctx, item)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("rebalance failed: %w", err)
	}

	logging.WithComponent("notify.rebalancer").
		WithField("items", len(items)).
		Info("rebalanced reminders")
	return nil
}
