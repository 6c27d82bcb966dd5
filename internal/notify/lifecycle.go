package notify

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/yctseng/remindkit/internal/errors"
	"github.com/yctseng/remindkit/internal/logging"
	"github.com/yctseng/remindkit/internal/models"
	"github.com/yctseng/remindkit/internal/trigger"
)

// LifecycleCoordinator saves, replaces and removes the reminder for a single
// item.
type LifecycleCoordinator struct {
	gateway Gateway
	config  ConfigSource
	calc    *trigger.Calculator
}

// NewLifecycleCoordinator creates a LifecycleCoordinator.
func NewLifecycleCoordinator(gateway Gateway, config ConfigSource, calc *trigger.Calculator) *LifecycleCoordinator {
	if calc == nil {
		calc = trigger.NewCalculator()
	}
	return &LifecycleCoordinator{
		gateway: gateway,
		config:  config,
		calc:    calc,
	}
}

// Save computes the item's trigger instant and schedules its reminder.
// A past trigger instant is not an error: the reminder is silently dropped
// and Save returns nil without touching the gateway.
func (l *LifecycleCoordinator) Save(ctx context.Context, item *models.Item) error {
	cfg, err := l.config.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch notification config: %w", err)
	}

	instant, err := l.calc.Compute(item.DeadlineTime(), cfg)
	if errors.Is(err, trigger.ErrPastTrigger) {
		logging.WithComponent("notify.lifecycle").
			WithField("item_id", item.ID.String()).
			Debug("trigger instant already passed, skipping")
		return nil
	}
	if err != nil {
		return err
	}

	title, body := ReminderMessage(item.Name, cfg.LeadDays)
	if err := l.gateway.Schedule(ctx, item.ID.String(), title, body, instant); err != nil {
		return apperrors.Wrap(apperrors.ErrScheduleFailed,
			fmt.Sprintf("failed to schedule reminder for item %s", item.ID), err)
	}
	return nil
}

// Remove cancels the item's pending reminder. Cancellation is fire-and-forget;
// callers never observe an error from it.
func (l *LifecycleCoordinator) Remove(ctx context.Context, itemID models.UUID) {
	l.gateway.Cancel(ctx, []string{itemID.String()})
}

// Replace removes the item's existing reminder and then saves a new one.
// The removal is unconditional: if the subsequent save fails or skips, the
// old reminder is already gone and is not restored. That delete-then-insert
// behavior is deliberate and load-bearing for callers.
func (l *LifecycleCoordinator) Replace(ctx context.Context, item *models.Item) error {
	l.Remove(ctx, item.ID)
	return l.Save(ctx, item)
}

// ReminderMessage derives the deterministic notification title and body for
// an item name under the given lead time.
func ReminderMessage(name string, leadDays int) (title, body string) {
	title = name
	switch leadDays {
	case 0:
		body = fmt.Sprintf("%s's deadline is today", name)
	case 1:
		body = fmt.Sprintf("%s's deadline is in 1 day", name)
	default:
		body = fmt.Sprintf("%s's deadline is in %d days", name, leadDays)
	}
	return title, body
}
