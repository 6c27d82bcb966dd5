// Package restore re-establishes reminders after a local-state loss, e.g. a
// reinstall that wiped the device while the remote records survived.
package restore

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/yctseng/remindkit/internal/errors"
	"github.com/yctseng/remindkit/internal/logging"
	"github.com/yctseng/remindkit/internal/models"
	"github.com/yctseng/remindkit/internal/notify"
	"github.com/yctseng/remindkit/internal/trigger"
)

// FlagStore holds the durable restoration flag. The flag is one-way by
// intent: once observed true and consumed, exactly one successful restoration
// pass sets it false. Only this package writes it.
type FlagStore interface {
	// ShouldRestore reports whether a restoration pass is still owed.
	ShouldRestore(ctx context.Context) (bool, error)

	// SetShouldRestore updates the flag.
	SetShouldRestore(ctx context.Context, v bool) error
}

// Coordinator runs the restoration pass.
type Coordinator struct {
	flags   FlagStore
	config  notify.ConfigSource
	gateway notify.Gateway
	calc    *trigger.Calculator
}

// NewCoordinator creates a restoration Coordinator.
func NewCoordinator(flags FlagStore, config notify.ConfigSource, gateway notify.Gateway, calc *trigger.Calculator) *Coordinator {
	if calc == nil {
		calc = trigger.NewCalculator()
	}
	return &Coordinator{
		flags:   flags,
		config:  config,
		gateway: gateway,
		calc:    calc,
	}
}

// RestoreIfNeeded re-derives and re-schedules reminders for the given items
// when the restoration flag is set. With the flag unset it returns
// immediately and touches nothing else. Items whose trigger instant has
// passed or whose date no longer validates are dropped from the batch, never
// failing it. On success — including a fully-empty valid subset — the flag is
// set false exactly once. Any failure before that leaves the flag true, so
// the next invocation retries the whole pass from scratch: restoration is
// idempotent but not resumable mid-way.
func (c *Coordinator) RestoreIfNeeded(ctx context.Context, items []*models.Item) error {
	should, err := c.flags.ShouldRestore(ctx)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrRestoreFailed, "failed to read restoration flag", err)
	}
	if !should {
		return nil
	}

	log := logging.WithComponent("restore")

	cfg, err := c.config.Fetch(ctx)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrRestoreFailed, "failed to fetch notification config", err)
	}

	type pending struct {
		item *models.Item
		at   time.Time
	}

	valid := make([]pending, 0, len(items))
	for _, item := range items {
		at, err := c.calc.Compute(item.DeadlineTime(), cfg)
		if errors.Is(err, trigger.ErrPastTrigger) || apperrors.Is(err, apperrors.ErrInvalidDate) {
			log.WithField("item_id", item.ID.String()).Debug("dropping item from restoration batch")
			continue
		}
		if err != nil {
			return apperrors.Wrap(apperrors.ErrRestoreFailed, "trigger computation failed", err)
		}
		valid = append(valid, pending{item: item, at: at})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(notify.MaxInFlightSaves)
	for _, p := range valid {
		p := p
		g.Go(func() error {
			title, body := notify.ReminderMessage(p.item.Name, cfg.LeadDays)
			return c.gateway.Schedule(gctx, p.item.ID.String(), title, body, p.at)
		})
	}
	if err := g.Wait(); err != nil {
		return apperrors.Wrap(apperrors.ErrRestoreFailed, "failed to re-schedule reminders", err)
	}

	if err := c.flags.SetShouldRestore(ctx, false); err != nil {
		return apperrors.Wrap(apperrors.ErrRestoreFailed, "failed to clear restoration flag", err)
	}

	log.WithField("restored", len(valid)).WithField("total", len(items)).
		Info("restoration pass complete")
	return nil
}
