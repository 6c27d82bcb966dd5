// Package notify manages the notification lifecycle for deadline-tracked
// items: computing trigger instants, scheduling and cancelling reminders
// through the external notification gateway, and bulk rebalancing when the
// account's reminder configuration changes.
package notify

import (
	"context"
	"time"

	"github.com/yctseng/remindkit/internal/models"
)

// Gateway is the external scheduling capability (the OS-level notification
// scheduler). Cancel is best-effort: it takes no error return because callers
// must never gate their own success on it.
type Gateway interface {
	// Schedule registers a notification to fire at the given instant.
	Schedule(ctx context.Context, itemID, title, body string, at time.Time) error

	// Cancel removes any pending notifications for the given item ids.
	Cancel(ctx context.Context, itemIDs []string)
}

// ConfigSource provides the account's reminder configuration.
type ConfigSource interface {
	// Fetch returns the current notification configuration.
	Fetch(ctx context.Context) (models.NotificationConfig, error)
}

// ScheduledNotification describes one reminder handed to the gateway. It is
// ephemeral: nothing in this subsystem persists it.
type ScheduledNotification struct {
	ItemID string
	Title  string
	Body   string
	At     time.Time
}
