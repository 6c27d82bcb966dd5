// Package remindkit is the notification-lifecycle and teardown-workflow
// library for deadline-tracked items. It computes when each item's reminder
// fires, keeps reminders in step with the item collection and the account's
// lead-time configuration, re-establishes reminders after a local-state loss,
// and runs the ordered account-deletion and cache-purge workflows. The remote
// document store, blob store, auth service and OS notification scheduler are
// consumed through narrow interfaces supplied by the caller.
package remindkit

import (
	"fmt"

	"github.com/yctseng/remindkit/internal/cache"
	"github.com/yctseng/remindkit/internal/notify"
	"github.com/yctseng/remindkit/internal/restore"
	"github.com/yctseng/remindkit/internal/save"
	"github.com/yctseng/remindkit/internal/trigger"
	"github.com/yctseng/remindkit/internal/workflow"
)

// Options holds the external capabilities and the local data directory.
type Options struct {
	// DataDir is where the local sqlite cache lives.
	DataDir string

	// Gateway is the OS-level notification scheduler.
	Gateway notify.Gateway

	// Config provides the account's reminder configuration.
	Config notify.ConfigSource

	// Items is the remote document store's item-write surface.
	Items save.ItemStore

	// Blobs stores item images.
	Blobs save.BlobStore

	// Remote deletes all remote account data during account deletion.
	Remote workflow.RemoteStore

	// Accounts is the external authentication service.
	Accounts workflow.AccountService
}

// Kit wires the coordinators over a shared local store and clock.
type Kit struct {
	// Local is the sqlite-backed cache store.
	Local *cache.Store

	// Lifecycle saves, replaces and removes single-item reminders.
	Lifecycle *notify.LifecycleCoordinator

	// Rebalancer re-schedules the whole collection after a config change.
	Rebalancer *notify.Rebalancer

	// Restorer re-establishes reminders after a local-state wipe.
	Restorer *restore.Coordinator

	// Saver performs the image-then-metadata item save.
	Saver *save.Coordinator

	// AccountDeletion is the full account teardown pipeline.
	AccountDeletion *workflow.AccountDeletion

	// CachePurge is the local-only purge pipeline.
	CachePurge *workflow.CachePurge

	db *cache.DB
}

// New opens the local store and wires every coordinator. The caller owns the
// supplied capabilities; Close releases only the local store.
func New(opts Options) (*Kit, error) {
	if opts.Gateway == nil {
		return nil, fmt.Errorf("remindkit: Gateway is required")
	}
	if opts.Config == nil {
		return nil, fmt.Errorf("remindkit: Config is required")
	}

	db, err := cache.Open(opts.DataDir)
	if err != nil {
		return nil, fmt.Errorf("remindkit: %w", err)
	}
	local := cache.NewStore(db)

	calc := trigger.NewCalculator()
	lifecycle := notify.NewLifecycleCoordinator(opts.Gateway, opts.Config, calc)

	kit := &Kit{
		Local:      local,
		Lifecycle:  lifecycle,
		Rebalancer: notify.NewRebalancer(lifecycle, opts.Gateway),
		Restorer:   restore.NewCoordinator(local, opts.Config, opts.Gateway, calc),
		CachePurge: workflow.NewCachePurge(local, opts.Gateway),
		db:         db,
	}

	if opts.Items != nil && opts.Blobs != nil {
		kit.Saver = save.NewCoordinator(opts.Items, opts.Blobs, lifecycle)
	}
	if opts.Remote != nil && opts.Accounts != nil {
		kit.AccountDeletion = workflow.NewAccountDeletion(opts.Remote, opts.Accounts, local, opts.Gateway)
	}

	return kit, nil
}

// Close closes the local store.
func (k *Kit) Close() error {
	return k.db.Close()
}
