// Package workflow runs the strictly ordered, multi-store teardown pipelines:
// full account deletion and local cache purge. Steps execute in declared
// order, the first failure aborts the remainder, and completed steps are not
// undone — the pipelines are deliberately non-atomic, matching the product's
// accepted-risk posture rather than adding saga semantics.
package workflow

import "context"

// RemoteStore is the remote document store surface the pipelines need.
type RemoteStore interface {
	// DeleteAccountData deletes all remote per-item records and blobs for
	// the signed-in account.
	DeleteAccountData(ctx context.Context) error
}

// AccountService is the external authentication service.
type AccountService interface {
	// DeleteAccount deletes the authentication account itself.
	DeleteAccount(ctx context.Context) error

	// RevokeCredential revokes the account's long-lived credential.
	RevokeCredential(ctx context.Context) error
}

// LocalStore is the slice of the local cache store the pipelines touch.
// *cache.Store satisfies it.
type LocalStore interface {
	// PurgeItems deletes every cached item and returns the removed ids.
	PurgeItems(ctx context.Context) ([]string, error)

	// DeleteConfig removes the cached date/time configuration.
	DeleteConfig(ctx context.Context) error

	// ClearSearches removes the cached recent-search history.
	ClearSearches(ctx context.Context) error

	// DeleteCredential removes the locally cached credential.
	DeleteCredential(ctx context.Context) error

	// SetShouldRestore writes the restoration flag.
	SetShouldRestore(ctx context.Context, v bool) error
}

// Canceller cancels pending notifications. Cancellation is fire-and-forget
// and never gates a pipeline's success. notify.Gateway satisfies it.
type Canceller interface {
	Cancel(ctx context.Context, itemIDs []string)
}
