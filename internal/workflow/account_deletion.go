package workflow

import (
	"context"
	"fmt"

	apperrors "github.com/yctseng/remindkit/internal/errors"
	"github.com/yctseng/remindkit/internal/logging"
)

// AccountDeletion tears down everything belonging to the signed-in account:
// remote data, the auth account, local caches, pending notifications, the
// long-lived credential and the restoration flag.
type AccountDeletion struct {
	remote        RemoteStore
	accounts      AccountService
	local         LocalStore
	notifications Canceller
}

// NewAccountDeletion creates the account-deletion pipeline.
func NewAccountDeletion(remote RemoteStore, accounts AccountService, local LocalStore, notifications Canceller) *AccountDeletion {
	return &AccountDeletion{
		remote:        remote,
		accounts:      accounts,
		local:         local,
		notifications: notifications,
	}
}

// abort wraps a failed step's error with WORKFLOW_ABORTED; the step error
// itself stays reachable through Unwrap.
func abort(pipeline, step string, err error) error {
	return apperrors.Wrap(apperrors.ErrWorkflowAborted,
		fmt.Sprintf("%s aborted at %s", pipeline, step), err)
}

// Run executes the deletion steps in strict order:
//
//  1. delete all remote per-item data and blobs
//  2. delete the authentication account
//  3. purge the local item cache, collecting affected ids
//  4. cancel notifications for those ids (fire-and-forget)
//  5. revoke the long-lived credential
//  6. delete the locally cached credential
//  7. clear the restoration flag
//
// The first failing step aborts the rest; completed steps are not undone.
func (w *AccountDeletion) Run(ctx context.Context) error {
	log := logging.WithComponent("workflow.account_deletion")

	if err := w.remote.DeleteAccountData(ctx); err != nil {
		return abort("account deletion", "remote data delete", err)
	}

	if err := w.accounts.DeleteAccount(ctx); err != nil {
		return abort("account deletion", "auth account delete", err)
	}

	ids, err := w.local.PurgeItems(ctx)
	if err != nil {
		return abort("account deletion", "local purge", err)
	}

	if len(ids) > 0 {
		w.notifications.Cancel(ctx, ids)
	}

	if err := w.accounts.RevokeCredential(ctx); err != nil {
		return abort("account deletion", "credential revocation",
			apperrors.Wrap(apperrors.ErrAuthRevoke, "auth service revoke failed", err))
	}

	if err := w.local.DeleteCredential(ctx); err != nil {
		return abort("account deletion", "cached credential delete", err)
	}

	if err := w.local.SetShouldRestore(ctx, false); err != nil {
		return abort("account deletion", "restoration flag clear", err)
	}

	log.WithField("purged_items", len(ids)).Info("account deletion complete")
	return nil
}
