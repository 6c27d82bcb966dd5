// Package workflow tests for the ordered teardown pipelines.
package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/yctseng/remindkit/internal/cache"
	apperrors "github.com/yctseng/remindkit/internal/errors"
	"github.com/yctseng/remindkit/internal/notify"
)

// Compile-time checks: the real collaborators satisfy the pipeline ports.
var (
	_ LocalStore = (*cache.Store)(nil)
	_ Canceller  = (notify.Gateway)(nil)
)

// =====================================================
// Test Helpers
// =====================================================

// mockEnv implements every pipeline port and records the call order.
type mockEnv struct {
	mu    sync.Mutex
	calls []string

	purgeIDs []string

	remoteErr     error
	accountErr    error
	purgeErr      error
	revokeErr     error
	credErr       error
	flagErr       error
	configErr     error
	searchesErr   error
	cancelledSets [][]string
}

func (m *mockEnv) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockEnv) DeleteAccountData(ctx context.Context) error {
	m.record("remote.delete")
	return m.remoteErr
}

func (m *mockEnv) DeleteAccount(ctx context.Context) error {
	m.record("account.delete")
	return m.accountErr
}

func (m *mockEnv) RevokeCredential(ctx context.Context) error {
	m.record("account.revoke")
	return m.revokeErr
}

func (m *mockEnv) PurgeItems(ctx context.Context) ([]string, error) {
	m.record("local.purge")
	if m.purgeErr != nil {
		return nil, m.purgeErr
	}
	return m.purgeIDs, nil
}

func (m *mockEnv) DeleteConfig(ctx context.Context) error {
	m.record("local.config")
	return m.configErr
}

func (m *mockEnv) ClearSearches(ctx context.Context) error {
	m.record("local.searches")
	return m.searchesErr
}

func (m *mockEnv) DeleteCredential(ctx context.Context) error {
	m.record("local.credential")
	return m.credErr
}

func (m *mockEnv) SetShouldRestore(ctx context.Context, v bool) error {
	if v {
		m.record("local.flag=true")
	} else {
		m.record("local.flag=false")
	}
	return m.flagErr
}

func (m *mockEnv) Cancel(ctx context.Context, itemIDs []string) {
	m.record("notify.cancel")
	ids := make([]string, len(itemIDs))
	copy(ids, itemIDs)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelledSets = append(m.cancelledSets, ids)
}

func (m *mockEnv) callSequence() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

func equalSeq(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// =====================================================
// Account Deletion Tests
// =====================================================

// TestAccountDeletionOrder verifies all seven steps run in declared order.
func TestAccountDeletionOrder(t *testing.T) {
	env := &mockEnv{purgeIDs: []string{"a", "b"}}
	pipeline := NewAccountDeletion(env, env, env, env)

	if err := pipeline.Run(context.Background()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	want := []string{
		"remote.delete",
		"account.delete",
		"local.purge",
		"notify.cancel",
		"account.revoke",
		"local.credential",
		"local.flag=false",
	}
	if got := env.callSequence(); !equalSeq(got, want) {
		t.Errorf("call sequence = %v, want %v", got, want)
	}

	if len(env.cancelledSets) != 1 || len(env.cancelledSets[0]) != 2 {
		t.Errorf("cancelled sets = %v, want one set of the purged ids", env.cancelledSets)
	}
}

// TestAccountDeletionShortCircuit verifies a failing local purge stops
// steps 4-7 while steps 1-2 each ran exactly once.
func TestAccountDeletionShortCircuit(t *testing.T) {
	cause := errors.New("cache locked")
	env := &mockEnv{purgeErr: cause}
	pipeline := NewAccountDeletion(env, env, env, env)

	err := pipeline.Run(context.Background())
	if !apperrors.Is(err, apperrors.ErrWorkflowAborted) {
		t.Fatalf("Run() error = %v, want WORKFLOW_ABORTED", err)
	}
	if !errors.Is(err, cause) {
		t.Error("step error not reachable through the aborted error")
	}

	want := []string{"remote.delete", "account.delete", "local.purge"}
	if got := env.callSequence(); !equalSeq(got, want) {
		t.Errorf("call sequence = %v, want %v", got, want)
	}
}

// TestAccountDeletionFirstStepFailure verifies nothing past step 1 runs.
func TestAccountDeletionFirstStepFailure(t *testing.T) {
	env := &mockEnv{remoteErr: errors.New("remote down")}
	pipeline := NewAccountDeletion(env, env, env, env)

	if err := pipeline.Run(context.Background()); err == nil {
		t.Fatal("Run() = nil, want error")
	}
	if got := env.callSequence(); !equalSeq(got, []string{"remote.delete"}) {
		t.Errorf("call sequence = %v, want only remote.delete", got)
	}
}

// TestAccountDeletionRevokeFailureNoUndo verifies a step-5 failure leaves
// the completed steps 1-4 in place and skips 6-7.
func TestAccountDeletionRevokeFailureNoUndo(t *testing.T) {
	cause := errors.New("revocation requires recent login")
	env := &mockEnv{purgeIDs: []string{"x"}, revokeErr: cause}
	pipeline := NewAccountDeletion(env, env, env, env)

	err := pipeline.Run(context.Background())
	if !apperrors.Is(err, apperrors.ErrWorkflowAborted) {
		t.Fatalf("Run() error = %v, want WORKFLOW_ABORTED", err)
	}
	if !errors.Is(err, cause) {
		t.Error("revocation cause not reachable through the aborted error")
	}

	want := []string{"remote.delete", "account.delete", "local.purge", "notify.cancel", "account.revoke"}
	if got := env.callSequence(); !equalSeq(got, want) {
		t.Errorf("call sequence = %v, want %v", got, want)
	}
}

// TestAccountDeletionNoItems verifies the cancel step is skipped for an
// empty purge but the pipeline still completes.
func TestAccountDeletionNoItems(t *testing.T) {
	env := &mockEnv{}
	pipeline := NewAccountDeletion(env, env, env, env)

	if err := pipeline.Run(context.Background()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	for _, call := range env.callSequence() {
		if call == "notify.cancel" {
			t.Error("Cancel called with no purged ids")
		}
	}
	last := env.callSequence()[len(env.callSequence())-1]
	if last != "local.flag=false" {
		t.Errorf("last step = %q, want the flag clear", last)
	}
}

// =====================================================
// Cache Purge Tests
// =====================================================

// TestCachePurgeOrder verifies the four steps run in declared order.
func TestCachePurgeOrder(t *testing.T) {
	env := &mockEnv{purgeIDs: []string{"a", "b", "c"}}
	pipeline := NewCachePurge(env, env)

	if err := pipeline.Run(context.Background()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	want := []string{"local.purge", "local.config", "local.searches", "notify.cancel"}
	if got := env.callSequence(); !equalSeq(got, want) {
		t.Errorf("call sequence = %v, want %v", got, want)
	}
	if len(env.cancelledSets) != 1 || len(env.cancelledSets[0]) != 3 {
		t.Errorf("cancelled sets = %v, want the three purged ids", env.cancelledSets)
	}
}

// TestCachePurgeShortCircuit verifies a failing config delete stops the
// remaining steps.
func TestCachePurgeShortCircuit(t *testing.T) {
	env := &mockEnv{purgeIDs: []string{"a"}, configErr: errors.New("busy")}
	pipeline := NewCachePurge(env, env)

	err := pipeline.Run(context.Background())
	if !apperrors.Is(err, apperrors.ErrWorkflowAborted) {
		t.Fatalf("Run() error = %v, want WORKFLOW_ABORTED", err)
	}

	want := []string{"local.purge", "local.config"}
	if got := env.callSequence(); !equalSeq(got, want) {
		t.Errorf("call sequence = %v, want %v", got, want)
	}
}

// TestCachePurgeEmptyCache verifies an empty cache purges cleanly without a
// cancel call.
func TestCachePurgeEmptyCache(t *testing.T) {
	env := &mockEnv{}
	pipeline := NewCachePurge(env, env)

	if err := pipeline.Run(context.Background()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	want := []string{"local.purge", "local.config", "local.searches"}
	if got := env.callSequence(); !equalSeq(got, want) {
		t.Errorf("call sequence = %v, want %v", got, want)
	}
}
