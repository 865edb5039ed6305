package purchase

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubState returns a fixed baseline and fresh count, tracking which calls
// were made.
type stubState struct {
	baseline      int
	fresh         int
	baselineErr   error
	refreshErr    error
	baselineCalls int
	refreshCalls  int
}

func (s *stubState) CompletedCount(ctx context.Context) (int, error) {
	s.baselineCalls++
	return s.baseline, s.baselineErr
}

func (s *stubState) Refresh(ctx context.Context) (int, error) {
	s.refreshCalls++
	return s.fresh, s.refreshErr
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestStripReturnIndicator(t *testing.T) {
	indicator, cleaned := StripReturnIndicator(mustParse(t, "https://app.example/dashboard?payment=success&tab=leads"))
	assert.Equal(t, "success", indicator)
	assert.Equal(t, "https://app.example/dashboard?tab=leads", cleaned.String())

	// No indicator: URL passes through untouched.
	indicator, cleaned = StripReturnIndicator(mustParse(t, "https://app.example/dashboard?tab=leads"))
	assert.Equal(t, "", indicator)
	assert.Equal(t, "https://app.example/dashboard?tab=leads", cleaned.String())
}

func TestReconcileSuccess(t *testing.T) {
	state := &stubState{baseline: 2, fresh: 3}
	flow := NewFlow(state)

	result, err := flow.Reconcile(context.Background(), mustParse(t, "https://app.example/dashboard?payment=success"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, result.Outcome)
	assert.Equal(t, 2, result.Baseline)
	assert.Equal(t, 3, result.Fresh)
	assert.Equal(t, "https://app.example/dashboard", result.CleanURL)
}

func TestReconcilePendingSettlement(t *testing.T) {
	// Redirect raced ahead of the webhook: count unchanged, so neither a
	// success nor an error outcome.
	state := &stubState{baseline: 2, fresh: 2}
	flow := NewFlow(state)

	result, err := flow.Reconcile(context.Background(), mustParse(t, "https://app.example/dashboard?payment=success"))
	require.NoError(t, err)
	assert.Equal(t, OutcomePendingSettlement, result.Outcome)
}

func TestReconcileCancelled(t *testing.T) {
	state := &stubState{}
	flow := NewFlow(state)

	result, err := flow.Reconcile(context.Background(), mustParse(t, "https://app.example/dashboard?payment=cancel"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeCancelled, result.Outcome)
	assert.Equal(t, "https://app.example/dashboard", result.CleanURL)

	// Cancel short-circuits without touching backend state.
	assert.Zero(t, state.baselineCalls)
	assert.Zero(t, state.refreshCalls)
}

func TestReconcileNoIndicator(t *testing.T) {
	state := &stubState{}
	flow := NewFlow(state)

	result, err := flow.Reconcile(context.Background(), mustParse(t, "https://app.example/dashboard"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeNone, result.Outcome)
	assert.Zero(t, state.baselineCalls)
}

func TestReconcileUnknownIndicator(t *testing.T) {
	state := &stubState{}
	flow := NewFlow(state)

	result, err := flow.Reconcile(context.Background(), mustParse(t, "https://app.example/dashboard?payment=maybe"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeNone, result.Outcome)
	// The unknown value is still stripped from the URL.
	assert.Equal(t, "https://app.example/dashboard", result.CleanURL)
	assert.Zero(t, state.baselineCalls)
}

func TestReconcileRefreshError(t *testing.T) {
	state := &stubState{baseline: 1, refreshErr: errors.New("backend down")}
	flow := NewFlow(state)

	_, err := flow.Reconcile(context.Background(), mustParse(t, "https://app.example/dashboard?payment=success"))
	assert.Error(t, err)
}
