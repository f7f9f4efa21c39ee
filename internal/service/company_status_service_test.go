package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assessform-client/internal/apperror"
)

func TestRefreshReplacesSnapshotWholesale(t *testing.T) {
	client := &fakeClient{statusRes: rosterStatus([]int{0, 1}, 2)}
	engine := newTestEngine(client)

	_, ok := engine.status.Refresh(context.Background(), "ACME")
	require.True(t, ok)

	client.mu.Lock()
	client.statusRes = rosterStatus([]int{0, 1, 2}, 3)
	client.mu.Unlock()

	status, ok := engine.status.Refresh(context.Background(), "ACME")
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 2}, status.EmployeeIDs)
	assert.Equal(t, 3, status.NextEmployeeID)

	current, ok := engine.status.Current("ACME")
	require.True(t, ok)
	assert.Equal(t, status, current)
}

func TestRefreshFailureKeepsStaleSnapshot(t *testing.T) {
	client := &fakeClient{statusRes: rosterStatus([]int{0}, 1)}
	engine := newTestEngine(client)

	_, ok := engine.status.Refresh(context.Background(), "ACME")
	require.True(t, ok)

	client.mu.Lock()
	client.statusErr = apperror.New(apperror.KindNetworkUnavailable, "connection refused")
	client.mu.Unlock()

	status, ok := engine.status.Refresh(context.Background(), "ACME")
	require.True(t, ok, "stale snapshot must stay available")
	assert.Equal(t, []int{0}, status.EmployeeIDs)
	assert.Equal(t, 1, status.NextEmployeeID)
}

func TestRefreshFailureWithNoSnapshot(t *testing.T) {
	client := &fakeClient{statusErr: apperror.New(apperror.KindNetworkUnavailable, "connection refused")}
	engine := newTestEngine(client)

	_, ok := engine.status.Refresh(context.Background(), "ACME")

	assert.False(t, ok)
}

func TestInvalidateDropsSnapshot(t *testing.T) {
	client := &fakeClient{statusRes: rosterStatus([]int{0}, 1)}
	engine := newTestEngine(client)

	_, ok := engine.status.Refresh(context.Background(), "ACME")
	require.True(t, ok)

	engine.status.Invalidate("ACME")

	_, ok = engine.status.Current("ACME")
	assert.False(t, ok)
}
