package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assessform-client/internal/apperror"
	"assessform-client/internal/dto"
	"assessform-client/internal/entity"
)

func TestSelectNewModeTransitionsToReady(t *testing.T) {
	engine := newTestEngine(&fakeClient{statusRes: rosterStatus([]int{0, 1}, 2)})
	engine.session.SetCompany(context.Background(), "ACME")

	require.NoError(t, engine.session.SelectNewMode())

	assert.Equal(t, entity.StateReady, engine.session.State())
	sess, ok := engine.session.Session()
	require.True(t, ok)
	assert.Equal(t, entity.ModeNew, sess.Mode)
	assert.False(t, sess.HasIdentity())
}

func TestSelectNewModeMakesNoNetworkCall(t *testing.T) {
	client := &fakeClient{statusRes: rosterStatus([]int{0}, 1)}
	engine := newTestEngine(client)
	engine.session.SetCompany(context.Background(), "ACME")
	statusCallsBefore := client.statusCalls

	require.NoError(t, engine.session.SelectNewMode())

	assert.Equal(t, statusCallsBefore, client.statusCalls)
	assert.Zero(t, client.employeeCalls)
	assert.Zero(t, client.saveCalls)
}

func TestSelectReturningModeRejectsUnknownIDLocally(t *testing.T) {
	client := &fakeClient{statusRes: rosterStatus([]int{0, 1}, 2)}
	engine := newTestEngine(client)
	engine.session.SetCompany(context.Background(), "ACME")

	err := engine.session.SelectReturningMode(context.Background(), 5)

	require.Error(t, err)
	assert.Equal(t, apperror.KindUnknownIdentity, apperror.KindOf(err))
	assert.Zero(t, client.employeeCalls, "roster rejection must not hit the network")
	assert.Equal(t, entity.StateAwaitingModeSelection, engine.session.State())
}

func TestSelectReturningModeRejectsNegativeID(t *testing.T) {
	client := &fakeClient{statusRes: rosterStatus([]int{0, 1}, 2)}
	engine := newTestEngine(client)
	engine.session.SetCompany(context.Background(), "ACME")

	err := engine.session.SelectReturningMode(context.Background(), -3)

	require.Error(t, err)
	assert.Equal(t, apperror.KindUnknownIdentity, apperror.KindOf(err))
	assert.Zero(t, client.employeeCalls)
}

func TestSelectReturningModeEmptyRosterFallsThroughToRemote(t *testing.T) {
	client := &fakeClient{
		statusRes: rosterStatus([]int{}, 0),
		employeeRes: &dto.EmployeeLookupResponse{
			Found:     true,
			Responses: map[string]string{"e1": "Foreman"},
		},
	}
	engine := newTestEngine(client)
	engine.session.SetCompany(context.Background(), "ACME")

	require.NoError(t, engine.session.SelectReturningMode(context.Background(), 7))

	assert.Equal(t, 1, client.employeeCalls, "empty roster must defer to the remote lookup")
	assert.Equal(t, entity.StateReady, engine.session.State())
	sess, ok := engine.session.Session()
	require.True(t, ok)
	assert.Equal(t, entity.ModeReturning, sess.Mode)
	assert.Equal(t, 7, sess.EmployeeID)
	assert.Equal(t, "Foreman", engine.response.Records()["e1"].Value)
}

func TestSelectReturningModeNotFoundResetsToModeSelection(t *testing.T) {
	client := &fakeClient{
		statusRes:   rosterStatus([]int{}, 0),
		employeeRes: &dto.EmployeeLookupResponse{Found: false},
	}
	engine := newTestEngine(client)
	engine.session.SetCompany(context.Background(), "ACME")

	err := engine.session.SelectReturningMode(context.Background(), 3)

	require.Error(t, err)
	assert.Equal(t, apperror.KindUnknownIdentity, apperror.KindOf(err))
	assert.Equal(t, entity.StateAwaitingModeSelection, engine.session.State())
	_, ok := engine.session.Session()
	assert.False(t, ok, "no partial session state may be retained")
}

func TestSelectReturningModeTransportFailure(t *testing.T) {
	client := &fakeClient{
		statusRes:   rosterStatus([]int{}, 0),
		employeeErr: apperror.New(apperror.KindNetworkUnavailable, "connection refused"),
	}
	engine := newTestEngine(client)
	engine.session.SetCompany(context.Background(), "ACME")

	err := engine.session.SelectReturningMode(context.Background(), 3)

	require.Error(t, err)
	assert.Equal(t, apperror.KindNetworkUnavailable, apperror.KindOf(err))
	assert.Equal(t, entity.StateAwaitingModeSelection, engine.session.State())
}

func TestSelectModeOutsideModeSelectionFailsFast(t *testing.T) {
	engine := newTestEngine(&fakeClient{})

	err := engine.session.SelectNewMode()

	require.Error(t, err)
	assert.Equal(t, apperror.KindSessionNotReady, apperror.KindOf(err))
}

func TestResetClearsSessionAndRecords(t *testing.T) {
	client := &fakeClient{statusRes: rosterStatus([]int{0, 1}, 2)}
	engine := newTestEngine(client)
	engine.session.SetCompany(context.Background(), "ACME")
	require.NoError(t, engine.session.SelectNewMode())
	engine.response.Hydrate(map[string]string{"e1": "draft"})
	epochBefore := engine.session.Epoch()

	engine.session.Reset()

	assert.Equal(t, entity.StateUninitialized, engine.session.State())
	_, ok := engine.session.Session()
	assert.False(t, ok)
	assert.Empty(t, engine.response.Records())
	assert.Equal(t, entity.SaveStatusIdle, engine.response.SaveStatus())
	assert.Greater(t, engine.session.Epoch(), epochBefore)
}

func TestSetCompanyInvalidatesAndRefreshesSnapshot(t *testing.T) {
	client := &fakeClient{statusRes: rosterStatus([]int{0, 1, 2}, 3)}
	engine := newTestEngine(client)

	engine.session.SetCompany(context.Background(), "ACME")

	status, ok := engine.status.Current("ACME")
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 2}, status.EmployeeIDs)
	assert.Equal(t, 3, status.NextEmployeeID)
	assert.Equal(t, entity.StateAwaitingModeSelection, engine.session.State())
}

func TestPublishIdentityFirstWriterWins(t *testing.T) {
	engine := newTestEngine(&fakeClient{statusRes: rosterStatus([]int{0, 1}, 2)})
	engine.session.SetCompany(context.Background(), "ACME")
	require.NoError(t, engine.session.SelectNewMode())
	epoch := engine.session.Epoch()

	assert.True(t, engine.session.PublishIdentity(epoch, 2))
	assert.False(t, engine.session.PublishIdentity(epoch, 3), "second writer must be discarded")

	sess, _ := engine.session.Session()
	assert.Equal(t, 2, sess.EmployeeID)
}

func TestPublishIdentityStaleEpochIsNoOp(t *testing.T) {
	engine := newTestEngine(&fakeClient{statusRes: rosterStatus(nil, 0)})
	engine.session.SetCompany(context.Background(), "ACME")
	require.NoError(t, engine.session.SelectNewMode())
	staleEpoch := engine.session.Epoch()

	engine.session.Reset()
	engine.session.SetCompany(context.Background(), "ACME")
	require.NoError(t, engine.session.SelectNewMode())

	assert.False(t, engine.session.PublishIdentity(staleEpoch, 9))
	sess, _ := engine.session.Session()
	assert.False(t, sess.HasIdentity())
}
