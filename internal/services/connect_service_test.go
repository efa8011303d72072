package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pickleconnect/backend/internal/models"
)

func newTestService(t *testing.T) (*ConnectService, *PlayerService, *ConnectionService) {
	t.Helper()

	players, err := NewPlayerService(nil)
	require.NoError(t, err)
	connections, err := NewConnectionService(nil)
	require.NoError(t, err)

	return NewConnectService(players, connections), players, connections
}

func testIdentity(id string) models.Identity {
	return models.Identity{ID: id, Email: id + "@example.com", DisplayName: "Player " + id}
}

func validRequest(name string) *models.UpsertPlayerRequest {
	return &models.UpsertPlayerRequest{
		Name:          name,
		DUPR:          3.5,
		Phone:         "555-0100",
		PlayTimes:     []string{models.PlayTimeMorning, models.PlayTimeNight},
		PlayLocations: "Central Park Courts",
	}
}

func mustOnboard(t *testing.T, svc *ConnectService, id string) *models.PlayerProfile {
	t.Helper()
	profile, err := svc.UpsertProfile(context.Background(), testIdentity(id), validRequest("Player "+id))
	require.NoError(t, err)
	return profile
}

func TestUpsertProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("stores identity-derived fields", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		profile, err := svc.UpsertProfile(ctx, testIdentity("alice"), validRequest("Alice"))
		require.NoError(t, err)

		assert.Equal(t, "alice", profile.UserID)
		assert.Equal(t, "alice@example.com", profile.Email)
		assert.Equal(t, "Alice", profile.Name)
		assert.False(t, profile.UpdatedAt.IsZero())
	})

	t.Run("repeated save is idempotent on id", func(t *testing.T) {
		svc, players, _ := newTestService(t)

		first, err := svc.UpsertProfile(ctx, testIdentity("alice"), validRequest("Alice"))
		require.NoError(t, err)
		second, err := svc.UpsertProfile(ctx, testIdentity("alice"), validRequest("Alice"))
		require.NoError(t, err)

		stored, err := players.Get(ctx, "alice")
		require.NoError(t, err)

		// Identical content except the timestamp; still exactly one document.
		first.UpdatedAt = second.UpdatedAt
		assert.Equal(t, first, second)
		assert.Equal(t, second.Name, stored.Name)
		assert.Len(t, players.players, 1)
	})

	t.Run("save is a full replace, not a merge", func(t *testing.T) {
		svc, players, _ := newTestService(t)

		req := validRequest("Alice")
		req.PlayTimes = []string{models.PlayTimeMorning}
		_, err := svc.UpsertProfile(ctx, testIdentity("alice"), req)
		require.NoError(t, err)

		replacement := validRequest("Alice")
		replacement.PlayTimes = nil
		replacement.Phone = "555-0199"
		_, err = svc.UpsertProfile(ctx, testIdentity("alice"), replacement)
		require.NoError(t, err)

		stored, err := players.Get(ctx, "alice")
		require.NoError(t, err)
		assert.Empty(t, stored.PlayTimes)
		assert.Equal(t, "555-0199", stored.Phone)
	})

	t.Run("email always mirrors the identity", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		profile, err := svc.UpsertProfile(ctx, testIdentity("alice"), validRequest("Alice"))
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", profile.Email)
	})

	t.Run("rejects out-of-range rating", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		req := validRequest("Alice")
		req.DUPR = 1.9
		_, err := svc.UpsertProfile(ctx, testIdentity("alice"), req)
		assert.ErrorIs(t, err, ErrInvalidProfile)

		req.DUPR = 5.1
		_, err = svc.UpsertProfile(ctx, testIdentity("alice"), req)
		assert.ErrorIs(t, err, ErrInvalidProfile)
	})

	t.Run("accepts boundary ratings", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		req := validRequest("Alice")
		req.DUPR = 2.0
		_, err := svc.UpsertProfile(ctx, testIdentity("alice"), req)
		assert.NoError(t, err)

		req.DUPR = 5.0
		_, err = svc.UpsertProfile(ctx, testIdentity("alice"), req)
		assert.NoError(t, err)
	})

	t.Run("requires a signed-in identity", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.UpsertProfile(ctx, models.Identity{}, validRequest("Alice"))
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("missing profile is a recognized state", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.GetProfile(ctx, "nobody")
		assert.ErrorIs(t, err, ErrPlayerNotFound)
	})

	t.Run("returns the stored profile", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		mustOnboard(t, svc, "alice")

		profile, err := svc.GetProfile(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "Player alice", profile.Name)
	})
}

func TestConnect(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects anonymous requester", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Connect(ctx, "", "bob")
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("rejects self connect and writes nothing", func(t *testing.T) {
		svc, _, connections := newTestService(t)
		mustOnboard(t, svc, "alice")

		_, err := svc.Connect(ctx, "alice", "alice")
		assert.ErrorIs(t, err, ErrSelfConnect)
		assert.Empty(t, connections.connections)
	})

	t.Run("requester without profile is gated", func(t *testing.T) {
		svc, _, connections := newTestService(t)
		mustOnboard(t, svc, "bob")

		_, err := svc.Connect(ctx, "alice", "bob")
		assert.ErrorIs(t, err, ErrProfileRequired)
		assert.Empty(t, connections.connections)
	})

	t.Run("missing target writes nothing", func(t *testing.T) {
		svc, _, connections := newTestService(t)
		mustOnboard(t, svc, "alice")

		_, err := svc.Connect(ctx, "alice", "bob")
		assert.ErrorIs(t, err, ErrTargetNotFound)
		assert.Empty(t, connections.connections)
	})

	t.Run("success writes exactly one record per direction", func(t *testing.T) {
		svc, _, connections := newTestService(t)
		alice := mustOnboard(t, svc, "alice")
		bob := mustOnboard(t, svc, "bob")

		result, err := svc.Connect(ctx, "alice", "bob")
		require.NoError(t, err)
		assert.Equal(t, models.StatusConnected, result.Status)
		require.NotNil(t, result.Peer)
		assert.Equal(t, bob.Name, result.Peer.Name)

		aliceSide, err := connections.ListByOwner(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, aliceSide, 1)
		assert.Equal(t, "bob", aliceSide[0].ConnectedToID)
		assert.Equal(t, bob.Name, aliceSide[0].ConnectedToName)
		assert.Equal(t, bob.DUPR, aliceSide[0].ConnectedToDUPR)

		bobSide, err := connections.ListByOwner(ctx, "bob")
		require.NoError(t, err)
		require.Len(t, bobSide, 1)
		assert.Equal(t, "alice", bobSide[0].ConnectedToID)
		assert.Equal(t, alice.Name, bobSide[0].ConnectedToName)
		assert.Equal(t, alice.DUPR, bobSide[0].ConnectedToDUPR)

		// Both directions share the connect timestamp.
		assert.True(t, aliceSide[0].ConnectedAt.Equal(bobSide[0].ConnectedAt))
		assert.Len(t, connections.connections, 2)
	})

	t.Run("snapshots are frozen at connect time", func(t *testing.T) {
		svc, _, connections := newTestService(t)
		mustOnboard(t, svc, "alice")
		mustOnboard(t, svc, "bob")

		_, err := svc.Connect(ctx, "alice", "bob")
		require.NoError(t, err)

		// Bob renames himself afterwards; alice's record keeps the old name.
		renamed := validRequest("Bobby")
		_, err = svc.UpsertProfile(ctx, testIdentity("bob"), renamed)
		require.NoError(t, err)

		aliceSide, err := connections.ListByOwner(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, aliceSide, 1)
		assert.Equal(t, "Player bob", aliceSide[0].ConnectedToName)
	})

	t.Run("duplicate attempt is terminal and writes nothing", func(t *testing.T) {
		svc, _, connections := newTestService(t)
		mustOnboard(t, svc, "alice")
		mustOnboard(t, svc, "bob")

		first, err := svc.Connect(ctx, "alice", "bob")
		require.NoError(t, err)
		assert.Equal(t, models.StatusConnected, first.Status)

		second, err := svc.Connect(ctx, "alice", "bob")
		require.NoError(t, err)
		assert.Equal(t, models.StatusAlreadyConnected, second.Status)
		assert.Nil(t, second.Peer)

		// Two documents total, not four.
		assert.Len(t, connections.connections, 2)
	})

	t.Run("connect from the other side is also a duplicate", func(t *testing.T) {
		svc, _, connections := newTestService(t)
		mustOnboard(t, svc, "alice")
		mustOnboard(t, svc, "bob")

		_, err := svc.Connect(ctx, "alice", "bob")
		require.NoError(t, err)

		result, err := svc.Connect(ctx, "bob", "alice")
		require.NoError(t, err)
		assert.Equal(t, models.StatusAlreadyConnected, result.Status)
		assert.Len(t, connections.connections, 2)
	})
}

func TestListConnections(t *testing.T) {
	ctx := context.Background()

	t.Run("empty for a new player", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		conns, err := svc.ListConnections(ctx, testIdentity("alice"))
		require.NoError(t, err)
		assert.NotNil(t, conns)
		assert.Empty(t, conns)
	})

	t.Run("newest first", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		mustOnboard(t, svc, "alice")
		mustOnboard(t, svc, "bob")
		mustOnboard(t, svc, "carol")

		base := time.Now()
		ticks := 0
		svc.now = func() time.Time {
			ticks++
			return base.Add(time.Duration(ticks) * time.Second)
		}

		_, err := svc.Connect(ctx, "alice", "bob")
		require.NoError(t, err)
		_, err = svc.Connect(ctx, "alice", "carol")
		require.NoError(t, err)

		conns, err := svc.ListConnections(ctx, testIdentity("alice"))
		require.NoError(t, err)
		require.Len(t, conns, 2)
		assert.Equal(t, "carol", conns[0].ConnectedToID)
		assert.Equal(t, "bob", conns[1].ConnectedToID)
	})

	t.Run("requires a signed-in identity", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.ListConnections(ctx, models.Identity{})
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})
}
