package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func TestRedisRevocationStore_Revoke(t *testing.T) {
	ctx := context.Background()
	client, mr := newTestRedis(t)
	store := NewRedisRevocationStore(client)

	t.Run("revoke then check", func(t *testing.T) {
		jti := uuid.NewString()

		revoked, err := store.IsRevoked(ctx, jti)
		require.NoError(t, err)
		assert.False(t, revoked)

		require.NoError(t, store.Revoke(ctx, jti, time.Minute))

		revoked, err = store.IsRevoked(ctx, jti)
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("revoking twice is a no-op", func(t *testing.T) {
		jti := uuid.NewString()

		require.NoError(t, store.Revoke(ctx, jti, time.Minute))
		require.NoError(t, store.Revoke(ctx, jti, time.Minute))

		revoked, err := store.IsRevoked(ctx, jti)
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("expired token is not stored", func(t *testing.T) {
		jti := uuid.NewString()

		require.NoError(t, store.Revoke(ctx, jti, -time.Second))

		revoked, err := store.IsRevoked(ctx, jti)
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("entry expires with the token lifetime", func(t *testing.T) {
		jti := uuid.NewString()

		require.NoError(t, store.Revoke(ctx, jti, time.Minute))
		mr.FastForward(2 * time.Minute)

		revoked, err := store.IsRevoked(ctx, jti)
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}

func TestRedisRevocationStore_RevokeOnce(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestRedis(t)
	store := NewRedisRevocationStore(client)

	jti := uuid.NewString()

	won, err := store.RevokeOnce(ctx, jti, time.Minute)
	require.NoError(t, err)
	assert.True(t, won)

	// Second caller loses the rotation race.
	won, err = store.RevokeOnce(ctx, jti, time.Minute)
	require.NoError(t, err)
	assert.False(t, won)

	revoked, err := store.IsRevoked(ctx, jti)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRedisRevocationStore_Sessions(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestRedis(t)
	store := NewRedisRevocationStore(client)

	t.Run("end session removes the tracked jti", func(t *testing.T) {
		userID := uuid.Must(uuid.NewV7())
		jti := uuid.NewString()

		require.NoError(t, store.TrackSession(ctx, userID, jti, time.Hour))
		require.NoError(t, store.EndSession(ctx, userID, jti))

		count, err := store.EndAllSessions(ctx, userID, time.Hour)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("ending an untracked session is a no-op", func(t *testing.T) {
		userID := uuid.Must(uuid.NewV7())
		assert.NoError(t, store.EndSession(ctx, userID, uuid.NewString()))
	})

	t.Run("end all sessions revokes every tracked jti", func(t *testing.T) {
		userID := uuid.Must(uuid.NewV7())
		jtis := []string{uuid.NewString(), uuid.NewString(), uuid.NewString()}

		for _, jti := range jtis {
			require.NoError(t, store.TrackSession(ctx, userID, jti, time.Hour))
		}

		count, err := store.EndAllSessions(ctx, userID, time.Hour)
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		for _, jti := range jtis {
			revoked, err := store.IsRevoked(ctx, jti)
			require.NoError(t, err)
			assert.True(t, revoked)
		}

		// The session set is gone; a second call finds nothing.
		count, err = store.EndAllSessions(ctx, userID, time.Hour)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}
