package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guardian/internal/kba"
	"guardian/internal/kba/session"
	"guardian/pkg/platform/sentinel"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("save and find returns a copy", func(t *testing.T) {
		store := session.NewInMemoryStore()
		sess := &kba.Session{Token: "tok-1", CreatedAt: now, ExpiresAt: now.Add(time.Minute)}
		require.NoError(t, store.Save(ctx, sess))

		found, err := store.Find(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, sess.Token, found.Token)

		// Mutating the returned copy must not affect the stored session.
		found.Attempts = 99
		again, err := store.Find(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, 0, again.Attempts)
	})

	t.Run("find misses with ErrNotFound", func(t *testing.T) {
		store := session.NewInMemoryStore()
		_, err := store.Find(ctx, "absent")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		store := session.NewInMemoryStore()
		require.NoError(t, store.Save(ctx, &kba.Session{Token: "tok-2", ExpiresAt: now.Add(time.Minute)}))
		require.NoError(t, store.Delete(ctx, "tok-2"))
		require.NoError(t, store.Delete(ctx, "tok-2"))
		assert.Equal(t, 0, store.Len())
	})

	t.Run("delete expired removes only stale sessions", func(t *testing.T) {
		store := session.NewInMemoryStore()
		require.NoError(t, store.Save(ctx, &kba.Session{Token: "stale", ExpiresAt: now.Add(-time.Second)}))
		require.NoError(t, store.Save(ctx, &kba.Session{Token: "live", ExpiresAt: now.Add(time.Minute)}))

		removed, err := store.DeleteExpired(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, 1, removed)

		_, err = store.Find(ctx, "stale")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		_, err = store.Find(ctx, "live")
		assert.NoError(t, err)
	})
}
