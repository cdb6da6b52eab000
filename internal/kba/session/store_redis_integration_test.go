//go:build integration

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"guardian/internal/kba"
	"guardian/internal/kba/session"
	"guardian/pkg/platform/sentinel"
	"guardian/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *session.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = session.NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestSaveAndFindRoundTrip() {
	ctx := context.Background()
	sess := &kba.Session{
		Token: "redis-tok-1",
		Questions: []kba.Question{{
			ID:           "q_001",
			Category:     kba.CategoryFinancial,
			Prompt:       "prompt",
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: 2,
		}},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		ExpiresAt: time.Now().UTC().Add(15 * time.Minute).Truncate(time.Second),
		Attempts:  1,
	}

	s.Require().NoError(s.store.Save(ctx, sess))

	found, err := s.store.Find(ctx, sess.Token)
	s.Require().NoError(err)
	s.Equal(sess.Token, found.Token)
	s.Equal(sess.Attempts, found.Attempts)
	s.Require().Len(found.Questions, 1)
	s.Equal(2, found.Questions[0].CorrectIndex)
	s.True(sess.ExpiresAt.Equal(found.ExpiresAt))
}

func (s *RedisStoreSuite) TestFindMissing() {
	_, err := s.store.Find(context.Background(), "absent")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestSaveRejectsAlreadyExpired() {
	err := s.store.Save(context.Background(), &kba.Session{
		Token:     "expired-tok",
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	s.ErrorIs(err, sentinel.ErrExpired)
}

func (s *RedisStoreSuite) TestKeyTTLExpiry() {
	ctx := context.Background()
	sess := &kba.Session{
		Token:     "short-tok",
		ExpiresAt: time.Now().Add(1 * time.Second),
	}
	s.Require().NoError(s.store.Save(ctx, sess))

	_, err := s.store.Find(ctx, sess.Token)
	s.Require().NoError(err)

	time.Sleep(1500 * time.Millisecond)

	_, err = s.store.Find(ctx, sess.Token)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestDeleteIsIdempotent() {
	ctx := context.Background()
	sess := &kba.Session{
		Token:     "del-tok",
		ExpiresAt: time.Now().Add(time.Minute),
	}
	s.Require().NoError(s.store.Save(ctx, sess))
	s.Require().NoError(s.store.Delete(ctx, sess.Token))
	s.Require().NoError(s.store.Delete(ctx, sess.Token))

	_, err := s.store.Find(ctx, sess.Token)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
