package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"guardian/internal/consent"
	"guardian/internal/consent/store"
	"guardian/pkg/domain"
	"guardian/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *store.InMemoryStore
	now   time.Time
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = store.NewInMemoryStore()
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *MemoryStoreSuite) seedChild() domain.UserID {
	childID := domain.UserID(uuid.New())
	s.store.SeedUser(consent.User{
		ID:    childID,
		Email: "kid@example.com",
		Name:  "Kid",
		Profile: &consent.Profile{
			UserID:        childID,
			Language:      "en",
			IsMinor:       true,
			ConsentStatus: consent.StatusPending,
		},
	})
	return childID
}

func (s *MemoryStoreSuite) newRecord(childID domain.UserID, mutate func(*consent.Record)) *consent.Record {
	record := &consent.Record{
		ID:          domain.NewConsentID(),
		ChildUserID: childID,
		ParentEmail: "parent@example.com",
		Method:      domain.MethodKBA,
		Scope:       domain.DefaultConsentScopes(),
		CreatedAt:   s.now,
	}
	if mutate != nil {
		mutate(record)
	}
	return record
}

func (s *MemoryStoreSuite) grant(record *consent.Record, at time.Time, validFor time.Duration) {
	record.Granted = true
	record.ConsentDate = &at
	expires := at.Add(validFor)
	record.ExpiresAt = &expires
}

func (s *MemoryStoreSuite) TestFindUser() {
	ctx := context.Background()
	childID := s.seedChild()

	user, err := s.store.FindUser(ctx, childID)
	s.Require().NoError(err)
	s.Equal("kid@example.com", user.Email)
	s.Require().NotNil(user.Profile)
	s.True(user.Profile.IsMinor)

	_, err = s.store.FindUser(ctx, domain.UserID(uuid.New()))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestConsentRecordRoundTrip() {
	ctx := context.Background()
	childID := s.seedChild()
	record := s.newRecord(childID, nil)

	s.Require().NoError(s.store.CreateConsent(ctx, record))

	found, err := s.store.FindConsent(ctx, record.ID)
	s.Require().NoError(err)
	s.Equal(record.ParentEmail, found.ParentEmail)
	s.Equal(domain.MethodKBA, found.Method)
	s.False(found.Granted)

	// Mutating the returned copy must not leak into the store.
	found.Granted = true
	again, err := s.store.FindConsent(ctx, record.ID)
	s.Require().NoError(err)
	s.False(again.Granted)
}

func (s *MemoryStoreSuite) TestUpdateConsentMissing() {
	err := s.store.UpdateConsent(context.Background(), s.newRecord(domain.UserID(uuid.New()), nil))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestFindActiveConsent() {
	ctx := context.Background()
	childID := s.seedChild()

	s.Run("no records", func() {
		_, err := s.store.FindActiveConsent(ctx, childID, s.now)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	older := s.newRecord(childID, func(r *consent.Record) {
		s.grant(r, s.now.Add(-48*time.Hour), 365*24*time.Hour)
	})
	newer := s.newRecord(childID, func(r *consent.Record) {
		s.grant(r, s.now.Add(-time.Hour), 365*24*time.Hour)
	})
	pending := s.newRecord(childID, nil)
	s.Require().NoError(s.store.CreateConsent(ctx, older))
	s.Require().NoError(s.store.CreateConsent(ctx, newer))
	s.Require().NoError(s.store.CreateConsent(ctx, pending))

	s.Run("picks latest live grant", func() {
		active, err := s.store.FindActiveConsent(ctx, childID, s.now)
		s.Require().NoError(err)
		s.Equal(newer.ID, active.ID)
	})

	s.Run("expired grant is not active", func() {
		farFuture := s.now.Add(400 * 24 * time.Hour)
		_, err := s.store.FindActiveConsent(ctx, childID, farFuture)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("revoked grant is not active", func() {
		revokedAt := s.now
		newer.RevokedAt = &revokedAt
		s.Require().NoError(s.store.UpdateConsent(ctx, newer))

		active, err := s.store.FindActiveConsent(ctx, childID, s.now)
		s.Require().NoError(err)
		s.Equal(older.ID, active.ID)
	})
}

func (s *MemoryStoreSuite) TestFindLatestPendingConsent() {
	ctx := context.Background()
	childID := s.seedChild()

	first := s.newRecord(childID, func(r *consent.Record) {
		r.Method = domain.MethodEmail
		r.CreatedAt = s.now.Add(-2 * time.Hour)
	})
	second := s.newRecord(childID, func(r *consent.Record) {
		r.Method = domain.MethodEmail
		r.CreatedAt = s.now.Add(-time.Hour)
	})
	granted := s.newRecord(childID, func(r *consent.Record) {
		r.Method = domain.MethodEmail
		s.grant(r, s.now, 365*24*time.Hour)
	})
	s.Require().NoError(s.store.CreateConsent(ctx, first))
	s.Require().NoError(s.store.CreateConsent(ctx, second))
	s.Require().NoError(s.store.CreateConsent(ctx, granted))

	pending, err := s.store.FindLatestPendingConsent(ctx, childID, domain.MethodEmail)
	s.Require().NoError(err)
	s.Equal(second.ID, pending.ID)

	_, err = s.store.FindLatestPendingConsent(ctx, childID, domain.MethodPayment)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestUpdateProfile() {
	ctx := context.Background()
	childID := s.seedChild()

	granted := consent.StatusGranted
	compliant := true
	digest := "digest-value"
	expires := s.now.Add(7 * 24 * time.Hour)
	s.Require().NoError(s.store.UpdateProfile(ctx, childID, consent.ProfileUpdate{
		ConsentStatus:      &granted,
		ConsentDate:        &s.now,
		COPPACompliant:     &compliant,
		ConsentTokenDigest: &digest,
		TokenExpires:       &expires,
	}))

	profile, ok := s.store.Profile(childID)
	s.Require().True(ok)
	s.Equal(consent.StatusGranted, profile.ConsentStatus)
	s.True(profile.COPPACompliant)
	s.Equal(digest, profile.ConsentTokenDigest)

	s.Run("clear token removes digest and expiry", func() {
		s.Require().NoError(s.store.UpdateProfile(ctx, childID, consent.ProfileUpdate{ClearToken: true}))
		profile, ok := s.store.Profile(childID)
		s.Require().True(ok)
		s.Empty(profile.ConsentTokenDigest)
		s.Nil(profile.ConsentTokenExpires)
		// Untouched fields survive partial updates.
		s.Equal(consent.StatusGranted, profile.ConsentStatus)
	})

	s.Run("missing profile", func() {
		err := s.store.UpdateProfile(ctx, domain.UserID(uuid.New()), consent.ProfileUpdate{ClearToken: true})
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestFindProfileByTokenDigest() {
	ctx := context.Background()
	childID := s.seedChild()

	digest := "lookup-digest"
	s.Require().NoError(s.store.UpdateProfile(ctx, childID, consent.ProfileUpdate{
		ConsentTokenDigest: &digest,
	}))

	profile, err := s.store.FindProfileByTokenDigest(ctx, digest)
	s.Require().NoError(err)
	s.Equal(childID, profile.UserID)

	_, err = s.store.FindProfileByTokenDigest(ctx, "unknown")
	s.ErrorIs(err, sentinel.ErrNotFound)

	// An empty digest must never match profiles without a token.
	_, err = s.store.FindProfileByTokenDigest(ctx, "")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestListConsentHistoryNewestFirst() {
	ctx := context.Background()
	childID := s.seedChild()

	for i := 0; i < 3; i++ {
		record := s.newRecord(childID, func(r *consent.Record) {
			r.CreatedAt = s.now.Add(time.Duration(i) * time.Hour)
		})
		s.Require().NoError(s.store.CreateConsent(ctx, record))
	}

	history, err := s.store.ListConsentHistory(ctx, childID)
	s.Require().NoError(err)
	s.Require().Len(history, 3)
	for i := 1; i < len(history); i++ {
		s.False(history[i].CreatedAt.After(history[i-1].CreatedAt), "history must be newest first")
	}
}

func (s *MemoryStoreSuite) TestFindExpiring() {
	ctx := context.Background()
	childID := s.seedChild()

	expiringSoon := s.newRecord(childID, func(r *consent.Record) {
		s.grant(r, s.now.Add(-350*24*time.Hour), 365*24*time.Hour)
	})
	expiringLater := s.newRecord(childID, func(r *consent.Record) {
		s.grant(r, s.now, 365*24*time.Hour)
	})
	s.Require().NoError(s.store.CreateConsent(ctx, expiringSoon))
	s.Require().NoError(s.store.CreateConsent(ctx, expiringLater))

	expiring, err := s.store.FindExpiring(ctx, s.now, s.now.Add(30*24*time.Hour))
	s.Require().NoError(err)
	s.Require().Len(expiring, 1)
	s.Equal(expiringSoon.ID, expiring[0].ID)
}

func (s *MemoryStoreSuite) TestDeleteExpiredRecords() {
	ctx := context.Background()
	childID := s.seedChild()
	cutoff := s.now.Add(-3 * 365 * 24 * time.Hour)

	staleAbandoned := s.newRecord(childID, func(r *consent.Record) {
		r.CreatedAt = cutoff.Add(-time.Hour)
	})
	staleRevoked := s.newRecord(childID, func(r *consent.Record) {
		s.grant(r, cutoff.Add(-2*365*24*time.Hour), 365*24*time.Hour)
		revokedAt := cutoff.Add(-time.Hour)
		r.RevokedAt = &revokedAt
	})
	recentAbandoned := s.newRecord(childID, func(r *consent.Record) {
		r.CreatedAt = s.now.Add(-time.Hour)
	})
	grantedExpired := s.newRecord(childID, func(r *consent.Record) {
		s.grant(r, cutoff.Add(-2*365*24*time.Hour), 365*24*time.Hour)
	})
	for _, record := range []*consent.Record{staleAbandoned, staleRevoked, recentAbandoned, grantedExpired} {
		s.Require().NoError(s.store.CreateConsent(ctx, record))
	}

	purged, err := s.store.DeleteExpiredRecords(ctx, cutoff)
	s.Require().NoError(err)
	s.Equal(2, purged)

	_, err = s.store.FindConsent(ctx, staleAbandoned.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.FindConsent(ctx, staleRevoked.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	// Recent pending records and granted records survive, even when the
	// grant itself has naturally expired.
	_, err = s.store.FindConsent(ctx, recentAbandoned.ID)
	s.NoError(err)
	_, err = s.store.FindConsent(ctx, grantedExpired.ID)
	s.NoError(err)
}
