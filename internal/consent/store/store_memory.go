// Package store provides the durable-storage implementations of the consent
// service ports: an in-memory store for dev and tests, and a PostgreSQL store
// for production.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"guardian/internal/consent"
	"guardian/pkg/domain"
	"guardian/pkg/platform/sentinel"
)

// InMemoryStore keeps users, profiles and consent records in maps.
// Intentionally favors clarity over performance.
type InMemoryStore struct {
	mu       sync.RWMutex
	users    map[domain.UserID]consent.User
	profiles map[domain.UserID]consent.Profile
	records  map[domain.ConsentID]consent.Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users:    make(map[domain.UserID]consent.User),
		profiles: make(map[domain.UserID]consent.Profile),
		records:  make(map[domain.ConsentID]consent.Record),
	}
}

// SeedUser registers a child account with its profile. Test and dev helper.
func (s *InMemoryStore) SeedUser(user consent.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.Profile != nil {
		s.profiles[user.ID] = *user.Profile
	}
	user.Profile = nil
	s.users[user.ID] = user
}

func (s *InMemoryStore) FindUser(_ context.Context, userID domain.UserID) (*consent.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if profile, ok := s.profiles[userID]; ok {
		copied := profile
		user.Profile = &copied
	}
	return &user, nil
}

func (s *InMemoryStore) FindActiveConsent(_ context.Context, userID domain.UserID, now time.Time) (*consent.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *consent.Record
	for _, record := range s.records {
		if record.ChildUserID != userID || !record.Active(now) {
			continue
		}
		copied := record
		if latest == nil || laterConsentDate(&copied, latest) {
			latest = &copied
		}
	}
	if latest == nil {
		return nil, sentinel.ErrNotFound
	}
	return latest, nil
}

func (s *InMemoryStore) FindConsent(_ context.Context, recordID domain.ConsentID) (*consent.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[recordID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := record
	return &copied, nil
}

func (s *InMemoryStore) FindLatestPendingConsent(_ context.Context, userID domain.UserID, method domain.VerificationMethod) (*consent.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *consent.Record
	for _, record := range s.records {
		if record.ChildUserID != userID || record.Method != method {
			continue
		}
		if record.Granted || record.RevokedAt != nil {
			continue
		}
		copied := record
		if latest == nil || copied.CreatedAt.After(latest.CreatedAt) {
			latest = &copied
		}
	}
	if latest == nil {
		return nil, sentinel.ErrNotFound
	}
	return latest, nil
}

func (s *InMemoryStore) CreateConsent(_ context.Context, record *consent.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[record.ID]; exists {
		return sentinel.ErrConflict
	}
	s.records[record.ID] = *record
	return nil
}

func (s *InMemoryStore) UpdateConsent(_ context.Context, record *consent.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[record.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.records[record.ID] = *record
	return nil
}

func (s *InMemoryStore) UpdateProfile(_ context.Context, userID domain.UserID, update consent.ProfileUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if update.ConsentStatus != nil {
		profile.ConsentStatus = *update.ConsentStatus
	}
	if update.ConsentDate != nil {
		profile.ConsentDate = update.ConsentDate
	}
	if update.COPPACompliant != nil {
		profile.COPPACompliant = *update.COPPACompliant
	}
	if update.ParentEmail != nil {
		profile.ParentEmail = *update.ParentEmail
	}
	if update.ParentName != nil {
		profile.ParentName = *update.ParentName
	}
	if update.ConsentTokenDigest != nil {
		profile.ConsentTokenDigest = *update.ConsentTokenDigest
	}
	if update.TokenExpires != nil {
		profile.ConsentTokenExpires = update.TokenExpires
	}
	if update.ClearToken {
		profile.ConsentTokenDigest = ""
		profile.ConsentTokenExpires = nil
	}
	s.profiles[userID] = profile
	return nil
}

func (s *InMemoryStore) FindProfileByTokenDigest(_ context.Context, digest string) (*consent.Profile, error) {
	if digest == "" {
		return nil, sentinel.ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for userID, profile := range s.profiles {
		if profile.ConsentTokenDigest == digest {
			copied := profile
			copied.UserID = userID
			return &copied, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) ListConsentHistory(_ context.Context, userID domain.UserID) ([]*consent.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*consent.Record
	for _, record := range s.records {
		if record.ChildUserID != userID {
			continue
		}
		copied := record
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemoryStore) FindExpiring(_ context.Context, now, until time.Time) ([]*consent.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*consent.Record
	for _, record := range s.records {
		if !record.Granted || record.RevokedAt != nil || record.ExpiresAt == nil {
			continue
		}
		if record.ExpiresAt.After(now) && !record.ExpiresAt.After(until) {
			copied := record
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *InMemoryStore) DeleteExpiredRecords(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, record := range s.records {
		neverGranted := !record.Granted && record.CreatedAt.Before(cutoff)
		staleRevoked := record.RevokedAt != nil && record.RevokedAt.Before(cutoff)
		if neverGranted || staleRevoked {
			delete(s.records, id)
			removed++
		}
	}
	return removed, nil
}

// Profile returns a copy of the stored profile. Test helper.
func (s *InMemoryStore) Profile(userID domain.UserID) (consent.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[userID]
	return profile, ok
}

func laterConsentDate(a, b *consent.Record) bool {
	if a.ConsentDate == nil {
		return false
	}
	if b.ConsentDate == nil {
		return true
	}
	return a.ConsentDate.After(*b.ConsentDate)
}
