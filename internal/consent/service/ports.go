package service

import (
	"context"
	"time"

	"guardian/internal/audit"
	"guardian/internal/consent"
	"guardian/internal/kba"
	"guardian/internal/kba/session"
	"guardian/pkg/domain"
)

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

// Store is the durable storage port for users, profiles and consent records.
// The platform's relational store implements it; every operation is
// potentially blocking I/O.
//
// Implementations return sentinel.ErrNotFound for missing entities and plain
// errors for I/O failures; the service translates at the boundary.
type Store interface {
	// FindUser loads the child account with its profile.
	FindUser(ctx context.Context, userID domain.UserID) (*consent.User, error)

	// FindActiveConsent returns the most recent live grant for the child
	// (granted, unrevoked, expiring after now), or sentinel.ErrNotFound.
	FindActiveConsent(ctx context.Context, userID domain.UserID, now time.Time) (*consent.Record, error)

	// FindConsent loads one record by id.
	FindConsent(ctx context.Context, recordID domain.ConsentID) (*consent.Record, error)

	// FindLatestPendingConsent returns the newest non-granted, non-revoked
	// record for the child and method, or sentinel.ErrNotFound.
	FindLatestPendingConsent(ctx context.Context, userID domain.UserID, method domain.VerificationMethod) (*consent.Record, error)

	CreateConsent(ctx context.Context, record *consent.Record) error
	UpdateConsent(ctx context.Context, record *consent.Record) error

	UpdateProfile(ctx context.Context, userID domain.UserID, update consent.ProfileUpdate) error

	// FindProfileByTokenDigest resolves the email confirmation flow: the
	// presented token is digested and matched against the stored digest.
	FindProfileByTokenDigest(ctx context.Context, digest string) (*consent.Profile, error)

	// ListConsentHistory returns every record for the child, newest first.
	ListConsentHistory(ctx context.Context, userID domain.UserID) ([]*consent.Record, error)

	// FindExpiring returns live grants whose expiry falls in (now, until].
	FindExpiring(ctx context.Context, now, until time.Time) ([]*consent.Record, error)

	// DeleteExpiredRecords purges records past the retention cutoff: never
	// granted and created before cutoff, or revoked before cutoff. Live
	// grants are never deleted.
	DeleteExpiredRecords(ctx context.Context, cutoff time.Time) (int, error)
}

// QuizVerifier is the KBA session manager port.
type QuizVerifier interface {
	Generate(ctx context.Context, lang kba.Language) (*session.GeneratedSession, error)
	Verify(ctx context.Context, token domain.SessionToken, answers map[string]int) (*kba.VerificationResult, error)
}

// Publisher re-exports the audit port so mocks stay local to this module.
type Publisher interface {
	Emit(ctx context.Context, event audit.Event) error
}
