// Package session implements the KBA quiz session manager and its backing
// stores. Sessions are ephemeral and single-use: they carry answer-bearing
// content, so they live only here (memory or Redis), never in durable storage.
package session

import (
	"context"
	"time"

	"guardian/internal/kba"
	id "guardian/pkg/domain"
)

// Store abstracts transient session persistence. The deployment defaults to
// the in-process store; Redis backs multi-instance deployments.
//
// Implementations return sentinel.ErrNotFound for missing tokens. Atomicity
// across Find/Save/Delete is the Manager's job (per-token locking); stores
// only guarantee that individual operations are safe under concurrency.
type Store interface {
	Save(ctx context.Context, s *kba.Session) error
	Find(ctx context.Context, token id.SessionToken) (*kba.Session, error)
	Delete(ctx context.Context, token id.SessionToken) error
	// DeleteExpired removes sessions past their TTL and reports how many were
	// removed. Backends with native TTL eviction may report 0.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
