package session

import (
	"context"
	"errors"
	"math"
	"sync"
	"time"

	"guardian/internal/kba"
	"guardian/internal/kba/bank"
	"guardian/internal/kba/metrics"
	id "guardian/pkg/domain"
	dErrors "guardian/pkg/domain-errors"
	"guardian/pkg/platform/secrets"
	"guardian/pkg/platform/sentinel"
	"guardian/pkg/requestcontext"
)

// numShards spreads per-token locks so concurrent verifications on different
// sessions do not serialize. Locking per token keeps the attempt-increment,
// threshold check and terminal deletion one atomic unit, which is what stops
// two concurrent submissions from both slipping under the attempt limit.
const numShards = 64

// Config tunes the quiz engine. Zero fields fall back to the documented
// defaults via applyDefaults.
type Config struct {
	PassThreshold       float64
	SessionTTL          time.Duration
	MaxAttempts         int
	QuestionsPerSession int
}

func (c *Config) applyDefaults() {
	if c.PassThreshold <= 0 {
		c.PassThreshold = 0.70
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = 15 * time.Minute
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.QuestionsPerSession <= 0 {
		c.QuestionsPerSession = 5
	}
}

// GeneratedSession is what a caller receives when a quiz is issued: the token
// and the public questions. Correct answers stay server-side.
type GeneratedSession struct {
	Token     id.SessionToken      `json:"sessionId"`
	Questions []kba.PublicQuestion `json:"questions"`
	ExpiresAt time.Time            `json:"expiresAt"`
}

// Manager issues and scores quiz sessions. Stateless apart from the injected
// store, so it is safe to share across requests and instances.
type Manager struct {
	store   Store
	bank    *bank.Bank
	cfg     Config
	metrics *metrics.Metrics
	shards  [numShards]sync.Mutex
}

func NewManager(store Store, b *bank.Bank, cfg Config, m *metrics.Metrics) *Manager {
	cfg.applyDefaults()
	return &Manager{store: store, bank: b, cfg: cfg, metrics: m}
}

// MaxAttempts exposes the configured attempt ceiling for status responses.
func (m *Manager) MaxAttempts() int { return m.cfg.MaxAttempts }

// Generate issues a fresh single-use session: an unguessable token, a
// selection of questions, and a TTL. Only localized prompts and options are
// returned.
func (m *Manager) Generate(ctx context.Context, lang kba.Language) (*GeneratedSession, error) {
	token, err := secrets.Generate()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not generate session token")
	}

	questions := m.bank.Select(m.cfg.QuestionsPerSession)
	now := requestcontext.Now(ctx)
	sess := &kba.Session{
		Token:     id.SessionToken(token),
		Questions: questions,
		CreatedAt: now,
		ExpiresAt: now.Add(m.cfg.SessionTTL),
	}

	if err := m.store.Save(ctx, sess); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInfra, "could not save session")
	}
	m.metrics.RecordGenerated()

	public := make([]kba.PublicQuestion, len(questions))
	for i, q := range questions {
		public[i] = q.Localize(lang)
	}
	return &GeneratedSession{Token: sess.Token, Questions: public, ExpiresAt: sess.ExpiresAt}, nil
}

// Verify scores a submission against the session's questions.
//
// Terminal paths (expiry, attempt exhaustion, pass) delete the session so its
// answer-bearing content cannot be replayed; a failing attempt with attempts
// remaining leaves the session open with the incremented counter persisted.
//
// Errors: CodeSessionNotFound, CodeSessionExpired, CodeMaxAttemptsExceeded,
// CodeInfra on store failures.
func (m *Manager) Verify(ctx context.Context, token id.SessionToken, answers map[string]int) (*kba.VerificationResult, error) {
	start := time.Now()
	defer func() {
		if m.metrics != nil {
			m.metrics.VerifyLatency.Observe(time.Since(start).Seconds())
		}
	}()

	shard := &m.shards[shardFor(token)]
	shard.Lock()
	defer shard.Unlock()

	sess, err := m.store.Find(ctx, token)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			m.metrics.RecordOutcome("not_found")
			return nil, dErrors.New(dErrors.CodeSessionNotFound, "session not found or expired")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInfra, "could not load session")
	}

	now := requestcontext.Now(ctx)
	if sess.Expired(now) {
		if err := m.store.Delete(ctx, token); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInfra, "could not delete expired session")
		}
		m.metrics.RecordOutcome("expired")
		return nil, dErrors.New(dErrors.CodeSessionExpired, "session has expired")
	}

	sess.Attempts++
	if sess.Attempts > m.cfg.MaxAttempts {
		if err := m.store.Delete(ctx, token); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInfra, "could not delete exhausted session")
		}
		m.metrics.RecordOutcome("attempts_exceeded")
		return nil, dErrors.New(dErrors.CodeMaxAttemptsExceeded, "maximum attempts exceeded")
	}

	correct := 0
	for _, q := range sess.Questions {
		if answer, ok := answers[q.ID]; ok && answer == q.CorrectIndex {
			correct++
		}
	}
	total := len(sess.Questions)
	score := float64(correct) / float64(total)
	passed := score >= m.cfg.PassThreshold

	if passed {
		if err := m.store.Delete(ctx, token); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInfra, "could not consume session")
		}
		m.metrics.RecordOutcome("passed")
	} else {
		if err := m.store.Save(ctx, sess); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInfra, "could not record attempt")
		}
		m.metrics.RecordOutcome("failed")
	}

	return &kba.VerificationResult{
		Passed:         passed,
		Score:          int(math.Round(score * 100)),
		TotalQuestions: total,
		CorrectAnswers: correct,
		PassThreshold:  int(math.Round(m.cfg.PassThreshold * 100)),
		Token:          token,
		CompletedAt:    now,
	}, nil
}

// Status is a read-only probe. An expired session reads as invalid and is
// removed as a side effect, matching read-time expiry semantics.
func (m *Manager) Status(ctx context.Context, token id.SessionToken) (kba.SessionStatus, error) {
	status := kba.SessionStatus{MaxAttempts: m.cfg.MaxAttempts}

	sess, err := m.store.Find(ctx, token)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return status, nil
		}
		return status, dErrors.Wrap(err, dErrors.CodeInfra, "could not load session")
	}

	if sess.Expired(requestcontext.Now(ctx)) {
		if err := m.store.Delete(ctx, token); err != nil {
			return status, dErrors.Wrap(err, dErrors.CodeInfra, "could not delete expired session")
		}
		return status, nil
	}

	status.Valid = true
	status.ExpiresAt = &sess.ExpiresAt
	status.Attempts = &sess.Attempts
	return status, nil
}

// CleanupExpired removes sessions past their TTL. Invoked by the background
// worker; wall-clock comparison at read time already keeps expired sessions
// unusable, so this sweep only reclaims memory.
func (m *Manager) CleanupExpired(ctx context.Context) (int, error) {
	removed, err := m.store.DeleteExpired(ctx, requestcontext.Now(ctx))
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInfra, "session sweep failed")
	}
	m.metrics.RecordSwept(removed)
	return removed, nil
}

// shardFor hashes a token onto a lock shard with FNV-1a.
func shardFor(token id.SessionToken) int {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)
	h := uint32(fnvOffset)
	s := token.String()
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return int(h % numShards)
}
