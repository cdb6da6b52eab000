package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"guardian/internal/audit"
	"guardian/internal/consent"
	"guardian/internal/consent/metrics"
	"guardian/internal/kba"
	"guardian/internal/platform/device"
	"guardian/pkg/domain"
	dErrors "guardian/pkg/domain-errors"
	"guardian/pkg/email"
	"guardian/pkg/platform/secrets"
	"guardian/pkg/platform/sentinel"
	"guardian/pkg/requestcontext"
)

// Config tunes the consent lifecycle. Zero fields fall back to the documented
// defaults.
type Config struct {
	ValidityPeriod  time.Duration
	RetentionPeriod time.Duration
	RenewalLeadTime time.Duration
	EmailTokenTTL   time.Duration
}

func (c *Config) applyDefaults() {
	if c.ValidityPeriod <= 0 {
		c.ValidityPeriod = 365 * 24 * time.Hour
	}
	if c.RetentionPeriod <= 0 {
		c.RetentionPeriod = 3 * 365 * 24 * time.Hour
	}
	if c.RenewalLeadTime <= 0 {
		c.RenewalLeadTime = 30 * 24 * time.Hour
	}
	if c.EmailTokenTTL <= 0 {
		c.EmailTokenTTL = 7 * 24 * time.Hour
	}
}

// Service orchestrates the consent lifecycle. It never caches durable state
// across calls: every operation re-fetches current records so concurrent
// grant/revoke cannot act on stale state.
type Service struct {
	store   Store
	tx      StoreTx
	quiz    QuizVerifier
	auditor Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
	cfg     Config
	tracer  trace.Tracer
}

func NewService(store Store, tx StoreTx, quiz QuizVerifier, auditor Publisher, m *metrics.Metrics, logger *slog.Logger, cfg Config) *Service {
	cfg.applyDefaults()
	return &Service{
		store:   store,
		tx:      tx,
		quiz:    quiz,
		auditor: auditor,
		metrics: m,
		logger:  logger,
		cfg:     cfg,
		tracer:  otel.Tracer("guardian/consent"),
	}
}

// InitiateRequest carries the fields of a consent initiation. Requester IP
// and User-Agent travel in the context (requestcontext), set by middleware.
type InitiateRequest struct {
	ChildUserID domain.UserID
	ParentEmail string
	ParentName  string
	Method      domain.VerificationMethod
	Scope       []domain.ConsentScope
}

// InitiateResult reports a created pending record plus method-specific
// material: the quiz session for KBA, the one-time confirmation token for
// EMAIL (returned exactly once, for the mailer; only its digest is stored).
type InitiateResult struct {
	ConsentRecordID domain.ConsentID
	KBASession      *GeneratedKBASession
	EmailToken      string
}

// GeneratedKBASession aliases the session manager's public projection so
// transport code does not import the kba packages directly.
type GeneratedKBASession struct {
	Token     domain.SessionToken  `json:"sessionId"`
	Questions []kba.PublicQuestion `json:"questions"`
	ExpiresAt time.Time            `json:"expiresAt"`
}

// Initiate starts a consent flow for a child account.
//
// Errors: CodeUserNotFound, CodeNotAMinor, CodeConsentAlreadyExists,
// CodeInvalidInput, CodeInfra.
func (s *Service) Initiate(ctx context.Context, req InitiateRequest) (*InitiateResult, error) {
	ctx, span := s.tracer.Start(ctx, "consent.Initiate",
		trace.WithAttributes(attribute.String("consent.method", req.Method.String())))
	defer span.End()

	if req.ChildUserID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "child user id is required")
	}
	if !strings.Contains(req.ParentEmail, "@") {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "parent email is required")
	}
	if !req.Method.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "unsupported verification method")
	}
	if len(req.Scope) == 0 {
		req.Scope = domain.DefaultConsentScopes()
	}
	if req.ParentName == "" {
		first, last := email.DeriveNameFromEmail(req.ParentEmail)
		req.ParentName = first + " " + last
	}

	user, err := s.store.FindUser(ctx, req.ChildUserID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUserNotFound, "child user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInfra, "could not load user")
	}
	if user.Profile == nil || !user.Profile.IsMinor {
		return nil, dErrors.New(dErrors.CodeNotAMinor, "user is not identified as a minor")
	}

	now := requestcontext.Now(ctx)
	if _, err := s.store.FindActiveConsent(ctx, req.ChildUserID, now); err == nil {
		return nil, dErrors.New(dErrors.CodeConsentAlreadyExists, "active consent already exists")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInfra, "could not check active consent")
	}

	record := &consent.Record{
		ID:          domain.NewConsentID(),
		ChildUserID: req.ChildUserID,
		ParentEmail: req.ParentEmail,
		ParentName:  req.ParentName,
		Method:      req.Method,
		Scope:       req.Scope,
		IPAddress:   requestcontext.ClientIP(ctx),
		UserAgent:   requestcontext.UserAgent(ctx),
		CreatedAt:   now,
	}
	if err := s.store.CreateConsent(ctx, record); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInfra, "could not create consent record")
	}

	result := &InitiateResult{ConsentRecordID: record.ID}

	switch req.Method {
	case domain.MethodKBA:
		quiz, err := s.quiz.Generate(ctx, kba.ParseLanguage(user.Profile.Language))
		if err != nil {
			return nil, err
		}
		result.KBASession = &GeneratedKBASession{
			Token:     quiz.Token,
			Questions: quiz.Questions,
			ExpiresAt: quiz.ExpiresAt,
		}

	case domain.MethodEmail:
		token, err := secrets.Generate()
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not mint confirmation token")
		}
		digest := secrets.Digest(token)
		expiry := now.Add(s.cfg.EmailTokenTTL)
		pending := consent.StatusPending
		update := consent.ProfileUpdate{
			ConsentStatus:      &pending,
			ParentEmail:        &req.ParentEmail,
			ParentName:         &req.ParentName,
			ConsentTokenDigest: &digest,
			TokenExpires:       &expiry,
		}
		if err := s.store.UpdateProfile(ctx, req.ChildUserID, update); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInfra, "could not store confirmation token")
		}
		result.EmailToken = token
	}

	s.metrics.RecordInitiated(req.Method.String())
	s.emit(ctx, audit.Event{
		ChildUserID: req.ChildUserID,
		ConsentID:   record.ID,
		Action:      audit.ActionConsentInitiated,
		Method:      req.Method.String(),
		ParentEmail: req.ParentEmail,
		Device:      device.ParseUserAgent(record.UserAgent),
		IPAddress:   record.IPAddress,
	})
	return result, nil
}

// VerifyKBA scores a quiz submission against a pending record. Session
// manager error codes pass through verbatim. On any scoring outcome the
// answer digest, score and requester IP are persisted for audit before the
// pass/fail branch.
//
// Errors: CodeRecordNotFound, CodeConsentAlreadyGranted, CodeSessionNotFound,
// CodeSessionExpired, CodeMaxAttemptsExceeded, CodeKBAFailed, CodeInfra.
func (s *Service) VerifyKBA(ctx context.Context, recordID domain.ConsentID, token domain.SessionToken, answers map[string]int) (*kba.VerificationResult, error) {
	ctx, span := s.tracer.Start(ctx, "consent.VerifyKBA")
	defer span.End()

	record, err := s.loadPendingRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}

	result, err := s.quiz.Verify(ctx, token, answers)
	if err != nil {
		return nil, err
	}

	record.KBAAnswerDigest = hashAnswers(answers)
	record.KBAScore = &result.Score
	if ip := requestcontext.ClientIP(ctx); ip != "" {
		record.IPAddress = ip
	}
	if err := s.store.UpdateConsent(ctx, record); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInfra, "could not persist verification evidence")
	}

	if !result.Passed {
		s.metrics.RecordOutcome("kba_failed")
		s.emit(ctx, audit.Event{
			ChildUserID: record.ChildUserID,
			ConsentID:   record.ID,
			Action:      audit.ActionKBAFailed,
			Method:      record.Method.String(),
			Reason:      fmt.Sprintf("score %d%% below threshold %d%%", result.Score, result.PassThreshold),
			IPAddress:   record.IPAddress,
		})
		return nil, dErrors.Newf(dErrors.CodeKBAFailed,
			"KBA verification failed. Score: %d%%, Required: %d%%", result.Score, result.PassThreshold)
	}

	if err := s.Grant(ctx, recordID); err != nil {
		return nil, err
	}
	return result, nil
}

// VerifyPayment records a payment gateway outcome against a pending record.
// Only the gateway's verified boolean is trusted here; charge mechanics live
// elsewhere.
//
// Errors: CodeRecordNotFound, CodeConsentAlreadyGranted, CodePaymentFailed,
// CodeInfra.
func (s *Service) VerifyPayment(ctx context.Context, recordID domain.ConsentID, paymentReference string, paymentVerified bool) error {
	ctx, span := s.tracer.Start(ctx, "consent.VerifyPayment")
	defer span.End()

	record, err := s.loadPendingRecord(ctx, recordID)
	if err != nil {
		return err
	}

	record.PaymentReference = paymentReference
	record.PaymentVerified = &paymentVerified
	if ip := requestcontext.ClientIP(ctx); ip != "" {
		record.IPAddress = ip
	}
	if err := s.store.UpdateConsent(ctx, record); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInfra, "could not persist verification evidence")
	}

	if !paymentVerified {
		s.metrics.RecordOutcome("payment_failed")
		s.emit(ctx, audit.Event{
			ChildUserID: record.ChildUserID,
			ConsentID:   record.ID,
			Action:      audit.ActionPaymentFailed,
			Method:      record.Method.String(),
			Reason:      "payment not verified by gateway",
		})
		return dErrors.New(dErrors.CodePaymentFailed, "payment verification failed")
	}

	return s.Grant(ctx, recordID)
}

// Grant marks the record granted and flips the child profile to GRANTED in
// one atomic transaction. Idempotent-safe: a concurrent or repeated call sees
// the fresh record inside the transaction and returns
// CodeConsentAlreadyGranted without re-applying anything.
func (s *Service) Grant(ctx context.Context, recordID domain.ConsentID) error {
	ctx, span := s.tracer.Start(ctx, "consent.Grant")
	defer span.End()
	start := time.Now()

	record, err := s.findRecord(ctx, recordID)
	if err != nil {
		return err
	}

	err = s.tx.RunInTx(ctx, record.ChildUserID.String(), func(store Store) error {
		fresh, err := store.FindConsent(ctx, recordID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeRecordNotFound, "consent record not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInfra, "could not load consent record")
		}
		return s.grantLocked(ctx, store, fresh)
	})
	if err != nil {
		return err
	}

	s.metrics.RecordOutcome("granted")
	s.metrics.ObserveGrant(time.Since(start).Seconds())
	s.emit(ctx, audit.Event{
		ChildUserID: record.ChildUserID,
		ConsentID:   record.ID,
		Action:      audit.ActionConsentGranted,
		Method:      record.Method.String(),
	})
	return nil
}

// grantLocked applies the grant to an already-fetched record inside a
// transaction. Callers hold the per-child lock.
func (s *Service) grantLocked(ctx context.Context, store Store, record *consent.Record) error {
	if record.Granted {
		return dErrors.New(dErrors.CodeConsentAlreadyGranted, "consent already granted")
	}

	now := requestcontext.Now(ctx)
	expires := now.Add(s.cfg.ValidityPeriod)
	record.Granted = true
	record.ConsentDate = &now
	record.ExpiresAt = &expires
	if err := store.UpdateConsent(ctx, record); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInfra, "could not update consent record")
	}

	granted := consent.StatusGranted
	compliant := true
	update := consent.ProfileUpdate{
		ConsentStatus:  &granted,
		ConsentDate:    &now,
		COPPACompliant: &compliant,
		ClearToken:     true,
	}
	if err := store.UpdateProfile(ctx, record.ChildUserID, update); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInfra, "could not update profile")
	}
	return nil
}

// Revoke withdraws a granted consent: sets revocation fields on the record
// and flips the profile to DENIED/non-compliant in one atomic transaction.
//
// Errors: CodeRecordNotFound, CodeConflict when the record is not currently
// granted or already revoked, CodeInfra.
func (s *Service) Revoke(ctx context.Context, recordID domain.ConsentID, reason string) error {
	ctx, span := s.tracer.Start(ctx, "consent.Revoke")
	defer span.End()

	record, err := s.findRecord(ctx, recordID)
	if err != nil {
		return err
	}

	err = s.tx.RunInTx(ctx, record.ChildUserID.String(), func(store Store) error {
		fresh, err := store.FindConsent(ctx, recordID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeRecordNotFound, "consent record not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInfra, "could not load consent record")
		}
		if !fresh.Granted {
			return dErrors.New(dErrors.CodeConflict, "consent is not granted")
		}
		if fresh.RevokedAt != nil {
			return dErrors.New(dErrors.CodeConflict, "consent already revoked")
		}

		now := requestcontext.Now(ctx)
		fresh.RevokedAt = &now
		fresh.RevokedReason = reason
		if err := store.UpdateConsent(ctx, fresh); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInfra, "could not update consent record")
		}

		denied := consent.StatusDenied
		notCompliant := false
		update := consent.ProfileUpdate{
			ConsentStatus:  &denied,
			COPPACompliant: &notCompliant,
		}
		if err := store.UpdateProfile(ctx, fresh.ChildUserID, update); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInfra, "could not update profile")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.metrics.RecordOutcome("revoked")
	s.emit(ctx, audit.Event{
		ChildUserID: record.ChildUserID,
		ConsentID:   record.ID,
		Action:      audit.ActionConsentRevoked,
		Method:      record.Method.String(),
		Reason:      reason,
	})
	return nil
}

// ConfirmEmail resolves an email confirmation link. The presented token is
// digested and matched against the stored profile digest; approval grants the
// child's pending EMAIL record atomically with the profile flip, denial flips
// the profile to DENIED. An expired token marks the profile EXPIRED and
// clears the token, forcing a fresh initiation.
//
// Errors: CodeTokenInvalid, CodeTokenExpired, CodeConflict when the profile
// is no longer pending, CodeRecordNotFound, CodeInfra.
func (s *Service) ConfirmEmail(ctx context.Context, token string, approve bool) (domain.UserID, error) {
	ctx, span := s.tracer.Start(ctx, "consent.ConfirmEmail")
	defer span.End()

	var zero domain.UserID
	if len(token) < 32 {
		return zero, dErrors.New(dErrors.CodeTokenInvalid, "invalid consent token")
	}

	profile, err := s.store.FindProfileByTokenDigest(ctx, secrets.Digest(token))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return zero, dErrors.New(dErrors.CodeTokenInvalid, "consent request not found")
		}
		return zero, dErrors.Wrap(err, dErrors.CodeInfra, "could not look up consent token")
	}
	if profile.ConsentStatus != consent.StatusPending {
		return zero, dErrors.New(dErrors.CodeConflict, "consent request already processed")
	}

	now := requestcontext.Now(ctx)
	if profile.ConsentTokenExpires == nil || now.After(*profile.ConsentTokenExpires) {
		expired := consent.StatusExpired
		update := consent.ProfileUpdate{ConsentStatus: &expired, ClearToken: true}
		if err := s.store.UpdateProfile(ctx, profile.UserID, update); err != nil {
			return zero, dErrors.Wrap(err, dErrors.CodeInfra, "could not expire consent token")
		}
		s.emit(ctx, audit.Event{
			ChildUserID: profile.UserID,
			Action:      audit.ActionEmailExpired,
			Method:      domain.MethodEmail.String(),
		})
		return zero, dErrors.New(dErrors.CodeTokenExpired, "consent token has expired")
	}

	record, err := s.store.FindLatestPendingConsent(ctx, profile.UserID, domain.MethodEmail)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return zero, dErrors.New(dErrors.CodeRecordNotFound, "no pending consent record")
		}
		return zero, dErrors.Wrap(err, dErrors.CodeInfra, "could not load consent record")
	}

	if approve {
		err = s.tx.RunInTx(ctx, profile.UserID.String(), func(store Store) error {
			fresh, err := store.FindConsent(ctx, record.ID)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInfra, "could not load consent record")
			}
			return s.grantLocked(ctx, store, fresh)
		})
		if err != nil {
			return zero, err
		}
		s.metrics.RecordOutcome("granted")
		s.emit(ctx, audit.Event{
			ChildUserID: profile.UserID,
			ConsentID:   record.ID,
			Action:      audit.ActionConsentGranted,
			Method:      domain.MethodEmail.String(),
		})
		return profile.UserID, nil
	}

	err = s.tx.RunInTx(ctx, profile.UserID.String(), func(store Store) error {
		denied := consent.StatusDenied
		notCompliant := false
		update := consent.ProfileUpdate{
			ConsentStatus:  &denied,
			ConsentDate:    &now,
			COPPACompliant: &notCompliant,
			ClearToken:     true,
		}
		return store.UpdateProfile(ctx, profile.UserID, update)
	})
	if err != nil {
		return zero, dErrors.Wrap(err, dErrors.CodeInfra, "could not record denial")
	}
	s.metrics.RecordOutcome("denied")
	s.emit(ctx, audit.Event{
		ChildUserID: profile.UserID,
		ConsentID:   record.ID,
		Action:      audit.ActionConsentDenied,
		Method:      domain.MethodEmail.String(),
	})
	return profile.UserID, nil
}

// Status reports whether the child currently has an active grant, with days
// until expiry for renewal UX.
func (s *Service) Status(ctx context.Context, childUserID domain.UserID) (*consent.StatusReport, error) {
	now := requestcontext.Now(ctx)
	record, err := s.store.FindActiveConsent(ctx, childUserID, now)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return &consent.StatusReport{}, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInfra, "could not load active consent")
	}

	report := &consent.StatusReport{
		HasActiveConsent: true,
		Record: &consent.StatusRecord{
			ID:          record.ID,
			ParentEmail: record.ParentEmail,
			Method:      record.Method,
			ConsentDate: record.ConsentDate,
			ExpiresAt:   record.ExpiresAt,
		},
	}
	if record.ExpiresAt != nil {
		days := int((record.ExpiresAt.Sub(now) + 24*time.Hour - time.Nanosecond) / (24 * time.Hour))
		report.DaysUntilExpiry = &days
	}
	return report, nil
}

// History returns the child's full consent trail, newest first.
func (s *Service) History(ctx context.Context, childUserID domain.UserID) ([]consent.HistoryEntry, error) {
	records, err := s.store.ListConsentHistory(ctx, childUserID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInfra, "could not load consent history")
	}
	entries := make([]consent.HistoryEntry, len(records))
	for i, r := range records {
		entries[i] = consent.HistoryEntry{
			ID:            r.ID,
			ParentEmail:   r.ParentEmail,
			Method:        r.Method,
			Granted:       r.Granted,
			ConsentDate:   r.ConsentDate,
			ExpiresAt:     r.ExpiresAt,
			RevokedAt:     r.RevokedAt,
			RevokedReason: r.RevokedReason,
			CreatedAt:     r.CreatedAt,
		}
	}
	return entries, nil
}

// CleanupExpiredRecords purges records past the retention cutoff: never
// granted and older than the cutoff, or revoked longer ago than the cutoff.
// Live grants are never deleted. Invoked by the background retention sweep.
func (s *Service) CleanupExpiredRecords(ctx context.Context) (int, error) {
	ctx, span := s.tracer.Start(ctx, "consent.CleanupExpiredRecords")
	defer span.End()

	cutoff := requestcontext.Now(ctx).Add(-s.cfg.RetentionPeriod)
	removed, err := s.store.DeleteExpiredRecords(ctx, cutoff)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInfra, "retention sweep failed")
	}
	s.metrics.RecordPurged(removed)
	if removed > 0 {
		s.logger.InfoContext(ctx, "retention sweep removed records", "count", removed)
	}
	return removed, nil
}

// SendRenewalReminders emits one reminder event per active consent expiring
// within the lead window. Delivery is external; this only finds candidates
// and publishes. A non-positive lead falls back to the configured default.
func (s *Service) SendRenewalReminders(ctx context.Context, lead time.Duration) (int, error) {
	ctx, span := s.tracer.Start(ctx, "consent.SendRenewalReminders")
	defer span.End()

	if lead <= 0 {
		lead = s.cfg.RenewalLeadTime
	}
	now := requestcontext.Now(ctx)
	expiring, err := s.store.FindExpiring(ctx, now, now.Add(lead))
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInfra, "could not find expiring consents")
	}

	sent := 0
	for _, record := range expiring {
		s.emit(ctx, audit.Event{
			ChildUserID: record.ChildUserID,
			ConsentID:   record.ID,
			Action:      audit.ActionReminderDue,
			Method:      record.Method.String(),
			ParentEmail: record.ParentEmail,
		})
		sent++
	}
	s.metrics.RecordReminders(sent)
	return sent, nil
}

// loadPendingRecord fetches a record and guards the shared verification
// preconditions.
func (s *Service) loadPendingRecord(ctx context.Context, recordID domain.ConsentID) (*consent.Record, error) {
	record, err := s.findRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record.Granted {
		return nil, dErrors.New(dErrors.CodeConsentAlreadyGranted, "consent already granted")
	}
	return record, nil
}

func (s *Service) findRecord(ctx context.Context, recordID domain.ConsentID) (*consent.Record, error) {
	record, err := s.store.FindConsent(ctx, recordID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeRecordNotFound, "consent record not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInfra, "could not load consent record")
	}
	return record, nil
}

// emit publishes an audit event, logging on failure instead of failing the
// operation: the consent transition already committed.
func (s *Service) emit(ctx context.Context, event audit.Event) {
	event.RequestID = requestcontext.RequestID(ctx)
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "audit emit failed",
			"action", event.Action,
			"error", err.Error(),
		)
	}
}

// hashAnswers reduces a submitted answer set to a deterministic SHA-256
// digest for audit evidence. Question ids are sorted so map iteration order
// cannot change the digest.
func hashAnswers(answers map[string]int) string {
	ids := make([]string, 0, len(answers))
	for qid := range answers {
		ids = append(ids, qid)
	}
	sort.Strings(ids)

	var b strings.Builder
	for i, qid := range ids {
		if i > 0 {
			b.WriteByte(';')
		}
		fmt.Fprintf(&b, "%s=%d", qid, answers[qid])
	}
	return secrets.Digest(b.String())
}
