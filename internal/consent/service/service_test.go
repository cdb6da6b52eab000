package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"guardian/internal/audit"
	"guardian/internal/consent"
	"guardian/internal/consent/service"
	"guardian/internal/consent/service/mocks"
	"guardian/internal/consent/store"
	"guardian/internal/kba"
	"guardian/internal/kba/session"
	"guardian/pkg/domain"
	dErrors "guardian/pkg/domain-errors"
	"guardian/pkg/platform/secrets"
	"guardian/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	store   *store.InMemoryStore
	quiz    *mocks.MockQuizVerifier
	auditor *mocks.MockPublisher
	svc     *service.Service
	events  []audit.Event
	now     time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = store.NewInMemoryStore()
	s.quiz = mocks.NewMockQuizVerifier(s.ctrl)
	s.auditor = mocks.NewMockPublisher(s.ctrl)
	s.events = nil
	s.auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event audit.Event) error {
			s.events = append(s.events, event)
			return nil
		}).AnyTimes()
	s.now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	s.svc = service.NewService(
		s.store,
		service.NewShardedMemoryTx(s.store),
		s.quiz,
		s.auditor,
		nil,
		logger,
		service.Config{},
	)
}

func (s *ServiceSuite) ctx() context.Context {
	ctx := requestcontext.WithTime(context.Background(), s.now)
	return requestcontext.WithClientMetadata(ctx, "203.0.113.7", "Mozilla/5.0 test")
}

func (s *ServiceSuite) seedChild(minor bool) domain.UserID {
	childID := domain.UserID(uuid.New())
	s.store.SeedUser(consent.User{
		ID:    childID,
		Email: "kid@example.com",
		Name:  "Kid",
		Profile: &consent.Profile{
			UserID:        childID,
			Language:      "en",
			IsMinor:       minor,
			ConsentStatus: consent.StatusPending,
		},
	})
	return childID
}

func (s *ServiceSuite) initiateKBA(childID domain.UserID) *service.InitiateResult {
	s.quiz.EXPECT().Generate(gomock.Any(), kba.LanguageEnglish).Return(&session.GeneratedSession{
		Token:     domain.SessionToken("quiz-session-token"),
		Questions: []kba.PublicQuestion{},
		ExpiresAt: s.now.Add(15 * time.Minute),
	}, nil)

	result, err := s.svc.Initiate(s.ctx(), service.InitiateRequest{
		ChildUserID: childID,
		ParentEmail: "parent@example.com",
		ParentName:  "Parent",
		Method:      domain.MethodKBA,
	})
	s.Require().NoError(err)
	return result
}

func (s *ServiceSuite) lastEvent() audit.Event {
	s.Require().NotEmpty(s.events)
	return s.events[len(s.events)-1]
}

func (s *ServiceSuite) TestInitiateValidation() {
	childID := s.seedChild(true)

	s.Run("missing child id", func() {
		_, err := s.svc.Initiate(s.ctx(), service.InitiateRequest{
			ParentEmail: "parent@example.com",
			Method:      domain.MethodKBA,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("bad parent email", func() {
		_, err := s.svc.Initiate(s.ctx(), service.InitiateRequest{
			ChildUserID: childID,
			ParentEmail: "not-an-email",
			Method:      domain.MethodKBA,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("unknown method", func() {
		_, err := s.svc.Initiate(s.ctx(), service.InitiateRequest{
			ChildUserID: childID,
			ParentEmail: "parent@example.com",
			Method:      domain.VerificationMethod("CARRIER_PIGEON"),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("unknown user", func() {
		_, err := s.svc.Initiate(s.ctx(), service.InitiateRequest{
			ChildUserID: domain.UserID(uuid.New()),
			ParentEmail: "parent@example.com",
			Method:      domain.MethodKBA,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeUserNotFound))
	})

	s.Run("adult account", func() {
		adultID := s.seedChild(false)
		_, err := s.svc.Initiate(s.ctx(), service.InitiateRequest{
			ChildUserID: adultID,
			ParentEmail: "parent@example.com",
			Method:      domain.MethodKBA,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeNotAMinor))
	})
}

func (s *ServiceSuite) TestInitiateKBAReturnsSession() {
	childID := s.seedChild(true)
	result := s.initiateKBA(childID)

	s.False(result.ConsentRecordID.IsZero())
	s.Require().NotNil(result.KBASession)
	s.Equal(domain.SessionToken("quiz-session-token"), result.KBASession.Token)
	s.Empty(result.EmailToken)

	record, err := s.store.FindConsent(s.ctx(), result.ConsentRecordID)
	s.Require().NoError(err)
	s.False(record.Granted)
	s.Equal(domain.DefaultConsentScopes(), record.Scope)
	s.Equal("203.0.113.7", record.IPAddress)

	event := s.lastEvent()
	s.Equal(audit.ActionConsentInitiated, event.Action)
	s.Equal("parent@example.com", event.ParentEmail)
}

func (s *ServiceSuite) TestInitiateEmailStoresDigestOnly() {
	childID := s.seedChild(true)

	result, err := s.svc.Initiate(s.ctx(), service.InitiateRequest{
		ChildUserID: childID,
		ParentEmail: "parent@example.com",
		ParentName:  "Parent",
		Method:      domain.MethodEmail,
	})
	s.Require().NoError(err)
	s.Nil(result.KBASession)
	s.Require().GreaterOrEqual(len(result.EmailToken), 32)

	// Only the digest lands in the profile; the raw token is returned once.
	profile, err := s.store.FindProfileByTokenDigest(s.ctx(), secrets.Digest(result.EmailToken))
	s.Require().NoError(err)
	s.Equal(childID, profile.UserID)
	s.NotEqual(result.EmailToken, profile.ConsentTokenDigest)
	s.Require().NotNil(profile.ConsentTokenExpires)
	s.Equal(s.now.Add(7*24*time.Hour), *profile.ConsentTokenExpires)
}

func (s *ServiceSuite) TestInitiateRejectsWhenActiveConsentExists() {
	childID := s.seedChild(true)
	result := s.initiateKBA(childID)
	s.Require().NoError(s.svc.Grant(s.ctx(), result.ConsentRecordID))

	_, err := s.svc.Initiate(s.ctx(), service.InitiateRequest{
		ChildUserID: childID,
		ParentEmail: "parent@example.com",
		Method:      domain.MethodKBA,
	})
	s.True(dErrors.HasCode(err, dErrors.CodeConsentAlreadyExists))
}

func (s *ServiceSuite) TestVerifyKBAPassGrants() {
	childID := s.seedChild(true)
	result := s.initiateKBA(childID)
	token := result.KBASession.Token
	answers := map[string]int{"gen-001": 0, "math-001": 2}

	s.quiz.EXPECT().Verify(gomock.Any(), token, answers).Return(&kba.VerificationResult{
		Passed:         true,
		Score:          80,
		TotalQuestions: 5,
		CorrectAnswers: 4,
		PassThreshold:  70,
	}, nil)

	verification, err := s.svc.VerifyKBA(s.ctx(), result.ConsentRecordID, token, answers)
	s.Require().NoError(err)
	s.Equal(80, verification.Score)

	record, err := s.store.FindConsent(s.ctx(), result.ConsentRecordID)
	s.Require().NoError(err)
	s.True(record.Granted)
	s.Require().NotNil(record.KBAScore)
	s.Equal(80, *record.KBAScore)
	s.NotEmpty(record.KBAAnswerDigest)
	s.Require().NotNil(record.ExpiresAt)
	s.Equal(s.now.Add(365*24*time.Hour), *record.ExpiresAt)

	user, err := s.store.FindUser(s.ctx(), childID)
	s.Require().NoError(err)
	s.Equal(consent.StatusGranted, user.Profile.ConsentStatus)
	s.True(user.Profile.COPPACompliant)
	s.Equal(audit.ActionConsentGranted, s.lastEvent().Action)
}

func (s *ServiceSuite) TestVerifyKBAFailurePersistsEvidence() {
	childID := s.seedChild(true)
	result := s.initiateKBA(childID)
	token := result.KBASession.Token
	answers := map[string]int{"gen-001": 3}

	s.quiz.EXPECT().Verify(gomock.Any(), token, answers).Return(&kba.VerificationResult{
		Passed:         false,
		Score:          60,
		TotalQuestions: 5,
		CorrectAnswers: 3,
		PassThreshold:  70,
	}, nil)

	_, err := s.svc.VerifyKBA(s.ctx(), result.ConsentRecordID, token, answers)
	s.True(dErrors.HasCode(err, dErrors.CodeKBAFailed))
	s.Equal("KBA verification failed. Score: 60%, Required: 70%", dErrors.MessageOf(err))

	// Evidence is persisted even on failure.
	record, findErr := s.store.FindConsent(s.ctx(), result.ConsentRecordID)
	s.Require().NoError(findErr)
	s.False(record.Granted)
	s.Require().NotNil(record.KBAScore)
	s.Equal(60, *record.KBAScore)
	s.NotEmpty(record.KBAAnswerDigest)

	user, findErr := s.store.FindUser(s.ctx(), childID)
	s.Require().NoError(findErr)
	s.Equal(consent.StatusPending, user.Profile.ConsentStatus)
	s.Equal(audit.ActionKBAFailed, s.lastEvent().Action)
}

func (s *ServiceSuite) TestVerifyKBASessionErrorsPassThrough() {
	childID := s.seedChild(true)
	result := s.initiateKBA(childID)
	token := result.KBASession.Token

	for _, code := range []dErrors.Code{
		dErrors.CodeSessionNotFound,
		dErrors.CodeSessionExpired,
		dErrors.CodeMaxAttemptsExceeded,
	} {
		s.Run(string(code), func() {
			s.quiz.EXPECT().Verify(gomock.Any(), token, gomock.Any()).
				Return(nil, dErrors.New(code, "session error"))
			_, err := s.svc.VerifyKBA(s.ctx(), result.ConsentRecordID, token, map[string]int{"q": 0})
			s.True(dErrors.HasCode(err, code))
		})
	}
}

func (s *ServiceSuite) TestVerifyKBAGuards() {
	childID := s.seedChild(true)
	result := s.initiateKBA(childID)
	token := result.KBASession.Token

	s.Run("unknown record", func() {
		_, err := s.svc.VerifyKBA(s.ctx(), domain.NewConsentID(), token, map[string]int{"q": 0})
		s.True(dErrors.HasCode(err, dErrors.CodeRecordNotFound))
	})

	s.Run("already granted", func() {
		s.Require().NoError(s.svc.Grant(s.ctx(), result.ConsentRecordID))
		_, err := s.svc.VerifyKBA(s.ctx(), result.ConsentRecordID, token, map[string]int{"q": 0})
		s.True(dErrors.HasCode(err, dErrors.CodeConsentAlreadyGranted))
	})
}

func (s *ServiceSuite) TestVerifyPayment() {
	childID := s.seedChild(true)
	result := s.initiateKBA(childID)

	s.Run("gateway declined", func() {
		err := s.svc.VerifyPayment(s.ctx(), result.ConsentRecordID, "txn-001", false)
		s.True(dErrors.HasCode(err, dErrors.CodePaymentFailed))

		record, findErr := s.store.FindConsent(s.ctx(), result.ConsentRecordID)
		s.Require().NoError(findErr)
		s.Equal("txn-001", record.PaymentReference)
		s.Require().NotNil(record.PaymentVerified)
		s.False(*record.PaymentVerified)
	})

	s.Run("gateway verified", func() {
		s.Require().NoError(s.svc.VerifyPayment(s.ctx(), result.ConsentRecordID, "txn-002", true))

		record, err := s.store.FindConsent(s.ctx(), result.ConsentRecordID)
		s.Require().NoError(err)
		s.True(record.Granted)
		s.Require().NotNil(record.PaymentVerified)
		s.True(*record.PaymentVerified)
	})
}

func (s *ServiceSuite) TestGrantIsNotRepeatable() {
	childID := s.seedChild(true)
	result := s.initiateKBA(childID)

	s.Require().NoError(s.svc.Grant(s.ctx(), result.ConsentRecordID))
	err := s.svc.Grant(s.ctx(), result.ConsentRecordID)
	s.True(dErrors.HasCode(err, dErrors.CodeConsentAlreadyGranted))

	err = s.svc.Grant(s.ctx(), domain.NewConsentID())
	s.True(dErrors.HasCode(err, dErrors.CodeRecordNotFound))
}

func (s *ServiceSuite) TestRevoke() {
	childID := s.seedChild(true)
	result := s.initiateKBA(childID)

	s.Run("not yet granted", func() {
		err := s.svc.Revoke(s.ctx(), result.ConsentRecordID, "changed mind")
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Require().NoError(s.svc.Grant(s.ctx(), result.ConsentRecordID))

	s.Run("revokes a live grant", func() {
		s.Require().NoError(s.svc.Revoke(s.ctx(), result.ConsentRecordID, "parent request"))

		record, err := s.store.FindConsent(s.ctx(), result.ConsentRecordID)
		s.Require().NoError(err)
		s.Require().NotNil(record.RevokedAt)
		s.Equal("parent request", record.RevokedReason)

		user, err := s.store.FindUser(s.ctx(), childID)
		s.Require().NoError(err)
		s.Equal(consent.StatusDenied, user.Profile.ConsentStatus)
		s.False(user.Profile.COPPACompliant)
		s.Equal(audit.ActionConsentRevoked, s.lastEvent().Action)
	})

	s.Run("second revoke conflicts", func() {
		err := s.svc.Revoke(s.ctx(), result.ConsentRecordID, "again")
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func (s *ServiceSuite) initiateEmail(childID domain.UserID) (domain.ConsentID, string) {
	result, err := s.svc.Initiate(s.ctx(), service.InitiateRequest{
		ChildUserID: childID,
		ParentEmail: "parent@example.com",
		ParentName:  "Parent",
		Method:      domain.MethodEmail,
	})
	s.Require().NoError(err)
	return result.ConsentRecordID, result.EmailToken
}

func (s *ServiceSuite) TestConfirmEmailApprove() {
	childID := s.seedChild(true)
	recordID, token := s.initiateEmail(childID)

	confirmedID, err := s.svc.ConfirmEmail(s.ctx(), token, true)
	s.Require().NoError(err)
	s.Equal(childID, confirmedID)

	record, err := s.store.FindConsent(s.ctx(), recordID)
	s.Require().NoError(err)
	s.True(record.Granted)

	user, err := s.store.FindUser(s.ctx(), childID)
	s.Require().NoError(err)
	s.Equal(consent.StatusGranted, user.Profile.ConsentStatus)
	s.Empty(user.Profile.ConsentTokenDigest, "token is single use")

	_, err = s.svc.ConfirmEmail(s.ctx(), token, true)
	s.True(dErrors.HasCode(err, dErrors.CodeTokenInvalid))
}

func (s *ServiceSuite) TestConfirmEmailDeny() {
	childID := s.seedChild(true)
	recordID, token := s.initiateEmail(childID)

	confirmedID, err := s.svc.ConfirmEmail(s.ctx(), token, false)
	s.Require().NoError(err)
	s.Equal(childID, confirmedID)

	record, err := s.store.FindConsent(s.ctx(), recordID)
	s.Require().NoError(err)
	s.False(record.Granted)

	user, err := s.store.FindUser(s.ctx(), childID)
	s.Require().NoError(err)
	s.Equal(consent.StatusDenied, user.Profile.ConsentStatus)
	s.Equal(audit.ActionConsentDenied, s.lastEvent().Action)
}

func (s *ServiceSuite) TestConfirmEmailTokenChecks() {
	childID := s.seedChild(true)
	_, token := s.initiateEmail(childID)

	s.Run("short token", func() {
		_, err := s.svc.ConfirmEmail(s.ctx(), "short", true)
		s.True(dErrors.HasCode(err, dErrors.CodeTokenInvalid))
	})

	s.Run("unknown token", func() {
		_, err := s.svc.ConfirmEmail(s.ctx(), "unknown-token-of-sufficient-length-........", true)
		s.True(dErrors.HasCode(err, dErrors.CodeTokenInvalid))
	})

	s.Run("expired token", func() {
		lateCtx := requestcontext.WithTime(context.Background(), s.now.Add(8*24*time.Hour))
		_, err := s.svc.ConfirmEmail(lateCtx, token, true)
		s.True(dErrors.HasCode(err, dErrors.CodeTokenExpired))

		// Expiry flips the profile and wipes the token.
		user, findErr := s.store.FindUser(s.ctx(), childID)
		s.Require().NoError(findErr)
		s.Equal(consent.StatusExpired, user.Profile.ConsentStatus)
		s.Empty(user.Profile.ConsentTokenDigest)
	})
}

func (s *ServiceSuite) TestStatus() {
	childID := s.seedChild(true)

	report, err := s.svc.Status(s.ctx(), childID)
	s.Require().NoError(err)
	s.False(report.HasActiveConsent)
	s.Nil(report.Record)

	result := s.initiateKBA(childID)
	s.Require().NoError(s.svc.Grant(s.ctx(), result.ConsentRecordID))

	report, err = s.svc.Status(s.ctx(), childID)
	s.Require().NoError(err)
	s.True(report.HasActiveConsent)
	s.Require().NotNil(report.Record)
	s.Equal(result.ConsentRecordID, report.Record.ID)
	s.Require().NotNil(report.DaysUntilExpiry)
	s.Equal(365, *report.DaysUntilExpiry)

	laterCtx := requestcontext.WithTime(context.Background(), s.now.Add(364*24*time.Hour))
	report, err = s.svc.Status(laterCtx, childID)
	s.Require().NoError(err)
	s.True(report.HasActiveConsent)
	s.Equal(1, *report.DaysUntilExpiry)
}

func (s *ServiceSuite) TestHistoryNewestFirst() {
	childID := s.seedChild(true)

	first := s.initiateKBA(childID)
	s.now = s.now.Add(time.Hour)
	result, err := s.svc.Initiate(s.ctx(), service.InitiateRequest{
		ChildUserID: childID,
		ParentEmail: "parent@example.com",
		Method:      domain.MethodEmail,
	})
	s.Require().NoError(err)

	entries, err := s.svc.History(s.ctx(), childID)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(result.ConsentRecordID, entries[0].ID)
	s.Equal(first.ConsentRecordID, entries[1].ID)
}

func (s *ServiceSuite) TestCleanupExpiredRecords() {
	childID := s.seedChild(true)
	result := s.initiateKBA(childID)

	// Not yet past retention.
	removed, err := s.svc.CleanupExpiredRecords(s.ctx())
	s.Require().NoError(err)
	s.Zero(removed)

	// Four years on, the abandoned record is past retention.
	lateCtx := requestcontext.WithTime(context.Background(), s.now.Add(4*365*24*time.Hour))
	removed, err = s.svc.CleanupExpiredRecords(lateCtx)
	s.Require().NoError(err)
	s.Equal(1, removed)

	_, err = s.store.FindConsent(s.ctx(), result.ConsentRecordID)
	s.Error(err)
}

func (s *ServiceSuite) TestSendRenewalReminders() {
	childID := s.seedChild(true)
	result := s.initiateKBA(childID)
	s.Require().NoError(s.svc.Grant(s.ctx(), result.ConsentRecordID))

	sent, err := s.svc.SendRenewalReminders(s.ctx(), 0)
	s.Require().NoError(err)
	s.Zero(sent, "a fresh grant is outside the lead window")

	nearExpiry := requestcontext.WithTime(context.Background(), s.now.Add(350*24*time.Hour))
	sent, err = s.svc.SendRenewalReminders(nearExpiry, 0)
	s.Require().NoError(err)
	s.Equal(1, sent)

	event := s.lastEvent()
	s.Equal(audit.ActionReminderDue, event.Action)
	s.Equal("parent@example.com", event.ParentEmail)
}

func (s *ServiceSuite) TestStoreFailureMapsToInfra() {
	ctrl := gomock.NewController(s.T())
	failing := mocks.NewMockStore(ctrl)
	failing.EXPECT().FindUser(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	svc := service.NewService(failing, service.NewShardedMemoryTx(failing), s.quiz, s.auditor, nil, logger, service.Config{})

	_, err := svc.Initiate(s.ctx(), service.InitiateRequest{
		ChildUserID: domain.UserID(uuid.New()),
		ParentEmail: "parent@example.com",
		Method:      domain.MethodKBA,
	})
	s.True(dErrors.HasCode(err, dErrors.CodeInfra))
}
