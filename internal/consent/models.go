// Package consent defines the parental consent domain model: the consent
// record lifecycle, the child user/profile projection consumed from the
// platform, and the evidence captured per verification method.
package consent

import (
	"time"

	"guardian/pkg/domain"
)

// Status is the profile-level consent state the rest of the platform reads.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusGranted Status = "GRANTED"
	StatusDenied  Status = "DENIED"
	StatusExpired Status = "EXPIRED"
)

// Record is one parental consent attempt for a child account. Created pending
// on initiation; granted or denied by a verification outcome; revocable while
// granted. Expiry is derived from ExpiresAt, never stored as a transition.
type Record struct {
	ID          domain.ConsentID
	ChildUserID domain.UserID
	ParentEmail string
	ParentName  string
	Method      domain.VerificationMethod
	Scope       []domain.ConsentScope

	Granted     bool
	ConsentDate *time.Time
	ExpiresAt   *time.Time

	RevokedAt     *time.Time
	RevokedReason string

	// KBA evidence: one-way digest of the submitted answer set plus the
	// numeric score. Raw answers never reach durable storage.
	KBAAnswerDigest string
	KBAScore        *int

	// Payment evidence.
	PaymentReference string
	PaymentVerified  *bool

	IPAddress string
	UserAgent string
	CreatedAt time.Time
}

// Active reports whether the record is a live grant at the given instant:
// granted, unrevoked, unexpired.
func (r *Record) Active(now time.Time) bool {
	if !r.Granted || r.RevokedAt != nil {
		return false
	}
	return r.ExpiresAt != nil && r.ExpiresAt.After(now)
}

// Profile is the slice of the child's platform profile this service reads and
// mutates. The platform owns the rest.
type Profile struct {
	UserID              domain.UserID
	Language            string
	IsMinor             bool
	ConsentStatus       Status
	ConsentDate         *time.Time
	COPPACompliant      bool
	ParentEmail         string
	ParentName          string
	ConsentTokenDigest  string
	ConsentTokenExpires *time.Time
}

// ProfileUpdate is a partial profile mutation. Nil fields are left untouched;
// ClearToken removes the email confirmation token and its expiry.
type ProfileUpdate struct {
	ConsentStatus      *Status
	ConsentDate        *time.Time
	COPPACompliant     *bool
	ParentEmail        *string
	ParentName         *string
	ConsentTokenDigest *string
	TokenExpires       *time.Time
	ClearToken         bool
}

// User is the child account projection from the platform user store.
type User struct {
	ID      domain.UserID
	Email   string
	Name    string
	Profile *Profile
}

// StatusReport answers "may this child exercise full privileges right now".
type StatusReport struct {
	HasActiveConsent bool          `json:"hasActiveConsent"`
	Record           *StatusRecord `json:"consentRecord,omitempty"`
	DaysUntilExpiry  *int          `json:"daysUntilExpiry,omitempty"`
}

// StatusRecord is the caller-visible projection of an active record.
type StatusRecord struct {
	ID          domain.ConsentID          `json:"id"`
	ParentEmail string                    `json:"parentEmail"`
	Method      domain.VerificationMethod `json:"verificationMethod"`
	ConsentDate *time.Time                `json:"consentDate"`
	ExpiresAt   *time.Time                `json:"expiresAt"`
}

// HistoryEntry is one row of the newest-first audit list.
type HistoryEntry struct {
	ID            domain.ConsentID          `json:"id"`
	ParentEmail   string                    `json:"parentEmail"`
	Method        domain.VerificationMethod `json:"verificationMethod"`
	Granted       bool                      `json:"consentGranted"`
	ConsentDate   *time.Time                `json:"consentDate,omitempty"`
	ExpiresAt     *time.Time                `json:"expiresAt,omitempty"`
	RevokedAt     *time.Time                `json:"revokedAt,omitempty"`
	RevokedReason string                    `json:"revokedReason,omitempty"`
	CreatedAt     time.Time                 `json:"createdAt"`
}
