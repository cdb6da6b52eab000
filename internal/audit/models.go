// Package audit captures the consent lifecycle trail. Every state transition
// emits an Event; sinks fan out to an in-memory store (dev, tests) or Kafka
// (production), where downstream compliance tooling consumes them.
package audit

import (
	"context"
	"time"

	id "guardian/pkg/domain"
)

// Action labels the consent lifecycle transitions worth auditing.
const (
	ActionConsentInitiated = "consent.initiated"
	ActionConsentGranted   = "consent.granted"
	ActionConsentDenied    = "consent.denied"
	ActionConsentRevoked   = "consent.revoked"
	ActionKBAFailed        = "consent.kba_failed"
	ActionPaymentFailed    = "consent.payment_failed"
	ActionEmailExpired     = "consent.email_token_expired"
	ActionReminderDue      = "consent.renewal_reminder_due"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp   time.Time    `json:"timestamp"`
	ChildUserID id.UserID    `json:"child_user_id"`
	ConsentID   id.ConsentID `json:"consent_id,omitempty"`
	Action      string       `json:"action"`
	Method      string       `json:"method,omitempty"`
	Reason      string       `json:"reason,omitempty"`
	// ParentEmail appears only on events compliance needs to contact a
	// parent about (initiation, reminders).
	ParentEmail string `json:"parent_email,omitempty"`
	// Device is the summarized user agent, not the raw header.
	Device    string `json:"device,omitempty"`
	IPAddress string `json:"ip_address,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Store is an append-only sink for events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Publisher is the port domain services emit through.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}
