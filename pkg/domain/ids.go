// Package domain holds shared value types used across modules: typed
// identifiers, consent scopes, and verification methods. Constructors validate
// at trust boundaries so services can assume well-formed values.
package domain

import (
	"github.com/google/uuid"

	dErrors "guardian/pkg/domain-errors"
)

// UserID identifies a child user account.
type UserID uuid.UUID

// ConsentID identifies a parental consent record.
type ConsentID uuid.UUID

// SessionToken is the opaque, unguessable identifier of a KBA quiz session.
// It is a raw string rather than a UUID: tokens are 32 bytes of crypto/rand
// entropy, base64url-encoded by pkg/platform/secrets.
type SessionToken string

func (id UserID) String() string    { return uuid.UUID(id).String() }
func (id ConsentID) String() string { return uuid.UUID(id).String() }
func (t SessionToken) String() string { return string(t) }

func (id UserID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }
func (id ConsentID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText renders ids as canonical UUID strings in JSON and logs.
func (id UserID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }
func (id ConsentID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *UserID) UnmarshalText(text []byte) error {
	parsed, err := ParseUserID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *ConsentID) UnmarshalText(text []byte) error {
	parsed, err := ParseConsentID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// NewConsentID mints a fresh consent record id.
func NewConsentID() ConsentID { return ConsentID(uuid.New()) }

// ParseUserID constructs a UserID from external input.
// Rejects empty, malformed, and nil UUIDs.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return UserID(uuid.Nil), err
	}
	return UserID(u), nil
}

// ParseConsentID constructs a ConsentID from external input.
func ParseConsentID(s string) (ConsentID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return ConsentID(uuid.Nil), err
	}
	return ConsentID(u), nil
}

func parseUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be the nil UUID")
	}
	return u, nil
}
