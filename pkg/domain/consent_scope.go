package domain

import (
	dErrors "guardian/pkg/domain-errors"
	platformstrings "guardian/pkg/platform/strings"
)

// ConsentScope names a data use a parent consents to. Scope binding lets a
// parent grant the platform basics without opening every feature.
//
// Usage: construct via ParseConsentScope at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type ConsentScope string

// Supported consent scopes.
const (
	ScopeBasicAccount        ConsentScope = "basic_account_creation"
	ScopeEducationalProgress ConsentScope = "educational_progress_tracking"
	ScopeAIAssistance        ConsentScope = "ai_assistance_features"
	ScopeContentSubmission   ConsentScope = "content_submission"
	ScopeCommunication       ConsentScope = "platform_communication"
	ScopeThirdPartySharing   ConsentScope = "third_party_data_sharing"
)

// validConsentScopes is the single source of truth for valid scopes.
var validConsentScopes = map[ConsentScope]bool{
	ScopeBasicAccount:        true,
	ScopeEducationalProgress: true,
	ScopeAIAssistance:        true,
	ScopeContentSubmission:   true,
	ScopeCommunication:       true,
	ScopeThirdPartySharing:   true,
}

// ParseConsentScope constructs a ConsentScope from external input.
// Errors: CodeInvalidInput when the value is empty or unsupported.
func ParseConsentScope(s string) (ConsentScope, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "scope cannot be empty")
	}
	scope := ConsentScope(s)
	if !scope.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid scope: "+s)
	}
	return scope, nil
}

// ParseConsentScopes validates a scope list. Whitespace and duplicates are
// tolerated; an empty list parses to nil so callers can apply their default
// set.
func ParseConsentScopes(values []string) ([]ConsentScope, error) {
	values = platformstrings.DedupeAndTrimLower(values)
	if len(values) == 0 {
		return nil, nil
	}
	scopes := make([]ConsentScope, 0, len(values))
	for _, v := range values {
		scope, err := ParseConsentScope(v)
		if err != nil {
			return nil, err
		}
		scopes = append(scopes, scope)
	}
	return scopes, nil
}

// IsValid checks if the scope is one of the supported enum values.
func (s ConsentScope) IsValid() bool {
	return validConsentScopes[s]
}

func (s ConsentScope) String() string { return string(s) }

// DefaultConsentScopes is the minimal scope set needed for a child account to
// function at all.
func DefaultConsentScopes() []ConsentScope {
	return []ConsentScope{ScopeBasicAccount, ScopeEducationalProgress}
}

// FullConsentScopes lists every scope the platform recognizes.
func FullConsentScopes() []ConsentScope {
	return []ConsentScope{
		ScopeBasicAccount,
		ScopeEducationalProgress,
		ScopeAIAssistance,
		ScopeContentSubmission,
		ScopeCommunication,
		ScopeThirdPartySharing,
	}
}
