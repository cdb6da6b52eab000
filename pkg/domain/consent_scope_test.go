package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guardian/pkg/domain"
	dErrors "guardian/pkg/domain-errors"
)

func TestParseConsentScope(t *testing.T) {
	scope, err := domain.ParseConsentScope("basic_account_creation")
	require.NoError(t, err)
	assert.Equal(t, domain.ScopeBasicAccount, scope)

	_, err = domain.ParseConsentScope("")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = domain.ParseConsentScope("telepathy")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestParseConsentScopesNormalizes(t *testing.T) {
	scopes, err := domain.ParseConsentScopes([]string{
		"  basic_account_creation ",
		"AI_Assistance_Features",
		"basic_account_creation",
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.ConsentScope{
		domain.ScopeBasicAccount,
		domain.ScopeAIAssistance,
	}, scopes)
}

func TestParseConsentScopesEmptyMeansDefault(t *testing.T) {
	scopes, err := domain.ParseConsentScopes(nil)
	require.NoError(t, err)
	assert.Nil(t, scopes, "caller applies its default set")

	scopes, err = domain.ParseConsentScopes([]string{" ", ""})
	require.NoError(t, err)
	assert.Nil(t, scopes)
}

func TestParseConsentScopesRejectsUnknown(t *testing.T) {
	_, err := domain.ParseConsentScopes([]string{"basic_account_creation", "telepathy"})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestScopeSets(t *testing.T) {
	assert.Subset(t, domain.FullConsentScopes(), domain.DefaultConsentScopes())
	for _, scope := range domain.FullConsentScopes() {
		assert.True(t, scope.IsValid())
	}
}

func TestParseVerificationMethod(t *testing.T) {
	for _, valid := range []string{"KBA", "EMAIL", "PAYMENT"} {
		method, err := domain.ParseVerificationMethod(valid)
		require.NoError(t, err)
		assert.True(t, method.IsValid())
	}

	_, err := domain.ParseVerificationMethod("")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = domain.ParseVerificationMethod("kba")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput), "methods are case sensitive")
}
