package secrets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "guardian/pkg/domain-errors"
	"guardian/pkg/platform/secrets"
)

func TestGenerateIsUniqueAndLong(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := secrets.Generate()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(token), 32)
		assert.False(t, seen[token], "tokens must not repeat")
		seen[token] = true
	}
}

func TestDigestIsDeterministicOneWay(t *testing.T) {
	a := secrets.Digest("token-value")
	b := secrets.Digest("token-value")
	c := secrets.Digest("other-value")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64, "hex-encoded sha-256")
	assert.NotContains(t, a, "token-value")
}

func TestHashAndVerify(t *testing.T) {
	hash, err := secrets.Hash("admin-key")
	require.NoError(t, err)
	assert.NotEqual(t, "admin-key", hash)

	assert.NoError(t, secrets.Verify("admin-key", hash))

	err = secrets.Verify("wrong-key", hash)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestHashRejectsEmptySecret(t *testing.T) {
	_, err := secrets.Hash("")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	assert.Error(t, secrets.Verify("key", "not-a-bcrypt-hash"))
}
