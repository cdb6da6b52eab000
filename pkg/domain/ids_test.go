package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "guardian/pkg/domain-errors"
)

func TestParseUserID(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseUserID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseUserID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseUserID("00000000-0000-0000-0000-000000000000")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts canonical UUID", func(t *testing.T) {
		raw := uuid.NewString()
		parsed, err := ParseUserID(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, parsed.String())
		assert.False(t, parsed.IsZero())
	})
}

func TestParseConsentID(t *testing.T) {
	t.Run("round trips NewConsentID", func(t *testing.T) {
		minted := NewConsentID()
		parsed, err := ParseConsentID(minted.String())
		require.NoError(t, err)
		assert.Equal(t, minted, parsed)
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseConsentID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func TestIDJSONEncoding(t *testing.T) {
	id := NewConsentID()

	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.JSONEq(t, `"`+id.String()+`"`, string(data))

	var decoded ConsentID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded)
}

func TestSessionTokenIsOpaque(t *testing.T) {
	token := SessionToken("abc123")
	assert.Equal(t, "abc123", token.String())
}
