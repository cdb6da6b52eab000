package domainerrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "guardian/pkg/domain-errors"
)

func TestNewCarriesCodeAndMessage(t *testing.T) {
	err := dErrors.New(dErrors.CodeUserNotFound, "child user not found")

	assert.True(t, dErrors.HasCode(err, dErrors.CodeUserNotFound))
	assert.False(t, dErrors.HasCode(err, dErrors.CodeNotAMinor))
	assert.Equal(t, dErrors.CodeUserNotFound, dErrors.CodeOf(err))
	assert.Equal(t, "child user not found", dErrors.MessageOf(err))
	assert.Equal(t, "USER_NOT_FOUND: child user not found", err.Error())
}

func TestNewfFormats(t *testing.T) {
	err := dErrors.Newf(dErrors.CodeKBAFailed, "KBA verification failed. Score: %d%%, Required: %d%%", 60, 70)
	assert.Equal(t, "KBA verification failed. Score: 60%, Required: 70%", dErrors.MessageOf(err))
}

func TestWrapKeepsCauseReachable(t *testing.T) {
	cause := errors.New("connection refused")
	err := dErrors.Wrap(cause, dErrors.CodeInfra, "could not load user")

	assert.True(t, dErrors.HasCode(err, dErrors.CodeInfra))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, "could not load user", dErrors.MessageOf(err), "cause never leaks to clients")
}

func TestWrapNilIsNil(t *testing.T) {
	assert.NoError(t, dErrors.Wrap(nil, dErrors.CodeInfra, "ignored"))
}

func TestHasCodeThroughWrapping(t *testing.T) {
	inner := dErrors.New(dErrors.CodeSessionExpired, "session expired")
	outer := fmt.Errorf("verify: %w", inner)

	assert.True(t, dErrors.HasCode(outer, dErrors.CodeSessionExpired))
	assert.Equal(t, dErrors.CodeSessionExpired, dErrors.CodeOf(outer))
}

func TestForeignErrorsDefaultToInternal(t *testing.T) {
	err := errors.New("something else")
	assert.False(t, dErrors.HasCode(err, dErrors.CodeInternal))
	assert.Equal(t, dErrors.CodeInternal, dErrors.CodeOf(err))
	assert.Equal(t, "internal error", dErrors.MessageOf(err))
}
