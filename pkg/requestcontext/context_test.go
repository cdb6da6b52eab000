package requestcontext_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"guardian/pkg/requestcontext"
)

func TestDefaultsOnBareContext(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, requestcontext.ClientIP(ctx))
	assert.Empty(t, requestcontext.UserAgent(ctx))
	assert.Empty(t, requestcontext.RequestID(ctx))
	assert.WithinDuration(t, time.Now(), requestcontext.Now(ctx), time.Second)
}

func TestClientMetadataRoundTrip(t *testing.T) {
	ctx := requestcontext.WithClientMetadata(context.Background(), "203.0.113.9", "Mozilla/5.0 test")

	assert.Equal(t, "203.0.113.9", requestcontext.ClientIP(ctx))
	assert.Equal(t, "Mozilla/5.0 test", requestcontext.UserAgent(ctx))
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := requestcontext.WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", requestcontext.RequestID(ctx))
}

func TestWithTimePinsTheClock(t *testing.T) {
	pinned := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), pinned)

	assert.Equal(t, pinned, requestcontext.Now(ctx))

	// Values scope to the derived context only.
	assert.WithinDuration(t, time.Now(), requestcontext.Now(context.Background()), time.Second)
}
