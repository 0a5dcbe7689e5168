package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucket_ConsumesTokens(t *testing.T) {
	bucket := newTokenBucket(3, 0.001) // effectively no refill during the test

	assert.True(t, bucket.allow())
	assert.True(t, bucket.allow())
	assert.True(t, bucket.allow())
	assert.False(t, bucket.allow())
}

func TestTokenBucket_Refills(t *testing.T) {
	bucket := newTokenBucket(1, 100) // 100 tokens/sec

	require.True(t, bucket.allow())
	require.False(t, bucket.allow())

	time.Sleep(30 * time.Millisecond)
	assert.True(t, bucket.allow())
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("client", "/post-to-linkedin", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_EndpointBurst(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/post-to-linkedin", Method: "POST", Limit: 30, Window: time.Hour, Burst: 2},
		},
	})
	defer limiter.Stop()

	allowed, info := limiter.Allow("1.2.3.4", "/post-to-linkedin", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 30, info.Limit)

	allowed, _ = limiter.Allow("1.2.3.4", "/post-to-linkedin", "POST")
	assert.True(t, allowed)

	allowed, info = limiter.Allow("1.2.3.4", "/post-to-linkedin", "POST")
	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsIsolated(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/post-to-linkedin", Method: "POST", Limit: 10, Window: time.Hour, Burst: 1},
		},
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("1.1.1.1", "/post-to-linkedin", "POST")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("1.1.1.1", "/post-to-linkedin", "POST")
	require.False(t, allowed)

	// A different client still has a full bucket.
	allowed, _ = limiter.Allow("2.2.2.2", "/post-to-linkedin", "POST")
	assert.True(t, allowed)
}

func TestLimiter_UnlimitedEndpoint(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
		EndpointConfigs: []EndpointConfig{
			{Path: "/health", Method: "GET", Limit: 0},
		},
	})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		allowed, _ := limiter.Allow("client", "/health", "GET")
		assert.True(t, allowed)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	cfg := matchEndpoint("/post-to-linkedin", "POST", configs)
	require.NotNil(t, cfg)
	assert.Equal(t, 30, cfg.Limit)

	cfg = matchEndpoint("/generate-post", "POST", configs)
	require.NotNil(t, cfg)
	assert.Equal(t, 100, cfg.Limit)

	// Method mismatch falls through to nil (default limits).
	assert.Nil(t, matchEndpoint("/generate-post", "GET", configs))
	assert.Nil(t, matchEndpoint("/unknown", "POST", configs))
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 1000, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.NotEmpty(t, cfg.EndpointConfigs)
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
}
