package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Whitelist:     make(map[string]bool),
		Blacklist:     make(map[string]bool),
		EndpointConfigs: []EndpointConfig{
			{Path: "/generate", Method: "POST", Limit: 2, Window: time.Hour, Burst: 2},
			{Path: "/sections/", Method: "PUT", Limit: 3, Window: time.Hour, Burst: 3},
		},
	}
}

func TestLimiterBurstExhaustion(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	allowed, info := limiter.Allow("1.2.3.4", "/generate", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 2, info.Limit)

	allowed, _ = limiter.Allow("1.2.3.4", "/generate", "POST")
	assert.True(t, allowed)

	allowed, info = limiter.Allow("1.2.3.4", "/generate", "POST")
	assert.False(t, allowed)
	assert.GreaterOrEqual(t, info.RetryAfter, time.Duration(0))
}

func TestLimiterClientsIsolated(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := limiter.Allow("1.1.1.1", "/generate", "POST")
		require.True(t, allowed)
	}
	allowed, _ := limiter.Allow("1.1.1.1", "/generate", "POST")
	require.False(t, allowed)

	// A different client still has a full bucket
	allowed, _ = limiter.Allow("2.2.2.2", "/generate", "POST")
	assert.True(t, allowed)
}

func TestLimiterWhitelistAndBlacklist(t *testing.T) {
	cfg := testConfig()
	cfg.Whitelist["10.0.0.1"] = true
	cfg.Blacklist["10.0.0.2"] = true
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow("10.0.0.1", "/generate", "POST")
		assert.True(t, allowed)
	}

	allowed, _ := limiter.Allow("10.0.0.2", "/generate", "POST")
	assert.False(t, allowed)
}

func TestLimiterDisabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/generate", "POST")
		assert.True(t, allowed)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	tests := []struct {
		name     string
		path     string
		method   string
		wantPath string
		wantNil  bool
	}{
		{name: "exact match", path: "/generate", method: "POST", wantPath: "/generate"},
		{name: "prefix match", path: "/sections/experience/acme/backend", method: "PUT", wantPath: "/sections/"},
		{name: "match analyze by prefix", path: "/match/analyze", method: "POST", wantPath: "/match/"},
		{name: "method mismatch", path: "/generate", method: "GET", wantNil: true},
		{name: "unknown path", path: "/nope", method: "POST", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantPath, got.Path)
		})
	}
}

func TestMatchEndpointHealthUnlimited(t *testing.T) {
	got := MatchEndpoint("/health", "GET", DefaultEndpointConfigs())
	require.NotNil(t, got)
	assert.LessOrEqual(t, got.Limit, 0)
}

func TestTokenBucketRefill(t *testing.T) {
	// 10 tokens per second, capacity 1
	bucket := newTokenBucket(1, 10)

	require.True(t, bucket.allow())
	require.False(t, bucket.allow())

	time.Sleep(150 * time.Millisecond)
	assert.True(t, bucket.allow())
}
