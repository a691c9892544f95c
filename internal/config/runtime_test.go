package config

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Keys: APIKeys{OpenRouter: "key"},
		Ai: AIConfig{
			SystemPrompt: "prompt",
			Temperature:  0.7,
			MaxTokens:    2048,
			MaxAttempts:  3,
			AutoSwitch:   true,
		},
	}
}

func TestNewRuntimeDefaults(t *testing.T) {
	snap := NewRuntime(testConfig()).Snapshot()

	require.Len(t, snap.Providers, 3)
	assert.Equal(t, 1, snap.Providers["ollama"].Priority)
	assert.True(t, snap.Providers["ollama"].Enabled)
	assert.Equal(t, 60*time.Second, snap.Providers["ollama"].Timeout)
	assert.True(t, snap.Providers["openrouter"].Enabled, "enabled because a key is configured")
	assert.False(t, snap.Providers["huggingface"].Enabled, "no key, no provider")

	assert.Equal(t, 3, snap.MaxAttempts)
	assert.True(t, snap.AutoSwitch)
	assert.Equal(t, 1.0, snap.GreetingConfidence)
	assert.Equal(t, 0.4, snap.GenericConfidence)
}

func TestRuntimeReloadValidation(t *testing.T) {
	r := NewRuntime(testConfig())
	before := r.Snapshot()

	assert.Error(t, r.Reload(nil))
	assert.Error(t, r.Reload(&RuntimeSnapshot{MaxAttempts: 0, Providers: before.Providers}))
	assert.Error(t, r.Reload(&RuntimeSnapshot{MaxAttempts: 2, Providers: nil}))
	assert.Same(t, before, r.Snapshot(), "rejected reloads leave the snapshot untouched")

	next := *before
	next.MaxAttempts = 5
	require.NoError(t, r.Reload(&next))
	assert.Equal(t, 5, r.Snapshot().MaxAttempts)
}

func TestRuntimeSetProviderEnabled(t *testing.T) {
	r := NewRuntime(testConfig())
	before := r.Snapshot()

	require.NoError(t, r.SetProviderEnabled("ollama", false))
	assert.False(t, r.Snapshot().Providers["ollama"].Enabled)
	assert.True(t, before.Providers["ollama"].Enabled, "in-flight snapshots keep their settings")

	assert.Error(t, r.SetProviderEnabled("unknown", true))
}

func TestRuntimeConcurrentReads(t *testing.T) {
	r := NewRuntime(testConfig())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(flip bool) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = r.SetProviderEnabled("ollama", flip)
				snap := r.Snapshot()
				_ = snap.Providers["ollama"]
			}
		}(i%2 == 0)
	}
	wg.Wait()

	require.NotNil(t, r.Snapshot())
}
