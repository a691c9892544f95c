package config

import (
	"fmt"
	"sync/atomic"
	"time"
)

// ProviderSettings is the per-provider slice of a runtime snapshot.
type ProviderSettings struct {
	Priority int           `json:"priority"`
	Enabled  bool          `json:"enabled"`
	Timeout  time.Duration `json:"timeout"`
}

// RuntimeSnapshot holds the orchestration settings that may change while
// the process runs. Handlers read one immutable snapshot per request.
type RuntimeSnapshot struct {
	Providers    map[string]ProviderSettings `json:"providers"`
	MaxAttempts  int                         `json:"max_attempts"`
	AutoSwitch   bool                        `json:"auto_switch"`
	SystemPrompt string                      `json:"system_prompt"`
	Temperature  float64                     `json:"temperature"`
	MaxTokens    int                         `json:"max_tokens"`
	// Canned response confidences. Legacy defaults, configuration
	// rather than semantics.
	GreetingConfidence float64 `json:"greeting_confidence"`
	HelpConfidence     float64 `json:"help_confidence"`
	GenericConfidence  float64 `json:"generic_confidence"`
}

// Runtime publishes RuntimeSnapshot values atomically. Reload swaps the
// whole snapshot; in-flight requests keep the one they started with.
type Runtime struct {
	current atomic.Pointer[RuntimeSnapshot]
}

func NewRuntime(cfg *Config) *Runtime {
	r := &Runtime{}
	r.current.Store(defaultSnapshot(cfg))
	return r
}

func defaultSnapshot(cfg *Config) *RuntimeSnapshot {
	return &RuntimeSnapshot{
		Providers: map[string]ProviderSettings{
			"ollama":      {Priority: 1, Enabled: true, Timeout: 60 * time.Second},
			"openrouter":  {Priority: 2, Enabled: cfg.Keys.OpenRouter != "", Timeout: 30 * time.Second},
			"huggingface": {Priority: 3, Enabled: cfg.Keys.HuggingFace != "", Timeout: 30 * time.Second},
		},
		MaxAttempts:        cfg.Ai.MaxAttempts,
		AutoSwitch:         cfg.Ai.AutoSwitch,
		SystemPrompt:       cfg.Ai.SystemPrompt,
		Temperature:        cfg.Ai.Temperature,
		MaxTokens:          cfg.Ai.MaxTokens,
		GreetingConfidence: 1.0,
		HelpConfidence:     1.0,
		GenericConfidence:  0.4,
	}
}

// Snapshot returns the current settings. The returned value must be
// treated as read-only.
func (r *Runtime) Snapshot() *RuntimeSnapshot {
	return r.current.Load()
}

// Reload validates and swaps in a new snapshot.
func (r *Runtime) Reload(next *RuntimeSnapshot) error {
	if next == nil {
		return fmt.Errorf("snapshot is nil")
	}
	if next.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1, got %d", next.MaxAttempts)
	}
	if len(next.Providers) == 0 {
		return fmt.Errorf("at least one provider must be configured")
	}
	r.current.Store(next)
	return nil
}

// SetProviderEnabled flips one provider flag, preserving the rest of the
// snapshot.
func (r *Runtime) SetProviderEnabled(name string, enabled bool) error {
	cur := r.current.Load()
	settings, ok := cur.Providers[name]
	if !ok {
		return fmt.Errorf("unknown provider %q", name)
	}
	settings.Enabled = enabled

	next := *cur
	next.Providers = make(map[string]ProviderSettings, len(cur.Providers))
	for k, v := range cur.Providers {
		next.Providers[k] = v
	}
	next.Providers[name] = settings

	r.current.Store(&next)
	return nil
}
