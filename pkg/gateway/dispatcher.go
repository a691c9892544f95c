package gateway

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"docucortex-be/internal/pkg/logger"
)

// Dispatcher walks a priority-ordered provider snapshot until one call
// succeeds, then falls back to the local default responder once every
// attempt is spent. It owns the process-lifetime auth blacklist.
type Dispatcher struct {
	fallback *DefaultResponder
	logger   logger.ILogger

	mu       sync.Mutex
	revoked  map[string]bool // providers disabled after ErrAuth
	onRevoke func(name string, cause error)
}

func NewDispatcher(fallback *DefaultResponder, log logger.ILogger) *Dispatcher {
	return &Dispatcher{
		fallback: fallback,
		logger:   log,
		revoked:  make(map[string]bool),
	}
}

// SetOnRevoke registers a callback fired once per provider when an auth
// failure disables it. Set during wiring, before any Dispatch call.
func (d *Dispatcher) SetOnRevoke(fn func(name string, cause error)) {
	d.onRevoke = fn
}

// Revoked reports whether a provider was disabled after an auth failure.
func (d *Dispatcher) Revoked(name string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.revoked[name]
}

// Dispatch tries providers in snapshot order, starting at preferred when it is
// present and enabled. It returns a non-nil result unless the parent context
// is cancelled: total exhaustion is absorbed by the default responder.
func (d *Dispatcher) Dispatch(ctx context.Context, req *Request, providers []Provider, preferred string, policy Policy) (*GenerationResult, []Attempt, error) {
	snapshot := d.snapshot(providers)
	attempts := make([]Attempt, 0, policy.MaxAttempts)

	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 1
	}

	start := 0
	if preferred != "" {
		for i, p := range snapshot {
			if p.Name == preferred {
				start = i
				break
			}
		}
	}

	for i := 0; i < len(snapshot) && len(attempts) < policy.MaxAttempts; i++ {
		if err := ctx.Err(); err != nil {
			// Caller went away: abandon, no fallback response.
			return nil, attempts, err
		}

		p := snapshot[(start+i)%len(snapshot)]

		result, attempt := d.call(ctx, p, req, len(attempts))
		attempts = append(attempts, attempt)

		if attempt.Err == nil {
			result.Provider = p.Name
			result.ResponseTime = attempt.Latency
			return result, attempts, nil
		}

		if IsAuth(attempt.Err) {
			d.mu.Lock()
			first := !d.revoked[p.Name]
			d.revoked[p.Name] = true
			d.mu.Unlock()
			d.logger.Warn("Gateway", "Provider disabled after auth failure", map[string]interface{}{"provider": p.Name})
			if first && d.onRevoke != nil {
				d.onRevoke(p.Name, attempt.Err)
			}
		}

		d.logger.Warn("Gateway", "Provider attempt failed", map[string]interface{}{
			"provider": p.Name,
			"attempt":  attempt.Index,
			"latency":  attempt.Latency.String(),
			"error":    attempt.Err.Error(),
		})

		if !policy.AutoSwitch {
			break
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, attempts, err
	}

	// Guaranteed local responder: never fails.
	confidence := policy.Confidence
	if confidence == (ConfidenceDefaults{}) {
		confidence = d.fallback.confidence
	}
	result := d.fallback.RespondWith(req, confidence)
	d.logger.Info("Gateway", "All providers exhausted, default responder used", map[string]interface{}{
		"attempts": len(attempts),
	})
	return result, attempts, nil
}

// snapshot filters out disabled and auth-revoked providers and freezes the
// attempt order by ascending priority.
func (d *Dispatcher) snapshot(providers []Provider) []Provider {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p.Enabled && p.Gateway != nil && !d.revoked[p.Name] {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

func (d *Dispatcher) call(ctx context.Context, p Provider, req *Request, index int) (*GenerationResult, Attempt) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	begin := time.Now()
	result, err := p.Gateway.ProcessConversation(callCtx, req)
	latency := time.Since(begin)

	// Per-attempt deadlines surface as the taxonomy's timeout, provided the
	// caller itself is still alive.
	if err != nil && errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		err = errors.Join(ErrTimeout, err)
	}
	if err == nil && result == nil {
		err = ErrMalformed
	}

	return result, Attempt{Provider: p.Name, Index: index, Latency: latency, Err: err}
}
