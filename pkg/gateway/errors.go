package gateway

import "errors"

// Error taxonomy. Providers wrap the concrete cause with %w around one of
// these sentinels so the dispatcher can react with errors.Is. Every failure
// kind moves the dispatcher to the next provider; ErrAuth additionally
// disables the offending provider for the process lifetime.
var (
	ErrConnection = errors.New("gateway: connection failed")
	ErrAuth       = errors.New("gateway: authentication rejected")
	ErrRateLimit  = errors.New("gateway: rate limited")
	ErrTimeout    = errors.New("gateway: deadline exceeded")
	ErrMalformed  = errors.New("gateway: malformed response")
)

// IsAuth reports whether the failure means the provider's credentials are
// rejected and retrying it within this process is pointless.
func IsAuth(err error) bool {
	return errors.Is(err, ErrAuth)
}
