package ai

import "fmt"

// ProviderError is an error reported by the completion provider itself,
// carrying its HTTP status and response body.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("completion provider returned status %d: %s", e.StatusCode, e.Body)
}

// RateLimited reports whether the provider rejected the call with HTTP 429.
func (e *ProviderError) RateLimited() bool {
	return e.StatusCode == 429
}

// Unauthenticated reports whether the provider rejected the call with HTTP 401.
func (e *ProviderError) Unauthenticated() bool {
	return e.StatusCode == 401
}

// NetworkError wraps a transport-level failure (timeout, refused connection,
// DNS) so callers can tell it apart from provider-reported errors.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("completion provider unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
