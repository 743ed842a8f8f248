package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrQuotaExhausted marks a transient failure that survived the whole retry
// budget. Callers distinguish it with errors.Is.
var ErrQuotaExhausted = errors.New("generation quota exhausted")

// RemoteError is the tagged form of a remote generation failure. Each provider
// populates it from its transport's error type, so classification is a field
// check instead of probing loosely structured error data.
type RemoteError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("remote generation failed: %d %s: %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("remote generation failed: %d: %s", e.StatusCode, e.Message)
}

// IsTransient reports whether err signals rate limiting or temporary resource
// exhaustion. HTTP 429 and 503 both count, as do "quota" and
// "resource_exhausted" markers in the status or message text.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var remote *RemoteError
	if errors.As(err, &remote) {
		if remote.StatusCode == http.StatusTooManyRequests || remote.StatusCode == http.StatusServiceUnavailable {
			return true
		}
		return hasQuotaMarker(remote.Status) || hasQuotaMarker(remote.Message)
	}

	// Errors that never went through a provider's transport mapping still get
	// the textual check.
	return hasQuotaMarker(err.Error())
}

func hasQuotaMarker(s string) bool {
	s = strings.ToLower(s)
	return strings.Contains(s, "quota") || strings.Contains(s, "resource_exhausted")
}
