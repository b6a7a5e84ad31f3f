package providers

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrProviderUnavailable is returned when no upstream provider is configured.
var ErrProviderUnavailable = errors.New("provider unavailable")

// FetchError covers every way an upstream call can fail: transport errors,
// non-success statuses and undecodable payloads.
type FetchError struct {
	Provider   string
	Op         string
	StatusCode int
	RetryAfter time.Duration
	Err        error
}

func (e *FetchError) Error() string {
	prefix := e.Provider
	if e.Op != "" {
		prefix += " " + e.Op
	}
	msg := "request failed"
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status=%d)", prefix, msg, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", prefix, msg)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// RateLimited reports whether the upstream answered 429.
func (e *FetchError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// AsFetchError attempts to unwrap an error into a FetchError.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
