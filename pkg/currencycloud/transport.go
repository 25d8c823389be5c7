package currencycloud

import (
	"net/http"
	"sync"
)

// authTransport adds the auth token and user agent to every request.
type authTransport struct {
	Base      http.RoundTripper
	UserAgent string

	mu        sync.RWMutex
	authToken string
}

func (t *authTransport) token() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.authToken
}

func (t *authTransport) setToken(token string) {
	t.mu.Lock()
	t.authToken = token
	t.mu.Unlock()
}

// RoundTrip implements http.RoundTripper.
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// the caller's request is never modified
	req = req.Clone(req.Context())
	req.Header.Set("X-Auth-Token", t.token())
	req.Header.Set("User-Agent", t.UserAgent)
	req.Header.Set("Accept", "application/json")

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
