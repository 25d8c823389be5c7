package sandbox

import (
	"net/http"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/identity"
)

// authenticate rejects requests without the sandbox auth token.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("X-Auth-Token")

		if len(token) == 0 {
			writeError(w, http.StatusUnauthorized, "auth_failed", "X-Auth-Token", "auth_token_missing", "Authentication required")
			return
		}

		if token != s.authToken {
			writeError(w, http.StatusUnauthorized, "auth_failed", "X-Auth-Token", "auth_token_invalid", "Authentication failed with the supplied credentials")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// record logs the request, validates on_behalf_of and stores it in the
// request context. It also replays failures queued by FailNext.
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "base", "invalid_request", err.Error())
			return
		}
		onBehalfOf := r.Form.Get("on_behalf_of")

		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, OnBehalfOf: onBehalfOf})
		status := 0
		if queued := s.failures[r.URL.Path]; len(queued) > 0 {
			status, s.failures[r.URL.Path] = queued[0], queued[1:]
		}
		s.mu.Unlock()

		if status != 0 {
			writeError(w, status, "internal_error", "base", "internal_error", http.StatusText(status))
			return
		}

		if _, ok := r.Form["on_behalf_of"]; ok {
			if err := identity.Validate(onBehalfOf); err != nil {
				writeError(w, http.StatusBadRequest, "on_behalf_of_invalid", "on_behalf_of", "on_behalf_of_is_not_valid_uuid", "on_behalf_of should be in UUID format")
				return
			}
		}

		next.ServeHTTP(w, r.WithContext(identity.WithOnBehalfOf(r.Context(), onBehalfOf)))
	})
}
