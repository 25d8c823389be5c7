package currencycloud

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorMessage is one validation message of an API error.
type ErrorMessage struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params"`
}

// APIError is returned when the API answers with a non-2xx status.
type APIError struct {
	Method     string                    `json:"-"`
	Path       string                    `json:"-"`
	StatusCode int                       `json:"-"`
	RequestID  string                    `json:"-"`
	ErrorCode  string                    `json:"error_code"`
	Messages   map[string][]ErrorMessage `json:"error_messages"`
}

func (e *APIError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s returned %d", e.Method, e.Path, e.StatusCode)
	if e.ErrorCode != "" {
		fmt.Fprintf(&sb, " (%s)", e.ErrorCode)
	}

	fields := make([]string, 0, len(e.Messages))
	for field := range e.Messages {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		for _, m := range e.Messages[field] {
			fmt.Fprintf(&sb, "; %s: %s", field, m.Message)
		}
	}
	return sb.String()
}

// Retryable reports whether the request may succeed if sent again.
func (e *APIError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
