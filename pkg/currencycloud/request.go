package currencycloud

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const onBehalfOfParam = "on_behalf_of"

// get sends params in the query string and decodes the response into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, params, out)
}

// post sends params as a form body and decodes the response into out.
func (c *Client) post(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodPost, path, params, out)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, out any) error {
	params = withOnBehalfOf(params, c.session.OnBehalfOf())

	attempt := 0
	operation := func() error {
		attempt++
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(fmt.Errorf("rate limiter: %w", err))
		}

		req, err := c.newRequest(ctx, method, path, params)
		if err != nil {
			return backoff.Permanent(err)
		}

		requestTime := time.Now()
		err = c.send(req, out)
		c.log.Debug("response from the API",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("on-behalf-of", params.Get(onBehalfOfParam)),
			zap.Int("attempt", attempt),
			zap.Duration("duration", time.Since(requestTime)),
			zap.Error(err),
		)
		if err == nil {
			return nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Retryable() {
			return backoff.Permanent(err)
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), c.retries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		c.log.Error("could not complete the request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("attempts", attempt),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// withOnBehalfOf returns params carrying the override, or params unchanged
// when there is none. params itself is never modified.
func withOnBehalfOf(params url.Values, onBehalfOf string) url.Values {
	out := url.Values{}
	for k, v := range params {
		out[k] = append([]string(nil), v...)
	}
	out.Del(onBehalfOfParam)
	if onBehalfOf != "" {
		out.Set(onBehalfOfParam, onBehalfOf)
	}
	return out
}

func (c *Client) newRequest(ctx context.Context, method, path string, params url.Values) (*http.Request, error) {
	// path segments arrive escaped, so the raw form is authoritative
	u := *c.baseURL
	u.RawPath = strings.TrimSuffix(u.EscapedPath(), "/") + path
	unescaped, err := url.PathUnescape(u.RawPath)
	if err != nil {
		return nil, fmt.Errorf("invalid request path %q: %w", path, err)
	}
	u.Path = unescaped

	var body io.Reader
	switch method {
	case http.MethodGet:
		u.RawQuery = params.Encode()
	default:
		body = strings.NewReader(params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return req, nil
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			Method:     req.Method,
			Path:       req.URL.Path,
			StatusCode: resp.StatusCode,
			RequestID:  resp.Header.Get("X-Request-Id"),
		}
		// a body that is not an error document still yields the status
		_ = json.Unmarshal(body, apiErr)
		return apiErr
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return backoff.Permanent(fmt.Errorf("failed to decode %s %s response: %w", req.Method, req.URL.Path, err))
	}
	return nil
}
