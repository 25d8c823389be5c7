package currencycloud

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/audit"
	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/config"
	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/session"
)

const (
	Demonstration = "https://devapi.currencycloud.com"
	Production    = "https://api.currencycloud.com"

	DefaultUserAgent = "currencycloud-in-go/1.0"
	defaultTimeout   = 30 * time.Second
	defaultRetries   = 3
)

// Client calls the Currency Cloud API with one auth token.
type Client struct {
	baseURL    *url.URL
	userAgent  string
	transport  *authTransport
	httpClient *http.Client
	timeout    time.Duration
	session    *session.Session
	log        *zap.Logger
	auditor    audit.Auditor
	limiter    *rate.Limiter
	retries    uint64
	newBackOff func() backoff.BackOff
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used as the base of the transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger. The client does not log by default.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithAuditor records on-behalf-of scopes with auditor.
func WithAuditor(auditor audit.Auditor) Option {
	return func(c *Client) {
		c.auditor = auditor
	}
}

// WithRetries sets how many times a failed request is retried.
func WithRetries(retries uint64) Option {
	return func(c *Client) {
		c.retries = retries
	}
}

// WithBackOff sets the policy between retries. The default is exponential.
func WithBackOff(newBackOff func() backoff.BackOff) Option {
	return func(c *Client) {
		c.newBackOff = newBackOff
	}
}

// WithRateLimit limits the client to limit requests per second.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// New creates a client for the API at baseURL.
func New(baseURL, authToken string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", baseURL)
	}
	if authToken == "" {
		return nil, fmt.Errorf("auth token is required")
	}

	c := &Client{
		baseURL:    u,
		userAgent:  DefaultUserAgent,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        zap.NewNop(),
		auditor:    audit.Nop,
		limiter:    rate.NewLimiter(rate.Inf, 0),
		retries:    defaultRetries,
		newBackOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
	}
	for _, opt := range opts {
		opt(c)
	}

	// copy so the caller's client is left untouched
	hc := *c.httpClient
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	c.transport = &authTransport{
		Base:      hc.Transport,
		UserAgent: c.userAgent,
		authToken: authToken,
	}
	hc.Transport = c.transport
	c.httpClient = &hc

	c.session = session.New(session.WithObserver(&scopeObserver{
		log:     c.log,
		auditor: c.auditor,
		apiURL:  c.baseURL.String(),
	}))

	return c, nil
}

// NewFromConfig creates a client from a loaded configuration.
// opts are applied after the configured ones.
func NewFromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	configured := []Option{
		WithTimeout(cfg.Timeout()),
		WithRetries(uint64(cfg.MaxRetries)),
		WithRateLimit(limit, cfg.RateBurst),
	}
	return New(cfg.BaseURL(), cfg.AuthToken, append(configured, opts...)...)
}

// SetAuthToken replaces the auth token sent with subsequent requests, for
// example after the previous one expired. Requests already in flight keep
// the token they were sent with.
func (c *Client) SetAuthToken(authToken string) error {
	if authToken == "" {
		return fmt.Errorf("auth token is required")
	}
	c.transport.setToken(authToken)
	return nil
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}
