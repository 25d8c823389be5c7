package sandbox

import (
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/model"
)

// Request is a request the sandbox received.
type Request struct {
	Method     string
	Path       string
	OnBehalfOf string
}

// Server is an in-memory Currency Cloud API.
type Server struct {
	Router *mux.Router

	authToken string
	accessLog io.Writer
	now       func() time.Time

	mu            sync.Mutex
	requests      []Request
	failures      map[string][]int
	beneficiaries map[string]map[string]model.Beneficiary
	balances      map[string][]model.Balance
	accounts      map[string]model.Account
}

// Option configures a Server.
type Option func(*Server)

// WithAccessLog writes an Apache style access log to w.
func WithAccessLog(w io.Writer) Option {
	return func(s *Server) {
		s.accessLog = w
	}
}

// New creates a sandbox accepting authToken.
func New(authToken string, opts ...Option) *Server {
	s := &Server{
		Router:        mux.NewRouter().UseEncodedPath(),
		authToken:     authToken,
		now:           func() time.Time { return time.Now().UTC().Truncate(time.Second) },
		failures:      map[string][]int{},
		beneficiaries: map[string]map[string]model.Beneficiary{},
		balances:      map[string][]model.Balance{},
		accounts:      map[string]model.Account{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Router.Use(s.authenticate, s.record)
	s.registerRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if s.accessLog != nil {
		handlers.LoggingHandler(s.accessLog, s.Router).ServeHTTP(w, r)
		return
	}
	s.Router.ServeHTTP(w, r)
}

// ListenAndServe serves the sandbox on addr.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Handler:      s,
		Addr:         addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
	return srv.ListenAndServe()
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// FailNext makes the next requests to path fail with the given statuses,
// one status per request.
func (s *Server) FailNext(path string, statuses ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = append(s.failures[path], statuses...)
}

// SeedAccount sets the account returned as current for owner.
// owner is "" for the account of the auth token.
func (s *Server) SeedAccount(owner string, account model.Account) model.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = s.now()
		account.UpdatedAt = account.CreatedAt
	}
	s.accounts[owner] = account
	return account
}

// SeedBalance adds a balance to owner's account.
func (s *Server) SeedBalance(owner string, balance model.Balance) model.Balance {
	s.mu.Lock()
	defer s.mu.Unlock()
	if balance.ID == "" {
		balance.ID = uuid.NewString()
	}
	if balance.CreatedAt.IsZero() {
		balance.CreatedAt = s.now()
		balance.UpdatedAt = balance.CreatedAt
	}
	s.balances[owner] = append(s.balances[owner], balance)
	return balance
}

// SeedBeneficiary adds a beneficiary to owner's account.
func (s *Server) SeedBeneficiary(owner string, b model.Beneficiary) model.Beneficiary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storeBeneficiary(owner, b)
}

func (s *Server) storeBeneficiary(owner string, b model.Beneficiary) model.Beneficiary {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = s.now()
	}
	b.UpdatedAt = s.now()
	if s.beneficiaries[owner] == nil {
		s.beneficiaries[owner] = map[string]model.Beneficiary{}
	}
	s.beneficiaries[owner][b.ID] = b
	return b
}
