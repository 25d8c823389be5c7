package currencycloud

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/audit"
	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/config"
	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/model"
	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/sandbox"
	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/session"
)

const (
	authToken  = "4df5b3e5882a412f148dcd08fa4e5b73"
	contactID  = "c6ece846-6df1-461d-acaa-b42a6aa74045"
	otherID    = "f57b2d33-652c-4589-a8ff-7762add2706d"
	notAnIdent = "Richard Nienaber"
)

func newSandbox(t *testing.T) (*sandbox.Server, *httptest.Server) {
	t.Helper()
	sb := sandbox.New(authToken)
	srv := httptest.NewServer(sb)
	t.Cleanup(srv.Close)
	return sb, srv
}

func newClient(t *testing.T, srv *httptest.Server, opts ...Option) *Client {
	t.Helper()
	fast := WithBackOff(func() backoff.BackOff { return backoff.NewConstantBackOff(time.Millisecond) })
	c, err := New(srv.URL, authToken, append([]Option{fast}, opts...)...)
	require.NoError(t, err)
	return c
}

type recordingAuditor struct {
	events []audit.Event
}

func (r *recordingAuditor) Log(event audit.Event) {
	r.events = append(r.events, event)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		baseURL   string
		authToken string
		wantErr   string
	}{
		{"valid", Demonstration, authToken, ""},
		{"trailing slash", Production + "/", authToken, ""},
		{"no scheme", "devapi.currencycloud.com", authToken, "invalid base URL"},
		{"no token", Demonstration, "", "auth token is required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := New(tc.baseURL, tc.authToken)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotContains(t, c.BaseURL(), "com/")
		})
	}
}

func TestNewLeavesCallerHTTPClientAlone(t *testing.T) {
	hc := &http.Client{Timeout: time.Minute}

	c, err := New(Demonstration, authToken, WithHTTPClient(hc), WithTimeout(time.Second))

	require.NoError(t, err)
	assert.Nil(t, hc.Transport)
	assert.Equal(t, time.Minute, hc.Timeout)
	assert.Equal(t, time.Second, c.httpClient.Timeout)
}

func TestRequestsCarryAuthHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"` + contactID + `","account_name":"Main"}`))
	}))
	defer srv.Close()

	c := newClient(t, srv, WithUserAgent("ccctl/test"))
	account, err := c.CurrentAccount(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Main", account.AccountName)
	assert.Equal(t, authToken, got.Get("X-Auth-Token"))
	assert.Equal(t, "ccctl/test", got.Get("User-Agent"))
	assert.Equal(t, "application/json", got.Get("Accept"))
}

func TestOnBehalfOfReachesTheWireOnlyInsideTheScope(t *testing.T) {
	sb, srv := newSandbox(t)
	sb.SeedAccount("", model.Account{AccountName: "Main"})
	sb.SeedAccount(contactID, model.Account{AccountName: "Sub"})
	c := newClient(t, srv)
	ctx := context.Background()

	_, err := c.CurrentAccount(ctx)
	require.NoError(t, err)

	err = c.OnBehalfOfDo(contactID, func() error {
		assert.Equal(t, contactID, c.OnBehalfOf())

		account, err := c.CurrentAccount(ctx)
		if err != nil {
			return err
		}
		assert.Equal(t, "Sub", account.AccountName)

		created, err := c.CreateBeneficiary(ctx, model.NewBeneficiary("Test User", "GB", "GBP", "Test User"))
		if err != nil {
			return err
		}
		_, err = c.DeleteBeneficiary(ctx, created.ID)
		return err
	})
	require.NoError(t, err)
	assert.Empty(t, c.OnBehalfOf())

	_, err = c.CurrentAccount(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"", contactID, contactID, contactID, ""}, onBehalfOfValues(sb.Requests()))
	assert.Equal(t, "POST", sb.Requests()[2].Method)
}

func onBehalfOfValues(requests []sandbox.Request) []string {
	values := make([]string, 0, len(requests))
	for _, r := range requests {
		values = append(values, r.OnBehalfOf)
	}
	return values
}

func TestOnBehalfOfDoRejections(t *testing.T) {
	sb, srv := newSandbox(t)
	c := newClient(t, srv)
	ctx := context.Background()

	t.Run("not a UUID", func(t *testing.T) {
		err := c.OnBehalfOfDo(notAnIdent, func() error {
			_, err := c.CurrentAccount(ctx)
			return err
		})
		assert.ErrorIs(t, err, session.ErrInvalidIdentityFormat)
		assert.ErrorContains(t, err, "UUID")
	})

	t.Run("nested", func(t *testing.T) {
		err := c.OnBehalfOfDo(contactID, func() error {
			return c.OnBehalfOfDo(otherID, func() error {
				_, err := c.CurrentAccount(ctx)
				return err
			})
		})
		assert.ErrorIs(t, err, session.ErrReentrantScope)
		assert.ErrorContains(t, err, "nest")
		assert.Empty(t, c.OnBehalfOf())
	})

	assert.Empty(t, sb.Requests())
}

func TestOnBehalfOfDoReturnsWorkErrorsUnchanged(t *testing.T) {
	sb, srv := newSandbox(t)
	c := newClient(t, srv)
	ctx := context.Background()

	var apiErr *APIError
	err := c.OnBehalfOfDo(contactID, func() error {
		_, err := c.RetrieveBeneficiary(ctx, "a0bd2d78-3621-4c29-932f-a39d6b34d5e7")
		return err
	})

	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "beneficiary_not_found", apiErr.ErrorCode)
	assert.NotEmpty(t, apiErr.RequestID)
	assert.Empty(t, c.OnBehalfOf())
	assert.Len(t, sb.Requests(), 1)

	sentinel := errors.New("insufficient funds")
	err = c.OnBehalfOfDo(contactID, func() error { return sentinel })
	assert.True(t, err == sentinel)
}

func TestOnBehalfOfWithin(t *testing.T) {
	sb, srv := newSandbox(t)
	sb.SeedBalance(contactID, model.Balance{Currency: "GBP", Amount: decimal.RequireFromString("1250.75")})
	c := newClient(t, srv)

	balance, err := OnBehalfOfWithin(c, contactID, func() (*model.Balance, error) {
		return c.RetrieveBalance(context.Background(), "GBP")
	})

	require.NoError(t, err)
	assert.True(t, balance.Amount.Equal(decimal.RequireFromString("1250.75")))
	assert.Empty(t, c.OnBehalfOf())
}

func TestClientsDoNotShareTheOverride(t *testing.T) {
	_, srv := newSandbox(t)
	a, b := newClient(t, srv), newClient(t, srv)

	err := a.OnBehalfOfDo(contactID, func() error {
		assert.Empty(t, b.OnBehalfOf())
		return b.OnBehalfOfDo(otherID, func() error { return nil })
	})

	assert.NoError(t, err)
}

func TestRetries(t *testing.T) {
	tests := []struct {
		name     string
		statuses []int
		retries  uint64
		wantErr  int
		requests int
	}{
		{"server errors are retried", []int{500, 503}, 3, 0, 3},
		{"rate limiting is retried", []int{429}, 3, 0, 2},
		{"retries run out", []int{502, 502, 502}, 2, 502, 3},
		{"client errors are not retried", []int{400}, 3, 400, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sb, srv := newSandbox(t)
			sb.SeedAccount("", model.Account{AccountName: "Main"})
			sb.FailNext("/v2/accounts/current", tc.statuses...)
			c := newClient(t, srv, WithRetries(tc.retries))

			_, err := c.CurrentAccount(context.Background())

			if tc.wantErr == 0 {
				assert.NoError(t, err)
			} else {
				var apiErr *APIError
				require.True(t, errors.As(err, &apiErr), "%v", err)
				assert.Equal(t, tc.wantErr, apiErr.StatusCode)
			}
			assert.Len(t, sb.Requests(), tc.requests)
		})
	}
}

func TestRetriesKeepTheOverride(t *testing.T) {
	sb, srv := newSandbox(t)
	sb.SeedAccount(contactID, model.Account{AccountName: "Sub"})
	sb.FailNext("/v2/accounts/current", 503)
	c := newClient(t, srv)

	err := c.OnBehalfOfDo(contactID, func() error {
		_, err := c.CurrentAccount(context.Background())
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, []string{contactID, contactID}, onBehalfOfValues(sb.Requests()))
}

func TestCancelledContext(t *testing.T) {
	sb, srv := newSandbox(t)
	c := newClient(t, srv)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.CurrentAccount(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sb.Requests())
}

func TestBeneficiaries(t *testing.T) {
	sb, srv := newSandbox(t)
	c := newClient(t, srv)
	ctx := context.Background()

	created, err := c.CreateBeneficiary(ctx, model.NewBeneficiary("Test User", "GB", "GBP", "Test User"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	retrieved, err := c.RetrieveBeneficiary(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, retrieved.ID)

	first, err := c.FirstBeneficiary(ctx, &model.Beneficiary{Name: "Test User"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, first.ID)

	found, err := c.FindBeneficiaries(ctx, nil, &model.Pagination{CurrentPage: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, found.Beneficiaries, 1)
	assert.Equal(t, 10, found.Pagination.PerPage)

	updated, err := c.UpdateBeneficiary(ctx, &model.Beneficiary{ID: created.ID, Email: "test@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", updated.Email)
	assert.Equal(t, "Test User", updated.Name)

	_, err = c.UpdateBeneficiary(ctx, &model.Beneficiary{Email: "test@example.com"})
	assert.ErrorContains(t, err, "id is required")

	deleted, err := c.DeleteBeneficiary(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)

	_, err = c.FirstBeneficiary(ctx, &model.Beneficiary{Name: "Test User"})
	assert.ErrorIs(t, err, ErrNotFound)

	newValidate := func() *model.Beneficiary {
		b := model.NewBeneficiaryForValidate("GB", "GBP", "")
		b.AccountNumber = "12345678"
		b.RoutingCodeType1 = "sort_code"
		b.RoutingCodeValue1 = "123456"
		b.PaymentTypes = []string{"regular"}
		return b
	}

	t.Run("validate", func(t *testing.T) {
		validated, err := c.ValidateBeneficiary(ctx, newValidate())
		require.NoError(t, err)
		assert.Empty(t, validated.ID)
		assert.Equal(t, []string{"regular"}, validated.PaymentTypes)
		assert.Equal(t, "GB", validated.BankCountry)
		assert.Equal(t, "HSBC BANK PLC", validated.BankName)
		assert.Equal(t, "GBP", validated.Currency)
		assert.Equal(t, "12345678", validated.AccountNumber)
		assert.Equal(t, "sort_code", validated.RoutingCodeType1)
		assert.Equal(t, "123456", validated.RoutingCodeValue1)
		assert.Empty(t, validated.BeneficiaryAddress)
		assert.Equal(t, []string{"5 Wimbledon Hill Rd", "Wimbledon", "London"}, validated.BankAddress)
		assert.Empty(t, validated.BankAccountType)

		found, err := c.FindBeneficiaries(ctx, nil, nil)
		require.NoError(t, err)
		assert.Empty(t, found.Beneficiaries)
	})

	t.Run("validate on behalf of", func(t *testing.T) {
		err := c.OnBehalfOfDo(contactID, func() error {
			_, err := c.ValidateBeneficiary(ctx, newValidate())
			return err
		})
		require.NoError(t, err)

		requests := sb.Requests()
		last := requests[len(requests)-1]
		assert.Equal(t, "/v2/beneficiaries/validate", last.Path)
		assert.Equal(t, contactID, last.OnBehalfOf)
	})

	t.Run("validate rejects incomplete details", func(t *testing.T) {
		_, err := c.ValidateBeneficiary(ctx, model.NewBeneficiaryForValidate("GB", "GBP", ""))
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "beneficiary_validate_failed", apiErr.ErrorCode)
	})
}

func TestPathSegmentsAreEscaped(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.URL.EscapedPath())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()
	c := newClient(t, srv)
	ctx := context.Background()

	_, err := c.RetrieveBeneficiary(ctx, "x/delete")
	require.NoError(t, err)
	_, err = c.DeleteBeneficiary(ctx, "a b")
	require.NoError(t, err)
	_, err = c.UpdateBeneficiary(ctx, &model.Beneficiary{ID: "x?y", Name: "n"})
	require.NoError(t, err)
	_, err = c.RetrieveAccount(ctx, "../accounts/current")
	require.NoError(t, err)
	_, err = c.RetrieveBalance(ctx, "GBP")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/v2/beneficiaries/x%2Fdelete",
		"/v2/beneficiaries/a%20b/delete",
		"/v2/beneficiaries/x%3Fy",
		"/v2/accounts/..%2Faccounts%2Fcurrent",
		"/v2/balances/GBP",
	}, got)
}

func TestEscapedIdsDoNotReachOtherEndpoints(t *testing.T) {
	sb, srv := newSandbox(t)
	sb.SeedAccount("", model.Account{AccountName: "Main"})
	created := sb.SeedBeneficiary("", model.Beneficiary{Name: "Kept"})
	c := newClient(t, srv)
	ctx := context.Background()

	_, err := c.RetrieveAccount(ctx, "../accounts/current")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)

	_, err = c.RetrieveBeneficiary(ctx, created.ID+"/delete")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "beneficiary_not_found", apiErr.ErrorCode)

	kept, err := c.RetrieveBeneficiary(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kept", kept.Name)
}

func TestSetAuthToken(t *testing.T) {
	_, srv := newSandbox(t)
	c, err := New(srv.URL, "expired00000000000000000000000000", WithRetries(0))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.FindBeneficiaries(ctx, nil, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	assert.ErrorContains(t, c.SetAuthToken(""), "auth token is required")
	require.NoError(t, c.SetAuthToken(authToken))

	_, err = c.FindBeneficiaries(ctx, nil, nil)
	assert.NoError(t, err)
}

func TestBalancesAndAccounts(t *testing.T) {
	sb, srv := newSandbox(t)
	primary := sb.SeedAccount("", model.Account{AccountName: "Main"})
	sb.SeedBalance("", model.Balance{Currency: "EUR", Amount: decimal.RequireFromString("10.10")})
	sb.SeedBalance("", model.Balance{Currency: "GBP", Amount: decimal.RequireFromString("5")})
	c := newClient(t, srv)
	ctx := context.Background()

	balances, err := c.FindBalances(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, balances.Balances, 2)
	assert.True(t, balances.Total("EUR").Equal(decimal.RequireFromString("10.1")))

	account, err := c.RetrieveAccount(ctx, primary.ID)
	require.NoError(t, err)
	assert.Equal(t, "Main", account.AccountName)
}

func TestScopesAreLoggedAndAudited(t *testing.T) {
	_, srv := newSandbox(t)
	core, logs := observer.New(zapcore.InfoLevel)
	auditor := &recordingAuditor{}
	c := newClient(t, srv, WithLogger(zap.New(core)), WithAuditor(auditor))
	workErr := errors.New("declined")

	_ = c.OnBehalfOfDo(notAnIdent, func() error { return nil })
	_ = c.OnBehalfOfDo(contactID, func() error { return workErr })

	require.Len(t, auditor.events, 3)
	assert.Equal(t, audit.OperationReject, auditor.events[0].(audit.OnBehalfOfEvent).Operation)
	assert.Equal(t, audit.OperationEnter, auditor.events[1].(audit.OnBehalfOfEvent).Operation)
	exit := auditor.events[2].(audit.OnBehalfOfEvent)
	assert.Equal(t, audit.OperationExit, exit.Operation)
	assert.Equal(t, workErr, exit.Err)
	assert.Equal(t, srv.URL, exit.APIURL)

	entries := logs.FilterField(zap.String("on-behalf-of", contactID)).All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestNewFromConfig(t *testing.T) {
	_, srv := newSandbox(t)
	t.Setenv("CURRENCYCLOUD_CONFIG_PATH", t.TempDir())
	t.Setenv("CURRENCYCLOUD_API_URL", srv.URL)
	t.Setenv("CURRENCYCLOUD_AUTH_TOKEN", authToken)
	t.Setenv("CURRENCYCLOUD_TIMEOUT_SECONDS", "5")
	t.Setenv("CURRENCYCLOUD_RATE_LIMIT", "0")

	cfg, err := config.Load()
	require.NoError(t, err)

	c, err := NewFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, srv.URL, c.BaseURL())
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
	assert.Equal(t, uint64(3), c.retries)

	t.Setenv("CURRENCYCLOUD_TIMEOUT_SECONDS", "0")
	cfg, err = config.Load()
	require.NoError(t, err)
	_, err = NewFromConfig(cfg)
	assert.ErrorContains(t, err, "timeout_seconds")
}

func TestAPIErrorMessage(t *testing.T) {
	err := &APIError{
		Method:     "POST",
		Path:       "/v2/beneficiaries/create",
		StatusCode: 400,
		ErrorCode:  "beneficiary_create_failed",
		Messages: map[string][]ErrorMessage{
			"name":     {{Code: "name_is_required", Message: "name is required"}},
			"currency": {{Code: "currency_is_required", Message: "currency is required"}},
		},
	}

	assert.Equal(t, "POST /v2/beneficiaries/create returned 400 (beneficiary_create_failed); currency: currency is required; name: name is required", err.Error())
	assert.False(t, err.Retryable())
	assert.True(t, (&APIError{StatusCode: 429}).Retryable())
}
