package sandbox

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/model"
)

// Fixtures is the data a sandbox starts with.
//
//	accounts:
//	  - main: true
//	    name: Sandbox Ltd
//	    balances:
//	      - currency: GBP
//	        amount: "1000.00"
//	  - id: c6ece846-6df1-461d-acaa-b42a6aa74045
//	    name: Sub-Account
//	    beneficiaries:
//	      - name: Test User
//	        bank_country: GB
//	        currency: GBP
type Fixtures struct {
	Accounts []AccountFixture `yaml:"accounts"`
}

// AccountFixture is an account with its balances and beneficiaries.
// The main account is the one of the auth token; the others are reached
// with on_behalf_of set to their id.
type AccountFixture struct {
	ID            string               `yaml:"id"`
	Main          bool                 `yaml:"main"`
	Name          string               `yaml:"name"`
	Balances      []BalanceFixture     `yaml:"balances"`
	Beneficiaries []BeneficiaryFixture `yaml:"beneficiaries"`
}

type BalanceFixture struct {
	Currency string `yaml:"currency"`
	Amount   string `yaml:"amount"`
}

// BeneficiaryFixture is a beneficiary; the holder name defaults to the name.
type BeneficiaryFixture struct {
	Name          string `yaml:"name"`
	Holder        string `yaml:"holder"`
	BankCountry   string `yaml:"bank_country"`
	Currency      string `yaml:"currency"`
	AccountNumber string `yaml:"account_number"`
	Iban          string `yaml:"iban"`
	BicSwift      string `yaml:"bic_swift"`
}

// ParseFixtures parses YAML fixtures.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}

	mains := 0
	for i, a := range f.Accounts {
		if a.Main {
			mains++
		}
		if a.ID != "" {
			if _, err := uuid.Parse(a.ID); err != nil {
				return nil, fmt.Errorf("account %d: invalid id %q", i, a.ID)
			}
		}
		for _, b := range a.Balances {
			if _, err := decimal.NewFromString(b.Amount); err != nil {
				return nil, fmt.Errorf("account %d: invalid %s amount %q", i, b.Currency, b.Amount)
			}
		}
	}
	if mains > 1 {
		return nil, fmt.Errorf("fixtures define %d main accounts", mains)
	}
	return &f, nil
}

// Reset removes all data. Recorded requests are kept.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beneficiaries = map[string]map[string]model.Beneficiary{}
	s.balances = map[string][]model.Balance{}
	s.accounts = map[string]model.Account{}
}

// Apply replaces the sandbox data with f.
func (s *Server) Apply(f *Fixtures) {
	s.Reset()
	for _, a := range f.Accounts {
		id := a.ID
		if id == "" {
			id = uuid.NewString()
		}
		owner := id
		if a.Main {
			owner = ""
		}

		account := s.SeedAccount(owner, model.Account{ID: id, AccountName: a.Name, Status: "enabled"})
		for _, b := range a.Balances {
			s.SeedBalance(owner, model.Balance{
				AccountID: account.ID,
				Currency:  b.Currency,
				Amount:    decimal.RequireFromString(b.Amount),
			})
		}
		for _, b := range a.Beneficiaries {
			holder := b.Holder
			if holder == "" {
				holder = b.Name
			}
			s.SeedBeneficiary(owner, model.Beneficiary{
				Name:                  b.Name,
				BankAccountHolderName: holder,
				BankCountry:           b.BankCountry,
				Currency:              b.Currency,
				AccountNumber:         b.AccountNumber,
				Iban:                  b.Iban,
				BicSwift:              b.BicSwift,
				PaymentTypes:          []string{"regular"},
			})
		}
	}
}

// LoadFixtures replaces the sandbox data with the fixtures in path.
// The data is left untouched when the file is invalid.
func (s *Server) LoadFixtures(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	f, err := ParseFixtures(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	s.Apply(f)
	return nil
}

// WatchFixtures reloads path into s whenever it is written, until ctx is
// done. Each reload attempt is reported to onReload.
func (s *Server) WatchFixtures(ctx context.Context, path string, onReload func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// editors replace the file, so watch its directory
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	target := filepath.Clean(path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				onReload(s.LoadFixtures(path))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onReload(err)
		case <-ctx.Done():
			return nil
		}
	}
}
