package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is the amount an account holds in one currency.
type Balance struct {
	ID        string          `json:"id"`
	AccountID string          `json:"account_id"`
	Currency  string          `json:"currency"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Balances is one page of a balance search.
type Balances struct {
	Balances   []Balance  `json:"balances"`
	Pagination Pagination `json:"pagination"`
}

// Total sums the balances held in currency.
func (b Balances) Total(currency string) decimal.Decimal {
	total := decimal.Zero
	for _, balance := range b.Balances {
		if balance.Currency == currency {
			total = total.Add(balance.Amount)
		}
	}
	return total
}
