package currencycloud

import (
	"context"
	"net/url"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/model"
)

// FindBalances returns the balances of the account. page may be nil.
func (c *Client) FindBalances(ctx context.Context, page *model.Pagination) (*model.Balances, error) {
	var found model.Balances
	if err := c.get(ctx, "/v2/balances/find", page.Params(), &found); err != nil {
		return nil, err
	}
	return &found, nil
}

// RetrieveBalance returns the balance held in currency.
func (c *Client) RetrieveBalance(ctx context.Context, currency string) (*model.Balance, error) {
	var b model.Balance
	if err := c.get(ctx, "/v2/balances/"+url.PathEscape(currency), nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}
