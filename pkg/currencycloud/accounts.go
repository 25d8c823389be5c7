package currencycloud

import (
	"context"
	"net/url"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/model"
)

// CurrentAccount returns the account of the auth token, or the account
// being acted on behalf of.
func (c *Client) CurrentAccount(ctx context.Context) (*model.Account, error) {
	var a model.Account
	if err := c.get(ctx, "/v2/accounts/current", nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// RetrieveAccount returns the account with the given id.
func (c *Client) RetrieveAccount(ctx context.Context, id string) (*model.Account, error) {
	var a model.Account
	if err := c.get(ctx, "/v2/accounts/"+url.PathEscape(id), nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}
