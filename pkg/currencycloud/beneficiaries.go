package currencycloud

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/doodlesbykumbi/currencycloud-in-go/pkg/model"
)

// ErrNotFound is returned by First* lookups that match nothing.
var ErrNotFound = errors.New("not found")

// CreateBeneficiary creates a beneficiary.
func (c *Client) CreateBeneficiary(ctx context.Context, b *model.Beneficiary) (*model.Beneficiary, error) {
	var created model.Beneficiary
	if err := c.post(ctx, "/v2/beneficiaries/create", b.Params(), &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ValidateBeneficiary checks the bank details of b without creating a
// beneficiary and returns them as completed by the API.
func (c *Client) ValidateBeneficiary(ctx context.Context, b *model.Beneficiary) (*model.Beneficiary, error) {
	var validated model.Beneficiary
	if err := c.post(ctx, "/v2/beneficiaries/validate", b.Params(), &validated); err != nil {
		return nil, err
	}
	return &validated, nil
}

// RetrieveBeneficiary returns the beneficiary with the given id.
func (c *Client) RetrieveBeneficiary(ctx context.Context, id string) (*model.Beneficiary, error) {
	var b model.Beneficiary
	if err := c.get(ctx, "/v2/beneficiaries/"+url.PathEscape(id), nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// FindBeneficiaries returns the beneficiaries matching filter.
// filter and page may be nil.
func (c *Client) FindBeneficiaries(ctx context.Context, filter *model.Beneficiary, page *model.Pagination) (*model.Beneficiaries, error) {
	params := filter.Params()
	for k, v := range page.Params() {
		params[k] = v
	}

	var found model.Beneficiaries
	if err := c.get(ctx, "/v2/beneficiaries/find", params, &found); err != nil {
		return nil, err
	}
	return &found, nil
}

// FirstBeneficiary returns the first beneficiary matching filter.
func (c *Client) FirstBeneficiary(ctx context.Context, filter *model.Beneficiary) (*model.Beneficiary, error) {
	found, err := c.FindBeneficiaries(ctx, filter, &model.Pagination{CurrentPage: 1, PerPage: 1})
	if err != nil {
		return nil, err
	}
	if len(found.Beneficiaries) == 0 {
		return nil, fmt.Errorf("beneficiary %w", ErrNotFound)
	}
	return &found.Beneficiaries[0], nil
}

// UpdateBeneficiary updates the non-empty fields of b, identified by b.ID.
func (c *Client) UpdateBeneficiary(ctx context.Context, b *model.Beneficiary) (*model.Beneficiary, error) {
	if b.ID == "" {
		return nil, errors.New("beneficiary id is required")
	}
	var updated model.Beneficiary
	if err := c.post(ctx, "/v2/beneficiaries/"+url.PathEscape(b.ID), b.Params(), &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteBeneficiary deletes the beneficiary with the given id and returns it.
func (c *Client) DeleteBeneficiary(ctx context.Context, id string) (*model.Beneficiary, error) {
	var deleted model.Beneficiary
	if err := c.post(ctx, "/v2/beneficiaries/"+url.PathEscape(id)+"/delete", nil, &deleted); err != nil {
		return nil, err
	}
	return &deleted, nil
}
