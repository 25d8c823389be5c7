package model

import "net/url"

// Pagination carries paging parameters on find requests and paging
// metadata on their results.
type Pagination struct {
	TotalEntries int    `json:"total_entries"`
	TotalPages   int    `json:"total_pages"`
	CurrentPage  int    `json:"current_page"`
	PerPage      int    `json:"per_page"`
	PreviousPage int    `json:"previous_page"`
	NextPage     int    `json:"next_page"`
	Order        string `json:"order"`
	OrderAscDesc string `json:"order_asc_desc"`
}

// Params returns the request parameters for the page being asked for.
func (p *Pagination) Params() url.Values {
	v := params{}
	if p == nil {
		return url.Values(v)
	}
	v.integer("page", p.CurrentPage)
	v.integer("per_page", p.PerPage)
	v.str("order", p.Order)
	v.str("order_asc_desc", p.OrderAscDesc)
	return url.Values(v)
}
