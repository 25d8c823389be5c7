// Package model defines the Currency Cloud resources exchanged by the client.
//
// Responses are decoded from the API's snake_case JSON. Requests are sent as
// form parameters, built with each model's Params method; zero-valued fields
// are omitted so that the same model can serve as a create body, an update
// body or a search filter.
//
// # Resources
//
//   - Beneficiary: a payee of the account, with bank and routing details
//   - Balance: the amount held in one currency
//   - Account: a Currency Cloud account or sub-account
//   - Pagination: page parameters of find requests and page metadata of results
package model
