// Package currencycloud is a client for the Currency Cloud REST API.
//
// A Client is created from a base URL and an auth token issued by the
// authenticate endpoint:
//
//	client, err := currencycloud.New(currencycloud.Demonstration, token,
//		currencycloud.WithLogger(logger),
//	)
//
//	beneficiary, err := client.RetrieveBeneficiary(ctx, id)
//
// # On Behalf Of
//
// Requests can be issued on behalf of another account or contact. The
// identity is set for the duration of a function only, and every request
// made by the client meanwhile carries it as the on_behalf_of parameter:
//
//	err := client.OnBehalfOfDo(contactID, func() error {
//		_, err := client.CreateBeneficiary(ctx, beneficiary)
//		return err
//	})
//
// Calls do not nest and the identity must be a UUID. Both conditions are
// checked before anything is sent. See package session for the guarantees.
//
// A Client, like its session, serves one logical call chain at a time.
// Use one Client per goroutine that needs its own on-behalf-of scope.
package currencycloud
