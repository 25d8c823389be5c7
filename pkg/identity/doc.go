// Package identity validates the account identities a Currency Cloud client
// can act on behalf of.
//
// Currency Cloud identifies contacts and sub-accounts by UUID. An identity
// used for an on-behalf-of call must be written in the canonical textual form
// of 32 hexadecimal digits grouped 8-4-4-4-12 and separated by hyphens:
//
//	c6ece846-6df1-461d-acaa-b42a6aa74045
//
// # Basic Usage
//
//	if err := identity.Validate(contactID); err != nil {
//		return err // "..." is not a UUID
//	}
//
// # Request Context
//
// Server-side code (the sandbox) stores the identity a request was issued on
// behalf of in its context:
//
//	ctx = identity.WithOnBehalfOf(ctx, id)
//
//	id, ok := identity.OnBehalfOf(ctx)
package identity
