// Package sandbox is an in-memory stand-in for the Currency Cloud API.
//
// It serves the beneficiary, balance and account endpoints used by the
// client, authenticates requests by X-Auth-Token and keeps data per
// account: requests made on behalf of an account read and write that
// account's data only. Every request is recorded with the on_behalf_of
// value it carried, so callers can check exactly which requests left a
// client inside an on-behalf-of scope.
//
//	sb := sandbox.New("6f5f99d1b860fc47e8a186e3dce0d3f9")
//	srv := httptest.NewServer(sb)
//	defer srv.Close()
//
// ccctl runs it as a standalone server with `ccctl sandbox`.
package sandbox
