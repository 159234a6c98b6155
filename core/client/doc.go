// Package client provides the HTTP plumbing shared by every catalog service in the SDK.
//
// A Client wraps net/http with the concerns every call against the catalog needs:
// bearer-token authentication, JSON encoding (goccy/go-json), a request id per call,
// optional client-side rate limiting, retries with exponential back-off for transient
// failures and a circuit breaker that stops hammering an unhealthy tenant.
//
// # Errors
//
// Non-2xx responses are returned as *APIError. The error carries the HTTP status, the
// platform error code and message, and a Kind that classifies it. Kinds can be matched
// with errors.Is against the exported sentinels:
//
//	if errors.Is(err, client.ErrNotFound) {
//	    // asset does not exist
//	}
//
// # Usage
//
//	c, err := client.New(cfg.Client, client.WithLogger(log))
//	var out assets.MutationResponse
//	err = c.Call(ctx, client.BulkSaveEntities, query, body, &out)
package client
