// Package client talks to the files manager HTTP API and bootstraps the
// CLI's local state database.
//
// Failures are reported with sentinel errors matched by errors.Is:
// ErrUnavailable when the server cannot be reached, ErrUnauthorized when the
// session token is missing or expired. Any other non-2xx reply is an
// *APIError carrying the status code and the server's message.
package client
