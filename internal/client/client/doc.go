// Package client contains the client-side transport for gophauth.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (APIClient) for the account API:
//     login, register, onboard, forgot-password, reset-code verification and
//     password reset.
//  2. A JSON-over-HTTP implementation (HTTPClient) that tags each request
//     with an X-Request-ID and maps non-2xx responses to *RequestError.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     SQLite file backing the session store.
//
// # Error Handling
//
// Every API failure is a *RequestError whose Message is safe to show to the
// user. Transport conditions wrap sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized.
//
// # Timeouts
//
// HTTPClient does not retry and, unless constructed with a positive timeout,
// relies on the transport defaults and the caller's context.
package client
