// Package cli provides the interactive gophauth command-line client.
//
// It wires configuration, the local session database, the account API
// client, the auth state store and the router, then runs a REPL. On start the
// persisted session is restored, so a returning user lands signed in.
//
// Key features:
//   - Sign in with email or phone
//   - Register with email and/or phone, then verify with the delivered code
//   - Reset a forgotten password (request code, verify, set new password)
//   - Profile page behind the auth guard; auth pages behind the guest guard
//   - Logout, which also wipes the persisted session
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, Render and runREPL for details.
package cli
