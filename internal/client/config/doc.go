// Package config loads runtime configuration for the gophauth CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: GOPHAUTH_API_URL, GOPHAUTH_SESSION_DB,
//     GOPHAUTH_REQUEST_TIMEOUT, GOPHAUTH_REVALIDATE, GOPHAUTH_LOG_LEVEL.
//     A .env file in the working directory is loaded first if present.
//  3. Optional JSON or YAML file (by extension) selected via -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the account API
//	-d string   session database path (~ is expanded)
//	-t int      request timeout (seconds)
//	-r          revalidate the stored token on start
//	-l string   log level
//
// # File schema
//
//	api_base_url: http://127.0.0.1:8080
//	session_db: ~/.gophauth/session.db
//	request_timeout: 5s
//	revalidate_on_bootstrap: true
//	log_level: info
//
// The same keys are used in JSON.
package config
