package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvAPIURL         = "GOPHAUTH_API_URL"
	EnvSessionDB      = "GOPHAUTH_SESSION_DB"
	EnvRequestTimeout = "GOPHAUTH_REQUEST_TIMEOUT"
	EnvRevalidate     = "GOPHAUTH_REVALIDATE"
	EnvLogLevel       = "GOPHAUTH_LOG_LEVEL"
)

// dotenvFile is loaded, when present, before the environment is read.
// Variables already set in the process environment win.
var dotenvFile = ".env"

// parseEnv overlays Config with GOPHAUTH_* environment variables. Malformed
// values panic, like every other config source.
func parseEnv(cfg *Config) {
	_ = godotenv.Load(dotenvFile)

	if v, ok := os.LookupEnv(EnvAPIURL); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv(EnvSessionDB); ok && v != "" {
		cfg.SessionDB = v
	}
	if v, ok := os.LookupEnv(EnvRequestTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := os.LookupEnv(EnvRevalidate); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		cfg.RevalidateOnBootstrap = b
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
}
