package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvAddr          = "GOPHAUTH_ADDR"
	EnvSecret        = "GOPHAUTH_SECRET"
	EnvTokenTTL      = "GOPHAUTH_TOKEN_TTL"
	EnvResetTokenTTL = "GOPHAUTH_RESET_TOKEN_TTL"
	EnvCodeTTL       = "GOPHAUTH_CODE_TTL"
	EnvLogLevel      = "GOPHAUTH_LOG_LEVEL"
)

var dotenvFile = ".env"

func lookupDuration(key string, dst *time.Duration) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}

// parseEnv overlays Config with GOPHAUTH_* variables, after loading .env
// when it exists. Durations use time.ParseDuration syntax.
func parseEnv(cfg *Config) {
	_ = godotenv.Load(dotenvFile)

	if v, ok := os.LookupEnv(EnvAddr); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := os.LookupEnv(EnvSecret); ok && v != "" {
		cfg.SecretKey = v
	}
	lookupDuration(EnvTokenTTL, &cfg.TokenTTL)
	lookupDuration(EnvResetTokenTTL, &cfg.ResetTokenTTL)
	lookupDuration(EnvCodeTTL, &cfg.CodeTTL)
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
}
