// Package config handles configuration for the development API server,
// including defaults, environment, file overlay and command-line flags.
package config

import "time"

// Config holds runtime settings for the gophauth development server.
//
// Fields:
//   - Addr: HTTP listen address.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the default outside development.
//   - TokenTTL: lifetime of login tokens.
//   - ResetTokenTTL: lifetime of password reset tokens.
//   - CodeTTL: lifetime of verification codes.
//   - LogLevel: level of the JSON log written to stdout.
type Config struct {
	Addr          string
	SecretKey     string
	TokenTTL      time.Duration
	ResetTokenTTL time.Duration
	CodeTTL       time.Duration
	LogLevel      string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.SecretKey = "secretKey"
	c.TokenTTL = 60 * time.Minute
	c.ResetTokenTTL = 10 * time.Minute
	c.CodeTTL = 10 * time.Minute
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment, an optional JSON or YAML file and finally from
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
