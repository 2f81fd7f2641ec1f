package config

import (
	"time"

	"github.com/dmitrijs2005/gophauth/internal/filex"
)

// Config holds runtime settings for the gophauth CLI.
//
// Fields:
//   - APIBaseURL: base URL of the account API, without the /api/v1 prefix.
//   - SessionDB: path of the SQLite file holding the persisted session.
//   - RequestTimeout: per-request timeout; zero leaves the transport default.
//   - RevalidateOnBootstrap: check the stored token's expiry before trusting it.
//   - LogLevel: level of the diagnostic log written to stderr.
type Config struct {
	APIBaseURL            string
	SessionDB             string
	RequestTimeout        time.Duration
	RevalidateOnBootstrap bool
	LogLevel              string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.SessionDB = "~/.gophauth/session.db"
	c.RequestTimeout = 0
	c.RevalidateOnBootstrap = false
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (.env included), a JSON or YAML file and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFile(cfg)
	parseFlags(cfg)

	path, err := filex.ExpandHome(cfg.SessionDB)
	if err != nil {
		panic(err)
	}
	cfg.SessionDB = path

	return cfg
}
