package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
	"github.com/dmitrijs2005/gophauth/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for file unmarshalling. Durations use
// timex.Duration, so files may say "5s" or integer nanoseconds. Absent keys
// leave the current value alone.
type FileConfig struct {
	APIBaseURL            string          `json:"api_base_url" yaml:"api_base_url"`
	SessionDB             string          `json:"session_db" yaml:"session_db"`
	RequestTimeout        *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	RevalidateOnBootstrap *bool           `json:"revalidate_on_bootstrap" yaml:"revalidate_on_bootstrap"`
	LogLevel              string          `json:"log_level" yaml:"log_level"`
}

// decodeFile picks the decoder from the file extension: .yaml/.yml use YAML,
// everything else JSON.
func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, out)
	default:
		err = json.Unmarshal(data, out)
	}
	if err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	return nil
}

// parseFile overlays Config with values from the file named by -c/-config.
// Without the flag nothing happens. Read or decode errors panic.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	var fc FileConfig
	if err := decodeFile(path, &fc); err != nil {
		panic(err)
	}

	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.SessionDB != "" {
		cfg.SessionDB = fc.SessionDB
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.RevalidateOnBootstrap != nil {
		cfg.RevalidateOnBootstrap = *fc.RevalidateOnBootstrap
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}
