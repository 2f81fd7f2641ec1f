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

// FileConfig is the on-disk shape of the server configuration. It is only
// used for unmarshalling; absent keys keep the current value.
type FileConfig struct {
	Addr          string          `json:"addr" yaml:"addr"`
	SecretKey     string          `json:"secret_key" yaml:"secret_key"`
	TokenTTL      *timex.Duration `json:"token_ttl" yaml:"token_ttl"`
	ResetTokenTTL *timex.Duration `json:"reset_token_ttl" yaml:"reset_token_ttl"`
	CodeTTL       *timex.Duration `json:"code_ttl" yaml:"code_ttl"`
	LogLevel      string          `json:"log_level" yaml:"log_level"`
}

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

// parseFile loads the file named by -c/-config, if any. Read or decode
// errors panic.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	var fc FileConfig
	if err := decodeFile(path, &fc); err != nil {
		panic(err)
	}
	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.Addr != "" {
		cfg.Addr = fc.Addr
	}
	if fc.SecretKey != "" {
		cfg.SecretKey = fc.SecretKey
	}
	if fc.TokenTTL != nil {
		cfg.TokenTTL = fc.TokenTTL.Duration
	}
	if fc.ResetTokenTTL != nil {
		cfg.ResetTokenTTL = fc.ResetTokenTTL.Duration
	}
	if fc.CodeTTL != nil {
		cfg.CodeTTL = fc.CodeTTL.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}
