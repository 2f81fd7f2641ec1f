package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-s string   JWT HMAC secret key
//	-t int      login token validity, minutes
//	-v int      verification code validity, minutes
//	-l string   log level
//
// Duration flags are accepted as integers in minutes and then converted
// to time.Duration values.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-t", "-v", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run server")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenTTL := fs.Int("t", int(config.TokenTTL.Minutes()), "token validity (in minutes)")
	codeTTL := fs.Int("v", int(config.CodeTTL.Minutes()), "verification code validity (in minutes)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenTTL = time.Duration(*tokenTTL) * time.Minute
	config.CodeTTL = time.Duration(*codeTTL) * time.Minute
}
