// Package config loads struct configuration from environment variables and
// .env files.
//
// Every hashkit package exposes a Config struct tagged with `env` names and
// a GetConfig function built on Load. Variable names carry a prefix, by
// default "HASHKIT_", so the URL signer reads HASHKIT_URLSIGNER_SECRET_KEY
// and the logger reads HASHKIT_LOG_LEVEL.
//
// # Basic Usage
//
//	type Config struct {
//	    Algorithm string        `env:"ALGORITHM,default:sha256"`
//	    Workers   int           `env:"WORKERS,default:4"`
//	    Timeout   time.Duration `env:"TIMEOUT,default:10s"`
//	    Secret    string        `env:"SECRET,required"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// # Custom Prefixes
//
//	err := config.Load(&cfg, config.LoadOptions{Prefix: "MYAPP_"})
//
// # Supported Types
//
//   - string
//   - bool, parsed with strconv.ParseBool
//   - int, int8..int64 and uint, uint8..uint64
//   - float32, float64
//   - time.Duration, parsed with time.ParseDuration
//   - []string, comma separated
//
// # Debugging
//
// Set HASHKIT_CONFIG_DEBUG=true, or LoadOptions.Debug, to log each resolved
// variable through LoadOptions.Logger. Names containing SECRET, KEY,
// PASSWORD or TOKEN are masked.
package config
