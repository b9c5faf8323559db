package logging

import "github.com/gobeaver/hashkit/config"

// Config defines logger configuration
type Config struct {
	Level       string `env:"LEVEL,default:info"`
	Format      string `env:"FORMAT,default:json"` // json or console
	Development bool   `env:"DEVELOPMENT,default:false"`
	Output      string `env:"OUTPUT,default:stderr"`
}

// GetConfig returns config loaded from environment with HASHKIT_LOG_ prefix
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: "HASHKIT_LOG_"}); err != nil {
		return nil, err
	}
	return cfg, nil
}
