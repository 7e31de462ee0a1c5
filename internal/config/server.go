package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerConfig holds the SSH server settings.
// Every field can be set from the environment, e.g. SAFEORDEAD_SSH_ADDR.
type ServerConfig struct {
	// Address is the host:port to listen on.
	Address string `env:"SSH_ADDR" envDefault:":23235"`

	// HostKeyPath is the path to the host key file.
	// If empty, a key is generated at ~/.safeordead/host_key.
	HostKeyPath string `env:"HOST_KEY"`

	// DBPath is the round history database. Empty disables history.
	DBPath string `env:"DB" envDefault:"~/.safeordead/rounds.db"`

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration `env:"IDLE_TIMEOUT" envDefault:"30m"`

	// TickRate is the UI tick rate per session.
	TickRate int `env:"TICK_RATE" envDefault:"60"`
}

// EnvPrefix is prepended to every ServerConfig variable name.
const EnvPrefix = "SAFEORDEAD_"

// LoadServer reads server settings from the environment.
func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("failed to parse server environment: %w", err)
	}
	if cfg.TickRate <= 0 {
		return cfg, fmt.Errorf("config: %sTICK_RATE must be > 0, got %d", EnvPrefix, cfg.TickRate)
	}
	return cfg, nil
}
