package cmd

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds defaults read from the environment. Explicit flags win.
type Env struct {
	Seed      int64  `env:"VAXNET_SEED" envDefault:"42"`
	LogLevel  string `env:"VAXNET_LOG" envDefault:"error"`
	ResultsDB string `env:"VAXNET_RESULTS_DB"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// loadEnv parses Env, returning an error for malformed values such as a
// non-numeric VAXNET_SEED.
func loadEnv() (Env, error) {
	var e Env
	if err := ParseEnv(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}
