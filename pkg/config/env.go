package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env is the process configuration read from the environment.
type Env struct {
	DataDir     string        `env:"GREATCORP_DIR"`
	Difficulty  string        `env:"GREATCORP_DIFFICULTY" envDefault:"normal"`
	BalanceFile string        `env:"GREATCORP_BALANCE"`
	Tick        time.Duration `env:"GREATCORP_TICK" envDefault:"200ms"`
	Seed        int64         `env:"GREATCORP_SEED"`
	LogFile     string        `env:"GREATCORP_LOG"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Balance resolves the effective balance: the difficulty preset, overlaid
// with the balance file when one is configured.
func (e Env) Balance() (Balance, error) {
	base := Preset(e.Difficulty)
	if e.BalanceFile == "" {
		return base, nil
	}
	return LoadBalance(e.BalanceFile, base)
}
