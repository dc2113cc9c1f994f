// Package config reads configuration from the environment, the only place
// the storefront's deployments set it.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Validator is implemented by config structs that carry invariants beyond
// what `env` tags can express. Load runs it after parsing.
type Validator interface {
	Validate() error
}

// Load fills cfg from environment variables using its `env` struct tags,
// then runs cfg's Validate hook when it has one. Defaults come from
// `envDefault` tags, so a fresh development checkout runs with no
// environment set at all.
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	if v, ok := cfg.(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("validate config: %w", err)
		}
	}
	return nil
}
