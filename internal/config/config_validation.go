// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validate checks that the final merged [StructuredConfig] satisfies all
// startup invariants: struct tag rules first, then cross-field checks.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// sentinel errors in errors.go otherwise.
func (cfg *StructuredConfig) validate() error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if (cfg.Static.URLPrefix == "") != (cfg.Static.Dir == "") {
		return ErrInvalidStaticConfigs
	}

	if cfg.Server.MetricsAddress != "" && cfg.Server.MetricsAddress == cfg.Server.HTTPAddress() {
		return ErrInvalidServerConfigs
	}

	return nil
}
