package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when the merged
// configuration is incomplete or inconsistent.
var (
	// ErrInvalidConfig wraps struct tag violations reported by the validator.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrInvalidServerConfigs indicates conflicting listener settings
	// (for example, metrics and HTTP servers on the same address).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidStaticConfigs indicates a static URL prefix without a
	// directory or the other way round.
	ErrInvalidStaticConfigs = errors.New("invalid static files configuration")
)
