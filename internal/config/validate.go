package config

import (
	"errors"
	"fmt"
)

// validLogLevels are the accepted log_level values.
var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

// Validate checks all configuration values and returns all errors found.
// It accumulates every error rather than stopping at the first, so a
// misconfigured deployment gets one complete report.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Listen == "" {
		errs = append(errs, errors.New("listen address must not be empty"))
	}

	if !validLogLevels[cfg.LogLevel] {
		errs = append(errs, fmt.Errorf("invalid log_level %q (debug, info, warn, error)", cfg.LogLevel))
	}

	if cfg.AdminToken == "" {
		errs = append(errs, errors.New("admin_token must be set (shared secret for admin endpoints)"))
	}

	// All three credential parts are required together; a partial set can
	// only be a deployment mistake.
	if cfg.Graph.TenantID == "" || cfg.Graph.ClientID == "" || cfg.Graph.ClientSecret == "" {
		errs = append(errs, errors.New("graph credentials incomplete: tenant_id, client_id, and client_secret are all required"))
	}

	// The Steam API key is optional: without it the /steam routes report a
	// configuration failure instead of calling upstream.

	return errors.Join(errs...)
}
