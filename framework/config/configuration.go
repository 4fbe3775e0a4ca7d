// Package config holds odin's process configuration: the Configuration flag
// store read on every name comparison, and the Settings loaded from the
// environment at bootstrap.
package config

import (
	"strings"
)

// Configuration maintains the strict and initialized flags.
//
// One Configuration is owned by the odin root and shared by reference with
// every registry, bundle and custom provider built under it.
type Configuration struct {
	strict      bool
	initialized bool
}

// New returns a non-strict, uninitialized configuration.
func New() *Configuration {
	return &Configuration{}
}

// IsStrict reports whether names, identifiers and domains are case-sensitive.
func (c *Configuration) IsStrict() bool { return c.strict }

// SetStrict defines whether strict mode is enabled.
func (c *Configuration) SetStrict(strict bool) { c.strict = strict }

// IsInitialized reports whether the configuration has been initialized.
func (c *Configuration) IsInitialized() bool { return c.initialized }

// SetInitialized marks the configuration as initialized or not.
func (c *Configuration) SetInitialized(initialized bool) { c.initialized = initialized }

// Initialize sets strict mode and marks the configuration as initialized.
// It fails with a ConfigurationError when called after initialization.
func (c *Configuration) Initialize(strict bool) error {
	if c.initialized {
		return &ConfigurationError{Reason: "The configuration can only be initialized once."}
	}
	c.strict = strict
	c.initialized = true
	return nil
}

// Normalize folds a name, identifier or domain to lower case unless strict
// mode is on. Blank values are returned as-is.
func (c *Configuration) Normalize(value string) string {
	if c == nil || c.strict || strings.TrimSpace(value) == "" {
		return value
	}
	return strings.ToLower(value)
}
