package config

import (
	"errors"

	"github.com/km-arc/go-odin/framework/logging"
)

// ErrConfiguration matches every ConfigurationError with errors.Is.
var ErrConfiguration = errors.New("odin: configuration error")

// ConfigurationError is returned when the configuration is changed after it
// has been initialized.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return logging.Message(e.Reason)
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
