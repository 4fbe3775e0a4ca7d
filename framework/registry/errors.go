package registry

import (
	"errors"
	"fmt"

	"github.com/km-arc/go-odin/framework/logging"
)

var (
	// ErrRegistrationConflict matches every RegistrationConflict with errors.Is.
	ErrRegistrationConflict = errors.New("odin: registration conflict")

	// ErrInvalid matches every ValidationError with errors.Is.
	ErrInvalid = errors.New("odin: invalid argument")
)

// RegistrationConflict is returned when a normalized name or identifier is
// already taken in the visible registration chain.
type RegistrationConflict struct {
	// Key is the normalized name or identifier that collided.
	Key string
}

func (e *RegistrationConflict) Error() string {
	return logging.Message(fmt.Sprintf("There already is an injectable '%s' registered.", e.Key))
}

// Is reports whether target is ErrRegistrationConflict.
func (e *RegistrationConflict) Is(target error) bool {
	return target == ErrRegistrationConflict
}

// ValidationError is returned for malformed domains, names or arguments.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return logging.Message(e.Reason)
}

// Is reports whether target is ErrInvalid.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}
