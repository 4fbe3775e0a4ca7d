package container

import (
	"errors"
	"fmt"

	"github.com/km-arc/go-odin/framework/logging"
)

// ErrMissingContainer matches every MissingContainer with errors.Is.
var ErrMissingContainer = errors.New("odin: missing container")

var scope = logging.Scope("container")

// MissingContainer is returned when a non-optional injected field is read
// on an instance that was not built by a container.
type MissingContainer struct {
	Field string
}

func (e *MissingContainer) Error() string {
	return logging.Message(fmt.Sprintf("There is no container at '%s'.", e.Field))
}

// Is reports whether target is ErrMissingContainer.
func (e *MissingContainer) Is(target error) bool {
	return target == ErrMissingContainer
}

// ResolutionError wraps a failure raised while building, wiring or
// initializing an injectable.
type ResolutionError struct {
	Name string
	Err  error
}

func (e *ResolutionError) Error() string {
	return scope.Message(fmt.Sprintf("Could not resolve '%s':", e.Name), e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }
