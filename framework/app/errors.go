package app

import (
	"errors"
	"fmt"

	"github.com/km-arc/go-odin/framework/logging"
)

// ErrLookupFailure matches every LookupFailure with errors.Is.
var ErrLookupFailure = errors.New("odin: lookup failure")

// LookupFailure is returned when no bundle exists for a domain path.
type LookupFailure struct {
	Domain string
}

func (e *LookupFailure) Error() string {
	return logging.Message(fmt.Sprintf("No bundle found for domain '%s'.", e.Domain))
}

// Is reports whether target is ErrLookupFailure.
func (e *LookupFailure) Is(target error) bool {
	return target == ErrLookupFailure
}
