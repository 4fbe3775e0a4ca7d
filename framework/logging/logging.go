// Package logging provides the scoped debug logger shared by every odin
// package, and the scope-prefixed message format used by odin errors.
//
// Scopes nest with ':' so a container logs as "odin:container" and lazy
// field injection as "odin:inject". Debug output is off unless enabled with
// SetDebug (see config.Settings.Debug).
package logging

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// RootScope is the scope every logger descends from.
const RootScope = "odin"

var (
	mu   sync.RWMutex
	base = newBase(os.Stderr)

	whitespace = regexp.MustCompile(`\s+`)
)

func newBase(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: RootScope,
		Level:  log.InfoLevel,
	})
}

// Logger is a scoped view over the shared base logger.
// It holds no level of its own, so scopes created at startup follow later
// SetDebug calls.
type Logger struct {
	scope string
}

// Root returns the logger for the root scope.
func Root() *Logger { return &Logger{scope: RootScope} }

// Scope returns a logger for a direct child of the root scope.
//
//	logging.Scope("container") // odin:container
func Scope(name string) *Logger { return Root().Scope(name) }

// Scope returns a child logger, e.g. odin:container -> odin:container:eager.
func (l *Logger) Scope(name string) *Logger {
	if name == "" {
		return l
	}
	return &Logger{scope: l.scope + ":" + name}
}

// Name returns the full scope, e.g. "odin:container".
func (l *Logger) Name() string { return l.scope }

// Debug logs a debug-level message with key/value pairs.
func (l *Logger) Debug(msg any, keyvals ...any) {
	b := current()
	if b.GetLevel() > log.DebugLevel {
		return
	}
	b.WithPrefix(l.scope).Debug(msg, keyvals...)
}

// Warn logs a warning with key/value pairs.
func (l *Logger) Warn(msg any, keyvals ...any) {
	current().WithPrefix(l.scope).Warn(msg, keyvals...)
}

// Message builds an error message prefixed with the logger scope:
//
//	[odin:container]: No bundle found for domain 'x'.
//
// Parts are joined with a single space and inner whitespace is collapsed.
func (l *Logger) Message(parts ...any) string {
	chunks := make([]string, 0, len(parts)+1)
	chunks = append(chunks, "["+l.scope+"]:")
	for _, part := range parts {
		s := whitespace.ReplaceAllString(fmt.Sprint(part), " ")
		if s = strings.TrimSpace(s); s != "" {
			chunks = append(chunks, s)
		}
	}
	return strings.Join(chunks, " ")
}

// Message builds a root-scoped error message.
func Message(parts ...any) string { return Root().Message(parts...) }

// SetDebug switches debug output on or off for every scope.
func SetDebug(debug bool) {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	current().SetLevel(level)
}

// Debugging reports whether debug output is enabled.
func Debugging() bool { return current().GetLevel() <= log.DebugLevel }

// SetOutput redirects all log output, keeping the current level.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	level := base.GetLevel()
	base = newBase(w)
	base.SetLevel(level)
}

func current() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}
