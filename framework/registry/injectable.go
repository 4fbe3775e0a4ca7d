package registry

import (
	"reflect"
)

// Options are passed as the single argument of an injectable builder.
// The "name" key is reserved for a custom identifier and never reaches the
// builder.
type Options map[string]any

// NameOption is the options key holding a custom identifier.
const NameOption = "name"

// Builder constructs a new instance from its options. Options is nil when
// the injectable was registered without any.
type Builder func(options Options) (any, error)

// Injectable is the registration token for a constructible type.
//
// Its pointer identity is what registries and the metadata table key on, so
// define each injectable once (usually as a package-level var) and reuse it.
type Injectable struct {
	name  string
	build Builder
}

// NewInjectable defines an injectable with an explicit name.
func NewInjectable(name string, build Builder) *Injectable {
	return &Injectable{name: name, build: build}
}

// Define defines an injectable named after the Go type T.
//
//	var Mailer = registry.Define(func(opts registry.Options) (*Mailer, error) {
//	    return &Mailer{Host: opts["host"].(string)}, nil
//	})
func Define[T any](ctor func(options Options) (*T, error)) *Injectable {
	return NewInjectable(TypeName[T](), func(options Options) (any, error) {
		instance, err := ctor(options)
		if err != nil {
			return nil, err
		}
		return instance, nil
	})
}

// Of defines an injectable named after T whose constructor takes no options
// and cannot fail.
func Of[T any](ctor func() *T) *Injectable {
	return NewInjectable(TypeName[T](), func(Options) (any, error) {
		return ctor(), nil
	})
}

// TypeName returns the bare name of T, dereferencing pointers.
func TypeName[T any]() string {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// Name returns the injectable's own name, before normalization.
func (i *Injectable) Name() string { return i.name }

// Build constructs a new instance.
func (i *Injectable) Build(options Options) (any, error) {
	if i.build == nil {
		return nil, nil
	}
	return i.build(options)
}
