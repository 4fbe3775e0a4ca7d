package registry

import (
	"maps"

	"github.com/km-arc/go-odin/framework/config"
)

// Descriptor describes a registered injectable. It is immutable once created.
type Descriptor struct {
	// Name is the normalized name of the injectable itself.
	Name string

	// Identifier is the normalized custom identifier, empty when none.
	Identifier string

	Injectable *Injectable

	// Options are the registration options without the "name" key;
	// nil when nothing else was given.
	Options Options
}

// NewDescriptor builds the descriptor for an injectable registration.
// A custom "name" option different from the injectable name becomes the
// identifier.
func NewDescriptor(cfg *config.Configuration, injectable *Injectable, options Options) *Descriptor {
	d := &Descriptor{Injectable: injectable}
	if injectable != nil {
		d.Name = injectable.Name()
	}

	if options != nil {
		rest := maps.Clone(options)
		if custom, ok := rest[NameOption].(string); ok && IsContentful(custom) && custom != d.Name {
			d.Identifier = custom
		}
		delete(rest, NameOption)
		if len(rest) > 0 {
			d.Options = rest
		}
	}

	d.Identifier = cfg.Normalize(d.Identifier)
	d.Name = cfg.Normalize(d.Name)
	return d
}

// Keys returns the identifier (if any) followed by the name.
func (d *Descriptor) Keys() []string {
	if d.Identifier != "" {
		return []string{d.Identifier, d.Name}
	}
	return []string{d.Name}
}
