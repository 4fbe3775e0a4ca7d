// Package registry provides the flat, collision-checked store mapping
// injectable names and custom identifiers to their descriptors.
//
// A registry is not synchronized: registrations are expected to happen at
// bootstrap, before resolution traffic starts.
package registry

import (
	"slices"
	"strings"

	"github.com/km-arc/go-odin/framework/config"
	"github.com/km-arc/go-odin/framework/logging"
)

// Registry holds injectable descriptors indexed by name, identifier and
// injectable token.
type Registry struct {
	cfg *config.Configuration
	log *logging.Logger

	byIdentifier map[string]*Descriptor
	byName       map[string]*Descriptor
	byInjectable map[*Injectable]*Descriptor
}

// New creates an empty registry normalizing keys with cfg.
func New(cfg *config.Configuration) *Registry {
	if cfg == nil {
		cfg = config.New()
	}
	return &Registry{
		cfg:          cfg,
		log:          logging.Scope("registry"),
		byIdentifier: make(map[string]*Descriptor),
		byName:       make(map[string]*Descriptor),
		byInjectable: make(map[*Injectable]*Descriptor),
	}
}

// Register validates and stores an injectable, returning its normalized name.
//
// Returns a *RegistrationConflict if the name or identifier is already taken,
// or a *ValidationError for a nil injectable or a malformed name.
func (r *Registry) Register(injectable *Injectable, options Options) (string, error) {
	if err := r.ValidateRegistration(injectable, options); err != nil {
		return "", err
	}

	d := NewDescriptor(r.cfg, injectable, options)
	if d.Identifier != "" {
		r.byIdentifier[d.Identifier] = d
	}
	r.byInjectable[injectable] = d
	r.byName[d.Name] = d

	r.log.Debug("registered injectable", "name", d.Name, "identifier", d.Identifier)
	return d.Name, nil
}

// Deregister removes every index entry of an injectable.
// Returns false when it was not registered here.
func (r *Registry) Deregister(injectable *Injectable) bool {
	d, ok := r.byInjectable[injectable]
	if !ok {
		return false
	}

	if d.Identifier != "" {
		delete(r.byIdentifier, d.Identifier)
	}
	delete(r.byInjectable, injectable)
	delete(r.byName, d.Name)

	r.log.Debug("deregistered injectable", "name", d.Name)
	return true
}

// Owns reports whether the injectable itself is registered here.
func (r *Registry) Owns(injectable *Injectable) bool {
	_, ok := r.byInjectable[injectable]
	return ok
}

// Has reports whether a name or identifier is registered.
func (r *Registry) Has(nameOrIdentifier string) bool {
	_, ok := r.Get(nameOrIdentifier)
	return ok
}

// Get returns the descriptor for a name or identifier. Identifiers take
// precedence over names.
func (r *Registry) Get(nameOrIdentifier string) (*Descriptor, bool) {
	if !IsContentful(nameOrIdentifier) {
		return nil, false
	}
	key := r.cfg.Normalize(nameOrIdentifier)

	if d, ok := r.byIdentifier[key]; ok {
		return d, true
	}
	d, ok := r.byName[key]
	return d, ok
}

// ValidateRegistration checks whether an injectable could be registered,
// without mutating anything.
//
// Collisions are checked identifier vs identifier, identifier vs name,
// name vs identifier, then name vs name; the first one found is reported.
func (r *Registry) ValidateRegistration(injectable *Injectable, options Options) error {
	if injectable == nil {
		return &ValidationError{Reason: "The injectable cannot be nil."}
	}
	if err := ValidateNameOrIdentifier(injectable.Name()); err != nil {
		return err
	}

	d := NewDescriptor(r.cfg, injectable, options)
	if d.Identifier != "" {
		if err := ValidateNameOrIdentifier(d.Identifier); err != nil {
			return err
		}
		if r.Has(d.Identifier) {
			return &RegistrationConflict{Key: d.Identifier}
		}
	}

	if r.Has(d.Name) {
		return &RegistrationConflict{Key: d.Name}
	}
	return nil
}

// Descriptors returns a snapshot of every descriptor, sorted by name.
func (r *Registry) Descriptors() []*Descriptor {
	out := make([]*Descriptor, 0, len(r.byName))
	for _, d := range r.byName {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b *Descriptor) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// Len returns the number of registered injectables.
func (r *Registry) Len() int { return len(r.byName) }
