// Package bundle provides the hierarchical namespace of registries.
//
// A bundle sees everything registered in its ancestors, never what its
// descendants register, and refuses any registration whose name or
// identifier is already visible through its ancestor chain.
package bundle

import (
	"maps"
	"slices"

	"github.com/km-arc/go-odin/framework/config"
	"github.com/km-arc/go-odin/framework/logging"
	"github.com/km-arc/go-odin/framework/registry"
)

// Bundle is a tree node owning one registry.
type Bundle struct {
	cfg    *config.Configuration
	log    *logging.Logger
	domain string
	parent *Bundle

	children map[string]*Bundle
	registry *registry.Registry
}

// New creates a root bundle. The domain must be a single chunk.
func New(cfg *config.Configuration, domain string) (*Bundle, error) {
	if cfg == nil {
		cfg = config.New()
	}
	return newBundle(cfg, domain, nil)
}

func newBundle(cfg *config.Configuration, domain string, parent *Bundle) (*Bundle, error) {
	if err := registry.ValidateDomain(domain, false); err != nil {
		return nil, err
	}
	domain = cfg.Normalize(domain)
	return &Bundle{
		cfg:      cfg,
		log:      logging.Scope("bundle"),
		domain:   domain,
		parent:   parent,
		children: make(map[string]*Bundle),
		registry: registry.New(cfg),
	}, nil
}

// Register validates the injectable against this bundle and every ancestor,
// then registers it in this bundle's own registry.
func (b *Bundle) Register(injectable *registry.Injectable, options registry.Options) (string, error) {
	if err := b.ValidateRegistration(injectable, options); err != nil {
		return "", err
	}
	return b.registry.Register(injectable, options)
}

// Deregister removes the injectable from this bundle's own registry only.
func (b *Bundle) Deregister(injectable *registry.Injectable) bool {
	return b.registry.Deregister(injectable)
}

// Owns reports whether the injectable is registered in this bundle's own
// registry.
func (b *Bundle) Owns(injectable *registry.Injectable) bool {
	return b.registry.Owns(injectable)
}

// Has reports whether a name or identifier is visible from this bundle.
func (b *Bundle) Has(nameOrIdentifier string) bool {
	_, ok := b.Get(nameOrIdentifier)
	return ok
}

// Get looks the key up in this bundle, then in its ancestors.
func (b *Bundle) Get(nameOrIdentifier string) (*registry.Descriptor, bool) {
	for current := b; current != nil; current = current.parent {
		if d, ok := current.registry.Get(nameOrIdentifier); ok {
			return d, true
		}
	}
	return nil, false
}

// ValidateRegistration checks the registration against this bundle and
// every ancestor without mutating anything.
func (b *Bundle) ValidateRegistration(injectable *registry.Injectable, options registry.Options) error {
	for current := b; current != nil; current = current.parent {
		if err := current.registry.ValidateRegistration(injectable, options); err != nil {
			return err
		}
	}
	return nil
}

// Instantiate builds a new instance of the descriptor's injectable with a
// copy of its options, or nil options when none were registered.
func (b *Bundle) Instantiate(d *registry.Descriptor) (any, error) {
	var options registry.Options
	if d.Options != nil {
		options = maps.Clone(d.Options)
	}
	b.log.Debug("instantiating", "name", d.Name, "bundle", b.Path())
	return d.Injectable.Build(options)
}

// Child returns the child bundle for domain, creating it on first request.
func (b *Bundle) Child(domain string) (*Bundle, error) {
	if err := registry.ValidateDomain(domain, false); err != nil {
		return nil, err
	}
	domain = b.cfg.Normalize(domain)

	if child, ok := b.children[domain]; ok {
		return child, nil
	}

	child, err := newBundle(b.cfg, domain, b)
	if err != nil {
		return nil, err
	}
	b.children[domain] = child
	b.log.Debug("created bundle", "path", child.Path())
	return child, nil
}

// HasChild reports whether a child bundle exists for domain.
func (b *Bundle) HasChild(domain string) bool {
	if !registry.IsContentful(domain) {
		return false
	}
	_, ok := b.children[b.cfg.Normalize(domain)]
	return ok
}

// Domain returns the normalized domain of this bundle.
func (b *Bundle) Domain() string { return b.domain }

// Parent returns the parent bundle, nil for a root.
func (b *Bundle) Parent() *Bundle { return b.parent }

// Config returns the configuration shared by the whole tree.
func (b *Bundle) Config() *config.Configuration { return b.cfg }

// Path returns the '/'-joined domains from the root to this bundle.
func (b *Bundle) Path() string {
	if b.parent == nil {
		return b.domain
	}
	return b.parent.Path() + "/" + b.domain
}

// Children returns the child bundles sorted by domain.
func (b *Bundle) Children() []*Bundle {
	out := make([]*Bundle, 0, len(b.children))
	for _, domain := range slices.Sorted(maps.Keys(b.children)) {
		out = append(out, b.children[domain])
	}
	return out
}

// Descriptors returns the descriptors registered in this bundle only.
func (b *Bundle) Descriptors() []*registry.Descriptor {
	return b.registry.Descriptors()
}
