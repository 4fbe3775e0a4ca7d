// Package provider implements the custom provider: a keyed set of
// user-supplied resolvers the container falls back to when no registered
// injectable matches a name.
package provider

import (
	"fmt"

	"github.com/km-arc/go-odin/framework/config"
	"github.com/km-arc/go-odin/framework/logging"
	"github.com/km-arc/go-odin/framework/registry"
	"github.com/km-arc/go-odin/framework/resolver"
)

// CustomProvider maps names or identifiers to resolvers.
type CustomProvider struct {
	cfg       *config.Configuration
	log       *logging.Logger
	resolvers map[string]resolver.Resolver
}

// New creates an empty provider normalizing keys with cfg.
func New(cfg *config.Configuration) *CustomProvider {
	if cfg == nil {
		cfg = config.New()
	}
	return &CustomProvider{
		cfg:       cfg,
		log:       logging.Scope("provider"),
		resolvers: make(map[string]resolver.Resolver),
	}
}

// Register adds a resolver under a name or identifier and returns the
// normalized key.
func (p *CustomProvider) Register(nameOrIdentifier string, r resolver.Resolver) (string, error) {
	if err := registry.ValidateNameOrIdentifier(nameOrIdentifier); err != nil {
		return "", err
	}
	key := p.cfg.Normalize(nameOrIdentifier)

	if p.Has(key) {
		return "", &registry.RegistrationConflict{Key: key}
	}
	if r == nil {
		return "", &registry.ValidationError{Reason: fmt.Sprintf("The resolver '%s' cannot be nil.", key)}
	}

	p.resolvers[key] = r
	p.log.Debug("registered resolver", "key", key)
	return key, nil
}

// Value registers a constant under a name or identifier.
func (p *CustomProvider) Value(nameOrIdentifier string, value any) (string, error) {
	return p.Register(nameOrIdentifier, resolver.Constant(value))
}

// Factory registers a producer invoked on every resolution.
func (p *CustomProvider) Factory(nameOrIdentifier string, produce resolver.Producer) (string, error) {
	return p.Register(nameOrIdentifier, resolver.NewValue(produce))
}

// Has reports whether a resolver is registered for the key.
func (p *CustomProvider) Has(nameOrIdentifier string) bool {
	_, ok := p.Resolve(nameOrIdentifier)
	return ok
}

// Resolve returns the resolver registered for the key.
func (p *CustomProvider) Resolve(nameOrIdentifier string) (resolver.Resolver, bool) {
	if p == nil || !registry.IsContentful(nameOrIdentifier) {
		return nil, false
	}
	r, ok := p.resolvers[p.cfg.Normalize(nameOrIdentifier)]
	return r, ok
}
