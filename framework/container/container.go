package container

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/google/uuid"

	"github.com/km-arc/go-odin/framework/bundle"
	"github.com/km-arc/go-odin/framework/metadata"
	"github.com/km-arc/go-odin/framework/provider"
	"github.com/km-arc/go-odin/framework/registry"
	"github.com/km-arc/go-odin/framework/resolver"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container builds and caches instances of the injectables visible from one
// bundle. It is owned by a single caller and is not synchronized.
type Container struct {
	id       uuid.UUID
	bundle   *bundle.Bundle
	provider *provider.CustomProvider
	secrets  *metadata.Table

	// name → cached singleton instance
	instances map[string]any

	// name → resolver handed out for a singleton
	resolvers map[string]resolver.Resolver
}

// New creates a container over b. A nil provider is replaced by an empty
// one, a nil table means every injectable is transient.
func New(b *bundle.Bundle, p *provider.CustomProvider, secrets *metadata.Table) *Container {
	if p == nil {
		p = provider.New(b.Config())
	}
	if secrets == nil {
		secrets = metadata.New()
	}
	c := &Container{
		id:        uuid.New(),
		bundle:    b,
		provider:  p,
		secrets:   secrets,
		instances: make(map[string]any),
		resolvers: make(map[string]resolver.Resolver),
	}
	scope.Debug("created container", "id", c.id, "bundle", b.Path())
	return c
}

// ID identifies the container in log output.
func (c *Container) ID() uuid.UUID { return c.id }

// Bundle returns the bundle the container resolves from.
func (c *Container) Bundle() *bundle.Bundle { return c.bundle }

// ── Queries ───────────────────────────────────────────────────────────────────

// Has reports whether an instance is currently cached for the injectable
// behind a name or identifier.
func (c *Container) Has(nameOrIdentifier string) bool {
	d, ok := c.bundle.Get(nameOrIdentifier)
	if !ok {
		return false
	}
	_, cached := c.instances[d.Name]
	return cached
}

// Get returns the resolver already handed out for a singleton, if any.
func (c *Container) Get(nameOrIdentifier string) (resolver.Resolver, bool) {
	d, ok := c.bundle.Get(nameOrIdentifier)
	if !ok {
		return nil, false
	}
	r, ok := c.resolvers[d.Name]
	return r, ok
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Provide returns a resolver for a name or identifier.
//
// Cached singletons are served first, then injectables visible from the
// bundle, then the custom provider. A nil resolver with a nil error means
// nothing matched.
func (c *Container) Provide(nameOrIdentifier string) (resolver.Resolver, error) {
	if c.Has(nameOrIdentifier) {
		r, _ := c.Get(nameOrIdentifier)
		return r, nil
	}

	if d, ok := c.bundle.Get(nameOrIdentifier); ok {
		return c.resolve(d)
	}

	if r, ok := c.provider.Resolve(nameOrIdentifier); ok {
		return r, nil
	}
	return nil, nil
}

// ProvideValue is Provide followed by Get on the resolver.
func (c *Container) ProvideValue(nameOrIdentifier string) (any, error) {
	r, err := c.Provide(nameOrIdentifier)
	if err != nil || r == nil {
		return nil, err
	}
	return r.Get()
}

// Discard drops the cached instance of a discardable injectable. The
// resolver is kept, so anything holding it rebuilds on the next read.
func (c *Container) Discard(nameOrIdentifier string) {
	d, ok := c.bundle.Get(nameOrIdentifier)
	if !ok || !c.secrets.IsDiscardable(d.Injectable) {
		return
	}
	delete(c.instances, d.Name)
	scope.Debug("discarded instance", "id", c.id, "name", d.Name)
}

// resolve builds a new instance of the descriptor's injectable, wires it and
// returns the resolver for it.
func (c *Container) resolve(d *registry.Descriptor) (resolver.Resolver, error) {
	injectable, name := d.Injectable, d.Name
	singleton := c.secrets.IsSingleton(injectable)

	instance, err := c.bundle.Instantiate(d)
	if err != nil {
		return nil, &ResolutionError{Name: name, Err: err}
	}

	r, held := c.resolvers[name]
	if !held {
		if singleton && c.secrets.IsDiscardable(injectable) {
			r = resolver.NewValue(func() (any, error) {
				if _, cached := c.instances[name]; !cached {
					if _, err := c.resolve(d); err != nil {
						return nil, err
					}
				}
				return c.instances[name], nil
			})
		} else {
			r = resolver.NewFinal(func() (any, error) { return instance, nil })
		}
	}

	if singleton {
		c.instances[name] = instance
		c.resolvers[name] = r
	}
	scope.Debug("resolved instance", "id", c.id, "name", name, "singleton", singleton)

	owner := stash(instance, c)

	err = c.invokeEagers(d, owner)
	if err == nil {
		err = c.invokeInitializer(d, instance)
	}
	if err != nil {
		if singleton {
			c.evict(name, !held)
		}
		return nil, &ResolutionError{Name: name, Err: err}
	}
	return r, nil
}

// evict drops a singleton whose wiring failed, so the next Provide builds it
// again instead of handing out the half-wired instance. A resolver someone
// already held is kept.
func (c *Container) evict(name string, created bool) {
	delete(c.instances, name)
	if created {
		delete(c.resolvers, name)
	}
	scope.Debug("evicted instance", "id", c.id, "name", name)
}

// invokeEagers forces the eager fields recorded in the metadata table and
// those declared eager on the instance itself.
func (c *Container) invokeEagers(d *registry.Descriptor, owner *Injected) error {
	eagers := c.secrets.Eagers(d.Injectable)
	if owner != nil {
		for _, field := range owner.eagers {
			if !slices.Contains(eagers, field) {
				eagers = append(eagers, field)
			}
		}
	}
	if len(eagers) == 0 {
		return nil
	}
	if owner == nil {
		return fmt.Errorf("eager fields %v declared on '%s' but it does not embed container.Injected", eagers, d.Injectable.Name())
	}

	for _, field := range eagers {
		scope.Debug("invoking eager", "name", d.Name, "field", field)
		if err := owner.force(field); err != nil {
			return err
		}
	}
	return nil
}

// invokeInitializer calls the initializer method by name. It may be declared
// as func() or func() error.
func (c *Container) invokeInitializer(d *registry.Descriptor, instance any) error {
	method := c.secrets.Initializer(d.Injectable)
	if method == "" {
		return nil
	}
	scope.Debug("invoking initializer", "name", d.Name, "method", method)

	if instance == nil {
		return fmt.Errorf("initializer '%s' cannot run on a nil '%s'", method, d.Injectable.Name())
	}
	m := reflect.ValueOf(instance).MethodByName(method)
	if !m.IsValid() {
		return fmt.Errorf("initializer '%s' is not a method of '%s'", method, d.Injectable.Name())
	}

	switch initialize := m.Interface().(type) {
	case func():
		initialize()
		return nil
	case func() error:
		return initialize()
	default:
		return fmt.Errorf("initializer '%s' of '%s' must be func() or func() error, got %s", method, d.Injectable.Name(), m.Type())
	}
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve provides the value for a name or identifier and asserts it to T.
// Nothing registered yields the zero T.
//
//	mailer, err := container.Resolve[*Mailer](c, "Mailer")
func Resolve[T any](c *Container, nameOrIdentifier string) (T, error) {
	value, err := c.ProvideValue(nameOrIdentifier)
	if err != nil {
		var zero T
		return zero, err
	}
	return resolver.As[T](value)
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](c *Container, nameOrIdentifier string) T {
	typed, err := Resolve[T](c, nameOrIdentifier)
	if err != nil {
		panic(err)
	}
	return typed
}
