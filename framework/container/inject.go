package container

import (
	"fmt"

	"github.com/km-arc/go-odin/framework/logging"
	"github.com/km-arc/go-odin/framework/resolver"
)

var injectLog = logging.Scope("inject")

// ── Injected ──────────────────────────────────────────────────────────────────

// Injected is embedded by injectable structs that declare Ref fields. The
// container that builds the instance stashes itself here before forcing
// eager fields and running the initializer.
type Injected struct {
	container *Container

	// field name → cell, for eager forcing
	fields map[string]forcer
	eagers []string
}

// forcer is implemented by every Ref instantiation.
type forcer interface {
	force() error
}

// aware is satisfied by any pointer to a struct embedding Injected.
type aware interface {
	injected() *Injected
}

func (i *Injected) injected() *Injected { return i }

// Container returns the container that built the owner, nil when the owner
// was constructed by hand.
func (i *Injected) Container() *Container { return i.container }

func (i *Injected) track(field string, cell forcer, eager bool) {
	if i.fields == nil {
		i.fields = make(map[string]forcer)
	}
	i.fields[field] = cell
	if eager {
		i.eagers = append(i.eagers, field)
	}
}

func (i *Injected) force(field string) error {
	cell, ok := i.fields[field]
	if !ok {
		return fmt.Errorf("eager field '%s' is not injected", field)
	}
	return cell.force()
}

// stash hands the container to an instance embedding Injected and returns
// the embedded value, or nil for any other instance.
func stash(instance any, c *Container) *Injected {
	a, ok := instance.(aware)
	if !ok {
		return nil
	}
	owner := a.injected()
	if owner == nil {
		return nil
	}
	owner.container = c
	return owner
}

// ── Inject options ────────────────────────────────────────────────────────────

// InjectOption customizes a Ref.
type InjectOption func(*injectOptions)

type injectOptions struct {
	target   string
	optional bool
	eager    bool
}

// Named resolves the field from a name or identifier other than the field
// name.
//
//	o.Mailer = container.Inject[*Mailer](&o.Injected, "Mailer", container.Named("smtp"))
func Named(nameOrIdentifier string) InjectOption {
	return func(o *injectOptions) { o.target = nameOrIdentifier }
}

// Optional makes the field read as the zero value instead of failing when
// the owner was not built by a container.
func Optional() InjectOption {
	return func(o *injectOptions) { o.optional = true }
}

// Eager forces the field right after the owner is built, before its
// initializer runs.
func Eager() InjectOption {
	return func(o *injectOptions) { o.eager = true }
}

// ── Ref ───────────────────────────────────────────────────────────────────────

type refState int

const (
	unresolved refState = iota
	resolvedValue
	forwarding
)

// Ref is a lazily injected field. The first Get asks the owner's container
// for a resolver; a final value is then kept in the cell, any other resolver
// is kept and read on every later Get.
type Ref[T any] struct {
	owner    *Injected
	field    string
	target   string
	optional bool

	state   refState
	value   T
	forward resolver.Resolver
}

// Inject declares a lazy field on owner. The field name is used for eager
// forcing and, unless Named is given, as the name to resolve.
func Inject[T any](owner *Injected, field string, opts ...InjectOption) *Ref[T] {
	o := injectOptions{target: field}
	for _, opt := range opts {
		opt(&o)
	}

	ref := &Ref[T]{
		owner:    owner,
		field:    field,
		target:   o.target,
		optional: o.optional,
	}
	if owner != nil {
		owner.track(field, ref, o.eager)
	}
	return ref
}

// Get returns the injected value, resolving it on first use.
//
// When nothing provides the target, Get returns the zero T and stays
// unresolved, so a later registration is picked up.
func (r *Ref[T]) Get() (T, error) {
	var zero T

	switch r.state {
	case resolvedValue:
		return r.value, nil
	case forwarding:
		return resolver.Typed[T](r.forward)
	}

	var c *Container
	if r.owner != nil {
		c = r.owner.container
	}
	if c == nil {
		if r.optional {
			r.state = resolvedValue
			return r.value, nil
		}
		return zero, &MissingContainer{Field: r.field}
	}

	res, err := c.Provide(r.target)
	if err != nil {
		return zero, err
	}
	if res == nil {
		injectLog.Warn("nothing to inject", "field", r.field, "target", r.target)
		return zero, nil
	}

	value, err := resolver.Typed[T](res)
	if err != nil {
		return zero, err
	}

	if _, final := res.(*resolver.FinalValueResolver); final {
		r.value, r.state = value, resolvedValue
	} else {
		r.forward, r.state = res, forwarding
	}
	injectLog.Debug("injected field", "field", r.field, "target", r.target, "forwarding", r.state == forwarding)
	return value, nil
}

// MustGet is like Get but panics on error.
func (r *Ref[T]) MustGet() T {
	value, err := r.Get()
	if err != nil {
		panic(err)
	}
	return value
}

// Resolved reports whether the cell no longer consults the container.
func (r *Ref[T]) Resolved() bool { return r.state != unresolved }

func (r *Ref[T]) force() error {
	_, err := r.Get()
	return err
}
