// Package metadata holds the per-injectable lifecycle traits that the
// container consults while resolving: singleton, discardable, eager fields
// and the initializer method.
package metadata

import (
	"fmt"
	"slices"

	"github.com/km-arc/go-odin/framework/logging"
	"github.com/km-arc/go-odin/framework/registry"
)

// Traits describes how instances of one injectable are managed.
type Traits struct {
	Singleton   bool
	Discardable bool

	// Eagers are the injected field names forced right after construction.
	Eagers []string

	// Initializer is the method invoked once after the eager fields,
	// empty for none.
	Initializer string
}

// Table is the side-table of traits keyed by injectable token.
// The zero value is not usable; create one with New.
type Table struct {
	log    *logging.Logger
	traits map[*registry.Injectable]*Traits
}

// New creates an empty table.
func New() *Table {
	return &Table{
		log:    logging.Scope("metadata"),
		traits: make(map[*registry.Injectable]*Traits),
	}
}

func (t *Table) entry(injectable *registry.Injectable) *Traits {
	tr, ok := t.traits[injectable]
	if !ok {
		tr = &Traits{}
		t.traits[injectable] = tr
	}
	return tr
}

// Get returns a copy of the traits recorded for the injectable.
func (t *Table) Get(injectable *registry.Injectable) Traits {
	tr, ok := t.traits[injectable]
	if !ok {
		return Traits{}
	}
	out := *tr
	out.Eagers = slices.Clone(tr.Eagers)
	return out
}

// Validate reports whether Apply would accept traits, without mutating
// anything.
func (t *Table) Validate(injectable *registry.Injectable, traits Traits) error {
	if traits.Initializer == "" {
		return nil
	}
	return t.checkInitializer(injectable, traits.Initializer)
}

// Apply merges traits into the table. Flags are only switched on, eager
// fields are appended and a second initializer is an error. Use Forget to
// start over.
func (t *Table) Apply(injectable *registry.Injectable, traits Traits) error {
	if err := t.Validate(injectable, traits); err != nil {
		return err
	}
	if traits.Initializer != "" {
		if err := t.SetInitializer(injectable, traits.Initializer); err != nil {
			return err
		}
	}
	if traits.Singleton {
		t.SetSingleton(injectable, true)
	}
	if traits.Discardable {
		t.SetDiscardable(injectable, true)
	}
	for _, field := range traits.Eagers {
		t.SetEager(injectable, field)
	}
	return nil
}

// Forget drops every trait of the injectable. The next Apply starts from
// scratch.
func (t *Table) Forget(injectable *registry.Injectable) {
	delete(t.traits, injectable)
}

// IsSingleton reports whether one instance is cached per container.
func (t *Table) IsSingleton(injectable *registry.Injectable) bool {
	tr, ok := t.traits[injectable]
	return ok && tr.Singleton
}

// SetSingleton switches the singleton flag.
func (t *Table) SetSingleton(injectable *registry.Injectable, singleton bool) {
	t.entry(injectable).Singleton = singleton
}

// IsDiscardable reports whether the cached instance may be dropped with
// Container.Discard. Only meaningful together with IsSingleton.
func (t *Table) IsDiscardable(injectable *registry.Injectable) bool {
	tr, ok := t.traits[injectable]
	return ok && tr.Discardable
}

// SetDiscardable switches the discardable flag.
func (t *Table) SetDiscardable(injectable *registry.Injectable, discardable bool) {
	t.entry(injectable).Discardable = discardable
}

// Eagers returns the eager field names in declaration order.
func (t *Table) Eagers(injectable *registry.Injectable) []string {
	tr, ok := t.traits[injectable]
	if !ok {
		return nil
	}
	return slices.Clone(tr.Eagers)
}

// SetEager adds an eager field. Adding the same field twice is a no-op.
func (t *Table) SetEager(injectable *registry.Injectable, field string) {
	tr := t.entry(injectable)
	if !slices.Contains(tr.Eagers, field) {
		tr.Eagers = append(tr.Eagers, field)
	}
}

// Initializer returns the initializer method name, empty for none.
func (t *Table) Initializer(injectable *registry.Injectable) string {
	if tr, ok := t.traits[injectable]; ok {
		return tr.Initializer
	}
	return ""
}

// HasInitializer reports whether an initializer method is recorded.
func (t *Table) HasInitializer(injectable *registry.Injectable) bool {
	return registry.IsContentful(t.Initializer(injectable))
}

// SetInitializer records the initializer method. An injectable has at most
// one initializer; setting the same method again is a no-op.
func (t *Table) SetInitializer(injectable *registry.Injectable, method string) error {
	if err := t.checkInitializer(injectable, method); err != nil {
		return err
	}
	if t.Initializer(injectable) == method {
		return nil
	}
	t.entry(injectable).Initializer = method
	t.log.Debug("initializer set", "injectable", injectable.Name(), "method", method)
	return nil
}

func (t *Table) checkInitializer(injectable *registry.Injectable, method string) error {
	if !registry.IsContentful(method) {
		return &registry.ValidationError{Reason: "The initializer method name cannot be blank."}
	}
	current := t.Initializer(injectable)
	if current != method && registry.IsContentful(current) {
		return &registry.ValidationError{Reason: fmt.Sprintf(
			"The injectable '%s' already has an initializer named '%s'.", injectable.Name(), current)}
	}
	return nil
}
