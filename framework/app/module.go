package app

import "fmt"

// ── Module interface ──────────────────────────────────────────────────────────

// Module groups the registrations of one feature.
//
// Register is called as soon as the module is added and should only register
// injectables. Boot runs after every module has been registered, so it may
// create containers and resolve anything.
//
//	type MailModule struct{ app.BaseModule }
//
//	func (m *MailModule) Register(o *app.Odin) error {
//	    _, err := o.Register(Mailer, app.Registration{Domain: "mail", Singleton: true})
//	    return err
//	}
type Module interface {
	Register(o *Odin) error
	Boot(o *Odin) error
}

// BaseModule is an embeddable no-op Boot.
type BaseModule struct{}

func (BaseModule) Boot(*Odin) error { return nil }

// ── Modules ───────────────────────────────────────────────────────────────────

// Modules registers and boots modules in order.
type Modules struct {
	odin       *Odin
	modules    []Module
	registered map[Module]bool
	booted     bool
}

func newModules(o *Odin) *Modules {
	return &Modules{
		odin:       o,
		registered: make(map[Module]bool),
	}
}

// Register adds a module and calls its Register method. Adding the same
// module twice is a no-op. Modules added after Boot are booted immediately.
func (m *Modules) Register(module Module) error {
	if m.registered[module] {
		return nil
	}
	if err := module.Register(m.odin); err != nil {
		return err
	}
	m.registered[module] = true
	m.modules = append(m.modules, module)
	m.odin.log.Debug("registered module", "module", fmt.Sprintf("%T", module))

	if m.booted {
		return module.Boot(m.odin)
	}
	return nil
}

// Boot calls Boot on every registered module, stopping at the first error.
// Later calls are no-ops.
func (m *Modules) Boot() error {
	if m.booted {
		return nil
	}
	m.booted = true
	for _, module := range m.modules {
		if err := module.Boot(m.odin); err != nil {
			return err
		}
	}
	return nil
}

// Booted reports whether Boot has been called.
func (m *Modules) Booted() bool { return m.booted }

// List returns the registered modules in registration order.
func (m *Modules) List() []Module { return m.modules }
