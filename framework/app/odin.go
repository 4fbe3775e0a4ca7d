// Package app provides the odin root: the bundle tree, the metadata table and
// the container factory, plus the explicit registration calls and modules
// used to populate them at bootstrap.
package app

import (
	"maps"
	"strings"

	"github.com/km-arc/go-odin/framework/bundle"
	"github.com/km-arc/go-odin/framework/config"
	"github.com/km-arc/go-odin/framework/container"
	"github.com/km-arc/go-odin/framework/logging"
	"github.com/km-arc/go-odin/framework/metadata"
	"github.com/km-arc/go-odin/framework/provider"
	"github.com/km-arc/go-odin/framework/registry"
)

// Registration describes how an injectable is registered and managed.
type Registration struct {
	// Domain is the '/'-separated bundle path below the root; empty for the
	// root itself.
	Domain string

	// Name is a custom identifier the injectable can also be resolved by.
	Name string

	// Options are handed to the builder on every instantiation.
	Options registry.Options

	Singleton   bool
	Discardable bool

	// Eagers are injected field names forced right after construction.
	Eagers []string

	// Initializer is a method name invoked once per instance, after the
	// eager fields.
	Initializer string
}

// Odin is the root every bundle and container descends from.
// Create one at bootstrap and pass it by reference.
type Odin struct {
	settings *config.Settings
	cfg      *config.Configuration
	secrets  *metadata.Table
	root     *bundle.Bundle
	log      *logging.Logger

	Modules *Modules
}

// New creates the root from settings; nil means config.Defaults().
//
//	o, err := app.New(config.Load())
func New(settings *config.Settings) (*Odin, error) {
	if settings == nil {
		settings = config.Defaults()
	}
	copied := *settings
	settings = &copied
	if settings.Root == "" {
		settings.Root = config.DefaultRoot
	}
	if settings.Debug {
		logging.SetDebug(true)
	}

	cfg := config.New()
	cfg.SetStrict(settings.Strict)

	root, err := bundle.New(cfg, settings.Root)
	if err != nil {
		return nil, err
	}

	o := &Odin{
		settings: settings,
		cfg:      cfg,
		secrets:  metadata.New(),
		root:     root,
		log:      logging.Root(),
	}
	o.Modules = newModules(o)
	return o, nil
}

// Configure sets strict mode once, before anything has been registered.
func (o *Odin) Configure(strict bool) error {
	return o.cfg.Initialize(strict)
}

// Register registers an injectable in the bundle at reg.Domain, creating the
// bundle path as needed, and records its lifecycle traits. It returns the
// normalized name. A rejected registration creates nothing.
func (o *Odin) Register(injectable *registry.Injectable, reg Registration) (string, error) {
	if reg.Domain != "" {
		if err := registry.ValidateDomain(reg.Domain, true); err != nil {
			return "", err
		}
	}

	options := reg.Options
	if reg.Name != "" {
		options = maps.Clone(options)
		if options == nil {
			options = registry.Options{}
		}
		options[registry.NameOption] = reg.Name
	}

	// missing levels are empty, so the deepest existing bundle sees every
	// possible conflict
	existing, _ := o.walk(reg.Domain)
	if err := existing.ValidateRegistration(injectable, options); err != nil {
		return "", err
	}
	traits := metadata.Traits{
		Singleton:   reg.Singleton,
		Discardable: reg.Discardable,
		Eagers:      reg.Eagers,
		Initializer: reg.Initializer,
	}
	if err := o.secrets.Validate(injectable, traits); err != nil {
		return "", err
	}

	b, err := o.Bundle(reg.Domain)
	if err != nil {
		return "", err
	}
	if err := o.secrets.Apply(injectable, traits); err != nil {
		return "", err
	}
	return b.Register(injectable, options)
}

// Deregister removes an injectable from the bundle at domain. It returns
// false when the bundle does not exist or does not own the injectable.
// Once no bundle holds the injectable its lifecycle traits are dropped.
func (o *Odin) Deregister(injectable *registry.Injectable, domain string) (bool, error) {
	if domain != "" {
		if err := registry.ValidateDomain(domain, true); err != nil {
			return false, err
		}
	}
	b, ok := o.Lookup(domain)
	if !ok || !b.Deregister(injectable) {
		return false, nil
	}
	if !holds(o.root, injectable) {
		o.secrets.Forget(injectable)
		o.log.Debug("forgot traits", "injectable", injectable.Name())
	}
	return true, nil
}

func holds(b *bundle.Bundle, injectable *registry.Injectable) bool {
	if b.Owns(injectable) {
		return true
	}
	for _, child := range b.Children() {
		if holds(child, injectable) {
			return true
		}
	}
	return false
}

// Bundle returns the bundle at a '/'-separated path below the root, creating
// missing levels. An empty path is the root.
func (o *Odin) Bundle(path string) (*bundle.Bundle, error) {
	o.cfg.SetInitialized(true)
	if path == "" {
		return o.root, nil
	}
	if err := registry.ValidateDomain(path, true); err != nil {
		return nil, err
	}

	b := o.root
	for _, chunk := range strings.Split(path, "/") {
		child, err := b.Child(chunk)
		if err != nil {
			return nil, err
		}
		b = child
	}
	return b, nil
}

// Lookup returns the bundle at path without creating anything.
func (o *Odin) Lookup(path string) (*bundle.Bundle, bool) {
	if path == "" {
		return o.root, true
	}
	if registry.ValidateDomain(path, true) != nil {
		return nil, false
	}
	b, complete := o.walk(path)
	if !complete {
		return nil, false
	}
	return b, true
}

// walk follows path from the root as far as bundles exist and returns the
// deepest one reached. The path must already be valid.
func (o *Odin) walk(path string) (*bundle.Bundle, bool) {
	b := o.root
	if path == "" {
		return b, true
	}
	for _, chunk := range strings.Split(path, "/") {
		if !b.HasChild(chunk) {
			return b, false
		}
		b, _ = b.Child(chunk)
	}
	return b, true
}

// Container creates a container over the bundle at path. A nil provider is
// replaced by an empty one.
//
// Returns a *LookupFailure when no bundle exists at path.
func (o *Odin) Container(path string, p *provider.CustomProvider) (*container.Container, error) {
	if path != "" {
		if err := registry.ValidateDomain(path, true); err != nil {
			return nil, err
		}
	}
	b, ok := o.Lookup(path)
	if !ok {
		return nil, &LookupFailure{Domain: path}
	}
	o.cfg.SetInitialized(true)
	if p == nil {
		p = o.NewProvider()
	}
	return container.New(b, p, o.secrets), nil
}

// NewProvider creates an empty custom provider sharing the configuration.
func (o *Odin) NewProvider() *provider.CustomProvider {
	return provider.New(o.cfg)
}

// Root returns the root bundle.
func (o *Odin) Root() *bundle.Bundle { return o.root }

// Secrets returns the metadata table of lifecycle traits.
func (o *Odin) Secrets() *metadata.Table { return o.secrets }

// Config returns the shared configuration.
func (o *Odin) Config() *config.Configuration { return o.cfg }

// Settings returns the settings the root was created from.
func (o *Odin) Settings() *config.Settings { return o.settings }

// Boot boots every registered module.
func (o *Odin) Boot() error { return o.Modules.Boot() }
