package bundle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-odin/framework/bundle"
	"github.com/km-arc/go-odin/framework/config"
	"github.com/km-arc/go-odin/framework/registry"
)

const customIdentifier = "CustomIdentifier"

type Fixture struct{ opts registry.Options }
type AnotherFixture struct{}

var (
	fixture = registry.Define(func(opts registry.Options) (*Fixture, error) {
		return &Fixture{opts: opts}, nil
	})
	anotherFixture = registry.Of(func() *AnotherFixture { return &AnotherFixture{} })
)

// store is the surface Bundle shares with Registry.
type store interface {
	Register(*registry.Injectable, registry.Options) (string, error)
	Deregister(*registry.Injectable) bool
	Has(string) bool
	Get(string) (*registry.Descriptor, bool)
}

func mustBundle(t *testing.T, cfg *config.Configuration, domain string) *bundle.Bundle {
	t.Helper()
	b, err := bundle.New(cfg, domain)
	require.NoError(t, err)
	return b
}

func family(t *testing.T) (parent, child *bundle.Bundle) {
	t.Helper()
	parent = mustBundle(t, config.New(), "parent")
	child, err := parent.Child("child")
	require.NoError(t, err)
	return parent, child
}

// ── Single level (Bundle and Registry behave alike) ───────────────────────────

func TestSingleLevel(t *testing.T) {
	stores := map[string]func(t *testing.T) store{
		"Bundle":   func(t *testing.T) store { return mustBundle(t, config.New(), "store") },
		"Registry": func(*testing.T) store { return registry.New(config.New()) },
	}

	for name, create := range stores {
		t.Run(name, func(t *testing.T) {
			t.Run("register on its own", func(t *testing.T) {
				s := create(t)
				_, err := s.Register(fixture, nil)
				require.NoError(t, err)
				assert.True(t, s.Has("Fixture"))
				assert.False(t, s.Has("AnotherFixture"))
			})

			t.Run("register again after deregister", func(t *testing.T) {
				s := create(t)
				_, err := s.Register(fixture, nil)
				require.NoError(t, err)
				assert.True(t, s.Deregister(fixture))
				assert.False(t, s.Has("Fixture"))

				got, err := s.Register(fixture, nil)
				require.NoError(t, err)
				assert.Equal(t, "fixture", got)
			})

			t.Run("deregister with a custom identifier", func(t *testing.T) {
				s := create(t)
				_, err := s.Register(fixture, registry.Options{"name": customIdentifier})
				require.NoError(t, err)

				assert.True(t, s.Deregister(fixture))
				assert.False(t, s.Deregister(anotherFixture))
				assert.False(t, s.Has("Fixture"))
				assert.False(t, s.Has(customIdentifier))
			})

			t.Run("same descriptor by name and identifier", func(t *testing.T) {
				s := create(t)
				name, err := s.Register(fixture, registry.Options{"name": customIdentifier})
				require.NoError(t, err)

				byName, ok := s.Get(name)
				require.True(t, ok)
				byIdentifier, ok := s.Get(customIdentifier)
				require.True(t, ok)
				assert.Same(t, byName, byIdentifier)
			})
		})
	}
}

// ── Multi level ───────────────────────────────────────────────────────────────

func TestBundle_Related(t *testing.T) {
	parent, child := family(t)

	assert.True(t, parent.HasChild(child.Domain()))
	assert.Same(t, parent, child.Parent())
	assert.Nil(t, parent.Parent())
	assert.False(t, parent.HasChild(""))
	assert.Equal(t, "parent/child", child.Path())
}

func TestBundle_Child_Idempotent(t *testing.T) {
	parent, child := family(t)

	again, err := parent.Child("CHILD")
	require.NoError(t, err)
	assert.Same(t, child, again)
	assert.Len(t, parent.Children(), 1)
}

func TestBundle_Child_Invalid(t *testing.T) {
	parent, _ := family(t)

	for _, domain := range []string{"", " ", "a/b", "a b"} {
		_, err := parent.Child(domain)
		assert.ErrorIs(t, err, registry.ErrInvalid, domain)
	}

	_, err := bundle.New(nil, "a/b")
	assert.ErrorIs(t, err, registry.ErrInvalid)
}

func TestBundle_VisibleFromChildWhenRegisteredByParent(t *testing.T) {
	parent, child := family(t)

	_, err := parent.Register(fixture, nil)
	require.NoError(t, err)

	assert.True(t, parent.Has("Fixture"))
	assert.True(t, child.Has("Fixture"))
}

func TestBundle_HiddenFromParentWhenRegisteredByChild(t *testing.T) {
	parent, child := family(t)

	_, err := child.Register(fixture, nil)
	require.NoError(t, err)

	assert.False(t, parent.Has("Fixture"))
	assert.True(t, child.Has("Fixture"))
}

func TestBundle_OwnsOnlyOwnRegistrations(t *testing.T) {
	parent, child := family(t)

	_, err := parent.Register(fixture, nil)
	require.NoError(t, err)

	assert.True(t, parent.Owns(fixture))
	assert.False(t, child.Owns(fixture))

	parent.Deregister(fixture)
	assert.False(t, parent.Owns(fixture))
}

func TestBundle_ParentDeregisterFreesChild(t *testing.T) {
	parent, child := family(t)

	_, err := parent.Register(fixture, nil)
	require.NoError(t, err)
	require.True(t, child.Has("Fixture"))

	assert.True(t, parent.Deregister(fixture))
	assert.False(t, parent.Has("Fixture"))
	assert.False(t, child.Has("Fixture"))
}

func TestBundle_ChildDeregisterDoesNotTouchParent(t *testing.T) {
	parent, child := family(t)

	_, err := parent.Register(fixture, nil)
	require.NoError(t, err)

	assert.False(t, child.Deregister(fixture))
	assert.True(t, child.Has("Fixture"))
}

func TestBundle_ChildReclaimsNameFreedByParent(t *testing.T) {
	parent, child := family(t)

	_, err := parent.Register(fixture, registry.Options{"name": customIdentifier})
	require.NoError(t, err)
	require.True(t, parent.Deregister(fixture))

	name, err := child.Register(fixture, registry.Options{"name": customIdentifier})
	require.NoError(t, err)
	assert.Equal(t, "fixture", name)
	assert.False(t, parent.Has("Fixture"))
	assert.True(t, child.Has("Fixture"))
}

func TestBundle_ChildReclaimsNameAsIdentifier(t *testing.T) {
	parent, child := family(t)

	_, err := parent.Register(fixture, nil)
	require.NoError(t, err)
	require.True(t, parent.Deregister(fixture))

	name, err := child.Register(anotherFixture, registry.Options{"name": "Fixture"})
	require.NoError(t, err)
	assert.Equal(t, "anotherfixture", name)

	assert.True(t, child.Has("Fixture"))
	assert.True(t, child.Has("AnotherFixture"))
	assert.False(t, parent.Has("Fixture"))
	assert.False(t, parent.Has("AnotherFixture"))
}

func TestBundle_NoShadowing(t *testing.T) {
	tests := []struct {
		name        string
		parentInj   *registry.Injectable
		parentOpts  registry.Options
		childInj    *registry.Injectable
		childOpts   registry.Options
		conflictKey string
	}{
		{"same injectable", fixture, nil, fixture, nil, "fixture"},
		{"parent has identifier", fixture, registry.Options{"name": customIdentifier}, fixture, nil, "fixture"},
		{"child adds identifier", fixture, nil, fixture, registry.Options{"name": customIdentifier}, "fixture"},
		{"same identifier", fixture, registry.Options{"name": customIdentifier}, anotherFixture, registry.Options{"name": customIdentifier}, "customidentifier"},
		{"identifier equals parent name", fixture, nil, anotherFixture, registry.Options{"name": "Fixture"}, "fixture"},
		{"name equals parent identifier", fixture, registry.Options{"name": "AnotherFixture"}, anotherFixture, nil, "anotherfixture"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent, child := family(t)

			_, err := parent.Register(tt.parentInj, tt.parentOpts)
			require.NoError(t, err)

			_, err = child.Register(tt.childInj, tt.childOpts)
			var conflict *registry.RegistrationConflict
			require.ErrorAs(t, err, &conflict)
			assert.Equal(t, tt.conflictKey, conflict.Key)
			assert.Equal(t, "[odin]: There already is an injectable '"+tt.conflictKey+"' registered.", err.Error())
		})
	}
}

func TestBundle_ValidateRegistration_ChecksDeepAncestors(t *testing.T) {
	root := mustBundle(t, config.New(), "root")
	mid, err := root.Child("mid")
	require.NoError(t, err)
	leaf, err := mid.Child("leaf")
	require.NoError(t, err)

	_, err = root.Register(fixture, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, leaf.ValidateRegistration(fixture, nil), registry.ErrRegistrationConflict)
	assert.Empty(t, leaf.Descriptors())
}

// ── Case folding ──────────────────────────────────────────────────────────────

func TestBundle_CaseFolding(t *testing.T) {
	loose := mustBundle(t, config.New(), "Loose")
	assert.Equal(t, "loose", loose.Domain())
	_, err := loose.Register(fixture, nil)
	require.NoError(t, err)
	assert.True(t, loose.Has("FIXTURE"))

	strictCfg := config.New()
	strictCfg.SetStrict(true)
	strict := mustBundle(t, strictCfg, "Strict")
	assert.Equal(t, "Strict", strict.Domain())

	child, err := strict.Child("Child")
	require.NoError(t, err)
	assert.True(t, strict.HasChild("Child"))
	assert.False(t, strict.HasChild("child"))

	_, err = child.Register(fixture, nil)
	require.NoError(t, err)
	assert.True(t, child.Has("Fixture"))
	assert.False(t, child.Has("fixture"))
}

// ── Instantiate ───────────────────────────────────────────────────────────────

func TestBundle_Instantiate_ForwardsOptions(t *testing.T) {
	tests := []struct {
		name     string
		register registry.Options
		want     registry.Options
	}{
		{"nil to nil", nil, nil},
		{"empty to nil", registry.Options{}, nil},
		{"ignoring name", registry.Options{"name": "custom", "something": 123}, registry.Options{"something": 123}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBundle(t, config.New(), "domain")
			_, err := b.Register(fixture, tt.register)
			require.NoError(t, err)

			d, ok := b.Get("Fixture")
			require.True(t, ok)

			instance, err := b.Instantiate(d)
			require.NoError(t, err)
			require.IsType(t, &Fixture{}, instance)
			assert.Equal(t, tt.want, instance.(*Fixture).opts)
		})
	}
}

func TestBundle_Instantiate_CopiesOptions(t *testing.T) {
	b := mustBundle(t, config.New(), "domain")
	_, err := b.Register(fixture, registry.Options{"k": "v"})
	require.NoError(t, err)
	d, _ := b.Get("Fixture")

	first, err := b.Instantiate(d)
	require.NoError(t, err)
	first.(*Fixture).opts["k"] = "mutated"

	second, err := b.Instantiate(d)
	require.NoError(t, err)
	assert.Equal(t, "v", second.(*Fixture).opts["k"])
}

// ── Scenario ──────────────────────────────────────────────────────────────────

func TestScenario_ParentChildVisibility(t *testing.T) {
	parent := mustBundle(t, config.New(), "parent")
	child, err := parent.Child("child")
	require.NoError(t, err)

	_, err = parent.Register(fixture, nil)
	require.NoError(t, err)
	assert.True(t, child.Has("Fixture"))

	parent.Deregister(fixture)
	assert.False(t, child.Has("Fixture"))
}
