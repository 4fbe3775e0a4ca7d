package main

import (
	"github.com/km-arc/go-odin/framework/app"
	"github.com/km-arc/go-odin/framework/container"
	"github.com/km-arc/go-odin/framework/registry"
)

// ── shop: two singletons depending on each other ──────────────────────────────

type Users struct {
	container.Injected
	Orders *container.Ref[*Orders]

	ready bool
}

// Boot runs once per instance, after Orders was forced.
func (u *Users) Boot() error {
	_, err := u.Orders.Get()
	u.ready = err == nil
	return err
}

type Orders struct {
	container.Injected
	Users *container.Ref[*Users]
}

var (
	UsersInjectable = registry.Of(func() *Users {
		u := &Users{}
		u.Orders = container.Inject[*Orders](&u.Injected, "Orders")
		return u
	})

	OrdersInjectable = registry.Of(func() *Orders {
		o := &Orders{}
		o.Users = container.Inject[*Users](&o.Injected, "Users", container.Named("Customers"))
		return o
	})
)

type shopModule struct{ app.BaseModule }

func (m *shopModule) Register(o *app.Odin) error {
	if _, err := o.Register(UsersInjectable, app.Registration{
		Domain:      "shop",
		Name:        "Customers",
		Singleton:   true,
		Eagers:      []string{"Orders"},
		Initializer: "Boot",
	}); err != nil {
		return err
	}
	_, err := o.Register(OrdersInjectable, app.Registration{Domain: "shop", Singleton: true})
	return err
}

// ── shop/web: a discardable session reading a provided clock ──────────────────

type Session struct {
	container.Injected
	Users *container.Ref[*Users]
	Clock *container.Ref[int]

	Started int
}

func (s *Session) Start() error {
	tick, err := s.Clock.Get()
	s.Started = tick
	return err
}

var SessionInjectable = registry.Of(func() *Session {
	s := &Session{}
	s.Users = container.Inject[*Users](&s.Injected, "Users")
	s.Clock = container.Inject[int](&s.Injected, "Clock")
	return s
})

type sessionModule struct{ app.BaseModule }

func (m *sessionModule) Register(o *app.Odin) error {
	_, err := o.Register(SessionInjectable, app.Registration{
		Domain:      "shop/web",
		Singleton:   true,
		Discardable: true,
		Initializer: "Start",
	})
	return err
}
