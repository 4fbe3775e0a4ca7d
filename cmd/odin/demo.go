package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/km-arc/go-odin/framework/app"
	"github.com/km-arc/go-odin/framework/container"
	"github.com/km-arc/go-odin/framework/resolver"
)

func newDemoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Resolve the demo graph and show singleton, circular and discard behaviour",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o, err := opts.bootstrap(cmd)
			if err != nil {
				return err
			}
			return runDemo(cmd, o)
		},
	}
}

func runDemo(cmd *cobra.Command, o *app.Odin) error {
	out := cmd.OutOrStdout()

	p := o.NewProvider()
	ticks := 0
	if _, err := p.Factory("Clock", func() (any, error) {
		ticks++
		return ticks, nil
	}); err != nil {
		return err
	}

	c, err := o.Container("shop/web", p)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, TitleStyle.Render("container"), SubtitleStyle.Render(c.ID().String()))

	users, err := container.Resolve[*Users](c, "Customers")
	if err != nil {
		return err
	}
	orders, err := users.Orders.Get()
	if err != nil {
		return err
	}
	back, err := orders.Users.Get()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s users.Orders.Users is users: %t, initialized: %t\n",
		SuccessStyle.Render("circular"), back == users, users.ready)

	r, err := c.Provide("Session")
	if err != nil {
		return err
	}
	first, err := resolver.Typed[*Session](r)
	if err != nil {
		return err
	}
	c.Discard("Session")
	again, err := c.Provide("Session")
	if err != nil {
		return err
	}
	second, err := resolver.Typed[*Session](again)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s same resolver: %t, started at tick %d then %d\n",
		SuccessStyle.Render("discard"), r == again, first.Started, second.Started)

	sessionUsers, err := second.Users.Get()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s session sees shop users: %t\n",
		SuccessStyle.Render("visibility"), sessionUsers == users)
	return nil
}
