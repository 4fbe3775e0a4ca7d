package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/km-arc/go-odin/framework/app"
	"github.com/km-arc/go-odin/framework/bundle"
	"github.com/km-arc/go-odin/framework/metadata"
	"github.com/km-arc/go-odin/framework/registry"
)

func newTreeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the bundle tree with every registered injectable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o, err := opts.bootstrap(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTree(o))
			return nil
		},
	}
}

func renderTree(o *app.Odin) string {
	return bundleTree(o.Root(), o.Secrets()).
		Enumerator(tree.RoundedEnumerator).
		RootStyle(TitleStyle).
		String()
}

func bundleTree(b *bundle.Bundle, secrets *metadata.Table) *tree.Tree {
	t := tree.Root(b.Domain() + "/")
	for _, d := range b.Descriptors() {
		t.Child(describe(d, secrets))
	}
	for _, child := range b.Children() {
		t.Child(bundleTree(child, secrets))
	}
	return t
}

func describe(d *registry.Descriptor, secrets *metadata.Table) string {
	label := NameStyle.Render(d.Name)
	if d.Identifier != "" {
		label += " as " + NameStyle.Render(d.Identifier)
	}

	traits := secrets.Get(d.Injectable)
	var flags []string
	if traits.Singleton {
		flags = append(flags, "singleton")
	}
	if traits.Discardable {
		flags = append(flags, "discardable")
	}
	if len(traits.Eagers) > 0 {
		flags = append(flags, "eager "+strings.Join(traits.Eagers, ","))
	}
	if traits.Initializer != "" {
		flags = append(flags, "init "+traits.Initializer)
	}
	if len(flags) > 0 {
		label += " " + SubtitleStyle.Render("["+strings.Join(flags, " ")+"]")
	}
	return label
}
