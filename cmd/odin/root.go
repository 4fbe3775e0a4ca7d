package main

import (
	"github.com/spf13/cobra"

	"github.com/km-arc/go-odin/framework/app"
	"github.com/km-arc/go-odin/framework/config"
	"github.com/km-arc/go-odin/framework/logging"
)

type rootOptions struct {
	envFile string
	strict  bool
	debug   bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "odin",
		Short: "Dependency-injection runtime demo",
		Long: TitleStyle.Render("odin") + SubtitleStyle.Render(" - dependency-injection runtime") + `

Registers a demo graph of injectables across nested bundles, then either
resolves it (demo) or prints the bundle tree (tree).

Settings come from the environment (ODIN_STRICT, ODIN_DEBUG, ODIN_ROOT),
optionally loaded from an env file; flags override them.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.envFile, "env", ".env", "env file to load settings from")
	cmd.PersistentFlags().BoolVar(&opts.strict, "strict", false, "case-sensitive names and domains")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newDemoCmd(opts), newTreeCmd(opts))
	return cmd
}

// bootstrap builds the root and registers the demo modules.
func (opts *rootOptions) bootstrap(cmd *cobra.Command) (*app.Odin, error) {
	settings := config.Load(opts.envFile)
	if cmd.Flags().Changed("strict") {
		settings.Strict = opts.strict
	}
	if cmd.Flags().Changed("debug") {
		settings.Debug = opts.debug
	}
	if settings.Debug {
		logging.SetOutput(cmd.ErrOrStderr())
	}

	o, err := app.New(settings)
	if err != nil {
		return nil, err
	}
	if err := o.Modules.Register(&shopModule{}); err != nil {
		return nil, err
	}
	if err := o.Modules.Register(&sessionModule{}); err != nil {
		return nil, err
	}
	return o, o.Boot()
}
