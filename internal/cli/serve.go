package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"apiexplorer/internal/explorer"
	"apiexplorer/internal/server"
	"apiexplorer/internal/ui"
)

func newServeCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the mock API, the proxy gateway and the catalog endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rt, err := o.setup(ctx, true)
			if err != nil {
				return err
			}
			defer rt.Close()
			return server.New(rt.cfg, rt.catalog, rt.log).Run(ctx)
		},
	}
}

func newExploreCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Browse and call endpoints in a terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := o.setup(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer rt.Close()

			session := explorer.New(rt.catalog, rt.env, rt.client())
			app := ui.NewApp(session, rt.env, rt.creds, rt.log.Named("ui"))
			app.SetTimeout(rt.cfg.Remote.Timeout)
			return app.Run()
		},
	}
}
