package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/catalog-admin/internal/admin"
	"github.com/muurk/catalog-admin/internal/catalog"
	"github.com/muurk/catalog-admin/internal/logging"
	"github.com/muurk/catalog-admin/internal/tui"
	"github.com/muurk/catalog-admin/internal/view"
	"github.com/muurk/catalog-admin/internal/web"
)

// newConsole wires a Controller to a fresh Document for the resolved API
func (a *app) newConsole(ctx context.Context) (*admin.Controller, *view.Document, *catalog.Client) {
	client := a.client(ctx)
	doc := view.NewDocument(a.settings.Display.CurrencySymbol)
	ctrl := admin.NewController(client, doc)
	ctrl.SetFetchLimit(a.settings.API.FetchLimit)
	return ctrl, doc, client
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal console (default)",
		Long: `Run the interactive terminal console.

Keys: "/" filter by name, "i" filter by id, "c" clear filters, left/right
change page, "n" new product, "e" edit, "d" delete, "r" reload, "?" help,
"q" quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}
}

func (a *app) runTUI(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctrl, doc, client := a.newConsole(ctx)
	a.rememberDiscovered()

	logging.Info("Starting terminal console", zap.String("api", client.BaseURL))
	return tui.Run(ctx, ctrl, doc, tui.Options{
		APIURL:         client.BaseURL,
		CurrencySymbol: a.settings.Display.CurrencySymbol,
	})
}

func newWebCmd(a *app) *cobra.Command {
	var (
		listen    string
		advertise bool
	)

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the console to browsers",
		Long: `Serve the console over HTTP.

All browser tabs share one console state and refresh when it changes.
Prometheus metrics are served at /metrics and a health check at /healthz.`,
		Example: `  # Listen on the configured address (default 127.0.0.1:8080)
  catalog-admin web

  # Reachable from the LAN and announced over mDNS
  catalog-admin web --listen :8080 --advertise`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("listen") {
				listen = a.settings.Web.Listen
			}
			if !cmd.Flags().Changed("advertise") {
				advertise = a.settings.Web.Advertise
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ctrl, doc, client := a.newConsole(ctx)
			a.rememberDiscovered()

			// A failed first load is shown in the page's error banner
			_ = ctrl.Load(ctx)

			server := web.New(web.Config{
				Listen:         listen,
				APIURL:         client.BaseURL,
				CurrencySymbol: a.settings.Display.CurrencySymbol,
				Advertise:      advertise,
			}, ctrl, doc)

			fmt.Fprintf(cmd.OutOrStdout(), "Serving catalog console on http://%s (API %s)\n", listen, client.BaseURL)
			return server.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Address to listen on (default from config)")
	cmd.Flags().BoolVar(&advertise, "advertise", false, "Announce the console over mDNS")
	return cmd
}
