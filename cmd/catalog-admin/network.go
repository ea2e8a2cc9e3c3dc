package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/catalog-admin/internal/discovery"
	"github.com/muurk/catalog-admin/internal/ui"
	"github.com/muurk/catalog-admin/internal/version"
)

func newScanCmd(a *app) *cobra.Command {
	var (
		timeout time.Duration
		save    bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Find catalog APIs on the local network",
		Long: `Browse mDNS for HTTP services that announce a product catalog
(TXT record path=/products or service=catalog).`,
		Example: `  catalog-admin scan
  catalog-admin scan --timeout 10s --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.printer(cmd.OutOrStdout())
			if !cmd.Flags().Changed("timeout") {
				timeout = a.settings.DiscoverTimeout()
			}
			p.Println(ui.SubtleStyle.Render(fmt.Sprintf("Scanning for catalog APIs (timeout: %s)...", timeout)))

			scanner := discovery.NewScanner()
			scanner.Timeout = timeout
			endpoints, err := scanner.Scan(cmd.Context())
			if err != nil {
				return fail(p, "Scan failed", err)
			}

			p.PrintEndpoints(endpoints)
			if len(endpoints) == 0 || !save {
				return nil
			}

			now := time.Now()
			for _, e := range endpoints {
				a.settings.RememberEndpoint(e.URL(), e.Instance, now)
			}
			if err := a.saveSettings(); err != nil {
				return fail(p, "Failed to save settings", err)
			}
			p.PrintSuccess(fmt.Sprintf("Saved %d endpoint(s)", len(endpoints)))
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", discovery.DefaultScanTimeout, "How long to listen")
	cmd.Flags().BoolVar(&save, "save", false, "Remember the endpoints found in the settings file")
	return cmd
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the catalog API answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.printer(cmd.OutOrStdout())
			client := a.client(cmd.Context())

			start := time.Now()
			if err := client.Ping(cmd.Context()); err != nil {
				return fail(p, "Catalog API unreachable", err)
			}

			p.PrintSuccess("Catalog API is reachable",
				ui.Detail{Key: "URL", Value: client.BaseURL},
				ui.Detail{Key: "Latency", Value: time.Since(start).Round(time.Millisecond).String()},
				ui.Detail{Key: "Console", Value: version.Full()},
			)
			return nil
		},
	}
}
