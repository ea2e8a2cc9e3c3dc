package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muurk/catalog-admin/internal/logging"
	"github.com/muurk/catalog-admin/internal/version"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "catalog-admin",
		Short: "Product catalog administration console",
		Long: `An administration console for a product catalog REST API.

Lists, filters and pages the catalog, and creates, edits and deletes
products through the API's /products endpoints.

If no command is specified, the terminal console launches.

Exit codes: 1 failure, 2 network error, 3 product not found, 4 invalid
input, 5 other HTTP error, 6 unreadable API response.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}

	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.StringVar(&a.apiURL, "api", "", "Products endpoint URL (default from config, then http://localhost:5000/products)")
	flags.StringVar(&a.timeout, "timeout", "", "API request timeout, e.g. 10s or 2.5 (default none)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error); logging is off when empty")
	flags.StringVar(&a.configPath, "config", "", "Settings file (default in the user config directory)")

	root.AddCommand(
		newTUICmd(a),
		newWebCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newScanCmd(a),
		newStatusCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Get()
			fmt.Fprintf(cmd.OutOrStdout(), "catalog-admin %s (commit: %s, %s, %s)\n",
				info.Version, info.Commit, info.GoVersion, info.Platform)
		},
	}
}
