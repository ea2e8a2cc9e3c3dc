package main

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/muurk/catalog-admin/internal/config"
	"github.com/muurk/catalog-admin/internal/ui"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
	}
	cmd.AddCommand(newConfigShowCmd(a), newConfigSetAPICmd(a), newConfigPathCmd(a))
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Long: `Print the settings in effect for this run: the settings file with
environment variables and flags applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(a.settings)
			if err != nil {
				return fmt.Errorf("failed to marshal settings: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigSetAPICmd(a *app) *cobra.Command {
	var nickname string

	cmd := &cobra.Command{
		Use:     "set-api <url>",
		Short:   "Set the default products endpoint",
		Example: `  catalog-admin config set-api http://catalog.local:5000/products --nickname lab`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.printer(cmd.OutOrStdout())

			u, err := url.Parse(args[0])
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				return fmt.Errorf("invalid API URL %q (expected http(s)://host[:port]/products)", args[0])
			}

			a.settings.API.BaseURL = u.String()
			a.settings.RememberEndpoint(u.String(), nickname, time.Now())
			if err := a.saveSettings(); err != nil {
				return fail(p, "Failed to save settings", err)
			}

			p.PrintSuccess("Default API updated", ui.Detail{Key: "URL", Value: u.String()})
			return nil
		},
	}

	cmd.Flags().StringVar(&nickname, "nickname", "", "Name to remember the endpoint by")
	return cmd
}

func newConfigPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if path == "" {
				var err error
				if path, err = config.GetConfigPath(); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
