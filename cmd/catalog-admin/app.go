package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/catalog-admin/internal/catalog"
	"github.com/muurk/catalog-admin/internal/config"
	"github.com/muurk/catalog-admin/internal/discovery"
	"github.com/muurk/catalog-admin/internal/logging"
	"github.com/muurk/catalog-admin/internal/ui"
)

// errReported means the failure was already printed to the user
var errReported = errors.New("command failed")

// app carries the global flags and the settings shared by every command
type app struct {
	apiURL     string
	timeout    string
	logLevel   string
	configPath string

	settings *config.Settings

	// discovered is set when the API URL came from an mDNS scan
	discovered *discovery.Endpoint

	// scan finds the first catalog API on the network; replaced in tests
	scan func(ctx context.Context, timeout time.Duration) (*discovery.Endpoint, error)
}

func newApp() *app {
	return &app{
		scan: func(ctx context.Context, timeout time.Duration) (*discovery.Endpoint, error) {
			s := discovery.NewScanner()
			s.Timeout = timeout
			return s.First(ctx)
		},
	}
}

// logsToFile reports whether cmd takes over the terminal
func logsToFile(cmd *cobra.Command) bool {
	return cmd.Name() == "tui" || !cmd.HasParent()
}

// setup runs before every command: logging, .env, settings file, environment
// and flag overrides, in that order of precedence
func (a *app) setup(cmd *cobra.Command) error {
	logPath := ""
	if logsToFile(cmd) {
		logPath = config.DefaultLogPath()
	}
	if err := logging.InitializeWithOutput(a.logLevel, logPath); err != nil {
		return err
	}

	if err := config.LoadDotEnv(); err != nil {
		logging.Warn("Ignoring .env file", zap.Error(err))
	}

	settings, err := a.loadSettings()
	if err != nil {
		return err
	}
	if err := settings.ApplyEnv(); err != nil {
		return err
	}

	if a.apiURL != "" {
		settings.API.BaseURL = a.apiURL
	}
	if a.timeout != "" {
		timeout, err := config.ParseTimeout(a.timeout)
		if err != nil {
			return fmt.Errorf("invalid --timeout: %w", err)
		}
		settings.API.Timeout = timeout
	}

	a.settings = settings
	return nil
}

func (a *app) loadSettings() (*config.Settings, error) {
	if a.configPath != "" {
		return config.LoadFrom(a.configPath)
	}
	return config.Load()
}

func (a *app) saveSettings() error {
	if a.configPath != "" {
		return a.settings.SaveTo(a.configPath)
	}
	return a.settings.Save()
}

// explicitAPI reports whether the user chose the API by flag or environment
func (a *app) explicitAPI() bool {
	return a.apiURL != "" || os.Getenv(config.EnvAPIURL) != ""
}

// resolveAPI returns the products URL to talk to. With auto_discover on and no
// explicit choice, the first catalog API announced over mDNS wins; the
// configured URL is the fallback.
func (a *app) resolveAPI(ctx context.Context) string {
	url := a.settings.API.BaseURL
	if a.explicitAPI() || !a.settings.Preferences.AutoDiscover {
		return url
	}

	endpoint, err := a.scan(ctx, a.settings.DiscoverTimeout())
	if err != nil {
		logging.Info("No catalog API discovered, using configured URL",
			zap.String("url", url),
			zap.Error(err),
		)
		return url
	}

	a.discovered = endpoint
	logging.Info("Using discovered catalog API", zap.String("endpoint", endpoint.String()))
	return endpoint.URL()
}

// rememberDiscovered stores an endpoint found by discovery in the settings file
func (a *app) rememberDiscovered() {
	if a.discovered == nil {
		return
	}
	a.settings.RememberEndpoint(a.discovered.URL(), a.discovered.Instance, time.Now())
	if err := a.saveSettings(); err != nil {
		logging.Warn("Failed to save discovered endpoint", zap.Error(err))
	}
}

// client builds an API client for the resolved URL
func (a *app) client(ctx context.Context) *catalog.Client {
	c := catalog.NewClient(a.resolveAPI(ctx))
	c.SetTimeout(a.settings.API.Timeout)
	return c
}

func (a *app) printer(w io.Writer) *ui.Printer {
	return ui.NewPrinter(w, a.settings.Display.CurrencySymbol)
}

// reportedError is a failure already shown to the user. It matches
// errReported and unwraps to its cause so the exit code can be derived.
type reportedError struct {
	cause error
}

func (e *reportedError) Error() string        { return e.cause.Error() }
func (e *reportedError) Unwrap() error        { return e.cause }
func (e *reportedError) Is(target error) bool { return target == errReported }

// fail shows err in an error box
func fail(p *ui.Printer, title string, err error) error {
	p.PrintError(title, err)
	return &reportedError{cause: err}
}

// Exit codes by failure kind
const (
	exitFailure    = 1
	exitNetwork    = 2
	exitNotFound   = 3
	exitInvalid    = 4
	exitHTTP       = 5
	exitBadPayload = 6
)

func exitCode(err error) int {
	switch {
	case catalog.IsNetworkError(err):
		return exitNetwork
	case catalog.IsNotFound(err):
		return exitNotFound
	case catalog.IsValidationError(err):
		return exitInvalid
	case catalog.IsHTTPError(err):
		return exitHTTP
	case catalog.IsParseError(err):
		return exitBadPayload
	default:
		return exitFailure
	}
}
