package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	appName    = "catalog-admin"
	configFile = "config.yaml"
	logFile    = "catalog-admin.log"
)

// Environment variables that override the settings file
const (
	EnvAPIURL  = "CATALOG_ADMIN_API_URL"
	EnvListen  = "CATALOG_ADMIN_LISTEN"
	EnvTimeout = "CATALOG_ADMIN_TIMEOUT"
)

var (
	// Global settings instance (loaded lazily)
	globalSettings     *Settings
	globalSettingsOnce sync.Once
	globalSettingsErr  error

	// Mutex for thread-safe file operations
	fileMutex sync.Mutex
)

// GetConfigDir returns the OS-appropriate configuration directory for the application.
//   - Linux: $XDG_CONFIG_HOME/catalog-admin or $HOME/.config/catalog-admin
//   - macOS: $HOME/.config/catalog-admin
//   - Windows: %LOCALAPPDATA%\catalog-admin
func GetConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, appName), nil
		}
		userProfile := os.Getenv("USERPROFILE")
		if userProfile == "" {
			return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
		}
		return filepath.Join(userProfile, "AppData", "Local", appName), nil

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil

	default:
		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			return filepath.Join(xdgConfigHome, appName), nil
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil
	}
}

// GetConfigPath returns the full path to the settings file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// DefaultLogPath returns where the terminal UI writes its log.
// Falls back to the working directory when no config directory can be found.
func DefaultLogPath() string {
	configDir, err := GetConfigDir()
	if err != nil {
		return logFile
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return logFile
	}
	return filepath.Join(configDir, logFile)
}

// Load loads the settings file once per process.
// A missing file yields default settings.
func Load() (*Settings, error) {
	globalSettingsOnce.Do(func() {
		path, err := GetConfigPath()
		if err != nil {
			globalSettingsErr = fmt.Errorf("failed to get config path: %w", err)
			return
		}
		globalSettings, globalSettingsErr = LoadFrom(path)
	})
	return globalSettings, globalSettingsErr
}

// LoadFrom reads settings from path. A missing file yields defaults.
func LoadFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if settings.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported config version: %d (expected %d)", settings.Version, CurrentVersion)
	}

	settings.fillDefaults()
	return &settings, nil
}

// Save writes the settings to the default config path
func (s *Settings) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return s.SaveTo(path)
}

// SaveTo writes the settings to path through a temporary file and rename
func (s *Settings) SaveTo(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# catalog-admin configuration file
# Environment variables ` + EnvAPIURL + `, ` + EnvListen + ` and ` + EnvTimeout + `
# override these values; command line flags override everything.
#
# Location: ` + path + `

`)
	data = append(header, data...)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}

// LoadDotEnv loads KEY=value pairs from the given files (default ".env")
// into the environment. Missing files are skipped and variables already set
// win over the file.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load %s: %w", strings.Join(existing, ", "), err)
	}
	return nil
}

// ApplyEnv overrides settings from CATALOG_ADMIN_* environment variables
func (s *Settings) ApplyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		s.API.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvListen)); v != "" {
		s.Web.Listen = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		timeout, err := ParseTimeout(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		s.API.Timeout = timeout
	}
	return nil
}

// ParseTimeout accepts a Go duration ("2.5s") or a number of seconds ("10")
func ParseTimeout(v string) (time.Duration, error) {
	if seconds, err := strconv.ParseFloat(v, 64); err == nil {
		if seconds < 0 {
			return 0, fmt.Errorf("timeout cannot be negative: %s", v)
		}
		return time.Duration(seconds * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout cannot be negative: %s", v)
	}
	return d, nil
}
