// Package config provides user configuration management for catalog-admin.
//
// Settings live in a YAML file stored in the platform's configuration
// directory:
//   - Linux: $XDG_CONFIG_HOME/catalog-admin/config.yaml or $HOME/.config/catalog-admin/config.yaml
//   - macOS: $HOME/.config/catalog-admin/config.yaml
//   - Windows: %LOCALAPPDATA%\catalog-admin\config.yaml
//
// # Precedence
//
// Defaults < config.yaml < .env < environment < command line flags.
//
//	settings, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	_ = config.LoadDotEnv()
//	if err := settings.ApplyEnv(); err != nil {
//	    return err
//	}
//
// # File Format
//
//	version: 1
//	api:
//	  base_url: http://localhost:5000/products
//	  timeout: 10s
//	  fetch_limit: 1000
//	display:
//	  currency_symbol: R$
//	web:
//	  listen: 127.0.0.1:8080
//	  advertise: false
//	endpoints:
//	  http://10.0.0.7:5000/products:
//	    nickname: staging
package config
