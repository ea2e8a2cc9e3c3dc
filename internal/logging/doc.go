// Package logging provides structured logging for catalog-admin.
//
// This package wraps the zap logger with convenience functions for the
// logging patterns used across the console: outgoing API calls, requests
// served by the web console, and controller operations.
//
// # Silent by Default
//
// One-shot commands print their own output, so logging stays off unless a
// level is requested with --log-level or CATALOG_ADMIN_LOG_LEVEL:
//
//	if err := logging.Initialize(flagLevel); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// The terminal UI owns the screen and therefore logs to a file
// (CATALOG_ADMIN_LOG_FILE or catalog-admin.log in the config directory):
//
//	logging.InitializeWithOutput(flagLevel, config.DefaultLogPath())
//
// # Specialized Logging
//
//	logging.LogAPIRequest("GET", url, requestID)
//	logging.LogAPIResponse("GET", url, 200, elapsed, requestID)
//	logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path, status, elapsed, requestID)
//	logging.LogOperation("delete", err, zap.Int("product_id", id))
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. Initialize and SetLogger
// are expected to run once at startup.
package logging
