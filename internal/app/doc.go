// Package app provides application initialization and lifecycle management
// for the bikepulse dashboard server.
//
// # Initialization Flow
//
//	1. The caller loads configuration and initializes logging
//	2. NewApplication sets up OpenTelemetry and the metrics instruments
//	3. The dataset store, dashboard service and health service are created
//	4. The chi router and HTTP server are configured
//	5. Start loads the rental dataset (fatal on failure) and begins serving
//
// # Usage
//
//	application, err := app.NewApplication(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	return application.Run()
//
// # Graceful Shutdown
//
// Run blocks until SIGINT or SIGTERM, then drains in-flight requests within
// server.shutdown_timeout and flushes telemetry. The app never calls
// os.Exit; the command decides the exit code.
package app
