// Package config provides centralized configuration management for bikepulse.
// It loads configuration from multiple sources, validates it, and exposes a
// type-safe Config to the rest of the application.
//
// # Configuration Sources
//
// Sources are applied in increasing order of precedence:
//
//	1. Default values (Default)
//	2. YAML file (bikepulse.yaml, config.yaml or configs/config.yaml, or --config)
//	3. .env file (path overridable with BIKEPULSE_ENV_FILE)
//	4. Environment variables
//
// # Environment Variables
//
// Variables are namespaced with BIKEPULSE_ followed by the section:
//
//	BIKEPULSE_SERVER_PORT=8080
//	BIKEPULSE_DATASET_PATH=data/days_df.csv
//	BIKEPULSE_DATASET_STRICT_BOUNDS=false
//	BIKEPULSE_LOGGING_LEVEL=debug
//	BIKEPULSE_TELEMETRY_TRACE_EXPORTER=stdout
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    slog.Error("configuration error", "error", err)
//	    os.Exit(1)
//	}
package config
