package config

import "time"

// Application constants
const (
	AppName     = "Bike Rental Company"
	ServiceName = "bikepulse"

	// Environment
	EnvPrefix      = "BIKEPULSE"
	EnvFileVar     = "BIKEPULSE_ENV_FILE"
	DefaultEnvFile = ".env"

	// Server
	DefaultPort           = 8080
	DefaultRequestTimeout = 30 * time.Second

	// Rate limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Dataset
	DefaultDatasetPath  = "data/days_df.csv"
	DefaultDatasetTable = "days"

	// Logging
	DefaultLogLevel = "info"
)
