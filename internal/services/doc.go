// Package services implements the business logic between the HTTP handlers,
// the CLI and the data pipeline.
//
// # Services
//
//	- DatasetStore: owns the base rental table, loaded once and shared read-only
//	- DashboardService: resolves date selections and runs the pipeline
//	- HealthService: health, readiness and liveness reports
//
// # Range Resolution
//
// Missing range ends default to the dataset bounds. A start after the end is
// rejected with an INVALID_RANGE error. With strict bounds enabled, a range
// reaching outside the dataset is rejected as well; otherwise it simply
// selects fewer rows.
//
// # Concurrency
//
// Every request filters its own copy of the base table. The only shared state
// is the table itself, which is written once under DatasetStore's lock.
//
// # Usage
//
//	store := services.NewDatasetStore(cfg.Dataset, logger)
//	dashboards := services.NewDashboardService(store, cfg.Dataset, logger)
//	dash, err := dashboards.Dashboard(ctx, api.DashboardRequest{Start: "2011-01-01"})
package services
