// Package http implements the HTTP handlers of the bikepulse dashboard. Handlers
// stay thin: they parse query parameters, validate them, call the services
// and render either JSON envelopes (go-chi/render) or the HTML page.
//
// # Routes
//
//	GET /                          HTML dashboard (?start=&end=)
//	GET /api/dataset               dataset source, rows and bounds
//	GET /api/dashboard             every summary for the selection
//	GET /api/dashboard/{summary}   one summary
//	GET /api/health[/ready|/live]  health probes
//	GET /api/version               build information
//
// # Error Handling
//
// All API errors are RFC 7807 problems written by errors.ErrorHandler:
//
//	{
//	    "type": "/errors/dashboard/invalid-range",
//	    "title": "Invalid Date Range",
//	    "status": 400,
//	    "detail": "start 2012-01-02 is after end 2012-01-01",
//	    "instance": "/api/dashboard",
//	    "trace_id": "..."
//	}
package http
