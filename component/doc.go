// Package component defines the lifecycle contract shared by flowreport's
// long-lived parts: the HTTP server, the storage backend and the telemetry
// exporters. A Registry starts them in registration order, stops them in
// reverse and aggregates their health for the /health endpoint.
package component
