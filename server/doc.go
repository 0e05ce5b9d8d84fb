// Package server hosts the HTTP interface of flowreport: a Gin engine
// served over HTTP/1.1 and h2c, wrapped in the net/http middleware from
// server/middleware and managed as a component.
//
// Endpoints (server/endpoint):
//
//   - POST /v1/reports: analyze an uploaded process definition
//   - GET /health: component health aggregation
//   - GET /version: build information
package server
