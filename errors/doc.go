// Package errors provides the structured error type shared by every
// flowreport layer. An AppError carries a machine-readable code, a
// human-readable message, the HTTP status an adapter should use, and the
// underlying cause.
//
// The analysis core only ever surfaces two codes: PARSE_ERROR when the
// input is not well-formed markup and EMPTY_RESULT when a well-formed
// document yields nothing to report. Adapters (CLI, HTTP, storage) add
// INVALID_INPUT, NOT_FOUND and INTERNAL_ERROR.
package errors
