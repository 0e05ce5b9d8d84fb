// Package util provides small generic helpers shared across flowreport
// packages: slice and map utilities, size parsing, and markup cleaning for
// free-text fields pulled out of process definitions.
package util
