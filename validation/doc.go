// Package validation provides input validation for flowreport configuration
// and request parameters.
//
// Struct tag validation (backed by go-playground/validator) is used by every
// config section's Validate method. Programmatic validation collects field
// errors for HTTP query parameters and CLI flags.
//
// # Struct Tag Validation
//
//	type ExportConfig struct {
//	    Format string `validate:"oneof=csv json yaml table"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	err := validation.New().
//	    OneOf("format", format, []string{"json", "csv"}).
//	    Validate()
package validation
