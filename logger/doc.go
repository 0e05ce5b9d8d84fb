// Package logger provides structured logging for flowreport using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with map-based structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.Get("analyzer")
//	log.Info("process analyzed", logger.Fields(logger.FieldProcess, name, logger.FieldRows, n))
package logger
