// Package config loads flowreport configuration from YAML files, .env files
// and environment variables.
//
// Viper reads the YAML file first, then every environment variable is bound
// under all of its plausible nested key spellings, so ANALYZER_DEFAULT_ROLE
// fills analyzer.default_role. With WithEnvPrefix("FLOWREPORT") the prefix is
// stripped first, making FLOWREPORT_SERVER_PORT equivalent to SERVER_PORT.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("flowreport", &cfg,
//	    config.WithConfigFile(path),
//	    config.WithEnvPrefix("FLOWREPORT"),
//	)
//
// Projects embed ServiceConfig in their own struct to inherit name,
// environment and logging settings.
package config
