// Package config provides configuration loading and validation for
// trendwatch.
//
// Configuration is populated from defaults, an optional YAML file, and
// CLI flags, then passed through the application via dependency injection
// rather than global state.
package config
