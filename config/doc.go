// Package config loads structbind settings with viper.
//
// Sources in increasing precedence: built-in defaults, structbind.toml
// (or the file named by --config), STRUCTBIND_* environment variables and
// command-line flags bound by the CLI.
package config
