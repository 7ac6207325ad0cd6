// Package config loads selengine settings.
//
// Settings come from three layers, later layers overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension
//  3. SELENGINE_* environment variables
//
// Example file:
//
//	[selection]
//	kind = "highlight"
//	cross_boundary = true
//
//	[log]
//	level = "debug"
//
// Watch reloads a file when it changes on disk and hands the result to a
// callback, so a running process can pick up a new log level without restart.
package config
