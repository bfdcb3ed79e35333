// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win; later sources only fill fields that are still
// zero):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry point is [GetConfig]; the built-in defaults make the binary
// runnable with no configuration at all (finance.db in the working directory,
// snapshots under backups/).
package config
