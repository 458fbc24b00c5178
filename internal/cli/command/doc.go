// Package command provides CLI command definitions for clipmesh.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: App, global flags, configuration loading
//   - run.go: run (the default): start synchronization
//   - check.go: check: validate configuration and print it sanitized
//   - init.go: init: write a starter configuration with a fresh key
//   - keygen.go: keygen: print a new secret key
package command
