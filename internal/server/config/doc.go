// Package config provides the clipmesh configuration.
//
// This package defines the configuration structure and validation:
//
//   - spec.go: Config struct definition
//   - default.go: Default configuration values and paths
//   - verify.go: Validation run before anything starts
//   - sanitize.go: Log sanitization (hide the secret key)
//   - resolve.go: Derived values (key bytes, cipher, instance id)
//
// Configuration is loaded via internal/infra/confloader and supports
// multiple sources: files, environment variables, and flags.
package config
