// Package confloader loads configuration with koanf.
//
// Sources, from lowest to highest priority:
//
//  1. Defaults (the values already present in the target struct)
//  2. Configuration file (YAML, which also accepts JSON)
//  3. Environment variables (CLIPMESH_ prefix, "__" between levels)
//  4. Command-line flags, merged with LoadMap
//
// Marshal renders a nested map as YAML for writing starter config files.
package confloader
