// Package domain defines the clipboard model shared by the clipmesh core.
//
// It contains:
//
//   - Item: a clipboard value, one of text, image bytes or file paths
//   - Errors: structured error codes for coordinator failures
//
// Nothing here performs I/O.
package domain
