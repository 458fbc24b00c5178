// Package aead provides the authenticated encryption used on the clipmesh wire.
//
// Every message is sealed independently with a fresh random 96-bit nonce.
// The nonce travels in the clear in front of the ciphertext, so the output
// of Encrypt is exactly the body of a transport frame:
//
//	nonce (12 bytes) || ciphertext || tag (16 bytes)
//
// Supported algorithms:
//
//   - ChaCha20-Poly1305: the default, used by every peer unless configured otherwise
//   - AES-256-GCM: optional; all peers sharing a key must pick the same algorithm
//
// Keys are 32 raw bytes, configured as 64 hex characters (see ParseKey).
//
// Usage:
//
//	key, err := aead.ParseKey(cfg.SecretKey)
//	c, err := aead.New(key)
//	body, err := c.Encrypt(plaintext, nil)
//	plaintext, err := c.Decrypt(body, nil)
//
// Cipher values are immutable after construction and safe for concurrent use.
package aead
