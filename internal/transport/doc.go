// Package transport moves encrypted clipboard messages between peers.
//
// Every message travels on its own TCP connection: the sender dials,
// writes one frame and closes. A frame body is nonce || ciphertext || tag
// produced by pkg/crypto/aead over a protocol-encoded message.
//
//   - sealer.go: encode+encrypt+frame, and the reverse
//   - listener.go: accept loop, one goroutine per connection
//   - broadcaster.go: concurrent best-effort fan-out to all peers
//   - limiter.go: per-remote-IP connection rate limiting
package transport
