package transport

import (
	"fmt"

	"github.com/yndnr/clipmesh-go/internal/protocol"
	"github.com/yndnr/clipmesh-go/pkg/crypto/aead"
)

// Sealer converts between messages and encrypted frames. It is safe for
// concurrent use; the cipher key never changes after construction.
type Sealer struct {
	cipher aead.Cipher
}

// NewSealer returns a Sealer using c.
func NewSealer(c aead.Cipher) *Sealer {
	return &Sealer{cipher: c}
}

// Seal encodes, encrypts and frames msg. The result is ready to write to a
// connection as is.
func (s *Sealer) Seal(msg *protocol.Message) ([]byte, error) {
	plain, err := protocol.EncodeMessage(msg)
	if err != nil {
		return nil, fmt.Errorf("transport: encode: %w", err)
	}
	body, err := s.cipher.Encrypt(plain, nil)
	if err != nil {
		return nil, fmt.Errorf("transport: encrypt: %w", err)
	}
	return protocol.EncodeFrame(body)
}

// Open decrypts and decodes a frame body (the bytes after the length prefix).
func (s *Sealer) Open(body []byte) (*protocol.Message, error) {
	if len(body) < s.cipher.NonceSize() {
		return nil, ErrFrameTooShort
	}
	plain, err := s.cipher.Decrypt(body, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptFailed, err)
	}
	msg, err := protocol.DecodeMessage(plain)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return msg, nil
}
