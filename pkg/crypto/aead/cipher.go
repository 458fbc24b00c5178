package aead

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// CipherType identifies the cipher algorithm.
type CipherType string

const (
	CipherChaCha20 CipherType = "chacha20-poly1305"
	CipherAESGCM   CipherType = "aes-256-gcm"
)

// DefaultCipher is the algorithm used when none is configured.
const DefaultCipher = CipherChaCha20

// Errors returned by Decrypt.
var (
	ErrCiphertextTooShort = errors.New("aead: ciphertext too short")
	ErrDecrypt            = errors.New("aead: message authentication failed")
)

// Cipher provides authenticated encryption.
type Cipher interface {
	// Type returns the cipher type.
	Type() CipherType

	// Encrypt seals plaintext and returns nonce || ciphertext.
	Encrypt(plaintext, additionalData []byte) ([]byte, error)

	// Decrypt opens the output of Encrypt. It never returns partial plaintext.
	Decrypt(sealed, additionalData []byte) ([]byte, error)

	// NonceSize returns the nonce size in bytes.
	NonceSize() int

	// Overhead returns the authentication tag size in bytes.
	Overhead() int
}

// New creates a cipher of the default type.
func New(key []byte) (Cipher, error) {
	return NewWithType(key, DefaultCipher)
}

// NewWithType creates a cipher of the specified type.
func NewWithType(key []byte, cipherType CipherType) (Cipher, error) {
	switch cipherType {
	case CipherChaCha20:
		return NewChaCha20(key)
	case CipherAESGCM:
		return NewAESGCM(key)
	default:
		return nil, fmt.Errorf("aead: unknown cipher type %q", cipherType)
	}
}

// ParseType validates a configured cipher name. An empty name selects DefaultCipher.
func ParseType(name string) (CipherType, error) {
	switch CipherType(name) {
	case "":
		return DefaultCipher, nil
	case CipherChaCha20, CipherAESGCM:
		return CipherType(name), nil
	default:
		return "", fmt.Errorf("aead: unknown cipher type %q", name)
	}
}

// baseCipher provides common functionality for ciphers.
type baseCipher struct {
	aead cipher.AEAD
}

// NonceSize returns the nonce size in bytes.
func (c *baseCipher) NonceSize() int {
	return c.aead.NonceSize()
}

// Overhead returns the authentication tag size in bytes.
func (c *baseCipher) Overhead() int {
	return c.aead.Overhead()
}

func (c *baseCipher) encrypt(plaintext, additionalData []byte) ([]byte, error) {
	nonceSize := c.aead.NonceSize()
	out := make([]byte, nonceSize, nonceSize+len(plaintext)+c.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, out); err != nil {
		return nil, fmt.Errorf("aead: generate nonce: %w", err)
	}

	return c.aead.Seal(out, out[:nonceSize], plaintext, additionalData), nil
}

func (c *baseCipher) decrypt(sealed, additionalData []byte) ([]byte, error) {
	nonceSize := c.aead.NonceSize()
	if len(sealed) < nonceSize+c.aead.Overhead() {
		return nil, ErrCiphertextTooShort
	}

	plaintext, err := c.aead.Open(nil, sealed[:nonceSize], sealed[nonceSize:], additionalData)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}
