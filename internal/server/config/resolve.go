package config

import (
	"fmt"
	"os"

	"github.com/yndnr/clipmesh-go/pkg/crypto/aead"
)

// SecretKeyBytes decodes SecretKey.
func (c *Config) SecretKeyBytes() ([]byte, error) {
	return aead.ParseKey(c.SecretKey)
}

// CipherType returns the configured cipher.
func (c *Config) CipherType() (aead.CipherType, error) {
	return aead.ParseType(c.Cipher)
}

// ResolveInstanceID returns InstanceID, falling back to the hostname.
func (c *Config) ResolveInstanceID() (string, error) {
	return resolveInstanceID(c.InstanceID, os.Hostname)
}

func resolveInstanceID(configured string, hostname func() (string, error)) (string, error) {
	if configured != "" {
		return configured, nil
	}
	name, err := hostname()
	if err != nil {
		return "", fmt.Errorf("instance_id not set and hostname unavailable: %w", err)
	}
	if name == "" {
		return "", fmt.Errorf("instance_id not set and hostname is empty")
	}
	return name, nil
}
