// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.

package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrCiphertextInvalid is returned when a stored value fails authentication
// or is too short to contain a nonce. Callers treat it as a per-record
// failure, not a vault-wide one.
var ErrCiphertextInvalid = errors.New("ciphertext invalid or tampered with")

// Cipher is the authenticated symmetric cipher for credential secrets.
// Each encryption draws a fresh random nonce, so the stored value is
// self-describing: base64(nonce || ciphertext || tag) and decryptable with
// only the session key.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher builds an AES-256-GCM cipher from a derived key. The key must
// be KeyLength bytes; anything else is a derivation bug, not user input.
func NewCipher(key Secret) (*Cipher, error) {
	if len(key) != KeyLength {
		return nil, fmt.Errorf("cipher key must be %d bytes, got %d", KeyLength, len(key))
	}
	block, err := aes.NewCipher([]byte(key))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AES: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCM: %w", err)
	}
	return &Cipher{aead: aead}, nil
}

// EncryptString seals a plaintext secret and returns the base64 form stored
// in the password_encrypted column.
func (c *Cipher) EncryptString(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	out := make([]byte, 0, len(nonce)+len(plaintext)+c.aead.Overhead())
	out = append(out, nonce...)
	out = c.aead.Seal(out, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(out), nil
}

// DecryptString opens a stored base64(nonce||ciphertext) value.
func (c *Cipher) DecryptString(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCiphertextInvalid, err)
	}
	n := c.aead.NonceSize()
	if len(data) < n {
		return "", ErrCiphertextInvalid
	}
	plain, err := c.aead.Open(nil, data[:n], data[n:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCiphertextInvalid, err)
	}
	return string(plain), nil
}
