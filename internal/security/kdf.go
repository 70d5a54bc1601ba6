// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.

package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KDFIterations is the PBKDF2-HMAC-SHA256 work factor. The iteration
	// count is recorded in vault_meta so older vaults keep decrypting with
	// the value they were created with.
	KDFIterations = 480_000

	// KeyLength is the derived key size in bytes (AES-256).
	KeyLength = 32

	// SaltLength is the size of the random per-vault salt.
	SaltLength = 16
)

// NewSalt returns a fresh random salt for a new vault. The salt is not a
// secret; it exists so identical master passwords derive different keys
// across vaults and precomputed dictionaries are useless.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate vault salt: %w", err)
	}
	return salt, nil
}

// DeriveKey stretches the master password and salt into the session key
// using PBKDF2-HMAC-SHA256.
func DeriveKey(password Secret, salt []byte, iterations int) Secret {
	return Secret(pbkdf2.Key([]byte(password), salt, iterations, KeyLength, sha256.New))
}

// KeyVerifier returns the SHA-256 digest of the derived key. It is stored
// in vault_meta so a wrong master password is rejected at unlock instead of
// surfacing as a vault-wide decryption failure.
func KeyVerifier(key Secret) []byte {
	sum := sha256.Sum256([]byte(key))
	return sum[:]
}

// VerifyKey compares the derived key against a stored verifier in constant
// time.
func VerifyKey(key Secret, verifier []byte) bool {
	got := KeyVerifier(key)
	return subtle.ConstantTimeCompare(got, verifier) == 1
}
