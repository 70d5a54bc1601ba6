// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.

// package model defines the core data structures shared across the vault:
// credential records, categories, and the audit trail. The structs carry no
// behavior beyond display helpers; all persistence and crypto lives in the
// db and vault packages.
package model

import (
	"fmt"
	"time"
)

// Credential is a single stored login. Secret holds the plaintext password
// only while in memory; at rest the store keeps base64(nonce||ciphertext)
// in the password_encrypted column and nothing else.
type Credential struct {
	ID        int
	Title     string
	Username  string
	Secret    string
	URL       string
	Notes     string
	Category  string
	CreatedAt string
	UpdatedAt string
}

// String returns the title/username representation used in listings and
// audit details. It never includes the secret.
func (c Credential) String() string {
	if c.Username == "" {
		return c.Title
	}
	return fmt.Sprintf("%s (%s)", c.Title, c.Username)
}

// Category is a named grouping for credentials. The name doubles as the
// join key from Credential.Category.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DefaultCategories is the seed set inserted at first initialization.
// Re-seeding is a no-op for names that already exist.
var DefaultCategories = []string{"General", "Work", "Social", "Finance", "Shopping", "Email"}

// AuditLogEntry records a single vault action for the audit trail.
type AuditLogEntry struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
}

// VaultMeta is the single-row table describing how the vault's key is
// derived: the per-vault random salt (cleartext, base64), a verifier hash
// of the derived key, and the PBKDF2 work factor in use.
type VaultMeta struct {
	Salt          string `json:"salt"`
	Verifier      string `json:"verifier"`
	KDFIterations int    `json:"kdf_iterations"`
	CreatedAt     string `json:"created_at"`
}
