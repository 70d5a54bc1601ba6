// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package security holds the cryptographic primitives of the vault: the
// redacting Secret wrapper, PBKDF2 master-key derivation with a per-vault
// salt, and the AES-256-GCM cipher used for credential secrets at rest.
// Nothing in this package touches storage; the vault package wires the
// pieces together.
package security
