// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package db is the data access layer for the vault. It abstracts the
// underlying database (SQLite by default, PostgreSQL and MySQL via the same
// DSN mechanism) behind the Store interface so the vault session code never
// touches SQL. Credential secrets arrive here already encrypted; this
// package stores and returns ciphertext only.
package db // import "github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/db"
