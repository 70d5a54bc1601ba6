// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/model"
)

// Store defines the interface for all database operations in the vault.
// This allows for multiple database backends to be implemented. Secret
// values cross this boundary in their encrypted form only.
type Store interface {
	// Credential methods
	AddCredential(row model.EncryptedCredential) (int, error)
	UpdateCredential(row model.EncryptedCredential) error
	GetAllCredentials() ([]model.EncryptedCredential, error)
	GetCredentialByID(id int) (*model.EncryptedCredential, error)
	DeleteCredential(id int) error

	// Category methods
	GetAllCategories() ([]string, error)
	AddCategory(name string) error
	SeedDefaultCategories() error

	// Vault meta methods
	GetVaultMeta() (*model.VaultMeta, error)
	SaveVaultMeta(meta model.VaultMeta) error

	// Audit log methods
	GetAllAuditLogEntries() ([]model.AuditLogEntry, error)
	LogAction(action string, details string) error

	// Backup methods
	ExportDataForBackup() (*model.BackupData, error)
	ImportDataFromBackup(backup *model.BackupData) error

	// Close releases the underlying database handle.
	Close() error
}
