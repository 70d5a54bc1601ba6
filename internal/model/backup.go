// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.
package model

// BackupSchemaVersion is the current backup file schema version.
const BackupSchemaVersion = 1

// BackupData is a container for all data exported during a backup.
// Credential secrets stay in their at-rest encrypted form; a backup file
// never contains plaintext passwords and is only useful together with the
// master password of the vault it was taken from.
type BackupData struct {
	// SchemaVersion helps in handling migrations during restore.
	SchemaVersion int `json:"schema_version"`

	Meta            *VaultMeta            `json:"vault_meta,omitempty"`
	Categories      []Category            `json:"categories"`
	Credentials     []EncryptedCredential `json:"credentials"`
	AuditLogEntries []AuditLogEntry       `json:"audit_log_entries"`
}

// EncryptedCredential mirrors the passwords table row as stored, with the
// secret still encrypted.
type EncryptedCredential struct {
	ID                int    `json:"id"`
	Title             string `json:"title"`
	Username          string `json:"username"`
	PasswordEncrypted string `json:"password_encrypted"`
	URL               string `json:"url"`
	Notes             string `json:"notes"`
	Category          string `json:"category"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}
