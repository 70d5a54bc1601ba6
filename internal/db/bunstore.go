// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.
package db

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/model"
)

// BunStore is the consolidated Store implementation for every supported SQL
// engine. Dialect differences live in the bun query builder and in the
// per-engine migrations, not here.
type BunStore struct {
	bun *bun.DB
}

// NewBunStore wraps an existing *bun.DB in a Store. Used by tests that build
// their own database handle.
func NewBunStore(bdb *bun.DB) *BunStore {
	return &BunStore{bun: bdb}
}

// BunDB exposes the underlying handle for raw queries and maintenance.
func (s *BunStore) BunDB() *bun.DB { return s.bun }

func (s *BunStore) AddCredential(row model.EncryptedCredential) (int, error) {
	id, err := AddCredentialBun(s.bun, row)
	if err != nil {
		return 0, err
	}
	_ = LogActionBun(s.bun, "credential_added", fmt.Sprintf("id=%d title=%q", id, row.Title))
	return id, nil
}

func (s *BunStore) UpdateCredential(row model.EncryptedCredential) error {
	if err := UpdateCredentialBun(s.bun, row); err != nil {
		return err
	}
	_ = LogActionBun(s.bun, "credential_updated", fmt.Sprintf("id=%d", row.ID))
	return nil
}

func (s *BunStore) GetAllCredentials() ([]model.EncryptedCredential, error) {
	return GetAllCredentialsBun(s.bun)
}

func (s *BunStore) GetCredentialByID(id int) (*model.EncryptedCredential, error) {
	return GetCredentialByIDBun(s.bun, id)
}

func (s *BunStore) DeleteCredential(id int) error {
	if err := DeleteCredentialBun(s.bun, id); err != nil {
		return err
	}
	_ = LogActionBun(s.bun, "credential_deleted", fmt.Sprintf("id=%d", id))
	return nil
}

func (s *BunStore) GetAllCategories() ([]string, error) {
	return GetAllCategoriesBun(s.bun)
}

func (s *BunStore) AddCategory(name string) error {
	if err := AddCategoryBun(s.bun, name); err != nil {
		return err
	}
	_ = LogActionBun(s.bun, "category_added", name)
	return nil
}

func (s *BunStore) SeedDefaultCategories() error {
	return SeedDefaultCategoriesBun(s.bun)
}

func (s *BunStore) GetVaultMeta() (*model.VaultMeta, error) {
	return GetVaultMetaBun(s.bun)
}

func (s *BunStore) SaveVaultMeta(meta model.VaultMeta) error {
	if err := SaveVaultMetaBun(s.bun, meta); err != nil {
		return err
	}
	_ = LogActionBun(s.bun, "vault_meta_saved", "")
	return nil
}

func (s *BunStore) LogAction(action, details string) error {
	return LogActionBun(s.bun, action, details)
}

func (s *BunStore) GetAllAuditLogEntries() ([]model.AuditLogEntry, error) {
	return GetAllAuditLogEntriesBun(s.bun)
}

func (s *BunStore) ExportDataForBackup() (*model.BackupData, error) {
	data, err := ExportDataForBackupBun(s.bun)
	if err != nil {
		return nil, err
	}
	_ = LogActionBun(s.bun, "backup_exported", "")
	return data, nil
}

func (s *BunStore) ImportDataFromBackup(data *model.BackupData) error {
	if err := ImportDataFromBackupBun(s.bun, data); err != nil {
		return err
	}
	_ = LogActionBun(s.bun, "backup_imported", "")
	return nil
}

func (s *BunStore) Close() error {
	return s.bun.Close()
}

// Stats reports table row counts for maintenance output.
func (s *BunStore) Stats() (VaultStats, error) {
	return StatsBun(context.Background(), s.bun)
}
