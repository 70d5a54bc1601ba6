// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Bun models and helper functions shared by every SQL backend. The helpers
// take a *bun.DB so the consolidated store can delegate per-engine work to a
// single implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os/user"
	"time"

	"github.com/uptrace/bun"

	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/model"
)

// CredentialModel mirrors the passwords table. The secret column only ever
// holds AEAD ciphertext; plaintext never reaches this layer.
type CredentialModel struct {
	bun.BaseModel `bun:"table:passwords,alias:p"`

	ID                int    `bun:"id,pk,autoincrement"`
	Title             string `bun:"title,notnull"`
	Username          string `bun:"username"`
	PasswordEncrypted string `bun:"password_encrypted,notnull"`
	URL               string `bun:"url"`
	Notes             string `bun:"notes"`
	Category          string `bun:"category,notnull,default:'General'"`
	CreatedAt         string `bun:"created_at"`
	UpdatedAt         string `bun:"updated_at"`
}

// CategoryModel mirrors the categories table.
type CategoryModel struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	ID   int    `bun:"id,pk,autoincrement"`
	Name string `bun:"name,notnull,unique"`
}

// VaultMetaModel mirrors the single-row vault_meta table holding the KDF
// parameters and the key verifier.
type VaultMetaModel struct {
	bun.BaseModel `bun:"table:vault_meta,alias:vm"`

	ID            int    `bun:"id,pk"`
	Salt          string `bun:"salt,notnull"`
	Verifier      string `bun:"verifier,notnull"`
	KDFIterations int    `bun:"kdf_iterations,notnull"`
	CreatedAt     string `bun:"created_at"`
}

// AuditLogModel mirrors the audit_log table.
type AuditLogModel struct {
	bun.BaseModel `bun:"table:audit_log,alias:al"`

	ID        int       `bun:"id,pk,autoincrement"`
	Timestamp time.Time `bun:"timestamp,nullzero,notnull,default:current_timestamp"`
	Username  string    `bun:"username,notnull"`
	Action    string    `bun:"action,notnull"`
	Details   string    `bun:"details"`
}

func credentialFromModel(m *CredentialModel) model.EncryptedCredential {
	return model.EncryptedCredential{
		ID:                m.ID,
		Title:             m.Title,
		Username:          m.Username,
		PasswordEncrypted: m.PasswordEncrypted,
		URL:               m.URL,
		Notes:             m.Notes,
		Category:          m.Category,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func credentialToModel(row model.EncryptedCredential) *CredentialModel {
	return &CredentialModel{
		ID:                row.ID,
		Title:             row.Title,
		Username:          row.Username,
		PasswordEncrypted: row.PasswordEncrypted,
		URL:               row.URL,
		Notes:             row.Notes,
		Category:          row.Category,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

// AddCredentialBun inserts an encrypted credential row and returns its new id.
func AddCredentialBun(bdb *bun.DB, row model.EncryptedCredential) (int, error) {
	m := credentialToModel(row)
	m.ID = 0
	if m.Category == "" {
		m.Category = "General"
	}
	if _, err := bdb.NewInsert().Model(m).Exec(context.Background()); err != nil {
		return 0, MapDBError(err)
	}
	return m.ID, nil
}

// UpdateCredentialBun updates an existing row by primary key.
func UpdateCredentialBun(bdb *bun.DB, row model.EncryptedCredential) error {
	m := credentialToModel(row)
	res, err := bdb.NewUpdate().Model(m).WherePK().Exec(context.Background())
	if err != nil {
		return MapDBError(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("no credential with id %d", row.ID)
	}
	return nil
}

// GetAllCredentialsBun returns every stored row ordered by title.
func GetAllCredentialsBun(bdb *bun.DB) ([]model.EncryptedCredential, error) {
	var ms []CredentialModel
	if err := bdb.NewSelect().Model(&ms).Order("title ASC").Scan(context.Background()); err != nil {
		return nil, MapDBError(err)
	}
	out := make([]model.EncryptedCredential, 0, len(ms))
	for i := range ms {
		out = append(out, credentialFromModel(&ms[i]))
	}
	return out, nil
}

// GetCredentialByIDBun returns the row with the given id, or (nil, nil) when
// no such row exists.
func GetCredentialByIDBun(bdb *bun.DB, id int) (*model.EncryptedCredential, error) {
	m := new(CredentialModel)
	err := bdb.NewSelect().Model(m).Where("id = ?", id).Scan(context.Background())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, MapDBError(err)
	}
	row := credentialFromModel(m)
	return &row, nil
}

// DeleteCredentialBun removes the row with the given id. Deleting a missing
// id is not an error.
func DeleteCredentialBun(bdb *bun.DB, id int) error {
	_, err := bdb.NewDelete().Model((*CredentialModel)(nil)).Where("id = ?", id).Exec(context.Background())
	if err != nil {
		return MapDBError(err)
	}
	return nil
}

// GetAllCategoriesBun returns category names ordered alphabetically.
func GetAllCategoriesBun(bdb *bun.DB) ([]string, error) {
	var ms []CategoryModel
	if err := bdb.NewSelect().Model(&ms).Order("name ASC").Scan(context.Background()); err != nil {
		return nil, MapDBError(err)
	}
	names := make([]string, 0, len(ms))
	for i := range ms {
		names = append(names, ms[i].Name)
	}
	return names, nil
}

// AddCategoryBun inserts a category name if it does not already exist.
// Ignore() renders the dialect-appropriate conflict clause, so re-adding an
// existing name is a no-op on every engine.
func AddCategoryBun(bdb *bun.DB, name string) error {
	m := &CategoryModel{Name: name}
	if _, err := bdb.NewInsert().Model(m).Ignore().Exec(context.Background()); err != nil {
		return MapDBError(err)
	}
	return nil
}

// SeedDefaultCategoriesBun inserts the default category set, skipping names
// that already exist. Safe to call on every open.
func SeedDefaultCategoriesBun(bdb *bun.DB) error {
	for _, name := range model.DefaultCategories {
		if err := AddCategoryBun(bdb, name); err != nil {
			return err
		}
	}
	return nil
}

// GetVaultMetaBun returns the vault metadata row, or (nil, nil) if the vault
// has not been initialized yet.
func GetVaultMetaBun(bdb *bun.DB) (*model.VaultMeta, error) {
	m := new(VaultMetaModel)
	err := bdb.NewSelect().Model(m).Where("id = 1").Scan(context.Background())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, MapDBError(err)
	}
	return &model.VaultMeta{
		Salt:          m.Salt,
		Verifier:      m.Verifier,
		KDFIterations: m.KDFIterations,
		CreatedAt:     m.CreatedAt,
	}, nil
}

// SaveVaultMetaBun writes the single metadata row, replacing any prior one.
func SaveVaultMetaBun(bdb *bun.DB, meta model.VaultMeta) error {
	m := &VaultMetaModel{
		ID:            1,
		Salt:          meta.Salt,
		Verifier:      meta.Verifier,
		KDFIterations: meta.KDFIterations,
		CreatedAt:     meta.CreatedAt,
	}
	return WithTx(context.Background(), bdb, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*VaultMetaModel)(nil)).Where("id = 1").Exec(ctx); err != nil {
			return MapDBError(err)
		}
		if _, err := tx.NewInsert().Model(m).Exec(ctx); err != nil {
			return MapDBError(err)
		}
		return nil
	})
}

// LogActionBun records an audit entry attributed to the current OS user.
func LogActionBun(bdb *bun.DB, action, details string) error {
	username := "unknown"
	if u, err := user.Current(); err == nil && u.Username != "" {
		username = u.Username
	}
	entry := &AuditLogModel{
		Timestamp: time.Now(),
		Username:  username,
		Action:    action,
		Details:   details,
	}
	if _, err := bdb.NewInsert().Model(entry).Exec(context.Background()); err != nil {
		return MapDBError(err)
	}
	return nil
}

// GetAllAuditLogEntriesBun returns audit entries, newest first.
func GetAllAuditLogEntriesBun(bdb *bun.DB) ([]model.AuditLogEntry, error) {
	var ms []AuditLogModel
	if err := bdb.NewSelect().Model(&ms).Order("timestamp DESC").Order("id DESC").Scan(context.Background()); err != nil {
		return nil, MapDBError(err)
	}
	out := make([]model.AuditLogEntry, 0, len(ms))
	for i := range ms {
		out = append(out, model.AuditLogEntry{
			ID:        ms[i].ID,
			Timestamp: ms[i].Timestamp,
			Username:  ms[i].Username,
			Action:    ms[i].Action,
			Details:   ms[i].Details,
		})
	}
	return out, nil
}

// ExportDataForBackupBun reads the whole vault into a BackupData snapshot.
// Credentials stay encrypted; a backup never contains plaintext secrets.
func ExportDataForBackupBun(bdb *bun.DB) (*model.BackupData, error) {
	data := &model.BackupData{SchemaVersion: model.BackupSchemaVersion}

	meta, err := GetVaultMetaBun(bdb)
	if err != nil {
		return nil, err
	}
	data.Meta = meta

	var cats []CategoryModel
	if err := bdb.NewSelect().Model(&cats).Order("name ASC").Scan(context.Background()); err != nil {
		return nil, MapDBError(err)
	}
	for i := range cats {
		data.Categories = append(data.Categories, model.Category{ID: cats[i].ID, Name: cats[i].Name})
	}

	creds, err := GetAllCredentialsBun(bdb)
	if err != nil {
		return nil, err
	}
	data.Credentials = creds

	entries, err := GetAllAuditLogEntriesBun(bdb)
	if err != nil {
		return nil, err
	}
	data.AuditLogEntries = entries

	return data, nil
}

// ImportDataFromBackupBun replaces the vault contents with a backup snapshot
// inside a single transaction. The metadata row travels with the backup so
// the restored vault still opens with the original master password.
func ImportDataFromBackupBun(bdb *bun.DB, data *model.BackupData) error {
	if data == nil {
		return errors.New("nil backup data")
	}
	return WithTx(context.Background(), bdb, func(ctx context.Context, tx bun.Tx) error {
		for _, m := range []interface{}{
			(*CredentialModel)(nil),
			(*CategoryModel)(nil),
			(*AuditLogModel)(nil),
			(*VaultMetaModel)(nil),
		} {
			if _, err := tx.NewDelete().Model(m).Where("1 = 1").Exec(ctx); err != nil {
				return MapDBError(err)
			}
		}

		if data.Meta != nil {
			m := &VaultMetaModel{
				ID:            1,
				Salt:          data.Meta.Salt,
				Verifier:      data.Meta.Verifier,
				KDFIterations: data.Meta.KDFIterations,
				CreatedAt:     data.Meta.CreatedAt,
			}
			if _, err := tx.NewInsert().Model(m).Exec(ctx); err != nil {
				return MapDBError(err)
			}
		}
		for _, c := range data.Categories {
			m := &CategoryModel{Name: c.Name}
			if _, err := tx.NewInsert().Model(m).Ignore().Exec(ctx); err != nil {
				return MapDBError(err)
			}
		}
		for _, row := range data.Credentials {
			// Ids are kept stable across backup and restore.
			m := credentialToModel(row)
			if _, err := tx.NewInsert().Model(m).Exec(ctx); err != nil {
				return MapDBError(err)
			}
		}
		for _, e := range data.AuditLogEntries {
			m := &AuditLogModel{
				Timestamp: e.Timestamp,
				Username:  e.Username,
				Action:    e.Action,
				Details:   e.Details,
			}
			if _, err := tx.NewInsert().Model(m).Exec(ctx); err != nil {
				return MapDBError(err)
			}
		}
		return nil
	})
}
