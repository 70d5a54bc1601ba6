// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package vault implements the unlocked vault session. A Session owns the
// derived encryption key and is the only place where credential secrets
// exist in plaintext; the storage layer below it only ever sees ciphertext.
package vault

import (
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/db"
	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/logging"
	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/model"
	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/security"
)

// DecryptFailure identifies a stored record whose secret could not be
// decrypted. Such records are excluded from listings but never silently
// dropped.
type DecryptFailure struct {
	ID  int
	Err error
}

// Listing is the result of enumerating the vault: the decrypted records plus
// any per-record decrypt failures encountered along the way.
type Listing struct {
	Records  []model.Credential
	Failures []DecryptFailure
}

// Session is an unlocked vault. All methods are safe for concurrent use.
// Close zeroizes the derived key; a closed session rejects every operation.
type Session struct {
	mu     sync.Mutex
	store  db.Store
	cipher *security.Cipher
	key    security.Secret
	closed bool
}

// Open unlocks the vault behind the given store with the master password.
//
// On first open it generates a random salt, derives the key, stores the salt
// together with a key verifier in the vault metadata row, and seeds the
// default categories. On later opens it re-derives the key from the stored
// salt and checks it against the verifier; a mismatch yields
// ErrWrongMasterPassword without touching any credential data.
func Open(store db.Store, masterPassword security.Secret) (*Session, error) {
	if len(masterPassword) == 0 {
		return nil, &ValidationError{Field: "master password", Reason: "must not be empty"}
	}

	meta, err := store.GetVaultMeta()
	if err != nil {
		return nil, &StoreOpenError{Err: err}
	}

	var key security.Secret
	if meta == nil {
		// First open: initialize the vault metadata.
		salt, err := security.NewSalt()
		if err != nil {
			return nil, &KeyDerivationError{Err: err}
		}
		key = security.DeriveKey(masterPassword, salt, security.KDFIterations)
		newMeta := model.VaultMeta{
			Salt:          base64.StdEncoding.EncodeToString(salt),
			Verifier:      base64.StdEncoding.EncodeToString(security.KeyVerifier(key)),
			KDFIterations: security.KDFIterations,
			CreatedAt:     time.Now().Format(time.RFC3339),
		}
		if err := store.SaveVaultMeta(newMeta); err != nil {
			key.Zero()
			return nil, &StoreOpenError{Err: err}
		}
		logging.Infof("vault initialized with %d KDF iterations", security.KDFIterations)
	} else {
		salt, err := base64.StdEncoding.DecodeString(meta.Salt)
		if err != nil {
			return nil, &StoreOpenError{Err: fmt.Errorf("corrupt vault salt: %w", err)}
		}
		verifier, err := base64.StdEncoding.DecodeString(meta.Verifier)
		if err != nil {
			return nil, &StoreOpenError{Err: fmt.Errorf("corrupt key verifier: %w", err)}
		}
		iterations := meta.KDFIterations
		if iterations <= 0 {
			iterations = security.KDFIterations
		}
		key = security.DeriveKey(masterPassword, salt, iterations)
		if !security.VerifyKey(key, verifier) {
			key.Zero()
			return nil, ErrWrongMasterPassword
		}
	}

	cipher, err := security.NewCipher(key)
	if err != nil {
		key.Zero()
		return nil, &KeyDerivationError{Err: err}
	}

	if err := store.SeedDefaultCategories(); err != nil {
		key.Zero()
		return nil, &StoreOpenError{Err: err}
	}

	_ = store.LogAction("vault_unlocked", "")

	return &Session{store: store, cipher: cipher, key: key}, nil
}

// AddPassword encrypts the secret and stores a new credential row, returning
// its id. Title and secret are required; an empty category defaults to
// "General".
func (s *Session) AddPassword(c model.Credential) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrSessionClosed
	}

	if strings.TrimSpace(c.Title) == "" {
		return 0, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if c.Secret == "" {
		return 0, &ValidationError{Field: "password", Reason: "must not be empty"}
	}
	if c.Category == "" {
		c.Category = "General"
	}

	ciphertext, err := s.cipher.EncryptString(c.Secret)
	if err != nil {
		return 0, fmt.Errorf("failed to encrypt password: %w", err)
	}

	now := time.Now().Format(time.RFC3339)
	row := model.EncryptedCredential{
		Title:             c.Title,
		Username:          c.Username,
		PasswordEncrypted: ciphertext,
		URL:               c.URL,
		Notes:             c.Notes,
		Category:          c.Category,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	id, err := s.store.AddCredential(row)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdatePassword re-encrypts and replaces an existing credential. Fields
// follow the same validation rules as AddPassword; CreatedAt is preserved.
func (s *Session) UpdatePassword(c model.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}

	if strings.TrimSpace(c.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if c.Secret == "" {
		return &ValidationError{Field: "password", Reason: "must not be empty"}
	}
	if c.Category == "" {
		c.Category = "General"
	}

	existing, err := s.store.GetCredentialByID(c.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("no credential with id %d", c.ID)
	}

	ciphertext, err := s.cipher.EncryptString(c.Secret)
	if err != nil {
		return fmt.Errorf("failed to encrypt password: %w", err)
	}

	row := model.EncryptedCredential{
		ID:                c.ID,
		Title:             c.Title,
		Username:          c.Username,
		PasswordEncrypted: ciphertext,
		URL:               c.URL,
		Notes:             c.Notes,
		Category:          c.Category,
		CreatedAt:         existing.CreatedAt,
		UpdatedAt:         time.Now().Format(time.RFC3339),
	}
	return s.store.UpdateCredential(row)
}

// ListPasswords returns every credential with its secret decrypted, ordered
// by title. Rows whose ciphertext fails to decrypt are reported in
// Listing.Failures instead of aborting the whole listing.
func (s *Session) ListPasswords() (*Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}

	rows, err := s.store.GetAllCredentials()
	if err != nil {
		return nil, err
	}

	listing := &Listing{}
	for _, row := range rows {
		plain, err := s.cipher.DecryptString(row.PasswordEncrypted)
		if err != nil {
			logging.Warnf("cannot decrypt credential id=%d: %v", row.ID, err)
			listing.Failures = append(listing.Failures, DecryptFailure{ID: row.ID, Err: err})
			continue
		}
		listing.Records = append(listing.Records, model.Credential{
			ID:        row.ID,
			Title:     row.Title,
			Username:  row.Username,
			Secret:    plain,
			URL:       row.URL,
			Notes:     row.Notes,
			Category:  row.Category,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}
	return listing, nil
}

// GetPassword returns the decrypted credential with the given id, or
// (nil, nil) when no such record exists.
func (s *Session) GetPassword(id int) (*model.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}

	row, err := s.store.GetCredentialByID(id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, nil
	}
	plain, err := s.cipher.DecryptString(row.PasswordEncrypted)
	if err != nil {
		return nil, fmt.Errorf("cannot decrypt credential id=%d: %w", id, err)
	}
	return &model.Credential{
		ID:        row.ID,
		Title:     row.Title,
		Username:  row.Username,
		Secret:    plain,
		URL:       row.URL,
		Notes:     row.Notes,
		Category:  row.Category,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

// DeletePassword removes the credential with the given id. Deleting an id
// that does not exist is a no-op.
func (s *Session) DeletePassword(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	return s.store.DeleteCredential(id)
}

// Categories returns all category names in alphabetical order.
func (s *Session) Categories() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	return s.store.GetAllCategories()
}

// AddCategory creates a new category; adding an existing name is a no-op.
func (s *Session) AddCategory(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "category", Reason: "must not be empty"}
	}
	return s.store.AddCategory(name)
}

// AuditLog returns the vault's audit trail, newest first.
func (s *Session) AuditLog() ([]model.AuditLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	return s.store.GetAllAuditLogEntries()
}

// Export snapshots the vault for backup. Secrets stay encrypted.
func (s *Session) Export() (*model.BackupData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	return s.store.ExportDataForBackup()
}

// Import replaces the vault contents with a backup snapshot. The caller must
// re-open the vault afterwards since the snapshot carries its own metadata.
func (s *Session) Import(data *model.BackupData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	return s.store.ImportDataFromBackup(data)
}

// Close zeroizes the derived key and closes the underlying store. The
// session is unusable afterwards. Close is idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.key.Zero()
	s.cipher = nil
	_ = s.store.LogAction("vault_locked", "")
	return s.store.Close()
}
