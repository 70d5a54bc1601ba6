// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.
package vault

import (
	"errors"
	"testing"

	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/db"
	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/model"
	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/security"
)

// newTestStore opens an in-memory sqlite store named after the test.
func newTestStore(t *testing.T) db.Store {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	s, err := db.NewStoreFromDSN("sqlite", dsn)
	if err != nil {
		t.Fatalf("NewStoreFromDSN failed: %v", err)
	}
	return s
}

func TestOpen_InitializesAndSeeds(t *testing.T) {
	store := newTestStore(t)
	session, err := Open(store, security.FromString("master"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = session.Close() }()

	cats, err := session.Categories()
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	if len(cats) != len(model.DefaultCategories) {
		t.Fatalf("expected %d seeded categories, got %v", len(model.DefaultCategories), cats)
	}
}

func TestOpen_WrongMasterPassword(t *testing.T) {
	store := newTestStore(t)
	session, err := Open(store, security.FromString("correct"))
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	// Keep the database alive across sessions; only zero the key.
	_, _ = session.AddPassword(model.Credential{Title: "t", Secret: "s"})

	if _, err := Open(store, security.FromString("wrong")); !errors.Is(err, ErrWrongMasterPassword) {
		t.Fatalf("expected ErrWrongMasterPassword, got %v", err)
	}

	// The right password still opens.
	again, err := Open(store, security.FromString("correct"))
	if err != nil {
		t.Fatalf("re-open with correct password failed: %v", err)
	}
	_ = again.Close()
}

func TestOpen_EmptyPassword(t *testing.T) {
	store := newTestStore(t)
	defer func() { _ = store.Close() }()
	var verr *ValidationError
	if _, err := Open(store, nil); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAddListGetDelete_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	session, err := Open(store, security.FromString("master"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = session.Close() }()

	id, err := session.AddPassword(model.Credential{
		Title:    "Mail",
		Username: "me@example.com",
		Secret:   "hunter2",
		URL:      "https://mail.example.com",
		Notes:    "personal",
	})
	if err != nil {
		t.Fatalf("AddPassword failed: %v", err)
	}

	// The stored row must not contain the plaintext.
	raw, err := store.GetCredentialByID(id)
	if err != nil || raw == nil {
		t.Fatalf("GetCredentialByID failed: %v", err)
	}
	if raw.PasswordEncrypted == "hunter2" || raw.PasswordEncrypted == "" {
		t.Fatalf("secret not encrypted at rest: %q", raw.PasswordEncrypted)
	}
	if raw.Category != "General" {
		t.Fatalf("expected default category, got %q", raw.Category)
	}
	if raw.CreatedAt == "" || raw.UpdatedAt == "" {
		t.Fatalf("timestamps not set: %+v", raw)
	}

	listing, err := session.ListPasswords()
	if err != nil {
		t.Fatalf("ListPasswords failed: %v", err)
	}
	if len(listing.Records) != 1 || len(listing.Failures) != 0 {
		t.Fatalf("unexpected listing: %+v", listing)
	}
	if listing.Records[0].Secret != "hunter2" {
		t.Fatalf("decrypted secret mismatch: %q", listing.Records[0].Secret)
	}

	rec, err := session.GetPassword(id)
	if err != nil || rec == nil || rec.Secret != "hunter2" {
		t.Fatalf("GetPassword failed: %+v, err=%v", rec, err)
	}

	if err := session.DeletePassword(id); err != nil {
		t.Fatalf("DeletePassword failed: %v", err)
	}
	// Idempotent: deleting again is fine.
	if err := session.DeletePassword(id); err != nil {
		t.Fatalf("second DeletePassword failed: %v", err)
	}
	missing, err := session.GetPassword(id)
	if err != nil {
		t.Fatalf("GetPassword after delete failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil after delete, got %+v", missing)
	}
}

func TestAddPassword_Validation(t *testing.T) {
	store := newTestStore(t)
	session, err := Open(store, security.FromString("master"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = session.Close() }()

	var verr *ValidationError
	if _, err := session.AddPassword(model.Credential{Title: "  ", Secret: "x"}); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for empty title, got %v", err)
	}
	if _, err := session.AddPassword(model.Credential{Title: "x", Secret: ""}); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for empty secret, got %v", err)
	}
}

func TestUpdatePassword_ReEncrypts(t *testing.T) {
	store := newTestStore(t)
	session, err := Open(store, security.FromString("master"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = session.Close() }()

	id, err := session.AddPassword(model.Credential{Title: "Site", Secret: "old"})
	if err != nil {
		t.Fatalf("AddPassword failed: %v", err)
	}
	before, _ := store.GetCredentialByID(id)

	if err := session.UpdatePassword(model.Credential{ID: id, Title: "Site", Secret: "new"}); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}
	after, _ := store.GetCredentialByID(id)
	if after.PasswordEncrypted == before.PasswordEncrypted {
		t.Fatalf("ciphertext unchanged after update")
	}
	if after.CreatedAt != before.CreatedAt {
		t.Fatalf("CreatedAt should be preserved on update")
	}

	rec, err := session.GetPassword(id)
	if err != nil || rec == nil || rec.Secret != "new" {
		t.Fatalf("updated secret mismatch: %+v, err=%v", rec, err)
	}
}

func TestListPasswords_ReportsDecryptFailures(t *testing.T) {
	store := newTestStore(t)
	session, err := Open(store, security.FromString("master"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = session.Close() }()

	goodID, err := session.AddPassword(model.Credential{Title: "good", Secret: "ok"})
	if err != nil {
		t.Fatalf("AddPassword failed: %v", err)
	}
	// Inject a corrupted row directly.
	badID, err := store.AddCredential(model.EncryptedCredential{
		Title:             "bad",
		PasswordEncrypted: "bm90LXJlYWwtY2lwaGVydGV4dA==",
	})
	if err != nil {
		t.Fatalf("AddCredential failed: %v", err)
	}

	listing, err := session.ListPasswords()
	if err != nil {
		t.Fatalf("ListPasswords failed: %v", err)
	}
	if len(listing.Records) != 1 || listing.Records[0].ID != goodID {
		t.Fatalf("expected only the good record, got %+v", listing.Records)
	}
	if len(listing.Failures) != 1 || listing.Failures[0].ID != badID {
		t.Fatalf("expected the bad record reported, got %+v", listing.Failures)
	}
	if listing.Failures[0].Err == nil {
		t.Fatalf("failure must carry the decrypt error")
	}
}

func TestSession_ClosedRejectsOperations(t *testing.T) {
	store := newTestStore(t)
	session, err := Open(store, security.FromString("master"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := session.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	// Close is idempotent.
	if err := session.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	if _, err := session.AddPassword(model.Credential{Title: "t", Secret: "s"}); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
	if _, err := session.ListPasswords(); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
	if err := session.DeletePassword(1); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
	if _, err := session.Categories(); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
}
