// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.
package db

import (
	"context"
	"testing"

	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/model"
)

func TestExecRawAndQueryRawInto(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		ctx := context.Background()
		if _, err := ExecRaw(ctx, s.BunDB(), "INSERT INTO categories(name) VALUES(?)", "raw"); err != nil {
			t.Fatalf("ExecRaw failed: %v", err)
		}
		var name string
		if err := QueryRawInto(ctx, s.BunDB(), &name, "SELECT name FROM categories WHERE name = ?", "raw"); err != nil {
			t.Fatalf("QueryRawInto failed: %v", err)
		}
		if name != "raw" {
			t.Fatalf("expected raw, got %q", name)
		}
	})
}

func TestStatsBun(t *testing.T) {
	WithTestStore(t, func(s *BunStore) {
		if err := s.SeedDefaultCategories(); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
		if _, err := s.AddCredential(model.EncryptedCredential{Title: "a", PasswordEncrypted: "c"}); err != nil {
			t.Fatalf("AddCredential failed: %v", err)
		}

		stats, err := s.Stats()
		if err != nil {
			t.Fatalf("Stats failed: %v", err)
		}
		if stats.Credentials != 1 {
			t.Fatalf("expected 1 credential, got %d", stats.Credentials)
		}
		if stats.Categories != len(model.DefaultCategories) {
			t.Fatalf("expected %d categories, got %d", len(model.DefaultCategories), stats.Categories)
		}
		if stats.AuditLogEntries == 0 {
			t.Fatalf("expected audit entries from the mutations above")
		}
	})
}
