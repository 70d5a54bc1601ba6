// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("database.type", "sqlite", "")
	cmd.Flags().String("database.dsn", "./vault.db", "")
	return cmd
}

func TestLoadConfig_Defaults(t *testing.T) {
	// Run from an empty directory so no stray vault.yaml is picked up.
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig(newTestCmd(), "")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Database.Type != "sqlite" {
		t.Fatalf("expected sqlite default, got %q", cfg.Database.Type)
	}
	if cfg.Database.DSN != "./vault.db" {
		t.Fatalf("expected ./vault.db default, got %q", cfg.Database.DSN)
	}
	if cfg.Language != "en" {
		t.Fatalf("expected en default, got %q", cfg.Language)
	}
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := "database:\n  type: postgres\n  dsn: \"host=localhost dbname=vault\"\nlanguage: de\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadConfig(newTestCmd(), path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Database.Type != "postgres" {
		t.Fatalf("expected postgres, got %q", cfg.Database.Type)
	}
	if cfg.Language != "de" {
		t.Fatalf("expected de, got %q", cfg.Language)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ELSAKR_DATABASE_TYPE", "mysql")
	t.Setenv("ELSAKR_LANGUAGE", "de")

	cfg, err := LoadConfig(newTestCmd(), "")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Database.Type != "mysql" {
		t.Fatalf("env override not applied, got %q", cfg.Database.Type)
	}
	if cfg.Language != "de" {
		t.Fatalf("env override not applied, got %q", cfg.Language)
	}
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := newTestCmd()
	if err := cmd.Flags().Set("database.dsn", "/tmp/other.db"); err != nil {
		t.Fatalf("flag set failed: %v", err)
	}
	cfg, err := LoadConfig(cmd, "")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Database.DSN != "/tmp/other.db" {
		t.Fatalf("flag override not applied, got %q", cfg.Database.DSN)
	}
}
