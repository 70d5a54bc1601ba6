// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.
package cli

import (
	"testing"
)

// TestNewRootCmd_RegistersSubcommands guards against commands silently
// dropping out of the root during refactors.
func TestNewRootCmd_RegistersSubcommands(t *testing.T) {
	cmd := NewRootCmd()

	want := []string{
		"generate", "passphrase", "analyze",
		"add", "list", "show", "delete",
		"categories", "audit-log",
		"backup", "restore", "db-maintain",
	}
	have := map[string]bool{}
	for _, c := range cmd.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Fatalf("subcommand %q not registered", name)
		}
	}
}

func TestNewRootCmd_Reentrant(t *testing.T) {
	// Package-level subcommands mean a second call must not redefine flags.
	_ = NewRootCmd()
	_ = NewRootCmd()
}

func TestNewRootCmd_DatabaseFlags(t *testing.T) {
	cmd := NewRootCmd()
	if cmd.Flags().Lookup("database.type") == nil {
		t.Fatalf("database.type flag missing on root")
	}
	if cmd.Flags().Lookup("database.dsn") == nil {
		t.Fatalf("database.dsn flag missing on root")
	}
	if cmd.PersistentFlags().Lookup("config") == nil {
		t.Fatalf("config flag missing on root")
	}
}
