// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"testing"
)

// WithTestStore initializes an in-memory sqlite Store for the duration of the
// provided function and restores the package-level store afterwards.
func WithTestStore(t *testing.T, fn func(s *BunStore)) {
	t.Helper()

	prevStore := store

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	if err := InitDB("sqlite", dsn); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	s, ok := store.(*BunStore)
	if !ok {
		t.Fatalf("store is not *BunStore")
	}

	defer func() {
		_ = s.Close()
		store = prevStore
	}()

	fn(s)
}
