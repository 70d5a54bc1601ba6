// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package backup reads and writes vault backup files. The on-disk format is
// zstd-compressed, indented JSON of model.BackupData. Credential secrets are
// already encrypted before they reach this package.
package backup

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/model"
)

// Write serializes the backup snapshot to path, overwriting any existing file.
func Write(path string, data *model.BackupData) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer func() { _ = f.Close() }()

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}

	enc := json.NewEncoder(zw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		_ = zw.Close()
		return fmt.Errorf("failed to encode backup data: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize backup file: %w", err)
	}
	return f.Close()
}

// Read loads a backup snapshot from path and validates its schema version.
func Read(path string) (*model.BackupData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open backup file: %w", err)
	}
	defer func() { _ = f.Close() }()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer zr.Close()

	var data model.BackupData
	if err := json.NewDecoder(zr).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode backup data: %w", err)
	}
	if data.SchemaVersion > model.BackupSchemaVersion {
		return nil, fmt.Errorf("unsupported backup schema version %d", data.SchemaVersion)
	}
	return &data, nil
}
