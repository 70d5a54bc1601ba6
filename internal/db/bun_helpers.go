// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

// execRawProvider is a small interface used to accept either *bun.DB or *bun.Tx
// since both expose NewRaw(...).* methods returning *bun.RawQuery.
type execRawProvider interface {
	NewRaw(query string, args ...interface{}) *bun.RawQuery
}

// ExecRaw executes a raw SQL statement using the provided Bun DB or transaction.
// It returns the standard sql.Result to match existing call sites.
func ExecRaw(ctx context.Context, exec execRawProvider, query string, args ...interface{}) (sql.Result, error) {
	return exec.NewRaw(query, args...).Exec(ctx)
}

// QueryRawInto runs a raw query and scans the result into dest using Bun's RawQuery.Scan.
func QueryRawInto(ctx context.Context, exec execRawProvider, dest interface{}, query string, args ...interface{}) error {
	return exec.NewRaw(query, args...).Scan(ctx, dest)
}

// WithTx runs fn inside a transaction, committing on nil and rolling back on
// error.
func WithTx(ctx context.Context, bdb *bun.DB, fn func(ctx context.Context, tx bun.Tx) error) error {
	return bdb.RunInTx(ctx, nil, fn)
}

// VaultStats summarizes table sizes for maintenance output.
type VaultStats struct {
	Credentials     int
	Categories      int
	AuditLogEntries int
}

// StatsBun collects row counts via raw queries.
func StatsBun(ctx context.Context, bdb *bun.DB) (VaultStats, error) {
	var s VaultStats
	if err := QueryRawInto(ctx, bdb, &s.Credentials, "SELECT COUNT(*) FROM passwords"); err != nil {
		return s, MapDBError(err)
	}
	if err := QueryRawInto(ctx, bdb, &s.Categories, "SELECT COUNT(*) FROM categories"); err != nil {
		return s, MapDBError(err)
	}
	if err := QueryRawInto(ctx, bdb, &s.AuditLogEntries, "SELECT COUNT(*) FROM audit_log"); err != nil {
		return s, MapDBError(err)
	}
	return s, nil
}
