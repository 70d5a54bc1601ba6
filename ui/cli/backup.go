// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/backup"
	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/db"
	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/i18n"
)

// backupCmd writes a compressed snapshot of the whole vault. Secrets stay in
// their encrypted form, so the file is only useful with the master password.
var backupCmd = &cobra.Command{
	Use:     "backup <file>",
	Short:   "Write a compressed vault backup",
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = session.Close() }()

		data, err := session.Export()
		if err != nil {
			return err
		}
		if err := backup.Write(args[0], data); err != nil {
			return err
		}
		fmt.Printf(i18n.T("backup.written")+"\n", args[0])
		return nil
	},
}

// restoreCmd replaces the vault contents with a backup snapshot. The backup
// carries its own key metadata, so the restored vault opens with the master
// password it was taken under.
var restoreCmd = &cobra.Command{
	Use:     "restore <file>",
	Short:   "Restore the vault from a backup (replaces all data)",
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := backup.Read(args[0])
		if err != nil {
			return err
		}

		session, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = session.Close() }()

		if err := session.Import(data); err != nil {
			return err
		}
		fmt.Printf(i18n.T("backup.restored")+"\n", args[0])
		return nil
	},
}

// dbMaintainCmd runs engine-specific maintenance (VACUUM and friends).
var dbMaintainCmd = &cobra.Command{
	Use:     "db-maintain",
	Short:   "Run database maintenance tasks",
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		if s, ok := db.DefaultStore().(*db.BunStore); ok {
			if stats, err := s.Stats(); err == nil {
				fmt.Printf("passwords: %d, categories: %d, audit entries: %d\n",
					stats.Credentials, stats.Categories, stats.AuditLogEntries)
			}
		}
		// Close the pooled handle before VACUUM takes its own connection.
		if store := db.DefaultStore(); store != nil {
			_ = store.Close()
		}
		return db.RunDBMaintenance(appConfig.Database.Type, appConfig.Database.DSN)
	},
}
