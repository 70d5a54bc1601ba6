// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/db"
	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/i18n"
	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/model"
	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/security"
	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/strength"
	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/vault"
)

var (
	addTitle    string
	addUsername string
	addURL      string
	addNotes    string
	addCategory string

	showCopy   bool
	showSecret bool
)

// promptSecret reads a secret without echo when stdin is a terminal,
// falling back to a plain line read otherwise (tests, pipes).
func promptSecret(prompt string) (security.Secret, error) {
	fmt.Print(prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return nil, fmt.Errorf("could not read password: %w", err)
		}
		return security.FromBytes(raw), nil
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return nil, fmt.Errorf("could not read password: %w", err)
	}
	return security.FromString(strings.TrimRight(line, "\r\n")), nil
}

// openSession prompts for the master password and unlocks the vault over the
// default store.
func openSession(cmd *cobra.Command) (*vault.Session, error) {
	store := db.DefaultStore()
	if store == nil {
		return nil, errors.New("database is not initialized")
	}
	password, err := promptSecret(i18n.T("prompt.master_password"))
	if err != nil {
		return nil, err
	}
	defer password.Zero()

	session, err := vault.Open(store, password)
	if err != nil {
		// No session owns the handle on a failed unlock; release it here.
		_ = db.Shutdown()
		if errors.Is(err, vault.ErrWrongMasterPassword) {
			return nil, errors.New(i18n.T("error.wrong_master_password"))
		}
		return nil, err
	}
	return session, nil
}

// addCmd stores a new credential. The secret is prompted for, never passed
// as an argument, so it stays out of shell history.
var addCmd = &cobra.Command{
	Use:     "add",
	Short:   "Store a new password in the vault",
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = session.Close() }()

		secret, err := promptSecret("Password to store: ")
		if err != nil {
			return err
		}
		defer secret.Zero()

		res := strength.New(true).Analyze(string(secret))
		if res.Score <= 1 {
			log.Warnf("storing a %s password (%d/4)", res.Strength, res.Score)
		}

		id, err := session.AddPassword(model.Credential{
			Title:    addTitle,
			Username: addUsername,
			Secret:   string(secret),
			URL:      addURL,
			Notes:    addNotes,
			Category: addCategory,
		})
		if err != nil {
			return err
		}
		fmt.Printf(i18n.T("credential.added")+"\n", id)
		return nil
	},
}

// listCmd prints all credentials without their secrets.
var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List stored passwords",
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = session.Close() }()

		listing, err := session.ListPasswords()
		if err != nil {
			return err
		}
		if len(listing.Records) == 0 && len(listing.Failures) == 0 {
			fmt.Println(i18n.T("vault.empty"))
			return nil
		}
		for _, rec := range listing.Records {
			line := joinNonEmpty("  ", fmt.Sprintf("[%d]", rec.ID), rec.Title, rec.Username, rec.URL, "("+rec.Category+")")
			fmt.Println(line)
		}
		if len(listing.Failures) > 0 {
			fmt.Println(i18n.T("vault.decrypt_failures"))
			for _, f := range listing.Failures {
				fmt.Printf("  [%d] %v\n", f.ID, f.Err)
			}
		}
		return nil
	},
}

// showCmd prints one credential; the secret only with --secret or --copy.
var showCmd = &cobra.Command{
	Use:     "show <id>",
	Short:   "Show a stored password by id",
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}

		session, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = session.Close() }()

		rec, err := session.GetPassword(id)
		if err != nil {
			return err
		}
		if rec == nil {
			fmt.Println(i18n.T("credential.not_found"))
			return nil
		}

		fmt.Printf("Title:    %s\n", rec.Title)
		if rec.Username != "" {
			fmt.Printf("Username: %s\n", rec.Username)
		}
		if rec.URL != "" {
			fmt.Printf("URL:      %s\n", rec.URL)
		}
		if rec.Notes != "" {
			fmt.Printf("Notes:    %s\n", rec.Notes)
		}
		fmt.Printf("Category: %s\n", rec.Category)
		if showSecret {
			fmt.Printf("Password: %s\n", rec.Secret)
		}
		if showCopy {
			if err := clipboard.WriteAll(rec.Secret); err != nil {
				log.Warnf("could not copy to clipboard: %v", err)
			} else {
				fmt.Println(i18n.T("credential.copied"))
			}
		}
		return nil
	},
}

// deleteCmd removes a credential. Unknown ids are not an error.
var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Short:   "Delete a stored password by id",
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}

		session, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = session.Close() }()

		if err := session.DeletePassword(id); err != nil {
			return err
		}
		fmt.Println(i18n.T("credential.deleted"))
		return nil
	},
}

// categoriesCmd lists all categories.
var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Short:   "List categories",
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = session.Close() }()

		names, err := session.Categories()
		if err != nil {
			return err
		}
		fmt.Println(i18n.T("categories.title"))
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
		return nil
	},
}

// auditLogCmd prints the vault's audit trail.
var auditLogCmd = &cobra.Command{
	Use:     "audit-log",
	Short:   "Show the vault audit log",
	PreRunE: setupDefaultServices,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = session.Close() }()

		entries, err := session.AuditLog()
		if err != nil {
			return err
		}
		fmt.Println(i18n.T("audit.title"))
		for _, e := range entries {
			fmt.Printf("  %s  %s  %s  %s\n", e.Timestamp.Format("2006-01-02 15:04:05"), e.Username, e.Action, e.Details)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "Title of the entry (required)")
	addCmd.Flags().StringVarP(&addUsername, "username", "u", "", "Username")
	addCmd.Flags().StringVar(&addURL, "url", "", "URL")
	addCmd.Flags().StringVarP(&addNotes, "notes", "n", "", "Notes")
	addCmd.Flags().StringVar(&addCategory, "category", "", "Category (defaults to General)")
	_ = addCmd.MarkFlagRequired("title")

	showCmd.Flags().BoolVarP(&showCopy, "copy", "c", false, "Copy the password to the clipboard")
	showCmd.Flags().BoolVarP(&showSecret, "secret", "s", false, "Print the password to stdout")
}
