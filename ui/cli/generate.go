// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.
package cli

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/generator"
	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/i18n"
	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/model"
	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/strength"
)

var (
	genLength       int
	genNoUpper      bool
	genNoLower      bool
	genNoDigits     bool
	genNoSymbols    bool
	genNoAmbiguous  bool
	genExcludeChars string
	genCopy         bool
	genSaveTitle    string

	ppWords     int
	ppSeparator string

	analyzeBasic bool
)

// generateCmd creates a random password from the selected character classes
// and prints its strength rating alongside.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random password",
	Long:  `Generates a cryptographically random password. Character classes can be excluded individually; excluding all of them yields an empty result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		policy := generator.Policy{
			Length:           genLength,
			Upper:            !genNoUpper,
			Lower:            !genNoLower,
			Digits:           !genNoDigits,
			Symbols:          !genNoSymbols,
			ExcludeAmbiguous: genNoAmbiguous,
			ExcludeChars:     genExcludeChars,
		}
		password, err := generator.Generate(policy)
		if err != nil {
			return fmt.Errorf("failed to generate password: %w", err)
		}
		fmt.Println(password)

		if password != "" {
			printStrength(strength.New(true).Analyze(password))
		}

		if genCopy && password != "" {
			if err := clipboard.WriteAll(password); err != nil {
				log.Warnf("could not copy to clipboard: %v", err)
			} else {
				fmt.Println(i18n.T("generator.copied"))
			}
		}

		if genSaveTitle != "" && password != "" {
			if err := setupDefaultServices(cmd, args); err != nil {
				return err
			}
			session, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = session.Close() }()
			id, err := session.AddPassword(model.Credential{Title: genSaveTitle, Secret: password})
			if err != nil {
				return err
			}
			fmt.Printf(i18n.T("credential.added")+"\n", id)
		}
		return nil
	},
}

// passphraseCmd generates a word-based passphrase.
var passphraseCmd = &cobra.Command{
	Use:   "passphrase",
	Short: "Generate a random passphrase",
	RunE: func(cmd *cobra.Command, args []string) error {
		phrase, err := generator.GeneratePassphrase(ppWords, ppSeparator)
		if err != nil {
			return fmt.Errorf("failed to generate passphrase: %w", err)
		}
		fmt.Println(phrase)
		printStrength(strength.New(true).Analyze(phrase))
		return nil
	},
}

// analyzeCmd rates the strength of a password given as argument.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <password>",
	Short: "Rate the strength of a password",
	Long:  `Rates a password using pattern-based estimation. With --basic, only simple length and character class rules are applied.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		printStrength(strength.New(!analyzeBasic).Analyze(args[0]))
	},
}

func printStrength(res strength.Result) {
	fmt.Printf("%s: %s (%d/4)\n", i18n.T("strength.label"), res.Strength, res.Score)
	fmt.Printf("%s: %s\n", i18n.T("strength.crack_time"), res.CrackTime)
	if len(res.Feedback) > 0 {
		fmt.Println(i18n.T("strength.suggestions"))
		for _, s := range res.Feedback {
			fmt.Printf("  - %s\n", s)
		}
	}
}

func init() {
	generateCmd.Flags().IntVarP(&genLength, "length", "l", 16, "Password length")
	generateCmd.Flags().BoolVar(&genNoUpper, "no-upper", false, "Exclude uppercase letters")
	generateCmd.Flags().BoolVar(&genNoLower, "no-lower", false, "Exclude lowercase letters")
	generateCmd.Flags().BoolVar(&genNoDigits, "no-digits", false, "Exclude digits")
	generateCmd.Flags().BoolVar(&genNoSymbols, "no-symbols", false, "Exclude symbols")
	generateCmd.Flags().BoolVar(&genNoAmbiguous, "no-ambiguous", false, "Exclude ambiguous characters (0O1lI)")
	generateCmd.Flags().StringVar(&genExcludeChars, "exclude", "", "Additional characters to exclude")
	generateCmd.Flags().BoolVarP(&genCopy, "copy", "c", false, "Copy the result to the clipboard")
	generateCmd.Flags().StringVar(&genSaveTitle, "save", "", "Save the result in the vault under this title")

	passphraseCmd.Flags().IntVarP(&ppWords, "words", "w", 4, "Number of words")
	passphraseCmd.Flags().StringVarP(&ppSeparator, "separator", "s", "-", "Word separator")

	analyzeCmd.Flags().BoolVar(&analyzeBasic, "basic", false, "Use only basic length and character class rules")
}

// joinNonEmpty is a small helper for building one-line summaries.
func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
