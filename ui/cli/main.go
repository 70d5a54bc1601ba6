// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the command-line interface for the vault using the Cobra
// library. It defines the root command, subcommands (generate, add, list,
// backup and friends), flags, and the shared startup path that loads the
// configuration and opens the database.

package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/config"
	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/db"
	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/i18n"
	"github.com/khalidsakrjoker/Elsakr-Password-Vault/internal/logging"
)

var version = "dev" // set by the linker

var (
	cfgFile string
	verbose bool
)

var appConfig config.Config

// setupDefaultServices loads the configuration, initializes i18n, and opens
// the database. It runs before every command that needs the vault.
func setupDefaultServices(cmd *cobra.Command, args []string) error {
	configPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}

	appConfig, err = config.LoadConfig(cmd, configPath)
	if err != nil {
		// A missing config file is expected on first run; write a default one
		// so subsequent runs have a persisted file to inspect.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if writeErr := config.WriteConfigFile(&appConfig, false); writeErr != nil {
				log.Warnf("could not write default config file: %v", writeErr)
			}
		} else {
			return fmt.Errorf("error loading config: %w", err)
		}
	}

	// Guard against empty values in a hand-edited config file.
	defaults := config.Defaults()
	if appConfig.Database.Type == "" {
		appConfig.Database.Type = defaults["database.type"].(string)
	}
	if appConfig.Database.DSN == "" {
		appConfig.Database.DSN = defaults["database.dsn"].(string)
	}
	if appConfig.Language == "" {
		appConfig.Language = defaults["language"].(string)
	}

	if verbose || appConfig.Debug {
		logging.SetDebug(true)
		db.SetDebug(true)
	}

	i18n.Init(appConfig.Language)

	if !db.IsInitialized() {
		if err := db.InitDB(appConfig.Database.Type, appConfig.Database.DSN); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	return nil
}

// getConfigPathFromCli returns the --config flag value if the user set it.
func getConfigPathFromCli(cmd *cobra.Command) (string, error) {
	if !cmd.Flags().Changed("config") {
		return "", nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return "", fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return "", nil
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return path, nil
}

// applyDefaultFlags defines the database selection flags on a command.
// pflag panics on duplicate definitions, so check first; NewRootCmd may be
// called multiple times in tests while the subcommands are package-level.
func applyDefaultFlags(cmd *cobra.Command) {
	if cmd.Flags().Lookup("database.type") == nil {
		cmd.Flags().String("database.type", "sqlite", "Database type (sqlite, postgres, mysql)")
	}
	if cmd.Flags().Lookup("database.dsn") == nil {
		cmd.Flags().String("database.dsn", "./vault.db", "Database connection string (DSN)")
	}
}

// NewRootCmd creates and configures a new root cobra command. Used for the
// real entrypoint as well as fresh instances in tests.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "elsakr-vault",
		Short: "Elsakr Vault is a local encrypted password manager.",
		Long: `Elsakr Vault stores credentials in a local database, encrypted per
field with a key derived from your master password. It also generates
strong passwords and passphrases and rates the strength of existing ones.

Running without a subcommand prints this help.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.Version = resolveBuildVersion()

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (debug logging)")
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	cmd.PersistentFlags().String("language", "en", `output language ("en", "de")`)
	applyDefaultFlags(cmd)

	applyDefaultFlags(addCmd)
	applyDefaultFlags(listCmd)
	applyDefaultFlags(showCmd)
	applyDefaultFlags(deleteCmd)
	applyDefaultFlags(categoriesCmd)
	applyDefaultFlags(auditLogCmd)
	applyDefaultFlags(backupCmd)
	applyDefaultFlags(restoreCmd)
	applyDefaultFlags(dbMaintainCmd)
	applyDefaultFlags(generateCmd) // --save stores the generated password

	cmd.AddCommand(
		generateCmd,
		passphraseCmd,
		analyzeCmd,
		addCmd,
		listCmd,
		showCmd,
		deleteCmd,
		categoriesCmd,
		auditLogCmd,
		backupCmd,
		restoreCmd,
		dbMaintainCmd,
	)

	return cmd
}

// Execute runs the CLI entrypoint. The root main package calls this and
// handles process exit.
func Execute() error {
	rootCmd := NewRootCmd()
	return rootCmd.Execute()
}

// resolveBuildVersion computes the best-available version string for the
// running binary, preferring linker-set values over module build info.
func resolveBuildVersion() string {
	resolved := version
	if info, ok := debug.ReadBuildInfo(); ok {
		if resolved == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolved = info.Main.Version
		}
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 8 {
				resolved = resolved + " (" + s.Value[:8] + ")"
				break
			}
		}
	}
	return resolved
}
