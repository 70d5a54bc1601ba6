// Copyright (c) 2025 Khalid Sakr
// Elsakr Password Vault - local encrypted credential manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for the Elsakr Password Vault.
//
// Usage:
//
//	go run . [flags]
//	./elsakr-vault [flags]
//
// This launches the vault CLI. See --help for options.
package main

import (
	"os"

	"github.com/khalidsakrjoker/Elsakr-Password-Vault/ui/cli"
)

// main is the entrypoint for the vault CLI.
func main() {
	if err := cli.Execute(); err != nil {
		// The error is already printed by Cobra on failure.
		os.Exit(1)
	}
}
