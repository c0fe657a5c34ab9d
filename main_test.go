package main

import (
	"testing"

	"github.com/go-i2p/credstore/cmd"
)

// TestExecute_Help verifies that the root command runs without panicking when
// --help is requested. This is a smoke test for the cobra wiring in main().
func TestExecute_Help(t *testing.T) {
	if err := cmd.ExecuteWithArgs([]string{"--help"}); err != nil {
		t.Errorf("ExecuteWithArgs(--help) returned error: %v", err)
	}
}

// TestStoreCmd_FlagNames verifies that the store sub-command exposes the
// flags the CLI's credential-building helpers read.
func TestStoreCmd_FlagNames(t *testing.T) {
	for _, flag := range []string{"alias", "type", "algorithm", "params", "token", "clearpassword", "secrethex"} {
		if f := cmd.LookupFlag("store", flag); f == nil {
			t.Errorf("store --%s is not registered", flag)
		}
	}
}

// TestRootPersistentFlags verifies every subcommand inherits the store's
// location/protection flags from the root command.
func TestRootPersistentFlags(t *testing.T) {
	for _, flag := range []string{"location", "modifiable", "create", "keystoretype", "password"} {
		if f := cmd.LookupFlag("", flag); f == nil {
			t.Errorf("persistent --%s is not registered", flag)
		}
	}
}
