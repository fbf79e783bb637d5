package cmd

import (
	"testing"

	"github.com/bariqpay/bariq-cli/client"
	"github.com/bariqpay/bariq-cli/session"
)

// testApp builds an app with a memory-only store and no live backend,
// enough to construct the command tree.
func testApp() *app {
	store := session.NewStore(nil)
	api := client.New("http://localhost:0", store, nil)
	return &app{api: api, store: store}
}

// TestCreateRootCmd checks that createRootCmd returns a root command
// with the expected use string, subcommands, and a replaced help command.
func TestCreateRootCmd(t *testing.T) {
	rootCmd := createRootCmd(testApp())
	if rootCmd.Use != "bariq" {
		t.Errorf("expected root command use to be 'bariq', got: %s", rootCmd.Use)
	}

	subCommands := rootCmd.Commands()
	if len(subCommands) == 0 {
		t.Error("expected root command to have subcommands, got none")
	}

	expected := map[string]bool{
		"login":    false,
		"logout":   false,
		"whoami":   false,
		"customer": false,
		"merchant": false,
		"admin":    false,
		"public":   false,
		"version":  false,
	}
	for _, cmd := range subCommands {
		if cmd.Use == "help" {
			t.Error("expected help command to be replaced, but found a subcommand with use 'help'")
		}
		if _, ok := expected[cmd.Name()]; ok {
			expected[cmd.Name()] = true
		}
	}
	for name, found := range expected {
		if !found {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}

func TestLoginCmdHasRoleSubcommands(t *testing.T) {
	login := loginCmd(testApp())
	roles := map[string]bool{"customer": false, "merchant": false, "admin": false}
	for _, sub := range login.Commands() {
		if _, ok := roles[sub.Name()]; ok {
			roles[sub.Name()] = true
		}
	}
	for role, found := range roles {
		if !found {
			t.Errorf("expected login subcommand for role %q", role)
		}
	}
}
