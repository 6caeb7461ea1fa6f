package main

import (
	"testing"
)

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "riskscan" {
			t.Errorf("expected use 'riskscan', got %q", cmd.Use)
		}
	})

	t.Run("has descriptions and version", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" || cmd.Long == "" {
			t.Error("expected non-empty descriptions")
		}
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has global flags", func(t *testing.T) {
		t.Parallel()

		testCases := []struct {
			name      string
			shorthand string
			defValue  string
		}{
			{"backend", "b", ""},
			{"config", "c", ""},
			{"proxy", "", ""},
			{"timeout", "", "1m0s"},
			{"interval", "", "10s"},
			{"no-journal", "", "false"},
			{"verbose", "v", "false"},
		}

		for _, tc := range testCases {
			flag := cmd.PersistentFlags().Lookup(tc.name)
			if flag == nil {
				t.Errorf("expected %s flag", tc.name)
				continue
			}
			if flag.Shorthand != tc.shorthand {
				t.Errorf("%s: expected shorthand %q, got %q", tc.name, tc.shorthand, flag.Shorthand)
			}
			if flag.DefValue != tc.defValue {
				t.Errorf("%s: expected default %q, got %q", tc.name, tc.defValue, flag.DefValue)
			}
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()

		want := map[string]bool{
			"screenshot": false, "text": false, "website": false,
			"history": false, "stats": false, "watch": false,
			"journal": false, "init": false, "version": false,
		}
		for _, sub := range cmd.Commands() {
			if _, ok := want[sub.Name()]; ok {
				want[sub.Name()] = true
			}
		}
		for name, found := range want {
			if !found {
				t.Errorf("expected %s subcommand", name)
			}
		}
	})

	t.Run("silences usage and errors", func(t *testing.T) {
		t.Parallel()
		if !cmd.SilenceUsage {
			t.Error("expected SilenceUsage to be true")
		}
		if !cmd.SilenceErrors {
			t.Error("expected SilenceErrors to be true")
		}
	})
}
