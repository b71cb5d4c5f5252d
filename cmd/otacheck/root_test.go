// ABOUTME: Tests for root command wiring and command registration
// ABOUTME: Verifies every subcommand is attached with usage metadata

package main

import (
	"testing"
)

func TestRootCommandMetadata(t *testing.T) {
	if rootCmd.Use != "otacheck" {
		t.Errorf("expected Use to be 'otacheck', got %q", rootCmd.Use)
	}
	if rootCmd.Short == "" {
		t.Error("expected root command to have a short description")
	}
}

func TestAllCommandsRegistered(t *testing.T) {
	expected := []string{
		"update", "status", "news", "read", "markread", "markunread",
		"devices", "methods", "select", "resync", "notify", "mcp", "version",
	}

	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range expected {
		if !registered[name] {
			t.Errorf("expected command %q to be registered", name)
		}
	}
}

func TestCommandsHaveShortDescriptions(t *testing.T) {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Short == "" {
			t.Errorf("command %q has no short description", cmd.Name())
		}
	}
}
