package cli

import "testing"

func TestRootCmd_Use(t *testing.T) {
	if rootCmd.Use != "drupkit" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "drupkit")
	}
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	want := []string{
		"sync", "generate", "modules", "project",
		"roles", "story", "report", "drush", "version",
	}
	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("%s should be registered as a subcommand of root", name)
		}
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"verbose", "no-color"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("root command should have persistent --%s flag", name)
		}
	}
}

func TestRootCmd_HasVersion(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("rootCmd.Version should not be empty")
	}
}
