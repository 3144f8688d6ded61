package commands

import (
	"bytes"
	"strings"
	"testing"
)

func assertContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Errorf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestRootCommand_Help(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--help"})

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("root --help returned error: %v", err)
	}

	output := buf.String()
	assertContains(t, output, "rtk")
	assertContains(t, output, "condenses")
}

func TestVersionCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"version"})

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("version command returned error: %v", err)
	}
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := map[string]bool{
		"git":     false,
		"ls":      false,
		"test":    false,
		"pytest":  false,
		"err":     false,
		"lint":    false,
		"log":     false,
		"docker":  false,
		"kubectl": false,
		"read":    false,
		"find":    false,
		"smart":   false,
		"gain":    false,
		"config":  false,
		"init":    false,
		"version": false,
	}

	for _, cmd := range rootCmd.Commands() {
		if _, ok := expected[cmd.Name()]; ok {
			expected[cmd.Name()] = true
		}
	}

	for name, found := range expected {
		if !found {
			t.Errorf("expected subcommand %q to be registered, but it was not", name)
		}
	}
}

func TestRootCommand_GlobalFlags(t *testing.T) {
	flags := []string{"verbose", "no-track", "tee"}

	for _, name := range flags {
		flag := rootCmd.PersistentFlags().Lookup(name)
		if flag == nil {
			t.Errorf("expected global flag --%s to be registered", name)
		}
	}
}

func TestGitCommand_HasSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() != "git" {
			continue
		}
		for _, sub := range cmd.Commands() {
			names[sub.Name()] = true
		}
	}
	if len(names) == 0 {
		t.Fatal("git subcommand not registered")
	}
	for _, want := range []string{"status", "log", "diff", "commit", "add", "push", "pull"} {
		if !names[want] {
			t.Errorf("expected git subcommand %q", want)
		}
	}
}
