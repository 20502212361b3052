package main

import (
	"log/slog"
	"testing"
)

func TestPersistentPreRunSetsLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"bogus": slog.LevelInfo,
	}
	for raw, want := range cases {
		logLevel = raw
		rootCmd.PersistentPreRun(rootCmd, nil)
		if !logger.Enabled(nil, want) {
			t.Errorf("log level %q: logger not enabled at %v", raw, want)
		}
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"process", "serve", "status", "stages", "version"} {
		if !names[want] {
			t.Errorf("rootCmd missing subcommand %q", want)
		}
	}
}
