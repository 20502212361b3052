package main

import (
	"strings"
	"testing"
)

func TestVersionCmdPrintsVersion(t *testing.T) {
	out := captureStdout(t, func() {
		versionCmd.Run(versionCmd, nil)
	})
	if !strings.Contains(out, version) {
		t.Errorf("output %q does not contain version %q", out, version)
	}
}
