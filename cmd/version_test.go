package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	if !strings.HasPrefix(out.String(), "art-inventory dev\n") {
		t.Errorf("unexpected version output %q", out.String())
	}
	if !strings.Contains(out.String(), "Commit: unknown") {
		t.Errorf("expected commit line, got %q", out.String())
	}
}

func TestExportCommand_Flags(t *testing.T) {
	for _, name := range []string{"artwork", "edition", "include-price", "include-status", "include-location", "output", "batch-size", "json"} {
		if exportCmd.Flags().Lookup(name) == nil {
			t.Errorf("expected --%s flag", name)
		}
	}
}
