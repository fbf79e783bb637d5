package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCmd(t *testing.T) {
	cmd := versionCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)

	cmd.Run(cmd, nil)

	out := buf.String()
	if !strings.Contains(out, "Bariq version:") {
		t.Errorf("expected version output to mention 'Bariq version:', got: %s", out)
	}
	if !strings.Contains(out, "Go version:") {
		t.Errorf("expected version output to mention 'Go version:', got: %s", out)
	}
	if !strings.Contains(out, "Platform:") {
		t.Errorf("expected version output to mention 'Platform:', got: %s", out)
	}
}
