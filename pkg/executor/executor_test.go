package executor

import (
	"context"
	"os/exec"
	"strings"
	"testing"
)

func TestExecuteStdout(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	out, err := New().Execute(context.Background(), "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("stdout = %q, want hello", out)
	}
}

func TestExecuteIncludesStderr(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	_, err := New().Execute(context.Background(), "sh", "-c", "echo broken model >&2; exit 3")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "broken model") {
		t.Errorf("error %q does not carry stderr", err)
	}
}

func TestLastLines(t *testing.T) {
	got := lastLines("a\nb\nc\nd\n", 2)
	if got != "c\nd" {
		t.Errorf("lastLines = %q", got)
	}
	if lastLines("  \n", 3) != "" {
		t.Errorf("blank input should give empty string")
	}
}
