package main

import (
	"context"
	"strings"
	"testing"
)

const testLog = `<5>httpd: GET /
[WARN] disk almost full
retries=3
noise
`

func TestParse_Builtin(t *testing.T) {
	path := writeFile(t, "app.log", testLog)
	out, _, err := execute(t, context.Background(), newParseCmd(), "", path)
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d events, want 2:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], `"type":"syslog"`) || !strings.Contains(lines[1], `"type":"bracket"`) {
		t.Errorf("unexpected events:\n%s", out)
	}
}

func TestParse_PatternsAndTypes(t *testing.T) {
	logPath := writeFile(t, "app.log", testLog)
	patPath := writeFile(t, "patterns.yaml", testPatterns)

	out, _, err := execute(t, context.Background(), newParseCmd(), "",
		"--patterns", patPath, "--types", "kv", "-o", "pretty", "--raw", logPath)
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	want := "* kv: key=retries value=3\n  raw: \"retries=3\"\n"
	if out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}
}

func TestParse_ExcludeTypes(t *testing.T) {
	path := writeFile(t, "app.log", testLog)
	out, _, err := execute(t, context.Background(), newParseCmd(), "",
		"--exclude-types", "syslog", path)
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	if strings.Contains(out, "syslog") || !strings.Contains(out, "bracket") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestParse_Errors(t *testing.T) {
	if _, _, err := execute(t, context.Background(), newParseCmd(), ""); err == nil {
		t.Error("expected error without files")
	}
	if _, _, err := execute(t, context.Background(), newParseCmd(), "", "/nonexistent/app.log"); err == nil {
		t.Error("expected error for missing file")
	}
	path := writeFile(t, "app.log", testLog)
	if _, _, err := execute(t, context.Background(), newParseCmd(), "", "--patterns", "/nonexistent.yaml", path); err == nil {
		t.Error("expected error for missing pattern file")
	}
}
