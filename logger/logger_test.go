package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInterceptAndFile(t *testing.T) {
	dir := t.TempDir()
	if err := Init(Config{Enabled: true, Level: "debug", File: "logs/test.log"}, dir); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer Close()

	var buf bytes.Buffer
	Intercept(&buf)
	Debug("draft submitted", "request", "r1")
	Restore()

	if !strings.Contains(buf.String(), "draft submitted") {
		t.Fatalf("intercepted output = %q, want record", buf.String())
	}
	data, err := os.ReadFile(filepath.Join(dir, "logs", "test.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "request=r1") {
		t.Fatalf("log file = %q, want request attr", string(data))
	}
}

func TestLevelFiltersAndJSON(t *testing.T) {
	if err := Init(Config{Enabled: true, Level: "warn", Format: "json"}, ""); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer Close()

	var buf bytes.Buffer
	Intercept(&buf)
	defer Restore()

	Info("hidden")
	Warn("shown", "k", "v")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record should be filtered: %q", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Fatalf("output = %q, want json record", out)
	}
}

func TestDisabledDiscards(t *testing.T) {
	if err := Init(Config{Enabled: false}, ""); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	var buf bytes.Buffer
	Intercept(&buf)
	defer Restore()
	Error("nothing")
	if buf.Len() != 0 {
		t.Fatalf("disabled logger wrote %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{"debug": "DEBUG", "WARNING": "WARN", "error": "ERROR", "": "INFO", "bogus": "INFO"}
	for in, want := range tests {
		if got := parseLevel(in).String(); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
