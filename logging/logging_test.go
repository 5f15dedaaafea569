package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestJSONToStdout(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Format: "json", Stdout: &buf})
	if err != nil {
		t.Fatal(err)
	}
	l.Info("generated", "branches", 42)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected JSON record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "generated" || rec["branches"] != float64(42) {
		t.Errorf("unexpected record %v", rec)
	}
}

func TestFanoutToFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "run.log")
	l, err := New(Options{Format: "text", File: path, Stdout: &buf})
	if err != nil {
		t.Fatal(err)
	}
	l.Warn("pruned", "count", 3)
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for name, out := range map[string]string{"stdout": buf.String(), "file": string(data)} {
		if !strings.Contains(out, "msg=pruned") || !strings.Contains(out, "count=3") {
			t.Errorf("%s missing record: %q", name, out)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Format: "text", Level: "warn", Stdout: &buf})
	if err != nil {
		t.Fatal(err)
	}
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn, got %q", buf.String())
	}

	l.Level.Set(slog.LevelDebug)
	l.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Error("expected debug record after lowering the level")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"DEBUG": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Error("expected error for unknown format")
	}
}
