package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/sbcontrol/internal/logging"
	"github.com/danmuck/sbcontrol/internal/protocol"
	"github.com/danmuck/sbcontrol/internal/testutil/testlog"
	"github.com/rs/zerolog"
)

func TestPrintVersionsListsFeatures(t *testing.T) {
	var out bytes.Buffer
	if err := printVersions(&out); err != nil {
		t.Fatalf("print versions: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != len(protocol.Versions()) {
		t.Fatalf("expected %d lines, got %q", len(protocol.Versions()), out.String())
	}
	if !strings.HasPrefix(lines[0], "1.12") || strings.Contains(lines[0], "chat-components") {
		t.Fatalf("unexpected 1.12 line: %q", lines[0])
	}
	last := lines[len(lines)-1]
	if !strings.HasPrefix(last, "1.20.3") || !strings.Contains(last, "nbt-components") {
		t.Fatalf("unexpected 1.20.3 line: %q", last)
	}
}

func TestRunDemoEveryVersion(t *testing.T) {
	for _, v := range protocol.Versions() {
		t.Run(v.String(), func(t *testing.T) {
			opts := defaultOptions()
			opts.Host.Version = v.String()
			var out bytes.Buffer
			if err := runDemo(opts, &out, testlog.Logger(t)); err != nil {
				t.Fatalf("run demo: %v", err)
			}
			text := out.String()
			for _, kind := range []string{"display_objective", "objective", "team", "score"} {
				if !strings.Contains(text, kind) {
					t.Fatalf("demo output has no %s packet:\n%s", kind, text)
				}
			}
		})
	}
}

func TestRunDemoAppliesHostLogLevel(t *testing.T) {
	t.Setenv(logging.EnvLogLevel, "")
	for level, wantInfo := range map[string]bool{"info": true, "error": false} {
		t.Run(level, func(t *testing.T) {
			opts := defaultOptions()
			opts.Host.App = "arena"
			opts.Host.LogLevel = level
			var logs bytes.Buffer
			if err := runDemo(opts, &bytes.Buffer{}, zerolog.New(&logs)); err != nil {
				t.Fatalf("run demo: %v", err)
			}
			got := strings.Contains(logs.String(), "scoreboard controller ready")
			if got != wantInfo {
				t.Fatalf("log_level %s: info logged = %v\n%s", level, got, logs.String())
			}
			if wantInfo && !strings.Contains(logs.String(), `"host":"arena"`) {
				t.Fatalf("logs not tagged with host app:\n%s", logs.String())
			}
		})
	}
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp(testlog.Logger(t))
	var out bytes.Buffer
	app.Writer = &out
	err := app.Run(append([]string{"sbctl"}, args...))
	return out.String(), err
}

func TestConfigInitThenValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sbcontrol.toml")

	if _, err := runApp(t, "config", "init", "--output", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("template not written: %v", err)
	}
	if _, err := runApp(t, "config", "init", "--output", path); err == nil {
		t.Fatalf("expected init to refuse overwrite")
	}
	out, err := runApp(t, "config", "validate", path)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if !strings.Contains(out, "validated") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestDemoCommandVersionFlag(t *testing.T) {
	out, err := runApp(t, "demo", "--version", "1.12")
	if err != nil {
		t.Fatalf("demo: %v", err)
	}
	if strings.Contains(out, "reset_score") {
		t.Fatalf("1.12 demo emitted reset_score packets")
	}
	if _, err := runApp(t, "demo", "--version", "0.9"); err == nil {
		t.Fatalf("expected unknown version to fail")
	}
}
