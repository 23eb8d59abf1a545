package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

var wantCfg = Config{
	Syslog:      true,
	DebugLevel:  2,
	EventPipe:   "fd:3",
	LogLevel:    "debug",
	Addr:        ":9999",
	CORSOrigins: []string{"http://localhost:5173"},
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "pkg.yaml", "syslog: true\ndebug_level: 2\nevent_pipe: fd:3\nlog_level: debug\naddr: :9999\ncors_origins: [\"http://localhost:5173\"]\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(wantCfg, cfg); diff != "" {
		t.Fatalf("cfg mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "pkg.json", `{"syslog":true,"debug_level":2,"event_pipe":"fd:3","log_level":"debug","addr":":9999","cors_origins":["http://localhost:5173"]}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(wantCfg, cfg); diff != "" {
		t.Fatalf("cfg mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "pkg.toml", "syslog=true\ndebug_level=2\nevent_pipe=\"fd:3\"\nlog_level=\"debug\"\naddr=\":9999\"\ncors_origins=[\"http://localhost:5173\"]\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(wantCfg, cfg); diff != "" {
		t.Fatalf("cfg mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "pkg.conf", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
}

func TestDefaults(t *testing.T) {
	got := Config{}.Defaults()
	if got.LogLevel != "info" || got.Addr != ":8080" {
		t.Fatalf("defaults = %+v", got)
	}
	kept := Config{LogLevel: "warn", Addr: ":1"}.Defaults()
	if kept.LogLevel != "warn" || kept.Addr != ":1" {
		t.Fatalf("defaults overrode set fields: %+v", kept)
	}
}
