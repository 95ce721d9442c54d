package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadOptionsDefaultsAndOverrides(t *testing.T) {
	dir := t.TempDir()
	host := filepath.Join(dir, "host.toml")
	if err := os.WriteFile(host, []byte(`
version = "1.16"
[packet_ids]
team = 0x4D
`), 0o644); err != nil {
		t.Fatalf("write host config: %v", err)
	}
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`
host_config = "host.toml"
clients = 3
entities = ["a", "b"]
metrics_addr = " 127.0.0.1:9108 "
`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	opts, err := loadOptions(path)
	if err != nil {
		t.Fatalf("load options: %v", err)
	}
	if opts.Host.Version != "1.16" {
		t.Fatalf("unexpected version: %q", opts.Host.Version)
	}
	if opts.Host.PacketIDs["team"] != 0x4D {
		t.Fatalf("host packet ids not loaded: %v", opts.Host.PacketIDs)
	}
	if opts.Clients != 3 {
		t.Fatalf("unexpected clients: %d", opts.Clients)
	}
	if diff := cmp.Diff([]string{"a", "b"}, opts.Entities); diff != "" {
		t.Fatalf("entities (-want +got):\n%s", diff)
	}
	if opts.Title != defaultOptions().Title {
		t.Fatalf("title should keep its default, got %q", opts.Title)
	}
	if opts.MetricsAddr != "127.0.0.1:9108" {
		t.Fatalf("unexpected metrics addr: %q", opts.MetricsAddr)
	}
}

func TestLoadOptionsEmptyPathUsesDefaults(t *testing.T) {
	opts, err := loadOptions("")
	if err != nil {
		t.Fatalf("load options: %v", err)
	}
	if diff := cmp.Diff(defaultOptions(), opts); diff != "" {
		t.Fatalf("options (-want +got):\n%s", diff)
	}
}

func TestLoadOptionsRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"zero clients":  "clients = 0\n",
		"no entities":   "entities = []\n",
		"bad version":   "version = \"1.8\"\n",
		"missing host":  "host_config = \"nope.toml\"\n",
		"blank entity":  "entities = [\"a\", \" \"]\n",
		"not toml file": "clients = = 1\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, err := loadOptions(path); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestBundledConfigLoads(t *testing.T) {
	if _, err := loadOptions("config.toml"); err != nil {
		t.Fatalf("bundled config: %v", err)
	}
}
