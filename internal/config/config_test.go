package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const fullYAML = `
project: orion_fsw

database:
  driver: mysql
  host: 10.0.0.5
  port: 3307
  database: orion_sched

export:
  dir: ./out
  prefix: sch

serve:
  addr: :9000
  refresh: "*/5 * * * *"
`

const minimalYAML = `
project: demo_sat
`

func TestParse_FullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Project != "orion_fsw" {
		t.Errorf("Project = %q, want %q", cfg.Project, "orion_fsw")
	}
	if cfg.Database.Driver != "mysql" {
		t.Errorf("Database.Driver = %q, want mysql", cfg.Database.Driver)
	}
	if cfg.Database.Host != "10.0.0.5" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "10.0.0.5")
	}
	if cfg.Database.Port != 3307 {
		t.Errorf("Database.Port = %d, want %d", cfg.Database.Port, 3307)
	}
	if cfg.Database.Database != "orion_sched" {
		t.Errorf("Database.Database = %q, want %q", cfg.Database.Database, "orion_sched")
	}
	if cfg.Export.Dir != "./out" {
		t.Errorf("Export.Dir = %q, want ./out", cfg.Export.Dir)
	}
	if cfg.Serve.Addr != ":9000" {
		t.Errorf("Serve.Addr = %q, want :9000", cfg.Serve.Addr)
	}
	if cfg.Serve.Refresh != "*/5 * * * *" {
		t.Errorf("Serve.Refresh = %q, want */5 * * * *", cfg.Serve.Refresh)
	}
}

func TestParse_MinimalDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Database.Path != "schedtab.db" {
		t.Errorf("Database.Path = %q, want schedtab.db", cfg.Database.Path)
	}
	if cfg.Database.Database != "schedtab_demo_sat" {
		t.Errorf("Database.Database = %q, want schedtab_demo_sat", cfg.Database.Database)
	}
	if cfg.Export.Dir != "." || cfg.Export.Prefix != "sch" {
		t.Errorf("Export = %+v, want dir . prefix sch", cfg.Export)
	}
	if cfg.Serve.Addr != ":8472" {
		t.Errorf("Serve.Addr = %q, want :8472", cfg.Serve.Addr)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"missing project", "export: {dir: ./out}", "project is required"},
		{"bad driver", "project: x\ndatabase: {driver: postgres}", "sqlite or mysql"},
		{"not yaml", ":\n  - {", "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schedtab.yaml")
	if err := os.WriteFile(path, []byte(minimalYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Project != "demo_sat" {
		t.Errorf("Project = %q, want demo_sat", cfg.Project)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file: expected error, got nil")
	}
}
