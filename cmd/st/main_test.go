package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestConfig creates a config pointing at a sqlite file in a temp
// dir and returns the config path.
func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "schedtab.yaml")
	content := fmt.Sprintf(`
project: test_sat
database:
  driver: sqlite
  path: %s
export:
  dir: %s
`, filepath.Join(dir, "test.db"), filepath.Join(dir, "out"))
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath
}

// run executes the CLI with the given args and returns its combined
// output, failing the test on error unless wantErr is set.
func run(t *testing.T, wantErr bool, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if wantErr && err == nil {
		t.Fatalf("st %s: expected error, got none (output %s)", strings.Join(args, " "), buf.String())
	}
	if !wantErr && err != nil {
		t.Fatalf("st %s: %v (output %s)", strings.Join(args, " "), err, buf.String())
	}
	return buf.String()
}

// initProject creates a migrated project database and returns the config
// path.
func initProject(t *testing.T) string {
	t.Helper()
	cfgPath := writeTestConfig(t)
	run(t, false, "db", "init", "-c", cfgPath)
	return cfgPath
}

func TestVersion(t *testing.T) {
	out := run(t, false, "version")
	if !strings.Contains(out, "st dev") {
		t.Errorf("version output = %q", out)
	}
}

func TestDBInit(t *testing.T) {
	cfgPath := writeTestConfig(t)
	out := run(t, false, "db", "init", "-c", cfgPath)
	if !strings.Contains(out, "Initialized project database for test_sat") {
		t.Errorf("output = %q", out)
	}

	// init is idempotent.
	run(t, false, "db", "init", "-c", cfgPath)
	run(t, false, "db", "migrate", "-c", cfgPath)
}

func TestParamsShowAndSet(t *testing.T) {
	cfgPath := initProject(t)

	out := run(t, false, "params", "show", "-c", cfgPath)
	if !strings.Contains(out, "Time slots:              128") {
		t.Errorf("defaults not shown: %q", out)
	}

	run(t, false, "params", "set", "-c", cfgPath, "--slots", "16", "--per-second", "4")
	out = run(t, false, "params", "show", "-c", cfgPath)
	if !strings.Contains(out, "Time slots:              16") {
		t.Errorf("updated slots not shown: %q", out)
	}
	if !strings.Contains(out, "Max messages per second: 4") {
		t.Errorf("updated rate not shown: %q", out)
	}

	// The commit path rejects non-positive values.
	run(t, true, "params", "set", "-c", cfgPath, "--slots", "0")
}

func TestReserveLifecycle(t *testing.T) {
	cfgPath := initProject(t)

	out := run(t, false, "reserve", "add", "-c", cfgPath, "0x10 - 0x1F", "--description", "telemetry")
	if !strings.Contains(out, "Reserved 1, skipped 0") {
		t.Errorf("add output = %q", out)
	}

	// Overlapping candidate is silently skipped.
	out = run(t, false, "reserve", "add", "-c", cfgPath, "0x18")
	if !strings.Contains(out, "Reserved 0, skipped 1") {
		t.Errorf("overlap output = %q", out)
	}

	run(t, true, "reserve", "check", "-c", cfgPath, "0x15")
	out = run(t, false, "reserve", "check", "-c", cfgPath, "0x40")
	if !strings.Contains(out, "is free") {
		t.Errorf("check output = %q", out)
	}

	out = run(t, false, "reserve", "list", "-c", cfgPath)
	if !strings.Contains(out, "16 - 31") || !strings.Contains(out, "telemetry") {
		t.Errorf("list output = %q", out)
	}

	out = run(t, false, "reserve", "expand", "-c", cfgPath)
	if !strings.Contains(out, "0x0010") || !strings.Contains(out, "0x001F") {
		t.Errorf("expand output = %q", out)
	}

	run(t, true, "reserve", "add", "-c", cfgPath, "not-an-id")
}

func TestAppsLifecycle(t *testing.T) {
	cfgPath := initProject(t)

	run(t, false, "apps", "add", "-c", cfgPath, "--name", "cfe_es", "--wakeup", "0x10", "--priority", "5", "--group", "CORE")
	run(t, false, "apps", "add", "-c", cfgPath, "--name", "hk", "--wakeup", "17", "--priority", "3", "--group", "CORE")

	// A different app claiming the same wake-up ID is rejected.
	run(t, true, "apps", "add", "-c", cfgPath, "--name", "alias", "--wakeup", "0x11")

	out := run(t, false, "apps", "list", "-c", cfgPath)
	if !strings.Contains(out, "cfe_es") || !strings.Contains(out, "0x0010") {
		t.Errorf("list output = %q", out)
	}

	out = run(t, false, "apps", "groups", "-c", cfgPath)
	if strings.Count(out, "CORE") != 1 {
		t.Errorf("groups output = %q, want CORE once", out)
	}

	run(t, false, "apps", "remove", "-c", cfgPath, "--name", "hk")
	run(t, true, "apps", "remove", "-c", cfgPath, "--name", "hk")
}

func TestSlotsCompileExport(t *testing.T) {
	cfgPath := initProject(t)

	run(t, false, "apps", "add", "-c", cfgPath, "--name", "a", "--wakeup", "2", "--priority", "1", "--group", "G1")
	run(t, false, "apps", "add", "-c", cfgPath, "--name", "b", "--wakeup", "5", "--priority", "5", "--group", "G1")
	run(t, false, "params", "set", "-c", cfgPath, "--slots", "8", "--slot-max", "2", "--per-second", "4", "--per-cycle", "4")

	run(t, true, "slots", "set", "-c", cfgPath, "0", "a,ghost")
	run(t, false, "slots", "set", "-c", cfgPath, "0", "a,b", "--name", "1hz")

	out := run(t, false, "slots", "list", "-c", cfgPath)
	if !strings.Contains(out, "1hz") || !strings.Contains(out, "a,b") {
		t.Errorf("slots list output = %q", out)
	}

	out = run(t, false, "compile", "-c", cfgPath)
	if !strings.Contains(out, "Compiled 1 schedule row(s) of 8 slots from 2 application(s)") {
		t.Errorf("compile output = %q", out)
	}

	out = run(t, false, "export", "-c", cfgPath, "--prefix", "sch")
	if strings.Count(out, "Wrote ") != 3 {
		t.Errorf("export output = %q, want 3 files", out)
	}

	// The schedule table places the higher-priority app first.
	var apptbl string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "_def_apptbl.c") {
			apptbl = strings.TrimPrefix(line, "Wrote ")
		}
	}
	data, err := os.ReadFile(apptbl)
	if err != nil {
		t.Fatalf("read %s: %v", apptbl, err)
	}
	text := string(data)
	if strings.Index(text, "B_WAKEUP_MID") > strings.Index(text, "A_WAKEUP_MID") {
		t.Errorf("priority ordering lost in export:\n%s", text)
	}
}

func TestMissingConfig(t *testing.T) {
	run(t, true, "params", "show", "-c", filepath.Join(t.TempDir(), "nope.yaml"))
}
