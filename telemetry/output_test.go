package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/antfarm/config"
)

func TestNilOutputManager(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatal(err)
	}
	if om != nil {
		t.Fatal("empty dir should disable output")
	}

	// Every method must be a no-op on the nil receiver.
	if err := om.WriteAttempt(AttemptRecord{}); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" {
		t.Error("nil manager dir should be empty")
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestWriteAttemptHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	om.WriteAttempt(AttemptRecord{Batch: 1, Attempt: 1, Strategy: "sacred", Accepted: true})
	om.WriteAttempt(AttemptRecord{Batch: 1, Attempt: 2, Strategy: "pool", Accepted: false})
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "attempts.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 records:\n%s", len(lines), data)
	}
	if !strings.Contains(lines[0], "strategy") {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Contains(lines[1], "strategy") || strings.Contains(lines[2], "strategy") {
		t.Error("header repeated in data rows")
	}
}

func TestWriteConfig(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatal(err)
	}

	// The written file must round-trip through the loader.
	reloaded, err := config.Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Grid.Width != cfg.Grid.Width || reloaded.Pool.TargetSize != cfg.Pool.TargetSize {
		t.Error("reloaded config differs from the written one")
	}
}
