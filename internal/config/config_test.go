package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("parse(embedded) failed: %v", err)
	}

	def := Default()
	if cfg.Balance != def.Balance || cfg.Bet != def.Bet || cfg.Timing != def.Timing {
		t.Errorf("embedded config %+v differs from Default() %+v", cfg, def)
	}
	if len(cfg.Levels) != len(def.Levels) {
		t.Fatalf("embedded has %d levels, Default() has %d", len(cfg.Levels), len(def.Levels))
	}
	for i := range cfg.Levels {
		if cfg.Levels[i] != def.Levels[i] {
			t.Errorf("level %d: embedded %+v, default %+v", i+1, cfg.Levels[i], def.Levels[i])
		}
	}
}

func TestLoadCustomPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	data := "balance:\n  starting: 500\ntiming:\n  notice: 2s\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Balance.Starting != 500 {
		t.Errorf("Balance.Starting = %d, want 500", cfg.Balance.Starting)
	}
	if cfg.Balance.ResetTo != 100 {
		t.Errorf("Balance.ResetTo = %d, want default 100", cfg.Balance.ResetTo)
	}
	if cfg.Timing.Notice != 2*time.Second {
		t.Errorf("Timing.Notice = %s, want 2s", cfg.Timing.Notice)
	}
	if cfg.Timing.SafeReveal != 40*time.Millisecond {
		t.Errorf("Timing.SafeReveal = %s, want default 40ms", cfg.Timing.SafeReveal)
	}
	if len(cfg.Levels) != 8 {
		t.Errorf("Levels = %d, want default 8", len(cfg.Levels))
	}
}

func TestLoadCustomErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom path should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	data := "levels:\n  - hazards: 5\n    multiplier: 1.0\n"
	if err := os.WriteFile(bad, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(bad)
	if err == nil || !strings.Contains(err.Error(), "failed to parse config") {
		t.Errorf("Load() invalid table error = %v, want parse failure", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative balance", func(c *Config) { c.Balance.Starting = -1 }},
		{"zero max bet", func(c *Config) { c.Bet.Max = 0 }},
		{"default above max", func(c *Config) { c.Bet.Default = 2000 }},
		{"zero notice", func(c *Config) { c.Timing.Notice = 0 }},
		{"all dead level", func(c *Config) { c.Levels[3].Hazards = 5 }},
		{"seven levels", func(c *Config) { c.Levels = c.Levels[:7] }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandHome("~/.safeordead/rounds.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if want := filepath.Join(home, ".safeordead", "rounds.db"); got != want {
		t.Errorf("ExpandHome() = %q, want %q", got, want)
	}

	if got, _ := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("ExpandHome() changed an absolute path: %q", got)
	}
}

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() failed: %v", err)
	}
	if cfg.Address != ":23235" {
		t.Errorf("Address = %q, want :23235", cfg.Address)
	}
	if cfg.IdleTimeout != 30*time.Minute {
		t.Errorf("IdleTimeout = %s, want 30m", cfg.IdleTimeout)
	}
}

func TestLoadServerEnv(t *testing.T) {
	t.Setenv("SAFEORDEAD_SSH_ADDR", ":2222")
	t.Setenv("SAFEORDEAD_IDLE_TIMEOUT", "5m")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() failed: %v", err)
	}
	if cfg.Address != ":2222" || cfg.IdleTimeout != 5*time.Minute {
		t.Errorf("LoadServer() = %+v, want env overrides", cfg)
	}

	t.Setenv("SAFEORDEAD_TICK_RATE", "fast")
	if _, err := LoadServer(); err == nil {
		t.Error("LoadServer() with a bad tick rate should fail")
	}
}
