package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/rewind/ecs/component"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.TPS != 60 {
		t.Fatalf("expected 60 tps, got %d", cfg.TPS)
	}
	if cfg.SampleInterval() != cfg.Delta() {
		t.Fatalf("default sample interval should be one tick, got %v", cfg.SampleInterval())
	}
	if cfg.RestGravityScale != 10 {
		t.Fatalf("expected rest gravity scale 10, got %v", cfg.RestGravityScale)
	}
	if keys := cfg.Bindings.Keys(component.ActionMoveRight); len(keys) == 0 || keys[0] != "D" {
		t.Fatalf("expected D bound to move_right, got %v", keys)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rewind.yaml")
	data := []byte("tps: 30\nsample_period: 0.1\nbindings:\n  rewind_global: [\"Backspace\"]\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("REWIND_TPS", "120")
	t.Setenv("REWIND_BIND_REWIND_LOCAL", "Z,X")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TPS != 120 {
		t.Fatalf("env should override file tps, got %d", cfg.TPS)
	}
	if cfg.SamplePeriod != 0.1 {
		t.Fatalf("expected sample period from file, got %v", cfg.SamplePeriod)
	}
	if got := cfg.Bindings.RewindGlobal; len(got) != 1 || got[0] != "Backspace" {
		t.Fatalf("expected file binding, got %v", got)
	}
	if got := cfg.Bindings.RewindLocal; len(got) != 2 || got[0] != "Z" || got[1] != "X" {
		t.Fatalf("expected env binding, got %v", got)
	}
	if got := cfg.Bindings.MoveLeft; len(got) == 0 {
		t.Fatalf("unset bindings should keep defaults")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"ok", func(*Config) {}, nil},
		{"zero_tps", func(c *Config) { c.TPS = 0 }, ErrInvalidTPS},
		{"negative_period", func(c *Config) { c.SamplePeriod = -1 }, ErrInvalidSamplePeriod},
		{"unbound", func(c *Config) { c.Bindings.Jump = nil }, ErrUnboundAction},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Default()
			c.mutate(&cfg)
			err := cfg.Validate()
			if c.want == nil && err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if c.want != nil && !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
