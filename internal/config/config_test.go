package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "nope.toml"), nil)
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("missing config file should yield Default(), got %+v", cfg)
	}
}

func TestLoadOverridesOnlySetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`border_width = 3`+"\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := Load(path, nil)
	if cfg.BorderWidth != 3 {
		t.Fatalf("expected overridden border_width=3, got %d", cfg.BorderWidth)
	}
	if cfg.TitlebarHeight != Default().TitlebarHeight {
		t.Fatalf("unset fields should keep their default value, got %d", cfg.TitlebarHeight)
	}
}

func TestLoadInvalidTomlFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("not = [valid toml"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := Load(path, nil)
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("invalid toml should fall back to Default(), got %+v", cfg)
	}
}

func TestPathPrefersExplicitOverride(t *testing.T) {
	if got := Path("/explicit/path.toml"); got != "/explicit/path.toml" {
		t.Fatalf("explicit override not honored: %q", got)
	}
}

func TestPathFallsBackToHomeConfigWhenXDGUnset(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/tester")

	got := Path("")
	want := filepath.Join("/home/tester", ".config", "pekwm", "config.toml")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
