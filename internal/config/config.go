// Package config holds the ambient, whole-WM settings struct (spec.md §7
// "Config parse error" policy; the theme language, autoproperty rule-file
// grammar and keybinding-file grammar stay out of scope per spec.md §1 and
// are not modeled here). It is grounded on noisetorch-NoiseTorch's
// config.go: a plain struct decoded with github.com/BurntSushi/toml,
// generalized from NoiseTorch's single-file read/write pair to a
// load-with-fallback-on-failure policy, since spec.md §7 requires the WM
// keep running on a bad config rather than exit like NoiseTorch's
// log.Fatalf does.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

// FocusModel selects how FocusIn/pointer motion translates to WM focus
// changes (spec.md §4.2).
type FocusModel string

const (
	FocusSloppy   FocusModel = "sloppy"
	FocusFollow   FocusModel = "follow"
	FocusClick    FocusModel = "click"
	FocusNoFocus  FocusModel = "no-focus"
)

// Config is the set of ambient WM-wide knobs spec.md §4 components read
// (border width, titlebar height, gaps, workspace count, focus model,
// key-chain timeout, drag snap threshold, fullscreen-above-dock flag,
// focus-steal protect window).
type Config struct {
	BorderWidth    uint32 `toml:"border_width"`
	TitlebarHeight uint32 `toml:"titlebar_height"`
	GapSize        uint32 `toml:"gap_size"`

	WorkspaceCount int      `toml:"workspace_count"`
	WorkspaceNames []string `toml:"workspace_names"`

	Focus        FocusModel `toml:"focus_model"`
	ProtectMs    int64      `toml:"focus_protect_ms"`

	ChainTimeoutMs int64 `toml:"chain_timeout_ms"`
	SnapThreshold  int32 `toml:"snap_threshold"`

	// KeyboardMoveResizeStep is the per-keypress pixel delta the "Keyboard
	// move/resize" modal applies (spec.md §4.8 row 2).
	KeyboardMoveResizeStep int32 `toml:"keyboard_move_resize_step"`

	FullscreenAboveDock bool `toml:"fullscreen_above_dock"`

	SkipEnterOnWMFocus bool `toml:"skip_enter_on_wm_focus"`
}

// Default returns the built-in configuration used when no config file is
// present or the file fails to parse (spec.md §7 "fall back to last good
// config or built-in defaults; keep running").
func Default() Config {
	return Config{
		BorderWidth:         1,
		TitlebarHeight:      20,
		GapSize:             0,
		WorkspaceCount:      4,
		WorkspaceNames:      []string{"one", "two", "three", "four"},
		Focus:               FocusSloppy,
		ProtectMs:           1500,
		ChainTimeoutMs:      1000,
		SnapThreshold:       8,
		KeyboardMoveResizeStep: 10,
		FullscreenAboveDock: true,
		SkipEnterOnWMFocus:  true,
	}
}

// Path resolves the config file location: an explicit override (the
// --config flag), else $XDG_CONFIG_HOME/pekwm/config.toml, else
// $HOME/.config/pekwm/config.toml (spec.md §6 "Environment variables
// read: DISPLAY, HOME, XDG_CONFIG_HOME").
func Path(override string) string {
	if override != "" {
		return override
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, "pekwm", "config.toml")
}

// Load decodes path on top of Default(), so a partial file only overrides
// the fields it sets. A missing file is not an error: Default() is
// returned as-is. A present-but-unparseable file is logged and Default()
// is returned, per spec.md §7's config-parse-error policy.
func Load(path string, log *logrus.Entry) Config {
	cfg := Default()

	if _, err := os.Stat(path); err != nil {
		return cfg
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if log != nil {
			log.WithError(err).WithField("path", path).
				Warn("config parse error, falling back to built-in defaults")
		}
		return Default()
	}
	return cfg
}
