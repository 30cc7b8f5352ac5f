// Command pekwm is the composition root: it parses flags, opens the X11
// connection, loads config, wires every internal package together through
// internal/manager, and runs the event loop until signaled to exit. It is
// grounded on funkycode-marwind's cmd/marwind/main.go flag/connection setup,
// generalized to this module's multi-package wiring and spec.md §6's CLI
// surface.
package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/blang/semver/v4"
	"github.com/sirupsen/logrus"

	"github.com/pekwm/pekwm-sub002/internal/config"
	"github.com/pekwm/pekwm-sub002/internal/ewmh"
	"github.com/pekwm/pekwm-sub002/internal/handler"
	"github.com/pekwm/pekwm-sub002/internal/keygrabber"
	"github.com/pekwm/pekwm-sub002/internal/lifecycle"
	"github.com/pekwm/pekwm-sub002/internal/manager"
	"github.com/pekwm/pekwm-sub002/internal/workspace"
	"github.com/pekwm/pekwm-sub002/internal/x11"
)

// version is the module's own release identifier for --version (spec.md §6),
// not to be confused with any protocol or config-format version.
var version = semver.MustParse("0.1.0")

func main() {
	os.Exit(run())
}

func run() int {
	var (
		display    = flag.String("display", os.Getenv("DISPLAY"), "X display to connect to")
		configPath = flag.String("config", "", "path to config.toml (default: $XDG_CONFIG_HOME/pekwm/config.toml)")
		replace    = flag.Bool("replace", false, "replace a running window manager")
		sync       = flag.Bool("sync", false, "run X11 calls synchronously, for debugging")
		showVer    = flag.Bool("version", false, "print version and exit")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVer {
		fmt.Println(version.String())
		return 0
	}

	log := logrus.New()
	entry := logrus.NewEntry(log)

	conn, err := x11.Open(*display, entry)
	if err != nil {
		entry.WithError(err).Error("failed to open X11 display")
		return 1
	}
	defer conn.Close()
	conn.SetSync(*sync)

	selWin, err := conn.AcquireWMSelection(*replace)
	if err != nil {
		entry.WithError(err).Error("failed to acquire window manager selection")
		return 1
	}
	_ = selWin

	cfg := loadConfig(entry, *configPath)

	pub := ewmh.NewPublisher(conn)
	ws := workspace.NewManager(cfg.WorkspaceCount, cfg.WorkspaceNames)
	grabber := keygrabber.NewGrabber(time.Duration(cfg.ChainTimeoutMs) * time.Millisecond)
	installDefaultBindings(conn, grabber)

	super := lifecycle.NewSupervisor(entry)
	stopWatch := super.Watch()
	defer stopWatch()

	mgr := manager.New(conn, entry, cfg, pub, ws, grabber, super)

	loop := handler.NewLoop(conn, entry)
	loop.Dispatch = mgr.Dispatch
	mgr.InstallModal = loop.InstallModal
	loop.OnReap = func() {
		for _, r := range super.Reap() {
			entry.WithField("label", r.Label).WithField("pid", r.Pid).
				WithField("exit_code", r.ExitCode).Debug("reaped subprocess")
		}
	}
	loop.SignalSource = super.Drain

	restartRequested := false
	loop.OnShutdown = func() {}
	mgr.OnExit = func() { loop.Signals.Shutdown = true }
	mgr.OnRestart = func() { restartRequested = true; loop.Signals.Shutdown = true }
	mgr.OnReload = func() {
		fresh := loadConfig(entry, *configPath)
		mgr.Config = fresh
		entry.Info("configuration reloaded")
	}

	if err := mgr.Startup(); err != nil {
		entry.WithError(err).Error("failed to start window manager")
		return 1
	}

	for loop.RunOnce() {
	}

	if restartRequested {
		entry.Info("restarting")
		exe, err := os.Executable()
		if err != nil {
			entry.WithError(err).Error("failed to resolve own executable for restart")
			return 1
		}
		conn.Close()
		if err := execReplace(exe, os.Args); err != nil {
			entry.WithError(err).Error("restart exec failed")
			return 1
		}
	}
	return 0
}

func loadConfig(log *logrus.Entry, override string) config.Config {
	return config.Load(config.Path(override), log)
}

// execReplace replaces the current process image with a fresh run of exe,
// carrying the environment forward (spec.md §4.7 "Restart" re-execs the
// binary in place rather than forking, so no parent process lingers).
func execReplace(exe string, args []string) error {
	return syscall.Exec(exe, args, os.Environ())
}

// installDefaultBindings grabs a small built-in binding set (spec.md §4.6
// default bindings) until a config keybinding-file grammar is wired in;
// names are resolved to keycodes against the running server's layout.
func installDefaultBindings(conn *x11.Conn, g *keygrabber.Grabber) {
	const (
		mod4  = 1 << 6 // Mod4, typically Super
		shift = 1 << 0
	)
	type binding struct {
		mod    uint16
		keysym uint32
		action string
	}
	defaults := []binding{
		{mod4, 0xff0d /* Return */, "Exec xterm"},
		{mod4, 0x0071 /* q */, "Close"},
		{mod4 | shift, 0x0071, "Exit"},
		{mod4, 0x0072 /* r */, "Restart"},
		{mod4, 0x0031 /* 1 */, "GotoWorkspace 0"},
		{mod4, 0x0032 /* 2 */, "GotoWorkspace 1"},
		{mod4, 0x0033 /* 3 */, "GotoWorkspace 2"},
		{mod4, 0x0034 /* 4 */, "GotoWorkspace 3"},
	}
	forest := g.Forests[keygrabber.ContextGlobal]
	for _, b := range defaults {
		code, ok := conn.KeysymToKeycode(b.keysym)
		if !ok {
			continue
		}
		forest.Bind([]keygrabber.Chord{{Mod: b.mod, Code: code}}, []string{b.action})
	}

	code, ok := conn.KeysymToKeycode(0xff09 /* Tab */)
	if ok {
		forest.Bind([]keygrabber.Chord{{Mod: mod4, Code: code}}, []string{"MoveResize"})
	}
	installMoveResizeBindings(conn, g.Forests[keygrabber.ContextMoveResize])
}

// installMoveResizeBindings binds the plain (unmodified) arrow keys plus
// Escape/Return inside the move-resize key context (spec.md §4.8 row 2);
// these only take effect once KeyboardMoveResize.Init has grabbed the
// keyboard, so they never shadow the same keysyms at the global level.
func installMoveResizeBindings(conn *x11.Conn, forest *keygrabber.Forest) {
	binds := []struct {
		keysym uint32
		action string
	}{
		{0xff51, "Left"},
		{0xff53, "Right"},
		{0xff52, "Up"},
		{0xff54, "Down"},
		{0xff0d, "Confirm"},
		{0xff1b, "MoveCancel"},
	}
	for _, b := range binds {
		code, ok := conn.KeysymToKeycode(b.keysym)
		if !ok {
			continue
		}
		forest.Bind([]keygrabber.Chord{{Mod: 0, Code: code}}, []string{b.action})
	}
}
