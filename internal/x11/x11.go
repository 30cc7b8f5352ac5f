// Package x11 is the thin platform façade spec.md §2 describes: a wrapper
// over the X11 display connection providing atoms, cursors, grabs,
// extension probing and geometry/head queries, through which every other
// component speaks to the server. It is grounded directly on
// funkycode-marwind's x11 package (referenced throughout wm/*.go and
// manager/manager.go as package-level x11.X / x11.Screen / x11.Atom(...)),
// generalized from a single global connection into a *Conn value per
// spec.md §9 ("do not use thread-locals or process-wide singletons").
package x11

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/sirupsen/logrus"

	"github.com/pekwm/pekwm-sub002/internal/geom"
)

// Conn owns the display connection and the small set of facts every other
// component needs: the root window, the atom cache, and which optional
// extensions (SHAPE, XRANDR, XINERAMA) are present.
type Conn struct {
	X      *xgb.Conn
	XU     *xgbutil.XUtil
	Screen *xproto.ScreenInfo
	Root   xproto.Window

	log *logrus.Entry

	mu      sync.Mutex
	atoms   map[string]xproto.Atom
	cursors map[CursorShape]xproto.Cursor
	keysyms *keysymCache

	HasShape    bool
	HasRandr    bool
	HasXinerama bool

	numLockMask    ModMask
	scrollLockMask ModMask

	sync bool // --sync debugging mode, spec.md §6
}

// Open connects to the named display ("" uses $DISPLAY) and probes optional
// extensions. It does not yet attempt to become the window manager; call
// BecomeWM for that (spec.md §4.1/§7: becoming WM can fail with an
// AccessError that the caller must distinguish from a fatal connection
// failure).
func Open(display string, log *logrus.Entry) (*Conn, error) {
	xconn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("x11: failed to open display: %w", err)
	}
	setup := xproto.Setup(xconn)
	if setup == nil || len(setup.Roots) == 0 {
		xconn.Close()
		return nil, fmt.Errorf("x11: no screens on display")
	}
	screen := &setup.Roots[0]

	xu, err := xgbutil.NewConnXgb(xconn)
	if err != nil {
		xconn.Close()
		return nil, fmt.Errorf("x11: failed to wrap connection for ewmh/icccm helpers: %w", err)
	}

	c := &Conn{
		X:      xconn,
		XU:     xu,
		Screen: screen,
		Root:   screen.Root,
		log:    log,
		atoms:  make(map[string]xproto.Atom),
	}

	c.HasShape = shape.Init(xconn) == nil
	c.HasRandr = randr.Init(xconn) == nil
	c.HasXinerama = xinerama.Init(xconn) == nil

	return c, nil
}

// SetSync toggles synchronous X calls for debugging, spec.md §6 `--sync`.
func (c *Conn) SetSync(v bool) {
	c.sync = v
	c.X.Sync()
}

// Close releases the connection. Safe to call on a nil-X Conn.
func (c *Conn) Close() {
	if c != nil && c.X != nil {
		c.X.Close()
	}
}

// BecomeWM registers for the substructure-redirect events that make this
// process the window manager (spec.md §4.1). An AccessError return means
// another WM already selects substructure-redirect on the root;
// internal/manager.Startup returns it unchanged and cmd/pekwm logs it as a
// startup failure.
func (c *Conn) BecomeWM() error {
	mask := []uint32{
		uint32(xproto.EventMaskKeyPress) |
			uint32(xproto.EventMaskKeyRelease) |
			uint32(xproto.EventMaskButtonPress) |
			uint32(xproto.EventMaskButtonRelease) |
			uint32(xproto.EventMaskPropertyChange) |
			uint32(xproto.EventMaskFocusChange) |
			uint32(xproto.EventMaskEnterWindow) |
			uint32(xproto.EventMaskLeaveWindow) |
			uint32(xproto.EventMaskStructureNotify) |
			uint32(xproto.EventMaskSubstructureNotify) |
			uint32(xproto.EventMaskSubstructureRedirect),
	}
	return xproto.ChangeWindowAttributesChecked(c.X, c.Root, xproto.CwEventMask, mask).Check()
}

// ScreenGeometry returns the full display geometry (spec.md §3, single-head
// fallback when XINERAMA is unavailable).
func (c *Conn) ScreenGeometry() geom.Geometry {
	return geom.Geometry{
		X: 0, Y: 0,
		Width:  uint32(c.Screen.WidthInPixels),
		Height: uint32(c.Screen.HeightInPixels),
	}
}

// GrabServer/UngrabServer bracket operations that must not leave X11 state
// half-applied to other clients: initial reparenting, outline move/resize,
// and teardown (spec.md §5 "Server grab discipline"). Callers must pair
// every Grab with an Ungrab on all exit paths, including error paths.
func (c *Conn) GrabServer() error {
	return xproto.GrabServerChecked(c.X).Check()
}

func (c *Conn) UngrabServer() error {
	return xproto.UngrabServerChecked(c.X).Check()
}

// WithServerGrab runs fn with the server grabbed, guaranteeing the ungrab
// runs even if fn returns an error -- the pairing spec.md §5 requires.
func (c *Conn) WithServerGrab(fn func() error) error {
	if err := c.GrabServer(); err != nil {
		return fmt.Errorf("x11: grab server: %w", err)
	}
	defer func() {
		if err := c.UngrabServer(); err != nil {
			c.log.WithError(err).Warn("failed to ungrab server")
		}
	}()
	return fn()
}
