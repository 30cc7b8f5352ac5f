package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/pekwm/pekwm-sub002/internal/geom"
)

// CreateParent generates a small override-redirect window usable as a
// frame's decoration/reparenting target, mirroring marwind's
// (*WM).createParent (wm/frame.go) generalized to take an explicit event
// mask and background pixel instead of reading wm.config directly.
func (c *Conn) CreateParent(borderPixel uint32, eventMask uint32) (xproto.Window, error) {
	id, err := xproto.NewWindowId(c.X)
	if err != nil {
		return 0, err
	}
	err = xproto.CreateWindowChecked(
		c.X, c.Screen.RootDepth, id, c.Root,
		0, 0, 1, 1, 0, xproto.WindowClassInputOutput, c.Screen.RootVisual,
		xproto.CwBackPixel|xproto.CwOverrideRedirect|xproto.CwEventMask,
		[]uint32{borderPixel, 1, eventMask},
	).Check()
	if err != nil {
		return 0, fmt.Errorf("x11: create parent window: %w", err)
	}
	return id, nil
}

// Reparent reparents win into parent at (0,0) and adds it to the save-set,
// so that if this process dies the window is automatically reparented back
// to the root by the server (spec.md §7 "Guarantees on unclean shutdown").
func (c *Conn) Reparent(win, parent xproto.Window) error {
	if err := xproto.ReparentWindowChecked(c.X, win, parent, 0, 0).Check(); err != nil {
		return fmt.Errorf("x11: reparent: %w", err)
	}
	return xproto.ChangeSaveSetChecked(c.X, xproto.SetModeInsert, win).Check()
}

func (c *Conn) MapWindow(win xproto.Window) error {
	return xproto.MapWindowChecked(c.X, win).Check()
}

func (c *Conn) UnmapWindow(win xproto.Window) error {
	return xproto.UnmapWindowChecked(c.X, win).Check()
}

func (c *Conn) DestroyWindow(win xproto.Window) error {
	return xproto.DestroyWindowChecked(c.X, win).Check()
}

// ConfigureGeometry applies a new geometry to win via ConfigureWindow,
// mirroring marwind's renderFrame (wm/render.go).
func (c *Conn) ConfigureGeometry(win xproto.Window, g geom.Geometry) error {
	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY | xproto.ConfigWindowWidth | xproto.ConfigWindowHeight)
	values := []uint32{uint32(g.X), uint32(g.Y), g.Width, g.Height}
	return xproto.ConfigureWindowChecked(c.X, win, mask, values).Check()
}

// SendSyntheticConfigureNotify tells a client its final geometry after a
// reparented resize, since ConfigureWindow on the parent does not itself
// generate the ConfigureNotify the client expects (spec.md §3 "Configure-
// request lock" / marwind's renderFrame Java workaround comment).
func (c *Conn) SendSyntheticConfigureNotify(win xproto.Window, g geom.Geometry, borderWidth uint16) error {
	ev := xproto.ConfigureNotifyEvent{
		Event:            win,
		Window:           win,
		X:                int16(g.X),
		Y:                int16(g.Y),
		Width:             uint16(g.Width),
		Height:            uint16(g.Height),
		BorderWidth:      borderWidth,
		AboveSibling:     0,
		OverrideRedirect: false,
	}
	return xproto.SendEventChecked(c.X, false, win, xproto.EventMaskStructureNotify, string(ev.Bytes())).Check()
}

// WindowAttributes fetches override-redirect and map-state, used to decide
// whether a MapRequest is for a window the WM should manage at all (spec.md
// §3 "Created on MapRequest").
func (c *Conn) WindowAttributes(win xproto.Window) (*xproto.GetWindowAttributesReply, error) {
	return xproto.GetWindowAttributes(c.X, win).Reply()
}

// QueryTree lists a window's children, used by the startup scan (spec.md
// §3 "Client" lifecycle, "or on startup scan for an already-mapped one").
func (c *Conn) QueryTree(win xproto.Window) ([]xproto.Window, error) {
	reply, err := xproto.QueryTree(c.X, win).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Children, nil
}

// SetInputFocus sets keyboard focus to win at time, used by the focus model
// (spec.md §4.2).
func (c *Conn) SetInputFocus(win xproto.Window, revertTo byte, t xproto.Timestamp) error {
	return xproto.SetInputFocusChecked(c.X, revertTo, win, t).Check()
}

// WindowTitle reads _NET_WM_NAME falling back to WM_NAME, mirroring
// marwind's x11.GetWindowTitle(win) call site in wm/frame.go.
func (c *Conn) WindowTitle(win xproto.Window) (string, error) {
	if v, err := c.getUTF8Prop(win, c.Atom("_NET_WM_NAME")); err == nil && v != "" {
		return v, nil
	}
	return c.getUTF8Prop(win, xproto.AtomWmName)
}

func (c *Conn) getUTF8Prop(win xproto.Window, atom xproto.Atom) (string, error) {
	reply, err := xproto.GetProperty(c.X, false, win, atom, xproto.GetPropertyTypeAny, 0, (1<<32)-1).Reply()
	if err != nil {
		return "", err
	}
	if reply == nil || reply.Format != 8 {
		return "", fmt.Errorf("x11: property not a string")
	}
	return string(reply.Value), nil
}

// SetWMName publishes this process's identity on a supporting-check window,
// mirroring marwind's x11.SetWMName("Marwind") call (spec.md §4.10
// "_NET_SUPPORTING_WM_CHECK").
func (c *Conn) SetWMName(win xproto.Window, name string) error {
	return xproto.ChangePropertyChecked(
		c.X, xproto.PropModeReplace, win, c.Atom("_NET_WM_NAME"), c.Atom("UTF8_STRING"), 8,
		uint32(len(name)), []byte(name),
	).Check()
}
