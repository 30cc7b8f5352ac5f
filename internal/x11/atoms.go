package x11

import "github.com/BurntSushi/xgb/xproto"

// Atom interns and caches an atom by name, mirroring marwind's x11.Atom(name)
// helper used throughout wm/frame.go and manager/manager.go, generalized
// from a package-level cache into one scoped to this Conn.
func (c *Conn) Atom(name string) xproto.Atom {
	c.mu.Lock()
	if a, ok := c.atoms[name]; ok {
		c.mu.Unlock()
		return a
	}
	c.mu.Unlock()

	reply, err := xproto.InternAtom(c.X, false, uint16(len(name)), name).Reply()
	if err != nil {
		c.log.WithError(err).WithField("atom", name).Warn("failed to intern atom")
		return xproto.AtomNone
	}
	c.mu.Lock()
	c.atoms[name] = reply.Atom
	c.mu.Unlock()
	return reply.Atom
}

// AtomName reverses the cache for debugging/logging; it is not on the hot
// path so it is allowed to round-trip to the server on a cache miss.
func (c *Conn) AtomName(a xproto.Atom) string {
	c.mu.Lock()
	for name, cached := range c.atoms {
		if cached == a {
			c.mu.Unlock()
			return name
		}
	}
	c.mu.Unlock()
	reply, err := xproto.GetAtomName(c.X, a).Reply()
	if err != nil {
		return ""
	}
	return string(reply.Name)
}

// Atoms used across the EWMH/ICCCM surface (spec.md §4.10), pre-warmed at
// startup so the hot dispatch paths in internal/manager never pay an
// InternAtom round trip.
type Atoms struct {
	WMProtocols    xproto.Atom
	WMDeleteWindow xproto.Atom
	WMTakeFocus    xproto.Atom
	WMChangeState  xproto.Atom
	WMState        xproto.Atom

	NetSupported           xproto.Atom
	NetNumberOfDesktops    xproto.Atom
	NetCurrentDesktop      xproto.Atom
	NetDesktopNames        xproto.Atom
	NetDesktopLayout       xproto.Atom
	NetClientList          xproto.Atom
	NetClientListStacking  xproto.Atom
	NetActiveWindow        xproto.Atom
	NetWorkarea            xproto.Atom
	NetSupportingWmCheck   xproto.Atom
	NetFrameExtents        xproto.Atom
	NetWmDesktop           xproto.Atom
	NetWmState             xproto.Atom
	NetWmAllowedActions    xproto.Atom
	NetWmStrut             xproto.Atom
	NetWmWindowType        xproto.Atom
	NetWmName              xproto.Atom
	NetCloseWindow         xproto.Atom
	NetRestackWindow       xproto.Atom
	NetRequestFrameExtents xproto.Atom

	NetWmStateFullscreen  xproto.Atom
	NetWmStateMaxHorz     xproto.Atom
	NetWmStateMaxVert     xproto.Atom
	NetWmStateShaded      xproto.Atom
	NetWmStateSticky      xproto.Atom
	NetWmStateAbove       xproto.Atom
	NetWmStateBelow       xproto.Atom
	NetWmStateSkipTaskbar xproto.Atom
	NetWmStateSkipPager   xproto.Atom
	NetWmStateHidden      xproto.Atom
	NetWmStateDemandsAttn xproto.Atom

	PekwmFrameID     xproto.Atom
	PekwmFrameOrder  xproto.Atom
	PekwmFrameActive xproto.Atom
	PekwmFrameDecor  xproto.Atom
	PekwmTitle       xproto.Atom
	PekwmThemeVariant xproto.Atom
	PekwmCmd         xproto.Atom
}

// LoadAtoms interns every atom this module's EWMH/ICCCM surface needs.
func (c *Conn) LoadAtoms() *Atoms {
	a := &Atoms{
		WMProtocols:    c.Atom("WM_PROTOCOLS"),
		WMDeleteWindow: c.Atom("WM_DELETE_WINDOW"),
		WMTakeFocus:    c.Atom("WM_TAKE_FOCUS"),
		WMChangeState:  c.Atom("WM_CHANGE_STATE"),
		WMState:        c.Atom("WM_STATE"),

		NetSupported:           c.Atom("_NET_SUPPORTED"),
		NetNumberOfDesktops:    c.Atom("_NET_NUMBER_OF_DESKTOPS"),
		NetCurrentDesktop:      c.Atom("_NET_CURRENT_DESKTOP"),
		NetDesktopNames:        c.Atom("_NET_DESKTOP_NAMES"),
		NetDesktopLayout:       c.Atom("_NET_DESKTOP_LAYOUT"),
		NetClientList:          c.Atom("_NET_CLIENT_LIST"),
		NetClientListStacking:  c.Atom("_NET_CLIENT_LIST_STACKING"),
		NetActiveWindow:        c.Atom("_NET_ACTIVE_WINDOW"),
		NetWorkarea:            c.Atom("_NET_WORKAREA"),
		NetSupportingWmCheck:   c.Atom("_NET_SUPPORTING_WM_CHECK"),
		NetFrameExtents:        c.Atom("_NET_FRAME_EXTENTS"),
		NetWmDesktop:           c.Atom("_NET_WM_DESKTOP"),
		NetWmState:             c.Atom("_NET_WM_STATE"),
		NetWmAllowedActions:    c.Atom("_NET_WM_ALLOWED_ACTIONS"),
		NetWmStrut:             c.Atom("_NET_WM_STRUT"),
		NetWmWindowType:        c.Atom("_NET_WM_WINDOW_TYPE"),
		NetWmName:              c.Atom("_NET_WM_NAME"),
		NetCloseWindow:         c.Atom("_NET_CLOSE_WINDOW"),
		NetRestackWindow:       c.Atom("_NET_RESTACK_WINDOW"),
		NetRequestFrameExtents: c.Atom("_NET_REQUEST_FRAME_EXTENTS"),

		NetWmStateFullscreen:  c.Atom("_NET_WM_STATE_FULLSCREEN"),
		NetWmStateMaxHorz:     c.Atom("_NET_WM_STATE_MAXIMIZED_HORZ"),
		NetWmStateMaxVert:     c.Atom("_NET_WM_STATE_MAXIMIZED_VERT"),
		NetWmStateShaded:      c.Atom("_NET_WM_STATE_SHADED"),
		NetWmStateSticky:      c.Atom("_NET_WM_STATE_STICKY"),
		NetWmStateAbove:       c.Atom("_NET_WM_STATE_ABOVE"),
		NetWmStateBelow:       c.Atom("_NET_WM_STATE_BELOW"),
		NetWmStateSkipTaskbar: c.Atom("_NET_WM_STATE_SKIP_TASKBAR"),
		NetWmStateSkipPager:   c.Atom("_NET_WM_STATE_SKIP_PAGER"),
		NetWmStateHidden:      c.Atom("_NET_WM_STATE_HIDDEN"),
		NetWmStateDemandsAttn: c.Atom("_NET_WM_STATE_DEMANDS_ATTENTION"),

		PekwmFrameID:      c.Atom("_PEKWM_FRAME_ID"),
		PekwmFrameOrder:   c.Atom("_PEKWM_FRAME_ORDER"),
		PekwmFrameActive:  c.Atom("_PEKWM_FRAME_ACTIVE"),
		PekwmFrameDecor:   c.Atom("_PEKWM_FRAME_DECOR"),
		PekwmTitle:        c.Atom("PEKWM_TITLE"),
		PekwmThemeVariant: c.Atom("_PEKWM_THEME_VARIANT"),
		PekwmCmd:          c.Atom("_PEKWM_CMD"),
	}
	return a
}
