// Package ewmh implements spec.md §4.10: the EWMH/ICCCM protocol surface.
// It is the one place in the module that talks ICCCM/EWMH semantics; every
// other component calls through Publisher and this package's hint-reading
// functions (NormalHints, ClassHint, WindowRole, TransientFor) rather than touching
// raw atoms. Hint decode/encode is delegated to
// github.com/BurntSushi/xgbutil/icccm and /ewmh wherever their shape
// matches (WM_HINTS, WM_NORMAL_HINTS, _NET_WM_STATE's atom list), which is
// the same pairing noisetorch-NoiseTorch's main.go uses directly
// (`xgbutil/ewmh`, `xgbutil/icccm`) against a *xgbutil.XUtil.
package ewmh

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/pekwm/pekwm-sub002/internal/geom"
	"github.com/pekwm/pekwm-sub002/internal/x11"
)

// Supported lists every root-window EWMH atom this module publishes
// (spec.md §4.10).
var Supported = []string{
	"_NET_SUPPORTED",
	"_NET_NUMBER_OF_DESKTOPS",
	"_NET_CURRENT_DESKTOP",
	"_NET_DESKTOP_NAMES",
	"_NET_DESKTOP_LAYOUT",
	"_NET_CLIENT_LIST",
	"_NET_CLIENT_LIST_STACKING",
	"_NET_ACTIVE_WINDOW",
	"_NET_WORKAREA",
	"_NET_SUPPORTING_WM_CHECK",
	"_NET_FRAME_EXTENTS",
	"_NET_WM_DESKTOP",
	"_NET_WM_STATE",
	"_NET_WM_ALLOWED_ACTIONS",
	"_NET_WM_STRUT",
	"_NET_WM_WINDOW_TYPE",
	"_NET_WM_NAME",
	"_NET_CLOSE_WINDOW",
	"_NET_RESTACK_WINDOW",
	"_NET_REQUEST_FRAME_EXTENTS",
	"_NET_WM_STATE_FULLSCREEN",
	"_NET_WM_STATE_MAXIMIZED_HORZ",
	"_NET_WM_STATE_MAXIMIZED_VERT",
	"_NET_WM_STATE_SHADED",
	"_NET_WM_STATE_STICKY",
	"_NET_WM_STATE_ABOVE",
	"_NET_WM_STATE_BELOW",
	"_NET_WM_STATE_SKIP_TASKBAR",
	"_NET_WM_STATE_SKIP_PAGER",
	"_NET_WM_STATE_HIDDEN",
	"_NET_WM_STATE_DEMANDS_ATTENTION",
}

// Publisher owns the root-window-wide EWMH state and republishes it as the
// core mutates the window-object tree (spec.md §3 "Root WO" attributes,
// §4.10 list of root properties).
type Publisher struct {
	conn *x11.Conn
}

func NewPublisher(conn *x11.Conn) *Publisher { return &Publisher{conn: conn} }

// AnnounceSupport publishes _NET_SUPPORTED and creates the
// _NET_SUPPORTING_WM_CHECK window pekwm/pagers use to verify a compliant WM
// is running (spec.md §4.10).
func (p *Publisher) AnnounceSupport(checkWin xproto.Window, wmName string) error {
	if err := ewmh.SupportedSet(p.conn.XU, Supported); err != nil {
		return fmt.Errorf("ewmh: set _NET_SUPPORTED: %w", err)
	}
	if err := ewmh.SupportingWmCheckSet(p.conn.XU, p.conn.Root, checkWin); err != nil {
		return fmt.Errorf("ewmh: set supporting wm check on root: %w", err)
	}
	if err := ewmh.SupportingWmCheckSet(p.conn.XU, checkWin, checkWin); err != nil {
		return fmt.Errorf("ewmh: set supporting wm check on check window: %w", err)
	}
	if err := ewmh.WmNameSet(p.conn.XU, checkWin, wmName); err != nil {
		return fmt.Errorf("ewmh: set wm name: %w", err)
	}
	return nil
}

// SetNumberOfDesktops publishes _NET_NUMBER_OF_DESKTOPS.
func (p *Publisher) SetNumberOfDesktops(n int) error {
	return ewmh.NumberOfDesktopsSet(p.conn.XU, uint(n))
}

// SetCurrentDesktop publishes _NET_CURRENT_DESKTOP (spec.md §4.5
// "Re-publish _NET_CURRENT_DESKTOP").
func (p *Publisher) SetCurrentDesktop(n int32) error {
	return ewmh.CurrentDesktopSet(p.conn.XU, uint(n))
}

// SetDesktopNames publishes _NET_DESKTOP_NAMES.
func (p *Publisher) SetDesktopNames(names []string) error {
	return ewmh.DesktopNamesSet(p.conn.XU, names)
}

// SetClientList publishes the creation-ordered client list,
// _NET_CLIENT_LIST (spec.md §3 "Root WO"); SetClientListStacking publishes
// the stacking-ordered one.
func (p *Publisher) SetClientList(creationOrder []xproto.Window) error {
	return ewmh.ClientListSet(p.conn.XU, creationOrder)
}

func (p *Publisher) SetClientListStacking(stackOrder []xproto.Window) error {
	return ewmh.ClientListStackingSet(p.conn.XU, stackOrder)
}

// SetActiveWindow publishes _NET_ACTIVE_WINDOW, mirroring marwind's
// x11.SetActiveWindow(win) call sites in manager/manager.go.
func (p *Publisher) SetActiveWindow(win xproto.Window) error {
	return ewmh.ActiveWindowSet(p.conn.XU, win)
}

// SetWorkarea publishes _NET_WORKAREA for every (virtual) desktop as the
// same rectangle, since this module does not implement per-desktop
// independent workareas beyond per-head struts.
func (p *Publisher) SetWorkarea(n int, area geom.Geometry) error {
	areas := make([]ewmh.WorkareaGeometry, n)
	for i := range areas {
		areas[i] = ewmh.WorkareaGeometry{
			X: int(area.X), Y: int(area.Y),
			Width: int(area.Width), Height: int(area.Height),
		}
	}
	return ewmh.WorkareaSet(p.conn.XU, areas)
}

// SetClientDesktop publishes _NET_WM_DESKTOP for one client.
func (p *Publisher) SetClientDesktop(win xproto.Window, desktop int32) error {
	v := uint(desktop)
	if desktop < 0 {
		v = 0xFFFFFFFF // sticky sentinel per EWMH spec
	}
	return ewmh.WmDesktopSet(p.conn.XU, win, v)
}

// SetClientStrut publishes _NET_WM_STRUT for a client's reserved edges.
func (p *Publisher) SetClientStrut(win xproto.Window, s geom.Strut) error {
	return ewmh.WmStrutSet(p.conn.XU, win, ewmh.WmStrut{
		Left: uint(s.Left), Right: uint(s.Right), Top: uint(s.Top), Bottom: uint(s.Bottom),
	})
}

// SetFrameExtents answers _NET_REQUEST_FRAME_EXTENTS requests (spec.md
// §4.10 "on request").
func (p *Publisher) SetFrameExtents(win xproto.Window, d geom.Dimensions) error {
	return ewmh.FrameExtentsSet(p.conn.XU, win, ewmh.FrameExtents{
		Left: int(d.Left), Right: int(d.Right), Top: int(d.Top), Bottom: int(d.Bottom),
	})
}

// SetClientName publishes _NET_WM_NAME, the write counterpart of
// x11.Conn.WindowTitle's read path, for when the WM itself renames a
// client (e.g. as part of a group).
func (p *Publisher) SetClientName(win xproto.Window, name string) error {
	return ewmh.WmNameSet(p.conn.XU, win, name)
}

// NormalHints fetches ICCCM WM_SIZE_HINTS (spec.md §3 "ICCCM size hints").
func NormalHints(conn *x11.Conn, win xproto.Window) (*icccm.NormalHints, error) {
	return icccm.WmNormalHintsGet(conn.XU, win)
}

// WMHints fetches ICCCM WM_HINTS (spec.md §3 "ICCCM WM hints").
func WMHints(conn *x11.Conn, win xproto.Window) (*icccm.Hints, error) {
	return icccm.WmHintsGet(conn.XU, win)
}

// ClassHint fetches WM_CLASS (spec.md §3 "Class-hint").
func ClassHint(conn *x11.Conn, win xproto.Window) (*icccm.WmClass, error) {
	return icccm.WmClassGet(conn.XU, win)
}

// TransientFor fetches WM_TRANSIENT_FOR (spec.md §3 "Transient-for link").
func TransientFor(conn *x11.Conn, win xproto.Window) (xproto.Window, error) {
	return icccm.WmTransientForGet(conn.XU, win)
}

// WindowRole fetches WM_WINDOW_ROLE (spec.md §3 "WM role").
func WindowRole(conn *x11.Conn, win xproto.Window) (string, error) {
	reply, err := xproto.GetProperty(conn.X, false, win, conn.Atom("WM_WINDOW_ROLE"), xproto.GetPropertyTypeAny, 0, 1024).Reply()
	if err != nil {
		return "", err
	}
	if reply == nil || reply.Format != 8 {
		return "", nil
	}
	return string(reply.Value), nil
}
