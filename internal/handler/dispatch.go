package handler

import (
	"strings"

	"github.com/pekwm/pekwm-sub002/internal/action"
	"github.com/pekwm/pekwm-sub002/internal/client"
	"github.com/pekwm/pekwm-sub002/internal/frame"
	"github.com/pekwm/pekwm-sub002/internal/geom"
	"github.com/pekwm/pekwm-sub002/internal/wo"
	"github.com/pekwm/pekwm-sub002/internal/workspace"
)

// Mutators is the dependency set the action dispatcher needs to realize
// state changes (spec.md §4.7 "it dispatches by action kind to a mutator
// that may touch the target WO, its ancestors, or global state"). Kept as
// plain function fields rather than a fat interface so each can be wired
// independently by cmd/pekwm's composition root.
type Mutators struct {
	Resolve       func(wo.Handle) (wo.WO, bool)
	ResolveClient func(wo.Handle) (*client.Client, bool)
	ResolveFrame  func(wo.Handle) (*frame.Frame, bool)

	HeadWorkarea func(f *frame.Frame) geom.Geometry
	// HeadGeometry returns the full head extent (no strut subtraction),
	// what fullscreen sizes to (spec.md §4.3 "Fullscreen uses the head
	// extent without workarea subtraction").
	HeadGeometry func(f *frame.Frame) geom.Geometry
	// HeadByIndex returns head i's workarea, the MoveToHead target
	// (spec.md §4.7 "geometry" family).
	HeadByIndex func(i int) (geom.Geometry, bool)
	// Siblings lists every other mapped frame's geometry on the same
	// workspace, MaxFill's obstacle set (spec.md §4.3 "MaxFill ... stops
	// at the nearest obstructing frame").
	Siblings   func(f *frame.Frame) []geom.Geometry
	Workspaces *workspace.Manager
	MapUnmap   workspace.MapUnmapFunc
	Focus      workspace.FocusFunc
	Root       wo.WO

	// WarpPointer moves the pointer to an absolute root-window position,
	// the optional pointer-follows-focus half of WarpToWorkspace (spec.md
	// §4.5 "warpToWorkspace(dir, warp)").
	WarpPointer func(x, y int32)

	// DetachClient pulls the active client out of its frame into its own
	// new frame (spec.md §4.4 "Attach/detach").
	DetachClient func(c *client.Client)
	// AttachMarked attaches the most recently detached/marked client into
	// f's tab strip (spec.md §4.4 "Attach/detach").
	AttachMarked func(f *frame.Frame)

	// SetFullscreenAbove keeps the fullscreen-above-dock bookkeeping and
	// the workspace stack in sync with a fullscreen toggle that already
	// happened on f (spec.md §4.5 "Fullscreen stacking interaction").
	SetFullscreenAbove func(f *frame.Frame, entering bool, priorLayer wo.Layer)
	// BeforeRaise demotes any other fullscreen-above frame out of the way
	// before f is raised (spec.md §4.5 "Fullscreen stacking interaction").
	BeforeRaise func(f *frame.Frame)

	Close   func(c *client.Client)
	Exec    func(cmd string)
	Restart func()
	Exit    func()
	Reload  func()

	RepublishState func(f *frame.Frame)
}

// Dispatch realizes one ActionPerformed record (spec.md §4.7), returning
// the number of actions actually applied (for logging/testing).
func Dispatch(m Mutators, p action.Performed) int {
	applied := 0
	for _, a := range p.Event.Actions {
		if dispatchOne(m, p.Target, a) {
			applied++
		}
	}
	return applied
}

func dispatchOne(m Mutators, target wo.WO, a action.Action) bool {
	var f *frame.Frame
	var c *client.Client
	switch t := target.(type) {
	case *frame.Frame:
		f = t
		if h := f.ActiveClient(); !h.Zero() && m.ResolveClient != nil {
			c, _ = m.ResolveClient(h)
		}
	case *client.Client:
		c = t
		if m.ResolveFrame != nil {
			f, _ = m.ResolveFrame(c.Frame())
		}
	}

	switch a.Kind {
	case action.KindClose:
		if c != nil && !c.Deny.Has(client.DenyClose) && m.Close != nil {
			m.Close(c)
		}
	case action.KindMaximizeHorz:
		if f != nil && (c == nil || !c.Deny.Has(client.DenyStateMaximizedHorz)) {
			f.SetMaximizedHorz(applyState(a.State, f.MaximizedHorz()), workareaFor(m, f))
		}
	case action.KindMaximizeVert:
		if f != nil && (c == nil || !c.Deny.Has(client.DenyStateMaximizedVert)) {
			f.SetMaximizedVert(applyState(a.State, f.MaximizedVert()), workareaFor(m, f))
		}
	case action.KindMaximize:
		if f != nil && (c == nil || !c.Deny.Has(client.DenyStateMaximizedHorz)) {
			v := applyState(a.State, f.Maximized())
			wa := workareaFor(m, f)
			f.SetMaximizedHorz(v, wa)
			f.SetMaximizedVert(v, wa)
		}
	case action.KindFullscreen:
		if f != nil && (c == nil || !c.Deny.Has(client.DenyStateFullscreen)) {
			wasLayer := f.Layer()
			goFullscreen := applyState(a.State, f.Fullscreen())
			f.SetFullscreen(goFullscreen, headGeometryFor(m, f))
			if m.SetFullscreenAbove != nil {
				m.SetFullscreenAbove(f, goFullscreen, wasLayer)
			}
		}
	case action.KindMaxFill:
		if f != nil && (c == nil || !c.Deny.Has(client.DenyStateMaximizedHorz)) {
			var obstacles []geom.Geometry
			if m.Siblings != nil {
				obstacles = m.Siblings(f)
			}
			f.MaxFill(workareaFor(m, f), obstacles)
		}
	case action.KindShade:
		if f != nil && (c == nil || !c.Deny.Has(client.DenyStateShaded)) {
			f.SetShade(applyState(a.State, f.Shaded()))
		}
	case action.KindStick:
		if target != nil {
			target.SetSticky(applyState(a.State, target.Sticky()))
		}
	case action.KindRaise:
		if f != nil {
			m.raise(f)
		}
	case action.KindLower:
		if f != nil {
			m.lower(f)
		}
	case action.KindIconify:
		if c != nil && !c.Deny.Has(client.DenyIconify) {
			target.SetIconified(applyState(a.State, target.Iconified()))
		}
	case action.KindGotoWorkspace:
		if m.Workspaces != nil {
			n := int32(action.IntArg(a, 0, int(m.Workspaces.Active())))
			mapUnmap, focus := m.MapUnmap, m.Focus
			if mapUnmap == nil {
				mapUnmap = nopMapUnmap
			}
			if focus == nil {
				focus = nopFocus
			}
			m.Workspaces.SetWorkspace(n, m.Resolve, mapUnmap, focus, m.Root)
		}
	case action.KindExec:
		if len(a.Args) > 0 && m.Exec != nil {
			m.Exec(a.Args[0])
		}
	case action.KindRestart:
		if m.Restart != nil {
			m.Restart()
		}
	case action.KindExit:
		if m.Exit != nil {
			m.Exit()
		}
	case action.KindReload:
		if m.Reload != nil {
			m.Reload()
		}
	case action.KindSetGeometry:
		if f != nil && len(a.Args) > 0 {
			g, ok := geom.ParseGeometry(a.Args[0])
			if !ok {
				return false
			}
			f.SetGeometry(g)
		}
	case action.KindMoveToEdge:
		if f == nil || len(a.Args) == 0 {
			return false
		}
		if !moveToEdge(f, workareaFor(m, f), strings.ToLower(a.Args[0])) {
			return false
		}
	case action.KindGrowDirection:
		if f == nil || len(a.Args) == 0 {
			return false
		}
		if !growDirection(f, workareaFor(m, f), strings.ToLower(a.Args[0])) {
			return false
		}
	case action.KindMoveToHead:
		if f == nil || m.HeadByIndex == nil {
			return false
		}
		idx := action.IntArg(a, 0, -1)
		newHead, ok := m.HeadByIndex(idx)
		if !ok {
			return false
		}
		moveToHead(f, workareaFor(m, f), newHead)
	case action.KindSendToWorkspace:
		if f != nil && m.Workspaces != nil {
			n := int32(action.IntArg(a, 0, int(m.Workspaces.Active())))
			m.Workspaces.MoveFrameToWorkspace(f.Handle(), n, f.Layer(), m.Resolve)
			f.SetWorkspace(n)
			for _, ch := range f.Clients() {
				if cl, ok := m.ResolveClient(ch); ok {
					cl.SetWorkspace(n)
				}
			}
			if m.MapUnmap != nil {
				m.MapUnmap(f, n == m.Workspaces.Active())
			}
		}
	case action.KindWarpToWorkspace:
		if m.Workspaces != nil {
			dir := workspace.WarpNext
			if len(a.Args) > 0 && strings.EqualFold(a.Args[0], "prev") {
				dir = workspace.WarpPrev
			}
			n := m.Workspaces.TargetWorkspace(dir)
			mapUnmap := m.MapUnmap
			if mapUnmap == nil {
				mapUnmap = nopMapUnmap
			}
			var focused wo.WO
			focus := func(w wo.WO) {
				focused = w
				if m.Focus != nil {
					m.Focus(w)
				}
			}
			m.Workspaces.SetWorkspace(n, m.Resolve, mapUnmap, focus, m.Root)
			if m.WarpPointer != nil && focused != nil {
				wx, wy := focused.Geometry().Center()
				m.WarpPointer(wx, wy)
			}
		}
	case action.KindDetach:
		if c != nil && m.DetachClient != nil {
			m.DetachClient(c)
		}
	case action.KindAttachMarked:
		if f != nil && m.AttachMarked != nil {
			m.AttachMarked(f)
		}
	case action.KindFocusNext:
		if f != nil {
			f.ActivateNext()
			activateFocus(m, f)
		}
	case action.KindFocusPrev:
		if f != nil {
			f.ActivatePrev()
			activateFocus(m, f)
		}
	case action.KindActivateClient:
		if f != nil {
			clients := f.Clients()
			idx := action.IntArg(a, 0, f.ActiveIndex())
			if idx < 0 || idx >= len(clients) {
				return false
			}
			f.ActivateClient(clients[idx])
			activateFocus(m, f)
		}
	case action.KindStickySkip:
		if target == nil {
			return false
		}
		cur := target.SkipFlags().Has(wo.SkipTaskbar)
		if applyState(a.State, cur) {
			target.SetSkipFlags(target.SkipFlags() | wo.SkipTaskbar | wo.SkipPager)
		} else {
			target.SetSkipFlags(target.SkipFlags() &^ (wo.SkipTaskbar | wo.SkipPager))
		}
	default:
		return false
	}

	if f != nil && m.RepublishState != nil {
		m.RepublishState(f)
	}
	return true
}

func applyState(s action.StateKind, cur bool) bool {
	switch s {
	case action.StateSet:
		return true
	case action.StateUnset:
		return false
	default:
		return !cur
	}
}

func workareaFor(m Mutators, f *frame.Frame) geom.Geometry {
	if m.HeadWorkarea == nil {
		return f.Geometry()
	}
	return m.HeadWorkarea(f)
}

func headGeometryFor(m Mutators, f *frame.Frame) geom.Geometry {
	if m.HeadGeometry == nil {
		return f.Geometry()
	}
	return m.HeadGeometry(f)
}

func (m Mutators) raise(f *frame.Frame) {
	if m.Workspaces == nil {
		return
	}
	if m.BeforeRaise != nil {
		m.BeforeRaise(f)
	}
	ws := m.Workspaces.Current()
	ws.Raise(f.Handle(), m.Resolve)
}

func activateFocus(m Mutators, f *frame.Frame) {
	if m.Focus == nil {
		return
	}
	if cl, ok := m.ResolveClient(f.ActiveClient()); ok {
		m.Focus(cl)
	}
}

// moveToEdge realizes Frame::moveToEdge's cardinal cases (spec.md §4.7
// "MoveToEdge"), scoped to the four sides plus center rather than the
// original's full 13-way corner/center-edge enum.
func moveToEdge(f *frame.Frame, wa geom.Geometry, dir string) bool {
	g := f.Geometry()
	switch dir {
	case "top":
		g.Y = wa.Y
	case "bottom":
		g.Y = wa.Bottom() - int32(g.Height)
	case "left":
		g.X = wa.X
	case "right":
		g.X = wa.Right() - int32(g.Width)
	case "center":
		g.X = wa.X + (int32(wa.Width)-int32(g.Width))/2
		g.Y = wa.Y + (int32(wa.Height)-int32(g.Height))/2
	default:
		return false
	}
	f.SetGeometry(g)
	return true
}

// growDirection realizes Frame::growDirection: grows the frame to the head
// edge in one direction, keeping the opposite edge fixed (spec.md §4.7
// "GrowDirection").
func growDirection(f *frame.Frame, wa geom.Geometry, dir string) bool {
	g := f.Geometry()
	switch dir {
	case "up":
		bottom := g.Bottom()
		g.Y = wa.Y
		g.Height = uint32(bottom - g.Y)
	case "down":
		g.Height = uint32(wa.Bottom() - g.Y)
	case "left":
		right := g.Right()
		g.X = wa.X
		g.Width = uint32(right - g.X)
	case "right":
		g.Width = uint32(wa.Right() - g.X)
	default:
		return false
	}
	f.SetGeometry(g)
	return true
}

// moveToHead ports Frame::moveToHead: translate g by the offset between the
// old and new head origins, then clamp into the new head's bounds.
func moveToHead(f *frame.Frame, oldHead, newHead geom.Geometry) {
	g := f.Geometry()
	g.X = newHead.X + (g.X - oldHead.X)
	g.Y = newHead.Y + (g.Y - oldHead.Y)
	if g.Width > newHead.Width {
		g.Width = newHead.Width
	}
	if g.Height > newHead.Height {
		g.Height = newHead.Height
	}
	if g.Right() > newHead.Right() {
		g.X = newHead.Right() - int32(g.Width)
	}
	if g.Bottom() > newHead.Bottom() {
		g.Y = newHead.Bottom() - int32(g.Height)
	}
	f.SetGeometry(g)
}

func (m Mutators) lower(f *frame.Frame) {
	if m.Workspaces == nil {
		return
	}
	ws := m.Workspaces.Current()
	ws.Lower(f.Handle(), m.Resolve)
}

func nopMapUnmap(wo.WO, bool) {}
func nopFocus(wo.WO)          {}
