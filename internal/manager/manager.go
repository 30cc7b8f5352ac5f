// Package manager is the composition glue between the protocol/event layer
// (internal/x11, internal/handler) and the window-object model
// (internal/client, internal/frame, internal/workspace, internal/root): it
// owns the registry and the per-window-type X11 event handling spec.md §3's
// client lifecycle ("created on MapRequest ... destroyed on UnmapNotify or
// DestroyNotify") and §4.1's dispatch loop need someone to actually perform.
// It is grounded on funkycode-marwind's manager/manager.go (addWindow/
// deleteWindow/setFocus/gatherWindows) and wm/wm.go's Run event switch,
// generalized from marwind's single-client-per-frame container model to
// this module's handle-based wo.Registry plus tabbed frame.Frame.
package manager

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/sirupsen/logrus"

	"github.com/pekwm/pekwm-sub002/internal/action"
	"github.com/pekwm/pekwm-sub002/internal/autoprops"
	"github.com/pekwm/pekwm-sub002/internal/client"
	"github.com/pekwm/pekwm-sub002/internal/config"
	"github.com/pekwm/pekwm-sub002/internal/ewmh"
	"github.com/pekwm/pekwm-sub002/internal/frame"
	"github.com/pekwm/pekwm-sub002/internal/geom"
	"github.com/pekwm/pekwm-sub002/internal/handler"
	"github.com/pekwm/pekwm-sub002/internal/keygrabber"
	"github.com/pekwm/pekwm-sub002/internal/lifecycle"
	"github.com/pekwm/pekwm-sub002/internal/root"
	"github.com/pekwm/pekwm-sub002/internal/wo"
	"github.com/pekwm/pekwm-sub002/internal/workspace"
	"github.com/pekwm/pekwm-sub002/internal/x11"
)

// Manager owns every live WO and realizes spec.md §3's client lifecycle and
// §4.5's workspace/stacking bookkeeping on top of one X11 connection.
type Manager struct {
	Conn       *x11.Conn
	Log        *logrus.Entry
	Config     config.Config
	Registry   *wo.Registry
	Root       *root.Root
	Publisher  *ewmh.Publisher
	Workspaces *workspace.Manager
	Grabber    *keygrabber.Grabber
	Lifecycle  *lifecycle.Supervisor

	// AutoProps is the ordered rule list applied at client-create time
	// (spec.md §4.9 "Auto-properties"). Defaults to an empty set; the
	// rule-file grammar itself is out of scope (spec.md §1), so cmd/pekwm
	// populates this only if/when that grammar is wired in.
	AutoProps *autoprops.RuleSet

	Atoms *x11.Atoms
	Heads []geom.Head

	// OnRestart/OnExit are wired by cmd/pekwm's composition root to the
	// process-level restart/exit behavior (spec.md §4.7 "Session" family);
	// this package only decides *that* a restart/exit was requested.
	OnRestart func()
	OnExit    func()
	OnReload  func()

	// InstallModal occupies the event loop's modal slot (spec.md §4.8),
	// wired by cmd/pekwm to *handler.Loop.InstallModal. Manager only
	// constructs handlers; it never holds the Loop itself.
	InstallModal func(handler.EventHandler) error

	// fsAbove tracks every frame currently promoted to LayerAboveDock by a
	// fullscreen toggle, so a later raise of something else can demote it
	// out of the way and re-promote it once it regains focus (spec.md
	// §4.5 "Fullscreen stacking interaction").
	fsAbove map[wo.Handle]*workspace.FullscreenAboveState

	// cmdReassembler accumulates _PEKWM_CMD client-message fragments
	// (spec.md §6).
	cmdReassembler ewmh.CmdReassembler

	// lastDetached is the AttachMarked target: the client most recently
	// pulled out of its frame by Detach or a GroupingDrag drop onto empty
	// space (spec.md §4.4 "Attach/detach").
	lastDetached wo.Handle
}

// New constructs a Manager around already-open dependencies; call Startup
// once the X11 connection is ready to become the window manager.
func New(conn *x11.Conn, log *logrus.Entry, cfg config.Config, pub *ewmh.Publisher, ws *workspace.Manager, grabber *keygrabber.Grabber, lc *lifecycle.Supervisor) *Manager {
	reg := wo.NewRegistry()
	r := root.New(conn.Root, pub)
	return &Manager{
		Conn: conn, Log: log, Config: cfg,
		Registry: reg, Root: r, Publisher: pub,
		Workspaces: ws, Grabber: grabber, Lifecycle: lc,
		AutoProps:  &autoprops.RuleSet{},
		fsAbove:    make(map[wo.Handle]*workspace.FullscreenAboveState),
	}
}

// Startup becomes the window manager, publishes the initial EWMH state,
// installs key grabs and scans already-mapped windows (spec.md §3 "or on
// startup scan for an already-mapped one", mirroring marwind's
// Manager.Init/gatherWindows).
func (m *Manager) Startup() error {
	heads, err := m.Conn.Heads()
	if err != nil {
		return fmt.Errorf("manager: query heads: %w", err)
	}
	m.Heads = heads
	m.Atoms = m.Conn.LoadAtoms()

	if err := m.Conn.LoadLockMasks(func(kc xproto.Keycode) uint32 {
		return uint32(m.Conn.KeycodeToKeysym(kc))
	}); err != nil {
		m.Log.WithError(err).Warn("failed to resolve NumLock/ScrollLock masks, lock-bit combos will not be grabbed")
	}

	if err := m.Conn.BecomeWM(); err != nil {
		return err
	}
	if err := m.Root.AnnounceSupported(m.Conn); err != nil {
		return fmt.Errorf("manager: announce EWMH support: %w", err)
	}

	names := make([]string, len(m.Workspaces.Workspaces))
	for i, w := range m.Workspaces.Workspaces {
		names[i] = w.Name
	}
	if err := m.Publisher.SetNumberOfDesktops(len(m.Workspaces.Workspaces)); err != nil {
		m.Log.WithError(err).Warn("failed to publish desktop count")
	}
	if err := m.Publisher.SetDesktopNames(names); err != nil {
		m.Log.WithError(err).Warn("failed to publish desktop names")
	}
	if err := m.Publisher.SetCurrentDesktop(m.Workspaces.Active()); err != nil {
		m.Log.WithError(err).Warn("failed to publish current desktop")
	}
	m.Root.PublishWorkarea(m.Heads, len(m.Workspaces.Workspaces))

	if err := m.Grabber.GrabAll(m.Conn, m.Conn.Root); err != nil {
		m.Log.WithError(err).Warn("failed to grab one or more key bindings")
	}

	wins, err := m.Conn.QueryTree(m.Conn.Root)
	if err != nil {
		return fmt.Errorf("manager: query tree: %w", err)
	}
	for _, win := range wins {
		attr, err := m.Conn.WindowAttributes(win)
		if err != nil || attr.OverrideRedirect || attr.MapState == xproto.MapStateUnmapped {
			continue
		}
		if err := m.manageWindow(win); err != nil {
			m.Log.WithError(err).WithField("window", win).Warn("failed to manage pre-existing window")
		}
	}
	return nil
}

// Dispatch is wired as handler.Loop.Dispatch: the normal (non-modal) event
// path for every substructure-redirect/notify event this WM handles
// (spec.md §4.1 step 4 "fall through to the normal dispatch path").
func (m *Manager) Dispatch(ev xgb.Event) {
	switch e := ev.(type) {
	case xproto.MapRequestEvent:
		m.handleMapRequest(e)
	case xproto.UnmapNotifyEvent:
		m.handleGone(e.Window)
	case xproto.DestroyNotifyEvent:
		m.handleGone(e.Window)
	case xproto.ConfigureRequestEvent:
		m.handleConfigureRequest(e)
	case xproto.EnterNotifyEvent:
		m.handleEnter(e)
	case xproto.KeyPressEvent:
		m.handleKeyPress(e)
	case xproto.ButtonPressEvent:
		m.handleButtonPress(e)
	case xproto.ClientMessageEvent:
		m.handleClientMessage(e)
	case xproto.PropertyNotifyEvent:
		m.handlePropertyNotify(e)
	default:
		m.Log.WithField("event", fmt.Sprintf("%T", ev)).Debug("unhandled event type")
	}
}

func (m *Manager) handleMapRequest(e xproto.MapRequestEvent) {
	if attr, err := m.Conn.WindowAttributes(e.Window); err == nil && attr.OverrideRedirect {
		return
	}
	if _, ok := m.Registry.Lookup(e.Window); ok {
		return
	}
	if err := m.manageWindow(e.Window); err != nil {
		m.Log.WithError(err).WithField("window", e.Window).Warn("failed to manage window")
	}
}

// manageWindow realizes spec.md §3 "Client"/"Frame created together" for
// one newly mapped top-level window: reparent into a fresh decoration
// window, register both WOs, place on the active head's workarea, and map.
func (m *Manager) manageWindow(win xproto.Window) error {
	cl := client.New(win)
	if nh, err := ewmh.NormalHints(m.Conn, win); err == nil {
		cl.Hints = client.FromICCCM(nh)
	}
	if title, err := m.Conn.WindowTitle(win); err == nil {
		cl.SetRealTitle(title)
	}
	if ch, err := ewmh.ClassHint(m.Conn, win); err == nil && ch != nil {
		cl.Class = client.ClassHint{Instance: ch.Instance, Class: ch.Class}
	}
	if role, err := ewmh.WindowRole(m.Conn, win); err == nil {
		cl.Role = role
	}
	if tw, err := ewmh.TransientFor(m.Conn, win); err == nil && tw != 0 {
		if th, ok := m.Registry.HandleOf(tw); ok {
			cl.SetTransientFor(th)
		}
	}

	chandle, err := m.Registry.Insert(cl)
	if err != nil {
		return err
	}
	cl.SetHandle(chandle)

	parentWin, err := m.Conn.CreateParent(0,
		uint32(xproto.EventMaskSubstructureRedirect|xproto.EventMaskExposure|
			xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|xproto.EventMaskFocusChange))
	if err != nil {
		m.Registry.Remove(chandle)
		return err
	}

	fr := frame.New(parentWin, chandle, frame.DecorState{HasTitlebar: true, HasBorder: true, DecorName: "Default"})
	fr.BorderWidth = m.Config.BorderWidth
	fr.TitlebarHeight = m.Config.TitlebarHeight
	fhandle, err := m.Registry.Insert(fr)
	if err != nil {
		m.Registry.Remove(chandle)
		return err
	}
	fr.SetHandle(fhandle)
	fr.SetParentWindow(parentWin)
	cl.SetFrame(fhandle)

	if err := m.Conn.Reparent(win, parentWin); err != nil {
		return err
	}

	width, height := initialClientSize(cl.Hints)
	fr.SetClientGeometry(geom.Geometry{Width: width, Height: height})
	head := x11.NearestHead(m.Heads, fr.Geometry())
	workarea := head.Workarea(m.Root.AggregateStrut())
	fr.PlaceOnHead(workarea)

	ws := m.Workspaces.Active()
	if ar, ok := m.applyAutoProps(cl, fr); ok {
		if ar.ApplyWorkspace != nil && *ar.ApplyWorkspace >= 0 && int(*ar.ApplyWorkspace) < len(m.Workspaces.Workspaces) {
			ws = *ar.ApplyWorkspace
		}
		if ar.ApplyGeometry.Set {
			if ar.ApplyGeometry.Client {
				fr.SetClientGeometry(ar.ApplyGeometry.Geom)
			} else {
				fr.SetGeometry(ar.ApplyGeometry.Geom)
			}
		}
		if ar.ApplyMaxHorz != autoprops.Unset {
			fr.SetMaximizedHorz(ar.ApplyMaxHorz == autoprops.SetTrue, workarea)
		}
		if ar.ApplyMaxVert != autoprops.Unset {
			fr.SetMaximizedVert(ar.ApplyMaxVert == autoprops.SetTrue, workarea)
		}
		if ar.ApplyFullscreen != autoprops.Unset {
			fr.SetFullscreen(ar.ApplyFullscreen == autoprops.SetTrue, head.Geometry)
		}
	}
	fr.SetWorkspace(ws)
	cl.SetWorkspace(ws)
	m.Workspaces.Workspaces[ws].Add(fhandle, fr.Layer(), m.Registry.Resolve)
	m.Root.RecordCreated(chandle, win)

	m.applyFrameGeometry(fr)

	// The client window itself stays mapped regardless of which workspace
	// it lands on (an autoproperty rule may target a non-active one);
	// visibility is controlled by the parent decoration window alone,
	// same as workspace.MapUnmapFunc does on a workspace switch.
	if err := m.Conn.MapWindow(win); err != nil {
		return err
	}
	cl.SetMapped(true)

	onActive := ws == m.Workspaces.Active()
	if onActive {
		if err := m.Conn.MapWindow(parentWin); err != nil {
			return err
		}
	}
	fr.SetMapped(onActive)

	if err := m.Publisher.SetClientDesktop(win, ws); err != nil {
		m.Log.WithError(err).Debug("failed to publish client desktop")
	}
	m.restackAndPublish()
	if onActive {
		m.focus(cl)
	}
	return nil
}

// applyAutoProps looks up the first ApplyOnNew rule matching cl's class/
// role/title and applies its non-workarea-dependent bits directly, handing
// back the remainder for the caller to realize against a real workarea
// (spec.md §4.9 "Applied at well-defined lifecycle points", the "new
// client" point).
func (m *Manager) applyAutoProps(cl *client.Client, fr *frame.Frame) (autoprops.ApplyResult, bool) {
	if m.AutoProps == nil {
		return autoprops.ApplyResult{}, false
	}
	rule, ok := m.AutoProps.FindFirst(autoprops.SubjectOf(cl), autoprops.ApplyOnNew)
	if !ok {
		return autoprops.ApplyResult{}, false
	}
	return autoprops.Apply(rule, cl, fr), true
}

// initialClientSize picks a starting client-space size: the program's base
// size hint if it gave one, else its minimum size hint, else a generic
// 640x480 default (spec.md §4.3 "new
// clients without a WM-set position are centered on the active head" says
// nothing about size, so the size hint -- which every well-behaved
// application sets -- is preferred over a guess).
func initialClientSize(h client.SizeHints) (width, height uint32) {
	if h.HasBase && h.BaseWidth > 0 && h.BaseHeight > 0 {
		return h.BaseWidth, h.BaseHeight
	}
	if h.HasMin && h.MinWidth > 0 && h.MinHeight > 0 {
		return h.MinWidth, h.MinHeight
	}
	return 640, 480
}

// applyFrameGeometry pushes a frame's in-memory geometry to the X server:
// the decoration window, and the client window positioned/sized within it.
func (m *Manager) applyFrameGeometry(fr *frame.Frame) {
	if err := m.Conn.ConfigureGeometry(fr.ParentWindow(), fr.Geometry()); err != nil {
		m.Log.WithError(err).Debug("failed to configure frame parent geometry")
	}
	h := fr.ActiveClient()
	cl, ok := m.ResolveClient(h)
	if !ok {
		return
	}
	d := fr.Decoration()
	inner := fr.ClientGeometry()
	local := geom.Geometry{X: int32(d.Left), Y: int32(d.Top), Width: inner.Width, Height: inner.Height}
	if err := m.Conn.ConfigureGeometry(cl.WinID(), local); err != nil {
		m.Log.WithError(err).Debug("failed to configure client geometry")
	}
	if err := m.Conn.SendSyntheticConfigureNotify(cl.WinID(), inner, uint16(fr.BorderWidth)); err != nil {
		m.Log.WithError(err).Debug("failed to send synthetic ConfigureNotify")
	}
	m.restackAndPublish()
}

// handleGone tears down the client+frame backing win, shared by UnmapNotify
// and DestroyNotify (spec.md §3 "destroyed on UnmapNotify or DestroyNotify").
func (m *Manager) handleGone(win xproto.Window) {
	wobj, ok := m.Registry.Lookup(win)
	if !ok {
		return
	}
	cl, ok := wobj.(*client.Client)
	if !ok {
		return
	}

	fh := cl.Frame()
	if fr, ok := m.ResolveFrame(fh); ok {
		empty := fr.DetachClient(cl.Handle())
		if empty {
			m.destroyFrame(fr)
		} else {
			m.applyFrameGeometry(fr)
		}
	}

	m.Root.RecordDestroyed(cl.Handle())
	m.Registry.Remove(cl.Handle())
	m.restackAndPublish()

	if prev, ok := m.Registry.Focused(); !ok || prev == nil {
		m.focusFallback()
	}
}

func (m *Manager) destroyFrame(fr *frame.Frame) {
	for _, ws := range m.Workspaces.Workspaces {
		if ws.Contains(fr.Handle()) {
			ws.Remove(fr.Handle())
		}
	}
	if err := m.Conn.DestroyWindow(fr.ParentWindow()); err != nil {
		m.Log.WithError(err).Debug("failed to destroy frame's decoration window")
	}
	m.Registry.Remove(fr.Handle())
}

func (m *Manager) handleConfigureRequest(e xproto.ConfigureRequestEvent) {
	requested := geom.Geometry{X: int32(e.X), Y: int32(e.Y), Width: uint32(e.Width), Height: uint32(e.Height)}

	wobj, ok := m.Registry.Lookup(e.Window)
	cl, isClient := wobj.(*client.Client)
	if !ok || !isClient || cl.ConfigureLocked() {
		if err := m.Conn.SendSyntheticConfigureNotify(e.Window, requested, 0); err != nil {
			m.Log.WithError(err).Debug("failed to ack ConfigureRequest for unmanaged window")
		}
		return
	}

	fr, ok := m.ResolveFrame(cl.Frame())
	if !ok {
		return
	}
	fr.SetClientGeometry(requested)
	m.applyFrameGeometry(fr)
}

func (m *Manager) handleEnter(e xproto.EnterNotifyEvent) {
	if m.Config.Focus == config.FocusClick || m.Config.Focus == config.FocusNoFocus {
		return
	}
	wobj, ok := m.Registry.Lookup(e.Event)
	if !ok {
		return
	}
	cl, ok := wobj.(*client.Client)
	if !ok {
		return
	}
	m.focus(cl)
}

// handleButtonPress realizes spec.md §4.8 row 1 "Button drag on title/
// border": a press on a frame's decoration window raises+focuses it and,
// outside the client area, starts the mouse move/resize modal; a press
// forwarded from a client window (e.g. via a passive click-to-focus grab)
// only raises+focuses.
func (m *Manager) handleButtonPress(e xproto.ButtonPressEvent) {
	wobj, ok := m.Registry.Lookup(e.Event)
	if !ok {
		return
	}

	switch t := wobj.(type) {
	case *frame.Frame:
		t.Touch()
		m.beforeRaise(t)
		m.Workspaces.Current().Raise(t.Handle(), m.Registry.Resolve)
		m.restackAndPublish()
		if cl, ok := m.ResolveClient(t.ActiveClient()); ok {
			m.focus(cl)
		}
		m.maybeStartMoveResize(t, e)
	case *client.Client:
		t.Touch()
		if fr, ok := m.ResolveFrame(t.Frame()); ok {
			m.beforeRaise(fr)
			m.Workspaces.Current().Raise(fr.Handle(), m.Registry.Resolve)
			m.restackAndPublish()
		}
		m.focus(t)
	}
}

// maybeStartMoveResize decides, from where inside the decoration e landed,
// whether to install the mouse move/resize modal handler and with which
// edges (spec.md §4.8 "Button drag on title/border"). A press inside the
// client area (below the titlebar, inside the border) is left alone.
func (m *Manager) maybeStartMoveResize(fr *frame.Frame, e xproto.ButtonPressEvent) {
	if m.InstallModal == nil {
		return
	}
	d := fr.Decoration()
	g := fr.Geometry()
	x, y := int32(e.EventX), int32(e.EventY)

	titlebar := y < int32(d.Top)
	left := x < int32(d.Left)
	right := x >= int32(g.Width)-int32(d.Right)
	top := y < int32(d.Top)
	bottom := y >= int32(g.Height)-int32(d.Bottom)
	border := left || right || (top && !titlebar) || bottom
	if !titlebar && !border {
		return
	}

	mod1 := m.Conn.NormalizeModifiers(e.State)&uint16(x11.ModMod1) != 0
	if titlebar && mod1 {
		if m.maybeStartGroupingDrag(fr) {
			return
		}
	}

	resizing := border && !titlebar
	h, ok := m.ResolveClient(fr.ActiveClient())
	var hints client.SizeHints
	if ok {
		hints = h.Hints
	}
	workarea := x11.NearestHead(m.Heads, g).Workarea(m.Root.AggregateStrut())
	neighbors := m.siblingGeometries(fr)

	modal := handler.NewMouseMoveResize(fr, m.ResolveFrame, resizing, left, top, right, bottom, workarea, neighbors, hints)
	if err := m.InstallModal(modal); err != nil {
		m.Log.WithError(err).Debug("failed to install move/resize modal")
	}
}

// siblingGeometries lists every other mapped frame's geometry on the active
// workspace, the snap targets for the move/resize modal (spec.md §4.8
// "snaps to edges and neighbouring frames").
func (m *Manager) siblingGeometries(self *frame.Frame) []geom.Geometry {
	stack := m.Workspaces.Current().Stack()
	out := make([]geom.Geometry, 0, len(stack))
	for _, h := range stack {
		if h == self.Handle() {
			continue
		}
		if fr, ok := m.ResolveFrame(h); ok {
			out = append(out, fr.Geometry())
		}
	}
	return out
}

// frameAt hit-tests the current workspace's stack top-down, the GroupingDrag
// modal's drop-target lookup (spec.md §4.8 table row 3).
func (m *Manager) frameAt(x, y int32) (*frame.Frame, bool) {
	stack := m.Workspaces.Current().Stack()
	for i := len(stack) - 1; i >= 0; i-- {
		if fr, ok := m.ResolveFrame(stack[i]); ok && fr.Mapped() && fr.Geometry().Contains(x, y) {
			return fr, true
		}
	}
	return nil, false
}

// pendingFullscreen reports whether fr is fullscreen, GroupingDrag's signal
// to reject an attach in favor of spawning a new frame (spec.md §9's
// resolved open question, see modal_grouping.go's doc comment). This module
// applies fullscreen synchronously, so "pending transition" collapses to
// "currently fullscreen".
func (m *Manager) pendingFullscreen(fr *frame.Frame) bool {
	return fr.Fullscreen()
}

// maybeStartGroupingDrag installs the grouping-drag modal in place of the
// normal move/resize modal when a titlebar press is modified by Mod1
// (spec.md §4.8 table row 3 "Grouping drag").
func (m *Manager) maybeStartGroupingDrag(fr *frame.Frame) bool {
	if m.InstallModal == nil {
		return false
	}
	source := fr.ActiveClient()
	if source.Zero() {
		return false
	}
	modal := handler.NewGroupingDrag(source, m.ResolveFrame, m.frameAt, m.pendingFullscreen)
	modal.OnAttach = func(src wo.Handle, target *frame.Frame) {
		m.attachClientToFrame(src, target)
	}
	modal.OnNewFrame = func(src wo.Handle, at geom.Geometry) {
		m.newFrameForDetachedClient(src, at)
	}
	if err := m.InstallModal(modal); err != nil {
		m.Log.WithError(err).Debug("failed to install grouping drag modal")
		return false
	}
	return true
}

// detachClient pulls cl out of its current frame (destroying that frame if
// it is now empty) and gives it a fresh single-client frame at the old
// frame's geometry (spec.md §4.4 "Attach/detach": "Detaching ... spawns a
// new frame for it at the old frame's geometry").
func (m *Manager) detachClient(cl *client.Client) {
	fh := cl.Frame()
	oldFr, ok := m.ResolveFrame(fh)
	if !ok {
		return
	}
	at := oldFr.Geometry()
	if empty := oldFr.DetachClient(cl.Handle()); empty {
		m.destroyFrame(oldFr)
	} else {
		m.applyFrameGeometry(oldFr)
	}
	m.newFrameForDetachedClient(cl.Handle(), at)
}

// newFrameForDetachedClient builds a frame around an already-detached
// client, mirroring manageWindow's parent-window-creation recipe but
// without a MapRequest to react to.
func (m *Manager) newFrameForDetachedClient(source wo.Handle, at geom.Geometry) {
	cl, ok := m.ResolveClient(source)
	if !ok {
		return
	}
	parentWin, err := m.Conn.CreateParent(0,
		uint32(xproto.EventMaskSubstructureRedirect|xproto.EventMaskExposure|
			xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|xproto.EventMaskFocusChange))
	if err != nil {
		m.Log.WithError(err).Warn("failed to create parent window for detached client")
		return
	}

	fr := frame.New(parentWin, source, frame.DecorState{HasTitlebar: true, HasBorder: true, DecorName: "Default"})
	fr.BorderWidth = m.Config.BorderWidth
	fr.TitlebarHeight = m.Config.TitlebarHeight
	fhandle, err := m.Registry.Insert(fr)
	if err != nil {
		m.Conn.DestroyWindow(parentWin)
		return
	}
	fr.SetHandle(fhandle)
	fr.SetParentWindow(parentWin)
	cl.SetFrame(fhandle)

	if err := m.Conn.Reparent(cl.WinID(), parentWin); err != nil {
		m.Log.WithError(err).Debug("failed to reparent detached client")
	}

	if at.Width == 0 || at.Height == 0 {
		width, height := initialClientSize(cl.Hints)
		at.Width, at.Height = width, height
	}
	fr.SetGeometry(at)

	ws := cl.Workspace()
	if ws == wo.Sticky {
		ws = m.Workspaces.Active()
	}
	fr.SetWorkspace(ws)
	m.Workspaces.Workspaces[ws].Add(fhandle, fr.Layer(), m.Registry.Resolve)
	m.applyFrameGeometry(fr)

	onActive := ws == m.Workspaces.Active()
	if onActive {
		if err := m.Conn.MapWindow(parentWin); err != nil {
			m.Log.WithError(err).Debug("failed to map detached client's new frame")
		}
	}
	fr.SetMapped(onActive)

	if err := m.Publisher.SetClientDesktop(cl.WinID(), ws); err != nil {
		m.Log.WithError(err).Debug("failed to publish client desktop")
	}
	m.restackAndPublish()
	if onActive {
		m.focus(cl)
	}
	m.lastDetached = cl.Handle()
}

// attachClientToFrame moves source (detaching it from any current frame
// first) into target's tab strip (spec.md §4.4 "Attach/detach"), the
// GroupingDrag drop-onto-frame path and KindAttachMarked's target.
func (m *Manager) attachClientToFrame(source wo.Handle, target *frame.Frame) {
	cl, ok := m.ResolveClient(source)
	if !ok {
		return
	}
	if oldFh := cl.Frame(); !oldFh.Zero() && oldFh != target.Handle() {
		if oldFr, ok := m.ResolveFrame(oldFh); ok {
			if empty := oldFr.DetachClient(source); empty {
				m.destroyFrame(oldFr)
			} else {
				m.applyFrameGeometry(oldFr)
			}
		}
	}
	target.AttachClient(source)
	cl.SetFrame(target.Handle())
	ws := target.Workspace()
	cl.SetWorkspace(ws)
	if err := m.Conn.Reparent(cl.WinID(), target.ParentWindow()); err != nil {
		m.Log.WithError(err).Debug("failed to reparent attached client")
	}
	if err := m.Publisher.SetClientDesktop(cl.WinID(), ws); err != nil {
		m.Log.WithError(err).Debug("failed to publish client desktop")
	}
	m.applyFrameGeometry(target)
	m.focus(cl)
}

// attachMarked attaches the most recently detached client into f, the
// KindAttachMarked mutator (spec.md §4.4 "Attach/detach").
func (m *Manager) attachMarked(f *frame.Frame) {
	if m.lastDetached.Zero() {
		return
	}
	m.attachClientToFrame(m.lastDetached, f)
	m.lastDetached = wo.Handle{}
}

// beforeRaise demotes every other fullscreen-above-dock frame out of the
// way before f is raised (spec.md §4.5 "Fullscreen stacking interaction":
// "raising a different frame above a fullscreen-above-dock one demotes it
// back to its saved layer").
func (m *Manager) beforeRaise(f *frame.Frame) {
	ws := m.Workspaces.Current()
	for h, st := range m.fsAbove {
		if h == f.Handle() || !st.Active {
			continue
		}
		other, ok := m.ResolveFrame(h)
		if !ok {
			continue
		}
		st.DemoteBeforeRaise(other, ws, m.Registry.Resolve)
		other.SetLayer(st.SavedLayer)
	}
}

// repromoteFullscreenAbove re-promotes f back to LayerAboveDock when it
// regains focus after having been demoted by beforeRaise (spec.md §4.5
// "Fullscreen stacking interaction": "it regains the above-dock layer the
// next time it is focused").
func (m *Manager) repromoteFullscreenAbove(f *frame.Frame) {
	st, ok := m.fsAbove[f.Handle()]
	if !ok || st.Active {
		return
	}
	ws := m.Workspaces.Current()
	st.RepromoteOnFocus(f, ws, m.Registry.Resolve)
	f.SetLayer(wo.LayerAboveDock)
}

// setFullscreenAbove keeps fsAbove and the workspace stack in sync with a
// fullscreen toggle that already happened on f. f.SetFullscreen has already
// moved f's own Layer to/from LayerAboveDock; this only updates the
// bookkeeping beforeRaise/repromoteFullscreenAbove need and repositions f in
// the stack to match.
func (m *Manager) setFullscreenAbove(f *frame.Frame, entering bool, priorLayer wo.Layer) {
	ws := m.Workspaces.Current()
	if entering {
		m.fsAbove[f.Handle()] = &workspace.FullscreenAboveState{Active: true, SavedLayer: priorLayer}
	} else {
		delete(m.fsAbove, f.Handle())
	}
	ws.Reband(f.Handle(), f.Layer(), m.Registry.Resolve)
}

func (m *Manager) handleKeyPress(e xproto.KeyPressEvent) {
	sym := m.Conn.KeycodeToKeysym(e.Detail)
	_ = sym // resolved for completeness; the grabber matches on (mod, keycode)
	mod := m.Conn.NormalizeModifiers(e.State)
	chord := keygrabber.Chord{Mod: mod, Code: e.Detail}

	result, lines := m.Grabber.Match(keygrabber.ContextGlobal, chord, time.Now())
	if result != keygrabber.MatchTerminal {
		return
	}

	var ev action.Event
	for _, line := range lines {
		a, err := action.Parse(line)
		if err != nil {
			m.Log.WithError(err).WithField("action", line).Warn("failed to parse bound action")
			continue
		}
		if a.Kind == action.KindMoveResize {
			m.startKeyboardMoveResize()
			continue
		}
		ev.Actions = append(ev.Actions, a)
	}
	if len(ev.Actions) == 0 {
		return
	}

	target := m.focusedWO()
	target.Touch()
	handler.Dispatch(m.Mutators(), action.Performed{Target: target, Event: ev, RawEvent: e})
}

// startKeyboardMoveResize installs the "Keyboard move/resize" modal handler
// on the currently focused frame (spec.md §4.8 row 2, action "MoveResize").
// Bindings while the modal is active are matched against the move-resize
// key context rather than the global one.
func (m *Manager) startKeyboardMoveResize() {
	if m.InstallModal == nil {
		return
	}
	wobj, ok := m.Registry.Focused()
	if !ok {
		return
	}
	target, ok := wobj.(*client.Client)
	if !ok {
		return
	}
	fr, ok := m.ResolveFrame(target.Frame())
	if !ok {
		return
	}
	workarea := x11.NearestHead(m.Heads, fr.Geometry()).Workarea(m.Root.AggregateStrut())
	var hints client.SizeHints
	if c, ok := m.ResolveClient(fr.ActiveClient()); ok {
		hints = c.Hints
	}
	step := m.Config.KeyboardMoveResizeStep
	if step == 0 {
		step = 10
	}
	modal := handler.NewKeyboardMoveResize(fr, m.ResolveFrame, workarea, hints, m.Grabber, step)
	if err := m.InstallModal(modal); err != nil {
		m.Log.WithError(err).Debug("failed to install keyboard move/resize modal")
	}
}

// handleClientMessage dispatches one of the ten client messages spec.md
// §4.10 ("Accepted client messages") says the core accepts. Each case is
// its own method below; this switch only routes by atom.
func (m *Manager) handleClientMessage(e xproto.ClientMessageEvent) {
	switch e.Type {
	case m.Atoms.NetCloseWindow:
		if wobj, ok := m.Registry.Lookup(e.Window); ok {
			if cl, ok := wobj.(*client.Client); ok && !cl.Deny.Has(client.DenyClose) {
				m.closeClient(cl)
			}
		}
	case m.Atoms.NetActiveWindow:
		m.handleNetActiveWindow(e)
	case m.Atoms.NetWmState:
		m.handleNetWmState(e)
	case m.Atoms.WMChangeState:
		m.handleWmChangeState(e)
	case m.Atoms.NetCurrentDesktop:
		m.handleNetCurrentDesktop(e)
	case m.Atoms.NetNumberOfDesktops:
		m.handleNetNumberOfDesktops(e)
	case m.Atoms.NetWmDesktop:
		m.handleNetWmDesktop(e)
	case m.Atoms.NetRestackWindow:
		m.handleNetRestackWindow(e)
	case m.Atoms.NetRequestFrameExtents:
		m.handleNetRequestFrameExtents(e)
	case m.Atoms.PekwmCmd:
		m.handlePekwmCmd(e)
	}
}

// handleNetActiveWindow realizes spec.md §4.10's _NET_ACTIVE_WINDOW request,
// gated by DenyActiveWindow and the focus-steal protect window (spec.md
// §4.6 "focus-steal prevention").
func (m *Manager) handleNetActiveWindow(e xproto.ClientMessageEvent) {
	wobj, ok := m.Registry.Lookup(e.Window)
	if !ok {
		return
	}
	cl, ok := wobj.(*client.Client)
	if !ok || cl.Deny.Has(client.DenyActiveWindow) {
		return
	}
	if m.focusStealBlocked(cl) {
		return
	}
	if fr, ok := m.ResolveFrame(cl.Frame()); ok {
		m.beforeRaise(fr)
		m.Workspaces.Current().Raise(fr.Handle(), m.Registry.Resolve)
		m.restackAndPublish()
	}
	m.focus(cl)
}

// focusStealBlocked reports whether granting focus to requesting would
// violate the protect window: the currently focused WO counts as having
// just been interacted with for Config.ProtectMs after its last input
// activity, and a request arriving inside that window is refused (spec.md
// §4.6 "a window that just received real user input is protected from
// having focus stolen out from under it for ProtectMs").
func (m *Manager) focusStealBlocked(requesting *client.Client) bool {
	if m.Config.ProtectMs <= 0 {
		return false
	}
	cur, ok := m.Registry.Focused()
	if !ok || cur == nil || cur.Handle() == requesting.Handle() {
		return false
	}
	protect := time.Duration(m.Config.ProtectMs) * time.Millisecond
	return time.Since(cur.LastActivity()) < protect
}

// handleNetWmState wires ewmh.DecodeWmState into the frame state mutators,
// applying up to two state atoms per spec.md §6's bit layout.
func (m *Manager) handleNetWmState(e xproto.ClientMessageEvent) {
	wobj, ok := m.Registry.Lookup(e.Window)
	if !ok {
		return
	}
	cl, ok := wobj.(*client.Client)
	if !ok {
		return
	}
	fr, ok := m.ResolveFrame(cl.Frame())
	if !ok {
		return
	}
	msg := ewmh.DecodeWmState(e)
	for _, prop := range []xproto.Atom{msg.Prop1, msg.Prop2} {
		if prop == xproto.AtomNone {
			continue
		}
		m.applyWmStateProp(cl, fr, prop, msg.Action)
	}
}

func (m *Manager) applyWmStateProp(cl *client.Client, fr *frame.Frame, prop xproto.Atom, sa ewmh.StateAction) {
	state := stateKindFromAction(sa)
	switch prop {
	case m.Atoms.NetWmStateFullscreen:
		if cl.Deny.Has(client.DenyStateFullscreen) {
			return
		}
		wasLayer := fr.Layer()
		v := applyWmState(state, fr.Fullscreen())
		fr.SetFullscreen(v, m.headGeometryForFrame(fr))
		m.setFullscreenAbove(fr, v, wasLayer)
	case m.Atoms.NetWmStateMaxHorz:
		if cl.Deny.Has(client.DenyStateMaximizedHorz) {
			return
		}
		fr.SetMaximizedHorz(applyWmState(state, fr.MaximizedHorz()), m.workareaForFrame(fr))
	case m.Atoms.NetWmStateMaxVert:
		if cl.Deny.Has(client.DenyStateMaximizedVert) {
			return
		}
		fr.SetMaximizedVert(applyWmState(state, fr.MaximizedVert()), m.workareaForFrame(fr))
	case m.Atoms.NetWmStateShaded:
		if cl.Deny.Has(client.DenyStateShaded) {
			return
		}
		fr.SetShade(applyWmState(state, fr.Shaded()))
	case m.Atoms.NetWmStateSticky:
		if cl.Deny.Has(client.DenyStateSticky) {
			return
		}
		fr.SetSticky(applyWmState(state, fr.Sticky()))
	case m.Atoms.NetWmStateSkipTaskbar, m.Atoms.NetWmStateSkipPager:
		cur := fr.SkipFlags().Has(wo.SkipTaskbar)
		if applyWmState(state, cur) {
			fr.SetSkipFlags(fr.SkipFlags() | wo.SkipTaskbar | wo.SkipPager)
		} else {
			fr.SetSkipFlags(fr.SkipFlags() &^ (wo.SkipTaskbar | wo.SkipPager))
		}
	default:
		return
	}
	m.applyFrameGeometry(fr)
}

func stateKindFromAction(a ewmh.StateAction) action.StateKind {
	switch a {
	case ewmh.StateAdd:
		return action.StateSet
	case ewmh.StateRemove:
		return action.StateUnset
	default:
		return action.StateToggle
	}
}

func applyWmState(s action.StateKind, cur bool) bool {
	switch s {
	case action.StateSet:
		return true
	case action.StateUnset:
		return false
	default:
		return !cur
	}
}

func (m *Manager) headGeometryForFrame(fr *frame.Frame) geom.Geometry {
	return x11.NearestHead(m.Heads, fr.Geometry()).Geometry
}

func (m *Manager) workareaForFrame(fr *frame.Frame) geom.Geometry {
	head := x11.NearestHead(m.Heads, fr.Geometry())
	return head.Workarea(m.Root.AggregateStrut())
}

// handleWmChangeState realizes the ICCCM WM_CHANGE_STATE request: a client
// asking to be iconified (state value 3, IconicState).
func (m *Manager) handleWmChangeState(e xproto.ClientMessageEvent) {
	wobj, ok := m.Registry.Lookup(e.Window)
	if !ok {
		return
	}
	cl, ok := wobj.(*client.Client)
	if !ok || cl.Deny.Has(client.DenyIconify) {
		return
	}
	const iconicState = 3
	if len(e.Data.Data32) > 0 && e.Data.Data32[0] == iconicState {
		cl.SetIconified(true)
	}
}

// handleNetCurrentDesktop realizes a pager's _NET_CURRENT_DESKTOP request
// (spec.md §4.5 "Workspace switch").
func (m *Manager) handleNetCurrentDesktop(e xproto.ClientMessageEvent) {
	if len(e.Data.Data32) == 0 {
		return
	}
	n := int32(e.Data.Data32[0])
	m.Workspaces.SetWorkspace(n, m.Registry.Resolve, m.mapUnmapWO, m.focusWO, wo.WO(&m.Root.Base))
	if err := m.Publisher.SetCurrentDesktop(m.Workspaces.Active()); err != nil {
		m.Log.WithError(err).Debug("failed to republish current desktop")
	}
}

// handleNetNumberOfDesktops acknowledges a _NET_NUMBER_OF_DESKTOPS request.
// The workspace count is fixed at startup from config (spec.md §1's
// distillation does not model dynamic desktop resize), so the only honest
// response is to republish the actual count rather than silently drop the
// request or pretend to resize.
func (m *Manager) handleNetNumberOfDesktops(e xproto.ClientMessageEvent) {
	if err := m.Publisher.SetNumberOfDesktops(len(m.Workspaces.Workspaces)); err != nil {
		m.Log.WithError(err).Debug("failed to republish desktop count")
	}
}

// handleNetWmDesktop moves a client (and its frame) to the requested
// desktop, or marks it sticky for the EWMH 0xFFFFFFFF sentinel (spec.md §3
// "Sticky").
func (m *Manager) handleNetWmDesktop(e xproto.ClientMessageEvent) {
	wobj, ok := m.Registry.Lookup(e.Window)
	if !ok {
		return
	}
	cl, ok := wobj.(*client.Client)
	if !ok {
		return
	}
	if len(e.Data.Data32) == 0 {
		return
	}
	raw := e.Data.Data32[0]
	n := int32(raw)
	if raw == 0xFFFFFFFF {
		n = wo.Sticky
	}
	fr, ok := m.ResolveFrame(cl.Frame())
	if !ok {
		return
	}
	if n == wo.Sticky {
		fr.SetSticky(true)
	} else if n >= 0 && int(n) < len(m.Workspaces.Workspaces) {
		fr.SetSticky(false)
		m.Workspaces.MoveFrameToWorkspace(fr.Handle(), n, fr.Layer(), m.Registry.Resolve)
		fr.SetWorkspace(n)
		for _, ch := range fr.Clients() {
			if c2, ok := m.ResolveClient(ch); ok {
				c2.SetWorkspace(n)
			}
		}
		m.mapUnmapWO(fr, n == m.Workspaces.Active())
	}
	if err := m.Publisher.SetClientDesktop(cl.WinID(), fr.Workspace()); err != nil {
		m.Log.WithError(err).Debug("failed to republish client desktop")
	}
	m.restackAndPublish()
}

// handleNetRestackWindow realizes a pager's _NET_RESTACK_WINDOW request,
// scoped to the common case pagers actually send: detail byte StackBelow
// (1) lowers, anything else raises (the full ICCCM sibling-relative
// restack semantics are not modeled).
func (m *Manager) handleNetRestackWindow(e xproto.ClientMessageEvent) {
	wobj, ok := m.Registry.Lookup(e.Window)
	if !ok {
		return
	}
	cl, ok := wobj.(*client.Client)
	if !ok {
		return
	}
	fr, ok := m.ResolveFrame(cl.Frame())
	if !ok {
		return
	}
	const detailBelow = 1
	var detail uint32
	if len(e.Data.Data32) > 2 {
		detail = e.Data.Data32[2]
	}
	m.beforeRaise(fr)
	if detail == detailBelow {
		m.Workspaces.Current().Lower(fr.Handle(), m.Registry.Resolve)
	} else {
		m.Workspaces.Current().Raise(fr.Handle(), m.Registry.Resolve)
	}
	m.restackAndPublish()
}

// handleNetRequestFrameExtents answers spec.md §4.10 "on request" for
// _NET_REQUEST_FRAME_EXTENTS: the real decoration for an already-managed
// window, or the default new-frame decoration for one that isn't mapped
// yet (a pager/launcher probing before the window appears).
func (m *Manager) handleNetRequestFrameExtents(e xproto.ClientMessageEvent) {
	var d geom.Dimensions
	if wobj, ok := m.Registry.Lookup(e.Window); ok {
		if cl, ok := wobj.(*client.Client); ok {
			if fr, ok := m.ResolveFrame(cl.Frame()); ok {
				d = fr.Decoration()
			}
		}
	} else {
		d = geom.Dimensions{
			Top: m.Config.TitlebarHeight + m.Config.BorderWidth,
			Right: m.Config.BorderWidth, Bottom: m.Config.BorderWidth, Left: m.Config.BorderWidth,
		}
	}
	if err := m.Publisher.SetFrameExtents(e.Window, d); err != nil {
		m.Log.WithError(err).Debug("failed to publish requested frame extents")
	}
}

// handlePekwmCmd reassembles a (possibly multi-message) _PEKWM_CMD and
// dispatches the parsed action list against the event's window, or the
// currently focused WO if the command targets no specific client (spec.md
// §6 "_PEKWM_CMD").
func (m *Manager) handlePekwmCmd(e xproto.ClientMessageEvent) {
	payload, done := m.cmdReassembler.Feed(e.Data.Data8[:])
	if !done {
		return
	}
	ev, err := ActionFromCmd(payload)
	if err != nil {
		m.Log.WithError(err).WithField("cmd", payload).Warn("failed to parse _PEKWM_CMD payload")
		return
	}
	target := m.focusedWO()
	if wobj, ok := m.Registry.Lookup(e.Window); ok {
		target = wobj
	}
	handler.Dispatch(m.Mutators(), action.Performed{Target: target, Event: ev, RawEvent: e})
}

func (m *Manager) handlePropertyNotify(e xproto.PropertyNotifyEvent) {
	if e.Atom != m.Atoms.NetWmName && e.Atom != xproto.AtomWmName {
		return
	}
	wobj, ok := m.Registry.Lookup(e.Window)
	if !ok {
		return
	}
	cl, ok := wobj.(*client.Client)
	if !ok {
		return
	}
	if title, err := m.Conn.WindowTitle(e.Window); err == nil {
		cl.SetRealTitle(title)
	}
}

// ResolveClient/ResolveFrame narrow wo.Registry.Resolve to a concrete type,
// the shape internal/handler.Mutators needs (spec.md §9's weak-handle
// upgrade pattern).
func (m *Manager) ResolveClient(h wo.Handle) (*client.Client, bool) {
	w, ok := m.Registry.Resolve(h)
	if !ok {
		return nil, false
	}
	c, ok := w.(*client.Client)
	return c, ok
}

func (m *Manager) ResolveFrame(h wo.Handle) (*frame.Frame, bool) {
	w, ok := m.Registry.Resolve(h)
	if !ok {
		return nil, false
	}
	f, ok := w.(*frame.Frame)
	return f, ok
}

func (m *Manager) focusedWO() wo.WO {
	if w, ok := m.Registry.Focused(); ok {
		return w
	}
	return &m.Root.Base
}

func (m *Manager) focus(cl *client.Client) {
	m.Registry.SetFocused(cl.Handle())
	if err := m.Conn.SetInputFocus(cl.WinID(), xproto.InputFocusPointerRoot, xproto.TimeCurrentTime); err != nil {
		m.Log.WithError(err).Debug("failed to set input focus")
	}
	if err := m.Publisher.SetActiveWindow(cl.WinID()); err != nil {
		m.Log.WithError(err).Debug("failed to publish active window")
	}
	if fh := cl.Frame(); !fh.Zero() {
		ws := m.Workspaces.Current()
		ws.Touch(fh)
		ws.SetLastFocused(fh)
		if fr, ok := m.ResolveFrame(fh); ok {
			m.repromoteFullscreenAbove(fr)
		}
	}
}

func (m *Manager) focusFallback() {
	ws := m.Workspaces.Current()
	if mru := ws.MRU(); len(mru) > 0 {
		if fr, ok := m.ResolveFrame(mru[0]); ok {
			if cl, ok := m.ResolveClient(fr.ActiveClient()); ok {
				m.focus(cl)
				return
			}
		}
	}
	m.Registry.SetFocused(wo.Handle{})
	if err := m.Conn.SetInputFocus(m.Conn.Root, xproto.InputFocusPointerRoot, xproto.TimeCurrentTime); err != nil {
		m.Log.WithError(err).Debug("failed to revert input focus to root")
	}
}

// restackAndPublish applies the workspace's in-memory bottom-to-top layer
// order to the real X11 stack and republishes _NET_CLIENT_LIST_STACKING
// (spec.md §4.5's z-order list has no effect until reflected on the
// server). Each window is raised above the one placed before it, which
// reproduces the full order in one pass without needing sibling lookups.
func (m *Manager) restackAndPublish() {
	stack := m.Workspaces.Current().Stack()
	parents := make([]xproto.Window, 0, len(stack))
	for _, h := range stack {
		if fr, ok := m.ResolveFrame(h); ok {
			parents = append(parents, fr.ParentWindow())
		}
	}
	for _, win := range parents {
		mask := uint16(xproto.ConfigWindowStackMode)
		if err := xproto.ConfigureWindowChecked(m.Conn.X, win, mask, []uint32{uint32(xproto.StackModeAbove)}).Check(); err != nil {
			m.Log.WithError(err).WithField("window", win).Debug("failed to restack frame")
		}
	}

	stackingOrder := make([]xproto.Window, 0, len(parents))
	for i := len(parents) - 1; i >= 0; i-- {
		stackingOrder = append(stackingOrder, parents[i])
	}
	m.Root.PublishStacking(stackingOrder)
}

// Mutators wires this Manager's live state into the action dispatcher
// (spec.md §4.7), so dispatching an action actually mutates X11 state
// rather than just the in-memory WO tree.
func (m *Manager) Mutators() handler.Mutators {
	root := wo.WO(&m.Root.Base)
	return handler.Mutators{
		Resolve:       m.Registry.Resolve,
		ResolveClient: m.ResolveClient,
		ResolveFrame:  m.ResolveFrame,
		HeadWorkarea: func(f *frame.Frame) geom.Geometry {
			head := x11.NearestHead(m.Heads, f.Geometry())
			return head.Workarea(m.Root.AggregateStrut())
		},
		HeadGeometry: func(f *frame.Frame) geom.Geometry {
			return x11.NearestHead(m.Heads, f.Geometry()).Geometry
		},
		HeadByIndex: func(i int) (geom.Geometry, bool) {
			if i < 0 || i >= len(m.Heads) {
				return geom.Geometry{}, false
			}
			return m.Heads[i].Workarea(m.Root.AggregateStrut()), true
		},
		Siblings:   m.siblingGeometries,
		Workspaces: m.Workspaces,
		MapUnmap:   m.mapUnmapWO,
		Focus:      m.focusWO,
		Root:       root,

		WarpPointer: func(x, y int32) {
			if err := m.Conn.WarpPointer(x, y); err != nil {
				m.Log.WithError(err).Debug("failed to warp pointer")
			}
		},
		DetachClient: m.detachClient,
		AttachMarked: m.attachMarked,

		SetFullscreenAbove: m.setFullscreenAbove,
		BeforeRaise:        m.beforeRaise,

		Close:   m.closeClient,
		Exec:    m.exec,
		Restart: m.requestRestart,
		Exit:    m.requestExit,
		Reload:  m.requestReload,
		RepublishState: func(f *frame.Frame) {
			m.applyFrameGeometry(f)
		},
	}
}

func (m *Manager) mapUnmapWO(w wo.WO, doMap bool) {
	fr, ok := w.(*frame.Frame)
	if !ok {
		return
	}
	if doMap {
		m.Conn.MapWindow(fr.ParentWindow())
	} else {
		m.Conn.UnmapWindow(fr.ParentWindow())
	}
	fr.SetMapped(doMap)
}

func (m *Manager) focusWO(w wo.WO) {
	fr, ok := w.(*frame.Frame)
	if !ok {
		return
	}
	if cl, ok := m.ResolveClient(fr.ActiveClient()); ok {
		m.focus(cl)
	}
}

// closeClient asks a client to close via WM_DELETE_WINDOW if it advertises
// support, falling back to a forced DestroyWindow (mirroring manager.go's
// takeFocusProp-style WM_PROTOCOLS probe, generalized from WM_TAKE_FOCUS to
// WM_DELETE_WINDOW).
func (m *Manager) closeClient(cl *client.Client) {
	if m.supportsProtocol(cl.WinID(), m.Atoms.WMDeleteWindow) {
		msg := xproto.ClientMessageEvent{
			Format: 32,
			Window: cl.WinID(),
			Type:   m.Atoms.WMProtocols,
			Data: xproto.ClientMessageDataUnionData32New([]uint32{
				uint32(m.Atoms.WMDeleteWindow), uint32(xproto.TimeCurrentTime), 0, 0, 0,
			}),
		}
		if err := xproto.SendEventChecked(m.Conn.X, false, cl.WinID(), xproto.EventMaskNoEvent, string(msg.Bytes())).Check(); err == nil {
			return
		}
	}
	if err := m.Conn.DestroyWindow(cl.WinID()); err != nil {
		m.Log.WithError(err).WithField("window", cl.WinID()).Warn("failed to force-close client")
	}
}

func (m *Manager) supportsProtocol(win xproto.Window, atom xproto.Atom) bool {
	reply, err := xproto.GetProperty(m.Conn.X, false, win, m.Atoms.WMProtocols, xproto.GetPropertyTypeAny, 0, 64).Reply()
	if err != nil || reply == nil {
		return false
	}
	for v := reply.Value; len(v) >= 4; v = v[4:] {
		got := xproto.Atom(uint32(v[0]) | uint32(v[1])<<8 | uint32(v[2])<<16 | uint32(v[3])<<24)
		if got == atom {
			return true
		}
	}
	return false
}

// exec spawns an external command (spec.md §4.7 "external" action family)
// through the lifecycle supervisor so it is reaped like any other tracked
// subprocess.
func (m *Manager) exec(cmdline string) {
	if _, err := m.Lifecycle.Spawn(cmdline, "/bin/sh", "-c", cmdline); err != nil {
		m.Log.WithError(err).WithField("cmd", cmdline).Warn("exec failed")
	}
}

func (m *Manager) requestRestart() {
	if m.OnRestart != nil {
		m.OnRestart()
	}
}

func (m *Manager) requestExit() {
	if m.OnExit != nil {
		m.OnExit()
	}
}

func (m *Manager) requestReload() {
	if m.OnReload != nil {
		m.OnReload()
	}
}

// ActionFromCmd parses a reassembled _PEKWM_CMD payload (spec.md §6
// "_PEKWM_CMD" client-message reassembly) into an Event ready for Dispatch.
func ActionFromCmd(payload string) (action.Event, error) {
	return action.ParseList(strings.TrimSpace(payload))
}
