// Package wo implements the window-object model: the polymorphic tree whose
// nodes represent every visible on-screen entity (spec.md §3 "Window
// object"). pekwm's C++ hierarchy (PWinObj -> PDecor -> Frame, PWinObj ->
// Client, PWinObj -> Menu, ...) is rewritten per spec.md §9 as a single
// interface plus a type tag for dispatch, backed by an arena (Registry) of
// generation-tagged slots so long-lived references can be held as weak
// Handles instead of raw pointers.
package wo

import (
	"time"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/pekwm/pekwm-sub002/internal/geom"
)

// Type tags every WO with its concrete kind for fast dispatch on common
// paths, per spec.md §9.
type Type uint8

const (
	TypeRoot Type = iota
	TypeClient
	TypeFrame
	TypeMenu
	TypeCmdDialog
	TypeSearchDialog
	TypeStatus
	TypeDockapp
	TypeScreenEdge
	TypeWorkspaceIndicator
)

func (t Type) String() string {
	switch t {
	case TypeRoot:
		return "root"
	case TypeClient:
		return "client"
	case TypeFrame:
		return "frame"
	case TypeMenu:
		return "menu"
	case TypeCmdDialog:
		return "cmd-dialog"
	case TypeSearchDialog:
		return "search-dialog"
	case TypeStatus:
		return "status"
	case TypeDockapp:
		return "dockapp"
	case TypeScreenEdge:
		return "screen-edge"
	case TypeWorkspaceIndicator:
		return "workspace-indicator"
	default:
		return "unknown"
	}
}

// Layer is one of the ordered stacking bands (spec.md §3, §4.5). Values are
// declared bottom-to-top so int comparison gives stacking order directly.
type Layer uint8

const (
	LayerDesktop Layer = iota
	LayerBelow
	LayerNormal
	LayerOnTop
	LayerDocked
	LayerMenu
	LayerAboveDock
	LayerCritical
	numLayers
)

func (l Layer) String() string {
	names := [...]string{"desktop", "below", "normal", "ontop", "docked", "menu", "above-dock", "critical"}
	if int(l) < len(names) {
		return names[l]
	}
	return "unknown"
}

// Skip is a bitmask of sets a WO may opt out of, per spec.md §3.
type Skip uint8

const (
	SkipMenus Skip = 1 << iota
	SkipFocusToggle
	SkipTaskbar
	SkipPager
	SkipSnap
)

func (s Skip) Has(f Skip) bool { return s&f != 0 }

// Sticky is the workspace sentinel meaning "visible on all workspaces".
const Sticky int32 = -1

// WO is the shared trait every managed on-screen entity implements. It is a
// deliberately small surface: the event loop and action handler only need
// enough here to route input and to keep the stacking/focus invariants
// (spec.md §8) true; concrete types (client.Client, frame.Frame, ...) carry
// the richer per-kind state and satisfy this interface alongside it.
type WO interface {
	// Handle is this WO's stable weak reference into its Registry.
	Handle() Handle
	Type() Type
	WinID() xproto.Window

	Geometry() geom.Geometry
	SetGeometry(geom.Geometry)

	Workspace() int32
	SetWorkspace(int32)

	Layer() Layer
	SetLayer(Layer)

	Mapped() bool
	SetMapped(bool)

	Iconified() bool
	SetIconified(bool)

	Focused() bool
	SetFocused(bool)
	Focusable() bool

	Sticky() bool
	SetSticky(bool)

	SkipFlags() Skip
	SetSkipFlags(Skip)

	Parent() WO
	SetParent(WO)
	Children() []WO
	AddChild(WO)
	RemoveChild(WO)

	LastActivity() time.Time
	Touch()
}

// Base implements the bookkeeping shared by every concrete WO so that
// client.Client, frame.Frame, etc. can embed it instead of re-implementing
// the bijection/parent-child plumbing spec.md §3 requires of all of them.
type Base struct {
	handle       Handle
	typ          Type
	win          xproto.Window
	geometry     geom.Geometry
	workspace    int32
	layer        Layer
	mapped       bool
	iconified    bool
	focused      bool
	focusable    bool
	sticky       bool
	skip         Skip
	parent       WO
	children     []WO
	lastActivity time.Time
}

// NewBase constructs the embeddable WO state. Call SetHandle once the
// concrete WO has been registered, since the handle is only known after
// Registry.Insert returns it.
func NewBase(typ Type, win xproto.Window) Base {
	return Base{typ: typ, win: win, focusable: true, lastActivity: time.Now()}
}

func (b *Base) SetHandle(h Handle) { b.handle = h }
func (b *Base) Handle() Handle     { return b.handle }
func (b *Base) Type() Type         { return b.typ }
func (b *Base) WinID() xproto.Window { return b.win }

func (b *Base) Geometry() geom.Geometry      { return b.geometry }
func (b *Base) SetGeometry(g geom.Geometry)  { b.geometry = g }

func (b *Base) Workspace() int32      { return b.workspace }
func (b *Base) SetWorkspace(ws int32) { b.workspace = ws }

func (b *Base) Layer() Layer      { return b.layer }
func (b *Base) SetLayer(l Layer)  { b.layer = l }

func (b *Base) Mapped() bool     { return b.mapped }
func (b *Base) SetMapped(m bool) { b.mapped = m }

func (b *Base) Iconified() bool     { return b.iconified }
func (b *Base) SetIconified(i bool) { b.iconified = i }

func (b *Base) Focused() bool {
	return b.focused
}
func (b *Base) SetFocused(f bool) { b.focused = f }
func (b *Base) Focusable() bool   { return b.focusable }
func (b *Base) SetFocusable(f bool) { b.focusable = f }

func (b *Base) Sticky() bool     { return b.sticky }
func (b *Base) SetSticky(s bool) { b.sticky = s }

func (b *Base) SkipFlags() Skip      { return b.skip }
func (b *Base) SetSkipFlags(s Skip)  { b.skip = s }

func (b *Base) Parent() WO     { return b.parent }
func (b *Base) SetParent(p WO) { b.parent = p }

func (b *Base) Children() []WO { return b.children }

func (b *Base) AddChild(c WO) { b.children = append(b.children, c) }

func (b *Base) RemoveChild(c WO) {
	for i, ch := range b.children {
		if ch == c {
			b.children = append(b.children[:i], b.children[i+1:]...)
			return
		}
	}
}

func (b *Base) LastActivity() time.Time { return b.lastActivity }
func (b *Base) Touch()                  { b.lastActivity = time.Now() }
