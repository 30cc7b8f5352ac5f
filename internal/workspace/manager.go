package workspace

import "github.com/pekwm/pekwm-sub002/internal/wo"

// Manager owns the fixed set of workspaces and the active/previous
// tracking spec.md §4.5 "Workspace switch" describes. It is grounded on
// funkycode-marwind's wm.go `workspaces [10]*workspace` field and
// `switchWorkspace`, generalized to a configurable count and the full
// setWorkspace procedure (map/unmap, focus hand-off, EWMH republish).
type Manager struct {
	Workspaces []*Workspace
	active     int32
	previous   int32
}

// NewManager builds n workspaces named ws[i].
func NewManager(n int, names []string) *Manager {
	m := &Manager{Workspaces: make([]*Workspace, n)}
	for i := 0; i < n; i++ {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		m.Workspaces[i] = New(int32(i), name)
	}
	return m
}

func (m *Manager) Active() int32   { return m.active }
func (m *Manager) Previous() int32 { return m.previous }

func (m *Manager) Current() *Workspace { return m.Workspaces[m.active] }

// Frame is the minimal surface setWorkspace needs from a registered frame
// WO: its handle, geometry-independent mapped state, sticky bit and
// workspace membership, plus map/unmap side effects the caller performs.
type Frame interface {
	wo.WO
}

// MapUnmapFunc lets the caller (internal/handler) perform the actual X11
// map/unmap call; this package stays free of any X11 import.
type MapUnmapFunc func(f wo.WO, doMap bool)

// FocusFunc lets the caller give input focus to a resolved WO.
type FocusFunc func(w wo.WO)

// SetWorkspace executes spec.md §4.5's six-step setWorkspace(n) procedure.
func (m *Manager) SetWorkspace(n int32, resolve Resolver, mapUnmap MapUnmapFunc, focus FocusFunc, root wo.WO) {
	if n < 0 || int(n) >= len(m.Workspaces) || n == m.active {
		return
	}

	cur := m.Current()
	// step 2: save focus target of the current workspace is the caller's
	// responsibility before calling SetWorkspace (it knows what's focused);
	// here we only rely on cur.lastFocused already being current.

	// step 3: unmap every non-sticky WO on the current workspace.
	for _, h := range cur.stack {
		o, ok := resolve(h)
		if !ok || o.Sticky() {
			continue
		}
		mapUnmap(o, false)
	}

	m.previous = m.active
	m.active = n

	next := m.Workspaces[n]
	// step 4: map every WO on workspace n that is not iconified.
	for _, h := range next.stack {
		o, ok := resolve(h)
		if !ok || o.Iconified() {
			continue
		}
		mapUnmap(o, true)
	}

	// step 5 (republish _NET_CURRENT_DESKTOP) is the caller's job via
	// internal/ewmh, since this package has no X11 dependency.

	// step 6: focus hand-off, in priority order.
	if o, ok := resolve(next.lastFocused); ok {
		focus(o)
		return
	}
	if mru := next.MRU(); len(mru) > 0 {
		if o, ok := resolve(mru[0]); ok {
			focus(o)
			return
		}
	}
	focus(root)
}

// WarpDirection is the adjacency direction for warpToWorkspace.
type WarpDirection int

const (
	WarpNext WarpDirection = iota
	WarpPrev
)

// TargetWorkspace computes the adjacent workspace number for warping,
// wrapping at the ends (spec.md §4.5 "warpToWorkspace(dir, warp)").
func (m *Manager) TargetWorkspace(dir WarpDirection) int32 {
	n := int32(len(m.Workspaces))
	switch dir {
	case WarpNext:
		return (m.active + 1) % n
	default:
		return (m.active - 1 + n) % n
	}
}

// MoveFrameToWorkspace relocates h from its current workspace to target,
// updating both workspaces' stacks, for warpToWorkspace's frame-carrying
// variant.
func (m *Manager) MoveFrameToWorkspace(h wo.Handle, target int32, layer wo.Layer, resolve Resolver) {
	for _, w := range m.Workspaces {
		if w.Contains(h) {
			w.Remove(h)
		}
	}
	if target >= 0 && int(target) < len(m.Workspaces) {
		m.Workspaces[target].Add(h, layer, resolve)
	}
}
