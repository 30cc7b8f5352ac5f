package workspace

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/pekwm/pekwm-sub002/internal/wo"
)

type fakeWO struct {
	wo.Base
}

func newFakeWO(t *testing.T, r *wo.Registry, win xproto.Window, layer wo.Layer) (wo.Handle, *fakeWO) {
	t.Helper()
	f := &fakeWO{Base: wo.NewBase(wo.TypeClient, win)}
	f.SetLayer(layer)
	h, err := r.Insert(f)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	f.SetHandle(h)
	return h, f
}

func TestStackNonDecreasingLayerInvariant(t *testing.T) {
	r := wo.NewRegistry()
	resolve := r.Resolve

	ws := New(0, "one")
	hNormal, _ := newFakeWO(t, r, 1, wo.LayerNormal)
	hBelow, _ := newFakeWO(t, r, 2, wo.LayerBelow)
	hDock, _ := newFakeWO(t, r, 3, wo.LayerDocked)
	hDesktop, _ := newFakeWO(t, r, 4, wo.LayerDesktop)

	ws.Add(hNormal, wo.LayerNormal, resolve)
	ws.Add(hBelow, wo.LayerBelow, resolve)
	ws.Add(hDock, wo.LayerDocked, resolve)
	ws.Add(hDesktop, wo.LayerDesktop, resolve)

	prev := wo.Layer(0)
	for _, h := range ws.Stack() {
		o, _ := resolve(h)
		if o.Layer() < prev {
			t.Fatalf("stack not in non-decreasing layer order: %v", ws.Stack())
		}
		prev = o.Layer()
	}
}

func TestRaiseLowerClippedToOwnBand(t *testing.T) {
	r := wo.NewRegistry()
	resolve := r.Resolve
	ws := New(0, "one")

	a, _ := newFakeWO(t, r, 1, wo.LayerNormal)
	b, _ := newFakeWO(t, r, 2, wo.LayerNormal)
	dock, _ := newFakeWO(t, r, 3, wo.LayerDocked)

	ws.Add(a, wo.LayerNormal, resolve)
	ws.Add(b, wo.LayerNormal, resolve)
	ws.Add(dock, wo.LayerDocked, resolve)

	ws.Raise(a, resolve)
	stack := ws.Stack()
	// a must now be immediately before the docked band, never above it.
	for i, h := range stack {
		if h == dock {
			if i == 0 || stack[i-1] != a {
				t.Fatalf("raise within normal band crossed into docked band: %v", stack)
			}
		}
	}
}

func TestMRUTouchPromotesToFront(t *testing.T) {
	r := wo.NewRegistry()
	ws := New(0, "one")
	a, _ := newFakeWO(t, r, 1, wo.LayerNormal)
	b, _ := newFakeWO(t, r, 2, wo.LayerNormal)

	ws.Touch(a)
	ws.Touch(b)
	ws.Touch(a)

	mru := ws.MRU()
	if len(mru) != 2 || mru[0] != a {
		t.Fatalf("expected a promoted to MRU front, got %v", mru)
	}
}

func TestSetWorkspaceFocusPriorityLastFocusedThenMRUThenRoot(t *testing.T) {
	r := wo.NewRegistry()
	resolve := r.Resolve
	m := NewManager(3, []string{"one", "two", "three"})

	root := &fakeWO{Base: wo.NewBase(wo.TypeRoot, 0)}

	target := m.Workspaces[1]
	lf, _ := newFakeWO(t, r, 10, wo.LayerNormal)
	target.Add(lf, wo.LayerNormal, resolve)
	target.SetLastFocused(lf)

	var focused wo.WO
	m.SetWorkspace(1, resolve, func(wo.WO, bool) {}, func(w wo.WO) { focused = w }, root)
	if focused == nil || focused.Handle() != lf {
		t.Fatalf("expected last-focused to win, got %v", focused)
	}

	// Workspace 0 has no last-focused frame, so its MRU head wins.
	back := m.Workspaces[0]
	mruHead, _ := newFakeWO(t, r, 11, wo.LayerNormal)
	back.Add(mruHead, wo.LayerNormal, resolve)
	back.Touch(mruHead)
	focused = nil
	m.SetWorkspace(0, resolve, func(wo.WO, bool) {}, func(w wo.WO) { focused = w }, root)
	if focused == nil || focused.Handle() != mruHead {
		t.Fatalf("expected MRU head to win without a last-focused frame, got %v", focused)
	}

	// Workspace 2 is empty, so focus falls back to root.
	focused = nil
	m.SetWorkspace(2, resolve, func(wo.WO, bool) {}, func(w wo.WO) { focused = w }, root)
	if focused != wo.WO(root) {
		t.Fatalf("expected root to win on an empty workspace, got %v", focused)
	}
}
