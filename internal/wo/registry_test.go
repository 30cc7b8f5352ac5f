package wo

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

type fakeWO struct {
	Base
}

func newFakeWO(win xproto.Window) *fakeWO {
	f := &fakeWO{Base: NewBase(TypeClient, win)}
	return f
}

func TestRegistryBijection(t *testing.T) {
	r := NewRegistry()
	a := newFakeWO(10)
	h, err := r.Insert(a)
	if err != nil {
		t.Fatal(err)
	}
	a.SetHandle(h)

	got, ok := r.Lookup(10)
	if !ok || got != a {
		t.Fatalf("lookup failed: %v %v", got, ok)
	}
	gotHandle, ok := r.HandleOf(10)
	if !ok || gotHandle != h {
		t.Fatalf("handle mismatch")
	}

	r.Remove(h)
	if _, ok := r.Lookup(10); ok {
		t.Fatalf("expected window to be gone after remove")
	}
	if _, ok := r.Resolve(h); ok {
		t.Fatalf("expected handle to be stale after remove")
	}
}

func TestRegistryHandleGenerationDetectsStale(t *testing.T) {
	r := NewRegistry()
	a := newFakeWO(1)
	h1, _ := r.Insert(a)
	a.SetHandle(h1)
	r.Remove(h1)

	b := newFakeWO(1) // reuses the same window id
	h2, _ := r.Insert(b)
	b.SetHandle(h2)

	if h1 == h2 {
		t.Fatalf("expected different handles across generations, got same: %v", h1)
	}
	if _, ok := r.Resolve(h1); ok {
		t.Fatalf("stale handle from a previous generation should not resolve")
	}
	if w, ok := r.Resolve(h2); !ok || w != b {
		t.Fatalf("current handle should resolve to the live wo")
	}
}

func TestRegistryFocusUniqueness(t *testing.T) {
	r := NewRegistry()
	a := newFakeWO(1)
	b := newFakeWO(2)
	ha, _ := r.Insert(a)
	a.SetHandle(ha)
	hb, _ := r.Insert(b)
	b.SetHandle(hb)

	r.SetFocused(ha)
	if !a.Focused() {
		t.Fatalf("a should be focused")
	}
	r.SetFocused(hb)
	if a.Focused() {
		t.Fatalf("a should have lost focus once b gained it")
	}
	if !b.Focused() {
		t.Fatalf("b should be focused")
	}
}

func TestRegistryRemoveDetachesFromParent(t *testing.T) {
	r := NewRegistry()
	parent := newFakeWO(1)
	child := newFakeWO(2)
	hp, _ := r.Insert(parent)
	parent.SetHandle(hp)
	hc, _ := r.Insert(child)
	child.SetHandle(hc)

	child.SetParent(parent)
	parent.AddChild(child)
	if len(parent.Children()) != 1 {
		t.Fatalf("expected one child")
	}

	r.Remove(hc)
	if len(parent.Children()) != 0 {
		t.Fatalf("expected parent's child list to be empty after child removal")
	}
}
