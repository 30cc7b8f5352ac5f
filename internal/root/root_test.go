package root

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/pekwm/pekwm-sub002/internal/geom"
	"github.com/pekwm/pekwm-sub002/internal/wo"
)

func newTestRoot() *Root {
	return New(1, nil)
}

type fakeWO struct{ wo.Base }

func mustHandle(t *testing.T, r *wo.Registry, win xproto.Window) wo.Handle {
	t.Helper()
	f := &fakeWO{Base: wo.NewBase(wo.TypeClient, win)}
	h, err := r.Insert(f)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	f.SetHandle(h)
	return h
}

func TestRecordCreatedAppendsInCreationOrder(t *testing.T) {
	r := newTestRoot()
	reg := wo.NewRegistry()
	h1 := mustHandle(t, reg, 101)
	h2 := mustHandle(t, reg, 102)

	r.RecordCreated(h1, 10)
	r.RecordCreated(h2, 20)

	if len(r.creationOrder) != 2 {
		t.Fatalf("want 2 entries, got %d", len(r.creationOrder))
	}
	if r.creationOrder[0].win != 10 || r.creationOrder[1].win != 20 {
		t.Fatalf("creation order not preserved: %+v", r.creationOrder)
	}
}

func TestRecordDestroyedRemovesEntryAndStrut(t *testing.T) {
	r := newTestRoot()
	reg := wo.NewRegistry()
	h1 := mustHandle(t, reg, 101)
	h2 := mustHandle(t, reg, 102)

	r.RecordCreated(h1, 10)
	r.RecordCreated(h2, 20)
	r.SetStrut(h1, geom.Strut{Left: 5})

	r.RecordDestroyed(h1)

	if len(r.creationOrder) != 1 || r.creationOrder[0].handle != h2 {
		t.Fatalf("expected only h2 left, got %+v", r.creationOrder)
	}
	if _, ok := r.struts[h1]; ok {
		t.Fatalf("strut for destroyed handle should be removed")
	}
}

func TestSetStrutZeroValueClears(t *testing.T) {
	r := newTestRoot()
	reg := wo.NewRegistry()
	h := mustHandle(t, reg, 103)

	r.SetStrut(h, geom.Strut{Top: 10})
	if len(r.struts) != 1 {
		t.Fatalf("expected one strut recorded")
	}
	r.SetStrut(h, geom.Strut{})
	if len(r.struts) != 0 {
		t.Fatalf("zero-value strut should clear the entry")
	}
}

func TestAggregateStrutTakesMaxPerEdge(t *testing.T) {
	r := newTestRoot()
	reg := wo.NewRegistry()
	h1 := mustHandle(t, reg, 101)
	h2 := mustHandle(t, reg, 102)

	r.SetStrut(h1, geom.Strut{Left: 5, Top: 20})
	r.SetStrut(h2, geom.Strut{Left: 15, Bottom: 8})

	got := r.AggregateStrut()
	want := geom.Strut{Left: 15, Top: 20, Bottom: 8}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestPublishWorkareaNoopWithoutPublisherOrHeads(t *testing.T) {
	r := newTestRoot()
	// Must not panic when Publisher is nil or heads is empty.
	r.PublishWorkarea(nil, 1)
	r.PublishWorkarea([]geom.Head{{Num: 0, Geometry: geom.Geometry{Width: 100, Height: 100}}}, 1)
}
