package frame

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/pekwm/pekwm-sub002/internal/geom"
	"github.com/pekwm/pekwm-sub002/internal/wo"
)

func newTestFrame() *Frame {
	f := New(1, wo.Handle{}, DecorState{HasTitlebar: true, HasBorder: true, DecorName: "default"})
	f.BorderWidth = 2
	f.TitlebarHeight = 20
	f.SetGeometry(geom.Geometry{X: 10, Y: 10, Width: 300, Height: 200})
	return f
}

func TestMaximizeHorzVertIndependentRoundTrip(t *testing.T) {
	f := newTestFrame()
	orig := f.Geometry()
	workarea := geom.Geometry{X: 0, Y: 0, Width: 1024, Height: 768}

	f.SetMaximizedHorz(true, workarea)
	if f.Geometry().X != 0 || f.Geometry().Width != 1024 {
		t.Fatalf("horz maximize did not span workarea: %v", f.Geometry())
	}
	if f.Geometry().Y != orig.Y || f.Geometry().Height != orig.Height {
		t.Fatalf("vertical axis disturbed by horizontal maximize: %v", f.Geometry())
	}

	f.SetMaximizedVert(true, workarea)
	if f.Geometry().Y != 0 || f.Geometry().Height != 768 {
		t.Fatalf("vert maximize did not span workarea: %v", f.Geometry())
	}

	f.SetMaximizedHorz(false, workarea)
	if f.Geometry().X != orig.X || f.Geometry().Width != orig.Width {
		t.Fatalf("unmaximize horz did not restore: %v want %v", f.Geometry(), orig)
	}
	if !f.MaximizedVert() {
		t.Fatalf("vertical maximize bit should survive unmaximizing horizontal axis")
	}

	f.SetMaximizedVert(false, workarea)
	if f.Geometry() != orig {
		t.Fatalf("full unmaximize round trip mismatch: got %v want %v", f.Geometry(), orig)
	}
}

func TestFullscreenSavesAndRestoresDecorAndLayer(t *testing.T) {
	f := newTestFrame()
	f.SetLayer(wo.LayerNormal)
	orig := f.Geometry()
	origDecor := f.Decor

	head := geom.Geometry{X: 0, Y: 0, Width: 1920, Height: 1080}
	f.SetFullscreen(true, head)
	if f.Geometry() != head {
		t.Fatalf("fullscreen geometry mismatch: %v", f.Geometry())
	}
	if f.Decoration().Top != 0 || f.Decoration().Left != 0 {
		t.Fatalf("fullscreen frame should have zero decoration")
	}
	if f.Layer() != wo.LayerAboveDock {
		t.Fatalf("fullscreen frame should be promoted to above-dock layer, got %s", f.Layer())
	}

	f.SetFullscreen(false, head)
	if f.Geometry() != orig {
		t.Fatalf("unfullscreen geometry mismatch: got %v want %v", f.Geometry(), orig)
	}
	if f.Decor != origDecor {
		t.Fatalf("unfullscreen decor mismatch: got %v want %v", f.Decor, origDecor)
	}
	if f.Layer() != wo.LayerNormal {
		t.Fatalf("unfullscreen layer mismatch: got %s want normal", f.Layer())
	}
}

func TestShadeNoOpWhileFullscreen(t *testing.T) {
	f := newTestFrame()
	f.SetFullscreen(true, geom.Geometry{Width: 800, Height: 600})
	f.SetShade(true)
	if f.Shaded() {
		t.Fatalf("shade must be a no-op while fullscreen")
	}
}

func TestAttachDetachTabOrderAndActiveTracking(t *testing.T) {
	r := wo.NewRegistry()
	a := mustInsert(t, r, 1)
	b := mustInsert(t, r, 2)
	c := mustInsert(t, r, 3)

	f := New(1, wo.Handle{}, DecorState{})
	f.clients = nil
	f.AttachClient(a)
	f.AttachClient(b)
	f.AttachClient(c)
	if f.ActiveClient() != c {
		t.Fatalf("attach should activate newest client")
	}

	f.ActivateClient(a)
	if empty := f.DetachClient(a); empty {
		t.Fatalf("frame should not be empty after detaching one of three")
	}
	if f.ActiveClient() != b {
		t.Fatalf("detaching active client should activate left neighbor (wrap to first): got %v want %v", f.ActiveClient(), b)
	}
}

type fakeWO struct{ wo.Base }

func mustInsert(t *testing.T, r *wo.Registry, win xproto.Window) wo.Handle {
	t.Helper()
	h, err := r.Insert(&fakeWO{Base: wo.NewBase(wo.TypeClient, win)})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	return h
}
