package handler

import (
	"testing"

	"github.com/pekwm/pekwm-sub002/internal/action"
	"github.com/pekwm/pekwm-sub002/internal/client"
	"github.com/pekwm/pekwm-sub002/internal/frame"
	"github.com/pekwm/pekwm-sub002/internal/geom"
	"github.com/pekwm/pekwm-sub002/internal/wo"
)

func newDispatchTestFrame() (*frame.Frame, *client.Client) {
	cl := client.New(1)
	f := frame.New(2, wo.Handle{}, frame.DecorState{HasTitlebar: true, HasBorder: true, DecorName: "default"})
	f.BorderWidth = 2
	f.TitlebarHeight = 20
	f.SetGeometry(geom.Geometry{X: 10, Y: 10, Width: 300, Height: 200})
	return f, cl
}

func TestDispatchFullscreenTogglesLayerAndRestoresOnUnset(t *testing.T) {
	f, _ := newDispatchTestFrame()
	orig := f.Geometry()
	head := geom.Geometry{X: 0, Y: 0, Width: 1920, Height: 1080}

	m := Mutators{HeadGeometry: func(*frame.Frame) geom.Geometry { return head }}

	a, err := action.Parse("Fullscreen")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !dispatchOne(m, f, a) {
		t.Fatalf("expected Fullscreen to be applied")
	}
	if !f.Fullscreen() || f.Geometry() != head {
		t.Fatalf("fullscreen not applied: fullscreen=%v geometry=%v", f.Fullscreen(), f.Geometry())
	}
	if f.Layer() != wo.LayerAboveDock {
		t.Fatalf("expected layer promoted to above-dock, got %s", f.Layer())
	}

	if !dispatchOne(m, f, a) {
		t.Fatalf("expected second Fullscreen toggle to be applied")
	}
	if f.Fullscreen() || f.Geometry() != orig {
		t.Fatalf("unfullscreen did not restore geometry: got %v want %v", f.Geometry(), orig)
	}
}

func TestDispatchMaxFillStopsAtSibling(t *testing.T) {
	f, _ := newDispatchTestFrame()
	workarea := geom.Geometry{X: 0, Y: 0, Width: 1000, Height: 1000}
	sibling := geom.Geometry{X: 400, Y: 0, Width: 100, Height: 1000}

	m := Mutators{
		HeadWorkarea: func(*frame.Frame) geom.Geometry { return workarea },
		Siblings:     func(*frame.Frame) []geom.Geometry { return []geom.Geometry{sibling} },
	}

	a, err := action.Parse("MaxFill")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !dispatchOne(m, f, a) {
		t.Fatalf("expected MaxFill to be applied")
	}
	if f.Geometry().Right() > sibling.X {
		t.Fatalf("MaxFill should stop before the sibling's left edge: got right=%d sibling.X=%d", f.Geometry().Right(), sibling.X)
	}
}

func TestDispatchFullscreenDeniedByDenyMask(t *testing.T) {
	f, cl := newDispatchTestFrame()
	cl.Deny = client.DenyStateFullscreen
	reg := wo.NewRegistry()
	h, err := reg.Insert(cl)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	cl.SetHandle(h)
	f.AttachClient(h)

	m := Mutators{
		HeadGeometry:  func(*frame.Frame) geom.Geometry { return geom.Geometry{Width: 1920, Height: 1080} },
		ResolveClient: func(h wo.Handle) (*client.Client, bool) { return cl, h == cl.Handle() },
	}

	a, err := action.Parse("Fullscreen")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	dispatchOne(m, f, a)
	if f.Fullscreen() {
		t.Fatalf("fullscreen should be denied by the client's deny mask")
	}
}
