package frame

import (
	"github.com/pekwm/pekwm-sub002/internal/geom"
	"github.com/pekwm/pekwm-sub002/internal/wo"
)

// SetMaximizedHorz toggles horizontal maximize against the given workarea,
// independent of the vertical axis (spec.md §4.3 "Per-axis maximize";
// §8 testable property 5).
func (f *Frame) SetMaximizedHorz(v bool, workarea geom.Geometry) {
	g := f.Geometry()
	if v == f.maxHorz.Set {
		return
	}
	if v {
		f.maxHorz = AxisMaximize{Set: true, SaveLo: g.X, SaveSz: g.Width}
		g.X = workarea.X
		g.Width = workarea.Width
	} else {
		g.X = f.maxHorz.SaveLo
		g.Width = f.maxHorz.SaveSz
		f.maxHorz = AxisMaximize{}
	}
	f.SetGeometry(g)
}

// SetMaximizedVert toggles vertical maximize; see SetMaximizedHorz.
func (f *Frame) SetMaximizedVert(v bool, workarea geom.Geometry) {
	g := f.Geometry()
	if v == f.maxVert.Set {
		return
	}
	if v {
		f.maxVert = AxisMaximize{Set: true, SaveLo: g.Y, SaveSz: g.Height}
		g.Y = workarea.Y
		g.Height = workarea.Height
	} else {
		g.Y = f.maxVert.SaveLo
		g.Height = f.maxVert.SaveSz
		f.maxVert = AxisMaximize{}
	}
	f.SetGeometry(g)
}

// MaxFill grows the frame on both axes to the largest rectangle within
// workarea that does not cross any of the given obstacle geometries,
// without setting the maximize bits (spec.md §4.3 "MaxFill: like maximize,
// but stops at the nearest obstructing frame on each edge, and does not
// toggle the persistent maximized state").
func (f *Frame) MaxFill(workarea geom.Geometry, obstacles []geom.Geometry) {
	g := f.Geometry()
	left, top, right, bottom := workarea.X, workarea.Y, workarea.Right(), workarea.Bottom()

	cx, cy := g.Center()
	for _, o := range obstacles {
		if o.Bottom() <= g.Y || o.Y >= g.Bottom() {
			continue
		}
		if o.Right() <= cx && o.Right() > left {
			left = o.Right()
		}
		if o.X >= cx && o.X < right {
			right = o.X
		}
	}
	for _, o := range obstacles {
		if o.Right() <= g.X || o.X >= g.Right() {
			continue
		}
		if o.Bottom() <= cy && o.Bottom() > top {
			top = o.Bottom()
		}
		if o.Y >= cy && o.Y < bottom {
			bottom = o.Y
		}
	}

	if right > left {
		g.X = left
		g.Width = uint32(right - left)
	}
	if bottom > top {
		g.Y = top
		g.Height = uint32(bottom - top)
	}
	f.SetGeometry(g)
}

// MaximizedHorz/MaximizedVert/Maximized report the persistent maximize bits.
func (f *Frame) MaximizedHorz() bool { return f.maxHorz.Set }
func (f *Frame) MaximizedVert() bool { return f.maxVert.Set }
func (f *Frame) Maximized() bool     { return f.maxHorz.Set && f.maxVert.Set }

// SetFullscreen toggles fullscreen, saving/restoring geometry, decoration
// and layer as a unit (spec.md §4.3 "Setting fullscreen saves current
// geometry, decor state, and layer; unsetting restores all three
// together, not independently of maximize state"). The promoted layer is
// AboveDock, not the top Critical band (spec.md §8 scenario S4: "layer
// becomes above-dock"); internal/workspace's fullscreen-above-raise
// handling demotes it back to the saved layer once something else is
// raised above it.
func (f *Frame) SetFullscreen(v bool, headGeometry geom.Geometry) {
	if v == f.fullscreen {
		return
	}
	if v {
		f.preFSGeometry = f.Geometry()
		f.preFSDecor = f.Decor
		f.preFSLayer = f.Layer()
		f.fullscreen = true
		f.Decor = DecorState{}
		f.SetLayer(wo.LayerAboveDock)
		f.SetGeometry(headGeometry)
	} else {
		f.fullscreen = false
		f.Decor = f.preFSDecor
		f.SetLayer(f.preFSLayer)
		f.SetGeometry(f.preFSGeometry)
	}
}

func (f *Frame) Fullscreen() bool { return f.fullscreen }
