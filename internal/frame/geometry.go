package frame

import (
	"github.com/pekwm/pekwm-sub002/internal/client"
	"github.com/pekwm/pekwm-sub002/internal/geom"
)

// ClientGeometry returns the inner (client-space) geometry implied by the
// frame's current outer geometry minus its decoration extent, per spec.md
// §4.3 "Frame geometry is outer; client geometry is outer minus decor".
func (f *Frame) ClientGeometry() geom.Geometry {
	d := f.Decoration()
	g := f.Geometry()
	return geom.Geometry{
		X:      g.X + int32(d.Left),
		Y:      g.Y + int32(d.Top),
		Width:  subClampU(g.Width, d.Horizontal()),
		Height: subClampU(g.Height, d.Vertical()),
	}
}

func subClampU(a, b uint32) uint32 {
	if b >= a {
		return 1
	}
	return a - b
}

// SetClientGeometry sets the frame's outer geometry from a desired inner
// (client-space) geometry, re-adding the decoration extent. This is the
// inverse of ClientGeometry, used when a client's ConfigureRequest supplies
// the size it wants for itself.
func (f *Frame) SetClientGeometry(inner geom.Geometry) {
	d := f.Decoration()
	f.SetGeometry(geom.Geometry{
		X:      inner.X - int32(d.Left),
		Y:      inner.Y - int32(d.Top),
		Width:  inner.Width + d.Horizontal(),
		Height: inner.Height + d.Vertical(),
	})
}

// Resize applies hints-aware client-space resizing and gravity-correct
// placement, then stores the resulting outer geometry (spec.md §4.3
// "Resizing a frame normalizes through the active client's size hints,
// then re-applies decoration via the gravity rule").
func (f *Frame) Resize(hints client.SizeHints, width, height uint32, fromLeft, fromTop bool) {
	nw, nh, dx, dy := hints.NormalizeSize(width, height, fromLeft, fromTop)
	g := f.Geometry()
	outer := geom.Geometry{X: g.X + dx, Y: g.Y + dy, Width: nw, Height: nh}
	f.SetGeometry(geom.ApplyDecoration(outer, f.Decoration(), hints.Gravity))
}

// ClampToHead fits the frame's outer geometry onto the given head's
// workarea, per spec.md §4.4 "Frames are clamped so some minimum visible
// area remains on a head when a head is removed or resized". minVisible is
// the minimum number of pixels of overlap with the workarea that must
// remain on each axis.
func (f *Frame) ClampToHead(workarea geom.Geometry, minVisible int32) {
	g := f.Geometry()

	if g.X+int32(g.Width) < workarea.X+minVisible {
		g.X = workarea.X + minVisible - int32(g.Width)
	}
	if g.X > workarea.Right()-minVisible {
		g.X = workarea.Right() - minVisible
	}
	if g.Y+int32(g.Height) < workarea.Y+minVisible {
		g.Y = workarea.Y + minVisible - int32(g.Height)
	}
	if g.Y > workarea.Bottom()-minVisible {
		g.Y = workarea.Bottom() - minVisible
	}
	f.SetGeometry(g)
}

// PlaceOnHead centers the frame on the given head's workarea; used for the
// initial placement of newly mapped clients without a user-set geometry
// (spec.md §4.3 "New clients without WM-set position are centered on the
// active head").
func (f *Frame) PlaceOnHead(workarea geom.Geometry) {
	g := f.Geometry()
	g.X = workarea.X + int32(workarea.Width-g.Width)/2
	g.Y = workarea.Y + int32(workarea.Height-g.Height)/2
	f.SetGeometry(g)
}
