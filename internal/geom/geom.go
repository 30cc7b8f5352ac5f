// Package geom holds the small value types shared across the window-object
// model: screen geometry, reserved-edge struts, per-head rectangles and
// decoration extents. None of these carry X11 state; they are plain data,
// grounded on the fields marwind's x11.Geom/x11.Dimensions and pekwm's
// ScreenInfo::HeadInfo carried (see original_source/src/screeninfo.hh).
package geom

import "fmt"

// Geometry is a rectangle in root-window coordinates.
type Geometry struct {
	X, Y          int32
	Width, Height uint32
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", g.Width, g.Height, g.X, g.Y)
}

// Right returns the X coordinate one pixel past the rectangle's right edge.
func (g Geometry) Right() int32 { return g.X + int32(g.Width) }

// Bottom returns the Y coordinate one pixel past the rectangle's bottom edge.
func (g Geometry) Bottom() int32 { return g.Y + int32(g.Height) }

// Center returns the geometric center point.
func (g Geometry) Center() (x, y int32) {
	return g.X + int32(g.Width)/2, g.Y + int32(g.Height)/2
}

// Contains reports whether the point (x, y) lies within the rectangle.
func (g Geometry) Contains(x, y int32) bool {
	return x >= g.X && x < g.Right() && y >= g.Y && y < g.Bottom()
}

// Intersects reports whether two rectangles overlap on at least one pixel.
func (g Geometry) Intersects(o Geometry) bool {
	return g.X < o.Right() && o.X < g.Right() && g.Y < o.Bottom() && o.Y < g.Bottom()
}

// ParseGeometry parses the inverse of Geometry.String, the "WxH+X+Y" form
// the SetGeometry action takes as its argument (spec.md §4.7 "SetGeometry
// <geometry-string>").
func ParseGeometry(s string) (Geometry, bool) {
	var w, h int32
	var x, y int32
	n, err := fmt.Sscanf(s, "%dx%d+%d+%d", &w, &h, &x, &y)
	if err != nil || n != 4 || w < 0 || h < 0 {
		return Geometry{}, false
	}
	return Geometry{X: x, Y: y, Width: uint32(w), Height: uint32(h)}, true
}

// Intersection returns the overlapping rectangle and whether one exists.
func (g Geometry) Intersection(o Geometry) (Geometry, bool) {
	if !g.Intersects(o) {
		return Geometry{}, false
	}
	x0, y0 := max32(g.X, o.X), max32(g.Y, o.Y)
	x1, y1 := min32(g.Right(), o.Right()), min32(g.Bottom(), o.Bottom())
	return Geometry{X: x0, Y: y0, Width: uint32(x1 - x0), Height: uint32(y1 - y0)}, true
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// Strut is the reserved-edge contribution of one client (a dock or panel),
// carried per spec.md §3 "Client" and consumed when computing workarea.
type Strut struct {
	Left, Right, Top, Bottom uint32
}

// Add accumulates the maximum of each edge, matching how pekwm accumulates
// _NET_WM_STRUT contributions from multiple clients into one workarea.
func (s *Strut) Add(o Strut) {
	s.Left = maxU(s.Left, o.Left)
	s.Right = maxU(s.Right, o.Right)
	s.Top = maxU(s.Top, o.Top)
	s.Bottom = maxU(s.Bottom, o.Bottom)
}

func maxU(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

// Dimensions is the decoration extent added around a client's geometry:
// titlebar height plus border thickness on each side. Mirrors
// marwind's x11.Dimensions (wm/frame.go's getFrameDecorations).
type Dimensions struct {
	Top, Right, Bottom, Left uint32
}

func (d Dimensions) Horizontal() uint32 { return d.Left + d.Right }
func (d Dimensions) Vertical() uint32   { return d.Top + d.Bottom }

// Head is one physical output's rectangle under multi-monitor operation
// (spec.md GLOSSARY "Head"). Workarea is Geometry minus the union of struts
// contributed by clients whose center falls on this head.
type Head struct {
	Num      uint32
	Geometry Geometry
}

// Workarea subtracts strut from the head's full geometry.
func (h Head) Workarea(s Strut) Geometry {
	g := h.Geometry
	return Geometry{
		X:      g.X + int32(s.Left),
		Y:      g.Y + int32(s.Top),
		Width:  subU(g.Width, s.Left+s.Right),
		Height: subU(g.Height, s.Top+s.Bottom),
	}
}

func subU(a, b uint32) uint32 {
	if b >= a {
		return 0
	}
	return a - b
}

// Gravity mirrors ICCCM WM_SIZE_HINTS win_gravity values relevant to
// decoration placement (spec.md §4.3 "Gravity adjustment").
type Gravity uint8

const (
	GravityForget Gravity = iota
	GravityNorthWest
	GravityNorth
	GravityNorthEast
	GravityWest
	GravityCenter
	GravityEast
	GravitySouthWest
	GravitySouth
	GravitySouthEast
	GravityStatic
)

// ApplyDecoration adjusts a client-requested geometry by the decoration
// extent so the edge named by gravity stays where the client asked it to
// be. This is the core of spec.md §4.3 "Gravity adjustment".
func ApplyDecoration(g Geometry, d Dimensions, gr Gravity) Geometry {
	out := g
	out.Width += d.Horizontal()
	out.Height += d.Vertical()
	switch gr {
	case GravityNorthWest, GravityForget, GravityStatic:
		// top-left edge already correct; decoration grows right/down
	case GravityNorth:
		out.X -= int32(d.Left)
	case GravityNorthEast:
		out.X -= int32(d.Horizontal())
	case GravityWest:
		out.Y -= int32(d.Top)
	case GravityCenter:
		out.X -= int32(d.Left)
		out.Y -= int32(d.Top)
	case GravityEast:
		out.X -= int32(d.Horizontal())
		out.Y -= int32(d.Top)
	case GravitySouthWest:
		out.Y -= int32(d.Vertical())
	case GravitySouth:
		out.X -= int32(d.Left)
		out.Y -= int32(d.Vertical())
	case GravitySouthEast:
		out.X -= int32(d.Horizontal())
		out.Y -= int32(d.Vertical())
	}
	return out
}
