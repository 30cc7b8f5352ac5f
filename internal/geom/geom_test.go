package geom

import "testing"

func TestIntersection(t *testing.T) {
	a := Geometry{X: 0, Y: 0, Width: 100, Height: 100}
	b := Geometry{X: 50, Y: 50, Width: 100, Height: 100}
	got, ok := a.Intersection(b)
	if !ok {
		t.Fatalf("expected intersection")
	}
	want := Geometry{X: 50, Y: 50, Width: 50, Height: 50}
	if got != want {
		t.Errorf("got %v want %v", got, want)
	}

	c := Geometry{X: 200, Y: 200, Width: 10, Height: 10}
	if _, ok := a.Intersection(c); ok {
		t.Errorf("expected no intersection")
	}
}

func TestWorkarea(t *testing.T) {
	h := Head{Geometry: Geometry{X: 0, Y: 0, Width: 1920, Height: 1080}}
	wa := h.Workarea(Strut{Top: 30})
	want := Geometry{X: 0, Y: 30, Width: 1920, Height: 1050}
	if wa != want {
		t.Errorf("got %v want %v", wa, want)
	}
}

func TestStrutAddTakesMax(t *testing.T) {
	var s Strut
	s.Add(Strut{Top: 10})
	s.Add(Strut{Top: 30, Left: 5})
	if s.Top != 30 || s.Left != 5 {
		t.Errorf("got %+v", s)
	}
}

func TestApplyDecorationGravity(t *testing.T) {
	d := Dimensions{Top: 20, Left: 2, Right: 2, Bottom: 2}
	g := Geometry{X: 100, Y: 100, Width: 800, Height: 600}

	nw := ApplyDecoration(g, d, GravityNorthWest)
	if nw.X != 100 || nw.Y != 100 {
		t.Errorf("NorthWest should not shift origin, got %v", nw)
	}
	if nw.Width != 804 || nw.Height != 622 {
		t.Errorf("decoration should grow size, got %v", nw)
	}

	se := ApplyDecoration(g, d, GravitySouthEast)
	if se.X != 100-4 || se.Y != 100-22 {
		t.Errorf("SouthEast should shift origin back by decoration extent, got %v", se)
	}
}
