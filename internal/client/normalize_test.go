package client

import "testing"

// TestNormalizeSizeIncrementLaw is spec.md §8 testable property 3: for any
// client with width_inc != 1 or height_inc != 1, after any resize,
// (width - base_width) % width_inc == 0 and likewise for height.
func TestNormalizeSizeIncrementLaw(t *testing.T) {
	h := SizeHints{
		HasBase: true, BaseWidth: 10, BaseHeight: 20,
		HasInc: true, WidthInc: 7, HeightInc: 9,
	}
	cases := []struct{ w, h uint32 }{
		{100, 200}, {13, 21}, {500, 500}, {10, 20}, {9999, 9999},
	}
	for _, c := range cases {
		nw, nh, _, _ := h.NormalizeSize(c.w, c.h, false, false)
		if (nw-h.BaseWidth)%h.WidthInc != 0 {
			t.Errorf("width %d not on increment grid from base %d inc %d", nw, h.BaseWidth, h.WidthInc)
		}
		if (nh-h.BaseHeight)%h.HeightInc != 0 {
			t.Errorf("height %d not on increment grid from base %d inc %d", nh, h.BaseHeight, h.HeightInc)
		}
	}
}

func TestNormalizeSizeClampsToMinMax(t *testing.T) {
	h := SizeHints{HasMin: true, MinWidth: 100, MinHeight: 100, HasMax: true, MaxWidth: 500, MaxHeight: 500, WidthInc: 1, HeightInc: 1}
	nw, nh, _, _ := h.NormalizeSize(10, 10, false, false)
	if nw != 100 || nh != 100 {
		t.Errorf("expected clamp to min, got %d %d", nw, nh)
	}
	nw, nh, _, _ = h.NormalizeSize(9000, 9000, false, false)
	if nw != 500 || nh != 500 {
		t.Errorf("expected clamp to max, got %d %d", nw, nh)
	}
}

func TestNormalizeSizeKeepAnchor(t *testing.T) {
	h := SizeHints{HasBase: true, BaseWidth: 0, BaseHeight: 0, HasInc: true, WidthInc: 10, HeightInc: 10}
	_, _, dx, dy := h.NormalizeSize(105, 105, true, true)
	if dx != 5 || dy != 5 {
		t.Errorf("expected anchor delta of 5,5 got %d,%d", dx, dy)
	}
	_, _, dx2, dy2 := h.NormalizeSize(105, 105, false, false)
	if dx2 != 0 || dy2 != 0 {
		t.Errorf("expected no anchor delta when not keeping edge, got %d,%d", dx2, dy2)
	}
}
