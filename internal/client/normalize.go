package client

// NormalizeSize implements the client-space portion of spec.md §4.3 "Size
// increments and constraints": clamp to min/max, round down to the nearest
// increment above base, and enforce aspect-ratio bounds if set. It operates
// purely on client-space (decoration already subtracted) sizes so
// internal/frame can call it after stripping titlebar/border extents.
//
// dx/dy are returned as the offsets by which the anchor corner must move to
// absorb the clamping and rounding (spec.md "Keep-x and keep-y flags
// control whether the anchor corner moves"); they are nonzero only when
// callers resizing from the top/left edge pass fromLeft/fromTop=true.
func (h SizeHints) NormalizeSize(width, height uint32, fromLeft, fromTop bool) (nw, nh uint32, dx, dy int32) {
	nw, nh = width, height

	if h.HasMax {
		if h.MaxWidth > 0 && nw > h.MaxWidth {
			nw = h.MaxWidth
		}
		if h.MaxHeight > 0 && nh > h.MaxHeight {
			nh = h.MaxHeight
		}
	}
	if h.HasMin {
		if nw < h.MinWidth {
			nw = h.MinWidth
		}
		if nh < h.MinHeight {
			nh = h.MinHeight
		}
	}

	base := uint32(0)
	baseH := uint32(0)
	if h.HasBase {
		base, baseH = h.BaseWidth, h.BaseHeight
	} else if h.HasMin {
		base, baseH = h.MinWidth, h.MinHeight
	}

	wInc, hInc := h.WidthInc, h.HeightInc
	if wInc == 0 {
		wInc = 1
	}
	if hInc == 0 {
		hInc = 1
	}

	roundedW := roundDownToIncrement(nw, base, wInc)
	roundedH := roundDownToIncrement(nh, baseH, hInc)

	if h.HasAspect && roundedH > 0 {
		aspect := float64(roundedW) / float64(roundedH)
		if h.MaxAspect > 0 && aspect > h.MaxAspect {
			roundedW = uint32(float64(roundedH) * h.MaxAspect)
			roundedW = roundDownToIncrement(roundedW, base, wInc)
		} else if h.MinAspect > 0 && aspect < h.MinAspect {
			roundedH = uint32(float64(roundedW) / h.MinAspect)
			roundedH = roundDownToIncrement(roundedH, baseH, hInc)
		}
	}

	if fromLeft {
		dx = int32(width) - int32(roundedW)
	}
	if fromTop {
		dy = int32(height) - int32(roundedH)
	}
	return roundedW, roundedH, dx, dy
}

func roundDownToIncrement(size, base, inc uint32) uint32 {
	if size <= base {
		return size
	}
	extra := size - base
	steps := extra / inc
	return base + steps*inc
}
