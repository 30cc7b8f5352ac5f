package x11

import (
	"github.com/BurntSushi/xgb/xinerama"

	"github.com/pekwm/pekwm-sub002/internal/geom"
)

// Heads queries the physical output geometries. When XINERAMA is not
// present, it returns a single head covering the whole screen, matching
// spec.md §4.3's "placement is constrained to the current head's workarea"
// degrading gracefully on single-head setups.
func (c *Conn) Heads() ([]geom.Head, error) {
	if !c.HasXinerama {
		return []geom.Head{{Num: 0, Geometry: c.ScreenGeometry()}}, nil
	}
	reply, err := xinerama.QueryScreens(c.X).Reply()
	if err != nil {
		return nil, err
	}
	if len(reply.ScreenInfo) == 0 {
		return []geom.Head{{Num: 0, Geometry: c.ScreenGeometry()}}, nil
	}
	heads := make([]geom.Head, len(reply.ScreenInfo))
	for i, s := range reply.ScreenInfo {
		heads[i] = geom.Head{
			Num: uint32(i),
			Geometry: geom.Geometry{
				X: int32(s.XOrg), Y: int32(s.YOrg),
				Width: uint32(s.Width), Height: uint32(s.Height),
			},
		}
	}
	return heads, nil
}

// HeadAt returns the head whose rectangle contains (x, y), falling back to
// the first head if none matches (e.g. the point is transiently off-screen
// during a drag).
func HeadAt(heads []geom.Head, x, y int32) geom.Head {
	for _, h := range heads {
		if h.Geometry.Contains(x, y) {
			return h
		}
	}
	if len(heads) > 0 {
		return heads[0]
	}
	return geom.Head{}
}

// NearestHead returns the head with the largest intersection against g,
// used by internal/manager (spec.md §4.3 "Head clamping") to pick which
// head's geometry and workarea apply to a frame that straddles a boundary.
func NearestHead(heads []geom.Head, g geom.Geometry) geom.Head {
	var best geom.Head
	var bestArea int64 = -1
	for _, h := range heads {
		inter, ok := h.Geometry.Intersection(g)
		if !ok {
			continue
		}
		area := int64(inter.Width) * int64(inter.Height)
		if area > bestArea {
			bestArea = area
			best = h
		}
	}
	if bestArea < 0 && len(heads) > 0 {
		cx, cy := g.Center()
		return HeadAt(heads, cx, cy)
	}
	return best
}
