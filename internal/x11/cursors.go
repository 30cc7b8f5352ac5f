package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xcursor"
)

// Cursor glyph identifiers for the modal move/resize handlers (spec.md
// §4.8), loaded lazily and cached since a cursor font glyph never changes
// for the lifetime of the connection.
type CursorShape int

const (
	CursorFleur CursorShape = iota // generic move
	CursorTopLeft
	CursorTopRight
	CursorBottomLeft
	CursorBottomRight
	CursorLeftSide
	CursorRightSide
	CursorTopSide
	CursorBottomSide
)

var cursorGlyphs = map[CursorShape]uint16{
	CursorFleur:       xcursor.Fleur,
	CursorTopLeft:     xcursor.TopLeftCorner,
	CursorTopRight:    xcursor.TopRightCorner,
	CursorBottomLeft:  xcursor.BottomLeftCorner,
	CursorBottomRight: xcursor.BottomRightCorner,
	CursorLeftSide:    xcursor.LeftSide,
	CursorRightSide:   xcursor.RightSide,
	CursorTopSide:     xcursor.TopSide,
	CursorBottomSide:  xcursor.BottomSide,
}

// Cursor returns (creating and caching on first use) the cursor resource
// for shape, used when grabbing the pointer during move/resize so the user
// gets directional feedback.
func (c *Conn) Cursor(shape CursorShape) (xproto.Cursor, error) {
	c.mu.Lock()
	if c.cursors == nil {
		c.cursors = make(map[CursorShape]xproto.Cursor)
	}
	if cur, ok := c.cursors[shape]; ok {
		c.mu.Unlock()
		return cur, nil
	}
	c.mu.Unlock()

	glyph, ok := cursorGlyphs[shape]
	if !ok {
		glyph = xcursor.Fleur
	}
	cur, err := xcursor.CreateCursor(c.XU, glyph)
	if err != nil {
		return 0, err
	}
	c.mu.Lock()
	c.cursors[shape] = cur
	c.mu.Unlock()
	return cur, nil
}

// ResizeCursorFor picks the directional cursor matching which edges/corners
// of a frame a resize grab started on, used by the mouse move/resize
// handler (spec.md §4.8 table).
func ResizeCursorFor(left, top, right, bottom bool) CursorShape {
	switch {
	case left && top:
		return CursorTopLeft
	case right && top:
		return CursorTopRight
	case left && bottom:
		return CursorBottomLeft
	case right && bottom:
		return CursorBottomRight
	case left:
		return CursorLeftSide
	case right:
		return CursorRightSide
	case top:
		return CursorTopSide
	case bottom:
		return CursorBottomSide
	default:
		return CursorFleur
	}
}
