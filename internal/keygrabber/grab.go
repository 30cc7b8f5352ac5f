package keygrabber

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/pekwm/pekwm-sub002/internal/x11"
)

// GrabAll walks every terminal and in-progress chord of the global forest
// and grabs each on win with all lock-bit combinations, mirroring
// marwind's wm.go grabKeys loop but generalized across chain depth
// (spec.md §4.6 "Each binding is grabbed with every combination of these
// three modifiers set"). The other contexts' forests are not grabbed:
// their bindings are matched only while a modal handler holds an active
// keyboard grab.
func (g *Grabber) GrabAll(conn *x11.Conn, win xproto.Window) error {
	seen := make(map[Chord]bool)
	return grabNode(conn, win, g.Forests[ContextGlobal].root, seen)
}

func grabNode(conn *x11.Conn, win xproto.Window, n *Node, seen map[Chord]bool) error {
	for chord, child := range n.Children {
		if !seen[chord] {
			seen[chord] = true
			if err := conn.GrabKeyAllLockCombos(win, chord.Mod, chord.Code); err != nil {
				return err
			}
		}
		if err := grabNode(conn, win, child, seen); err != nil {
			return err
		}
	}
	return nil
}
