package action

// MouseContext names where on a frame/client a button event landed, since
// pekwm binds different actions to the same button depending on context
// (titlebar drag moves; border drag resizes).
type MouseContext int

const (
	MouseContextTitlebar MouseContext = iota
	MouseContextBorder
	MouseContextClient
	MouseContextRoot
	MouseContextMenu
	MouseContextOther
)

// MouseEventKind says whether a mouse chord (button number plus normalized
// modifier mask) fires on press, release, double click or motion (pekwm's
// mouse config distinguishes these).
type MouseEventKind int

const (
	MousePress MouseEventKind = iota
	MouseRelease
	MouseDoubleClick
	MouseMotion
)

type MouseChord struct {
	Context MouseContext
	Kind    MouseEventKind
	Button  uint8
	Mod     uint16
}

// MouseTable is the per-context binding table: a MouseChord resolves to an
// action list, analogous to keygrabber.Forest but for pointer buttons
// (spec.md §6 "mouse-context binding tables").
type MouseTable struct {
	bindings map[MouseChord]Event
}

func NewMouseTable() *MouseTable {
	return &MouseTable{bindings: make(map[MouseChord]Event)}
}

func (t *MouseTable) Bind(c MouseChord, ev Event) {
	t.bindings[c] = ev
}

// Lookup returns the bound action list for a chord, if any.
func (t *MouseTable) Lookup(c MouseChord) (Event, bool) {
	ev, ok := t.bindings[c]
	return ev, ok
}
