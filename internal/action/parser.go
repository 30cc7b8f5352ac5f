package action

import (
	"fmt"
	"strconv"
	"strings"
)

// names maps the textual action name (as it appears in a config binding or
// a reassembled _PEKWM_CMD) to its Kind. Mirrors
// original_source/src/Action.cc's name table, restated in Go idiom.
var names = map[string]Kind{
	"focusdirection":   KindFocusDirection,
	"focusnext":        KindFocusNext,
	"focusprev":        KindFocusPrev,
	"activateclient":   KindActivateClient,
	"move":             KindMove,
	"resize":           KindResize,
	"moveresize":       KindMoveResize,
	"movetoedge":       KindMoveToEdge,
	"movetohead":       KindMoveToHead,
	"growdirection":    KindGrowDirection,
	"setgeometry":      KindSetGeometry,
	"maximizehorz":     KindMaximizeHorz,
	"maximizevert":     KindMaximizeVert,
	"maximize":         KindMaximize,
	"maxfill":          KindMaxFill,
	"fullscreen":       KindFullscreen,
	"shade":            KindShade,
	"stick":            KindStick,
	"stickyskip":       KindStickySkip,
	"detach":           KindDetach,
	"attachmarked":     KindAttachMarked,
	"groupingdrag":     KindGroupingDrag,
	"gotoworkspace":    KindGotoWorkspace,
	"sendtoworkspace":  KindSendToWorkspace,
	"warptoworkspace":  KindWarpToWorkspace,
	"showmenu":         KindShowMenu,
	"findclient":       KindFindClient,
	"gotoclientbyid":   KindGotoClientByID,
	"reload":           KindReload,
	"restart":          KindRestart,
	"exit":             KindExit,
	"exec":             KindExec,
	"shellexec":        KindShellExec,
	"movecancel":       KindMoveCancel,
	"close":            KindClose,
	"raise":            KindRaise,
	"lower":             KindLower,
	"iconify":          KindIconify,
}

// Parse parses one action-list entry of the form "Name arg1 arg2 ..." or
// "Set Name arg..." / "Unset Name arg..." / "Toggle Name arg..." for state
// toggles, matching pekwm's config grammar without reading config.go (this
// parser has no file I/O; callers feed it already-tokenized lines).
func Parse(line string) (Action, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Action{}, fmt.Errorf("action: empty action line")
	}

	state := StateToggle
	switch strings.ToLower(fields[0]) {
	case "set":
		state = StateSet
		fields = fields[1:]
	case "unset":
		state = StateUnset
		fields = fields[1:]
	case "toggle":
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return Action{}, fmt.Errorf("action: missing action name after state qualifier")
	}

	kind, ok := names[strings.ToLower(fields[0])]
	if !ok {
		return Action{}, fmt.Errorf("action: unknown action %q", fields[0])
	}
	return Action{Kind: kind, State: state, Args: fields[1:]}, nil
}

// ParseList parses a whole _PEKWM_CMD-reassembled or config action-list
// string, one action per top-level clause separated by ';'.
func ParseList(s string) (Event, error) {
	var ev Event
	for _, clause := range strings.Split(s, ";") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		a, err := Parse(clause)
		if err != nil {
			return Event{}, err
		}
		ev.Actions = append(ev.Actions, a)
	}
	return ev, nil
}

// IntArg parses the i'th argument as an int, returning def if absent or
// unparseable -- used by geometry/workspace actions that take a numeric
// argument (spec.md §4.7 families "geometry", "workspace").
func IntArg(a Action, i int, def int) int {
	if i < 0 || i >= len(a.Args) {
		return def
	}
	n, err := strconv.Atoi(a.Args[i])
	if err != nil {
		return def
	}
	return n
}
