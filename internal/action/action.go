// Package action implements spec.md §4.7 "Action handler" and the action/
// mouse-config surface named in the component table: action-kind and
// state-kind enumerations, an action-name parser, and mouse-context
// binding tables. It is grounded on funkycode-marwind's move.go
// (MoveDirection/ResizeDirection enums) and manager/manager.go's
// key-action dispatch switch, generalized from marwind's handful of hard-
// coded cases to the full action-family list spec.md §4.7 enumerates.
package action

import (
	"github.com/BurntSushi/xgb"

	"github.com/pekwm/pekwm-sub002/internal/wo"
)

// Kind enumerates the action families spec.md §4.7 lists (not exhaustive
// there; this is the core's closed vocabulary of action names the parser
// recognizes).
type Kind int

const (
	// Focus movement
	KindFocusDirection Kind = iota
	KindFocusNext
	KindFocusPrev
	KindActivateClient

	// Geometry
	KindMove
	KindResize
	KindMoveResize
	KindMoveToEdge
	KindMoveToHead
	KindGrowDirection
	KindSetGeometry

	// State toggles
	KindMaximizeHorz
	KindMaximizeVert
	KindMaximize
	KindMaxFill
	KindFullscreen
	KindShade
	KindStick
	KindStickySkip

	// Frame composition
	KindDetach
	KindAttachMarked
	KindGroupingDrag

	// Workspace
	KindGotoWorkspace
	KindSendToWorkspace
	KindWarpToWorkspace

	// Window listings
	KindShowMenu
	KindFindClient
	KindGotoClientByID

	// Session
	KindReload
	KindRestart
	KindExit

	// External
	KindExec
	KindShellExec

	// Modal cancellation (spec.md §5 "Cancellation")
	KindMoveCancel

	KindClose
	KindRaise
	KindLower
	KindIconify
)

// StateKind distinguishes how a state toggle action should change the
// target's boolean state (spec.md glossary convention shared with
// _NET_WM_STATE's add/remove/toggle).
type StateKind int

const (
	StateSet StateKind = iota
	StateUnset
	StateToggle
)

// Action is one parsed action-list entry: a Kind plus its string
// arguments, exactly as received from a key binding, a mouse binding, or a
// reassembled _PEKWM_CMD payload.
type Action struct {
	Kind  Kind
	State StateKind
	Args  []string
}

// Event is an ordered action list produced by the key grabber, mouse
// binding table, or a dialog (spec.md §4.1 "may return an ActionEvent").
type Event struct {
	Actions []Action
}

// Performed is the record the action handler dispatches (spec.md §4.7
// "Takes an ActionPerformed record containing a target WO, an action
// event, and optionally the originating X11 event").
type Performed struct {
	Target   wo.WO
	Event    Event
	RawEvent xgb.Event // the originating X11 event, nil if synthesized
}
