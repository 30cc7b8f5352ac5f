// Package keygrabber implements spec.md §4.6 "Key grabber": a forest of
// chorded key-chains per input context, matched against normalized
// modifier masks. It is grounded on funkycode-marwind's wm.go grabKeys/
// handleKeyPressEvent (flat keymap, GrabKeyAllLockCombos-equivalent loop)
// and generalized from a flat map to the chain forest
// original_source/src/KeyGrabber.* (_INDEX.md) describes, using
// internal/x11's NormalizeModifiers/GrabKeyAllLockCombos for the mask
// equivalence pekwm calls "grabbing every lock-bit combination".
package keygrabber

import (
	"time"

	"github.com/BurntSushi/xgb/xproto"
)

// Context selects which chain forest a KeyPress is matched against (spec.md
// §4.6 "Separate forests exist per context").
type Context int

const (
	ContextGlobal Context = iota
	ContextMoveResize
	ContextInputDialog
	ContextMenu
	ContextCommandDialog
)

// Chord is a (modifier, keycode) pair, the forest's edge label.
type Chord struct {
	Mod  uint16
	Code xproto.Keycode
}

// Node is either a terminal action list or a nested chain (spec.md §4.6
// "a terminal action list or a nested chain").
type Node struct {
	Actions  []string // terminal: the bound action list, e.g. ["Close"]
	Children map[Chord]*Node
}

func newNode() *Node { return &Node{Children: make(map[Chord]*Node)} }

// IsTerminal reports whether this node carries actions rather than a
// nested chain.
func (n *Node) IsTerminal() bool { return len(n.Actions) > 0 }

// Forest is one context's chain tree, rooted at an implicit null pointer
// (spec.md §4.6 "the current chain pointer (null means root)").
type Forest struct {
	root *Node
}

func NewForest() *Forest { return &Forest{root: newNode()} }

// Bind registers chords (a chain of one or more chords) as resolving to
// actions. A single-chord bind is the common case; multi-chord binds model
// pekwm's chained key sequences (e.g. "C-x C-c").
func (f *Forest) Bind(chords []Chord, actions []string) {
	n := f.root
	for i, c := range chords {
		child, ok := n.Children[c]
		if !ok {
			child = newNode()
			n.Children[c] = child
		}
		if i == len(chords)-1 {
			child.Actions = actions
		}
		n = child
	}
}

// Grabber holds the per-context forests and the live chain-matching state
// for one X display connection's keyboard.
type Grabber struct {
	Forests map[Context]*Forest

	chainTimeout time.Duration
	cur          *Node
	curForest    *Forest
	chainDeadline time.Time
}

// NewGrabber constructs a Grabber with one empty forest per context.
func NewGrabber(chainTimeout time.Duration) *Grabber {
	g := &Grabber{Forests: make(map[Context]*Forest), chainTimeout: chainTimeout}
	for _, ctx := range []Context{ContextGlobal, ContextMoveResize, ContextInputDialog, ContextMenu, ContextCommandDialog} {
		g.Forests[ctx] = NewForest()
	}
	return g
}

// MatchResult is what Match returns: either a terminal action list, an
// advance into a sub-chain (no action yet), or no match at all.
type MatchResult int

const (
	MatchNone MatchResult = iota
	MatchAdvanced
	MatchTerminal
)

// Match implements spec.md §4.6's matching algorithm for one KeyPress.
// normalizedMod must already have NumLock/ScrollLock/CapsLock stripped
// (internal/x11.Conn.NormalizeModifiers). now is used to expire a stale
// chain pointer per the configured timeout.
func (g *Grabber) Match(ctx Context, chord Chord, now time.Time) (MatchResult, []string) {
	if g.cur != nil && now.After(g.chainDeadline) {
		g.ResetChain()
	}

	forest := g.curForest
	node := g.cur
	if node == nil {
		forest = g.Forests[ctx]
		node = forest.root
	}

	child, ok := node.Children[chord]
	if !ok {
		g.ResetChain()
		return MatchNone, nil
	}
	if child.IsTerminal() {
		g.ResetChain()
		return MatchTerminal, child.Actions
	}
	g.cur = child
	g.curForest = forest
	g.chainDeadline = now.Add(g.chainTimeout)
	return MatchAdvanced, nil
}

// ResetChain drops back to the root of whatever forest is in progress
// (spec.md §4.6 "a configurable timeout without a follow-up key resets the
// chain").
func (g *Grabber) ResetChain() {
	g.cur = nil
	g.curForest = nil
}

// InChain reports whether a multi-chord sequence is in progress (callers
// use this to decide whether to install/keep a temporary keyboard grab).
func (g *Grabber) InChain() bool { return g.cur != nil }
