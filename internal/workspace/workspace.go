// Package workspace implements spec.md §3 "Workspace" and §4.5 "Workspaces
// and stacking": a fixed set of virtual desktops, each with a layer-ordered
// stacking list and an MRU list of frames for focus cycling. It is
// grounded on funkycode-marwind's wm.go workspace slice ([10]*workspace,
// switchWorkspace, moveFrameToWorkspace) and generalized from marwind's flat
// per-output client slice to pekwm's layer-banded stacking list plus a real
// MRU (spec.md §8 property 8), backed by hashicorp/golang-lru for the MRU
// promote-on-touch semantics.
package workspace

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/pekwm/pekwm-sub002/internal/wo"
)

// mruCapacity bounds the MRU list; pekwm itself does not cap this, but an
// unbounded LRU defeats golang-lru's API, and no realistic session holds
// more than a few hundred live frames.
const mruCapacity = 512

// Workspace is one virtual desktop: a layer-ordered stacking list plus an
// MRU cycling list, per spec.md §3 "Workspace".
type Workspace struct {
	Num  int32
	Name string

	stack []wo.Handle // non-decreasing layer order, spec.md §8 property 6

	mru *lru.Cache // wo.Handle -> struct{}, ordered most-recent-first

	lastFocused wo.Handle
}

// New constructs an empty workspace. num is the EWMH desktop index.
func New(num int32, name string) *Workspace {
	c, _ := lru.New(mruCapacity) // only errors on capacity <= 0
	return &Workspace{Num: num, Name: name, mru: c}
}

// Stack returns the current z-order, bottom to top.
func (w *Workspace) Stack() []wo.Handle { return append([]wo.Handle(nil), w.stack...) }

// Contains reports whether h is currently on this workspace's stack.
func (w *Workspace) Contains(h wo.Handle) bool {
	for _, s := range w.stack {
		if s == h {
			return true
		}
	}
	return false
}

// Add inserts h into the stack at the correct position for layer, keeping
// the non-decreasing-layer invariant (spec.md §8 testable property 6).
func (w *Workspace) Add(h wo.Handle, layer wo.Layer, resolve Resolver) {
	if w.Contains(h) {
		return
	}
	insertAt := len(w.stack)
	for i, s := range w.stack {
		if o, ok := resolve(s); ok && o.Layer() > layer {
			insertAt = i
			break
		}
	}
	w.stack = append(w.stack, wo.Handle{})
	copy(w.stack[insertAt+1:], w.stack[insertAt:])
	w.stack[insertAt] = h
}

// Remove deletes h from the stack and MRU list.
func (w *Workspace) Remove(h wo.Handle) {
	for i, s := range w.stack {
		if s == h {
			w.stack = append(w.stack[:i], w.stack[i+1:]...)
			break
		}
	}
	w.mru.Remove(h)
	if w.lastFocused == h {
		w.lastFocused = wo.Handle{}
	}
}

// Resolver upgrades a weak handle to a live WO; callers pass
// wo.Registry.Resolve.
type Resolver func(wo.Handle) (wo.WO, bool)

// Reband moves h to the correct stack position after its layer changed,
// preserving spec.md §8 property 6. The MRU list is untouched: a layer
// change carries no focus information.
func (w *Workspace) Reband(h wo.Handle, newLayer wo.Layer, resolve Resolver) {
	for i, s := range w.stack {
		if s == h {
			w.stack = append(w.stack[:i], w.stack[i+1:]...)
			break
		}
	}
	w.Add(h, newLayer, resolve)
}

// Touch promotes h to the front of the MRU list, per spec.md §8 property 8
// "MRU head = focus": hashicorp/golang-lru's Add on an existing key
// promotes it to most-recently-used without duplicating the entry.
func (w *Workspace) Touch(h wo.Handle) {
	w.mru.Add(h, struct{}{})
}

// MRU returns the MRU list, most-recently-used first.
func (w *Workspace) MRU() []wo.Handle {
	keys := w.mru.Keys() // golang-lru returns oldest-first
	out := make([]wo.Handle, len(keys))
	for i, k := range keys {
		out[len(keys)-1-i] = k.(wo.Handle)
	}
	return out
}

// LastFocused returns the handle to restore focus to when this workspace
// becomes active again (spec.md §4.5 "setWorkspace" step 6).
func (w *Workspace) LastFocused() wo.Handle { return w.lastFocused }
func (w *Workspace) SetLastFocused(h wo.Handle) { w.lastFocused = h }
