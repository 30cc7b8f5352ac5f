package wo

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
)

// Handle is a weak, generation-tagged reference into a Registry's arena.
// spec.md §9 calls for "an arena (a slab keyed by monotonically increasing
// WO-id), with all long-lived references stored as indices. Weak references
// use generation counters to detect stale handles". The MRU list, the
// transient-for link, and modal event handlers' drag targets all hold
// Handles rather than WO interface values directly, so a destroyed WO can
// never be silently resurrected by a dangling reference.
type Handle struct {
	index uint32
	gen   uint32
}

// Zero reports whether this is the unset handle.
func (h Handle) Zero() bool { return h.gen == 0 }

func (h Handle) String() string { return fmt.Sprintf("wo#%d.%d", h.index, h.gen) }

type slot struct {
	wo  WO
	gen uint32
	win xproto.Window
}

// Registry maps X11 window IDs to live WOs and is a bijection per spec.md
// §8 testable property 1: for every window ID the WM has reparented or
// created, lookup returns a live WO, and every live WO's window ID looks
// back up to itself.
type Registry struct {
	mu      sync.Mutex
	slots   []slot
	free    []uint32
	byWin   map[xproto.Window]uint32
	focused Handle
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{byWin: make(map[xproto.Window]uint32)}
}

// Insert adds a WO to the registry and returns its new Handle. The WO must
// not already be registered under this window ID.
func (r *Registry) Insert(w WO) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	win := w.WinID()
	if _, exists := r.byWin[win]; exists {
		return Handle{}, fmt.Errorf("wo: window %d already registered", win)
	}

	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
		r.slots[idx].wo = w
		r.slots[idx].win = win
		r.slots[idx].gen++
	} else {
		idx = uint32(len(r.slots))
		r.slots = append(r.slots, slot{wo: w, win: win, gen: 1})
	}
	h := Handle{index: idx, gen: r.slots[idx].gen}
	r.byWin[win] = idx
	return h, nil
}

// Remove detaches a WO from the registry and its parent's child list,
// invalidating every outstanding Handle to it (spec.md §3 invariant).
func (r *Registry) Remove(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.validLocked(h) {
		return
	}
	s := &r.slots[h.index]
	if p := s.wo.Parent(); p != nil {
		p.RemoveChild(s.wo)
	}
	delete(r.byWin, s.win)
	s.wo = nil
	r.free = append(r.free, h.index)
	if r.focused == h {
		r.focused = Handle{}
	}
}

func (r *Registry) validLocked(h Handle) bool {
	return int(h.index) < len(r.slots) && r.slots[h.index].gen == h.gen && r.slots[h.index].wo != nil
}

// Resolve upgrades a weak Handle to a strong WO reference. It returns
// (nil, false) if the WO has since been destroyed -- the same
// "weak reference that fails to upgrade" pattern spec.md §9 describes
// replacing pekwm's observer/notify mechanism with.
func (r *Registry) Resolve(h Handle) (WO, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.validLocked(h) {
		return nil, false
	}
	return r.slots[h.index].wo, true
}

// Lookup finds the WO backed by an X11 window ID.
func (r *Registry) Lookup(win xproto.Window) (WO, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.byWin[win]
	if !ok {
		return nil, false
	}
	return r.slots[idx].wo, true
}

// HandleOf returns the Handle for a currently-registered window ID.
func (r *Registry) HandleOf(win xproto.Window) (Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.byWin[win]
	if !ok {
		return Handle{}, false
	}
	return Handle{index: idx, gen: r.slots[idx].gen}, true
}

// All returns every live WO. Order is not meaningful; callers needing
// stacking order should consult workspace.Workspace instead.
func (r *Registry) All() []WO {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]WO, 0, len(r.slots)-len(r.free))
	for i := range r.slots {
		if r.slots[i].wo != nil {
			out = append(out, r.slots[i].wo)
		}
	}
	return out
}

// SetFocused records which WO currently holds input focus, enforcing
// spec.md §8 testable property 7 (focus uniqueness) by clearing the
// previous holder's Focused bit before setting the new one's.
func (r *Registry) SetFocused(h Handle) (prev WO, ok bool) {
	r.mu.Lock()
	old := r.focused
	r.focused = h
	r.mu.Unlock()

	if p, ok := r.Resolve(old); ok && old != h {
		p.SetFocused(false)
		prev = p
	}
	if w, ok := r.Resolve(h); ok {
		w.SetFocused(true)
		return prev, true
	}
	return prev, false
}

// Focused returns the currently focused WO, if any.
func (r *Registry) Focused() (WO, bool) {
	r.mu.Lock()
	h := r.focused
	r.mu.Unlock()
	return r.Resolve(h)
}
