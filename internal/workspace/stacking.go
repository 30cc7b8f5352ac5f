package workspace

import "github.com/pekwm/pekwm-sub002/internal/wo"

// bandBounds returns [lo, hi) indices of h's own layer band within stack,
// where stack is already in non-decreasing layer order.
func bandBounds(stack []wo.Handle, layer wo.Layer, resolve Resolver) (lo, hi int) {
	lo, hi = -1, -1
	for i, h := range stack {
		o, ok := resolve(h)
		if !ok {
			continue
		}
		if o.Layer() == layer {
			if lo == -1 {
				lo = i
			}
			hi = i + 1
		} else if o.Layer() > layer && lo != -1 {
			break
		}
	}
	if lo == -1 {
		lo, hi = 0, 0
	}
	return lo, hi
}

// Raise moves h to the top of its own layer band (spec.md §4.5 "raise
// moves a WO to the top of its band ... a request that would cross bands
// is clipped").
func (w *Workspace) Raise(h wo.Handle, resolve Resolver) {
	w.moveWithinBand(h, resolve, true)
}

// Lower moves h to the bottom of its own layer band.
func (w *Workspace) Lower(h wo.Handle, resolve Resolver) {
	w.moveWithinBand(h, resolve, false)
}

func (w *Workspace) moveWithinBand(h wo.Handle, resolve Resolver, toTop bool) {
	o, ok := resolve(h)
	if !ok {
		return
	}
	idx := -1
	for i, s := range w.stack {
		if s == h {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	lo, hi := bandBounds(w.stack, o.Layer(), resolve)
	w.stack = append(w.stack[:idx], w.stack[idx+1:]...)
	if idx < lo {
		lo--
		hi--
	} else if idx < hi {
		hi--
	}
	target := hi
	if !toTop {
		target = lo
	}
	w.stack = append(w.stack, wo.Handle{})
	copy(w.stack[target+1:], w.stack[target:])
	w.stack[target] = h
}

// FullscreenAboveState tracks the saved layer of a WO that was promoted to
// LayerAboveDock while fullscreen, so it can be demoted again before
// something else is raised above it (spec.md §4.5 "Fullscreen stacking
// interaction").
type FullscreenAboveState struct {
	Active     bool
	SavedLayer wo.Layer
}

// EnterFullscreenAbove promotes o to LayerAboveDock unconditionally and
// returns a state remembering its prior layer; whether fullscreen-above is
// enabled is left to the caller.
func EnterFullscreenAbove(o wo.WO) FullscreenAboveState {
	saved := o.Layer()
	o.SetLayer(wo.LayerAboveDock)
	return FullscreenAboveState{Active: true, SavedLayer: saved}
}

// DemoteBeforeRaise moves o's stack position back into its saved layer's
// band (o's own layer field is left to the caller). Called just before
// another WO is raised above a fullscreen-above WO; RepromoteOnFocus is
// the inverse transition spec.md §4.5 describes, run when the fullscreen
// WO regains focus.
func (s *FullscreenAboveState) DemoteBeforeRaise(o wo.WO, ws *Workspace, resolve Resolver) {
	if !s.Active {
		return
	}
	ws.Reband(o.Handle(), s.SavedLayer, resolve)
	s.Active = false
}

// RepromoteOnFocus re-applies the above-dock promotion when the fullscreen
// WO regains focus.
func (s *FullscreenAboveState) RepromoteOnFocus(o wo.WO, ws *Workspace, resolve Resolver) {
	if s.Active {
		return
	}
	s.SavedLayer = o.Layer()
	ws.Reband(o.Handle(), wo.LayerAboveDock, resolve)
	s.Active = true
}
