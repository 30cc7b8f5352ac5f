package autoprops

import (
	"github.com/pekwm/pekwm-sub002/internal/client"
	"github.com/pekwm/pekwm-sub002/internal/frame"
	"github.com/pekwm/pekwm-sub002/internal/wo"
)

// ApplyResult reports the subset of an Action that the caller (which owns
// the workarea and EWMH republish logic) must still carry out, since
// maximize/fullscreen geometry math needs a workarea this package does not
// have (spec.md §4.9 "Application" does not specify workarea resolution;
// left to the frame/handler layer).
type ApplyResult struct {
	ApplyMaxHorz, ApplyMaxVert TriState
	ApplyFullscreen            TriState
	ApplyGeometry               GeometrySpec
	ApplyWorkspace              *int32
}

// Apply realizes the non-workarea-dependent bits of a rule's Action
// directly onto c and its owning f, and returns the remainder for the
// caller to finish (spec.md §4.9 "Application": "state changes that flip
// bits are realized").
func Apply(r Rule, c *client.Client, f *frame.Frame) ApplyResult {
	c.SetSticky(r.Action.Sticky.Apply(c.Sticky()))
	c.SetIconified(r.Action.Iconified.Apply(c.Iconified()))
	c.SetFocusable(r.Action.Focusable.Apply(c.Focusable()))

	if r.Action.DenyMask != nil {
		c.Deny = *r.Action.DenyMask
	}
	if r.Action.Skip != nil {
		c.SetSkipFlags(wo.Skip(*r.Action.Skip))
	}

	if f != nil {
		f.SetSticky(r.Action.Sticky.Apply(f.Sticky()))
		if r.Action.DecorName != "" {
			f.Decor.DecorName = r.Action.DecorName
		}
		f.Decor.HasBorder = r.Action.Border.Apply(f.Decor.HasBorder)
		f.Decor.HasTitlebar = r.Action.Titlebar.Apply(f.Decor.HasTitlebar)
		if !c.Deny.Has(client.DenyStateShaded) {
			f.SetShade(r.Action.Shaded.Apply(f.Shaded()))
		}
		if r.Action.Layer != nil {
			f.SetLayer(wo.Layer(*r.Action.Layer))
		}
	}

	return ApplyResult{
		ApplyMaxHorz:    denyGuard(r.Action.MaxHorz, c.Deny.Has(client.DenyStateMaximizedHorz)),
		ApplyMaxVert:    denyGuard(r.Action.MaxVert, c.Deny.Has(client.DenyStateMaximizedVert)),
		ApplyFullscreen: denyGuard(r.Action.Fullscreen, c.Deny.Has(client.DenyStateFullscreen)),
		ApplyGeometry:   r.Action.Geometry,
		ApplyWorkspace:  r.Action.Workspace,
	}
}

// denyGuard forces Unset (spec.md §4.3 "Setting maximize is rejected
// (STATE_UNSET forced) when the active client has the corresponding
// DisallowedActions flag") when the deny bit is set.
func denyGuard(t TriState, denied bool) TriState {
	if denied {
		return Unset
	}
	return t
}

// GroupTarget identifies, among a set of candidate frames, the one a new
// client with a grouping rule should attach to: the first existing frame
// whose DecorName equals groupName and whose client count is below max
// (spec.md §4.9 "Grouping").
func GroupTarget(groupName string, max int, candidates []*frame.Frame) (*frame.Frame, bool) {
	if groupName == "" {
		return nil, false
	}
	for _, f := range candidates {
		if f.Decor.DecorName == groupName && (max <= 0 || len(f.Clients()) < max) {
			return f, true
		}
	}
	return nil, false
}

// SubjectOf builds a Match Subject from a client's identity fields.
func SubjectOf(c *client.Client) Subject {
	return Subject{Instance: c.Class.Instance, Class: c.Class.Class, Role: c.Role, Title: c.Title()}
}
