// Package root implements spec.md §3 "Root WO": the single process-wide
// WO backing the X11 root window, owner of the EWMH-published global state
// (active desktop, creation-order client list, z-order stacking list,
// workarea, supported-hints announcement, desktop names/layout). It is
// grounded on funkycode-marwind's wm.go Init (SetWMName, per-output setup)
// and manager/manager.go's gatherWindows startup scan, generalized to the
// full root-WO responsibilities spec.md §3/§4.10 assign it. The startup
// scan of already-mapped windows is internal/manager.Startup's; this
// package does no frame-id/frame-order restart recovery.
package root

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/pekwm/pekwm-sub002/internal/ewmh"
	"github.com/pekwm/pekwm-sub002/internal/geom"
	"github.com/pekwm/pekwm-sub002/internal/wo"
	"github.com/pekwm/pekwm-sub002/internal/x11"
)

type clientEntry struct {
	handle wo.Handle
	win    xproto.Window
}

// Root is the WO wrapping the X11 root window.
type Root struct {
	wo.Base

	Publisher *ewmh.Publisher

	creationOrder []clientEntry // _NET_CLIENT_LIST order
	struts        map[wo.Handle]geom.Strut
}

// New constructs the Root WO for the given root window.
func New(win xproto.Window, pub *ewmh.Publisher) *Root {
	r := &Root{Base: wo.NewBase(wo.TypeRoot, win), Publisher: pub, struts: make(map[wo.Handle]geom.Strut)}
	r.SetMapped(true)
	r.SetFocusable(true)
	return r
}

// RecordCreated appends h to the creation-order client list and republishes
// _NET_CLIENT_LIST (spec.md §3 "Owns EWMH-published state: ... client list
// (creation order)").
func (r *Root) RecordCreated(h wo.Handle, win xproto.Window) {
	r.creationOrder = append(r.creationOrder, clientEntry{handle: h, win: win})
	r.republishClientList()
}

// RecordDestroyed removes h from the creation-order list.
func (r *Root) RecordDestroyed(h wo.Handle) {
	for i, e := range r.creationOrder {
		if e.handle == h {
			r.creationOrder = append(r.creationOrder[:i], r.creationOrder[i+1:]...)
			break
		}
	}
	delete(r.struts, h)
	r.republishClientList()
}

func (r *Root) republishClientList() {
	if r.Publisher == nil {
		return
	}
	wins := make([]xproto.Window, len(r.creationOrder))
	for i, e := range r.creationOrder {
		wins[i] = e.win
	}
	r.Publisher.SetClientList(wins)
}

// PublishStacking republishes _NET_CLIENT_LIST_STACKING from a caller-
// supplied bottom-to-top window order (the per-workspace stack order is
// owned by internal/workspace, not this package, to avoid a dependency
// cycle).
func (r *Root) PublishStacking(wins []xproto.Window) {
	if r.Publisher != nil {
		r.Publisher.SetClientListStacking(wins)
	}
}

// SetStrut records a client's reserved-edge contribution (a zero strut
// removes it). It publishes nothing itself; PublishWorkarea publishes the
// workarea from the aggregate (spec.md §3 "workarea (screen minus all
// struts)").
func (r *Root) SetStrut(h wo.Handle, s geom.Strut) {
	if s == (geom.Strut{}) {
		delete(r.struts, h)
	} else {
		r.struts[h] = s
	}
}

// AggregateStrut sums every client's strut contribution by max per edge
// (geom.Strut.Add semantics), matching pekwm's own accumulation.
func (r *Root) AggregateStrut() geom.Strut {
	var total geom.Strut
	for _, s := range r.struts {
		total.Add(s)
	}
	return total
}

// PublishWorkarea republishes _NET_WORKAREA for every one of numDesktops
// virtual desktops after struts change.
func (r *Root) PublishWorkarea(heads []geom.Head, numDesktops int) {
	if r.Publisher == nil || len(heads) == 0 {
		return
	}
	total := r.AggregateStrut()
	// EWMH _NET_WORKAREA is one rectangle per desktop, not per head; pekwm
	// (and this port) publish the primary head's workarea as a pragmatic
	// single-desktop-layout simplification, matching how most EWMH
	// consumers read it on multi-head setups without full Xinerama-aware
	// workarea semantics.
	primary := heads[0]
	area := primary.Workarea(total)
	r.Publisher.SetWorkarea(numDesktops, area)
}

// AnnounceSupported creates the _NET_SUPPORTING_WM_CHECK window and
// publishes _NET_SUPPORTED once at startup.
func (r *Root) AnnounceSupported(conn *x11.Conn) error {
	checkWin, err := conn.CreateParent(0, 0)
	if err != nil {
		return err
	}
	return r.Publisher.AnnounceSupport(checkWin, "pekwm")
}

