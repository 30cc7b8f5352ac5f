package x11

import (
	"fmt"
	"time"

	"github.com/BurntSushi/xgb/xproto"
)

// AcquireWMSelection implements the ICCCM WM_Sn manager-selection handoff
// spec.md §6 `--replace` describes: claim the screen's WM_S<n> selection,
// and if another process already owns it, either refuse (replace=false)
// or wait for that process to relinquish it by destroying its previous
// owner window (replace=true) before proceeding. Returns the window this
// process now owns the selection through.
func (c *Conn) AcquireWMSelection(replace bool) (xproto.Window, error) {
	atom := c.Atom("WM_S0")

	prevReply, err := xproto.GetSelectionOwner(c.X, atom).Reply()
	if err != nil {
		return 0, fmt.Errorf("x11: query WM_S0 owner: %w", err)
	}
	prevOwner := prevReply.Owner

	if prevOwner != 0 && !replace {
		return 0, fmt.Errorf("x11: another window manager is already running (use --replace)")
	}

	if prevOwner != 0 {
		if err := xproto.ChangeWindowAttributesChecked(c.X, prevOwner, xproto.CwEventMask,
			[]uint32{uint32(xproto.EventMaskStructureNotify)}).Check(); err != nil {
			c.log.WithError(err).Warn("could not watch previous WM's selection-owner window for destruction")
		}
	}

	win, err := c.CreateParent(0, uint32(xproto.EventMaskPropertyChange))
	if err != nil {
		return 0, fmt.Errorf("x11: create WM selection owner window: %w", err)
	}
	if err := xproto.SetSelectionOwnerChecked(c.X, win, atom, xproto.TimeCurrentTime).Check(); err != nil {
		return 0, fmt.Errorf("x11: set WM_S0 owner: %w", err)
	}

	owner, err := xproto.GetSelectionOwner(c.X, atom).Reply()
	if err != nil || owner.Owner != win {
		return 0, fmt.Errorf("x11: failed to become WM_S0 owner (lost a race with another WM?)")
	}

	if prevOwner != 0 {
		if err := c.waitForDestroy(prevOwner, 3*time.Second); err != nil {
			c.log.WithError(err).Warn("timed out waiting for previous window manager to exit")
		}
	}
	return win, nil
}

// waitForDestroy blocks until win is destroyed or timeout elapses. Must run
// before StartEventPump: both read from the same connection, and on
// timeout this may still consume one more event meant for the real pump.
func (c *Conn) waitForDestroy(win xproto.Window, timeout time.Duration) error {
	found := make(chan struct{})
	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
			}
			ev, err := c.X.WaitForEvent()
			if err != nil {
				continue
			}
			if d, ok := ev.(xproto.DestroyNotifyEvent); ok && d.Window == win {
				close(found)
				return
			}
		}
	}()

	select {
	case <-found:
		return nil
	case <-time.After(timeout):
		close(stop)
		return fmt.Errorf("x11: timed out waiting for window %d to be destroyed", win)
	}
}
