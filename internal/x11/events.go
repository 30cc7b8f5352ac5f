package x11

import (
	"errors"
	"time"

	"github.com/BurntSushi/xgb"
)

// errConnClosed is surfaced when the event pump goroutine observes the
// underlying connection go away.
var errConnClosed = errors.New("x11: connection closed")

// EventOrErr carries one WaitForEvent() result across the pump goroutine.
type EventOrErr struct {
	ev  xgb.Event
	err error
}

// StartEventPump launches the single goroutine that blocks in
// (*xgb.Conn).WaitForEvent -- the same call marwind's wm.go/manager.go Run
// loops make directly -- and republishes results on a channel so the event
// loop (internal/handler) can select on it alongside the timeout queue
// without ever blocking anywhere else, per spec.md §5 "Suspension points":
// "the loop blocks in exactly one place ... bounded by the next timeout."
// The pump itself is the one exception, since BurntSushi/xgb's connection
// offers no fd-level select; it exists solely to turn a blocking call into
// a channel so the caller's select can still be timeout-bounded.
func (c *Conn) StartEventPump() <-chan EventOrErr {
	ch := make(chan EventOrErr, 16)
	go func() {
		for {
			ev, err := c.X.WaitForEvent()
			if ev == nil && err == nil {
				// the connection was closed from under us
				close(ch)
				return
			}
			ch <- EventOrErr{ev, err}
		}
	}()
	return ch
}

// NextEvent waits up to timeout (0 means forever) for the next value from
// the pump channel, returning ok=false on timeout so the caller can service
// its timeout queue -- spec.md §4.1 step 2's "else block ... until either a
// new event arrives or the timeout expires".
func NextEvent(ch <-chan EventOrErr, timeout time.Duration) (xgb.Event, error, bool) {
	if timeout <= 0 {
		r, open := <-ch
		if !open {
			return nil, errConnClosed, true
		}
		return r.ev, r.err, true
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case r, open := <-ch:
		if !open {
			return nil, errConnClosed, true
		}
		return r.ev, r.err, true
	case <-timer.C:
		return nil, nil, false
	}
}
