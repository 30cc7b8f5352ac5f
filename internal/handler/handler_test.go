package handler

import (
	"testing"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/sirupsen/logrus"

	"github.com/pekwm/pekwm-sub002/internal/x11"
)

func TestTimeoutQueuePicksEarliestDeadline(t *testing.T) {
	var q TimeoutQueue
	now := time.Now()
	fired := ""
	q.Add(now.Add(2*time.Second), func() { fired = "late" })
	early := q.Add(now.Add(1*time.Second), func() { fired = "early" })
	q.Add(now.Add(3*time.Second), func() { fired = "latest" })

	t0, _, ok := q.Next(now)
	if !ok || t0 != early {
		t.Fatalf("expected earliest timeout selected")
	}
	q.Fire(t0)
	if fired != "early" {
		t.Fatalf("expected early timeout's action to have run, got %q", fired)
	}
	if _, _, ok := q.Next(now); !ok {
		t.Fatalf("queue should still have two entries")
	}
}

func TestResultStoppedAndConsumed(t *testing.T) {
	cases := []struct {
		r        Result
		stopped  bool
		consumed bool
	}{
		{Processed, false, true},
		{Skip, false, false},
		{StopProcessed, true, true},
		{StopSkip, true, false},
	}
	for _, c := range cases {
		if c.r.Stopped() != c.stopped || c.r.Consumed() != c.consumed {
			t.Errorf("result %v: stopped=%v consumed=%v want %v %v", c.r, c.r.Stopped(), c.r.Consumed(), c.stopped, c.consumed)
		}
	}
}

func TestOfferToModalRoutesKeyPressAndRespectsStopSemantics(t *testing.T) {
	l := &Loop{Modal: &stubModal{result: StopProcessed}}
	res, handled := l.offerToModal(xproto.KeyPressEvent{})
	if !handled {
		t.Fatalf("KeyPressEvent should be handled by the modal interface")
	}
	if !res.Stopped() || !res.Consumed() {
		t.Fatalf("expected StopProcessed to be both stopped and consumed")
	}
}

func TestRunOnceMergesSignalSourceBeforeProcessing(t *testing.T) {
	reloaded := false
	// A closed Events channel makes NextEvent report the connection as
	// gone, which ends RunOnce after this iteration; what this test
	// checks is that the merged Reload flag was processed first.
	ch := make(chan x11.EventOrErr)
	close(ch)
	l := &Loop{
		Events:       ch,
		Log:          logrus.NewEntry(logrus.New()),
		SignalSource: func() SignalFlags { return SignalFlags{Reload: true} },
		OnReload:     func() { reloaded = true },
	}

	l.RunOnce()

	if !reloaded {
		t.Fatalf("expected OnReload to run once the merged Reload flag was processed")
	}
	if l.Signals.Reload {
		t.Fatalf("Reload flag should be cleared once processed")
	}
}

type stubModal struct{ result Result }

func (s *stubModal) Init(*x11.Conn) error                                  { return nil }
func (s *stubModal) HandleButtonPress(xproto.ButtonPressEvent) Result     { return Skip }
func (s *stubModal) HandleButtonRelease(xproto.ButtonReleaseEvent) Result { return Skip }
func (s *stubModal) HandleKeyPress(xproto.KeyPressEvent) Result           { return s.result }
func (s *stubModal) HandleMotionNotify(xproto.MotionNotifyEvent) Result   { return Skip }
func (s *stubModal) HandleExpose(xproto.ExposeEvent) Result               { return Skip }
