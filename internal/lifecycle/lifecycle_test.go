package lifecycle

import (
	"testing"
	"time"

	"golang.org/x/sys/unix"
)

func TestApplySignalSetsStickyFlags(t *testing.T) {
	s := NewSupervisor(nil)
	s.applySignal(unix.SIGHUP)
	s.applySignal(unix.SIGCHLD)

	flags := s.Drain()
	if !flags.Reload || !flags.Reap || flags.Shutdown {
		t.Fatalf("unexpected flags after SIGHUP+SIGCHLD: %+v", flags)
	}

	// Drain clears the pending flags.
	if again := s.Drain(); again.Any() {
		t.Fatalf("expected no pending flags after Drain, got %+v", again)
	}
}

func TestApplySignalShutdownOnIntOrTerm(t *testing.T) {
	s := NewSupervisor(nil)
	s.applySignal(unix.SIGINT)
	if !s.Drain().Shutdown {
		t.Fatalf("SIGINT should set Shutdown")
	}
	s.applySignal(unix.SIGTERM)
	if !s.Drain().Shutdown {
		t.Fatalf("SIGTERM should set Shutdown")
	}
}

func TestSpawnAndReapRoundTrip(t *testing.T) {
	s := NewSupervisor(nil)
	c, err := s.Spawn("test-child", "/bin/sh", "-c", "exit 0")
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}

	var reports []ExitReport
	deadline := time.Now().Add(2 * time.Second)
	for len(reports) == 0 && time.Now().Before(deadline) {
		reports = s.Reap()
		if len(reports) == 0 {
			time.Sleep(10 * time.Millisecond)
		}
	}

	if len(reports) != 1 {
		t.Fatalf("expected exactly one reaped child, got %d", len(reports))
	}
	if reports[0].Pid != c.Pid || reports[0].Label != "test-child" {
		t.Fatalf("unexpected report: %+v", reports[0])
	}
	if !reports[0].Unexpected {
		t.Fatalf("exit without Stop should be reported as unexpected")
	}
}

func TestStopMarksExitAsExpected(t *testing.T) {
	s := NewSupervisor(nil)
	c, err := s.Spawn("sleeper", "/bin/sh", "-c", "sleep 5")
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if err := s.Stop(c); err != nil {
		t.Fatalf("stop: %v", err)
	}

	var reports []ExitReport
	deadline := time.Now().Add(2 * time.Second)
	for len(reports) == 0 && time.Now().Before(deadline) {
		reports = s.Reap()
		if len(reports) == 0 {
			time.Sleep(10 * time.Millisecond)
		}
	}
	if len(reports) != 1 {
		t.Fatalf("expected exactly one reaped child, got %d", len(reports))
	}
	if reports[0].Unexpected {
		t.Fatalf("exit after Stop should not be reported as unexpected")
	}
}
