// Package lifecycle implements spec.md §5's signal and subprocess
// supervision: SIGHUP/SIGINT/SIGTERM set sticky flags consumed at the top
// of the next event-loop iteration (spec.md §4.1 step 1, §5
// "Cancellation"), and SIGCHLD triggers a non-blocking reap of any
// background painter/tray/dialog process spawned via Spawn. None of the
// pack's repos wire raw process-signal handling directly (grounded
// instead on x11driver's aliased `syscall "golang.org/x/sys/unix"` import
// in its X11 event-pump file), so the signal constants and the
// non-blocking wait4 reap loop are taken from golang.org/x/sys/unix
// rather than the stdlib syscall package, keeping the module's process
// control on the same portable surface as its X11 plumbing.
package lifecycle

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/pekwm/pekwm-sub002/internal/handler"
)

// Child is a tracked subprocess (background painter, system-tray helper,
// pekwm_dialog; spec.md §5 "Scheduling model").
type Child struct {
	Label string
	Pid   int
	cmd   *exec.Cmd
}

// ExitReport describes one subprocess reaped by Reap.
type ExitReport struct {
	Label      string
	Pid        int
	ExitCode   int
	Unexpected bool // true unless the exit happened during an explicit Stop
}

// Supervisor owns signal delivery and subprocess bookkeeping for one
// process lifetime. It is safe to read from the event-loop goroutine and
// written to from the signal-watching goroutine started by Watch.
type Supervisor struct {
	log *logrus.Entry

	mu      sync.Mutex
	pending handler.SignalFlags
	children map[int]*Child
	stopping map[int]bool // pids whose exit is expected (Stop was called)

	sigCh chan os.Signal
}

// NewSupervisor constructs an idle supervisor. Call Watch to start
// listening for signals.
func NewSupervisor(log *logrus.Entry) *Supervisor {
	return &Supervisor{
		log:      log,
		children: make(map[int]*Child),
		stopping: make(map[int]bool),
	}
}

// Watch installs the process-wide signal handlers (spec.md §5
// "Cancellation": SIGINT/SIGTERM set a shutdown flag, SIGHUP sets a
// reload flag, SIGCHLD triggers a reap) and returns a stop function that
// reverts signal.Notify.
func (s *Supervisor) Watch() (stop func()) {
	s.sigCh = make(chan os.Signal, 8)
	signal.Notify(s.sigCh, unix.SIGHUP, unix.SIGINT, unix.SIGTERM, unix.SIGCHLD)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-s.sigCh:
				s.applySignal(sig)
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(s.sigCh)
		close(done)
	}
}

// applySignal updates the sticky pending flags for one received signal.
// Split out from Watch's goroutine so tests can drive it without sending
// a real OS signal.
func (s *Supervisor) applySignal(sig os.Signal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch sig {
	case unix.SIGHUP:
		s.pending.Reload = true
	case unix.SIGINT, unix.SIGTERM:
		s.pending.Shutdown = true
	case unix.SIGCHLD:
		s.pending.Reap = true
	}
}

// Drain returns the accumulated signal flags and clears them, for the
// event loop to copy into handler.Loop.Signals at the top of each
// iteration (spec.md §4.1 step 1).
func (s *Supervisor) Drain() handler.SignalFlags {
	s.mu.Lock()
	defer s.mu.Unlock()
	flags := s.pending
	s.pending = handler.SignalFlags{}
	return flags
}

// Spawn starts a tracked background process (spec.md §7 "Subprocess spawn
// failure: log; feature is disabled until next spawn opportunity").
func (s *Supervisor) Spawn(label, path string, args ...string) (*Child, error) {
	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		if s.log != nil {
			s.log.WithError(err).WithField("label", label).Warn("subprocess spawn failed")
		}
		return nil, fmt.Errorf("lifecycle: spawn %s: %w", label, err)
	}
	c := &Child{Label: label, Pid: cmd.Process.Pid, cmd: cmd}
	s.mu.Lock()
	s.children[c.Pid] = c
	s.mu.Unlock()
	return c, nil
}

// Stop marks a child's exit as expected (so Reap's ExitReport does not
// mark it Unexpected) and asks it to terminate.
func (s *Supervisor) Stop(c *Child) error {
	s.mu.Lock()
	s.stopping[c.Pid] = true
	s.mu.Unlock()
	return c.cmd.Process.Signal(unix.SIGTERM)
}
