package lifecycle

import (
	"golang.org/x/sys/unix"
)

// Reap drains every exited child that SIGCHLD has already reaped into the
// zombie table, non-blocking (spec.md §5 "SIGCHLD triggers a non-blocking
// reap in the signal-flag loop"). It is meant to be called from
// handler.Loop's OnReap callback.
func (s *Supervisor) Reap() []ExitReport {
	var reports []ExitReport
	for {
		var ws unix.WaitStatus
		pid, err := unix.Wait4(-1, &ws, unix.WNOHANG, nil)
		if err != nil || pid <= 0 {
			return reports
		}

		s.mu.Lock()
		c, tracked := s.children[pid]
		expected := s.stopping[pid]
		delete(s.children, pid)
		delete(s.stopping, pid)
		s.mu.Unlock()

		report := ExitReport{Pid: pid, ExitCode: ws.ExitStatus(), Unexpected: !expected}
		if tracked {
			report.Label = c.Label
		}
		reports = append(reports, report)

		if tracked && !expected && s.log != nil {
			s.log.WithField("label", c.Label).WithField("pid", pid).
				Warn("subprocess exited unexpectedly")
		}
	}
}
