package server

import (
	"os/exec"
)

// ProcessHandle observes a locally launched server process. The lifecycle
// waits use it to fail fast when the process dies during startup and to
// terminate it when a wait times out. This toolkit never starts servers
// itself; handles wrap processes the caller launched.
type ProcessHandle interface {
	// Alive reports whether the process is still running.
	Alive() bool
	// ExitCode returns the exit code of a finished process. It returns -1
	// while the process is running or when it was terminated by a signal.
	ExitCode() int
	// Destroy forcibly terminates the process. Destroying a process that
	// has already finished is a no-op.
	Destroy() error
}

// ExecHandle is a ProcessHandle over an os/exec command. The handle owns
// the command's Wait call; the caller must not call Wait itself.
type ExecHandle struct {
	cmd  *exec.Cmd
	done chan struct{}
}

var _ ProcessHandle = (*ExecHandle)(nil)

// NewExecHandle watches an already-started command. A goroutine reaps the
// process and records its exit state.
func NewExecHandle(cmd *exec.Cmd) *ExecHandle {
	handle := &ExecHandle{
		cmd:  cmd,
		done: make(chan struct{}),
	}
	go func() {
		// The error is reflected in cmd.ProcessState; closing done
		// publishes it.
		_ = cmd.Wait()
		close(handle.done)
	}()
	return handle
}

// Alive reports whether the process has not yet been reaped.
func (h *ExecHandle) Alive() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// ExitCode returns the recorded exit code, or -1 while the process is
// running.
func (h *ExecHandle) ExitCode() int {
	select {
	case <-h.done:
		if h.cmd.ProcessState == nil {
			return -1
		}
		return h.cmd.ProcessState.ExitCode()
	default:
		return -1
	}
}

// Destroy kills the process if it is still running.
func (h *ExecHandle) Destroy() error {
	if !h.Alive() || h.cmd.Process == nil {
		return nil
	}
	return h.cmd.Process.Kill()
}
