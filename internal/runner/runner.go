package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/ArtekArtek/fiddle/internal/binaries"
	"github.com/ArtekArtek/fiddle/internal/model"
	"github.com/ArtekArtek/fiddle/pkg/logger"
)

// State is the slice of the application state the runner works against.
type State interface {
	Version() string
	VersionEntry(ver string) (model.Version, bool)
	PushOutput(text string)
	PushRawOutput(data []byte)
	SetRunning(running bool)
}

// Runner executes the selected runtime against a fiddle directory and
// streams the child's output into the console log.
type Runner struct {
	state   State
	manager binaries.Manager

	mu     sync.Mutex
	cancel context.CancelFunc
}

// New creates a Runner over the application state and binary manager.
func New(state State, manager binaries.Manager) *Runner {
	return &Runner{
		state:   state,
		manager: manager,
	}
}

// Run executes the currently selected runtime with dir as its argument and
// blocks until the child exits. Child output flows through the console line
// buffer. A nonzero exit is reported to the console, not as an error; only
// one fiddle runs at a time.
func (r *Runner) Run(ctx context.Context, dir string) error {
	ver := r.state.Version()
	if ver == "" {
		return errors.New("no runtime version selected")
	}
	entry, exists := r.state.VersionEntry(ver)
	if !exists || !entry.State.IsReady() {
		return fmt.Errorf("runtime %s is not downloaded", ver)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("fiddle directory does not exist: %s", dir)
	}

	r.mu.Lock()
	if r.cancel != nil {
		r.mu.Unlock()
		return errors.New("a fiddle is already running")
	}
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.mu.Unlock()

	defer func() {
		cancel()
		r.mu.Lock()
		r.cancel = nil
		r.mu.Unlock()
	}()

	executable := r.manager.ExecutablePath(ver)
	logger.Infof("running fiddle %s with runtime %s", dir, ver)

	cmd := exec.CommandContext(runCtx, executable, dir)
	writer := &consoleWriter{state: r.state}
	cmd.Stdout = writer
	cmd.Stderr = writer

	r.state.PushOutput(fmt.Sprintf("Launching runtime %s", ver))
	r.state.SetRunning(true)
	defer r.state.SetRunning(false)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start runtime %s: %w", ver, err)
	}

	err := cmd.Wait()
	if runCtx.Err() == context.Canceled {
		r.state.PushOutput("Runtime was stopped")
		return nil
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return fmt.Errorf("run runtime %s: %w", ver, err)
		}
	}

	r.state.PushOutput(fmt.Sprintf("Runtime exited with code %d", cmd.ProcessState.ExitCode()))
	return nil
}

// Stop terminates the running child, if any.
func (r *Runner) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// consoleWriter forwards child output chunks into the console line buffer.
// Both std streams share one writer, so chunk writes arrive serialized.
type consoleWriter struct {
	state State
}

func (w *consoleWriter) Write(p []byte) (int, error) {
	w.state.PushRawOutput(p)
	return len(p), nil
}
