package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rkaplan/x987scout/internal/logging"
)

var watchdogLog = logging.New("pipeline.watchdog")

// ErrWatchdogTimeout is returned when a guarded operation exceeds its
// ceiling, the Go analogue of the original cli/utils.py watchdog's
// TimeoutError (SPEC_FULL §C.5).
var ErrWatchdogTimeout = fmt.Errorf("operation exceeded watchdog timeout")

// RunWithWatchdog runs fn under a context.WithTimeout, logging and
// returning ErrWatchdogTimeout if fn does not return before ceiling
// elapses. fn is expected to respect ctx cancellation; a hung fn that
// ignores ctx leaks its goroutine, matching the spirit of the original's
// "log and force-fail rather than block the process forever" behavior
// without actually killing the underlying OS thread (Go has no safe
// equivalent of a forced raise-in-thread).
func RunWithWatchdog(ctx context.Context, ceiling time.Duration, fn func(context.Context) error) error {
	watchCtx, cancel := context.WithTimeout(ctx, ceiling)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- fn(watchCtx)
	}()

	select {
	case err := <-done:
		return err
	case <-watchCtx.Done():
		watchdogLog.Error("operation exceeded %s watchdog ceiling", ceiling)
		return ErrWatchdogTimeout
	}
}
