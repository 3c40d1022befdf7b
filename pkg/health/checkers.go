package health

import (
	"context"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/go-faster/errors"
)

// GoroutineCountCheck flags a goroutine leak: it fails once the live
// goroutine count passes the given bound.
func GoroutineCountCheck(bound int) CheckFunc {
	return func(_ context.Context) error {
		if n := runtime.NumGoroutine(); n > bound {
			return errors.Errorf("goroutine count %d exceeds threshold %d", n, bound)
		}
		return nil
	}
}

// GCMaxPauseCheck fails when any recorded stop-the-world pause exceeds the
// given bound, a sign of memory pressure.
func GCMaxPauseCheck(bound time.Duration) CheckFunc {
	return func(_ context.Context) error {
		var stats debug.GCStats
		debug.ReadGCStats(&stats)
		for _, pause := range stats.Pause {
			if pause > bound {
				return errors.Errorf("GC pause %s exceeds threshold %s", pause, bound)
			}
		}
		return nil
	}
}
