// This file is part of Framechip.
//
// Framechip is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Framechip is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Framechip.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/framechip/framechip/emulation/limiter"
)

// Config for a single run of the benchmark.
type Config struct {
	Hz       float64
	Duration time.Duration

	// simulated work for each frame. the work is performed by sleeping on
	// the clock
	Work time.Duration

	SkipFirst bool
	Drop      bool

	// busy wait with CheckTime() rather than idling with CheckTimeAndIdle()
	Busy bool
}

// Result of a benchmark run.
type Result struct {
	Target   float64
	Elapsed  time.Duration
	Frames   uint64
	Lost     uint64
	Checks   uint64
	Measured float64
}

// Rate is the number of frames per second over the whole run.
func (r Result) Rate() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Elapsed.Seconds()
}

// Efficiency is the proportion of checks that resulted in a frame. A busy
// loop will have a very low value.
func (r Result) Efficiency() float64 {
	if r.Checks == 0 {
		return 0
	}
	return float64(r.Frames) / float64(r.Checks)
}

func (r Result) String() string {
	return fmt.Sprintf("target %.2fHz: %d frames in %v (%.2f fps, measured %.2f) %d lost, %d checks (%.1f%% efficient)",
		r.Target, r.Frames, r.Elapsed.Round(time.Millisecond), r.Rate(), r.Measured,
		r.Lost, r.Checks, r.Efficiency()*100)
}

// bench runs the limiter until the duration has passed on the clock or the
// context is cancelled. the limiter is supplied by the caller so that progress can be
// reported from another goroutine while the benchmark is running
func bench(ctx context.Context, cfg Config, lmtr *limiter.Limiter, clock limiter.Clock) Result {
	lmtr.Configure(cfg.Hz, cfg.SkipFirst, cfg.Drop)

	check := lmtr.CheckTimeAndIdle
	if cfg.Busy {
		check = lmtr.CheckTime
	}

	r := Result{Target: lmtr.TargetHz()}

	start := clock.Elapsed()
	end := start + cfg.Duration

	for clock.Elapsed() < end {
		select {
		case <-ctx.Done():
			return finish(r, lmtr, clock.Elapsed()-start)
		default:
		}

		r.Checks++
		if !check() {
			continue
		}

		if cfg.Work > 0 {
			clock.Sleep(cfg.Work)
		}
	}

	return finish(r, lmtr, clock.Elapsed()-start)
}

func finish(r Result, lmtr *limiter.Limiter, elapsed time.Duration) Result {
	r.Elapsed = elapsed
	r.Frames = lmtr.ValidFrameCount()
	r.Lost = lmtr.LostFrameCount()
	r.Measured = lmtr.Measured()
	return r
}

// progress writes the measured frame rate of the limiter once per interval
// until the context is cancelled
func progress(ctx context.Context, output io.Writer, lmtr *limiter.Limiter, interval time.Duration) {
	tck := time.NewTicker(interval)
	defer tck.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tck.C:
			fmt.Fprintf(output, "measured %.2f fps\n", lmtr.Measured())
		}
	}
}
