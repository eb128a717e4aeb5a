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

package limiter_test

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/framechip/framechip/emulation/limiter"
	"github.com/framechip/framechip/test"
)

// period of the frequency as a duration. rounded up so that advancing a clock
// by the period is never short of the limiter's own idea of the period
func period(hz float64) time.Duration {
	return time.Duration(math.Ceil(float64(time.Second) / hz))
}

func TestClamping(t *testing.T) {
	lmtr := limiter.NewLimiter(&limiter.ManualClock{})

	lmtr.Configure(0, false, false)
	test.ExpectEquality(t, lmtr.TargetHz(), limiter.MinFrequency)
	test.ExpectEquality(t, lmtr.TargetPeriod(), 2*time.Second)

	lmtr.Configure(-10, false, false)
	test.ExpectEquality(t, lmtr.TargetHz(), limiter.MinFrequency)

	lmtr.Configure(math.NaN(), false, false)
	test.ExpectEquality(t, lmtr.TargetHz(), limiter.MinFrequency)

	lmtr.Configure(5000, false, false)
	test.ExpectEquality(t, lmtr.TargetHz(), limiter.MaxFrequency)
	test.ExpectEquality(t, lmtr.TargetPeriod(), time.Millisecond)

	lmtr.Configure(50, false, false)
	test.ExpectEquality(t, lmtr.TargetPeriod(), 20*time.Millisecond)
}

func TestFirstFrame(t *testing.T) {
	var clk limiter.ManualClock
	lmtr := limiter.NewLimiter(&clk)
	lmtr.Configure(50, true, false)

	// first check is always due when skipping the first frame
	test.ExpectSuccess(t, lmtr.CheckTime())
	test.ExpectEquality(t, lmtr.ValidFrameCount(), uint64(1))

	// accounting for the next frame starts from the first check
	clk.Advance(19 * time.Millisecond)
	test.ExpectFailure(t, lmtr.CheckTime())
	clk.Advance(time.Millisecond)
	test.ExpectSuccess(t, lmtr.CheckTime())
	test.ExpectFailure(t, lmtr.CheckTime())
	test.ExpectEquality(t, lmtr.ValidFrameCount(), uint64(2))

	// without skipping, the first check is not due
	var clk2 limiter.ManualClock
	lmtr = limiter.NewLimiter(&clk2)
	lmtr.Configure(50, false, false)
	test.ExpectFailure(t, lmtr.CheckTime())
	test.ExpectEquality(t, lmtr.ValidFrameCount(), uint64(0))
	clk2.Advance(20 * time.Millisecond)
	test.ExpectSuccess(t, lmtr.CheckTime())
}

func TestRateWithJitter(t *testing.T) {
	for _, drop := range []bool{false, true} {
		for _, hz := range []float64{0.5, 30, 50, 60, 144, 1000} {
			var clk limiter.ManualClock
			lmtr := limiter.NewLimiter(&clk)
			lmtr.Configure(hz, false, drop)
			test.ExpectFailure(t, lmtr.CheckTime())

			p := period(hz)
			rnd := rand.New(rand.NewPCG(1, uint64(hz)))

			// when dropping lost frames the clock must never jump by more than
			// the lost frame margin otherwise frames will be dropped on purpose
			maxStep := 3 * p
			if drop {
				maxStep = min(p, 50*time.Millisecond)
			}

			var total time.Duration
			for total < 2000*p {
				step := time.Duration(rnd.Int64N(int64(maxStep)))
				clk.Advance(step)
				total += step

				for lmtr.CheckTime() {
				}
			}

			expected := total.Seconds() * hz
			n := float64(lmtr.ValidFrameCount())
			test.ExpectSuccess(t, math.Abs(n-expected) <= 1.0, hz, drop)
			test.ExpectEquality(t, lmtr.LostFrameCount(), uint64(0), hz, drop)
		}
	}
}

func TestDropLostFrames(t *testing.T) {
	var clk limiter.ManualClock
	lmtr := limiter.NewLimiter(&clk)
	lmtr.Configure(60, false, true)
	p := period(60)

	test.ExpectFailure(t, lmtr.CheckTime())
	clk.Advance(p)
	test.ExpectSuccess(t, lmtr.CheckTime())
	test.ExpectFailure(t, lmtr.LostFrame())

	// stall for three and a half periods. one frame is due and the rest are
	// lost
	clk.Advance(p * 7 / 2)
	test.ExpectSuccess(t, lmtr.CheckTime())
	test.ExpectSuccess(t, lmtr.LostFrame())
	test.ExpectFailure(t, lmtr.CheckTime())
	test.ExpectEquality(t, lmtr.ValidFrameCount(), uint64(2))
	test.ExpectEquality(t, lmtr.LostFrameCount(), uint64(1))

	// the half period left over from the stall is carried over
	clk.Advance(p / 2)
	test.ExpectSuccess(t, lmtr.CheckTime())
	test.ExpectFailure(t, lmtr.LostFrame())
}

func TestCatchUp(t *testing.T) {
	var clk limiter.ManualClock
	lmtr := limiter.NewLimiter(&clk)
	lmtr.Configure(60, false, false)
	p := period(60)

	test.ExpectFailure(t, lmtr.CheckTime())
	clk.Advance(p)
	test.ExpectSuccess(t, lmtr.CheckTime())

	// stall for three and a half periods. the stalled check and the next two
	// checks are due immediately
	clk.Advance(p * 7 / 2)
	test.ExpectSuccess(t, lmtr.CheckTime())
	test.ExpectSuccess(t, lmtr.CheckTime())
	test.ExpectSuccess(t, lmtr.CheckTime())
	test.ExpectFailure(t, lmtr.CheckTime())
	test.ExpectEquality(t, lmtr.ValidFrameCount(), uint64(4))

	test.ExpectFailure(t, lmtr.LostFrame())
	test.ExpectEquality(t, lmtr.LostFrameCount(), uint64(0))
}

// a 60Hz limiter fed by a clock moving in steps of 16ms for ten seconds
func TestSixtyHertzFixedSteps(t *testing.T) {
	var clk limiter.ManualClock
	lmtr := limiter.NewLimiter(&clk)
	lmtr.Configure(60, false, true)

	var due, notDue int
	for clk.Elapsed() <= 10*time.Second {
		if lmtr.CheckTime() {
			due++
		} else {
			notDue++
		}
		clk.Advance(16 * time.Millisecond)
	}

	n := lmtr.ValidFrameCount()
	test.ExpectSuccess(t, n == 599 || n == 600, n)
	test.ExpectEquality(t, uint64(due), n)
	test.ExpectInequality(t, notDue, 0)
	test.ExpectEquality(t, lmtr.LostFrameCount(), uint64(0))
}

func TestIdle(t *testing.T) {
	var clk limiter.ManualClock
	lmtr := limiter.NewLimiter(&clk)
	lmtr.Configure(50, false, false)

	// twenty milliseconds remain so the limiter will sleep for most of that
	test.ExpectFailure(t, lmtr.CheckTimeAndIdle())
	test.ExpectEquality(t, clk.Elapsed(), 19*time.Millisecond)

	// one millisecond remains so the limiter yields without sleeping
	test.ExpectFailure(t, lmtr.CheckTimeAndIdle())
	test.ExpectEquality(t, lmtr.Remaining(), time.Millisecond)
	test.ExpectEquality(t, clk.Elapsed(), 19*time.Millisecond)

	clk.Advance(time.Millisecond)
	test.ExpectSuccess(t, lmtr.CheckTimeAndIdle())
	test.ExpectEquality(t, lmtr.Remaining(), time.Duration(0))
}

func TestMeasured(t *testing.T) {
	var clk limiter.ManualClock
	lmtr := limiter.NewLimiter(&clk)
	lmtr.Configure(50, false, false)
	test.ExpectEquality(t, lmtr.Measured(), 0.0)

	lmtr.CheckTime()
	for range 100 {
		clk.Advance(20 * time.Millisecond)
		lmtr.CheckTime()
	}
	test.ExpectApproximate(t, lmtr.Measured(), 50.0, 0.01)
}

// the limiter running against the system clock
func TestSystemClock(t *testing.T) {
	if testing.Short() {
		t.Skip("system clock test skipped in short mode")
	}

	const hz = 100.0

	lmtr := limiter.NewLimiter(nil)
	lmtr.Configure(hz, false, false)

	start := time.Now()
	for time.Since(start) < 1100*time.Millisecond {
		lmtr.CheckTimeAndIdle()
	}
	test.ExpectApproximate(t, lmtr.Measured(), hz, 0.1)
}
