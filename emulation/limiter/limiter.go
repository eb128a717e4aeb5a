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

package limiter

import (
	"math"
	"runtime"
	"sync/atomic"
	"time"
)

// the range of frequencies accepted by Configure(). values outside of this
// range are clamped
const (
	MinFrequency = 0.5
	MaxFrequency = 1000.0
)

// the largest margin, in milliseconds, by which a due frame can be late
// before it is considered lost. for high frequencies the margin is one target
// period
const maxLostMargin = 50.0

// remaining time below which CheckTimeAndIdle() yields rather than sleeps.
// sleep granularity is not good enough for shorter periods
const sleepThreshold = 2 * time.Millisecond

// how often the actual frame rate is measured
const measurePeriod = time.Second

// Limiter decides when the next emulated frame is due. It is owned by a
// single goroutine and none of its functions are safe to call concurrently,
// with the exception of Measured().
type Limiter struct {
	clock Clock

	// the requested frequency after clamping and the resulting period in
	// milliseconds
	targetHz     float64
	targetPeriod float64

	// time carried over from the previous due frame in milliseconds. never
	// negative. when dropLostFrames is true it is always less than
	// targetPeriod
	overshoot float64

	// the clock reading of the most recent due frame
	lastTimestamp time.Duration

	// time until the next frame is due as of the most recent check
	remaining time.Duration

	initialised    bool
	skipFirstPass  bool
	dropLostFrames bool

	// whether the most recent due frame was late enough to have been lost.
	// only ever set when dropLostFrames is true
	lostFrame      bool
	lostFrameCount uint64

	validFrameCount uint64

	// actual frame rate measurement
	measureTime time.Duration
	measureCt   int
	measured    atomic.Uint64 // float64 bits
}

// NewLimiter is the preferred method of initialisation for the Limiter type.
// A nil clock will cause the limiter to use the monotonic system clock. The
// limiter is configured for 60Hz without first frame skipping and without
// dropping lost frames.
func NewLimiter(clock Clock) *Limiter {
	if clock == nil {
		clock = NewMonotonicClock()
	}
	lmtr := &Limiter{
		clock: clock,
	}
	lmtr.Configure(60, false, false)
	return lmtr
}

// Configure sets the target frequency and the frame policy. The frequency is
// clamped to the range MinFrequency to MaxFrequency. A NaN frequency is
// treated as MinFrequency.
//
// Must not be called at the same time as CheckTime().
func (lmtr *Limiter) Configure(hz float64, skipFirstFrame bool, dropLostFrames bool) {
	if math.IsNaN(hz) || hz < MinFrequency {
		hz = MinFrequency
	} else if hz > MaxFrequency {
		hz = MaxFrequency
	}

	lmtr.targetHz = hz
	lmtr.targetPeriod = 1000.0 / hz
	lmtr.dropLostFrames = dropLostFrames
	lmtr.skipFirstPass = skipFirstFrame && !lmtr.initialised
	lmtr.overshoot = 0
	lmtr.lostFrame = false
}

// TargetHz returns the frequency after clamping.
func (lmtr *Limiter) TargetHz() float64 {
	return lmtr.targetHz
}

// TargetPeriod returns the duration of one frame at the target frequency.
func (lmtr *Limiter) TargetPeriod() time.Duration {
	return time.Duration(lmtr.targetPeriod * float64(time.Millisecond))
}

// the margin by which a due frame can be late before it is lost
func (lmtr *Limiter) lostMargin() float64 {
	return math.Min(maxLostMargin, lmtr.targetPeriod)
}

// CheckTime returns true if the next frame is due.
//
// When the limiter is configured to drop lost frames, time in excess of a
// whole number of periods is discarded. Otherwise the excess is carried over
// and subsequent calls will return true until the deficit has been made up,
// one frame per call.
func (lmtr *Limiter) CheckTime() bool {
	now := lmtr.clock.Elapsed()

	if !lmtr.initialised {
		lmtr.initialised = true
		lmtr.lastTimestamp = now
		lmtr.measureTime = now
		if lmtr.skipFirstPass {
			lmtr.skipFirstPass = false
			lmtr.validFrameCount++
			lmtr.measureCt++
			return true
		}
	}

	variation := lmtr.overshoot + float64(now-lmtr.lastTimestamp)/float64(time.Millisecond)
	if variation < lmtr.targetPeriod {
		lmtr.remaining = time.Duration((lmtr.targetPeriod - variation) * float64(time.Millisecond))
		return false
	}

	if lmtr.dropLostFrames {
		lmtr.lostFrame = variation >= lmtr.targetPeriod+lmtr.lostMargin()
		if lmtr.lostFrame {
			lmtr.lostFrameCount++
		}
		lmtr.overshoot = math.Mod(variation, lmtr.targetPeriod)
	} else {
		lmtr.overshoot = variation - lmtr.targetPeriod
	}

	lmtr.remaining = 0
	lmtr.lastTimestamp = now
	lmtr.validFrameCount++
	lmtr.measure(now)

	return true
}

// CheckTimeAndIdle is the same as CheckTime() except that, if the frame is
// not due, the goroutine will sleep or yield before returning. It sleeps
// only when the time remaining is greater than a couple of milliseconds.
// The sleep never lasts longer than the time remaining.
func (lmtr *Limiter) CheckTimeAndIdle() bool {
	if lmtr.CheckTime() {
		return true
	}
	if lmtr.remaining > sleepThreshold {
		lmtr.clock.Sleep(lmtr.remaining - sleepThreshold/2)
	} else {
		runtime.Gosched()
	}
	return false
}

// Remaining returns the amount of time until the next frame was due at the
// time of the most recent check. Zero if the most recent check returned true.
func (lmtr *Limiter) Remaining() time.Duration {
	return lmtr.remaining
}

// ValidFrameCount returns the number of times a frame has been declared due.
// The count is never reset.
func (lmtr *Limiter) ValidFrameCount() uint64 {
	return lmtr.validFrameCount
}

// LostFrame returns true if the most recent due frame was late enough that
// at least one frame was dropped.
func (lmtr *Limiter) LostFrame() bool {
	return lmtr.lostFrame
}

// LostFrameCount returns the number of due frames that were flagged as lost.
func (lmtr *Limiter) LostFrameCount() uint64 {
	return lmtr.lostFrameCount
}

func (lmtr *Limiter) measure(now time.Duration) {
	lmtr.measureCt++
	elapsed := now - lmtr.measureTime
	if elapsed >= measurePeriod {
		m := float64(lmtr.measureCt) / elapsed.Seconds()
		lmtr.measured.Store(math.Float64bits(m))
		lmtr.measureTime = now
		lmtr.measureCt = 0
	}
}

// Measured returns the measured frame rate. The measurement is updated once
// per second of clock time. Safe to call from any goroutine.
func (lmtr *Limiter) Measured() float64 {
	return math.Float64frombits(lmtr.measured.Load())
}
