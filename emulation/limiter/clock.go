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
	"sync/atomic"
	"time"
)

// Clock is the time source used by the Limiter.
type Clock interface {
	// Elapsed returns the time since a fixed but arbitrary point in the past.
	// the value must never decrease
	Elapsed() time.Duration

	// Sleep suspends the calling goroutine for the duration
	Sleep(d time.Duration)
}

type monotonic struct {
	epoch time.Time
}

// NewMonotonicClock returns a clock backed by the monotonic reading of the
// system clock. Changes to the wall clock do not affect it.
func NewMonotonicClock() Clock {
	return monotonic{epoch: time.Now()}
}

func (c monotonic) Elapsed() time.Duration {
	return time.Since(c.epoch)
}

func (c monotonic) Sleep(d time.Duration) {
	time.Sleep(d)
}

// ManualClock is a clock that only moves when told to. Sleep() advances the
// clock by the requested duration without suspending the goroutine.
//
// Safe to use from more than one goroutine.
type ManualClock struct {
	now atomic.Int64
}

// Advance moves the clock forward. Negative durations are ignored.
func (c *ManualClock) Advance(d time.Duration) {
	if d > 0 {
		c.now.Add(int64(d))
	}
}

func (c *ManualClock) Elapsed() time.Duration {
	return time.Duration(c.now.Load())
}

func (c *ManualClock) Sleep(d time.Duration) {
	c.Advance(d)
}
