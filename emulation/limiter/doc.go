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

// Package limiter paces the emulation. The Limiter converts the passing of
// time into a decision about whether the next emulated frame is due.
//
// The Limiter is polled rather than waited on. The CheckTime() function
// returns immediately and the caller decides what to do while waiting. The
// CheckTimeAndIdle() variant sleeps or yields on behalf of the caller when
// the frame is not yet due.
//
// Time is accounted for in milliseconds as a float64. Any time in excess of
// the target period when a frame is declared due is carried over to the next
// frame, so that the average rate over a long period matches the target rate
// regardless of how late individual checks are.
//
// When a check is very late there are two policies. If lost frames are
// dropped then whole periods of excess time are discarded and the LostFrame()
// flag is set. Otherwise all excess time is carried over and the following
// checks will report due frames immediately until the deficit is made up.
//
// All time is taken from a Clock. The default clock uses the monotonic
// reading of the system clock. The ManualClock type is useful for testing.
package limiter
