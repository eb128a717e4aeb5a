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

// Package worker runs an emulated machine in its own goroutine.
//
// A Worker owns a limiter.Limiter that decides when each frame is due. On
// every due frame the machine's keys are updated, the pre-frame interrupt is
// handled, the instruction loop is run, the end-frame interrupt is handled
// and the audio and video producers are asked to fill the buffers in the
// environment. Frontends read those buffers on their own cadence.
//
// The worker is controlled with the Pause(), Hide() and Bench() functions,
// which update a govern.Control. The worker sets the Halted and Fatal flags
// itself when the machine reaches a terminal interrupt. A halted worker
// continues to run, polling the limiter, until Stop() is called. It can not
// be restarted.
//
// The machine must only be accessed from the worker goroutine. Functions
// that need to access the machine while the worker is running should be
// pushed with PushFunction() or Exec().
package worker
