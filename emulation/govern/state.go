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

package govern

import (
	"strings"
	"sync/atomic"
)

// State is a set of flags describing the condition of an emulation worker.
// The zero value is Normal.
type State uint32

// List of state flags.
//
// Hidden and Paused both stop the emulation. They are separate so that one
// can be cleared without clearing the other. For example, the window being
// restored must not unpause an emulation that the user had paused before the
// window was minimised.
//
// Halted and Fatal are terminal. Once set they can not be cleared and the
// emulation must be replaced.
//
// Bench does not stop the emulation. It causes frames to be run as quickly as
// possible.
const Normal State = 0

const (
	Hidden State = 1 << iota
	Paused
	Halted
	Fatal
	Bench
)

// the flags that stop the emulation from running
const notRunning = Hidden | Paused | Halted | Fatal

// the flags that can not be cleared
const terminal = Halted | Fatal

func (s State) String() string {
	if s == Normal {
		return "Normal"
	}

	var f []string
	if s&Hidden == Hidden {
		f = append(f, "Hidden")
	}
	if s&Paused == Paused {
		f = append(f, "Paused")
	}
	if s&Halted == Halted {
		f = append(f, "Halted")
	}
	if s&Fatal == Fatal {
		f = append(f, "Fatal")
	}
	if s&Bench == Bench {
		f = append(f, "Bench")
	}
	return strings.Join(f, "|")
}

// IsRunning returns true if none of Hidden, Paused, Halted or Fatal are set.
func (s State) IsRunning() bool {
	return s&notRunning == 0
}

// IsTerminal returns true if Halted or Fatal are set.
func (s State) IsTerminal() bool {
	return s&terminal != 0
}

// Has returns true if all the flags in f are set.
func (s State) Has(f State) bool {
	return s&f == f
}

// StateIntegrity checks whether the combination of flags makes sense.
//
// Rules:
//
//  1. Normal is always valid
//
//  2. Halted and Fatal can not both be set. The emulation stops processing
//     instructions as soon as either is set so there is no opportunity for the
//     other to be reached
//
//  3. No undefined bits are set
func StateIntegrity(s State) bool {
	if s == Normal {
		return true
	}
	if s.Has(Halted | Fatal) {
		return false
	}
	return s&^(notRunning|Bench) == 0
}

// Control is an atomically updated State. It is the only means by which the
// host goroutine and the worker goroutine share the state of an emulation.
//
// The zero value is ready to use and has the value Normal.
type Control struct {
	state atomic.Uint32
}

// Load returns the current state.
func (c *Control) Load() State {
	return State(c.state.Load())
}

// IsRunning is a convenience function equivalent to Load().IsRunning().
func (c *Control) IsRunning() bool {
	return c.Load().IsRunning()
}

// update applies the function to the current state until the compare and
// swap succeeds. returns the new state
func (c *Control) update(f func(State) State) State {
	for {
		o := c.state.Load()
		n := uint32(f(State(o)))
		if c.state.CompareAndSwap(o, n) {
			return State(n)
		}
	}
}

// Set the flags in f. Returns the new state.
//
// Only one terminal flag is ever set. Once the state is terminal the terminal
// flags in f are ignored, and if f has both Halted and Fatal then only Fatal
// is set.
func (c *Control) Set(f State) State {
	if f.Has(Halted | Fatal) {
		f &^= Halted
	}
	return c.update(func(s State) State {
		if s.IsTerminal() {
			return s | f&^terminal
		}
		return s | f
	})
}

// Clear the flags in f. Halted and Fatal are never cleared. Returns the new
// state.
func (c *Control) Clear(f State) State {
	f &^= terminal
	return c.update(func(s State) State {
		return s &^ f
	})
}

// Toggle the flags in f. Halted and Fatal are never toggled. Returns the new
// state.
func (c *Control) Toggle(f State) State {
	f &^= terminal
	return c.update(func(s State) State {
		return s ^ f
	})
}

// Apply sets or clears the flags in f depending on the value of set. Returns
// the new state.
func (c *Control) Apply(f State, set bool) State {
	if set {
		return c.Set(f)
	}
	return c.Clear(f)
}
