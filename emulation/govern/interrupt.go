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

// Interrupt is the wait condition of an emulated machine. It is consulted
// before and after the instructions for a frame are run.
type Interrupt int

// List of interrupt conditions.
//
// Frame, Sound and Delay are resolved before the instructions of a frame are
// run. Input is resolved after. Final and Error are never resolved and are
// translated into the Halted and Fatal states of the emulation.
const (
	// no wait. instructions are run
	Clear Interrupt = iota

	// wait for the start of the next frame
	Frame

	// wait for the sound to stop
	Sound

	// wait for the delay timer to reach zero
	Delay

	// wait for a key to be pressed
	Input

	// the program has finished
	Final

	// the program can not continue
	Error
)

func (i Interrupt) String() string {
	switch i {
	case Clear:
		return "Clear"
	case Frame:
		return "Frame"
	case Sound:
		return "Sound"
	case Delay:
		return "Delay"
	case Input:
		return "Input"
	case Final:
		return "Final"
	case Error:
		return "Error"
	}
	return ""
}

// IsWaiting returns true if the interrupt prevents instructions being run.
func (i Interrupt) IsWaiting() bool {
	return i != Clear
}

// Terminal returns the State flag that should be set for the interrupt.
// Returns Normal for interrupts that are not terminal.
func (i Interrupt) Terminal() State {
	switch i {
	case Final:
		return Halted
	case Error:
		return Fatal
	}
	return Normal
}
