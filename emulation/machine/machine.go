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

package machine

import (
	"github.com/framechip/framechip/emulation/govern"
	"github.com/framechip/framechip/userinput"
)

// Steppable is the part of the machine that runs instructions. All functions
// are called from the emulation worker goroutine only.
type Steppable interface {
	// the number of frames per second expected by the machine
	Framerate() float64

	// SetKeys is called once per frame before HandlePreFrameInterrupt() with
	// the state of the machine's keys
	SetKeys(keys userinput.Keys)

	// HandlePreFrameInterrupt resolves the interrupts that are waiting for
	// the start of a new frame. it is also the point at which the machine's
	// timers are updated
	HandlePreFrameInterrupt()

	// InstructionLoop runs instructions until the cycles for the frame have
	// been used or an interrupt stops the loop early
	InstructionLoop()

	// HandleEndFrameInterrupt resolves the interrupts that are waiting for
	// input and returns the terminal state of the machine. A return value of
	// govern.Normal means the machine can continue
	HandleEndFrameInterrupt() govern.State

	// the interrupt the machine is currently waiting on
	Interrupt() govern.Interrupt

	// the total number of instructions run
	Cycles() uint64
}

// AudioProducer writes one frame of audio to the audio buffer in the
// environment.
type AudioProducer interface {
	RenderAudioData()
}

// VideoProducer writes one frame of video to the video buffer in the
// environment.
type VideoProducer interface {
	RenderVideoData()
	DisplaySize() (int, int)
}

// Persistent is implemented by machines that support savestates. The state
// is a fixed sized blob.
type Persistent interface {
	StateSize() int
	SaveState() []byte
	LoadState(data []byte) error
}

// PermanentRegisters is implemented by machines that have values that should
// be remembered between runs of the same program.
type PermanentRegisters interface {
	PermanentSize() int
	PermanentRegisters() []byte
	RestorePermanentRegisters(data []byte) error
}

// Machine is an emulated machine that can be run by the emulation worker.
type Machine interface {
	Steppable
	AudioProducer
	VideoProducer

	// the name of the system. used to name directories and in the user
	// interface
	System() string

	// the mapping of the machine's keys to the physical keyboard
	Keymap() []userinput.Mapping

	String() string
}
