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

package chip8

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/framechip/framechip/curated"
	"github.com/framechip/framechip/emulation/govern"
)

// Sentinal error patterns.
const (
	StateError = "chip8: state: %v"
)

var stateMagic = [4]byte{'C', '8', 'S', '1'}

// State is a copy of the machine at a moment in time. It does not include the
// permanent registers, which belong to the program rather than to the
// moment.
type State struct {
	Magic     [4]byte
	Schip     bool
	Mem       [memorySize]uint8
	V         [16]uint8
	I         uint16
	PC        uint16
	Stack     [stackSize]uint16
	SP        uint8
	Delay     uint8
	Sound     uint8
	Interrupt uint8
	InputReg  uint8
	Hires     bool
	Pixels    [HiresWidth * HiresHeight / 8]uint8
	Cycles    uint64
}

// Snapshot the state of the machine.
func (m *Machine) Snapshot() *State {
	s := &State{
		Magic:     stateMagic,
		Schip:     m.schip,
		Mem:       m.mem,
		V:         m.v,
		I:         m.i,
		PC:        m.pc,
		Stack:     m.stack,
		SP:        uint8(m.sp),
		Delay:     m.delayTimer,
		Sound:     m.soundTimer,
		Interrupt: uint8(m.interrupt),
		InputReg:  m.inputReg,
		Hires:     m.display.hires,
		Cycles:    m.cycles,
	}
	for i, p := range m.display.pixels {
		if p {
			s.Pixels[i/8] |= 0x80 >> (i % 8)
		}
	}
	return s
}

// Plumb a previously snapshotted state into the machine. The state must have
// been taken from a machine of the same variant.
func (m *Machine) Plumb(s *State) error {
	if s.Magic != stateMagic {
		return curated.Errorf(StateError, "not a chip8 state")
	}
	if s.Schip != m.schip {
		return curated.Errorf(StateError, "state is for a different variant")
	}
	if int(s.SP) > stackSize {
		return curated.Errorf(StateError, "stack pointer out of range")
	}
	if s.PC > memorySize-2 {
		return curated.Errorf(StateError, "program counter out of range")
	}
	if govern.Interrupt(s.Interrupt) > govern.Error || s.InputReg > 0x0f {
		return curated.Errorf(StateError, "bad interrupt")
	}

	m.mem = s.Mem
	m.v = s.V
	m.i = s.I & (memorySize - 1)
	m.pc = s.PC
	m.stack = s.Stack
	m.sp = int(s.SP)
	m.delayTimer = s.Delay
	m.soundTimer = s.Sound
	m.interrupt = govern.Interrupt(s.Interrupt)
	m.inputReg = s.InputReg
	m.display.hires = s.Hires
	m.cycles = s.Cycles
	for i := range m.display.pixels {
		m.display.pixels[i] = s.Pixels[i/8]&(0x80>>(i%8)) != 0
	}

	return nil
}

// StateSize implements the machine.Persistent interface.
func (m *Machine) StateSize() int {
	return binary.Size(State{})
}

// SaveState implements the machine.Persistent interface.
func (m *Machine) SaveState() []byte {
	var b bytes.Buffer
	b.Grow(m.StateSize())
	if err := binary.Write(&b, binary.LittleEndian, m.Snapshot()); err != nil {
		// binary.Write only fails for types without a fixed size
		panic(err)
	}
	return b.Bytes()
}

// LoadState implements the machine.Persistent interface.
func (m *Machine) LoadState(data []byte) error {
	if len(data) != m.StateSize() {
		return curated.Errorf(StateError, fmt.Sprintf("wrong size (%d bytes)", len(data)))
	}
	var s State
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &s); err != nil {
		return curated.Errorf(StateError, err)
	}
	return m.Plumb(&s)
}

// PermanentSize implements the machine.PermanentRegisters interface.
func (m *Machine) PermanentSize() int {
	return numRPL
}

// PermanentRegisters implements the machine.PermanentRegisters interface. The
// permanent registers are the RPL user flags.
func (m *Machine) PermanentRegisters() []byte {
	r := make([]byte, numRPL)
	copy(r, m.rpl[:])
	return r
}

// RestorePermanentRegisters implements the machine.PermanentRegisters
// interface.
func (m *Machine) RestorePermanentRegisters(data []byte) error {
	if len(data) != numRPL {
		return curated.Errorf(StateError, fmt.Sprintf("wrong size for permanent registers (%d bytes)", len(data)))
	}
	copy(m.rpl[:], data)
	return nil
}
