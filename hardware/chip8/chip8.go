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
	"fmt"
	"strings"

	"github.com/framechip/framechip/curated"
	"github.com/framechip/framechip/emulation/govern"
	"github.com/framechip/framechip/emulation/machine"
	"github.com/framechip/framechip/environment"
	"github.com/framechip/framechip/hardware/preferences"
	"github.com/framechip/framechip/romloader"
	"github.com/framechip/framechip/userinput"
)

// System is the name of the system as used by the machine registry.
const System = "chip8"

// Memory map.
const (
	memorySize   = 0x1000
	programStart = 0x200

	// MaxProgramSize is the largest program that will fit in memory.
	MaxProgramSize = memorySize - programStart
)

const (
	stackSize = 16
	numRPL    = 8
)

// Framerate is the rate at which the timers are decremented. It is also the
// rate at which the display is presented.
const Framerate = 60.0

// Sentinal error patterns.
const (
	ProgramError   = "chip8: %v"
	BuzzerError    = "chip8: buzzer: %v"
	BuzzerWAVError = "chip8: buzzer: wav: %v"
	BuzzerMP3Error = "chip8: buzzer: mp3: %v"
)

// log tag
const logTag = "chip8"

// Machine is an emulated CHIP-8 or SUPER-CHIP machine.
type Machine struct {
	env *environment.Environment

	variant string
	schip   bool

	mem   [memorySize]uint8
	v     [16]uint8
	i     uint16
	pc    uint16
	stack [stackSize]uint16
	sp    int

	delayTimer uint8
	soundTimer uint8

	rpl [numRPL]uint8

	// the interrupt the machine is waiting on and, for Input interrupts, the
	// register that will receive the key
	interrupt govern.Interrupt
	inputReg  uint8

	// instructions remaining in the current frame. made negative when the
	// loop is stopped early by an interrupt
	budget int

	cycles uint64
	keys   userinput.Keys

	display display
	audio   audio
}

// NewMachine creates a new machine of the specified variant with the program
// loaded into memory. If variant is empty the variant in the environment's
// preferences is used.
func NewMachine(env *environment.Environment, variant string, program []byte) (*Machine, error) {
	if variant == "" {
		variant = env.Prefs.Variant.String()
	}
	variant = strings.ToLower(variant)

	switch variant {
	case preferences.VariantCHIP8, preferences.VariantSCHIP:
	default:
		return nil, curated.Errorf(ProgramError, fmt.Sprintf("unknown variant (%s)", variant))
	}

	if len(program) == 0 {
		return nil, curated.Errorf(ProgramError, "empty program")
	}
	if len(program) > MaxProgramSize {
		return nil, curated.Errorf(ProgramError, fmt.Sprintf("program too large (%d bytes)", len(program)))
	}

	m := &Machine{
		env:     env,
		variant: variant,
		schip:   variant == preferences.VariantSCHIP,
	}

	copy(m.mem[smallFontAddr:], smallFont[:])
	copy(m.mem[largeFontAddr:], largeFont[:])
	copy(m.mem[programStart:], program)
	m.pc = programStart

	m.display.reset(m.schip)

	if err := m.audio.init(env); err != nil {
		// a missing buzzer sample is not fatal. the square wave is used
		env.Log.Log(env, logTag, err)
	}

	env.Log.Logf(env, logTag, "%s: %d bytes loaded", m.variant, len(program))

	return m, nil
}

// Descriptor returns the machine registry descriptor for the chip8 package.
func Descriptor() machine.Descriptor {
	return machine.Descriptor{
		System:     System,
		Kinds:      []string{preferences.VariantCHIP8, preferences.VariantSCHIP},
		Extensions: []string{".ch8", ".c8", ".sc8"},
		MaxSize:    MaxProgramSize,
		Accepts: func(ld romloader.Loader) bool {
			// the smallest program is a single instruction
			return ld.Size() >= 2
		},
		Create: func(env *environment.Environment, ld romloader.Loader) (machine.Machine, error) {
			variant := ""
			if ld.Kind == preferences.VariantCHIP8 || ld.Kind == preferences.VariantSCHIP {
				variant = ld.Kind
			}
			return NewMachine(env, variant, ld.Data)
		},
	}
}

func (m *Machine) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("PC=%03x I=%03x SP=%d DT=%02x ST=%02x", m.pc, m.i, m.sp, m.delayTimer, m.soundTimer))
	for r, v := range m.v {
		s.WriteString(fmt.Sprintf(" V%X=%02x", r, v))
	}
	return s.String()
}

// System implements the machine.Machine interface.
func (m *Machine) System() string {
	return System
}

// Variant returns the variant of the machine.
func (m *Machine) Variant() string {
	return m.variant
}

// Framerate implements the machine.Steppable interface.
func (m *Machine) Framerate() float64 {
	return Framerate
}

// SetKeys implements the machine.Steppable interface.
func (m *Machine) SetKeys(keys userinput.Keys) {
	m.keys = keys
}

// Interrupt implements the machine.Steppable interface.
func (m *Machine) Interrupt() govern.Interrupt {
	return m.interrupt
}

// Cycles implements the machine.Steppable interface.
func (m *Machine) Cycles() uint64 {
	return m.cycles
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// V returns the value of register VX.
func (m *Machine) V(x int) uint8 {
	return m.v[x&0x0f]
}

// I returns the value of the index register.
func (m *Machine) I() uint16 {
	return m.i
}

// Timers returns the value of the delay and sound timers.
func (m *Machine) Timers() (uint8, uint8) {
	return m.delayTimer, m.soundTimer
}

// Peek returns the value in memory at the address. Addresses wrap around at
// the end of memory.
func (m *Machine) Peek(addr uint16) uint8 {
	return m.mem[addr&(memorySize-1)]
}

// raise an error interrupt and log the reason
func (m *Machine) fault(format string, args ...any) {
	m.interrupt = govern.Error
	m.env.Log.Logf(m.env, logTag, format, args...)
}
