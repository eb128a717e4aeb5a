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
	"github.com/framechip/framechip/emulation/govern"
)

// the length of the beep, in frames, after a key has been pressed in
// response to FX0A. chip8 variant only
const inputBeep = 4

// HandlePreFrameInterrupt implements the machine.Steppable interface.
func (m *Machine) HandlePreFrameInterrupt() {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
	}

	switch m.interrupt {
	case govern.Frame:
		m.interrupt = govern.Clear
	case govern.Sound:
		if m.soundTimer == 0 {
			m.interrupt = govern.Clear
		}
	case govern.Delay:
		if m.delayTimer == 0 {
			m.interrupt = govern.Clear
		}
	}

	m.budget = m.env.Prefs.CPF.Get().(int)
}

// InstructionLoop implements the machine.Steppable interface.
func (m *Machine) InstructionLoop() {
	if m.interrupt.IsWaiting() {
		return
	}

	for m.budget > 0 {
		m.step()
		m.budget--
		if m.interrupt.IsWaiting() {
			m.budget = -m.budget
		}
	}
}

// HandleEndFrameInterrupt implements the machine.Steppable interface.
func (m *Machine) HandleEndFrameInterrupt() govern.State {
	switch m.interrupt {
	case govern.Input:
		if k, ok := m.keys.FirstPressed(); ok {
			m.v[m.inputReg] = uint8(k)
			m.interrupt = govern.Clear
			if !m.schip {
				m.soundTimer = inputBeep
				m.interrupt = govern.Sound
			}
		}
	case govern.Final:
		m.env.Log.Log(m.env, logTag, "program exited")
	}

	return m.interrupt.Terminal()
}
