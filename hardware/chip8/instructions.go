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

// step fetches, decodes and executes one instruction.
func (m *Machine) step() {
	if m.pc > memorySize-2 {
		m.fault("program counter out of range (%03x)", m.pc)
		return
	}

	opcode := uint16(m.mem[m.pc])<<8 | uint16(m.mem[m.pc+1])
	at := m.pc
	m.pc += 2
	m.cycles++

	x := uint8(opcode>>8) & 0x0f
	y := uint8(opcode>>4) & 0x0f
	n := uint8(opcode) & 0x0f
	nn := uint8(opcode)
	nnn := opcode & 0x0fff

	switch opcode >> 12 {
	case 0x0:
		switch {
		case opcode == 0x00e0:
			m.display.clear()
		case opcode == 0x00ee:
			if m.sp == 0 {
				m.fault("stack underflow at %03x", at)
				return
			}
			m.sp--
			m.pc = m.stack[m.sp]
		case m.schip && opcode&0xfff0 == 0x00c0:
			m.display.scrollDown(int(n))
		case m.schip && opcode == 0x00fb:
			m.display.scrollRight()
		case m.schip && opcode == 0x00fc:
			m.display.scrollLeft()
		case m.schip && opcode == 0x00fd:
			m.interrupt = govern.Final
		case m.schip && opcode == 0x00fe:
			m.display.setHires(false)
		case m.schip && opcode == 0x00ff:
			m.display.setHires(true)
		default:
			m.unknown(opcode, at)
		}

	case 0x1:
		// a jump back to the start of a loop that is waiting for the delay
		// timer does not need to be run every cycle
		if m.isDelayLoop(nnn, at) {
			m.interrupt = govern.Delay
		}
		m.pc = nnn

	case 0x2:
		if m.sp >= stackSize {
			m.fault("stack overflow at %03x", at)
			return
		}
		m.stack[m.sp] = m.pc
		m.sp++
		m.pc = nnn

	case 0x3:
		if m.v[x] == nn {
			m.pc += 2
		}

	case 0x4:
		if m.v[x] != nn {
			m.pc += 2
		}

	case 0x5:
		if n != 0 {
			m.unknown(opcode, at)
			return
		}
		if m.v[x] == m.v[y] {
			m.pc += 2
		}

	case 0x6:
		m.v[x] = nn

	case 0x7:
		m.v[x] += nn

	case 0x8:
		m.arithmetic(opcode, at, x, y, n)

	case 0x9:
		if n != 0 {
			m.unknown(opcode, at)
			return
		}
		if m.v[x] != m.v[y] {
			m.pc += 2
		}

	case 0xa:
		m.i = nnn

	case 0xb:
		if m.schip {
			m.pc = nnn + uint16(m.v[x])
		} else {
			m.pc = nnn + uint16(m.v[0])
		}

	case 0xc:
		m.v[x] = m.env.Random.Byte() & nn

	case 0xd:
		m.draw(x, y, n)

	case 0xe:
		key := int(m.v[x] & 0x0f)
		switch nn {
		case 0x9e:
			if m.keys.IsHeld(key) {
				m.pc += 2
			}
		case 0xa1:
			if !m.keys.IsHeld(key) {
				m.pc += 2
			}
		default:
			m.unknown(opcode, at)
		}

	case 0xf:
		m.misc(opcode, at, x, nn)
	}
}

func (m *Machine) unknown(opcode uint16, at uint16) {
	m.fault("unknown opcode %04x at %03x", opcode, at)
}

// the 8XYN instructions
func (m *Machine) arithmetic(opcode uint16, at uint16, x, y, n uint8) {
	var flag uint8

	switch n {
	case 0x0:
		m.v[x] = m.v[y]
		return
	case 0x1:
		m.v[x] |= m.v[y]
		if !m.schip {
			m.v[0xf] = 0
		}
		return
	case 0x2:
		m.v[x] &= m.v[y]
		if !m.schip {
			m.v[0xf] = 0
		}
		return
	case 0x3:
		m.v[x] ^= m.v[y]
		if !m.schip {
			m.v[0xf] = 0
		}
		return
	case 0x4:
		r := uint16(m.v[x]) + uint16(m.v[y])
		m.v[x] = uint8(r)
		if r > 0xff {
			flag = 1
		}
	case 0x5:
		if m.v[x] >= m.v[y] {
			flag = 1
		}
		m.v[x] -= m.v[y]
	case 0x6:
		src := m.v[y]
		if m.schip {
			src = m.v[x]
		}
		flag = src & 0x01
		m.v[x] = src >> 1
	case 0x7:
		if m.v[y] >= m.v[x] {
			flag = 1
		}
		m.v[x] = m.v[y] - m.v[x]
	case 0xe:
		src := m.v[y]
		if m.schip {
			src = m.v[x]
		}
		flag = src >> 7
		m.v[x] = src << 1
	default:
		m.unknown(opcode, at)
		return
	}

	// the flag is written after the result so that it takes priority when X
	// is register F
	m.v[0xf] = flag
}

// the FXNN instructions
func (m *Machine) misc(opcode uint16, at uint16, x, nn uint8) {
	switch nn {
	case 0x07:
		m.v[x] = m.delayTimer
	case 0x0a:
		m.interrupt = govern.Input
		m.inputReg = x
	case 0x15:
		m.delayTimer = m.v[x]
	case 0x18:
		m.soundTimer = m.v[x]
	case 0x1e:
		m.i = (m.i + uint16(m.v[x])) & (memorySize - 1)
	case 0x29:
		m.i = smallFontAddr + uint16(m.v[x]&0x0f)*5
	case 0x30:
		if !m.schip {
			m.unknown(opcode, at)
			return
		}
		m.i = largeFontAddr + uint16(m.v[x]%10)*10
	case 0x33:
		m.mem[m.i&(memorySize-1)] = m.v[x] / 100
		m.mem[(m.i+1)&(memorySize-1)] = (m.v[x] / 10) % 10
		m.mem[(m.i+2)&(memorySize-1)] = m.v[x] % 10
	case 0x55:
		for r := uint16(0); r <= uint16(x); r++ {
			m.mem[(m.i+r)&(memorySize-1)] = m.v[r]
		}
		if !m.schip {
			m.i = (m.i + uint16(x) + 1) & (memorySize - 1)
		}
	case 0x65:
		for r := uint16(0); r <= uint16(x); r++ {
			m.v[r] = m.mem[(m.i+r)&(memorySize-1)]
		}
		if !m.schip {
			m.i = (m.i + uint16(x) + 1) & (memorySize - 1)
		}
	case 0x75:
		if !m.schip {
			m.unknown(opcode, at)
			return
		}
		copy(m.rpl[:], m.v[:min(int(x), numRPL-1)+1])
	case 0x85:
		if !m.schip {
			m.unknown(opcode, at)
			return
		}
		copy(m.v[:], m.rpl[:min(int(x), numRPL-1)+1])
	default:
		m.unknown(opcode, at)
	}
}

// isDelayLoop returns true if the jump at address 'at' to address 'target'
// closes the loop:
//
//	target:   FX07   (VX = delay timer)
//	          3X00   (skip if VX == 0)
//	at:       1NNN   (jump to target)
func (m *Machine) isDelayLoop(target uint16, at uint16) bool {
	if target+4 != at {
		return false
	}
	a := uint16(m.mem[target])<<8 | uint16(m.mem[target+1])
	b := uint16(m.mem[target+2])<<8 | uint16(m.mem[target+3])
	x := (a >> 8) & 0x0f
	return a&0xf0ff == 0xf007 && b == 0x3000|x<<8
}
