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

import "github.com/framechip/framechip/userinput"

// the hexadecimal keypad of the COSMAC VIP
//
//	1 2 3 C
//	4 5 6 D
//	7 8 9 E
//	A 0 B F
//
// is mapped to the left hand side of a QWERTY keyboard
//
//	1 2 3 4
//	Q W E R
//	A S D F
//	Z X C V
//
// and to the numeric keypad for the digits.
var keymap = []userinput.Mapping{
	{Index: 0x1, Primary: userinput.Scancode1, Alternate: userinput.ScancodeKP7},
	{Index: 0x2, Primary: userinput.Scancode2, Alternate: userinput.ScancodeKP8},
	{Index: 0x3, Primary: userinput.Scancode3, Alternate: userinput.ScancodeKP9},
	{Index: 0xc, Primary: userinput.Scancode4},
	{Index: 0x4, Primary: userinput.ScancodeQ, Alternate: userinput.ScancodeKP4},
	{Index: 0x5, Primary: userinput.ScancodeW, Alternate: userinput.ScancodeKP5},
	{Index: 0x6, Primary: userinput.ScancodeE, Alternate: userinput.ScancodeKP6},
	{Index: 0xd, Primary: userinput.ScancodeR},
	{Index: 0x7, Primary: userinput.ScancodeA, Alternate: userinput.ScancodeKP1},
	{Index: 0x8, Primary: userinput.ScancodeS, Alternate: userinput.ScancodeKP2},
	{Index: 0x9, Primary: userinput.ScancodeD, Alternate: userinput.ScancodeKP3},
	{Index: 0xe, Primary: userinput.ScancodeF},
	{Index: 0xa, Primary: userinput.ScancodeZ},
	{Index: 0x0, Primary: userinput.ScancodeX, Alternate: userinput.ScancodeKP0},
	{Index: 0xb, Primary: userinput.ScancodeC},
	{Index: 0xf, Primary: userinput.ScancodeV},
}

// Keymap implements the machine.Machine interface.
func (m *Machine) Keymap() []userinput.Mapping {
	return keymap
}
