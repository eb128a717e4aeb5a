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

package userinput

// Scancode identifies a physical key. The values are the USB HID usage IDs
// for the keyboard page, which are also the values used by SDL. Frontends
// that do not use SDL must translate their key events into these values.
type Scancode uint32

// NumScancodes is the number of distinct scancodes that a Device can track.
const NumScancodes = 512

// List of scancodes used by the emulation and the host.
const (
	ScancodeUnknown Scancode = 0

	ScancodeA Scancode = 4 + iota - 1
	ScancodeB
	ScancodeC
	ScancodeD
	ScancodeE
	ScancodeF
	ScancodeG
	ScancodeH
	ScancodeI
	ScancodeJ
	ScancodeK
	ScancodeL
	ScancodeM
	ScancodeN
	ScancodeO
	ScancodeP
	ScancodeQ
	ScancodeR
	ScancodeS
	ScancodeT
	ScancodeU
	ScancodeV
	ScancodeW
	ScancodeX
	ScancodeY
	ScancodeZ
	Scancode1
	Scancode2
	Scancode3
	Scancode4
	Scancode5
	Scancode6
	Scancode7
	Scancode8
	Scancode9
	Scancode0
	ScancodeReturn
	ScancodeEscape
	ScancodeBackspace
	ScancodeTab
	ScancodeSpace
)

// function and cursor keys
const (
	ScancodeF1 Scancode = 58 + iota
	ScancodeF2
	ScancodeF3
	ScancodeF4
	ScancodeF5
	ScancodeF6
	ScancodeF7
	ScancodeF8
	ScancodeF9
	ScancodeF10
	ScancodeF11
	ScancodeF12
)

const (
	ScancodeRight Scancode = 79 + iota
	ScancodeLeft
	ScancodeDown
	ScancodeUp
)

// keypad keys
const (
	ScancodeKP1 Scancode = 89 + iota
	ScancodeKP2
	ScancodeKP3
	ScancodeKP4
	ScancodeKP5
	ScancodeKP6
	ScancodeKP7
	ScancodeKP8
	ScancodeKP9
	ScancodeKP0
)

// ScancodeFromRune translates a character typed at a terminal into the
// scancode of the key most likely to have produced it. Upper and lower case
// letters translate to the same scancode.
func ScancodeFromRune(r rune) (Scancode, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return ScancodeA + Scancode(r-'a'), true
	case r >= 'A' && r <= 'Z':
		return ScancodeA + Scancode(r-'A'), true
	case r >= '1' && r <= '9':
		return Scancode1 + Scancode(r-'1'), true
	case r == '0':
		return Scancode0, true
	case r == ' ':
		return ScancodeSpace, true
	case r == '\r' || r == '\n':
		return ScancodeReturn, true
	case r == '\t':
		return ScancodeTab, true
	case r == 0x1b:
		return ScancodeEscape, true
	case r == 0x7f || r == 0x08:
		return ScancodeBackspace, true
	}
	return ScancodeUnknown, false
}
