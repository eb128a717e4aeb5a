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

package termplay

import (
	"github.com/framechip/framechip/userinput"
)

// the control code sent by ctrl-c in raw mode
const ctrlC = 0x03

// escape sequences for keys that don't produce a single character. both the
// CSI and SS3 forms are recognised
var sequences = map[string]userinput.Scancode{
	"[A":   userinput.ScancodeUp,
	"[B":   userinput.ScancodeDown,
	"[C":   userinput.ScancodeRight,
	"[D":   userinput.ScancodeLeft,
	"OA":   userinput.ScancodeUp,
	"OB":   userinput.ScancodeDown,
	"OC":   userinput.ScancodeRight,
	"OD":   userinput.ScancodeLeft,
	"OP":   userinput.ScancodeF1,
	"OQ":   userinput.ScancodeF2,
	"OR":   userinput.ScancodeF3,
	"OS":   userinput.ScancodeF4,
	"[15~": userinput.ScancodeF5,
	"[17~": userinput.ScancodeF6,
	"[18~": userinput.ScancodeF7,
	"[19~": userinput.ScancodeF8,
	"[20~": userinput.ScancodeF9,
	"[21~": userinput.ScancodeF10,
}

// decodeKeys translates the bytes read from the terminal into scancodes.
// unrecognised bytes and sequences are ignored. the second return value is
// true if ctrl-c was seen
func decodeKeys(b []byte) ([]userinput.Scancode, bool) {
	var keys []userinput.Scancode
	var interrupt bool

	for i := 0; i < len(b); i++ {
		if b[i] == ctrlC {
			interrupt = true
			continue
		}

		if b[i] == 0x1b && i+1 < len(b) && (b[i+1] == '[' || b[i+1] == 'O') {
			// a sequence ends with the first letter or tilde after the
			// introducer
			j := i + 2
			for j < len(b) && !isFinal(b[j]) {
				j++
			}
			if j < len(b) {
				if k, ok := sequences[string(b[i+1:j+1])]; ok {
					keys = append(keys, k)
				}
			}
			i = j
			continue
		}

		if k, ok := userinput.ScancodeFromRune(rune(b[i])); ok {
			keys = append(keys, k)
		}
	}

	return keys, interrupt
}

func isFinal(c byte) bool {
	return c == '~' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
