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
	"fmt"
	"strings"
)

const upperHalfBlock = "▀"

// the escape sequences used by the renderer
const (
	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
	clearLine   = "\x1b[K"
	resetAttr   = "\x1b[0m"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// renderFrame draws the ARGB8888 frame into the builder. each line of the
// terminal shows two rows of the frame: the upper half block is drawn in the
// colour of the upper pixel over a background of the lower pixel. the frame is
// sampled so that it is no more than cols characters wide and rows lines high
func renderFrame(s *strings.Builder, frame []uint32, w int, h int, cols int, rows int) {
	if w <= 0 || h <= 0 || cols <= 0 || rows <= 0 || len(frame) < w*h {
		return
	}

	// the step is the same in both directions so that the aspect ratio is
	// kept
	step := max((w+cols-1)/cols, (h+rows*2-1)/(rows*2), 1)

	var fg, bg uint32
	first := true

	for y := 0; y < h; y += step * 2 {
		for x := 0; x < w; x += step {
			top := frame[y*w+x]
			bot := uint32(0)
			if y+step < h {
				bot = frame[(y+step)*w+x]
			}

			if first || top != fg {
				fmt.Fprintf(s, "\x1b[38;2;%d;%d;%dm", uint8(top>>16), uint8(top>>8), uint8(top))
				fg = top
			}
			if first || bot != bg {
				fmt.Fprintf(s, "\x1b[48;2;%d;%d;%dm", uint8(bot>>16), uint8(bot>>8), uint8(bot))
				bg = bot
			}
			first = false

			s.WriteString(upperHalfBlock)
		}

		// the attributes are reset before the end of the line so that the
		// rest of the line is cleared to the terminal background
		s.WriteString(resetAttr)
		s.WriteString(clearLine)
		s.WriteString("\r\n")
		first = true
	}
}
