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

// Display resolutions.
const (
	LoresWidth  = 64
	LoresHeight = 32
	HiresWidth  = 128
	HiresHeight = 64
)

// the display is always stored at the high resolution. in low resolution mode
// only the top-left quarter is used
type display struct {
	pixels [HiresWidth * HiresHeight]bool
	hires  bool

	// wait for the next frame after drawing. chip8 variant only
	waitOnDraw bool

	// pixels are clipped at the edge of the display rather than wrapping
	// around
	clip bool
}

func (d *display) reset(schip bool) {
	d.clear()
	d.hires = false
	d.waitOnDraw = !schip
	d.clip = true
}

func (d *display) size() (int, int) {
	if d.hires {
		return HiresWidth, HiresHeight
	}
	return LoresWidth, LoresHeight
}

func (d *display) clear() {
	clear(d.pixels[:])
}

func (d *display) setHires(hires bool) {
	d.hires = hires
	d.clear()
}

// toggle the pixel and return true if it was set before the toggle
func (d *display) toggle(x, y int) bool {
	idx := y*HiresWidth + x
	was := d.pixels[idx]
	d.pixels[idx] = !was
	return was
}

func (d *display) scrollDown(n int) {
	w, h := d.size()
	for y := h - 1; y >= 0; y-- {
		for x := 0; x < w; x++ {
			if y >= n {
				d.pixels[y*HiresWidth+x] = d.pixels[(y-n)*HiresWidth+x]
			} else {
				d.pixels[y*HiresWidth+x] = false
			}
		}
	}
}

func (d *display) scrollRight() {
	w, h := d.size()
	for y := 0; y < h; y++ {
		row := d.pixels[y*HiresWidth : y*HiresWidth+w]
		copy(row[4:], row[:w-4])
		clear(row[:4])
	}
}

func (d *display) scrollLeft() {
	w, h := d.size()
	for y := 0; y < h; y++ {
		row := d.pixels[y*HiresWidth : y*HiresWidth+w]
		copy(row, row[4:])
		clear(row[w-4:])
	}
}

// draw executes DXYN. the sprite data is at I. if N is zero and the machine
// is a schip then the sprite is 16 by 16 pixels.
func (m *Machine) draw(x, y, n uint8) {
	w, h := m.display.size()

	// the starting position always wraps
	sx := int(m.v[x]) % w
	sy := int(m.v[y]) % h

	rows := int(n)
	cols := 8
	if n == 0 && m.schip {
		rows = 16
		cols = 16
	}

	m.v[0xf] = 0

	for r := 0; r < rows; r++ {
		py := sy + r
		if py >= h {
			if m.display.clip {
				break
			}
			py %= h
		}

		var bits uint16
		if cols == 16 {
			a := m.i + uint16(r*2)
			bits = uint16(m.Peek(a))<<8 | uint16(m.Peek(a+1))
		} else {
			bits = uint16(m.Peek(m.i+uint16(r))) << 8
		}

		for c := 0; c < cols; c++ {
			if bits&(0x8000>>c) == 0 {
				continue
			}
			px := sx + c
			if px >= w {
				if m.display.clip {
					break
				}
				px %= w
			}
			if m.display.toggle(px, py) {
				m.v[0xf] = 1
			}
		}
	}

	if m.display.waitOnDraw {
		m.interrupt = govern.Frame
	}
}

// DisplaySize implements the machine.VideoProducer interface.
func (m *Machine) DisplaySize() (int, int) {
	return m.display.size()
}

// RenderVideoData implements the machine.VideoProducer interface. The video
// buffer is resized if the resolution of the display has changed.
func (m *Machine) RenderVideoData() {
	w, h := m.display.size()

	vid := m.env.Video
	if vid.Size() != w*h {
		if !vid.Resize(w * h) {
			m.env.Log.Logf(m.env, logTag, "cannot allocate video buffer for %dx%d", w, h)
			return
		}
	}
	if dw, dh := vid.Dimensions(); dw != w || dh != h {
		vid.SetDimensions(w, h)
	}

	bg, fg := m.env.Prefs.Colours()

	vid.WriteFunc(func(work []uint32) {
		for y := 0; y < h; y++ {
			row := m.display.pixels[y*HiresWidth : y*HiresWidth+w]
			out := work[y*w : (y+1)*w]
			for x, p := range row {
				if p {
					out[x] = fg
				} else {
					out[x] = bg
				}
			}
		}
	})
}
