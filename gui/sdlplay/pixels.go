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

package sdlplay

import (
	"encoding/binary"
	"math"
)

// copyFrame copies ARGB8888 pixels into a locked texture. the texture rows
// are pitch bytes long, which may be longer than width pixels. the texture
// stores ARGB8888 in native byte order
func copyFrame(texture []byte, pitch int, frame []uint32, width int) {
	if width <= 0 {
		return
	}
	for y := 0; y*width < len(frame); y++ {
		row := texture[y*pitch:]
		for x, p := range frame[y*width : (y+1)*width] {
			binary.NativeEndian.PutUint32(row[x*pixelDepth:], p)
		}
	}
}

// floatsToBytes converts the audio samples into the byte form required by
// the AUDIO_F32SYS format. the destination must be at least four times the
// length of the source. returns the number of bytes used
func floatsToBytes(dst []byte, src []float32) int {
	for i, s := range src {
		binary.NativeEndian.PutUint32(dst[i*4:], math.Float32bits(s))
	}
	return len(src) * 4
}
