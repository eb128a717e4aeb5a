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
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/framechip/framechip/curated"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

// the longest buzzer sample in seconds. longer samples are truncated
const maxBuzzerLength = 2

// decodeBuzzer reads a WAV or MP3 file and returns the first channel as
// samples in the range -1.0 to 1.0, resampled to the requested rate.
func decodeBuzzer(filename string, rate int) ([]float32, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf(BuzzerError, err)
	}
	defer f.Close()

	var data []float32
	var srcRate int

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wav":
		data, srcRate, err = decodeWAV(f)
	case ".mp3":
		data, srcRate, err = decodeMP3(f)
	default:
		return nil, curated.Errorf(BuzzerError, fmt.Sprintf("unsupported file type (%s)", filepath.Ext(filename)))
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || srcRate <= 0 {
		return nil, curated.Errorf(BuzzerError, "no audio data")
	}

	return resample(data, srcRate, rate), nil
}

func decodeWAV(r io.ReadSeeker) ([]float32, int, error) {
	dec := wav.NewDecoder(r)
	if dec == nil || !dec.IsValidFile() {
		return nil, 0, curated.Errorf(BuzzerWAVError, "not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, curated.Errorf(BuzzerWAVError, err)
	}

	chans := buf.Format.NumChannels
	if chans <= 0 {
		return nil, 0, curated.Errorf(BuzzerWAVError, "no channels")
	}

	// full scale value for the bit depth
	scale := float32(int(1) << (buf.SourceBitDepth - 1))
	if buf.SourceBitDepth == 8 {
		// 8 bit wav data is unsigned
		scale = 128
	}

	data := make([]float32, 0, len(buf.Data)/chans)
	for i := 0; i < len(buf.Data); i += chans {
		s := buf.Data[i]
		if buf.SourceBitDepth == 8 {
			s -= 128
		}
		data = append(data, float32(s)/scale)
	}

	return data, buf.Format.SampleRate, nil
}

func decodeMP3(r io.Reader) ([]float32, int, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, 0, curated.Errorf(BuzzerMP3Error, err)
	}

	// the stream is always 16bit little endian with two channels. a sample
	// consists of four bytes and we only want the left channel
	limit := maxBuzzerLength * dec.SampleRate()
	data := make([]float32, 0, limit)

	chunk := make([]byte, 4096)
	for len(data) < limit {
		n, err := io.ReadFull(dec, chunk)
		for i := 0; i+1 < n; i += 4 {
			s := int16(binary.LittleEndian.Uint16(chunk[i:]))
			data = append(data, float32(s)/32768)
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return nil, 0, curated.Errorf(BuzzerMP3Error, err)
		}
	}

	return data, dec.SampleRate(), nil
}

// resample using the nearest sample. the result is no longer than
// maxBuzzerLength seconds
func resample(data []float32, from int, to int) []float32 {
	n := int(int64(len(data)) * int64(to) / int64(from))
	n = min(n, maxBuzzerLength*to)

	out := make([]float32, n)
	for i := range out {
		out[i] = data[int(int64(i)*int64(from)/int64(to))]
	}
	return out
}
