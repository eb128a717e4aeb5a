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

package wavwriter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/framechip/framechip/emulation/triplebuffer"
	"github.com/framechip/framechip/logger"
	"github.com/framechip/framechip/test"
	"github.com/framechip/framechip/wavwriter"
	"github.com/go-audio/wav"
)

// source presents a triple buffer as the audio of an emulation
type source struct {
	*triplebuffer.Buffer[float32]
}

func (s source) Audio(dst []float32) (int, bool) {
	return s.Read(dst)
}

func TestNew(t *testing.T) {
	_, err := wavwriter.New("", 48000, 800, nil)
	test.ExpectFailure(t, err)
	_, err = wavwriter.New("out.wav", 0, 800, nil)
	test.ExpectFailure(t, err)
	_, err = wavwriter.New("out.wav", 48000, 0, nil)
	test.ExpectFailure(t, err)
}

func TestWavWriter(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "out.wav")
	log := logger.NewLogger(10)

	aw, err := wavwriter.New(fn, 8000, 4, log)
	test.DemandSuccess(t, err)

	buf := source{triplebuffer.NewBuffer[float32](4)}

	// nothing has been published
	test.ExpectEquality(t, aw.Pull(buf), false)

	buf.Write([]float32{0.5, -0.5, 2.0, -2.0})
	test.ExpectEquality(t, aw.Pull(buf), true)

	// the same frame is not recorded twice
	test.ExpectEquality(t, aw.Pull(buf), false)

	buf.Write([]float32{0.0, 0.25})
	test.ExpectEquality(t, aw.Pull(buf), true)

	test.ExpectEquality(t, aw.Frames(), 2)
	test.ExpectEquality(t, aw.Samples(), 8)

	test.DemandSuccess(t, aw.Close())

	f, err := os.Open(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.DemandEquality(t, dec.IsValidFile(), true)
	test.ExpectEquality(t, dec.SampleRate, uint32(8000))
	test.ExpectEquality(t, dec.NumChans, uint16(1))
	test.ExpectEquality(t, dec.BitDepth, uint16(16))

	pcm, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(pcm.Data), 8)

	// out of range samples are clamped and short frames are padded
	expected := []int{16383, -16383, 32767, -32767, 0, 8191, 0, 0}
	for i, v := range expected {
		test.ExpectEquality(t, pcm.Data[i], v, i)
	}

	var w test.CompareWriter
	log.Write(&w)
	test.ExpectEquality(t, len(w.String()) > 0, true)
}

func TestBadFilename(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "missing", "out.wav")
	aw, err := wavwriter.New(fn, 8000, 4, nil)
	test.DemandSuccess(t, err)
	aw.Record([]float32{0.1})
	test.ExpectFailure(t, aw.Close())
}
