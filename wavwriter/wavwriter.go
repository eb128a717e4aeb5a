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

// Package wavwriter allows writing of audio data to disk as a WAV file. Note
// that audio data is buffered in memory in its entirity, and written to disk
// when the writer is closed. It is therefore probably only suitable for
// testing purposes.
package wavwriter

import (
	"os"

	"github.com/framechip/framechip/curated"
	"github.com/framechip/framechip/logger"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Sentinal error patterns.
const (
	WavWriterError = "wavwriter: %v"
)

const logTag = "wavwriter"

// the output is always 16 bit mono PCM
const (
	bitDepth    = 16
	numChannels = 1
	pcmFormat   = 1
)

// Source is anything that provides audio frames. The Audio() function must
// not block and should report whether the frame is new since the last call.
type Source interface {
	Audio(dst []float32) (int, bool)
}

// WavWriter accumulates audio frames and writes them to disk on Close().
type WavWriter struct {
	filename   string
	sampleRate int
	log        *logger.Logger
	buffer     []int
	scratch    []float32
	frames     int
}

// New is the preferred method of initialisation for the WavWriter type. The
// frameSize argument is the largest number of samples in a single frame.
func New(filename string, sampleRate int, frameSize int, log *logger.Logger) (*WavWriter, error) {
	if filename == "" {
		return nil, curated.Errorf(WavWriterError, "no filename")
	}
	if sampleRate <= 0 || frameSize <= 0 {
		return nil, curated.Errorf(WavWriterError, "bad parameters for wav encoding")
	}
	if log == nil {
		log = logger.Central()
	}

	aw := &WavWriter{
		filename:   filename,
		sampleRate: sampleRate,
		log:        log,
		buffer:     make([]int, 0, sampleRate),
		scratch:    make([]float32, frameSize),
	}

	return aw, nil
}

// AllowLogging implements the logger.Permission interface.
func (aw *WavWriter) AllowLogging() bool {
	return true
}

// Pull a frame of audio from the source. Only fresh frames are recorded.
// Returns true if a frame was recorded.
func (aw *WavWriter) Pull(src Source) bool {
	n, fresh := src.Audio(aw.scratch)
	if !fresh {
		return false
	}
	aw.Record(aw.scratch[:n])
	return true
}

// Record adds the samples to the recording. Samples are clamped to the range
// -1.0 to 1.0.
func (aw *WavWriter) Record(samples []float32) {
	for _, s := range samples {
		s = min(max(s, -1.0), 1.0)
		aw.buffer = append(aw.buffer, int(s*32767))
	}
	aw.frames++
}

// Frames returns the number of frames recorded so far.
func (aw *WavWriter) Frames() int {
	return aw.frames
}

// Samples returns the number of samples recorded so far.
func (aw *WavWriter) Samples() int {
	return len(aw.buffer)
}

// Close writes the recording to disk.
func (aw *WavWriter) Close() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf(WavWriterError, err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf(WavWriterError, err)
		}
	}()

	enc := wav.NewEncoder(f, aw.sampleRate, bitDepth, numChannels, pcmFormat)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  aw.sampleRate,
		},
		SourceBitDepth: bitDepth,
		Data:           aw.buffer,
	}

	aw.log.Logf(aw, logTag, "writing audio to %s (%d frames)", aw.filename, aw.frames)

	if err := enc.Write(buf); err != nil {
		return curated.Errorf(WavWriterError, err)
	}

	// closing the encoder writes the final chunk sizes to the header
	if err := enc.Close(); err != nil {
		return curated.Errorf(WavWriterError, err)
	}

	return nil
}
