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
	"github.com/framechip/framechip/hardware/chip8"
	"github.com/framechip/framechip/logger"
	"github.com/veandco/go-sdl2/sdl"
)

// the number of bytes in a sample
const sampleSize = 4

// the maximum number of frames of audio in the queue. if the emulation runs
// faster than the audio device then the queue is cleared. a long queue
// introduces lag between the audio and video
const maxQueuedFrames = 4

// sound outputs audio using SDL queued audio
type sound struct {
	log *logger.Logger

	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	data []byte
}

func newSound(log *logger.Logger) (*sound, error) {
	snd := &sound{
		log:  log,
		data: make([]byte, chip8.SamplesPerFrame*sampleSize),
	}

	spec := &sdl.AudioSpec{
		Freq:     chip8.SampleRate,
		Format:   sdl.AUDIO_F32SYS,
		Channels: 1,
		Samples:  uint16(1024),
	}

	var err error
	var actualSpec sdl.AudioSpec

	// no changes to the spec are allowed. SDL converts to the device format
	snd.id, err = sdl.OpenAudioDevice("", false, spec, &actualSpec, 0)
	if err != nil {
		return nil, err
	}
	snd.spec = actualSpec

	sdl.PauseAudioDevice(snd.id, false)

	return snd, nil
}

// AllowLogging implements the logger.Permission interface.
func (snd *sound) AllowLogging() bool {
	return true
}

// queue the samples. samples longer than a frame are truncated
func (snd *sound) queue(samples []float32) {
	if len(samples)*sampleSize > len(snd.data) {
		samples = samples[:len(snd.data)/sampleSize]
	}

	if sdl.GetQueuedAudioSize(snd.id) > uint32(maxQueuedFrames*len(snd.data)) {
		sdl.ClearQueuedAudio(snd.id)
	}

	n := floatsToBytes(snd.data, samples)
	err := sdl.QueueAudio(snd.id, snd.data[:n])
	if err != nil {
		snd.log.Log(snd, logTag, err)
	}
}

func (snd *sound) destroy() {
	sdl.CloseAudioDevice(snd.id)
}
