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
	"math"

	"github.com/framechip/framechip/curated"
	"github.com/framechip/framechip/environment"
)

// Audio format of the audio buffer.
const (
	SampleRate      = 48000
	SamplesPerFrame = SampleRate / int(Framerate)
)

// frequency of the tone when no buzzer sample is in use
const toneFrequency = 440.0

type audio struct {
	// phase of the square wave in the range 0.0 to 1.0
	phase float64

	// the buzzer sample at SampleRate and the position of the next sample to
	// play. the sample is looped while the sound timer is running
	buzzer    []float32
	buzzerPos int
}

func (a *audio) init(env *environment.Environment) error {
	if !env.Audio.Resize(SamplesPerFrame) {
		return curated.Errorf(ProgramError, "cannot allocate audio buffer")
	}
	env.Audio.SetDimensions(SamplesPerFrame, 1)

	fn := env.Prefs.Buzzer.String()
	if fn == "" {
		return nil
	}

	var err error
	a.buzzer, err = decodeBuzzer(fn, SampleRate)
	if err != nil {
		return err
	}
	env.Log.Logf(env, logTag, "buzzer: %d samples from %s", len(a.buzzer), fn)

	return nil
}

// RenderAudioData implements the machine.AudioProducer interface. The audio
// buffer receives one frame of audio. The buffer is silent unless the sound
// timer is running.
func (m *Machine) RenderAudioData() {
	a := &m.audio
	vol := float32(m.env.Prefs.Volume.Get().(float64))
	active := m.soundTimer > 0

	m.env.Audio.WriteFunc(func(work []float32) {
		if !active {
			clear(work)
			a.phase = 0
			a.buzzerPos = 0
			return
		}

		if len(a.buzzer) > 0 {
			for i := range work {
				work[i] = a.buzzer[a.buzzerPos] * vol
				a.buzzerPos = (a.buzzerPos + 1) % len(a.buzzer)
			}
			return
		}

		step := toneFrequency / SampleRate
		for i := range work {
			if a.phase < 0.5 {
				work[i] = vol
			} else {
				work[i] = -vol
			}
			a.phase = math.Mod(a.phase+step, 1.0)
		}
	})
}
