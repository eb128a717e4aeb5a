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

package chip8_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/framechip/framechip/curated"
	"github.com/framechip/framechip/environment"
	"github.com/framechip/framechip/hardware/chip8"
	"github.com/framechip/framechip/test"
	"github.com/framechip/framechip/userinput"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeWAV creates a mono 16bit wav file of alternating samples.
func writeWAV(t *testing.T, rate int, samples int) string {
	t.Helper()

	fn := filepath.Join(t.TempDir(), "buzzer.wav")
	f, err := os.Create(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: rate},
		SourceBitDepth: 16,
		Data:           make([]int, samples),
	}
	for i := range buf.Data {
		if i%2 == 0 {
			buf.Data[i] = 16384
		} else {
			buf.Data[i] = -16384
		}
	}
	test.DemandSuccess(t, enc.Write(buf))
	test.DemandSuccess(t, enc.Close())

	return fn
}

func TestDecodeBuzzer(t *testing.T) {
	fn := writeWAV(t, 8000, 800)

	data, err := chip8.DecodeBuzzer(fn, chip8.SampleRate)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(data), 4800)
	test.ExpectApproximate(t, data[0], 0.5, 0.001)
	test.ExpectApproximate(t, data[6], -0.5, 0.001)

	// samples are truncated
	fn = writeWAV(t, 8000, 8000*5)
	data, err = chip8.DecodeBuzzer(fn, chip8.SampleRate)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(data), 2*chip8.SampleRate)

	_, err = chip8.DecodeBuzzer(filepath.Join(t.TempDir(), "missing.wav"), chip8.SampleRate)
	test.ExpectSuccess(t, curated.Is(err, chip8.BuzzerError), err)

	bad := filepath.Join(t.TempDir(), "buzzer.ogg")
	test.DemandSuccess(t, os.WriteFile(bad, []byte{0}, 0o600))
	_, err = chip8.DecodeBuzzer(bad, chip8.SampleRate)
	test.ExpectSuccess(t, curated.Is(err, chip8.BuzzerError), err)

	bad = filepath.Join(t.TempDir(), "buzzer.wav")
	test.DemandSuccess(t, os.WriteFile(bad, []byte("not a wav file"), 0o600))
	_, err = chip8.DecodeBuzzer(bad, chip8.SampleRate)
	test.ExpectSuccess(t, curated.Is(err, chip8.BuzzerWAVError), err)
}

func TestBuzzer(t *testing.T) {
	env, err := environment.NewEnvironment(environment.MainEmulation, nil, nil)
	test.DemandSuccess(t, err)
	env.Normalise()
	test.DemandSuccess(t, env.Prefs.Buzzer.Set(writeWAV(t, 8000, 800)))
	test.DemandSuccess(t, env.Prefs.Volume.Set(1.0))

	m, err := chip8.NewMachine(env, "", program(0x6003, 0xf018, 0x1204))
	test.DemandSuccess(t, err)
	frame(m, userinput.Keys{})

	dst := make([]float32, chip8.SamplesPerFrame)
	env.Audio.Read(dst)

	// each wav sample is repeated six times at the higher rate
	test.ExpectApproximate(t, dst[0], 0.5, 0.001)
	test.ExpectApproximate(t, dst[5], 0.5, 0.001)
	test.ExpectApproximate(t, dst[6], -0.5, 0.001)
}
