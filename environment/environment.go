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

package environment

import (
	"sync/atomic"

	"github.com/framechip/framechip/emulation/triplebuffer"
	"github.com/framechip/framechip/hardware/preferences"
	"github.com/framechip/framechip/logger"
	"github.com/framechip/framechip/random"
)

// Label is used to name the environment.
type Label string

// MainEmulation is the label of the emulation controlled by the user.
const MainEmulation = Label("")

// Environment is used to provide context for an emulation. Everything an
// emulated machine needs from outside of itself is reached through the
// Environment.
type Environment struct {
	Label Label

	// log for the emulation. never nil
	Log *logger.Logger

	// any randomisation required by the emulation should be retreived through
	// this structure
	Random *random.Random

	// the emulation preferences
	Prefs *preferences.Preferences

	// output of the emulation. the emulated machine is the producer for both
	// buffers
	Video *triplebuffer.Buffer[uint32]
	Audio *triplebuffer.Buffer[float32]

	// suppress log entries made with the environment as the permission
	Quiet atomic.Bool
}

// NewEnvironment is the preferred method of initialisation for the
// Environment type.
//
// The log and prefs arguments can be nil. In the case of the log a new Logger
// will be created. In the case of prefs a new Preferences instance will be
// created that is not connected to a file. Providing a non-nil value allows
// more than one emulation to share preferences.
//
// The Video and Audio buffers are created with a size of zero. The emulated
// machine should resize them as required.
func NewEnvironment(label Label, log *logger.Logger, prefs *preferences.Preferences) (*Environment, error) {
	env := &Environment{
		Label:  label,
		Log:    log,
		Random: random.NewRandom(),
		Prefs:  prefs,
		Video:  triplebuffer.NewBuffer[uint32](0),
		Audio:  triplebuffer.NewBuffer[float32](0),
	}

	if env.Log == nil {
		env.Log = logger.NewLogger(256)
	}

	if env.Prefs == nil {
		var err error
		env.Prefs, err = preferences.NewPreferences("")
		if err != nil {
			return nil, err
		}
	}

	return env, nil
}

// Normalise ensures the environment is in a known default state. Useful for
// testing where the initial state must be the same for every run.
func (env *Environment) Normalise() {
	env.Random.ZeroSeed = true
	env.Random.Reseed(0)
	env.Prefs.SetDefaults()
}

// AllowLogging implements the logger.Permission interface.
func (env *Environment) AllowLogging() bool {
	return !env.Quiet.Load()
}

// IsMainEmulation returns true if the environment is intended for the main
// emulation in the system.
func (env *Environment) IsMainEmulation() bool {
	return env.Label == MainEmulation
}

// IsEmulation checks the emulation label and returns true if it matches.
func (env *Environment) IsEmulation(label Label) bool {
	return env.Label == label
}
