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

package environment_test

import (
	"testing"

	"github.com/framechip/framechip/environment"
	"github.com/framechip/framechip/hardware/preferences"
	"github.com/framechip/framechip/test"
)

func TestEnvironment(t *testing.T) {
	env, err := environment.NewEnvironment(environment.MainEmulation, nil, nil)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, env.Log != nil)
	test.ExpectSuccess(t, env.Prefs != nil)
	test.ExpectSuccess(t, env.IsMainEmulation())
	test.ExpectFailure(t, env.IsEmulation("thumbnail"))
	test.ExpectEquality(t, env.Video.Size(), 0)
	test.ExpectEquality(t, env.Audio.Size(), 0)

	test.ExpectSuccess(t, env.Prefs.CPF.Set(99))
	env.Normalise()
	test.ExpectEquality(t, env.Prefs.CPF.Get().(int), preferences.DefaultCPF)
	test.ExpectEquality(t, env.Random.Seed(), int64(0))

	// shared preferences
	other, err := environment.NewEnvironment("thumbnail", env.Log, env.Prefs)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, other.IsMainEmulation())
	test.ExpectSuccess(t, other.Prefs == env.Prefs)
}

func TestQuiet(t *testing.T) {
	env, err := environment.NewEnvironment(environment.MainEmulation, nil, nil)
	test.DemandSuccess(t, err)

	env.Log.Log(env, "test", "one")
	env.Quiet.Store(true)
	env.Log.Log(env, "test", "two")
	env.Quiet.Store(false)
	env.Log.Log(env, "test", "three")

	w := &test.CompareWriter{}
	env.Log.Write(w)
	test.ExpectEquality(t, w.String(), "test: one\ntest: three\n")
}
