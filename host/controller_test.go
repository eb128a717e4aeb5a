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

package host_test

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/framechip/framechip/curated"
	"github.com/framechip/framechip/emulation"
	"github.com/framechip/framechip/emulation/govern"
	"github.com/framechip/framechip/hardware/chip8"
	"github.com/framechip/framechip/host"
	"github.com/framechip/framechip/paths"
	"github.com/framechip/framechip/savestate"
	"github.com/framechip/framechip/test"
	"github.com/framechip/framechip/userinput"
	"github.com/framechip/framechip/version"
)

func program(ops ...uint16) []byte {
	b := make([]byte, 0, len(ops)*2)
	for _, o := range ops {
		b = append(b, uint8(o>>8), uint8(o))
	}
	return b
}

// writeProgram returns the filename and the hash of the program
func writeProgram(t *testing.T, name string, ops ...uint16) (string, string) {
	t.Helper()
	data := program(ops...)
	fn := filepath.Join(t.TempDir(), name)
	test.DemandSuccess(t, os.WriteFile(fn, data, 0o600))
	return fn, fmt.Sprintf("%x", sha1.Sum(data))
}

func newController(t *testing.T, base string) (*host.Controller, *paths.Home) {
	t.Helper()

	home, err := paths.NewHome(paths.Options{Home: base})
	test.DemandSuccess(t, err)

	c, err := host.NewController(host.Config{Home: home})
	test.DemandSuccess(t, err)
	t.Cleanup(func() {
		_ = c.Shutdown()
	})

	return c, home
}

func waitFor(t *testing.T, cond func() bool, tags ...any) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("%v: timed out", tags)
		}
		time.Sleep(time.Millisecond)
	}
}

func key(c *host.Controller, k userinput.Scancode) error {
	return c.HandleEvent(emulation.EventKey{Key: k, Down: true})
}

// a chip8 program that draws the zero glyph at the top left and then loops
var drawProgram = []uint16{0xa050, 0x6000, 0x6100, 0xd015, 0x1208}

// a schip program that increments the first RPL flag and then exits
var rplProgram = []uint16{0xf085, 0x7001, 0xf075, 0x00fd}

func TestNoProgram(t *testing.T) {
	c, _ := newController(t, t.TempDir())
	test.DemandImplements[emulation.Emulation](t, c)

	test.ExpectFailure(t, c.HasProgram())
	test.ExpectEquality(t, c.Title(), version.ApplicationName)
	test.ExpectEquality(t, c.State(), govern.Normal)
	test.ExpectEquality(t, c.Overlay(), "")
	test.ExpectEquality(t, c.VideoSize(), 0)

	w, h, fresh := c.Video(nil)
	test.ExpectEquality(t, w, 0)
	test.ExpectEquality(t, h, 0)
	test.ExpectFailure(t, fresh)

	test.ExpectSuccess(t, curated.Is(c.Replace(), host.NoProgram))
	test.ExpectSuccess(t, curated.Is(c.SetFeature(emulation.ReqTogglePause), host.NoProgram))
	test.ExpectSuccess(t, curated.Is(c.DumpMachine(&bytes.Buffer{}), host.NoProgram))

	// hotkeys without a program are errors but not fatal
	test.ExpectFailure(t, key(c, userinput.ScancodeP))
	test.ExpectFailure(t, c.Quit())
}

func TestLoad(t *testing.T) {
	c, _ := newController(t, t.TempDir())
	fn, _ := writeProgram(t, "test.ch8", drawProgram...)

	test.ExpectFailure(t, c.Load(filepath.Join(t.TempDir(), "missing.ch8")))
	test.ExpectFailure(t, c.HasProgram())

	test.ExpectEquality(t, c.ShortName(), "")

	test.DemandSuccess(t, c.Load(fn))
	test.ExpectSuccess(t, c.HasProgram())
	test.ExpectEquality(t, c.ShortName(), "test")
	test.ExpectSuccess(t, strings.Contains(c.Title(), " - test"), c.Title())
	test.ExpectFailure(t, strings.Contains(c.Title(), ".ch8"), c.Title())

	_, fg := c.MachinePrefs().Colours()

	waitFor(t, func() bool {
		dst := make([]uint32, c.VideoSize())
		w, h, fresh := c.Video(dst)
		return fresh && w == chip8.LoresWidth && h == chip8.LoresHeight && dst[0] == fg
	}, "video")

	waitFor(t, func() bool {
		dst := make([]float32, chip8.SamplesPerFrame)
		n, fresh := c.Audio(dst)
		return fresh && n == chip8.SamplesPerFrame
	}, "audio")

	waitFor(t, func() bool {
		c.Service()
		return c.Overlay() != ""
	}, "overlay")
}

func TestFileDrop(t *testing.T) {
	c, _ := newController(t, t.TempDir())
	fn, _ := writeProgram(t, "test.ch8", drawProgram...)

	test.DemandSuccess(t, c.HandleEvent(emulation.EventFileDrop{Filename: fn}))
	test.ExpectSuccess(t, c.HasProgram())
	title := c.Title()

	// a bad file leaves the existing program running
	bad := filepath.Join(t.TempDir(), "test.txt")
	test.DemandSuccess(t, os.WriteFile(bad, []byte("hello"), 0o600))
	test.ExpectFailure(t, c.HandleEvent(emulation.EventFileDrop{Filename: bad}))
	test.ExpectEquality(t, c.Title(), title)
	test.ExpectSuccess(t, c.State().IsRunning())
}

func TestHotkeys(t *testing.T) {
	c, _ := newController(t, t.TempDir())
	fn, _ := writeProgram(t, "test.ch8", drawProgram...)
	test.DemandSuccess(t, c.Load(fn))

	test.DemandSuccess(t, key(c, userinput.ScancodeP))
	test.ExpectEquality(t, c.State(), govern.Paused)
	test.ExpectSuccess(t, strings.HasSuffix(c.Title(), "[paused]"), c.Title())

	// repeated key events are not hotkeys
	test.DemandSuccess(t, c.HandleEvent(emulation.EventKey{Key: userinput.ScancodeP, Down: true, Repeat: true}))
	test.ExpectEquality(t, c.State(), govern.Paused)

	test.DemandSuccess(t, key(c, userinput.ScancodeP))
	test.ExpectEquality(t, c.State(), govern.Normal)

	test.DemandSuccess(t, key(c, userinput.ScancodeF9))
	test.ExpectEquality(t, c.State(), govern.Bench)
	test.DemandSuccess(t, key(c, userinput.ScancodeF9))
	test.ExpectEquality(t, c.State(), govern.Normal)

	// other keys reach the keyboard
	test.DemandSuccess(t, key(c, userinput.ScancodeQ))
	test.ExpectSuccess(t, c.Keyboard().IsPressed(userinput.ScancodeQ))
	test.DemandSuccess(t, c.HandleEvent(emulation.EventKey{Key: userinput.ScancodeQ}))
	test.ExpectFailure(t, c.Keyboard().IsPressed(userinput.ScancodeQ))

	test.ExpectFailure(t, c.Quit())
	test.DemandSuccess(t, key(c, userinput.ScancodeEscape))
	test.ExpectSuccess(t, c.Quit())
}

func TestQuitEvent(t *testing.T) {
	c, _ := newController(t, t.TempDir())
	test.DemandSuccess(t, c.HandleEvent(emulation.EventQuit{}))
	test.ExpectSuccess(t, c.Quit())
}

func TestFeatures(t *testing.T) {
	c, _ := newController(t, t.TempDir())
	fn, _ := writeProgram(t, "test.ch8", drawProgram...)
	test.DemandSuccess(t, c.Load(fn))

	err := c.HandleEvent("not an event")
	test.ExpectSuccess(t, curated.Is(err, host.UnsupportedEvent))

	err = c.SetFeature("ReqNothing")
	test.ExpectSuccess(t, curated.Is(err, emulation.UnsupportedEmulationFeature))

	err = c.SetFeature(emulation.ReqSetPause)
	test.ExpectSuccess(t, curated.Is(err, emulation.BadFeatureArgument))
	err = c.SetFeature(emulation.ReqSetPause, "true")
	test.ExpectSuccess(t, curated.Is(err, emulation.BadFeatureArgument))

	test.DemandSuccess(t, c.SetFeature(emulation.ReqSetPause, true))
	test.DemandSuccess(t, c.SetFeature(emulation.ReqSetBench, true))
	test.ExpectEquality(t, c.State(), govern.Paused|govern.Bench)
	test.DemandSuccess(t, c.SetFeature(emulation.ReqSetPause, false))
	test.DemandSuccess(t, c.SetFeature(emulation.ReqSetBench, false))
	test.ExpectEquality(t, c.State(), govern.Normal)
}

func TestVisibility(t *testing.T) {
	c, _ := newController(t, t.TempDir())
	fn, _ := writeProgram(t, "test.ch8", drawProgram...)

	// visibility is remembered for new workers
	test.DemandSuccess(t, c.HandleEvent(emulation.EventVisibility{Visible: false}))
	test.DemandSuccess(t, c.Load(fn))
	test.ExpectEquality(t, c.State(), govern.Hidden)

	// pausing while hidden
	test.DemandSuccess(t, key(c, userinput.ScancodeP))
	test.ExpectEquality(t, c.State(), govern.Hidden|govern.Paused)

	// restoring the window does not unpause
	test.DemandSuccess(t, c.HandleEvent(emulation.EventVisibility{Visible: true}))
	test.ExpectEquality(t, c.State(), govern.Paused)
}

func TestHaltAndReplace(t *testing.T) {
	base := t.TempDir()
	c, home := newController(t, base)
	fn, hash := writeProgram(t, "test.sc8", rplProgram...)

	test.DemandSuccess(t, c.Load(fn))
	waitFor(t, func() bool { return c.State().Has(govern.Halted) }, "halt")
	test.ExpectSuccess(t, strings.HasSuffix(c.Title(), "[halted]"), c.Title())

	// halted is sticky
	test.DemandSuccess(t, key(c, userinput.ScancodeP))
	test.DemandSuccess(t, key(c, userinput.ScancodeP))
	test.ExpectSuccess(t, c.State().Has(govern.Halted))

	// replacing saves the permanent registers and then restores them into
	// the new machine
	test.DemandSuccess(t, key(c, userinput.ScancodeF5))
	waitFor(t, func() bool { return c.State().Has(govern.Halted) }, "halt after replace")

	test.DemandSuccess(t, c.Shutdown())

	dir, err := home.SystemPath(chip8.System, "saves")
	test.DemandSuccess(t, err)
	data, err := os.ReadFile(filepath.Join(dir, hash+"."+string(savestate.KindPerm)))
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(data), 8)
	test.ExpectEquality(t, data[0], uint8(2))

	// a new controller continues from the saved registers
	c, _ = newController(t, base)
	test.DemandSuccess(t, c.Load(fn))
	waitFor(t, func() bool { return c.State().Has(govern.Halted) }, "halt in new controller")
	test.DemandSuccess(t, c.Shutdown())

	data, err = os.ReadFile(filepath.Join(dir, hash+"."+string(savestate.KindPerm)))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, data[0], uint8(3))
}

func TestFatal(t *testing.T) {
	c, _ := newController(t, t.TempDir())
	fn, _ := writeProgram(t, "test.ch8", 0x00ee)

	test.DemandSuccess(t, c.Load(fn))
	waitFor(t, func() bool { return c.State().Has(govern.Fatal) }, "fatal")
	test.ExpectSuccess(t, strings.HasSuffix(c.Title(), "[error]"), c.Title())

	c.Service()
	w := &test.CompareWriter{}
	c.Log().Write(w)
	test.ExpectSuccess(t, strings.Contains(w.String(), "stack underflow"), w.String())
}

func TestSaveState(t *testing.T) {
	base := t.TempDir()
	c, home := newController(t, base)
	fn, hash := writeProgram(t, "test.ch8", 0x7001, 0x1200)

	test.DemandSuccess(t, c.Load(fn))

	// no savestate yet
	test.ExpectFailure(t, key(c, userinput.ScancodeF3))

	test.DemandSuccess(t, key(c, userinput.ScancodeF2))
	dir, err := home.SystemPath(chip8.System, "saves")
	test.DemandSuccess(t, err)
	_, err = os.Stat(filepath.Join(dir, hash+"."+string(savestate.KindState)))
	test.ExpectSuccess(t, err)

	test.DemandSuccess(t, key(c, userinput.ScancodeF3))
	test.ExpectSuccess(t, c.State().IsRunning())
}

func TestLoadStateAfterHalt(t *testing.T) {
	c, _ := newController(t, t.TempDir())
	fn, _ := writeProgram(t, "test.sc8", 0x6001, 0xf00a, 0x00fd)
	test.DemandSuccess(t, c.Load(fn))

	// the program is waiting for a key
	test.DemandSuccess(t, key(c, userinput.ScancodeF2))

	// press a key for long enough for the program to see it
	test.DemandSuccess(t, key(c, userinput.ScancodeX))
	waitFor(t, func() bool { return c.State().Has(govern.Halted) }, "halt")
	test.DemandSuccess(t, c.HandleEvent(emulation.EventKey{Key: userinput.ScancodeX}))

	// loading the state recovers from the halted state
	test.DemandSuccess(t, key(c, userinput.ScancodeF3))
	test.ExpectSuccess(t, c.State().IsRunning())
}

func TestResume(t *testing.T) {
	base := t.TempDir()
	c, _ := newController(t, base)
	test.DemandSuccess(t, c.Prefs().Resume.Set(true))

	fn, _ := writeProgram(t, "test.ch8", 0x7001, 0x1200)
	test.DemandSuccess(t, c.Load(fn))
	test.DemandSuccess(t, c.Shutdown())

	// the resume preference is saved by Shutdown()
	c, _ = newController(t, base)
	test.ExpectSuccess(t, c.Prefs().Resume.Get().(bool))

	test.DemandSuccess(t, c.Load(fn))
	w := &test.CompareWriter{}
	c.Log().Write(w)
	test.ExpectSuccess(t, strings.Contains(w.String(), "resuming from savestate"), w.String())
}

func TestDumpMachine(t *testing.T) {
	c, _ := newController(t, t.TempDir())
	fn, _ := writeProgram(t, "test.ch8", drawProgram...)
	test.DemandSuccess(t, c.Load(fn))

	var b bytes.Buffer
	test.DemandSuccess(t, c.DumpMachine(&b))
	test.ExpectSuccess(t, strings.Contains(b.String(), "digraph"))
}
