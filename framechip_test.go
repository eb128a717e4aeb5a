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

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/framechip/framechip/test"
	"github.com/framechip/framechip/version"
)

func TestVersionCommand(t *testing.T) {
	cmd := newRootCommand(nil)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	test.DemandSuccess(t, cmd.Execute())
	test.ExpectEquality(t, strings.TrimSpace(out.String()), version.String())
}

func TestCommandArguments(t *testing.T) {
	cmd := newRootCommand(nil)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	// the term command requires a program
	cmd.SetArgs([]string{"term"})
	test.ExpectFailure(t, cmd.Execute())

	// only one program can be run
	cmd.SetArgs([]string{"run", "a.ch8", "b.ch8"})
	test.ExpectFailure(t, cmd.Execute())
}

func TestMissingProgram(t *testing.T) {
	cmd := newRootCommand(nil)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	// the session fails before the gui is created
	home := t.TempDir()
	cmd.SetArgs([]string{"term", "--home", home, "missing.ch8"})
	test.ExpectFailure(t, cmd.Execute())
}

func TestOutputFilename(t *testing.T) {
	dir := t.TempDir()

	// a file is used as it is
	fn := filepath.Join(dir, "out.wav")
	test.ExpectEquality(t, outputFilename(fn, "wav", ".wav", "test"), fn)

	// a directory has a unique filename added to it
	fn = outputFilename(dir, "wav", ".wav", "test")
	test.ExpectEquality(t, filepath.Dir(fn), dir)
	test.ExpectSuccess(t, strings.HasPrefix(filepath.Base(fn), "wav_test_"), fn)
	test.ExpectEquality(t, filepath.Ext(fn), ".wav")

	fn = outputFilename(dir, "memviz", ".dot", "")
	test.ExpectSuccess(t, strings.HasPrefix(filepath.Base(fn), "memviz_2"), fn)
	test.ExpectEquality(t, filepath.Ext(fn), ".dot")
}

// bare output flags name the current directory
func TestBareOutputFlags(t *testing.T) {
	cmd := newRootCommand(nil)
	cmd.SetArgs([]string{"version", "--wav", "--memviz"})
	cmd.SetOut(&bytes.Buffer{})
	test.DemandSuccess(t, cmd.Execute())

	wav, err := cmd.PersistentFlags().GetString("wav")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, wav, ".")
	memviz, err := cmd.PersistentFlags().GetString("memviz")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, memviz, ".")
}

type mockGui struct {
	serviced  atomic.Int64
	destroyed atomic.Bool
}

func (g *mockGui) Destroy(_ io.Writer) {
	g.destroyed.Store(true)
}

func (g *mockGui) Service() {
	g.serviced.Add(1)
}

func TestMainLoop(t *testing.T) {
	sync := newMainSync()
	intChan := make(chan os.Signal, 1)

	exit := make(chan int)
	go func() {
		exit <- sync.loop(intChan)
	}()

	// interrupts are forwarded to the launch goroutine
	intChan <- os.Interrupt
	select {
	case sig := <-sync.interrupt:
		test.ExpectEquality(t, sig, os.Signal(os.Interrupt))
	case <-time.After(time.Second):
		t.Fatal("interrupt was not forwarded")
	}

	gui := &mockGui{}
	sync.creator <- func() (GuiCreator, error) {
		return gui, nil
	}
	test.ExpectEquality(t, <-sync.creation, GuiCreator(gui))

	deadline := time.Now().Add(time.Second)
	for gui.serviced.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	test.ExpectInequality(t, gui.serviced.Load(), int64(0))

	// the gui is not serviced after it has been destroyed
	sync.state <- stateRequest{req: reqDestroy}
	deadline = time.Now().Add(time.Second)
	for !gui.destroyed.Load() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	test.DemandSuccess(t, gui.destroyed.Load())
	n := gui.serviced.Load()
	time.Sleep(20 * time.Millisecond)
	test.ExpectEquality(t, gui.serviced.Load(), n)

	sync.state <- stateRequest{req: reqQuit, args: 3}
	select {
	case v := <-exit:
		test.ExpectEquality(t, v, 3)
	case <-time.After(time.Second):
		t.Fatal("loop did not end")
	}
}
