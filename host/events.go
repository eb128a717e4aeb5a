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

package host

import (
	"context"
	"io"

	"github.com/bradleyjkemp/memviz"
	"github.com/framechip/framechip/curated"
	"github.com/framechip/framechip/emulation"
	"github.com/framechip/framechip/emulation/govern"
	"github.com/framechip/framechip/emulation/machine"
	"github.com/framechip/framechip/savestate"
	"github.com/framechip/framechip/userinput"
)

// HandleEvent implements the emulation.Emulation interface.
func (c *Controller) HandleEvent(ev emulation.Event) error {
	switch ev := ev.(type) {
	case emulation.EventKey:
		if ev.Down && !ev.Repeat {
			if ok, err := c.hotkey(ev.Key); ok {
				return err
			}
		}
		c.keyboard.Press(ev.Key, ev.Down)

	case emulation.EventFileDrop:
		return c.Load(ev.Filename)

	case emulation.EventVisibility:
		c.hidden = !ev.Visible
		if c.hidden {
			c.keyboard.ReleaseAll()
		}
		if c.worker != nil {
			c.worker.Hide(c.hidden)
		}

	case emulation.EventQuit:
		c.quit = true

	default:
		return curated.Errorf(UnsupportedEvent, ev)
	}

	return nil
}

// hotkey returns true if the key has been handled
func (c *Controller) hotkey(key userinput.Scancode) (bool, error) {
	switch key {
	case userinput.ScancodeEscape:
		c.quit = true
		return true, nil
	case userinput.ScancodeP:
		return true, c.SetFeature(emulation.ReqTogglePause)
	case userinput.ScancodeF5:
		return true, c.SetFeature(emulation.ReqReplace)
	case userinput.ScancodeF9:
		return true, c.SetFeature(emulation.ReqToggleBench)
	case userinput.ScancodeF2:
		return true, c.SetFeature(emulation.ReqSaveState)
	case userinput.ScancodeF3:
		return true, c.SetFeature(emulation.ReqLoadState)
	}
	return false, nil
}

// SetFeature implements the emulation.Emulation interface.
func (c *Controller) SetFeature(request emulation.FeatureReq, args ...emulation.FeatureReqData) error {
	if c.worker == nil {
		return curated.Errorf(NoProgram)
	}

	switch request {
	case emulation.ReqSetPause:
		set, err := boolArgument(request, args)
		if err != nil {
			return err
		}
		c.worker.Pause(set)
	case emulation.ReqTogglePause:
		c.worker.TogglePause()
	case emulation.ReqSetBench:
		set, err := boolArgument(request, args)
		if err != nil {
			return err
		}
		c.worker.Bench(set)
	case emulation.ReqToggleBench:
		c.worker.Bench(!c.worker.State().Has(govern.Bench))
	case emulation.ReqReplace:
		return c.Replace()
	case emulation.ReqSaveState:
		return c.SaveState()
	case emulation.ReqLoadState:
		return c.LoadState()
	default:
		return curated.Errorf(emulation.UnsupportedEmulationFeature, request)
	}

	return nil
}

func boolArgument(request emulation.FeatureReq, args []emulation.FeatureReqData) (bool, error) {
	if len(args) != 1 {
		return false, curated.Errorf(emulation.BadFeatureArgument, request)
	}
	b, ok := args[0].(bool)
	if !ok {
		return false, curated.Errorf(emulation.BadFeatureArgument, request)
	}
	return b, nil
}

// SaveState saves the state of the running machine. The worker continues to
// run.
func (c *Controller) SaveState() error {
	if c.worker == nil {
		return curated.Errorf(NoProgram)
	}

	var blob []byte
	err := c.worker.Exec(c.ctx, func(m machine.Machine) error {
		p, ok := m.(machine.Persistent)
		if !ok {
			return curated.Errorf(NotPersistent, m.System())
		}
		blob = p.SaveState()
		return nil
	})
	if err != nil {
		return err
	}

	err = c.store.Save(savestate.KindState, c.loader.Hash, blob)
	if err != nil {
		return err
	}

	c.log.Log(c, logTag, "state saved")
	return nil
}

// LoadState restores the most recent savestate for the program. If the
// worker has halted then it is replaced before the state is restored.
func (c *Controller) LoadState() error {
	if c.worker == nil {
		return curated.Errorf(NoProgram)
	}

	if c.worker.State().IsTerminal() {
		if err := c.Replace(); err != nil {
			return err
		}
	}

	err := c.worker.Exec(c.ctx, func(m machine.Machine) error {
		p, ok := m.(machine.Persistent)
		if !ok {
			return curated.Errorf(NotPersistent, m.System())
		}
		data, err := c.store.Load(savestate.KindState, c.loader.Hash, p.StateSize())
		if err != nil {
			return err
		}
		return p.LoadState(data)
	})
	if err != nil {
		return err
	}

	c.log.Log(c, logTag, "state loaded")
	return nil
}

// DumpMachine writes a graph of the machine's data structures to the writer
// in the DOT format. The graph is made on the worker goroutine.
func (c *Controller) DumpMachine(w io.Writer) error {
	if c.worker == nil {
		return curated.Errorf(NoProgram)
	}
	return c.worker.Exec(context.Background(), func(m machine.Machine) error {
		memviz.Map(w, m)
		return nil
	})
}
