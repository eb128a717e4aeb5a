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
	"github.com/framechip/framechip/emulation"
	"github.com/framechip/framechip/userinput"
	"github.com/veandco/go-sdl2/sdl"
)

// hotkeys handled by the frontend. all other keys are forwarded to the
// emulation
const (
	keyOverlay  = userinput.ScancodeF1
	keyScaleDn  = userinput.ScancodeF11
	keyScaleUp  = userinput.ScancodeF12
	maxSdlScale = 32
)

func setupService() {
	// MOUSEMOTION events fill up the event queue pretty quickly. these take
	// time to service and for no good reason
	sdl.EventState(sdl.MOUSEMOTION, sdl.IGNORE)
	sdl.EventState(sdl.DROPFILE, sdl.ENABLE)
}

// Service implements the GuiCreator interface.
//
// MUST ONLY be called from the #mainthread
func (scr *SdlPlay) Service() {
	// loop until there are no more events to retreive. timing out straight
	// away if there's nothing
	for ev := sdl.WaitEventTimeout(1); ev != nil; ev = sdl.PollEvent() {
		scr.serviceEvent(ev)
	}

	scr.emu.Service()

	if scr.emu.Quit() {
		select {
		case <-scr.done:
		default:
			close(scr.done)
		}
		return
	}

	if scr.snd != nil || scr.wav != nil {
		scr.serviceAudio()
	}

	err := scr.render()
	if err != nil {
		scr.log.Log(scr, logTag, err)
	}

	scr.updateTitle()
}

func (scr *SdlPlay) serviceAudio() {
	samples := scr.samples
	n, fresh := scr.emu.Audio(samples)
	if !fresh {
		return
	}
	if scr.snd != nil {
		scr.snd.queue(samples[:n])
	}
	if scr.wav != nil {
		scr.wav.Record(samples[:n])
	}
}

func (scr *SdlPlay) serviceEvent(ev sdl.Event) {
	var err error

	switch ev := ev.(type) {
	case *sdl.QuitEvent:
		err = scr.emu.HandleEvent(emulation.EventQuit{})

	case *sdl.KeyboardEvent:
		key := userinput.Scancode(ev.Keysym.Scancode)
		down := ev.Type == sdl.KEYDOWN

		if down && ev.Repeat == 0 {
			switch key {
			case keyOverlay:
				scr.overlay = !scr.overlay
				return
			case keyScaleDn:
				scr.setScale(scr.scale - 1)
				return
			case keyScaleUp:
				scr.setScale(min(scr.scale+1, maxSdlScale))
				return
			}
		}

		err = scr.emu.HandleEvent(emulation.EventKey{
			Key:    key,
			Down:   down,
			Repeat: ev.Repeat != 0,
		})

	case *sdl.DropEvent:
		if ev.Type == sdl.DROPFILE {
			err = scr.emu.HandleEvent(emulation.EventFileDrop{Filename: ev.File})
		}

	case *sdl.WindowEvent:
		switch ev.Event {
		case sdl.WINDOWEVENT_MINIMIZED, sdl.WINDOWEVENT_HIDDEN:
			err = scr.emu.HandleEvent(emulation.EventVisibility{Visible: false})
		case sdl.WINDOWEVENT_RESTORED, sdl.WINDOWEVENT_SHOWN:
			err = scr.emu.HandleEvent(emulation.EventVisibility{Visible: true})
		}
	}

	if err != nil {
		scr.log.Log(scr, logTag, err)
	}
}
