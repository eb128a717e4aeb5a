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
	"fmt"
	"io"
	"runtime"

	"github.com/framechip/framechip/curated"
	"github.com/framechip/framechip/emulation"
	"github.com/framechip/framechip/hardware/chip8"
	"github.com/framechip/framechip/logger"
	"github.com/framechip/framechip/version"
	"github.com/framechip/framechip/wavwriter"
	"github.com/veandco/go-sdl2/sdl"
)

// Sentinal error patterns.
const (
	SDLError = "sdlplay: %v"
)

const logTag = "sdlplay"

const pixelDepth = 4

// the size of the window before the first frame is seen. the first frame is
// expected to be the same size
const (
	initialWidth  = 64
	initialHeight = 32
)

// SdlPlay is a simple SDL implementation of a frontend for an emulation.
type SdlPlay struct {
	emu emulation.Emulation
	log *logger.Logger

	// optional recording of the audio output
	wav *wavwriter.WavWriter

	// sdl stuff
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	// size of the texture. this is the size of the most recent video frame
	// and not the size of the window
	width  int32
	height int32
	scale  int32

	// the video frame is copied here from the emulation before being copied
	// to the texture
	frame []uint32

	// audio frames are copied here from the emulation before being queued
	// and/or recorded
	samples []float32

	// all audio is handled by the sound type
	snd *sound

	// show the overlay in the window title
	overlay bool
	title   string

	done chan struct{}
}

// NewSdlPlay is the preferred method of initialisation for SdlPlay. The
// window is sized so that each emulated pixel is scale screen pixels. The
// wav argument can be nil.
//
// MUST ONLY be called from the #mainthread
func NewSdlPlay(emu emulation.Emulation, scale int, wav *wavwriter.WavWriter, log *logger.Logger) (*SdlPlay, error) {
	if log == nil {
		log = logger.Central()
	}

	scr := &SdlPlay{
		emu:   emu,
		log:   log,
		wav:   wav,
		scale:   int32(max(scale, 1)),
		samples: make([]float32, chip8.SamplesPerFrame),
		done:    make(chan struct{}),
	}

	// the SDL package locks the main goroutine to the main thread during
	// initialisation. we lock it here too and never unlock it
	runtime.LockOSThread()

	var err error

	err = sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_EVENTS)
	if err != nil {
		return nil, curated.Errorf(SDLError, err)
	}

	setupService()

	scr.window, err = sdl.CreateWindow(version.ApplicationName,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		initialWidth*scr.scale, initialHeight*scr.scale,
		uint32(sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE))
	if err != nil {
		sdl.Quit()
		return nil, curated.Errorf(SDLError, err)
	}

	// presenting with vsync paces the service loop
	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, uint32(sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC))
	if err != nil {
		scr.Destroy(nil)
		return nil, curated.Errorf(SDLError, err)
	}

	err = scr.resize(initialWidth, initialHeight)
	if err != nil {
		scr.Destroy(nil)
		return nil, curated.Errorf(SDLError, err)
	}

	scr.snd, err = newSound(scr.log)
	if err != nil {
		// the emulation can continue without sound
		scr.log.Log(scr, logTag, err)
		scr.snd = nil
	}

	return scr, nil
}

// AllowLogging implements the logger.Permission interface.
func (scr *SdlPlay) AllowLogging() bool {
	return true
}

// Done returns a channel that is closed when the emulation has asked to quit.
func (scr *SdlPlay) Done() <-chan struct{} {
	return scr.done
}

// Destroy SDL resources.
//
// MUST ONLY be called from the #mainthread
func (scr *SdlPlay) Destroy(output io.Writer) {
	if scr.snd != nil {
		scr.snd.destroy()
	}
	if scr.texture != nil {
		_ = scr.texture.Destroy()
	}
	if scr.renderer != nil {
		_ = scr.renderer.Destroy()
	}
	if scr.window != nil {
		_ = scr.window.Destroy()
	}
	sdl.Quit()

	if output != nil {
		fmt.Fprintf(output, "%s: window closed\n", logTag)
	}
}

// resize the texture for a new frame size. the window is not resized but the
// renderer's logical size is changed so that the frame fills the window
func (scr *SdlPlay) resize(width int32, height int32) error {
	if scr.texture != nil {
		_ = scr.texture.Destroy()
		scr.texture = nil
	}

	var err error

	scr.texture, err = scr.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ARGB8888),
		int(sdl.TEXTUREACCESS_STREAMING), width, height)
	if err != nil {
		return err
	}

	err = scr.renderer.SetLogicalSize(width, height)
	if err != nil {
		return err
	}

	scr.width = width
	scr.height = height

	scr.log.Logf(scr, logTag, "display size %dx%d", width, height)

	return nil
}

// setScale changes the window size so that each emulated pixel is scale
// screen pixels.
func (scr *SdlPlay) setScale(scale int32) {
	scr.scale = max(scale, 1)
	scr.window.SetSize(scr.width*scr.scale, scr.height*scr.scale)
}

// render the most recent video frame. the texture is only updated if the
// frame is new but the renderer is always presented
func (scr *SdlPlay) render() error {
	if sz := scr.emu.VideoSize(); len(scr.frame) != sz {
		scr.frame = make([]uint32, sz)
	}

	w, h, fresh := scr.emu.Video(scr.frame)
	if fresh {
		if int32(w) != scr.width || int32(h) != scr.height {
			err := scr.resize(int32(w), int32(h))
			if err != nil {
				return err
			}
		}

		pixels, pitch, err := scr.texture.Lock(nil)
		if err != nil {
			return err
		}
		copyFrame(pixels, pitch, scr.frame[:w*h], w)
		scr.texture.Unlock()
	}

	err := scr.renderer.Clear()
	if err != nil {
		return err
	}
	err = scr.renderer.Copy(scr.texture, nil, nil)
	if err != nil {
		return err
	}
	scr.renderer.Present()

	return nil
}

// update the window title if it has changed
func (scr *SdlPlay) updateTitle() {
	title := scr.emu.Title()
	if scr.overlay {
		title = fmt.Sprintf("%s | %s", title, scr.emu.Overlay())
	}
	if title != scr.title {
		scr.title = title
		scr.window.SetTitle(title)
	}
}
