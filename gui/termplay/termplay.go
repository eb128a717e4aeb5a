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

package termplay

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/framechip/framechip/curated"
	"github.com/framechip/framechip/emulation"
	"github.com/framechip/framechip/logger"
	"github.com/framechip/framechip/userinput"
	"github.com/framechip/framechip/wavwriter"
	xterm "golang.org/x/term"
)

// Sentinal error patterns.
const (
	TermError = "termplay: %v"
)

const logTag = "termplay"

// the rate at which the terminal is redrawn. the emulation runs at its own
// rate in the worker goroutine
const refreshRate = 30

// the length of time a key is held after it was last seen
const holdDuration = 150 * time.Millisecond

// Config for the terminal frontend.
type Config struct {
	Emulation emulation.Emulation

	// optional audio recording
	Wav *wavwriter.WavWriter

	Log *logger.Logger

	// output defaults to os.Stdout
	Output *os.File
}

// TermPlay is a terminal frontend for an emulation.
type TermPlay struct {
	emu emulation.Emulation
	wav *wavwriter.WavWriter
	log *logger.Logger
	out *os.File

	// keys currently held and the time at which they will be released
	held map[userinput.Scancode]time.Time

	frame []uint32
	w, h  int
	text  strings.Builder
}

// NewTermPlay is the preferred method of initialisation for TermPlay.
func NewTermPlay(cfg Config) (*TermPlay, error) {
	if cfg.Emulation == nil {
		return nil, curated.Errorf(TermError, "no emulation")
	}

	tp := &TermPlay{
		emu:  cfg.Emulation,
		wav:  cfg.Wav,
		log:  cfg.Log,
		out:  cfg.Output,
		held: make(map[userinput.Scancode]time.Time),
	}
	if tp.log == nil {
		tp.log = logger.Central()
	}
	if tp.out == nil {
		tp.out = os.Stdout
	}

	return tp, nil
}

// AllowLogging implements the logger.Permission interface.
func (tp *TermPlay) AllowLogging() bool {
	return true
}

// output services the emulation and redraws the terminal
func (tp *TermPlay) output(ctx context.Context, keys <-chan []userinput.Scancode) error {
	tck := time.NewTicker(time.Second / refreshRate)
	defer tck.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case k := <-keys:
			tp.press(k, time.Now())
		case now := <-tck.C:
			tp.release(now)

			tp.emu.Service()
			if tp.emu.Quit() {
				return nil
			}

			if tp.wav != nil {
				tp.wav.Pull(tp.emu)
			}

			err := tp.draw()
			if err != nil {
				return err
			}
		}
	}
}

// press forwards key down events for keys that are not already held. held keys
// have their release time extended
func (tp *TermPlay) press(keys []userinput.Scancode, now time.Time) {
	for _, k := range keys {
		_, held := tp.held[k]
		tp.held[k] = now.Add(holdDuration)
		err := tp.emu.HandleEvent(emulation.EventKey{Key: k, Down: true, Repeat: held})
		if err != nil {
			tp.log.Log(tp, logTag, err)
		}
	}
}

// release forwards key up events for keys whose hold time has expired
func (tp *TermPlay) release(now time.Time) {
	for k, t := range tp.held {
		if now.Before(t) {
			continue
		}
		delete(tp.held, k)
		err := tp.emu.HandleEvent(emulation.EventKey{Key: k, Down: false})
		if err != nil {
			tp.log.Log(tp, logTag, err)
		}
	}
}

// draw the most recent frame and the title line. nothing is drawn if the
// frame has not changed
func (tp *TermPlay) draw() error {
	if sz := tp.emu.VideoSize(); len(tp.frame) != sz {
		tp.frame = make([]uint32, sz)
	}

	w, h, fresh := tp.emu.Video(tp.frame)
	if !fresh {
		return nil
	}
	if w != tp.w || h != tp.h {
		tp.w = w
		tp.h = h
		tp.text.WriteString(clearScreen)
	}

	cols, rows, err := xterm.GetSize(int(tp.out.Fd()))
	if err != nil {
		return curated.Errorf(TermError, err)
	}

	tp.text.WriteString(cursorHome)

	// the last line of the terminal is used for the title
	renderFrame(&tp.text, tp.frame, w, h, cols, rows-1)

	tp.text.WriteString(tp.emu.Title())
	tp.text.WriteString(" | ")
	tp.text.WriteString(tp.emu.Overlay())
	tp.text.WriteString(clearLine)

	_, err = io.WriteString(tp.out, tp.text.String())
	tp.text.Reset()
	if err != nil {
		return curated.Errorf(TermError, err)
	}

	return nil
}
