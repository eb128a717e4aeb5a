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

//go:build !windows

package termplay

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/framechip/framechip/curated"
	"github.com/framechip/framechip/userinput"
	"github.com/pkg/term"
	"golang.org/x/sync/errgroup"
	xterm "golang.org/x/term"
)

// the device opened for keyboard input
const ttyDevice = "/dev/tty"

// how long a read from the terminal waits before timing out. this is the
// longest time it takes for the input goroutine to notice cancellation
const readTimeout = 100 * time.Millisecond

// Run the frontend until the emulation quits, ctrl-c is pressed or the
// context is cancelled. The terminal is placed in raw mode for the duration.
func (tp *TermPlay) Run(ctx context.Context) error {
	if !xterm.IsTerminal(int(tp.out.Fd())) {
		return curated.Errorf(TermError, "output is not a terminal")
	}

	tty, err := term.Open(ttyDevice, term.RawMode, term.ReadTimeout(readTimeout))
	if err != nil {
		return curated.Errorf(TermError, err)
	}
	defer func() {
		_ = tty.Restore()
		_ = tty.Close()
		_, _ = io.WriteString(tp.out, resetAttr+showCursor+"\r\n")
	}()

	_, _ = io.WriteString(tp.out, hideCursor+clearScreen)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := make(chan []userinput.Scancode, 16)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return tp.input(ctx, cancel, tty, keys)
	})

	g.Go(func() error {
		defer cancel()
		return tp.output(ctx, keys)
	})

	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// input reads from the terminal and forwards decoded keys to the output
// goroutine
func (tp *TermPlay) input(ctx context.Context, cancel context.CancelFunc, tty io.Reader, keys chan<- []userinput.Scancode) error {
	b := make([]byte, 64)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := tty.Read(b)
		if err != nil && !errors.Is(err, io.EOF) {
			return curated.Errorf(TermError, err)
		}
		if n == 0 {
			continue
		}

		k, interrupt := decodeKeys(b[:n])
		if interrupt {
			cancel()
			return nil
		}
		if len(k) > 0 {
			select {
			case keys <- k:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

