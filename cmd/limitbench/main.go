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

// Limitbench runs the frame limiter against the system clock and reports how
// closely it achieves the target frequency. It is useful for checking the
// behaviour of the limiter on a new platform.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/framechip/framechip/emulation/limiter"
	"golang.org/x/sync/errgroup"
)

type benchCmd struct {
	Hz        []float64     `arg:"" optional:"" help:"Target frequencies. Each is run in turn" default:"60"`
	Duration  time.Duration `short:"d" help:"Length of each run" default:"5s"`
	Work      time.Duration `short:"w" help:"Simulated work for each frame" default:"0s"`
	SkipFirst bool          `help:"Declare the first frame due immediately" default:"true" negatable:""`
	Drop      bool          `help:"Drop lost frames rather than catching up" default:"true" negatable:""`
	Busy      bool          `help:"Busy wait rather than idling between frames"`
	Progress  time.Duration `short:"p" help:"Interval between progress reports. Zero to disable" default:"1s"`
}

func (c *benchCmd) Validate() error {
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	if c.Work < 0 {
		return fmt.Errorf("work must not be negative")
	}
	for _, hz := range c.Hz {
		if hz <= 0 {
			return fmt.Errorf("frequency must be positive (%v)", hz)
		}
	}
	return nil
}

func (c *benchCmd) Run(ctx context.Context) error {
	for _, hz := range c.Hz {
		cfg := Config{
			Hz:        hz,
			Duration:  c.Duration,
			Work:      c.Work,
			SkipFirst: c.SkipFirst,
			Drop:      c.Drop,
			Busy:      c.Busy,
		}

		clock := limiter.NewMonotonicClock()
		lmtr := limiter.NewLimiter(clock)

		var r Result

		g, gctx := errgroup.WithContext(ctx)
		pctx, cancel := context.WithCancel(gctx)

		g.Go(func() error {
			defer cancel()
			r = bench(gctx, cfg, lmtr, clock)
			return nil
		})

		if c.Progress > 0 {
			g.Go(func() error {
				progress(pctx, os.Stdout, lmtr, c.Progress)
				return nil
			})
		}

		err := g.Wait()
		cancel()
		if err != nil {
			return err
		}

		fmt.Println(r)

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return nil
}

func main() {
	var cli struct {
		Bench *benchCmd `cmd:"" default:"withargs" help:"Run the limiter at one or more frequencies"`
	}

	kctx := kong.Parse(&cli,
		kong.Name("limitbench"),
		kong.Description("Run the frame limiter against the system clock and report the achieved rate"),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	kctx.BindTo(ctx, (*context.Context)(nil))

	err := kctx.Run()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
