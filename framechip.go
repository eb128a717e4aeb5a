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
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/framechip/framechip/gui/sdlplay"
	"github.com/framechip/framechip/gui/termplay"
	"github.com/framechip/framechip/hardware/chip8"
	"github.com/framechip/framechip/host"
	"github.com/framechip/framechip/paths"
	"github.com/framechip/framechip/prefs"
	"github.com/framechip/framechip/statsview"
	"github.com/framechip/framechip/version"
	"github.com/framechip/framechip/wavwriter"
	"github.com/spf13/cobra"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// destroy the current gui. the main thread stops servicing the gui
	// before the request completes so the emulation can be safely shutdown
	// afterwards.
	//
	// takes no arguments.
	reqDestroy stateReq = "DESTROY"
)

type stateRequest struct {
	req  stateReq
	args interface{}
}

// GuiCreator facilitates the creation, servicing and destruction of GUIs
// that need to be run in the main thread.
//
// Note that there is no Create() function because we need the freedom to
// create the GUI how we want. Instead the creator is a channel which accepts
// a function that returns an instance of GuiCreator.
type GuiCreator interface {
	// cleanup resources used by the gui
	Destroy(io.Writer)

	// Service() should not pause or loop longer than necessary (if at all). It
	// MUST ONLY by called as part of a larger loop from the main thread. It
	// should service all gui events that are not safe to do in sub-threads.
	Service()
}

// communication between the main() function and the launch() function. this is
// required because many gui solutions (notably SDL) require window event
// handling (including creation) to occur on the main thread.
type mainSync struct {
	state   chan stateRequest
	creator chan func() (GuiCreator, error)

	// the result of creator will be returned on either of these two channels.
	creation      chan GuiCreator
	creationError chan error

	// interrupt signals received by the main thread are forwarded to the
	// launch goroutine
	interrupt chan os.Signal
}

func newMainSync() *mainSync {
	return &mainSync{
		state:         make(chan stateRequest),
		creator:       make(chan func() (GuiCreator, error)),
		creation:      make(chan GuiCreator),
		creationError: make(chan error),
		interrupt:     make(chan os.Signal, 1),
	}
}

// #mainthread
func main() {
	sync := newMainSync()

	// #ctrlc handler
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// launch program as a go routine. further communication is through
	// the mainSync instance
	go launch(sync, os.Args[1:])

	os.Exit(sync.loop(intChan))
}

// a closed channel. selecting on it always succeeds
var serviceGUI = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

// loop until a reqQuit state request is received. every iteration of the loop
// we listen for:
//
//  1. interrupt signals
//  2. new gui creation functions
//  3. state requests
//  4. anything in the Service() function of the most recently created GUI
//
// without a GUI the loop blocks until one of the first three arrives. returns
// the value to use with os.Exit()
//
// #mainthread
func (sync *mainSync) loop(intChan <-chan os.Signal) int {
	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	done := false
	var gui GuiCreator
	for !done {
		// a nil channel is never selected
		var service chan struct{}
		if gui != nil {
			service = serviceGUI
		}

		select {
		case sig := <-intChan:
			// the launch goroutine decides what an interrupt means. a second
			// interrupt before the first has been seen is dropped
			select {
			case sync.interrupt <- sig:
			default:
			}

		case creator := <-sync.creator:
			var err error

			// destroy existing gui
			if gui != nil {
				gui.Destroy(os.Stderr)
			}

			gui, err = creator()
			if err != nil {
				sync.creationError <- err

				// creator() returns a typed nil on error which does not equal
				// nil when stored in the interface
				gui = nil
			} else {
				sync.creation <- gui
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if gui != nil {
					gui.Destroy(os.Stderr)
				}

				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqDestroy:
				if gui != nil {
					gui.Destroy(nil)
					gui = nil
				}
			}

		case <-service:
			gui.Service()
		}
	}

	return exitVal
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate gui creation and to quit.
func launch(sync *mainSync, args []string) {
	cmd := newRootCommand(sync)
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// options shared by all commands that run an emulation
type options struct {
	home     string
	config   string
	portable bool
	prefs    string
	log      bool
	wav      string
	memviz   string
	stats    bool

	// run command only
	scale int
}

func newRootCommand(sync *mainSync) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "framechip [program]",
		Short:         fmt.Sprintf("%s is a CHIP-8 and SUPER-CHIP emulator", version.ApplicationName),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return play(cmd, sync, opts, args)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.home, "home", "", "location of the framechip home directory")
	flags.StringVar(&opts.config, "config", "", "location of the preferences file")
	flags.BoolVar(&opts.portable, "portable", false, "use a home directory in the current working directory")
	flags.StringVar(&opts.prefs, "prefs", "", "preferences for this session (\"key::value; key::value\")")
	flags.BoolVar(&opts.log, "log", false, "echo debugging log to stderr")
	flags.StringVar(&opts.wav, "wav", "", "record audio to wav file. a directory or no value creates a unique filename")
	flags.StringVar(&opts.memviz, "memviz", "", "write a graph of the machine state to file on exit. a directory or no value creates a unique filename")
	flags.Lookup("wav").NoOptDefVal = "."
	flags.Lookup("memviz").NoOptDefVal = "."
	flags.BoolVar(&opts.stats, "statsview", false, "launch runtime statistics server")

	run := &cobra.Command{
		Use:   "run [program]",
		Short: "run a program in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return play(cmd, sync, opts, args)
		},
	}
	run.Flags().IntVar(&opts.scale, "scale", 0, "window scaling (0 uses the preferences value)")
	root.Flags().AddFlagSet(run.Flags())

	term := &cobra.Command{
		Use:   "term program",
		Short: "run a program in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return terminal(cmd, sync, opts, args)
		},
	}

	ver := &cobra.Command{
		Use:   "version",
		Short: "print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}

	root.AddCommand(run, term, ver)

	return root
}

// session is the emulation and the optional extras requested on the command
// line
type session struct {
	opts *options
	out  io.Writer
	ctrl *host.Controller
	wav  *wavwriter.WavWriter
	stop func()
}

func newSession(cmd *cobra.Command, opts *options, args []string) (*session, error) {
	s := &session{
		opts: opts,
		out:  cmd.OutOrStdout(),
		stop: func() {},
	}

	home, err := paths.NewHome(paths.Options{
		Home:     opts.home,
		Config:   opts.config,
		Portable: opts.portable,
	})
	if err != nil {
		return nil, err
	}

	if opts.prefs != "" {
		prefs.PushCommandLineStack(opts.prefs)
	}

	s.ctrl, err = host.NewController(host.Config{Home: home})

	if opts.prefs != "" {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "* unused preferences: %s\n", unused)
		}
	}

	if err != nil {
		return nil, err
	}

	if opts.log {
		s.ctrl.Log().SetEcho(cmd.ErrOrStderr(), true)
	}

	if opts.stats {
		s.stop, err = statsview.Launch(s.out)
		if err != nil {
			s.ctrl.Log().Log(s.ctrl, "statsview", err)
		}
	}

	if len(args) > 0 {
		err = s.ctrl.Load(args[0])
		if err != nil {
			s.end()
			return nil, err
		}
	}

	if opts.wav != "" {
		fn := outputFilename(opts.wav, "wav", ".wav", s.ctrl.ShortName())
		s.wav, err = wavwriter.New(fn, chip8.SampleRate, chip8.SamplesPerFrame, s.ctrl.Log())
		if err != nil {
			s.end()
			return nil, err
		}
	}

	return s, nil
}

// end the session. the machine graph is written before the emulation is
// shutdown so that it shows the machine as it was when the user quit
func (s *session) end() error {
	var err error

	if s.opts.memviz != "" && s.ctrl.HasProgram() {
		err = s.dump()
	}

	if e := s.ctrl.Shutdown(); e != nil && err == nil {
		err = e
	}

	if s.wav != nil {
		if e := s.wav.Close(); e != nil && err == nil {
			err = e
		}
	}

	s.stop()

	return err
}

func (s *session) dump() error {
	f, err := os.Create(outputFilename(s.opts.memviz, "memviz", ".dot", s.ctrl.ShortName()))
	if err != nil {
		return err
	}
	defer f.Close()
	return s.ctrl.DumpMachine(f)
}

func play(cmd *cobra.Command, sync *mainSync, opts *options, args []string) (rerr error) {
	s, err := newSession(cmd, opts, args)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.end(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	scale := opts.scale
	if scale == 0 {
		scale = s.ctrl.Prefs().Scale.Get().(int)
	}

	// create gui
	sync.creator <- func() (GuiCreator, error) {
		return sdlplay.NewSdlPlay(s.ctrl, scale, s.wav, s.ctrl.Log())
	}

	// wait for creator result
	var scr *sdlplay.SdlPlay
	select {
	case g := <-sync.creation:
		scr = g.(*sdlplay.SdlPlay)
	case err := <-sync.creationError:
		return err
	}

	select {
	case <-scr.Done():
	case <-sync.interrupt:
	}

	// the gui must not be serviced while the emulation is shutting down
	sync.state <- stateRequest{req: reqDestroy}

	return nil
}

func terminal(cmd *cobra.Command, sync *mainSync, opts *options, args []string) (rerr error) {
	s, err := newSession(cmd, opts, args)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.end(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	tp, err := termplay.NewTermPlay(termplay.Config{
		Emulation: s.ctrl,
		Wav:       s.wav,
		Log:       s.ctrl.Log(),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sync != nil {
		go func() {
			select {
			case <-sync.interrupt:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	return tp.Run(ctx)
}

// outputFilename returns the file to write output to. if value names a
// directory then a unique filename in that directory is created from the
// prepend string and the name of the program
func outputFilename(value string, prepend string, ext string, shortName string) string {
	if fi, err := os.Stat(value); err == nil && fi.IsDir() {
		return filepath.Join(value, paths.UniqueFilename(prepend, shortName)+ext)
	}
	return value
}
