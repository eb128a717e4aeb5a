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
	"errors"
	"fmt"
	"strings"

	"github.com/framechip/framechip/curated"
	"github.com/framechip/framechip/emulation/govern"
	"github.com/framechip/framechip/emulation/limiter"
	"github.com/framechip/framechip/emulation/machine"
	"github.com/framechip/framechip/emulation/worker"
	"github.com/framechip/framechip/environment"
	"github.com/framechip/framechip/hardware/preferences"
	"github.com/framechip/framechip/logger"
	"github.com/framechip/framechip/notifications"
	"github.com/framechip/framechip/paths"
	"github.com/framechip/framechip/prefs"
	"github.com/framechip/framechip/romloader"
	"github.com/framechip/framechip/savestate"
	"github.com/framechip/framechip/userinput"
	"github.com/framechip/framechip/version"
)

// Sentinal error patterns.
const (
	HostError        = "host: %v"
	NoProgram        = "host: no program loaded"
	UnsupportedEvent = "host: unsupported event (%T)"
	NotPersistent    = "host: %s does not support savestates"
)

// log tag
const logTag = "host"

// the number of notifications that can be waiting for Service()
const noticeQueueLen = 64

// Config is the information required to create a Controller. Only Home is
// required.
type Config struct {
	Home *paths.Home

	Log      *logger.Logger
	Registry *machine.Registry
	Keyboard *userinput.SharedKeyboard

	Prefs        *Preferences
	MachinePrefs *preferences.Preferences

	// clock used by the worker's limiter. nil means the system's monotonic
	// clock
	Clock limiter.Clock
}

// Controller owns zero or one emulation worker.
type Controller struct {
	ctx    context.Context
	cancel context.CancelFunc

	log          *logger.Logger
	home         *paths.Home
	registry     *machine.Registry
	keyboard     *userinput.SharedKeyboard
	prefs        *Preferences
	machinePrefs *preferences.Preferences
	clock        limiter.Clock

	// the active worker and the environment and program it was created with.
	// worker is nil if no program has been loaded
	worker *worker.Worker
	env    *environment.Environment
	loader romloader.Loader
	store  *savestate.Store

	// whether the frontend is visible. applied to every new worker
	hidden bool

	quit bool

	notices   chan notifications.Notice
	lostCount int
}

// NewController is the preferred method of initialisation for the Controller
// type.
func NewController(cfg Config) (*Controller, error) {
	if cfg.Home == nil {
		return nil, curated.Errorf(HostError, "no home directory")
	}

	c := &Controller{
		log:          cfg.Log,
		home:         cfg.Home,
		registry:     cfg.Registry,
		keyboard:     cfg.Keyboard,
		prefs:        cfg.Prefs,
		machinePrefs: cfg.MachinePrefs,
		clock:        cfg.Clock,
		notices:      make(chan notifications.Notice, noticeQueueLen),
	}

	if c.log == nil {
		c.log = logger.NewLogger(1000)
	}
	if c.registry == nil {
		c.registry = NewRegistry()
	}
	if c.keyboard == nil {
		c.keyboard = userinput.NewSharedKeyboard()
	}

	var err error

	if c.prefs == nil {
		c.prefs, err = NewPreferences(c.home.ConfigFile(prefs.DefaultPrefsFile))
		if err != nil {
			return nil, curated.Errorf(HostError, err)
		}
	}
	if c.machinePrefs == nil {
		c.machinePrefs, err = preferences.NewPreferences(c.home.ConfigFile(prefs.DefaultPrefsFile))
		if err != nil {
			return nil, curated.Errorf(HostError, err)
		}
	}

	c.ctx, c.cancel = context.WithCancel(context.Background())

	return c, nil
}

func (c *Controller) String() string {
	if c.worker == nil {
		return fmt.Sprintf("%s: no program", logTag)
	}
	return fmt.Sprintf("%s: %s", logTag, c.worker)
}

// AllowLogging implements the logger.Permission interface.
func (c *Controller) AllowLogging() bool {
	return true
}

// Log returns the logger used by the controller and by every environment it
// creates.
func (c *Controller) Log() *logger.Logger {
	return c.log
}

// Keyboard returns the keyboard device shared with the worker.
func (c *Controller) Keyboard() *userinput.SharedKeyboard {
	return c.keyboard
}

// Prefs returns the host preferences.
func (c *Controller) Prefs() *Preferences {
	return c.prefs
}

// MachinePrefs returns the preferences shared by every machine.
func (c *Controller) MachinePrefs() *preferences.Preferences {
	return c.machinePrefs
}

// HasProgram returns true if a program has been loaded.
func (c *Controller) HasProgram() bool {
	return c.worker != nil
}

// ShortName returns the name of the loaded program without the path or
// extension. Empty if no program has been loaded.
func (c *Controller) ShortName() string {
	if c.worker == nil {
		return ""
	}
	return c.loader.ShortName()
}

// Load the program and start a new worker for it, replacing any existing
// worker.
func (c *Controller) Load(filename string) error {
	ld := romloader.NewLoader(filename)
	if err := ld.Load(); err != nil {
		return curated.Errorf(HostError, err)
	}
	return c.start(ld)
}

// Replace the worker with a new worker running the same program. The machine
// is created from the data that was originally loaded. This is the only way
// of recovering from the Halted and Fatal states.
func (c *Controller) Replace() error {
	if c.worker == nil {
		return curated.Errorf(NoProgram)
	}
	return c.start(c.loader)
}

func (c *Controller) start(ld romloader.Loader) error {
	desc, err := c.registry.Sniff(ld)
	if err != nil {
		return curated.Errorf(HostError, err)
	}

	env, err := environment.NewEnvironment(environment.MainEmulation, c.log, c.machinePrefs)
	if err != nil {
		return curated.Errorf(HostError, err)
	}

	m, err := desc.Create(env, ld)
	if err != nil {
		return curated.Errorf(HostError, err)
	}

	w, err := worker.NewWorker(worker.Config{
		Env:            env,
		Machine:        m,
		Device:         c.keyboard,
		Notify:         c,
		Clock:          c.clock,
		SkipFirstFrame: c.prefs.SkipFirst.Get().(bool),
		DropLostFrames: c.prefs.DropFrames.Get().(bool),
	})
	if err != nil {
		return curated.Errorf(HostError, err)
	}

	// the old worker is stopped before the new machine's persistent data is
	// restored. when replacing a worker running the same program the data
	// saved by stop() is the data that is restored
	c.stop()

	c.worker = w
	c.env = env
	c.loader = ld
	c.store = c.openStore(desc.System)
	c.lostCount = 0

	c.restore(m)
	c.keyboard.ReleaseAll()

	w.Hide(c.hidden)
	if err := w.Start(c.ctx); err != nil {
		return curated.Errorf(HostError, err)
	}

	c.log.Logf(c, logTag, "%s: %s (%s)", w, ld.ShortName(), ld.Hash)

	return nil
}

// stop the active worker and save its persistent data
func (c *Controller) stop() {
	if c.worker == nil {
		return
	}

	c.worker.Stop()
	c.persist(c.worker.Machine(), c.worker.State())
	c.worker = nil
}

// openStore returns the savestate store for the system. persistence is
// disabled if the directory can not be prepared
func (c *Controller) openStore(system string) *savestate.Store {
	dir, err := c.home.SystemPath(system, "saves")
	if err != nil {
		c.log.Log(c, logTag, err)
		dir = ""
	}
	store, err := savestate.NewStore(dir)
	if err != nil {
		c.log.Log(c, logTag, err)
	}
	return store
}

// restore the persistent data for a newly created machine
func (c *Controller) restore(m machine.Machine) {
	if !c.store.Enabled() {
		return
	}

	if p, ok := m.(machine.PermanentRegisters); ok {
		data, err := c.store.Load(savestate.KindPerm, c.loader.Hash, p.PermanentSize())
		if err == nil {
			err = p.RestorePermanentRegisters(data)
		}
		if err != nil && !curated.Is(err, savestate.NotFound) {
			c.log.Log(c, logTag, err)
		}
	}

	if c.prefs.Resume.Get().(bool) {
		if p, ok := m.(machine.Persistent); ok {
			data, err := c.store.Load(savestate.KindState, c.loader.Hash, p.StateSize())
			if err == nil {
				err = p.LoadState(data)
				if err == nil {
					c.log.Log(c, logTag, "resuming from savestate")
				}
			}
			if err != nil && !curated.Is(err, savestate.NotFound) {
				c.log.Log(c, logTag, err)
			}
		}
	}
}

// persist the data of a machine whose worker has been stopped
func (c *Controller) persist(m machine.Machine, state govern.State) {
	if !c.store.Enabled() {
		return
	}

	if p, ok := m.(machine.PermanentRegisters); ok {
		err := c.store.Save(savestate.KindPerm, c.loader.Hash, p.PermanentRegisters())
		if err != nil {
			c.log.Log(c, logTag, err)
		}
	}

	// a machine that has reached a terminal state is not worth resuming
	if c.prefs.Resume.Get().(bool) && !state.IsTerminal() {
		if p, ok := m.(machine.Persistent); ok {
			err := c.store.Save(savestate.KindState, c.loader.Hash, p.SaveState())
			if err != nil {
				c.log.Log(c, logTag, err)
			}
		}
	}
}

// Notify implements the notifications.Notify interface. It is called by the
// worker goroutine and never blocks.
func (c *Controller) Notify(notice notifications.Notice) error {
	select {
	case c.notices <- notice:
	default:
	}
	return nil
}

// Service implements the emulation.Emulation interface.
func (c *Controller) Service() {
	for {
		select {
		case notice := <-c.notices:
			switch notice {
			case notifications.NotifyHalted:
				c.log.Log(c, logTag, "program has ended")
			case notifications.NotifyFatal:
				c.log.Log(c, logTag, "program has stopped because of an error")
			case notifications.NotifyLostFrame:
				c.lostCount++
			}
		default:
			return
		}
	}
}

// LostFrames returns the number of lost frame notifications received by
// Service() since the worker was started.
func (c *Controller) LostFrames() int {
	return c.lostCount
}

// State implements the emulation.Emulation interface. Returns govern.Normal if
// no program has been loaded.
func (c *Controller) State() govern.State {
	if c.worker == nil {
		return govern.Normal
	}
	return c.worker.State()
}

// Quit implements the emulation.Emulation interface.
func (c *Controller) Quit() bool {
	return c.quit
}

// VideoSize implements the emulation.Emulation interface.
func (c *Controller) VideoSize() int {
	if c.env == nil {
		return 0
	}
	return c.env.Video.Size()
}

// Video implements the emulation.Emulation interface. The dimensions of the
// video buffer are published separately from its contents so a frame is only
// reported as fresh if its size matches the dimensions.
func (c *Controller) Video(dst []uint32) (int, int, bool) {
	if c.env == nil {
		return 0, 0, false
	}
	w, h := c.env.Video.Dimensions()
	n, fresh := c.env.Video.Read(dst)
	return w, h, fresh && n == w*h
}

// Audio implements the emulation.Emulation interface.
func (c *Controller) Audio(dst []float32) (int, bool) {
	if c.env == nil {
		return 0, false
	}
	return c.env.Audio.Read(dst)
}

// Title implements the emulation.Emulation interface.
func (c *Controller) Title() string {
	if c.worker == nil {
		return version.ApplicationName
	}

	s := fmt.Sprintf("%s - %s", version.ApplicationName, c.loader.ShortName())

	st := c.worker.State()
	switch {
	case st.Has(govern.Fatal):
		s = fmt.Sprintf("%s [error]", s)
	case st.Has(govern.Halted):
		s = fmt.Sprintf("%s [halted]", s)
	case st != govern.Normal:
		s = fmt.Sprintf("%s [%s]", s, strings.ToLower(st.String()))
	}

	return s
}

// Overlay implements the emulation.Emulation interface.
func (c *Controller) Overlay() string {
	if c.worker == nil {
		return ""
	}
	return c.worker.Overlay()
}

// Shutdown stops the worker, saves persistent data and saves the
// preferences.
func (c *Controller) Shutdown() error {
	c.stop()
	c.cancel()

	return errors.Join(c.prefs.Save(), c.machinePrefs.Save())
}
