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

package worker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/framechip/framechip/curated"
	"github.com/framechip/framechip/emulation/govern"
	"github.com/framechip/framechip/emulation/limiter"
	"github.com/framechip/framechip/emulation/machine"
	"github.com/framechip/framechip/environment"
	"github.com/framechip/framechip/notifications"
	"github.com/framechip/framechip/userinput"
	"github.com/google/uuid"
)

// Sentinal error patterns.
const (
	WorkerError    = "worker: %v"
	NotRunning     = "worker: not running"
	AlreadyStarted = "worker: already started"
)

// log tag
const logTag = "worker"

// the number of functions that can be queued with PushFunction()
const functionQueueLen = 16

// Config is the information required to create a Worker.
type Config struct {
	Env     *environment.Environment
	Machine machine.Machine

	// the source of key presses. can be nil
	Device userinput.Device

	// notifications are sent from the worker goroutine. the implementation
	// must not block. can be nil
	Notify notifications.Notify

	// clock used by the limiter. nil means the system's monotonic clock
	Clock limiter.Clock

	SkipFirstFrame bool
	DropLostFrames bool
}

// Worker runs a machine in a goroutine.
type Worker struct {
	id  uuid.UUID
	env *environment.Environment

	machine machine.Machine
	lmtr    *limiter.Limiter
	keypad  *userinput.Keypad
	device  userinput.Device
	notify  notifications.Notify

	state   govern.Control
	overlay atomic.Pointer[string]
	frames  atomic.Uint64

	functions chan func(machine.Machine)

	// start and stop
	crit    sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewWorker is the preferred method of initialisation for the Worker type.
// The worker is not started until Start() is called.
func NewWorker(cfg Config) (*Worker, error) {
	if cfg.Env == nil {
		return nil, curated.Errorf(WorkerError, "no environment")
	}
	if cfg.Machine == nil {
		return nil, curated.Errorf(WorkerError, "no machine")
	}

	w := &Worker{
		id:        uuid.New(),
		env:       cfg.Env,
		machine:   cfg.Machine,
		lmtr:      limiter.NewLimiter(cfg.Clock),
		keypad:    userinput.NewKeypad(cfg.Machine.Keymap()),
		device:    cfg.Device,
		notify:    cfg.Notify,
		functions: make(chan func(machine.Machine), functionQueueLen),
		done:      make(chan struct{}),
	}

	if w.device == nil {
		w.device = nullDevice{}
	}

	w.lmtr.Configure(cfg.Machine.Framerate(), cfg.SkipFirstFrame, cfg.DropLostFrames)

	s := ""
	w.overlay.Store(&s)

	return w, nil
}

func (w *Worker) String() string {
	return fmt.Sprintf("%s [%s]", w.machine.System(), w.id.String()[:8])
}

// ID returns the unique identifier of the worker. Each worker has a
// different ID, even if it is running the same program as a previous worker.
func (w *Worker) ID() uuid.UUID {
	return w.id
}

// Machine returns the machine being run by the worker. The machine must not
// be accessed while the worker goroutine is running. Use Exec() instead.
func (w *Worker) Machine() machine.Machine {
	return w.machine
}

// Start the worker goroutine. The goroutine will end when the context is
// cancelled or when Stop() is called. A worker can only be started once.
func (w *Worker) Start(ctx context.Context) error {
	w.crit.Lock()
	defer w.crit.Unlock()

	if w.started {
		return curated.Errorf(AlreadyStarted)
	}
	w.started = true

	ctx, w.cancel = context.WithCancel(ctx)
	go w.loop(ctx)

	return nil
}

// Stop the worker goroutine and wait for it to end. Safe to call more than
// once and safe to call if the worker was never started.
func (w *Worker) Stop() {
	w.crit.Lock()
	defer w.crit.Unlock()

	if !w.started {
		return
	}

	w.cancel()
	<-w.done
}

// Done returns a channel that is closed when the worker goroutine has ended.
// The channel is never closed if the worker is never started.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// Pause sets or clears the Paused flag.
func (w *Worker) Pause(set bool) govern.State {
	return w.state.Apply(govern.Paused, set)
}

// TogglePause toggles the Paused flag.
func (w *Worker) TogglePause() govern.State {
	return w.state.Toggle(govern.Paused)
}

// Hide sets or clears the Hidden flag. Hidden is independent of Paused.
func (w *Worker) Hide(set bool) govern.State {
	return w.state.Apply(govern.Hidden, set)
}

// Bench sets or clears the Bench flag. A worker in bench mode ignores the
// limiter and runs frames as quickly as possible. Logging from the
// environment is suppressed while in bench mode.
func (w *Worker) Bench(set bool) govern.State {
	w.env.Quiet.Store(set)
	return w.state.Apply(govern.Bench, set)
}

// State returns the current state of the worker.
func (w *Worker) State() govern.State {
	return w.state.Load()
}

// IsRunning returns true if the worker is running frames.
func (w *Worker) IsRunning() bool {
	return w.state.IsRunning()
}

// Overlay returns the most recent statistics string.
func (w *Worker) Overlay() string {
	return *w.overlay.Load()
}

// Frames returns the number of frames that have been run.
func (w *Worker) Frames() uint64 {
	return w.frames.Load()
}

// Measured returns the measured frame rate.
func (w *Worker) Measured() float64 {
	return w.lmtr.Measured()
}

// PushFunction queues a function to be run on the worker goroutine. The
// function is run at the start of the next loop iteration, whether or not the
// worker is running frames. Returns false if the queue is full.
func (w *Worker) PushFunction(f func(machine.Machine)) bool {
	select {
	case w.functions <- f:
		return true
	default:
		w.env.Log.Log(w.env, logTag, "dropped function push")
		return false
	}
}

// Exec runs the function on the worker goroutine and waits for it to
// complete. Returns an error if the worker has not been started, has
// stopped, or if the context is cancelled before the function has run.
func (w *Worker) Exec(ctx context.Context, f func(machine.Machine) error) error {
	w.crit.Lock()
	started := w.started
	w.crit.Unlock()
	if !started {
		return curated.Errorf(NotRunning)
	}

	result := make(chan error, 1)
	g := func(m machine.Machine) {
		result <- f(m)
	}

	select {
	case w.functions <- g:
	case <-w.done:
		return curated.Errorf(NotRunning)
	case <-ctx.Done():
		return curated.Errorf(WorkerError, ctx.Err())
	}

	select {
	case err := <-result:
		return err
	case <-w.done:
		// the function may have run before the goroutine ended
		select {
		case err := <-result:
			return err
		default:
		}
		return curated.Errorf(NotRunning)
	case <-ctx.Done():
		return curated.Errorf(WorkerError, ctx.Err())
	}
}

func (w *Worker) sendNotification(notice notifications.Notice) {
	if w.notify == nil {
		return
	}
	if err := w.notify.Notify(notice); err != nil {
		w.env.Log.Log(w.env, logTag, err)
	}
}

// nullDevice is used when no input device has been specified
type nullDevice struct{}

func (nullDevice) UpdateStates() {}

func (nullDevice) AreAnyHeld(_ ...userinput.Scancode) bool {
	return false
}
