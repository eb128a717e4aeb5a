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

	"github.com/framechip/framechip/emulation/govern"
	"github.com/framechip/framechip/notifications"
)

func (w *Worker) loop(ctx context.Context) {
	defer close(w.done)

	w.env.Log.Logf(w.env, logTag, "%s: started", w)
	w.sendNotification(notifications.NotifyStarted)

	defer func() {
		w.env.Log.Logf(w.env, logTag, "%s: stopped after %d frames", w, w.frames.Load())
		w.sendNotification(notifications.NotifyStopped)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case f := <-w.functions:
			f(w.machine)
			continue
		default:
		}

		state := w.state.Load()

		// bench mode ignores the limiter but only if frames are being run.
		// otherwise the loop would spin without sleeping
		if !(state.IsRunning() && state.Has(govern.Bench)) {
			if !w.lmtr.CheckTimeAndIdle() {
				continue
			}
			if w.lmtr.LostFrame() {
				w.sendNotification(notifications.NotifyLostFrame)
			}
		}

		// reload state in case it has changed while idling
		state = w.state.Load()
		if !state.IsRunning() {
			continue
		}

		w.tick()
	}
}

// tick runs one frame of the machine.
func (w *Worker) tick() {
	w.machine.SetKeys(w.keypad.Update(w.device))

	w.machine.HandlePreFrameInterrupt()
	w.machine.InstructionLoop()

	switch w.machine.HandleEndFrameInterrupt() {
	case govern.Halted:
		w.state.Set(govern.Halted)
		w.env.Log.Logf(w.env, logTag, "%s: halted", w)
		w.sendNotification(notifications.NotifyHalted)
	case govern.Fatal:
		w.state.Set(govern.Fatal)
		w.env.Log.Logf(w.env, logTag, "%s: fatal error: %s", w, w.machine)
		w.sendNotification(notifications.NotifyFatal)
	}

	// the final frame is rendered even if the machine has halted
	w.machine.RenderAudioData()
	w.machine.RenderVideoData()

	w.frames.Add(1)
	w.publishOverlay()
}

func (w *Worker) publishOverlay() {
	s := fmt.Sprintf("%.1f fps (%.0f) %d lost %d cycles", w.lmtr.Measured(), w.lmtr.TargetHz(),
		w.lmtr.LostFrameCount(), w.machine.Cycles())
	if st := w.state.Load(); st != govern.Normal {
		s = fmt.Sprintf("%s [%s]", s, st)
	}
	w.overlay.Store(&s)
}
