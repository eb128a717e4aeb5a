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

package notifications

// Notice describes events that change the presentation of the emulation.
// These notifications can be used to present additional information to the
// user.
type Notice string

// List of defined notifications.
const (
	// the worker goroutine has started
	NotifyStarted Notice = "NotifyStarted"

	// the program has finished normally. the machine is halted
	NotifyHalted Notice = "NotifyHalted"

	// the program caused an unrecoverable error. the machine is halted
	NotifyFatal Notice = "NotifyFatal"

	// the worker goroutine has ended
	NotifyStopped Notice = "NotifyStopped"

	// the limiter has detected one or more lost frames
	NotifyLostFrame Notice = "NotifyLostFrame"
)

// Notify is used for communication from the emulation worker to the host. An
// implementation must not block the caller.
type Notify interface {
	Notify(notice Notice) error
}
