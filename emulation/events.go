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

package emulation

import (
	"github.com/framechip/framechip/userinput"
)

// Event is an event from the frontend. The underlying type is one of the
// event types below.
type Event any

// EventKey is a key going up or down. Repeat is true for key down events that
// are the result of the key being held.
type EventKey struct {
	Key    userinput.Scancode
	Down   bool
	Repeat bool
}

// EventFileDrop is a file being dropped onto the frontend.
type EventFileDrop struct {
	Filename string
}

// EventVisibility is sent when the frontend is minimised or restored.
type EventVisibility struct {
	Visible bool
}

// EventQuit is sent when the frontend is closed.
type EventQuit struct{}
