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
	"github.com/framechip/framechip/emulation/govern"
)

// Emulation defines the public functions required for a frontend to present
// an emulation and to pass user input to it.
//
// All functions are called from the frontend's goroutine. None of them block
// on the emulation worker except where noted by the implementation.
type Emulation interface {
	// Forward an event from the frontend.
	HandleEvent(ev Event) error

	// Send a request to set an emulation feature.
	SetFeature(request FeatureReq, args ...FeatureReqData) error

	// Service should be called once per frontend frame. It processes
	// notifications from the emulation worker.
	Service()

	// Immediate request for the state of the emulation.
	State() govern.State

	// Quit returns true if the emulation has been asked to end.
	Quit() bool

	// The size of the buffer required by Video(). Can change at any time.
	VideoSize() int

	// Copy the most recent video frame into dst. The width and height of
	// the frame are returned along with whether the frame is new since the
	// previous call. The frame is ARGB8888.
	Video(dst []uint32) (w int, h int, fresh bool)

	// Copy the most recent audio frame into dst.
	Audio(dst []float32) (n int, fresh bool)

	// Strings for presentation.
	Title() string
	Overlay() string
}
