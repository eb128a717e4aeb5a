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

// Package govern defines the types that describe the condition of an
// emulation. The State type is the set of flags controlling whether the
// emulation worker runs instructions. The Interrupt type is the wait
// condition of the emulated machine itself.
//
// State is shared between the host and the worker with the Control type. The
// host sets and clears the Paused, Hidden and Bench flags. The worker sets
// Halted and Fatal when the machine reports an interrupt of Final or Error.
// The Control type guarantees that Halted and Fatal, once set, are never
// cleared.
package govern
