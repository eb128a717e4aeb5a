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

// Package host is the top level of the emulator. It owns the emulation worker
// and reacts to events from the frontend by starting, stopping, pausing,
// hiding or replacing it.
//
// The Controller type implements the emulation.Emulation interface. Only one
// goroutine should call the Controller's functions. For frontends using SDL
// that will be the main thread.
//
// Loading a program stops any existing worker only after the new machine has
// been created successfully. A program that fails to load therefore leaves
// the existing emulation running.
//
// The permanent registers of a machine, if it has any, are restored when the
// program is loaded and saved when the worker is stopped. If the resume
// preference is set then the savestate of the machine is treated the same
// way.
package host
