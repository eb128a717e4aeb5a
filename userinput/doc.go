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

// Package userinput handles input from the keyboard that the user of the
// emulator is using to control the emulated machine.
//
// It is a translation layer between the GUI and the emulated machine. The GUI
// records key events in a Device, using Scancode values. The emulated machine
// describes its keys with a table of Mapping values and receives the state of
// those keys each frame as a Keys value, including which keys were pressed and
// released since the previous frame.
//
// The GUI implementation in use during development was SDL and so the
// Scancode values are the same as the SDL scancodes.
package userinput
