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

// Package sdlplay is a simple SDL frontend for an emulation.Emulation. It
// opens a single window showing the video output scaled to fit, and plays the
// audio output through an SDL queued audio device.
//
// Keyboard events are forwarded to the emulation using their SDL scancodes,
// which are the same as the userinput.Scancode values. Files dropped onto the
// window replace the running program. Minimising the window hides the
// emulation, which stops the emulation from running until the window is
// restored.
//
// All functions in this package MUST ONLY be called from the #mainthread.
package sdlplay
