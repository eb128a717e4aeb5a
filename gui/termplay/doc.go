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

// Package termplay is a terminal frontend for an emulation.Emulation. Video
// is drawn with half-block characters and 24 bit colour escape sequences, two
// emulated rows to each line of the terminal. Frames wider than the terminal
// are sampled to fit.
//
// Terminals do not report key releases so a key is released after it has not
// been seen for a short time. Key repeat from the terminal keeps the key held.
//
// There is no audio output in the terminal but the audio can be recorded with
// a wavwriter.
package termplay
