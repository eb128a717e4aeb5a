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

// Package triplebuffer passes fixed size frames between the emulation
// goroutine and a presentation goroutine without either side waiting for the
// other.
//
// Three buffers are used. The producer writes into the work buffer. The
// consumer copies out of the read buffer. The third buffer sits in the swap
// slot. When the producer finishes a frame it exchanges the work buffer with
// the swap slot and marks the slot as fresh. When the consumer wants a frame
// it checks the slot and, if it is fresh, exchanges its read buffer with the
// slot. Both exchanges are a single atomic operation on an index so a frame is
// never seen half written.
//
// The producer never waits for the consumer. If the consumer is slow then
// frames are overwritten in the swap slot. The consumer never waits for the
// producer. If the producer is slow the consumer sees the previous frame
// again.
//
// The dimensions of the frame are published separately from the contents.
// Producers that change resolution should Resize() the buffer and then
// SetDimensions(). A consumer may see the new dimensions with an old frame for
// at most one exchange and should size its copy by the number of elements
// returned by Read().
package triplebuffer
