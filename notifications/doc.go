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

// Package notifications allow communication from the emulation worker to the
// host. The host uses the notifications to update the presentation, for
// example the window title when the program halts.
//
// Notifications are sent from the worker goroutine and so the implementation
// of the Notify interface must be safe to call from any goroutine and must
// not block.
package notifications
