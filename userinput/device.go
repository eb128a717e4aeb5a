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

package userinput

import "sync"

// Device is a source of key states. The emulation calls UpdateStates() once
// per frame, before any calls to AreAnyHeld(). The result of AreAnyHeld() must
// not change until the next call to UpdateStates().
type Device interface {
	UpdateStates()
	AreAnyHeld(keys ...Scancode) bool
}

// SharedKeyboard is a Device that is written to by the goroutine receiving
// key events from the GUI and read by the emulation goroutine.
//
// Key events are recorded with Press(). The emulation sees the recorded
// state only after it calls UpdateStates(), so the state is consistent for
// the duration of an emulated frame.
type SharedKeyboard struct {
	crit    sync.Mutex
	pending [NumScancodes]bool

	// only accessed by the emulation goroutine
	snapshot [NumScancodes]bool
}

// NewSharedKeyboard is the preferred method of initialisation for the
// SharedKeyboard type.
func NewSharedKeyboard() *SharedKeyboard {
	return &SharedKeyboard{}
}

// Press records whether the key is down or up. Scancodes outside of the
// range of the keyboard are ignored.
func (kb *SharedKeyboard) Press(key Scancode, down bool) {
	if key >= NumScancodes {
		return
	}
	kb.crit.Lock()
	defer kb.crit.Unlock()
	kb.pending[key] = down
}

// IsPressed returns the pending state of the key as recorded by Press(). It
// is intended for the GUI goroutine.
func (kb *SharedKeyboard) IsPressed(key Scancode) bool {
	if key >= NumScancodes {
		return false
	}
	kb.crit.Lock()
	defer kb.crit.Unlock()
	return kb.pending[key]
}

// ReleaseAll records all keys as being up. Useful when the window loses
// focus and key up events will not be received.
func (kb *SharedKeyboard) ReleaseAll() {
	kb.crit.Lock()
	defer kb.crit.Unlock()
	clear(kb.pending[:])
}

// UpdateStates implements the Device interface.
func (kb *SharedKeyboard) UpdateStates() {
	kb.crit.Lock()
	defer kb.crit.Unlock()
	kb.snapshot = kb.pending
}

// AreAnyHeld implements the Device interface.
func (kb *SharedKeyboard) AreAnyHeld(keys ...Scancode) bool {
	for _, k := range keys {
		if k != ScancodeUnknown && k < NumScancodes && kb.snapshot[k] {
			return true
		}
	}
	return false
}
