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

import "math/bits"

// MaxKeys is the number of logical keys that a Keypad supports.
const MaxKeys = 32

// Mapping connects a logical key of the emulated machine to two physical
// keys. Either physical key will cause the logical key to be held.
type Mapping struct {
	Index     int
	Primary   Scancode
	Alternate Scancode
}

// Keys is the state of the logical keys for one frame. Each bit corresponds
// to the Index of a Mapping.
type Keys struct {
	// keys that are down
	Held uint32

	// keys that went down since the previous frame
	Pressed uint32

	// keys that went up since the previous frame
	Released uint32
}

// IsHeld returns true if the logical key is down.
func (k Keys) IsHeld(index int) bool {
	return index >= 0 && index < MaxKeys && k.Held&(1<<index) != 0
}

// IsPressed returns true if the logical key went down since the previous
// frame.
func (k Keys) IsPressed(index int) bool {
	return index >= 0 && index < MaxKeys && k.Pressed&(1<<index) != 0
}

// IsReleased returns true if the logical key went up since the previous
// frame.
func (k Keys) IsReleased(index int) bool {
	return index >= 0 && index < MaxKeys && k.Released&(1<<index) != 0
}

// FirstPressed returns the lowest numbered logical key that went down since
// the previous frame.
func (k Keys) FirstPressed() (int, bool) {
	if k.Pressed == 0 {
		return 0, false
	}
	return bits.TrailingZeros32(k.Pressed), true
}

// FirstReleased returns the lowest numbered logical key that went up since
// the previous frame.
func (k Keys) FirstReleased() (int, bool) {
	if k.Released == 0 {
		return 0, false
	}
	return bits.TrailingZeros32(k.Released), true
}

// Keypad translates the state of a Device into Keys using a mapping table.
type Keypad struct {
	table []Mapping
	keys  Keys
}

// NewKeypad is the preferred method of initialisation for the Keypad type.
// Entries in the table with an Index outside of the range 0 to MaxKeys-1 are
// ignored.
func NewKeypad(table []Mapping) *Keypad {
	kp := &Keypad{}
	for _, m := range table {
		if m.Index >= 0 && m.Index < MaxKeys {
			kp.table = append(kp.table, m)
		}
	}
	return kp
}

// Update refreshes the device and returns the new state of the logical keys.
// Should be called once per frame.
func (kp *Keypad) Update(dev Device) Keys {
	dev.UpdateStates()

	var held uint32
	for _, m := range kp.table {
		if dev.AreAnyHeld(m.Primary, m.Alternate) {
			held |= 1 << m.Index
		}
	}

	prev := kp.keys.Held
	kp.keys = Keys{
		Held:     held,
		Pressed:  held &^ prev,
		Released: prev &^ held,
	}

	return kp.keys
}

// Keys returns the result of the most recent call to Update().
func (kp *Keypad) Keys() Keys {
	return kp.keys
}

// Reset forgets the previous state. The next call to Update() will report
// all held keys as having been pressed.
func (kp *Keypad) Reset() {
	kp.keys = Keys{}
}
