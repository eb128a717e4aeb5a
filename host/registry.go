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

package host

import (
	"github.com/framechip/framechip/emulation/machine"
	"github.com/framechip/framechip/hardware/chip8"
)

// NewRegistry returns a machine registry with every supported system
// registered.
func NewRegistry() *machine.Registry {
	r := machine.NewRegistry()
	if err := r.Register(chip8.Descriptor()); err != nil {
		panic(err)
	}
	return r
}
