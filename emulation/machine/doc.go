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

// Package machine defines the capabilities of an emulated machine as seen by
// the emulation worker, and a Registry used to choose a machine for a
// program.
//
// The capabilities are split into small interfaces. Steppable is the minimum
// required to run the machine. AudioProducer and VideoProducer write the
// output of the machine into the buffers in the environment. Persistent and
// PermanentRegisters are optional and are discovered with a type assertion.
//
// A machine is selected by the Registry.Sniff() function. Each registered
// Descriptor is asked whether it accepts the program. The first Descriptor to
// accept the program is returned.
package machine
