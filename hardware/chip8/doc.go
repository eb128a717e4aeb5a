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

// Package chip8 emulates the CHIP-8 virtual machine as found on the COSMAC
// VIP and the SUPER-CHIP extension as found on the HP48 calculators.
//
// The two variants differ in a number of small ways, commonly referred to as
// quirks. The chip8 variant:
//
//	resets VF after the logical instructions 8XY1, 8XY2 and 8XY3
//	increments I after FX55 and FX65
//	waits for the start of the next frame after drawing a sprite
//	shifts VY rather than VX with 8XY6 and 8XYE
//	jumps to NNN plus V0 with BNNN
//	beeps briefly after a key is pressed during FX0A
//
// The schip variant does none of these things. Instead it adds the high
// resolution mode (128 by 64 pixels), scrolling, 16 by 16 sprites, a large
// font, the RPL user flags and the exit instruction.
//
// The Machine type satisfies the machine.Machine interface and is also
// machine.Persistent and machine.PermanentRegisters. The RPL flags are the
// permanent registers.
package chip8
