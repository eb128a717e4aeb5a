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

// Package paths prepares paths to the resources used by the emulator. The
// Home type decides where the base resource directory is. In order of
// priority:
//
//	an explicit directory given by the user
//	a directory called ".framechip" in the current working directory, if
//	portable mode is requested or the directory already exists
//	a directory called "framechip" in the user's config directory
//
// For example, on a modern Linux system with no override and no portable
// directory, the following
//
//	h.ResourcePath("chip8", "saves")
//
// returns
//
//	/home/user/.config/framechip/chip8/saves
//
// Directories are created on demand with user-only permissions.
package paths
