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

// Package savestate stores fixed size blobs of machine data on disk. Blobs are
// keyed by the SHA1 hash of the program and by kind. A savestate is of kind
// KindState and the permanent registers of a machine are of kind KindPerm.
//
// Files are named <sha1>.<kind> and are written wholesale. A blob that is not
// of the size expected by the machine is never loaded.
package savestate
