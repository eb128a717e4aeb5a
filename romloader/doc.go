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

// Package romloader is used to specify the program that is to be loaded into
// the emulated machine.
//
// A Loader is created with NewLoader() and the data read with Load(). The
// data can come from a local file or from a HTTP/HTTPS URL. The SHA1 hash of
// the data is recorded by Load() and is used by the savestate package to key
// persisted state.
//
// The Kind field is a hint to the machine registry as to which system the
// data is for. It is set from the file extension.
package romloader
