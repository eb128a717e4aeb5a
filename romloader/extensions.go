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

package romloader

import "strings"

// AutoKind indicates that the machine registry should decide which system to
// use.
const AutoKind = "AUTO"

// FileExtensions is the list of file extensions that are recognised by the
// romloader package.
var FileExtensions = [...]string{".CH8", ".C8", ".SC8", ".XO8", ".BIN", ".ROM"}

// kindFromExtension returns the system kind for the file extension. The
// extension should include the leading dot. Case is not important.
func kindFromExtension(ext string) string {
	switch strings.ToUpper(ext) {
	case ".CH8", ".C8":
		return "chip8"
	case ".SC8":
		return "schip"
	}
	return AutoKind
}

// IsSupportedExtension returns true if the file extension is in the
// FileExtensions list.
func IsSupportedExtension(ext string) bool {
	ext = strings.ToUpper(ext)
	for _, e := range FileExtensions {
		if e == ext {
			return true
		}
	}
	return false
}
