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

package prefs

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/framechip/framechip/curated"
)

// DefaultPrefsFile is the default filename of the global preferences file.
const DefaultPrefsFile = "preferences"

// WarningBoilerPlate is the first line of every preferences file.
const WarningBoilerPlate = "*** do not edit this file while the emulator is running ***"

// Sentinal error patterns.
const (
	NoPrefsFile = "prefs: no prefs file (%s)"
	BadKey      = "prefs: bad key (%s)"
	BadValue    = "prefs: %s: %v"
	PrefsError  = "prefs: %v"
)

// the string that separates the key from the value in the preferences file.
const separator = " :: "

// Disk represents preference values as stored on disk. Values are added with
// Add(). Values from other Disk instances that use the same file are
// preserved by Save().
type Disk struct {
	crit    sync.Mutex
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	if path == "" {
		return nil, curated.Errorf(NoPrefsFile, "empty path")
	}
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Add preference value to list of values to store/load from Disk. The key
// argument must not contain the key/value separator or a newline.
func (dsk *Disk) Add(key string, p pref) error {
	if key == "" || strings.Contains(key, strings.TrimSpace(separator)) || strings.ContainsAny(key, "\n\r") {
		return curated.Errorf(BadKey, key)
	}

	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	if _, ok := dsk.entries[key]; ok {
		return curated.Errorf(BadKey, fmt.Sprintf("%s already added", key))
	}
	dsk.entries[key] = p

	return nil
}

// Path returns the location of the preferences file.
func (dsk *Disk) Path() string {
	return dsk.path
}

func (dsk *Disk) String() string {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	for _, k := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, separator, dsk.entries[k]))
	}
	return s.String()
}

// Reset all preferences in the Disk instance to their zero value. The
// preferences file is not changed.
func (dsk *Disk) Reset() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	for k, p := range dsk.entries {
		if err := p.Reset(); err != nil {
			return curated.Errorf(BadValue, k, err)
		}
	}
	return nil
}

// Save current preference values to disk. Entries in the file that are not
// part of this Disk instance are kept unless they are defunct.
func (dsk *Disk) Save() error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	entries, err := readFile(dsk.path)
	if err != nil && !curated.Is(err, NoPrefsFile) {
		return err
	}

	for k, p := range dsk.entries {
		entries[k] = p.String()
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		if !isDefunct(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	f, err := os.Create(dsk.path)
	if err != nil {
		return curated.Errorf(PrefsError, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, WarningBoilerPlate)
	for _, k := range keys {
		fmt.Fprintf(w, "%s%s%s\n", k, separator, entries[k])
	}

	if err := w.Flush(); err != nil {
		return curated.Errorf(PrefsError, err)
	}

	return nil
}

// Load preference values from disk. If applyCommandLine is true then any
// matching value on the top of the command line stack is used in preference
// to the value from the file. Command line values are applied even when the
// file does not exist, in which case the NoPrefsFile error is still returned.
func (dsk *Disk) Load(applyCommandLine bool) error {
	dsk.crit.Lock()
	defer dsk.crit.Unlock()

	entries, fileErr := readFile(dsk.path)
	if fileErr != nil && !curated.Is(fileErr, NoPrefsFile) {
		return fileErr
	}

	for k, p := range dsk.entries {
		if applyCommandLine {
			if ok, v := GetCommandLinePref(k); ok {
				if err := p.Set(v); err != nil {
					return curated.Errorf(BadValue, k, err)
				}
				continue
			}
		}
		if v, ok := entries[k]; ok {
			if err := p.Set(v); err != nil {
				return curated.Errorf(BadValue, k, err)
			}
		}
	}

	return fileErr
}

// readFile returns the key/value pairs in the preferences file. Lines that
// cannot be parsed are ignored.
func readFile(path string) (map[string]string, error) {
	entries := make(map[string]string)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return entries, curated.Errorf(NoPrefsFile, path)
		}
		return entries, curated.Errorf(PrefsError, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)

	// boilerplate line is not checked. a file without it is still a valid
	// preferences file
	first := true

	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			if line == WarningBoilerPlate {
				continue
			}
		}

		k, v, ok := strings.Cut(line, separator)
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" || isDefunct(k) {
			continue
		}
		entries[k] = strings.TrimSpace(v)
	}

	if err := scanner.Err(); err != nil {
		return entries, curated.Errorf(PrefsError, err)
	}

	return entries, nil
}
