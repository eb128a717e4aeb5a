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

package paths

import (
	"os"
	"path/filepath"

	"github.com/framechip/framechip/curated"
)

// the name of the base resource directory in the portable and user config
// locations.
const (
	portableDir = ".framechip"
	configDir   = "framechip"
)

// Sentinal error patterns.
const (
	NoHome     = "paths: cannot prepare home directory: %v"
	PathsError = "paths: %v"
)

// Options for NewHome().
type Options struct {
	// explicit base directory. takes priority over all other options
	Home string

	// explicit preferences file. if empty the preferences file is in the base
	// directory
	Config string

	// use a directory in the current working directory
	Portable bool
}

// Home is the base directory for all emulator resources.
type Home struct {
	base   string
	config string
}

// NewHome is the preferred method of initialisation for the Home type. The
// base directory is created if it does not exist.
func NewHome(opts Options) (*Home, error) {
	h := &Home{
		config: opts.Config,
	}

	switch {
	case opts.Home != "":
		h.base = opts.Home
	case opts.Portable:
		h.base = portableDir
	default:
		if _, err := os.Stat(portableDir); err == nil {
			h.base = portableDir
		} else {
			cnf, err := os.UserConfigDir()
			if err != nil {
				return nil, curated.Errorf(NoHome, err)
			}
			h.base = filepath.Join(cnf, configDir)
		}
	}

	if err := os.MkdirAll(h.base, 0o700); err != nil {
		return nil, curated.Errorf(NoHome, err)
	}

	return h, nil
}

// Base returns the base resource directory.
func (h *Home) Base() string {
	return h.base
}

// ConfigFile returns the path of the named file in the base directory,
// unless an explicit preferences file was given in the Options, in which case
// that is returned regardless of the name.
func (h *Home) ConfigFile(name string) string {
	if h.config != "" {
		return h.config
	}
	return filepath.Join(h.base, name)
}

// ResourcePath returns the path of the resource inside the base directory.
// The directory of the resource (everything except the final element) is
// created if necessary. Empty elements are ignored.
func (h *Home) ResourcePath(resource ...string) (string, error) {
	p := make([]string, 0, len(resource)+1)
	p = append(p, h.base)
	for _, r := range resource {
		if r != "" {
			p = append(p, r)
		}
	}

	pth := filepath.Join(p...)
	if len(p) > 1 {
		if err := os.MkdirAll(filepath.Dir(pth), 0o700); err != nil {
			return "", curated.Errorf(PathsError, err)
		}
	}

	return pth, nil
}

// SystemPath returns the persistent directory for the named system and
// optional subdirectory, creating it if necessary.
func (h *Home) SystemPath(system string, sub string) (string, error) {
	if system == "" {
		return "", curated.Errorf(PathsError, "empty system name")
	}

	pth := filepath.Join(h.base, system, sub)
	if err := os.MkdirAll(pth, 0o700); err != nil {
		return "", curated.Errorf(PathsError, err)
	}

	return pth, nil
}
