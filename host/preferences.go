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
	"fmt"

	"github.com/framechip/framechip/curated"
	"github.com/framechip/framechip/prefs"
)

// Limits and defaults of the host preferences.
const (
	MinScale     = 1
	MaxScale     = 32
	DefaultScale = 10
)

// Preferences defines and collates all the preference values used by the
// host and the frontends.
type Preferences struct {
	dsk *prefs.Disk

	// limiter policy
	DropFrames prefs.Bool
	SkipFirst  prefs.Bool

	// the size of one emulated pixel in the window
	Scale prefs.Int

	// save the state of the machine when it is stopped and restore it when
	// the same program is next loaded
	Resume prefs.Bool
}

func (p *Preferences) String() string {
	if p.dsk == nil {
		return ""
	}
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. If path is empty then the preferences are not connected
// to a file and Load() and Save() do nothing.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	p.Scale.SetHookPre(func(v prefs.Value) error {
		if s := v.(int); s < MinScale || s > MaxScale {
			return curated.Errorf(HostError, fmt.Sprintf("scale must be between %d and %d", MinScale, MaxScale))
		}
		return nil
	})

	if path == "" {
		return p, nil
	}

	var err error

	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("framechip.limiter.dropframes", &p.DropFrames)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("framechip.limiter.skipfirst", &p.SkipFirst)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("framechip.video.scale", &p.Scale)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("framechip.savestate.resume", &p.Resume)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load(true)
	if err != nil {
		// ignore missing prefs file errors
		if !curated.Is(err, prefs.NoPrefsFile) {
			return nil, err
		}
	}

	return p, nil
}

// SetDefaults reverts all host preferences to their default values.
func (p *Preferences) SetDefaults() {
	_ = p.DropFrames.Set(true)
	_ = p.SkipFirst.Set(true)
	_ = p.Scale.Set(DefaultScale)
	_ = p.Resume.Set(false)
}

// Load current host preferences from disk.
func (p *Preferences) Load() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Load(false)
}

// Save current host preferences to disk.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Save()
}
