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

package preferences

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/framechip/framechip/curated"
	"github.com/framechip/framechip/prefs"
)

// Sentinal error patterns.
const (
	ValueError = "preferences: %v"
)

// Machine variants supported by the chip8 package.
const (
	VariantCHIP8 = "chip8"
	VariantSCHIP = "schip"
)

// Limits and defaults of the machine preferences.
const (
	MinCPF = 1
	MaxCPF = 100000

	DefaultCPF     = 11
	DefaultVolume  = 0.5
	DefaultVariant = VariantCHIP8
	DefaultPalette = "black,lightgreen"
)

// Preferences defines and collates all the preference values used by the
// emulated machine.
type Preferences struct {
	dsk *prefs.Disk

	// the number of instructions executed per frame
	CPF prefs.Int

	// the machine variant to use when the program does not indicate which
	// variant it requires
	Variant prefs.String

	// output volume in the range 0.0 to 1.0
	Volume prefs.Float

	// path to a WAV or MP3 file to use instead of the square wave tone
	Buzzer prefs.String

	// the background and foreground colours of the display
	Palette *prefs.Generic

	// the palette as ARGB8888 values. the background in the upper 32 bits
	colours atomic.Uint64
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
	p.Palette = prefs.NewGeneric(p.setPalette, p.getPalette)
	p.SetDefaults()

	p.CPF.SetHookPre(func(v prefs.Value) error {
		if cpf := v.(int); cpf < MinCPF || cpf > MaxCPF {
			return curated.Errorf(ValueError, fmt.Sprintf("cpf must be between %d and %d", MinCPF, MaxCPF))
		}
		return nil
	})

	p.Variant.SetHookPre(func(v prefs.Value) error {
		switch strings.ToLower(v.(string)) {
		case VariantCHIP8, VariantSCHIP:
			return nil
		}
		return curated.Errorf(ValueError, fmt.Sprintf("unknown variant (%v)", v))
	})

	p.Volume.SetHookPre(func(v prefs.Value) error {
		if vol := v.(float64); vol < 0.0 || vol > 1.0 {
			return curated.Errorf(ValueError, "volume must be between 0.0 and 1.0")
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
	err = p.dsk.Add("framechip.chip8.cpf", &p.CPF)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("framechip.chip8.variant", &p.Variant)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("framechip.audio.volume", &p.Volume)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("framechip.audio.buzzer", &p.Buzzer)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("framechip.video.palette", p.Palette)
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

// SetDefaults reverts all machine preferences to their default values.
func (p *Preferences) SetDefaults() {
	_ = p.CPF.Set(DefaultCPF)
	_ = p.Variant.Set(DefaultVariant)
	_ = p.Volume.Set(DefaultVolume)
	_ = p.Buzzer.Set("")
	_ = p.Palette.Set(DefaultPalette)
}

// Load current machine preferences from disk.
func (p *Preferences) Load() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Load(false)
}

// Save current machine preferences to disk.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Save()
}
