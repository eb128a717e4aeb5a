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
	"image/color"
	"strconv"
	"strings"

	"github.com/framechip/framechip/curated"
	"golang.org/x/image/colornames"
)

// the palette preference is stored as "background,foreground". each colour
// is either an SVG colour name or a hex value of the form #rrggbb
func (p *Preferences) setPalette(v string) error {
	if strings.TrimSpace(v) == "" {
		v = DefaultPalette
	}

	bgs, fgs, ok := strings.Cut(v, ",")
	if !ok {
		return curated.Errorf(ValueError, fmt.Sprintf("palette needs two colours (%s)", v))
	}

	bg, err := parseColour(bgs)
	if err != nil {
		return err
	}
	fg, err := parseColour(fgs)
	if err != nil {
		return err
	}

	p.colours.Store(uint64(ARGB(bg))<<32 | uint64(ARGB(fg)))
	return nil
}

func (p *Preferences) getPalette() string {
	bg, fg := p.Colours()
	return fmt.Sprintf("%s,%s", colourName(bg), colourName(fg))
}

// Colours returns the background and foreground colours of the display as
// ARGB8888 values.
func (p *Preferences) Colours() (uint32, uint32) {
	c := p.colours.Load()
	return uint32(c >> 32), uint32(c)
}

// ARGB converts the colour to the ARGB8888 format used by the video buffer.
func ARGB(c color.RGBA) uint32 {
	return 0xff000000 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func parseColour(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if h, ok := strings.CutPrefix(s, "#"); ok {
		v, err := strconv.ParseUint(h, 16, 32)
		if err != nil || len(h) != 6 {
			return color.RGBA{}, curated.Errorf(ValueError, fmt.Sprintf("bad colour (%s)", s))
		}
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	}

	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}

	return color.RGBA{}, curated.Errorf(ValueError, fmt.Sprintf("unknown colour (%s)", s))
}

// the colour written to the preferences file. a name is preferred if one
// exists for the colour
func colourName(argb uint32) string {
	for _, n := range colornames.Names {
		if ARGB(colornames.Map[n]) == argb {
			return n
		}
	}
	return fmt.Sprintf("#%06x", argb&0x00ffffff)
}
