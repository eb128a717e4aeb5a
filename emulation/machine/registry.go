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

package machine

import (
	"strings"
	"sync"

	"github.com/framechip/framechip/curated"
	"github.com/framechip/framechip/environment"
	"github.com/framechip/framechip/romloader"
)

// Sentinal error patterns.
const (
	UnknownSystem   = "machine: no system accepts %s"
	DuplicateSystem = "machine: system already registered (%s)"
	BadDescriptor   = "machine: bad descriptor: %s"
)

// Descriptor describes a system that can be created by the Registry.
type Descriptor struct {
	// name of the system
	System string

	// the romloader.Loader Kind values that select this system without any
	// other checks
	Kinds []string

	// file extensions (including the leading dot) accepted by the system.
	// case is not important
	Extensions []string

	// the largest program accepted by the system. zero means no limit
	MaxSize int

	// optional check of the loaded data. called after the extension and size
	// checks have passed
	Accepts func(ld romloader.Loader) bool

	// create a new machine with the program loaded. the loader will have
	// been loaded
	Create func(env *environment.Environment, ld romloader.Loader) (Machine, error)
}

func (d Descriptor) hasKind(kind string) bool {
	for _, k := range d.Kinds {
		if strings.EqualFold(k, kind) {
			return true
		}
	}
	return false
}

func (d Descriptor) accepts(ld romloader.Loader) bool {
	if d.MaxSize > 0 && ld.Size() > d.MaxSize {
		return false
	}

	if d.hasKind(ld.Kind) {
		return true
	}

	ext := ld.Extension()
	match := false
	for _, e := range d.Extensions {
		if strings.EqualFold(e, ext) {
			match = true
			break
		}
	}
	if !match {
		return false
	}

	if d.Accepts != nil {
		return d.Accepts(ld)
	}

	return true
}

// Registry is the list of systems that can be created. Safe for concurrent
// use.
type Registry struct {
	crit  sync.Mutex
	descs []Descriptor
}

// NewRegistry is the preferred method of initialisation for the Registry
// type.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds the descriptor to the registry. Descriptors are consulted by
// Sniff() in the order in which they were registered.
func (r *Registry) Register(d Descriptor) error {
	if d.System == "" {
		return curated.Errorf(BadDescriptor, "no system name")
	}
	if d.Create == nil {
		return curated.Errorf(BadDescriptor, "no create function")
	}

	r.crit.Lock()
	defer r.crit.Unlock()

	for _, e := range r.descs {
		if e.System == d.System {
			return curated.Errorf(DuplicateSystem, d.System)
		}
	}
	r.descs = append(r.descs, d)

	return nil
}

// Systems returns the names of all registered systems.
func (r *Registry) Systems() []string {
	r.crit.Lock()
	defer r.crit.Unlock()

	s := make([]string, len(r.descs))
	for i, d := range r.descs {
		s[i] = d.System
	}
	return s
}

// Sniff returns the descriptor of the first system to accept the program.
// The loader must have been loaded.
func (r *Registry) Sniff(ld romloader.Loader) (Descriptor, error) {
	if !ld.HasLoaded() {
		return Descriptor{}, curated.Errorf(UnknownSystem, "program that has not been loaded")
	}

	r.crit.Lock()
	defer r.crit.Unlock()

	for _, d := range r.descs {
		if d.accepts(ld) {
			return d, nil
		}
	}

	return Descriptor{}, curated.Errorf(UnknownSystem, ld.ShortName())
}
