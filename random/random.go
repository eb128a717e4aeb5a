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

package random

import (
	"math/rand"
	"time"
)

// Random is a random number generator for use by the emulated machine. The
// sequence of numbers is determined by the seed, so two instances with the
// same seed produce the same numbers.
type Random struct {
	rng  *rand.Rand
	seed int64

	// use zero seed rather than a time based seed. this is only really useful
	// for testing where random numbers must be predictable
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
// The generator is seeded from the current time.
func NewRandom() *Random {
	rnd := &Random{}
	rnd.Reseed(0)
	return rnd
}

// Reseed the generator. A seed of zero means seed from the current time,
// unless ZeroSeed is true.
func (rnd *Random) Reseed(seed int64) {
	if seed == 0 && !rnd.ZeroSeed {
		seed = time.Now().UnixNano()
	}
	rnd.seed = seed
	rnd.rng = rand.New(rand.NewSource(seed))
}

// Seed returns the value last used to seed the generator.
func (rnd *Random) Seed() int64 {
	return rnd.seed
}

// Intn returns a random number in the range 0 to n-1.
func (rnd *Random) Intn(n int) int {
	return rnd.rng.Intn(n)
}

// Byte returns a random byte.
func (rnd *Random) Byte() uint8 {
	return uint8(rnd.rng.Intn(256))
}
