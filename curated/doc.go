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

// Package curated provides errors that are identified by the pattern they
// were created with rather than by a sentinel value.
//
// Curated errors are created with the Errorf() function, which takes a
// formatting pattern and placeholder values in the same way as fmt.Errorf().
// The pattern is stored alongside the values and can be tested for with Is()
// and Has():
//
//	const LoadError = "romloader: %v"
//
//	err := curated.Errorf(LoadError, io.EOF)
//
//	if curated.Is(err, LoadError) {
//		...
//	}
//
// Is() only tests the outermost error. Has() searches the chain of curated
// errors that were used as values in the creation of the error.
//
// The Error() implementation normalises the message chain. Message parts are
// separated by the sub-string ": " and adjacent duplicate parts are removed.
// This means a package can wrap an error with its own prefix without worrying
// whether the lower level has already added the same prefix:
//
//	worker: worker: fatal error
//
// is printed as:
//
//	worker: fatal error
//
// Curated errors also implement Unwrap() so that the functions in the errors
// package of the standard library continue to work on wrapped standard
// errors. For example, errors.Is(err, os.ErrNotExist) will be true for a
// curated error created with an *os.PathError value.
//
// Patterns should be stored as exported string constants in the package that
// creates the error, suitably named and commented.
package curated
