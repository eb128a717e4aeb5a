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

// Package test contains helper functions to remove common boilerplate from
// tests.
//
// The Expect functions report a failure with t.Errorf() and allow the test to
// continue. The Demand functions report a failure with t.Fatalf() and should
// be used when later parts of the test depend on the value being correct.
//
// ExpectSuccess() and ExpectFailure() interpret the value according to its
// type:
//
//	bool -> true is success
//	error -> nil is success
//	nil -> success
//
// Note that the untyped nil is always considered a success. This is because of
// how errors are usually returned, with nil meaning no error.
//
// All Expect and Demand functions accept optional tags which are prefixed to
// the failure message. This is useful in table driven tests, where the tag
// can identify which entry of the table failed.
//
// The RingWriter, CappedWriter and CompareWriter types implement io.Writer
// and are used to capture output for comparison.
package test
