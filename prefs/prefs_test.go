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

package prefs_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/framechip/framechip/curated"
	"github.com/framechip/framechip/prefs"
	"github.com/framechip/framechip/test"
)

func tmpPrefsFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "framechip_prefs_test")
}

func cmpPrefsFile(t *testing.T, fn string, expected string) {
	t.Helper()

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)

	expected = fmt.Sprintf("%s\n%s", prefs.WarningBoilerPlate, expected)
	if expected != string(data) {
		t.Errorf("expected data and data in prefs file do not match\nexpected:\n%s\nin file:\n%s", expected, string(data))
	}
}

func TestBool(t *testing.T) {
	fn := tmpPrefsFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v, w, x prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, dsk.Add("testB", &w))
	test.ExpectSuccess(t, dsk.Add("testC", &x))

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, w.Set("foo"))
	test.ExpectSuccess(t, x.Set("TRUE"))

	test.DemandSuccess(t, dsk.Save())
	cmpPrefsFile(t, fn, "test :: true\ntestB :: false\ntestC :: true\n")

	test.ExpectFailure(t, v.Set(1))
}

func TestString(t *testing.T) {
	fn := tmpPrefsFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.String
	test.ExpectSuccess(t, dsk.Add("foo", &v))
	test.ExpectSuccess(t, v.Set("bar"))

	test.DemandSuccess(t, dsk.Save())
	cmpPrefsFile(t, fn, "foo :: bar\n")
}

func TestInt(t *testing.T) {
	fn := tmpPrefsFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v, w prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &v))
	test.ExpectSuccess(t, dsk.Add("numberB", &w))

	test.ExpectSuccess(t, v.Set(10))
	test.ExpectSuccess(t, w.Set("99"))

	test.DemandSuccess(t, dsk.Save())
	cmpPrefsFile(t, fn, "number :: 10\nnumberB :: 99\n")

	test.ExpectFailure(t, v.Set("---"))
	test.ExpectFailure(t, v.Set(1.0))
	test.ExpectEquality(t, v.Get().(int), 10)
}

func TestFloat(t *testing.T) {
	fn := tmpPrefsFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Float
	test.ExpectSuccess(t, dsk.Add("volume", &v))
	test.ExpectSuccess(t, v.Set("0.25"))
	test.ExpectEquality(t, v.Get().(float64), 0.25)

	test.DemandSuccess(t, dsk.Save())
	cmpPrefsFile(t, fn, "volume :: 0.250\n")

	test.ExpectSuccess(t, v.Set(1))
	test.ExpectEquality(t, v.Get().(float64), 1.0)
	test.ExpectFailure(t, v.Set(true))
}

func TestGeneric(t *testing.T) {
	fn := tmpPrefsFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var w, h int

	v := prefs.NewGeneric(
		func(s string) error {
			_, err := fmt.Sscanf(s, "%d,%d", &w, &h)
			return err
		},
		func() string {
			return fmt.Sprintf("%d,%d", w, h)
		},
	)
	test.ExpectSuccess(t, dsk.Add("generic", v))

	w = 1
	h = 2
	test.DemandSuccess(t, dsk.Save())
	cmpPrefsFile(t, fn, "generic :: 1,2\n")

	w = 0
	h = 0
	test.DemandSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, w, 1)
	test.ExpectEquality(t, h, 2)
}

// write a bool and then a string from a different prefs.Disk instance. the
// second save must not clobber the results of the first
func TestBoolAndString(t *testing.T) {
	fn := tmpPrefsFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, v.Set(true))
	test.DemandSuccess(t, dsk.Save())

	dsk, err = prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("foo", &s))
	test.ExpectSuccess(t, s.Set("bar"))
	test.DemandSuccess(t, dsk.Save())

	cmpPrefsFile(t, fn, "foo :: bar\ntest :: true\n")
}

func TestMaxStringLength(t *testing.T) {
	var s prefs.String
	test.ExpectSuccess(t, s.Set("123456789"))
	test.ExpectEquality(t, s.String(), "123456789")

	// setting maximum length will crop the existing string
	s.SetMaxLen(5)
	test.ExpectEquality(t, s.String(), "12345")

	// removing the maximum length does not restore the cropped information
	s.SetMaxLen(0)
	test.ExpectEquality(t, s.String(), "12345")

	s.SetMaxLen(3)
	test.ExpectSuccess(t, s.Set("abcdefghi"))
	test.ExpectEquality(t, s.String(), "abc")
}

func TestLoadMissingFile(t *testing.T) {
	fn := tmpPrefsFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Int
	test.ExpectSuccess(t, v.Set(7))
	test.ExpectSuccess(t, dsk.Add("number", &v))

	err = dsk.Load(false)
	test.ExpectSuccess(t, curated.Is(err, prefs.NoPrefsFile))
	test.ExpectEquality(t, v.Get().(int), 7)

	_, err = prefs.NewDisk("")
	test.ExpectFailure(t, err)
}

func TestBadKeys(t *testing.T) {
	dsk, err := prefs.NewDisk(tmpPrefsFile(t))
	test.DemandSuccess(t, err)

	var v prefs.Bool
	test.ExpectFailure(t, dsk.Add("", &v))
	test.ExpectFailure(t, dsk.Add("a :: b", &v))
	test.ExpectFailure(t, dsk.Add("a\nb", &v))
	test.ExpectSuccess(t, dsk.Add("ok", &v))
	test.ExpectFailure(t, dsk.Add("ok", &v))
}

func TestHooks(t *testing.T) {
	var v prefs.Int
	var seen []int

	v.SetHookPre(func(nv prefs.Value) error {
		if nv.(int) < 0 {
			return fmt.Errorf("negative")
		}
		return nil
	})
	v.SetHookPost(func(nv prefs.Value) error {
		seen = append(seen, nv.(int))
		return nil
	})

	test.ExpectSuccess(t, v.Set(3))
	test.ExpectFailure(t, v.Set(-1))
	test.ExpectEquality(t, v.Get().(int), 3)
	test.ExpectSuccess(t, v.Reset())
	test.DemandEquality(t, len(seen), 2)
	test.ExpectEquality(t, seen[0], 3)
	test.ExpectEquality(t, seen[1], 0)
}

func TestDefunctAndCommandLine(t *testing.T) {
	fn := tmpPrefsFile(t)

	content := fmt.Sprintf("%s\nframechip.limiter.fps :: 60\nother :: kept\nnumber :: 5\nnonsense\n", prefs.WarningBoilerPlate)
	test.DemandSuccess(t, os.WriteFile(fn, []byte(content), 0o600))

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var n prefs.Int
	var b prefs.Bool
	test.ExpectSuccess(t, dsk.Add("number", &n))
	test.ExpectSuccess(t, dsk.Add("flag", &b))

	prefs.PushCommandLineStack("flag::true")
	defer prefs.PopCommandLineStack()

	test.DemandSuccess(t, dsk.Load(true))
	test.ExpectEquality(t, n.Get().(int), 5)
	test.ExpectEquality(t, b.Get().(bool), true)

	// command line value has been consumed
	ok, _ := prefs.GetCommandLinePref("flag")
	test.ExpectFailure(t, ok)

	// defunct key is dropped and unknown key is kept
	test.DemandSuccess(t, dsk.Save())
	cmpPrefsFile(t, fn, "flag :: true\nnumber :: 5\nother :: kept\n")

	test.ExpectEquality(t, dsk.String(), "flag :: true\nnumber :: 5\n")
	test.ExpectSuccess(t, dsk.Reset())
	test.ExpectEquality(t, n.Get().(int), 0)
}

func TestDiskErrors(t *testing.T) {
	fn := tmpPrefsFile(t)

	content := fmt.Sprintf("%s\nnumber :: not a number\n", prefs.WarningBoilerPlate)
	test.DemandSuccess(t, os.WriteFile(fn, []byte(content), 0o600))

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var n prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &n))

	// the key is named in the error
	err = dsk.Load(false)
	test.ExpectSuccess(t, curated.Is(err, prefs.BadValue), err)
	test.ExpectSuccess(t, strings.Contains(err.Error(), "number"), err)

	// the preferences file can not be created inside a file
	dsk, err = prefs.NewDisk(filepath.Join(fn, "prefs"))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, dsk.Add("number", &n))
	test.ExpectSuccess(t, curated.Is(dsk.Save(), prefs.PrefsError))
}
