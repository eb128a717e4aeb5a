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

package romloader

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/framechip/framechip/curated"
)

// Sentinal error patterns.
const (
	LoadError   = "romloader: %v"
	HashError   = "romloader: unexpected hash value (%s)"
	SchemeError = "romloader: unsupported URL scheme (%s)"
	SizeError   = "romloader: file too large (%d bytes)"
)

// MaxSize is the largest file that will be loaded.
const MaxSize = 1 << 20

// timeout for HTTP requests
const httpTimeout = 10 * time.Second

// Loader is used to specify the program to load into the emulated machine.
type Loader struct {
	// filename or URL of the program
	Filename string

	// system hint. AutoKind means the registry should decide
	Kind string

	// expected hash of the loaded data. the empty string indicates that the
	// hash is unknown and need not be validated. after a successful load the
	// value will be the hash of the loaded data
	Hash string

	// copy of the loaded data
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
// The Kind field is set from the file extension.
func NewLoader(filename string) Loader {
	ld := Loader{
		Filename: filename,
	}
	ld.Kind = kindFromExtension(ld.Extension())
	return ld
}

// basename returns the final element of the filename. the path of a URL is
// used rather than the whole URL
func (ld Loader) basename() string {
	n := ld.Filename
	if u, err := url.Parse(ld.Filename); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		n = u.Path
	}
	return filepath.Base(n)
}

// ShortName returns a shortened version of the Loader filename.
func (ld Loader) ShortName() string {
	n := ld.basename()
	return strings.TrimSuffix(n, filepath.Ext(n))
}

// Extension returns the file extension of the filename, including the
// leading dot.
func (ld Loader) Extension() string {
	return filepath.Ext(ld.basename())
}

// HasLoaded returns true if Load() has been successfully called.
func (ld Loader) HasLoaded() bool {
	return len(ld.Data) > 0
}

// Size returns the number of bytes loaded.
func (ld Loader) Size() int {
	return len(ld.Data)
}

// Load the program data. Filenames with a URL scheme will use that method to
// load the data. Currently supported schemes are HTTP, HTTPS and local files.
// Calling Load() on a Loader that has already loaded is not an error and the
// data is not reloaded.
func (ld *Loader) Load() error {
	if ld.HasLoaded() {
		return nil
	}

	scheme := "file"
	if u, err := url.Parse(ld.Filename); err == nil && u.Scheme != "" {
		scheme = strings.ToLower(u.Scheme)

		// single letter scheme is a windows drive letter
		if len(scheme) == 1 {
			scheme = "file"
		}
	}

	var data []byte
	var err error

	switch scheme {
	case "http", "https":
		data, err = loadHTTP(ld.Filename)
	case "file":
		data, err = loadFile(strings.TrimPrefix(ld.Filename, "file://"))
	default:
		return curated.Errorf(SchemeError, scheme)
	}
	if err != nil {
		return err
	}

	if len(data) == 0 {
		return curated.Errorf(LoadError, "empty file")
	}

	hash := fmt.Sprintf("%x", sha1.Sum(data))
	if ld.Hash != "" && ld.Hash != hash {
		return curated.Errorf(HashError, hash)
	}

	ld.Hash = hash
	ld.Data = data

	return nil
}

func loadFile(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf(LoadError, err)
	}
	defer f.Close()

	return readLimited(f)
}

func loadHTTP(filename string) ([]byte, error) {
	client := http.Client{Timeout: httpTimeout}

	resp, err := client.Get(filename)
	if err != nil {
		return nil, curated.Errorf(LoadError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, curated.Errorf(LoadError, resp.Status)
	}

	return readLimited(resp.Body)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return nil, curated.Errorf(LoadError, err)
	}
	if len(data) > MaxSize {
		return nil, curated.Errorf(SizeError, len(data))
	}
	return data, nil
}
