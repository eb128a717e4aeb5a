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

package savestate

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/framechip/framechip/curated"
)

// Kind is the type of data stored in a blob.
type Kind string

// List of valid kinds.
const (
	KindState Kind = "state"
	KindPerm  Kind = "perm"
)

// Sentinal error patterns.
const (
	StoreError = "savestate: %v"
	NotFound   = "savestate: not found (%s)"
	WrongSize  = "savestate: wrong size (%d bytes, expected %d)"
	Disabled   = "savestate: store is disabled"
)

// Store is a directory of blobs.
type Store struct {
	dir string
}

// NewStore is the preferred method of initialisation for the Store type. The
// directory must already exist. An empty directory creates a disabled store.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return &Store{}, nil
	}

	fi, err := os.Stat(dir)
	if err != nil {
		return &Store{}, curated.Errorf(StoreError, err)
	}
	if !fi.IsDir() {
		return &Store{}, curated.Errorf(StoreError, fmt.Sprintf("not a directory (%s)", dir))
	}

	return &Store{dir: dir}, nil
}

// Enabled returns false if the store has no directory.
func (s *Store) Enabled() bool {
	return s.dir != ""
}

// Dir returns the directory of the store.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) filename(kind Kind, hash string) (string, error) {
	if s.dir == "" {
		return "", curated.Errorf(Disabled)
	}

	switch kind {
	case KindState, KindPerm:
	default:
		return "", curated.Errorf(StoreError, fmt.Sprintf("unknown kind (%s)", kind))
	}

	// the hash is used as part of the filename so it must be exactly what we
	// expect
	b, err := hex.DecodeString(hash)
	if err != nil || len(b) != 20 {
		return "", curated.Errorf(StoreError, fmt.Sprintf("not a sha1 hash (%s)", hash))
	}

	return filepath.Join(s.dir, fmt.Sprintf("%s.%s", hash, kind)), nil
}

// Save the blob. Any existing blob of the same kind and hash is replaced.
// The file is written to a temporary file first so that an interrupted save
// does not destroy a previous save.
func (s *Store) Save(kind Kind, hash string, blob []byte) error {
	fn, err := s.filename(kind, hash)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(s.dir, ".save-*")
	if err != nil {
		return curated.Errorf(StoreError, err)
	}
	tmp := f.Name()

	_, err = f.Write(blob)
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return curated.Errorf(StoreError, err)
	}

	if err := os.Rename(tmp, fn); err != nil {
		_ = os.Remove(tmp)
		return curated.Errorf(StoreError, err)
	}

	return nil
}

// Load the blob of the kind and hash. The blob must be exactly size bytes.
func (s *Store) Load(kind Kind, hash string, size int) ([]byte, error) {
	fn, err := s.filename(kind, hash)
	if err != nil {
		return nil, err
	}

	fi, err := os.Stat(fn)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, curated.Errorf(NotFound, filepath.Base(fn))
		}
		return nil, curated.Errorf(StoreError, err)
	}
	if fi.Size() != int64(size) {
		return nil, curated.Errorf(WrongSize, fi.Size(), size)
	}

	data, err := os.ReadFile(fn)
	if err != nil {
		return nil, curated.Errorf(StoreError, err)
	}
	if len(data) != size {
		return nil, curated.Errorf(WrongSize, len(data), size)
	}

	return data, nil
}

// Exists returns true if there is a blob of the kind and hash.
func (s *Store) Exists(kind Kind, hash string) bool {
	fn, err := s.filename(kind, hash)
	if err != nil {
		return false
	}
	_, err = os.Stat(fn)
	return err == nil
}
