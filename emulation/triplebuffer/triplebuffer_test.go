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

package triplebuffer_test

import (
	"slices"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/framechip/framechip/emulation/triplebuffer"
	"github.com/framechip/framechip/test"
)

func frame(v uint32, n int) []uint32 {
	f := make([]uint32, n)
	for i := range f {
		f[i] = v
	}
	return f
}

// only the most recent of several writes is seen by the reader
func TestMostRecentFrame(t *testing.T) {
	b := triplebuffer.NewBuffer[uint32](4)
	test.DemandEquality(t, b.Size(), 4)

	b.Write(frame(1, 4))
	b.Write(frame(2, 4))
	b.Write(frame(3, 4))

	dst := make([]uint32, 4)
	n, fresh := b.Read(dst)
	test.ExpectEquality(t, n, 4)
	test.ExpectSuccess(t, fresh)
	test.ExpectSuccess(t, slices.Equal(dst, []uint32{3, 3, 3, 3}))

	st := b.Stats()
	test.ExpectEquality(t, st.Written, uint64(3))
	test.ExpectEquality(t, st.Delivered, uint64(1))
	test.ExpectEquality(t, st.Overwritten, uint64(2))
}

// reading twice without a write returns the same frame
func TestRepeatedRead(t *testing.T) {
	b := triplebuffer.NewBuffer[uint32](4)
	b.Write([]uint32{1, 2, 3, 4})

	a := make([]uint32, 4)
	_, fresh := b.Read(a)
	test.ExpectSuccess(t, fresh)

	c := make([]uint32, 4)
	_, fresh = b.Read(c)
	test.ExpectFailure(t, fresh)
	test.ExpectSuccess(t, slices.Equal(a, c))

	test.ExpectSuccess(t, slices.Equal(b.Copy(4), a))
	test.ExpectSuccess(t, slices.Equal(b.Copy(2), []uint32{1, 2}))
	test.ExpectEquality(t, len(b.Copy(10)), 4)
	test.ExpectEquality(t, len(b.Copy(0)), 0)
}

// reading before anything has been written returns a zeroed frame
func TestReadBeforeWrite(t *testing.T) {
	b := triplebuffer.NewBuffer[uint32](4)
	dst := frame(9, 4)
	n, fresh := b.Read(dst)
	test.ExpectEquality(t, n, 4)
	test.ExpectFailure(t, fresh)
	test.ExpectSuccess(t, slices.Equal(dst, frame(0, 4)))
}

func TestShortAndLongSource(t *testing.T) {
	b := triplebuffer.NewBuffer[uint32](4)
	dst := make([]uint32, 4)

	b.Write([]uint32{1, 2, 3, 4, 5, 6})
	b.Read(dst)
	test.ExpectSuccess(t, slices.Equal(dst, []uint32{1, 2, 3, 4}))

	// the remainder of a short frame is zeroed and is not left over from
	// an older frame
	b.Write([]uint32{7, 7, 7, 7})
	b.Write([]uint32{8, 8})
	b.Write([]uint32{5})
	b.Read(dst)
	test.ExpectSuccess(t, slices.Equal(dst, []uint32{5, 0, 0, 0}))
}

func TestWriteTransform(t *testing.T) {
	b := triplebuffer.NewBuffer[uint32](3)
	b.WriteTransform([]uint32{1, 2, 3}, func(v uint32) uint32 {
		return v * 10
	})
	test.ExpectSuccess(t, slices.Equal(b.Copy(3), []uint32{10, 20, 30}))

	b.WriteFunc(func(work []uint32) {
		test.ExpectEquality(t, len(work), 3)
		for i := range work {
			work[i] = uint32(i)
		}
	})
	test.ExpectSuccess(t, slices.Equal(b.Copy(3), []uint32{0, 1, 2}))
}

func TestZeroSize(t *testing.T) {
	for _, sz := range []int{0, -1, triplebuffer.MaxSize + 1} {
		b := triplebuffer.NewBuffer[uint32](sz)
		test.ExpectEquality(t, b.Size(), 0, sz)

		// functions are safe to call on an unusable buffer
		b.Write([]uint32{1})
		b.WriteFunc(func([]uint32) {
			t.Errorf("fill function should not be called for an unusable buffer")
		})
		n, fresh := b.Read(make([]uint32, 1))
		test.ExpectEquality(t, n, 0, sz)
		test.ExpectFailure(t, fresh, sz)
		test.ExpectEquality(t, len(b.Copy(1)), 0, sz)
	}

	b := triplebuffer.NewBufferWithDimensions[uint32](-1, 10)
	test.ExpectEquality(t, b.Size(), 0)

	b = triplebuffer.NewBuffer[uint32](4)
	test.ExpectFailure(t, b.Resize(-5))
	test.ExpectEquality(t, b.Size(), 0)
	test.ExpectSuccess(t, b.Resize(4))
	test.ExpectEquality(t, b.Size(), 4)
}

func TestResize(t *testing.T) {
	b := triplebuffer.NewBuffer[uint32](8)
	b.Write([]uint32{1, 2, 3, 4, 5, 6, 7, 8})

	test.ExpectSuccess(t, b.Resize(4))
	test.DemandEquality(t, b.Size(), 4)

	// the unread frame from before the resize is gone
	dst := frame(9, 8)
	n, fresh := b.Read(dst)
	test.ExpectEquality(t, n, 4)
	test.ExpectFailure(t, fresh)
	test.ExpectSuccess(t, slices.Equal(dst[:4], frame(0, 4)))
	test.ExpectSuccess(t, slices.Equal(dst[4:], frame(9, 4)))

	b.Write([]uint32{1, 2, 3, 4, 5, 6, 7, 8})
	n, _ = b.Read(dst)
	test.ExpectEquality(t, n, 4)
	test.ExpectSuccess(t, slices.Equal(dst[:4], []uint32{1, 2, 3, 4}))

	test.ExpectSuccess(t, b.Resize(16))
	b.Write(frame(2, 16))
	n, _ = b.Read(make([]uint32, 16))
	test.ExpectEquality(t, n, 16)
}

func TestDimensions(t *testing.T) {
	b := triplebuffer.NewBufferWithDimensions[uint32](64, 32)
	test.ExpectEquality(t, b.Size(), 64*32)
	w, h := b.Dimensions()
	test.ExpectEquality(t, w, 64)
	test.ExpectEquality(t, h, 32)

	b.SetDimensions(128, 64)
	w, h = b.Dimensions()
	test.ExpectEquality(t, w, 128)
	test.ExpectEquality(t, h, 64)

	// dimensions are independent of the size
	test.ExpectEquality(t, b.Size(), 64*32)

	b = triplebuffer.NewBuffer[uint32](100)
	w, h = b.Dimensions()
	test.ExpectEquality(t, w, 100)
	test.ExpectEquality(t, h, 1)
}

// every frame seen by the reader must have been written by exactly one call
// to Write(). the frames are tagged with an increasing value so the reader can
// also check that it never goes backwards
func TestNoTearing(t *testing.T) {
	const frameSize = 4096
	const numFrames = 20000

	b := triplebuffer.NewBuffer[uint64](frameSize)

	var done atomic.Bool
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer done.Store(true)
		for v := uint64(1); v <= numFrames; v++ {
			b.WriteFunc(func(work []uint64) {
				for i := range work {
					work[i] = v
				}
			})
		}
	}()

	var torn, backwards, reads int
	dst := make([]uint64, frameSize)
	var last uint64
	for !done.Load() {
		b.Read(dst)
		reads++
		for _, v := range dst {
			if v != dst[0] {
				torn++
				break
			}
		}
		if dst[0] < last {
			backwards++
		}
		last = dst[0]
	}
	wg.Wait()

	// the final frame is always available after the writer has finished
	b.Read(dst)
	test.ExpectEquality(t, dst[0], uint64(numFrames))
	test.ExpectEquality(t, torn, 0)
	test.ExpectEquality(t, backwards, 0)
	test.ExpectInequality(t, reads, 0)
}

// resizing while a writer and a reader are running never exposes elements
// beyond the new size
func TestResizeWhileRunning(t *testing.T) {
	b := triplebuffer.NewBuffer[uint32](64)

	var stop atomic.Bool
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		src := frame(1, 256)
		for !stop.Load() {
			b.Write(src)
		}
	}()

	var bad atomic.Int32
	go func() {
		defer wg.Done()
		dst := make([]uint32, 256)
		for !stop.Load() {
			n, _ := b.Read(dst)
			if n > 256 || n > 0 && n != 16 && n != 32 && n != 64 && n != 128 {
				bad.Add(1)
			}
			for _, v := range dst[:n] {
				if v > 1 {
					bad.Add(1)
				}
			}
		}
	}()

	for i := 0; i < 200; i++ {
		b.Resize([]int{16, 32, 64, 128}[i%4])
	}
	stop.Store(true)
	wg.Wait()

	test.ExpectEquality(t, bad.Load(), int32(0))
}
