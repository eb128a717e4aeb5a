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

package triplebuffer

import (
	"sync"
	"sync/atomic"
)

// the swap value is the index of the buffer in the swap slot, with the fresh
// bit set if that buffer has not yet been seen by the consumer
const (
	indexMask = 0x03
	freshBit  = 0x04
)

// MaxSize is the largest number of elements a buffer can hold. Sizes larger
// than this are treated as allocation failures.
const MaxSize = 1 << 26

// Buffer passes complete frames of type T from one producer goroutine to one
// consumer goroutine.
//
// T must be a plain value type (numbers or structs of numbers). Elements are
// copied by assignment and pointers inside T would be shared between the
// producer and the consumer.
//
// The producer calls Write(), WriteTransform() or WriteFunc(). The consumer
// calls Read() or Copy(). Any goroutine can call Resize() but not at the same
// time as another call to Resize(). Calling a producer function from more than
// one goroutine, or a consumer function from more than one goroutine, is a
// programming error that is not detected.
type Buffer[T any] struct {
	// workLock is held by the producer while writing and readLock is held
	// by the consumer while copying out. Resize() holds both exclusively
	workLock sync.Mutex
	readLock sync.RWMutex

	bufs [3][]T

	// the work index is only used by the producer and the read index is only
	// used by the consumer
	work int
	read int

	// index of the buffer in the swap slot plus the fresh bit
	swap atomic.Uint32

	size atomic.Int64

	// width and height packed into one value
	dimensions atomic.Uint64

	// counters. overwritten counts the frames that were replaced in the swap
	// slot before the consumer took them
	written     atomic.Uint64
	delivered   atomic.Uint64
	overwritten atomic.Uint64
}

// NewBuffer is the preferred method of initialisation for the Buffer type. The
// size is the number of elements in each frame. If the buffers can not be
// allocated then the Buffer will report a size of zero and must not be used.
func NewBuffer[T any](size int) *Buffer[T] {
	b := &Buffer[T]{}
	b.allocate(size)
	b.dimensions.Store(pack(size, 1))
	return b
}

// NewBufferWithDimensions creates a Buffer sized for width*height elements and
// publishes the dimensions.
func NewBufferWithDimensions[T any](width int, height int) *Buffer[T] {
	b := &Buffer[T]{}
	if width > 0 && height > 0 && width <= MaxSize/height {
		b.allocate(width * height)
	} else {
		b.allocate(0)
	}
	b.dimensions.Store(pack(width, height))
	return b
}

// allocate replaces all three buffers and resets the exchange. must only be
// called when no other goroutine can be using the buffer
func (b *Buffer[T]) allocate(size int) {
	var bufs [3][]T
	if size > 0 && size <= MaxSize {
		func() {
			// make() panics if the length is too large for the type. this is
			// reported in the same way as a size outside of the valid range
			defer func() {
				if recover() != nil {
					bufs = [3][]T{}
					size = 0
				}
			}()
			for i := range bufs {
				bufs[i] = make([]T, size)
			}
		}()
	} else {
		size = 0
	}

	b.bufs = bufs
	b.work = 0
	b.read = 1
	b.swap.Store(2)
	b.size.Store(int64(size))
}

// Size returns the number of elements in a frame. A size of zero means that
// the Buffer is unusable.
func (b *Buffer[T]) Size() int {
	return int(b.size.Load())
}

// Resize reallocates all three buffers. The contents of the buffers are lost
// and any frame that has not yet been read is discarded. Resize() will block
// both the producer and the consumer for the duration.
//
// Returns false if the buffers could not be allocated, in which case the size
// of the buffer will be zero. Resizing to zero also returns false.
func (b *Buffer[T]) Resize(size int) bool {
	b.workLock.Lock()
	defer b.workLock.Unlock()
	b.readLock.Lock()
	defer b.readLock.Unlock()

	b.allocate(size)
	return b.Size() > 0
}

// SetDimensions publishes the width and height of the frame. The dimensions
// are independent of the buffer contents. A consumer may see new dimensions
// with a frame that was written for the old dimensions for one exchange.
func (b *Buffer[T]) SetDimensions(width int, height int) {
	b.dimensions.Store(pack(width, height))
}

// Dimensions returns the most recently published width and height.
func (b *Buffer[T]) Dimensions() (int, int) {
	return unpack(b.dimensions.Load())
}

func pack(width int, height int) uint64 {
	return uint64(uint32(width))<<32 | uint64(uint32(height))
}

func unpack(v uint64) (int, int) {
	return int(uint32(v >> 32)), int(uint32(v))
}

// publish exchanges the work buffer with the swap slot. called by the
// producer with the workLock held
func (b *Buffer[T]) publish() {
	prev := b.swap.Swap(uint32(b.work) | freshBit)
	if prev&freshBit == freshBit {
		b.overwritten.Add(1)
	}
	b.work = int(prev & indexMask)
	b.written.Add(1)
}

// Write copies the source into the work buffer and publishes it. Elements
// beyond the end of the frame are ignored. If the source is shorter than the
// frame then the remaining elements of the frame are zeroed.
func (b *Buffer[T]) Write(source []T) {
	b.workLock.Lock()
	defer b.workLock.Unlock()

	if b.Size() == 0 {
		return
	}

	w := b.bufs[b.work]
	n := copy(w, source)
	clear(w[n:])
	b.publish()
}

// WriteTransform is the same as Write() except that each element is passed
// through the transform function on the way into the work buffer.
func (b *Buffer[T]) WriteTransform(source []T, transform func(T) T) {
	b.workLock.Lock()
	defer b.workLock.Unlock()

	if b.Size() == 0 {
		return
	}

	w := b.bufs[b.work]
	n := min(len(w), len(source))
	for i := 0; i < n; i++ {
		w[i] = transform(source[i])
	}
	clear(w[n:])
	b.publish()
}

// WriteFunc gives the fill function the work buffer to fill in place and
// then publishes it. The slice is the full size of the frame and will contain
// an older frame. It must not be retained after the fill function returns.
func (b *Buffer[T]) WriteFunc(fill func(work []T)) {
	b.workLock.Lock()
	defer b.workLock.Unlock()

	if b.Size() == 0 {
		return
	}

	fill(b.bufs[b.work])
	b.publish()
}

// acquire takes the frame in the swap slot if it is fresh. called by the
// consumer with the readLock held
func (b *Buffer[T]) acquire() bool {
	if b.swap.Load()&freshBit == 0 {
		return false
	}
	prev := b.swap.Swap(uint32(b.read))
	b.read = int(prev & indexMask)
	b.delivered.Add(1)
	return true
}

// Read copies the most recently published frame into the destination. It
// returns the number of elements copied and whether the frame has not been
// returned by a previous call to Read() or Copy(). If nothing new has been
// published the previous frame is copied again.
func (b *Buffer[T]) Read(destination []T) (int, bool) {
	b.readLock.RLock()
	defer b.readLock.RUnlock()

	if b.Size() == 0 {
		return 0, false
	}

	fresh := b.acquire()
	return copy(destination, b.bufs[b.read]), fresh
}

// Copy returns a new slice with at most count elements from the most recently
// published frame.
func (b *Buffer[T]) Copy(count int) []T {
	b.readLock.RLock()
	defer b.readLock.RUnlock()

	if b.Size() == 0 || count <= 0 {
		return nil
	}

	b.acquire()
	r := b.bufs[b.read]
	count = min(count, len(r))
	c := make([]T, count)
	copy(c, r[:count])
	return c
}

// Stats is a summary of the exchanges made by a Buffer.
type Stats struct {
	// number of frames published by the producer
	Written uint64

	// number of frames taken by the consumer
	Delivered uint64

	// number of frames replaced before the consumer took them
	Overwritten uint64
}

// Stats returns the exchange counters. Safe to call from any goroutine.
func (b *Buffer[T]) Stats() Stats {
	return Stats{
		Written:     b.written.Load(),
		Delivered:   b.delivered.Load(),
		Overwritten: b.overwritten.Load(),
	}
}
