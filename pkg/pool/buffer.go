// Package pool recycles the scratch buffers codecs write into.
package pool

import (
	"bytes"
	"sync"
)

// DefaultBufferSize is the initial capacity of pooled buffers. It matches the
// usual upper bound of a single wire message body.
const DefaultBufferSize = 64 * 1024

// BufferPool manages a pool of byte buffers.
type BufferPool struct {
	size int       // Initial capacity of each buffer.
	pool sync.Pool // Thread-safe pool of buffers.
}

// NewBufferPool creates a buffer pool whose buffers start with the given capacity.
// A non-positive size falls back to DefaultBufferSize.
func NewBufferPool(size int) *BufferPool {
	if size <= 0 {
		size = DefaultBufferSize
	}

	return &BufferPool{
		size: size,
		pool: sync.Pool{
			New: func() any {
				return bytes.NewBuffer(make([]byte, 0, size))
			},
		},
	}
}

// Get retrieves an empty buffer from the pool.
func (bp *BufferPool) Get() *bytes.Buffer {
	buf := bp.pool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// Put returns a buffer to the pool.
// Buffers that grew past twice the configured size are dropped.
func (bp *BufferPool) Put(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > bp.size*2 {
		return
	}

	buf.Reset()
	bp.pool.Put(buf)
}

// Detach copies the buffer contents into a new slice and returns the buffer
// to the pool. The returned slice never aliases pooled memory.
func (bp *BufferPool) Detach(buf *bytes.Buffer) []byte {
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	bp.Put(buf)
	return out
}
