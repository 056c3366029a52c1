// Package pool provides buffer pooling for the render hot path.
package pool

import (
	"bytes"
	"sync"
)

// maxPooledBuffer is the largest buffer capacity returned to the pool.
// A full page render sits well below it.
const maxPooledBuffer = 256 * 1024

// BufferPool is a pool of bytes.Buffer for reducing allocations.
var BufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// GetBuffer retrieves a buffer from the pool, resetting it for use.
func GetBuffer() *bytes.Buffer {
	buf := BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns a buffer to the pool. Oversized buffers are dropped.
func PutBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooledBuffer {
		return
	}
	BufferPool.Put(buf)
}
