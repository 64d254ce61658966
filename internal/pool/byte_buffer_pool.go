// Package pool provides pooled buffers for the takens output path.
package pool

import (
	"io"
	"sync"
)

const (
	// RecordBufferDefaultSize is the initial capacity of pooled record buffers.
	RecordBufferDefaultSize = 1024 * 16 // 16KiB
	// RecordBufferMaxThreshold is the largest buffer returned to the pool;
	// bigger buffers are left to the garbage collector.
	RecordBufferMaxThreshold = 1024 * 1024 * 4 // 4MiB
)

// ByteBuffer is an append-only byte buffer.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given initial capacity.
func NewByteBuffer(size int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, size)}
}

// Bytes returns the buffered bytes.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the number of buffered bytes.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer and keeps its memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Write appends p. It never fails.
func (bb *ByteBuffer) Write(p []byte) (int, error) {
	bb.B = append(bb.B, p...)
	return len(p), nil
}

// WriteByte appends c. It never fails.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

// WriteTo writes the buffered bytes to w and resets the buffer on success.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	if err != nil {
		return int64(n), err
	}
	bb.Reset()

	return int64(n), nil
}

var recordBufferPool = sync.Pool{
	New: func() any {
		return NewByteBuffer(RecordBufferDefaultSize)
	},
}

// GetRecordBuffer returns an empty buffer from the pool.
func GetRecordBuffer() *ByteBuffer {
	bb, _ := recordBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutRecordBuffer returns bb to the pool. Buffers that grew beyond
// RecordBufferMaxThreshold are dropped.
func PutRecordBuffer(bb *ByteBuffer) {
	if bb == nil || cap(bb.B) > RecordBufferMaxThreshold {
		return
	}
	bb.Reset()
	recordBufferPool.Put(bb)
}
