package pool

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	require.NotNil(t, bb.B)
	assert.Equal(t, 0, len(bb.B), "new buffer should have zero length")
	assert.Equal(t, 1024, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_Basics(t *testing.T) {
	bb := NewByteBuffer(ScratchBufferDefaultSize)

	bb.MustWrite([]byte("hello"))
	bb.MustWrite([]byte(" world"))
	assert.Equal(t, []byte("hello world"), bb.B)
	assert.Equal(t, 11, bb.Len())

	got := bb.Bytes()
	assert.True(t, &bb.B[0] == &got[0], "Bytes() should return the same underlying slice")

	originalCap := cap(bb.B)
	bb.Reset()
	assert.Equal(t, 0, bb.Len(), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(ScratchBufferDefaultSize)

	n, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte("hello"), bb.B)
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(ScratchBufferDefaultSize)
	bb.MustWrite([]byte("test data"))

	var buf bytes.Buffer
	n, err := bb.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(9), n)
	assert.Equal(t, "test data", buf.String())

	// Error propagation
	_, err = bb.WriteTo(&errorWriter{err: io.ErrShortWrite})
	assert.Equal(t, io.ErrShortWrite, err)
}

func TestByteBuffer_ExtendAndSetLength(t *testing.T) {
	bb := NewByteBuffer(64)

	require.True(t, bb.Extend(32))
	assert.Equal(t, 32, bb.Len())

	require.False(t, bb.Extend(1024), "Extend beyond capacity should fail")

	bb.ExtendOrGrow(1024)
	assert.Equal(t, 32+1024, bb.Len())

	bb.SetLength(8)
	assert.Equal(t, 8, bb.Len())
	assert.Panics(t, func() { bb.SetLength(-1) })
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("sufficient capacity is a no-op", func(t *testing.T) {
		bb := NewByteBuffer(ScratchBufferDefaultSize)
		originalCap := cap(bb.B)

		bb.Grow(100)
		assert.Equal(t, originalCap, cap(bb.B))
	})

	t.Run("grows when full", func(t *testing.T) {
		bb := NewByteBuffer(ScratchBufferDefaultSize)
		bb.MustWrite(make([]byte, ScratchBufferDefaultSize))

		bb.Grow(1024)
		assert.GreaterOrEqual(t, cap(bb.B), ScratchBufferDefaultSize+1024)
		assert.Equal(t, ScratchBufferDefaultSize, len(bb.B), "length should not change")
	})

	t.Run("accommodates huge requests", func(t *testing.T) {
		bb := NewByteBuffer(ScratchBufferDefaultSize)
		bb.MustWrite(make([]byte, ScratchBufferDefaultSize))

		huge := ScratchBufferDefaultSize * 10
		bb.Grow(huge)
		assert.GreaterOrEqual(t, cap(bb.B), ScratchBufferDefaultSize+huge)
	})

	t.Run("preserves data", func(t *testing.T) {
		bb := NewByteBuffer(ScratchBufferDefaultSize)
		testData := []byte("important data that must be preserved")
		bb.MustWrite(testData)

		bb.Grow(ScratchBufferDefaultSize * 2) // force reallocation
		assert.Equal(t, testData, bb.B)
	})
}

func TestScratchBufferPool(t *testing.T) {
	bb := GetScratchBuffer()
	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len(), "pooled buffer should be empty")
	assert.GreaterOrEqual(t, bb.Cap(), ScratchBufferDefaultSize)

	bb.MustWrite([]byte("fingerprint scratch"))
	PutScratchBuffer(bb)
	assert.Equal(t, 0, bb.Len(), "PutScratchBuffer should reset the buffer")

	assert.NotPanics(t, func() { PutScratchBuffer(nil) })
}

func TestSnapshotBufferPool(t *testing.T) {
	bb := GetSnapshotBuffer()
	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len(), "pooled buffer should be empty")
	assert.GreaterOrEqual(t, bb.Cap(), SnapshotBufferDefaultSize)

	bb.MustWrite(make([]byte, 500*1024))
	PutSnapshotBuffer(bb)
	assert.Equal(t, 0, bb.Len(), "PutSnapshotBuffer should reset the buffer")
}

func TestSnapshotBufferPool_DiscardsOversized(t *testing.T) {
	bb := GetSnapshotBuffer()
	bb.Grow(2 * SnapshotBufferMaxThreshold)
	assert.Greater(t, bb.Cap(), SnapshotBufferMaxThreshold)

	// Oversized buffers are dropped instead of pooled.
	PutSnapshotBuffer(bb)

	bb2 := GetSnapshotBuffer()
	assert.LessOrEqual(t, bb2.Cap(), SnapshotBufferMaxThreshold*2, "should not reuse overly large buffer")
	PutSnapshotBuffer(bb2)
}

func TestByteBufferPool_MaxThreshold(t *testing.T) {
	pool := NewByteBufferPool(1024, 4096)

	bb := pool.Get()
	bb.Grow(10000)
	assert.Greater(t, bb.Cap(), 4096)
	pool.Put(bb) // discarded

	bb2 := pool.Get()
	assert.LessOrEqual(t, bb2.Cap(), 4096*2, "should not reuse buffer larger than threshold")
	pool.Put(bb2)
}

func TestByteBufferPool_NoThreshold(t *testing.T) {
	pool := NewByteBufferPool(1024, 0) // 0 means no limit

	bb := pool.Get()
	bb.Grow(1024 * 1024)
	pool.Put(bb)

	require.NotNil(t, pool.Get())
}

func TestDefaultPools_Independence(t *testing.T) {
	scratchBuf := GetScratchBuffer()
	snapBuf := GetSnapshotBuffer()

	// 16KiB scratch vs 256KiB snapshot defaults.
	assert.NotEqual(t, scratchBuf.Cap(), snapBuf.Cap())

	PutScratchBuffer(scratchBuf)
	PutSnapshotBuffer(snapBuf)
}

func TestPool_ConcurrentAccess(t *testing.T) {
	const numGoroutines = 100
	const numIterations = 1000

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for range numGoroutines {
		go func() {
			defer wg.Done()
			for range numIterations {
				bb := GetScratchBuffer()
				bb.MustWrite([]byte("data"))
				assert.Equal(t, 4, bb.Len())
				PutScratchBuffer(bb)
			}
		}()
	}

	wg.Wait()
}

func BenchmarkPool_GetWritePut(b *testing.B) {
	// One dictionary entry's worth of payload per write.
	data := make([]byte, 8)

	b.ResetTimer()
	for b.Loop() {
		bb := GetScratchBuffer()
		bb.MustWrite(data)
		PutScratchBuffer(bb)
	}
}

func BenchmarkPool_vs_NewBuffer(b *testing.B) {
	// Payload assembly pattern: many small section writes per buffer.
	data := make([]byte, 1024)

	b.Run("WithPool", func(b *testing.B) {
		for b.Loop() {
			bb := GetScratchBuffer()
			for range 100 {
				bb.MustWrite(data)
			}
			PutScratchBuffer(bb)
		}
	})

	b.Run("WithoutPool", func(b *testing.B) {
		for b.Loop() {
			bb := NewByteBuffer(ScratchBufferDefaultSize)
			for range 100 {
				bb.MustWrite(data)
			}
		}
	})
}

func BenchmarkConcurrentGetPut(b *testing.B) {
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			bb := GetScratchBuffer()
			bb.MustWrite([]byte("concurrent test data"))
			PutScratchBuffer(bb)
		}
	})
}

// errorWriter is a writer that always returns an error.
type errorWriter struct {
	err error
}

func (ew *errorWriter) Write(p []byte) (n int, err error) {
	return 0, ew.err
}
