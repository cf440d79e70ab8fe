package pool

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorWriter struct {
	err error
}

func (w *errorWriter) Write([]byte) (int, error) {
	return 0, w.err
}

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	capacity := 1024
	bb := NewByteBuffer(capacity)

	require.NotNil(t, bb)
	require.NotNil(t, bb.B)
	assert.Equal(t, 0, len(bb.B), "new buffer should have zero length")
	assert.Equal(t, capacity, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(ContainerBufferDefaultSize)
	bb.B = append(bb.B, []byte("some data")...)
	originalCap := cap(bb.B)

	bb.Reset()

	assert.Equal(t, 0, len(bb.B), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(16)

	n, err := bb.Write([]byte("<xml/>"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	bb.MustWrite([]byte("<x/>"))
	assert.Equal(t, "<xml/><x/>", string(bb.Bytes()))
	assert.Equal(t, 10, bb.Len())
}

func TestByteBuffer_WriteZeros(t *testing.T) {
	bb := NewByteBuffer(32)
	bb.MustWrite(bytes.Repeat([]byte{0xFF}, 32))
	bb.Reset()

	// The stale 0xFF bytes are still in the backing array; WriteZeros must not expose them.
	bb.MustWrite([]byte{1, 2})
	bb.WriteZeros(10)

	assert.Equal(t, []byte{1, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, bb.Bytes())

	bb.WriteZeros(0)
	bb.WriteZeros(-3)
	assert.Equal(t, 12, bb.Len())
}

func TestByteBuffer_PadTo(t *testing.T) {
	tests := []struct {
		name      string
		length    int
		alignment int
		want      int
	}{
		{"already aligned", 32, 16, 32},
		{"empty", 0, 16, 0},
		{"one past boundary", 17, 16, 32},
		{"one short of boundary", 15, 16, 16},
		{"header plus payload", 0xC4 + 14, 16, 0xE0},
		{"zero alignment", 5, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bb := NewByteBuffer(0)
			bb.MustWrite(bytes.Repeat([]byte{0xAB}, tt.length))

			bb.PadTo(tt.alignment)

			require.Equal(t, tt.want, bb.Len())
			for _, b := range bb.Bytes()[tt.length:] {
				require.Zero(t, b)
			}
		})
	}
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(ContainerBufferDefaultSize)
	bb.B = append(bb.B, []byte("test data")...)

	var buf bytes.Buffer
	n, err := bb.WriteTo(&buf)

	require.NoError(t, err)
	assert.Equal(t, int64(9), n)
	assert.Equal(t, "test data", buf.String())
}

func TestByteBuffer_WriteTo_ErrorPropagation(t *testing.T) {
	bb := NewByteBuffer(ContainerBufferDefaultSize)
	bb.B = append(bb.B, []byte("test")...)

	n, err := bb.WriteTo(&errorWriter{err: io.ErrShortWrite})

	assert.Error(t, err)
	assert.Equal(t, io.ErrShortWrite, err)
	assert.Equal(t, int64(0), n)
}

// =============================================================================
// ByteBuffer Grow Tests
// =============================================================================

func TestByteBuffer_Grow_SufficientCapacity(t *testing.T) {
	bb := NewByteBuffer(ContainerBufferDefaultSize)
	originalCap := cap(bb.B)

	bb.Grow(100)

	assert.Equal(t, originalCap, cap(bb.B), "should not reallocate when capacity is sufficient")
}

func TestByteBuffer_Grow_SmallBuffer(t *testing.T) {
	bb := NewByteBuffer(ContainerBufferDefaultSize)
	bb.B = append(bb.B, make([]byte, ContainerBufferDefaultSize)...)

	bb.Grow(1024)

	assert.GreaterOrEqual(t, cap(bb.B), ContainerBufferDefaultSize+1024, "should have at least requested capacity")
	assert.Equal(t, ContainerBufferDefaultSize, len(bb.B), "length should not change")
}

func TestByteBuffer_Grow_LargeBuffer(t *testing.T) {
	bb := NewByteBuffer(ContainerBufferDefaultSize)
	largeSize := 4*ContainerBufferDefaultSize + 1024
	bb.B = make([]byte, largeSize)

	bb.Grow(2048)

	assert.GreaterOrEqual(t, cap(bb.B), largeSize+2048, "should have at least requested capacity")
}

func TestByteBuffer_Grow_PreservesData(t *testing.T) {
	bb := NewByteBuffer(16)
	testData := []byte("important data that must be preserved")
	bb.B = append(bb.B, testData...)

	bb.Grow(ContainerBufferDefaultSize * 2)

	assert.Equal(t, testData, bb.B, "data should be preserved after growth")
}

// =============================================================================
// Pool Tests
// =============================================================================

func TestGetContainerBuffer(t *testing.T) {
	bb := GetContainerBuffer()

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.GreaterOrEqual(t, cap(bb.B), 0)

	PutContainerBuffer(bb)
}

func TestPutContainerBuffer_NilBuffer(t *testing.T) {
	assert.NotPanics(t, func() {
		PutContainerBuffer(nil)
	})
}

func TestPool_ResetsClearsData(t *testing.T) {
	bb := GetContainerBuffer()
	bb.MustWrite([]byte("leftover"))
	PutContainerBuffer(bb)

	bb2 := GetContainerBuffer()
	assert.Equal(t, 0, bb2.Len(), "buffers from the pool must be empty")
	PutContainerBuffer(bb2)
}

func TestPool_ConcurrentAccess(t *testing.T) {
	const numGoroutines = 50
	const numIterations = 200

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for range numGoroutines {
		go func() {
			defer wg.Done()
			for range numIterations {
				bb := GetContainerBuffer()
				bb.MustWrite([]byte("data"))
				bb.PadTo(16)
				assert.Equal(t, 16, bb.Len())
				PutContainerBuffer(bb)
			}
		}()
	}

	wg.Wait()
}

func TestByteBufferPool_MaxThreshold_Discard(t *testing.T) {
	pool := NewByteBufferPool(1024, 4096)

	bb := pool.Get()
	bb.Grow(1024 * 1024)
	assert.Greater(t, cap(bb.B), 4096, "buffer should have grown beyond threshold")

	pool.Put(bb)

	bb2 := pool.Get()
	assert.LessOrEqual(t, cap(bb2.B), 4096, "should not reuse buffer larger than threshold")
}

func TestByteBufferPool_MaxThreshold_Zero(t *testing.T) {
	pool := NewByteBufferPool(1024, 0)

	bb := pool.Get()
	bb.Grow(1024 * 1024)
	pool.Put(bb)

	bb2 := pool.Get()
	require.NotNil(t, bb2)
	assert.Equal(t, 0, bb2.Len())
}
