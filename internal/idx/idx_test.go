package idx_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kujirahand/mnist-reader/internal/idx"
)

// buildImages encodes an IDX image buffer with the given geometry and
// payload bytes.
func buildImages(count, rows, cols int, payload []byte) []byte {
	buf := []byte{0x00, 0x00, 0x08, 0x03}
	buf = binary.BigEndian.AppendUint32(buf, uint32(count))
	buf = binary.BigEndian.AppendUint32(buf, uint32(rows))
	buf = binary.BigEndian.AppendUint32(buf, uint32(cols))
	return append(buf, payload...)
}

// buildLabels encodes an IDX label buffer.
func buildLabels(count int, payload []byte) []byte {
	buf := []byte{0x00, 0x00, 0x08, 0x01}
	buf = binary.BigEndian.AppendUint32(buf, uint32(count))
	return append(buf, payload...)
}

func TestDecodeImages(t *testing.T) {
	t.Parallel()

	raw := buildImages(2, 2, 2, []byte{0, 255, 128, 64, 10, 20, 30, 40})
	images, rows, cols, err := idx.DecodeImages(raw)
	require.NoError(t, err)

	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)
	require.Len(t, images, 2)

	want := [][]float32{
		{0.0, 1.0, 0.502, 0.251},
		{0.039, 0.078, 0.118, 0.157},
	}
	for i, image := range images {
		require.Len(t, image, 4)
		for j, pixel := range image {
			assert.InDelta(t, want[i][j], pixel, 0.001, "image %d pixel %d", i, j)
			assert.GreaterOrEqual(t, pixel, float32(0))
			assert.LessOrEqual(t, pixel, float32(1))
		}
	}
}

func TestDecodeImagesShape(t *testing.T) {
	t.Parallel()

	payload := make([]byte, 5*3*4)
	for i := range payload {
		payload[i] = byte(i * 7)
	}
	images, rows, cols, err := idx.DecodeImages(buildImages(5, 3, 4, payload))
	require.NoError(t, err)

	assert.Equal(t, 3, rows)
	assert.Equal(t, 4, cols)
	require.Len(t, images, 5)
	for _, image := range images {
		assert.Len(t, image, 12)
	}
}

func TestDecodeImagesErrors(t *testing.T) {
	t.Parallel()

	badReserved := buildImages(1, 1, 1, []byte{0})
	badReserved[0] = 0xff
	badType := buildImages(1, 1, 1, []byte{0})
	badType[2] = 0x0d

	// count*rows*cols wraps 64-bit arithmetic to zero; the declared byte
	// count must still be rejected, not treated as aligned.
	overflowDims := []byte{0x00, 0x00, 0x08, 0x03}
	overflowDims = binary.BigEndian.AppendUint32(overflowDims, 4)
	overflowDims = binary.BigEndian.AppendUint32(overflowDims, 1<<31)
	overflowDims = binary.BigEndian.AppendUint32(overflowDims, 1<<31)

	tests := []struct {
		name string
		raw  []byte
	}{
		{
			name: "empty buffer",
			raw:  nil,
		},
		{
			name: "nonzero reserved bytes",
			raw:  badReserved,
		},
		{
			name: "unsupported data type",
			raw:  badType,
		},
		{
			name: "label dimension count",
			raw:  buildLabels(1, []byte{0}),
		},
		{
			name: "truncated dimensions",
			raw:  []byte{0x00, 0x00, 0x08, 0x03, 0x00, 0x00},
		},
		{
			name: "truncated payload",
			raw:  buildImages(10, 2, 2, make([]byte, 5*4)),
		},
		{
			name: "excess payload",
			raw:  buildImages(1, 2, 2, make([]byte, 9)),
		},
		{
			name: "overflowing dimensions",
			raw:  overflowDims,
		},
		{
			name: "zero-size images",
			raw:  buildImages(5, 0, 0, nil),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, _, err := idx.DecodeImages(tt.raw)
			assert.ErrorIs(t, err, idx.ErrFormat)
		})
	}
}

func TestDecodeLabels(t *testing.T) {
	t.Parallel()

	labels, err := idx.DecodeLabels(buildLabels(5, []byte{0, 1, 5, 9, 3}))
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 1, 5, 9, 3}, labels)
}

func TestDecodeLabelsErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  []byte
	}{
		{
			name: "image dimension count",
			raw:  buildImages(1, 1, 1, []byte{0}),
		},
		{
			name: "truncated payload",
			raw:  buildLabels(10, make([]byte, 5)),
		},
		{
			name: "excess payload",
			raw:  buildLabels(2, []byte{1, 2, 3}),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := idx.DecodeLabels(tt.raw)
			assert.ErrorIs(t, err, idx.ErrFormat)
		})
	}
}

func TestHeaderValidatedBeforePayload(t *testing.T) {
	t.Parallel()

	// Wrong dimension count must fail even with an otherwise plausible body.
	raw := []byte{0x00, 0x00, 0x08, 0x02}
	raw = binary.BigEndian.AppendUint32(raw, 2)
	raw = binary.BigEndian.AppendUint32(raw, 2)
	raw = append(raw, 1, 2, 3, 4)

	_, _, _, err := idx.DecodeImages(raw)
	assert.ErrorIs(t, err, idx.ErrFormat)
}
