// Package idx decodes the fixed-header binary layout used by the MNIST
// image and label files.
//
// Every file starts with a four-byte magic number: two reserved zero
// bytes, a data-type code, and a dimension count. The dimension sizes
// follow as big-endian uint32 values, then the raw payload. Image files
// carry three dimensions (count, rows, cols); label files carry one.
package idx

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrFormat is returned when a buffer is not valid IDX data.
var ErrFormat = errors.New("idx: invalid format")

const (
	// typeUnsignedByte is the only data-type code MNIST uses.
	typeUnsignedByte = 0x08

	imageDims = 3
	labelDims = 1

	magicLen = 4
	dimLen   = 4
)

// DecodeImages parses an IDX image buffer into one pixel vector per image.
// Each pixel byte is normalized from [0, 255] to [0.0, 1.0].
func DecodeImages(raw []byte) (images [][]float32, rows, cols int, err error) {
	dims, body, err := decodeHeader(raw, imageDims)
	if err != nil {
		return nil, 0, 0, err
	}

	count := uint64(dims[0])
	// Both factors are 32-bit, so the product cannot wrap uint64.
	pixelCount := uint64(dims[1]) * uint64(dims[2])
	if count != 0 && pixelCount == 0 {
		return nil, 0, 0, fmt.Errorf("%w: %d images of %dx%d pixels", ErrFormat, dims[0], dims[1], dims[2])
	}
	// A division guard keeps the required byte count from wrapping around
	// the integer range on a bogus header.
	if count != 0 && pixelCount > uint64(len(body))/count ||
		count*pixelCount != uint64(len(body)) {
		return nil, 0, 0, fmt.Errorf("%w: %d images of %dx%d do not align with %d payload bytes",
			ErrFormat, dims[0], dims[1], dims[2], len(body))
	}

	rows, cols = int(dims[1]), int(dims[2])
	size := int(pixelCount)
	images = make([][]float32, count)
	for i := range images {
		pixels := make([]float32, size)
		for j, b := range body[i*size : (i+1)*size] {
			pixels[j] = float32(b) / 255
		}
		images[i] = pixels
	}
	return images, rows, cols, nil
}

// DecodeLabels parses an IDX label buffer into one byte per item.
// Labels are left as raw unsigned bytes.
func DecodeLabels(raw []byte) ([]byte, error) {
	dims, body, err := decodeHeader(raw, labelDims)
	if err != nil {
		return nil, err
	}

	if uint64(len(body)) != uint64(dims[0]) {
		return nil, fmt.Errorf("%w: %d labels declared, have %d payload bytes", ErrFormat, dims[0], len(body))
	}

	labels := make([]byte, len(body))
	copy(labels, body)
	return labels, nil
}

// decodeHeader validates the magic number and reads the declared dimension
// sizes, returning them together with the payload that follows.
func decodeHeader(raw []byte, wantDims int) ([]uint32, []byte, error) {
	if len(raw) < magicLen {
		return nil, nil, fmt.Errorf("%w: %d bytes is shorter than the magic number", ErrFormat, len(raw))
	}
	if raw[0] != 0 || raw[1] != 0 {
		return nil, nil, fmt.Errorf("%w: reserved magic bytes are %#02x %#02x, want zero", ErrFormat, raw[0], raw[1])
	}
	if raw[2] != typeUnsignedByte {
		return nil, nil, fmt.Errorf("%w: unsupported data type %#02x", ErrFormat, raw[2])
	}
	if int(raw[3]) != wantDims {
		return nil, nil, fmt.Errorf("%w: %d dimensions, want %d", ErrFormat, raw[3], wantDims)
	}

	end := magicLen + wantDims*dimLen
	if len(raw) < end {
		return nil, nil, fmt.Errorf("%w: buffer truncated inside dimension sizes", ErrFormat)
	}
	dims := make([]uint32, wantDims)
	for i := range dims {
		dims[i] = binary.BigEndian.Uint32(raw[magicLen+i*dimLen:])
	}
	return dims, raw[end:], nil
}
