package mnist

import (
	"errors"

	"github.com/kujirahand/mnist-reader/internal/idx"
)

// Sentinel errors for dataset loading.
var (
	// ErrFetch is returned when downloading or storing an archive fails.
	ErrFetch = errors.New("mnist: fetch failed")

	// ErrDecompress is returned when an archive is not a valid gzip stream.
	ErrDecompress = errors.New("mnist: gzip decompression failed")

	// ErrChecksumMismatch is returned when an archive does not match its
	// published digest. Only reported when verification is enabled.
	ErrChecksumMismatch = errors.New("mnist: checksum mismatch")
)

// ErrFormat is returned when decompressed bytes are not valid IDX data.
// Re-exported from internal/idx.
var ErrFormat = idx.ErrFormat
