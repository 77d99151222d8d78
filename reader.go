package mnist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/kujirahand/mnist-reader/internal/idx"
)

// Reader downloads, caches, and decodes the MNIST dataset.
//
// The four collections are empty until [Reader.Load] succeeds. A load is
// all-or-nothing: on failure the previously loaded data is left untouched.
type Reader struct {
	// TrainData holds one normalized pixel vector per training image.
	TrainData [][]float32
	// TrainLabels holds the digit class of each training image.
	TrainLabels []byte
	// TestData holds one normalized pixel vector per test image.
	TestData [][]float32
	// TestLabels holds the digit class of each test image.
	TestLabels []byte

	dir     string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
	verify  bool

	rows, cols int
}

// New creates a Reader caching archives under dir.
func New(dir string, opts ...Option) (*Reader, error) {
	if dir == "" {
		return nil, errors.New("mnist: data directory is empty")
	}
	r := &Reader{
		dir:     dir,
		baseURL: DefaultBaseURL,
		client:  http.DefaultClient,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Dir returns the data directory archives are cached under.
func (r *Reader) Dir() string { return r.dir }

// Rows returns the image height decoded from the archive headers.
// Zero until Load succeeds.
func (r *Reader) Rows() int { return r.rows }

// Cols returns the image width decoded from the archive headers.
// Zero until Load succeeds.
func (r *Reader) Cols() int { return r.cols }

func (r *Reader) log() *slog.Logger {
	if r.logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.logger
}

// Load fetches, decompresses, and decodes all four dataset files in fixed
// order: train images, train labels, test images, test labels. Any archive
// already present in the data directory is used as-is, so a directory
// populated by an earlier load needs no network access.
//
// Errors carry the role and wrap one of [ErrFetch], [ErrDecompress],
// [ErrFormat], or [ErrChecksumMismatch].
func (r *Reader) Load(ctx context.Context) error {
	var (
		trainData, testData     [][]float32
		trainLabels, testLabels []byte
		rows, cols              int
	)

	for _, role := range Roles() {
		raw, err := r.loadRaw(ctx, role)
		if err != nil {
			return fmt.Errorf("%s: %w", role, err)
		}

		if role.isImages() {
			images, ir, ic, err := idx.DecodeImages(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", role, err)
			}
			if rows == 0 {
				rows, cols = ir, ic
			} else if ir != rows || ic != cols {
				return fmt.Errorf("%s: %w: image geometry %dx%d differs from %dx%d",
					role, ErrFormat, ir, ic, rows, cols)
			}
			if role == TrainImages {
				trainData = images
			} else {
				testData = images
			}
			continue
		}

		labels, err := idx.DecodeLabels(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", role, err)
		}
		if role == TrainLabels {
			trainLabels = labels
		} else {
			testLabels = labels
		}
	}

	if len(trainData) != len(trainLabels) {
		return fmt.Errorf("%w: %d train images but %d train labels", ErrFormat, len(trainData), len(trainLabels))
	}
	if len(testData) != len(testLabels) {
		return fmt.Errorf("%w: %d test images but %d test labels", ErrFormat, len(testData), len(testLabels))
	}

	r.TrainData = trainData
	r.TrainLabels = trainLabels
	r.TestData = testData
	r.TestLabels = testLabels
	r.rows, r.cols = rows, cols

	r.log().Debug("dataset loaded",
		"train", len(r.TrainData), "test", len(r.TestData), "rows", rows, "cols", cols)
	return nil
}

// loadRaw runs the fetch and decompress stages for one role.
func (r *Reader) loadRaw(ctx context.Context, role Role) ([]byte, error) {
	path, err := r.ensureLocal(ctx, role)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrFetch, path, err)
	}
	return decompress(data)
}
