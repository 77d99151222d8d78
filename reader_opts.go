package mnist

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// Option configures a Reader.
type Option func(*Reader) error

// WithBaseURL overrides the mirror the archives are downloaded from.
// The four archive filenames are appended to it unchanged.
func WithBaseURL(url string) Option {
	return func(r *Reader) error {
		if url == "" {
			return errors.New("mnist: base URL is empty")
		}
		r.baseURL = strings.TrimSuffix(url, "/")
		return nil
	}
}

// WithHTTPClient sets the client used for downloads.
// If nil, http.DefaultClient is used (default behavior).
func WithHTTPClient(client *http.Client) Option {
	return func(r *Reader) error {
		if client != nil {
			r.client = client
		}
		return nil
	}
}

// WithVerify controls SHA-256 verification of archives against the
// published digests. Verification covers freshly downloaded and already
// cached files alike. Off by default: a cached file is trusted by
// presence alone.
func WithVerify(enabled bool) Option {
	return func(r *Reader) error {
		r.verify = enabled
		return nil
	}
}

// WithLogger sets a logger for download and decode progress.
// If nil, a discard logger is used (default behavior).
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) error {
		r.logger = logger
		return nil
	}
}
