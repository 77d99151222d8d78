package mnist

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/opencontainers/go-digest"
)

const (
	dirPerm  = 0o755
	lockName = ".mnist.lock"

	lockRetryDelay = 50 * time.Millisecond
)

// ensureLocal returns the path to the role's compressed archive under the
// data directory, downloading it from the mirror if absent. An existing
// file short-circuits the network entirely.
func (r *Reader) ensureLocal(ctx context.Context, role Role) (string, error) {
	path := filepath.Join(r.dir, role.Filename())
	if _, err := os.Stat(path); err == nil {
		r.log().Debug("archive cached", "role", role.String(), "path", path)
		return path, r.maybeVerify(path, role)
	}

	if err := os.MkdirAll(r.dir, dirPerm); err != nil {
		return "", fmt.Errorf("%w: create %s: %v", ErrFetch, r.dir, err)
	}

	// Serialize downloads across processes sharing the data directory.
	// The retrying acquire keeps a wait on a contended lock cancelable.
	lock := flock.New(filepath.Join(r.dir, lockName))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return "", fmt.Errorf("%w: lock %s: %v", ErrFetch, r.dir, err)
	}
	if !locked {
		return "", fmt.Errorf("%w: lock %s: not acquired", ErrFetch, r.dir)
	}
	defer func() { _ = lock.Unlock() }()

	// Another process may have finished the download while we waited.
	if _, err := os.Stat(path); err == nil {
		return path, r.maybeVerify(path, role)
	}

	if err := r.download(ctx, role, path); err != nil {
		return "", err
	}
	return path, r.maybeVerify(path, role)
}

// download fetches one archive and writes it to path via a temporary file
// and rename, so an interrupted download never leaves a partial archive
// where the cache check would find it.
func (r *Reader) download(ctx context.Context, role Role, path string) error {
	url := r.baseURL + "/" + role.Filename()
	r.log().Debug("downloading archive", "role", role.String(), "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFetch, url, err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFetch, url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s: unexpected status %s", ErrFetch, url, resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), role.Filename()+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrFetch, path, err)
	}
	tmpPath := tmp.Name()
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %s: %v", ErrFetch, url, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %s: %v", ErrFetch, tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: %s: %v", ErrFetch, path, err)
	}
	return nil
}

// maybeVerify checks the archive against its published digest when
// verification is enabled.
func (r *Reader) maybeVerify(path string, role Role) error {
	if !r.verify {
		return nil
	}
	return verifyArchive(path, descriptors[role].digest)
}

// verifyArchive compares the file's SHA-256 digest to want.
func verifyArchive(path string, want digest.Digest) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrFetch, path, err)
	}
	defer func() { _ = f.Close() }()

	got, err := digest.SHA256.FromReader(f)
	if err != nil {
		return fmt.Errorf("%w: digest %s: %v", ErrFetch, path, err)
	}
	if got != want {
		return fmt.Errorf("%w: %s: got %s, want %s", ErrChecksumMismatch, filepath.Base(path), got, want)
	}
	return nil
}
