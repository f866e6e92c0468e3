// Package fetch downloads remote grid files into the local cache.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/HHRClemson/hydrological-toolkit/internal/domain"
)

const defaultBlockSize = 32 * 1024

// HTTPFetcher streams remote resources to local paths. A fetch is a no-op
// when the destination already exists: cache files are per-year and trusted
// as-is on re-runs.
type HTTPFetcher struct {
	Client    *http.Client
	BlockSize int
}

// NewHTTPFetcher creates a fetcher with the default client and block size.
// Grid files run to hundreds of megabytes, so the client has no timeout;
// cancellation comes from the request context.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client:    &http.Client{},
		BlockSize: defaultBlockSize,
	}
}

// Fetch streams remoteURL to localPath, invoking progress after each block
// with (bytesSoFar, blockSize, totalSize). Data is written to a temporary
// file and renamed on completion, so a partial download never satisfies the
// exists check on the next run.
func (f *HTTPFetcher) Fetch(ctx context.Context, remoteURL, localPath string, progress domain.ProgressFunc) error {
	if _, err := os.Stat(localPath); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteURL, nil)
	if err != nil {
		return fmt.Errorf("invalid resource URL %s: %w", remoteURL, err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", remoteURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("error fetching %s: HTTP %d", remoteURL, resp.StatusCode)
	}

	tmpPath := localPath + ".part"
	out, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmpPath, err)
	}

	if err := f.copyBlocks(out, resp.Body, resp.ContentLength, progress); err != nil {
		_ = out.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to download %s: %w", remoteURL, err)
	}

	if err := out.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, localPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to move download into place: %w", err)
	}
	return nil
}

func (f *HTTPFetcher) copyBlocks(dst io.Writer, src io.Reader, totalSize int64, progress domain.ProgressFunc) error {
	blockSize := f.BlockSize
	if blockSize <= 0 {
		blockSize = defaultBlockSize
	}

	buf := make([]byte, blockSize)
	var written int64
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return err
			}
			written += int64(n)
			if progress != nil {
				progress(written, int64(n), totalSize)
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}
