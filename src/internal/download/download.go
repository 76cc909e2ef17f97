// Package download provides utilities for fetching, verifying and unpacking runtime files
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jvmrepo/jvmrepo/src/internal/ui"
	"github.com/schollz/progressbar/v3"
)

// Open makes a GET request and returns the response body with its announced length
// (-1 if unknown). The caller closes the body.
func Open(ctx context.Context, client *http.Client, url string) (io.ReadCloser, int64, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}

	ui.Debug("GET %s", url)
	resp, err := client.Do(req)
	if err != nil {
		ui.Debug("HTTP request failed: %v", err)
		return nil, 0, fmt.Errorf("failed to connect: %w (URL: %s)", err, url)
	}

	ui.Debug("HTTP response: %s", resp.Status)
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, 0, fmt.Errorf("download failed (HTTP %s): %s", resp.Status, url)
	}

	return resp.Body, resp.ContentLength, nil
}

// File downloads a file from a URL to a destination path with a progress bar
func File(ctx context.Context, client *http.Client, url, destPath string) error {
	ui.Debug("Starting download: %s", url)
	ui.Debug("Destination: %s", destPath)

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}

	body, size, err := Open(ctx, client, url)
	if err != nil {
		return err
	}
	defer func() { _ = body.Close() }()

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	ui.Debug("Content-Length: %d bytes", size)
	bar := BytesBar(size, "Downloading")

	if _, err := io.Copy(io.MultiWriter(out, bar), body); err != nil {
		ui.Debug("Download failed: %v", err)
		_ = out.Close()
		_ = os.Remove(destPath)
		return err
	}

	_ = bar.Finish()
	ui.Debug("Download complete: %s", destPath)
	return nil
}

// BytesBar returns a byte progress bar, silent when output is not a terminal.
func BytesBar(size int64, description string) *progressbar.ProgressBar {
	if !ui.IsInteractive() {
		return progressbar.DefaultBytesSilent(size, description)
	}
	return progressbar.DefaultBytes(size, description)
}

// CountBar returns a progress bar over a number of items, silent when output is not a terminal.
func CountBar(total int, description string) *progressbar.ProgressBar {
	if !ui.IsInteractive() {
		return progressbar.DefaultSilent(int64(total), description)
	}
	return progressbar.Default(int64(total), description)
}
