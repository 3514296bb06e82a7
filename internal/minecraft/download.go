package minecraft

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
)

// Download retry policy
const (
	MaxDownloadRetries = 1
	RetryBackoff       = 2 * time.Second
	PartialSuffix      = ".part"
)

// ErrChecksumMismatch is returned when a downloaded file does not match its SHA-1
var ErrChecksumMismatch = errors.New("checksum mismatch")

// fileSHA1 returns the hex SHA-1 of a file
func fileSHA1(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// upToDate reports whether dest exists and, when sum is given, matches it
func upToDate(dest, sum string) bool {
	if _, err := os.Stat(dest); err != nil {
		return false
	}
	if sum == "" {
		return true
	}
	actual, err := fileSHA1(dest)
	return err == nil && actual == sum
}

// downloadFile fetches url into dest unless an up-to-date copy already exists.
// It returns true when a transfer actually happened.
func (c *Client) downloadFile(ctx context.Context, url, dest, sum string) (bool, error) {
	if upToDate(dest, sum) {
		return false, nil
	}

	var lastErr error
	for attempt := 0; attempt <= MaxDownloadRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(RetryBackoff):
			case <-ctx.Done():
				return false, ctx.Err()
			}
			log.WithFields(log.Fields{"url": url, "attempt": attempt + 1}).Warn("Retrying download")
		}

		err := c.fetch(ctx, url, dest, sum)
		if err == nil {
			return true, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return false, ctx.Err()
		}
	}
	return false, lastErr
}

// fetch performs one GET into a partial file, verifies it and moves it into place
func (c *Client) fetch(ctx context.Context, url, dest, sum string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", url, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download %s: HTTP %s", url, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", dest, err)
	}

	partial := dest + PartialSuffix
	f, err := os.Create(partial)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", partial, err)
	}

	h := sha1.New()
	_, copyErr := io.Copy(io.MultiWriter(f, h), resp.Body)
	closeErr := f.Close()
	if copyErr != nil {
		os.Remove(partial)
		return fmt.Errorf("failed to write %s: %w", dest, copyErr)
	}
	if closeErr != nil {
		os.Remove(partial)
		return fmt.Errorf("failed to write %s: %w", dest, closeErr)
	}

	if sum != "" {
		if actual := hex.EncodeToString(h.Sum(nil)); actual != sum {
			os.Remove(partial)
			return fmt.Errorf("%s: expected %s, got %s: %w", url, sum, actual, ErrChecksumMismatch)
		}
	}

	if err := os.Rename(partial, dest); err != nil {
		os.Remove(partial)
		return fmt.Errorf("failed to move %s into place: %w", dest, err)
	}
	return nil
}
