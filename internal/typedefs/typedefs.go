package typedefs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ArtekArtek/fiddle/internal/version"
)

const (
	// DefinitionFileName is the definition file kept per version.
	DefinitionFileName = "electron.d.ts"

	// defaultHTTPTimeout is the per-request timeout for definition fetches.
	defaultHTTPTimeout = 15 * time.Second
)

// Refresher updates editor type definitions when the selected version
// changes.
type Refresher interface {
	Refresh(ctx context.Context, ver string) error
}

// RefresherFunc adapts a function to the Refresher interface.
type RefresherFunc func(ctx context.Context, ver string) error

// Refresh calls f.
func (f RefresherFunc) Refresh(ctx context.Context, ver string) error {
	return f(ctx, ver)
}

// DiskCache fetches each version's definition file once and keeps it under
// <dir>/<version>/electron.d.ts.
type DiskCache struct {
	dir         string
	urlTemplate string
	client      *http.Client
}

// NewDiskCache creates a cache rooted at dir. urlTemplate holds one %s
// placeholder for the normalized version.
func NewDiskCache(dir, urlTemplate string) *DiskCache {
	return &DiskCache{
		dir:         dir,
		urlTemplate: urlTemplate,
		client:      &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// Path returns the cached definition file location for the version.
func (c *DiskCache) Path(ver string) string {
	return filepath.Join(c.dir, version.Normalize(ver), DefinitionFileName)
}

// Refresh ensures the definition file for the version is cached locally.
// A cached version is not fetched again.
func (c *DiskCache) Refresh(ctx context.Context, ver string) error {
	ver = version.Normalize(ver)
	path := c.Path(ver)

	if _, err := os.Stat(path); err == nil {
		return nil
	}

	url := fmt.Sprintf(c.urlTemplate, ver)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build definitions request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch definitions for %s: %w", ver, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("definitions feed returned %s for %s", resp.Status, ver)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read definitions for %s: %w", ver, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create definitions directory: %w", err)
	}
	if err := os.WriteFile(path, body, 0644); err != nil {
		return fmt.Errorf("write definitions for %s: %w", ver, err)
	}
	return nil
}
