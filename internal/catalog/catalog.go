package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ArtekArtek/fiddle/internal/version"
)

const (
	// defaultHTTPTimeout is the per-request timeout for release feed fetches.
	defaultHTTPTimeout = 15 * time.Second
)

//go:embed data/releases.json
var seedReleasesJSON []byte

// Release holds metadata about an upstream runtime release.
type Release struct {
	TagName    string `json:"tag_name"`
	Prerelease bool   `json:"prerelease"`
}

// Catalog supplies the known runtime versions: an embedded seed list for
// offline start plus the current list from the release feed.
type Catalog struct {
	url    string
	client *http.Client
}

// New creates a Catalog fetching from url.
func New(url string) *Catalog {
	return &Catalog{
		url:    url,
		client: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// Seed returns the embedded release list, normalized and newest first.
func (c *Catalog) Seed() ([]string, error) {
	tags, err := decodeTags(seedReleasesJSON)
	if err != nil {
		return nil, fmt.Errorf("decode seed releases: %w", err)
	}
	return tags, nil
}

// Fetch downloads the current release list from the feed.
func (c *Catalog) Fetch(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build releases request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch releases: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read releases: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("release feed returned %s", resp.Status)
	}

	tags, err := decodeTags(body)
	if err != nil {
		return nil, fmt.Errorf("decode releases: %w", err)
	}
	return tags, nil
}

// decodeTags parses a release payload into normalized tags, newest first.
// Entries that do not parse as versions are skipped.
func decodeTags(payload []byte) ([]string, error) {
	var releases []Release
	if err := json.Unmarshal(payload, &releases); err != nil {
		return nil, err
	}

	tags := make([]string, 0, len(releases))
	for _, release := range releases {
		tag := version.Normalize(release.TagName)
		if !version.IsValid(tag) {
			continue
		}
		tags = append(tags, tag)
	}
	version.SortDescending(tags)
	return tags, nil
}
