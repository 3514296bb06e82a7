package minecraft

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

// Mojang endpoints
const (
	DefaultManifestURL  = "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json"
	DefaultResourcesURL = "https://resources.download.minecraft.net"
	DefaultLibrariesURL = "https://libraries.minecraft.net"
)

// Version types listed in the manifest
const (
	TypeRelease  = "release"
	TypeSnapshot = "snapshot"
	TypeOldBeta  = "old_beta"
	TypeOldAlpha = "old_alpha"
)

// Client defaults
const (
	DefaultRequestTimeout = 30 * time.Second
	DefaultConcurrency    = 8
	DefaultListLimit      = 20
)

// VersionEntry is a single version listed in the manifest
type VersionEntry struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	URL         string    `json:"url"`
	Time        time.Time `json:"time"`
	ReleaseTime time.Time `json:"releaseTime"`
	SHA1        string    `json:"sha1"`
}

// Manifest is the parsed version_manifest_v2.json
type Manifest struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []VersionEntry `json:"versions"`
}

// Find returns the manifest entry for versionID
func (m *Manifest) Find(versionID string) (VersionEntry, bool) {
	for _, v := range m.Versions {
		if v.ID == versionID {
			return v, true
		}
	}
	return VersionEntry{}, false
}

// Client talks to Mojang's piston-meta and resource servers. It implements
// version listing, installation and is safe for sequential reuse.
type Client struct {
	httpClient   *http.Client
	manifestURL  string
	resourcesURL string
	librariesURL string
	concurrency  atomic.Int32
	env          Environment
}

// NewClient creates a client with the public Mojang endpoints
func NewClient() *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: 10 * time.Minute},
		manifestURL:  DefaultManifestURL,
		resourcesURL: DefaultResourcesURL,
		librariesURL: DefaultLibrariesURL,
		env:          CurrentEnvironment(),
	}
	c.concurrency.Store(DefaultConcurrency)
	return c
}

// SetHTTPClient replaces the HTTP client used for all requests
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// SetManifestURL overrides the version manifest location
func (c *Client) SetManifestURL(url string) {
	c.manifestURL = url
}

// SetResourcesURL overrides the asset object server
func (c *Client) SetResourcesURL(url string) {
	c.resourcesURL = url
}

// SetLibrariesURL overrides the fallback Maven repository for libraries without download info
func (c *Client) SetLibrariesURL(url string) {
	c.librariesURL = url
}

// SetConcurrency sets the number of parallel file downloads (1-32)
func (c *Client) SetConcurrency(n int) {
	if n < 1 {
		n = 1
	}
	if n > 32 {
		n = 32
	}
	c.concurrency.Store(int32(n))
}

// SetEnvironment overrides the host environment used for library rules
func (c *Client) SetEnvironment(env Environment) {
	c.env = env
}

// FetchManifest downloads and parses the version manifest
func (c *Client) FetchManifest(ctx context.Context) (*Manifest, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.manifestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create manifest request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch version manifest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch version manifest: HTTP %s", resp.Status)
	}

	var manifest Manifest
	if err := json.NewDecoder(resp.Body).Decode(&manifest); err != nil {
		return nil, fmt.Errorf("failed to parse version manifest: %w", err)
	}

	log.WithField("versions", len(manifest.Versions)).Debug("Version manifest fetched")
	return &manifest, nil
}

// FetchVersions returns every version listed in the manifest
func (c *Client) FetchVersions(ctx context.Context) ([]VersionEntry, error) {
	manifest, err := c.FetchManifest(ctx)
	if err != nil {
		return nil, err
	}
	return manifest.Versions, nil
}

// LatestReleases filters entries to type "release", sorts them newest first by
// release time and returns at most limit of them.
func LatestReleases(entries []VersionEntry, limit int) []VersionEntry {
	releases := make([]VersionEntry, 0, len(entries))
	for _, e := range entries {
		if e.Type == TypeRelease {
			releases = append(releases, e)
		}
	}

	sort.SliceStable(releases, func(i, j int) bool {
		return releases[i].ReleaseTime.After(releases[j].ReleaseTime)
	})

	if limit >= 0 && len(releases) > limit {
		releases = releases[:limit]
	}
	return releases
}
