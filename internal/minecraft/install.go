package minecraft

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Installer status labels
const (
	StatusDownloadVersion   = "Download %s.json"
	StatusInstallLibraries  = "Install libraries"
	StatusExtractNatives    = "Extract natives"
	StatusInstallAssets     = "Install assets"
	StatusInstallLogging    = "Install logging configuration"
	StatusInstallClient     = "Install client jar"
	StatusInstallComplete   = "Installation complete"
	DefaultAssetIndexFormat = "%s.json"
)

// Callback receives installation progress. Any field may be nil. Calls are
// serialized by the installer even when downloads run in parallel.
type Callback struct {
	SetStatus   func(string)
	SetProgress func(int)
	SetMax      func(int)
}

func (cb Callback) status(s string) {
	if cb.SetStatus != nil {
		cb.SetStatus(s)
	}
}

func (cb Callback) progress(n int) {
	if cb.SetProgress != nil {
		cb.SetProgress(n)
	}
}

func (cb Callback) max(n int) {
	if cb.SetMax != nil {
		cb.SetMax(n)
	}
}

// downloadJob is one file to fetch
type downloadJob struct {
	url  string
	dest string
	sha1 string
}

// assetIndexFile is the parsed assets/indexes/<id>.json
type assetIndexFile struct {
	Objects map[string]struct {
		Hash string `json:"hash"`
		Size int64  `json:"size"`
	} `json:"objects"`
}

// Install downloads everything needed to launch versionID into dir: the version
// JSON (and any parents it inherits from), libraries and natives, assets, the
// logging configuration and the client jar. Files already present with the
// expected checksum are not downloaded again.
func (c *Client) Install(ctx context.Context, versionID, dir string, cb Callback) error {
	return c.install(ctx, versionID, dir, cb, map[string]bool{})
}

func (c *Client) install(ctx context.Context, versionID, dir string, cb Callback, seen map[string]bool) error {
	if seen[versionID] {
		return fmt.Errorf("inheritance cycle at %s", versionID)
	}
	seen[versionID] = true

	logger := log.WithField("version", versionID)

	if err := c.ensureVersionJSON(ctx, versionID, dir, cb); err != nil {
		return err
	}

	raw, err := readVersionFile(dir, versionID)
	if err != nil {
		return err
	}
	if raw.InheritsFrom != "" {
		logger.WithField("parent", raw.InheritsFrom).Info("Installing parent version")
		if err := c.install(ctx, raw.InheritsFrom, dir, cb, seen); err != nil {
			return fmt.Errorf("failed to install parent %s: %w", raw.InheritsFrom, err)
		}
	}

	v, err := LoadVersion(dir, versionID)
	if err != nil {
		return err
	}

	if err := c.installLibraries(ctx, v, dir, cb); err != nil {
		return err
	}
	if err := c.installAssets(ctx, v, dir, cb); err != nil {
		return err
	}
	if err := c.installLogging(ctx, v, dir, cb); err != nil {
		return err
	}
	if err := c.installClient(ctx, v, dir, cb); err != nil {
		return err
	}

	cb.status(StatusInstallComplete)
	logger.Info("Version installed")
	return nil
}

// ensureVersionJSON downloads the version JSON unless it is already on disk.
// Locally present versions that are not in the manifest (e.g. modded) are kept as is.
func (c *Client) ensureVersionJSON(ctx context.Context, versionID, dir string, cb Callback) error {
	dest := VersionJSONPath(dir, versionID)
	if _, err := os.Stat(dest); err == nil {
		return nil
	}

	cb.status(fmt.Sprintf(StatusDownloadVersion, versionID))

	manifest, err := c.FetchManifest(ctx)
	if err != nil {
		return err
	}
	entry, ok := manifest.Find(versionID)
	if !ok {
		return fmt.Errorf("%s: %w", versionID, ErrVersionNotFound)
	}

	if _, err := c.downloadFile(ctx, entry.URL, dest, entry.SHA1); err != nil {
		return fmt.Errorf("failed to download version %s: %w", versionID, err)
	}
	return nil
}

// libraryJobs lists library and native jars allowed in env
func (c *Client) libraryJobs(v *Version, dir string) (jobs []downloadJob, natives []Library) {
	base := filepath.Join(dir, "libraries")
	for _, lib := range v.Libraries {
		if !RulesAllow(lib.Rules, c.env) {
			continue
		}

		if path, ok := lib.ArtifactPath(); ok {
			job := downloadJob{dest: filepath.Join(base, filepath.FromSlash(path))}
			if lib.Downloads != nil && lib.Downloads.Artifact != nil {
				job.url = lib.Downloads.Artifact.URL
				job.sha1 = lib.Downloads.Artifact.SHA1
			}
			if job.url == "" {
				repo := c.librariesURL
				if lib.URL != "" {
					repo = lib.URL
				}
				job.url = strings.TrimSuffix(repo, "/") + "/" + path
			}
			jobs = append(jobs, job)
		}

		if classifier, ok := lib.NativeClassifier(c.env); ok && lib.Downloads != nil {
			if native, ok := lib.Downloads.Classifiers[classifier]; ok {
				path := native.Path
				if path == "" {
					if p, err := MavenPath(lib.Name + ":" + classifier); err == nil {
						path = p
					}
				}
				jobs = append(jobs, downloadJob{
					url:  native.URL,
					dest: filepath.Join(base, filepath.FromSlash(path)),
					sha1: native.SHA1,
				})
				natives = append(natives, lib)
			}
		}
	}
	return jobs, natives
}

// installLibraries downloads libraries and extracts natives
func (c *Client) installLibraries(ctx context.Context, v *Version, dir string, cb Callback) error {
	cb.status(StatusInstallLibraries)

	jobs, natives := c.libraryJobs(v, dir)
	if err := c.runJobs(ctx, jobs, cb); err != nil {
		return fmt.Errorf("failed to install libraries: %w", err)
	}

	if len(natives) == 0 {
		return nil
	}

	cb.status(StatusExtractNatives)
	target := NativesDir(dir, v.ID)
	for _, lib := range natives {
		classifier, _ := lib.NativeClassifier(c.env)
		native := lib.Downloads.Classifiers[classifier]
		path := native.Path
		if path == "" {
			path, _ = MavenPath(lib.Name + ":" + classifier)
		}
		var exclude []string
		if lib.Extract != nil {
			exclude = lib.Extract.Exclude
		}
		jar := filepath.Join(dir, "libraries", filepath.FromSlash(path))
		if err := extractNatives(jar, target, exclude); err != nil {
			return fmt.Errorf("failed to extract natives from %s: %w", lib.Name, err)
		}
	}
	return nil
}

// installAssets downloads the asset index and every object it references
func (c *Client) installAssets(ctx context.Context, v *Version, dir string, cb Callback) error {
	if v.AssetIndex == nil {
		return nil
	}
	cb.status(StatusInstallAssets)

	assetsDir := filepath.Join(dir, "assets")
	indexPath := filepath.Join(assetsDir, "indexes", fmt.Sprintf(DefaultAssetIndexFormat, v.AssetsName()))
	if _, err := c.downloadFile(ctx, v.AssetIndex.URL, indexPath, v.AssetIndex.SHA1); err != nil {
		return fmt.Errorf("failed to download asset index: %w", err)
	}

	data, err := os.ReadFile(indexPath)
	if err != nil {
		return fmt.Errorf("failed to read asset index: %w", err)
	}
	var index assetIndexFile
	if err := json.Unmarshal(data, &index); err != nil {
		return fmt.Errorf("failed to parse asset index: %w", err)
	}

	seen := make(map[string]bool, len(index.Objects))
	jobs := make([]downloadJob, 0, len(index.Objects))
	for _, obj := range index.Objects {
		if len(obj.Hash) < 2 || seen[obj.Hash] {
			continue
		}
		seen[obj.Hash] = true
		prefix := obj.Hash[:2]
		jobs = append(jobs, downloadJob{
			url:  strings.TrimSuffix(c.resourcesURL, "/") + "/" + prefix + "/" + obj.Hash,
			dest: filepath.Join(assetsDir, "objects", prefix, obj.Hash),
			sha1: obj.Hash,
		})
	}

	if err := c.runJobs(ctx, jobs, cb); err != nil {
		return fmt.Errorf("failed to install assets: %w", err)
	}
	return nil
}

// installLogging downloads the client log4j configuration, if the version has one
func (c *Client) installLogging(ctx context.Context, v *Version, dir string, cb Callback) error {
	logging, ok := v.Logging["client"]
	if !ok || logging == nil || logging.File.URL == "" {
		return nil
	}
	cb.status(StatusInstallLogging)

	dest := filepath.Join(dir, "assets", "log_configs", logging.File.ID)
	if _, err := c.downloadFile(ctx, logging.File.URL, dest, logging.File.SHA1); err != nil {
		return fmt.Errorf("failed to download logging configuration: %w", err)
	}
	return nil
}

// installClient downloads the client jar
func (c *Client) installClient(ctx context.Context, v *Version, dir string, cb Callback) error {
	client, ok := v.Downloads["client"]
	if !ok || client.URL == "" {
		return nil
	}
	cb.status(StatusInstallClient)

	dest := VersionJarPath(dir, v.JarName())
	if _, err := c.downloadFile(ctx, client.URL, dest, client.SHA1); err != nil {
		return fmt.Errorf("failed to download client jar: %w", err)
	}
	return nil
}

// runJobs downloads jobs with bounded parallelism, announcing the total via
// SetMax and advancing SetProgress once per finished file
func (c *Client) runJobs(ctx context.Context, jobs []downloadJob, cb Callback) error {
	var mu sync.Mutex
	done := 0

	cb.max(len(jobs))
	cb.progress(0)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(int(c.concurrency.Load()))
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			if _, err := c.downloadFile(gctx, job.url, job.dest, job.sha1); err != nil {
				return err
			}
			mu.Lock()
			done++
			cb.progress(done)
			mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}

// extractNatives unpacks a natives jar into target, skipping excluded prefixes and directories
func extractNatives(jarPath, target string, exclude []string) error {
	r, err := zip.OpenReader(jarPath)
	if err != nil {
		return err
	}
	defer r.Close()

	if err := os.MkdirAll(target, 0755); err != nil {
		return err
	}
	cleanTarget := filepath.Clean(target) + string(os.PathSeparator)

entries:
	for _, f := range r.File {
		for _, prefix := range exclude {
			if strings.HasPrefix(f.Name, prefix) {
				continue entries
			}
		}
		if f.FileInfo().IsDir() {
			continue
		}

		dest := filepath.Join(target, filepath.FromSlash(f.Name))
		if !strings.HasPrefix(dest, cleanTarget) {
			return fmt.Errorf("illegal path in archive: %s", f.Name)
		}
		if err := extractFile(f, dest); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
