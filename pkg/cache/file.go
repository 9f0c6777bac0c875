package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// FileCache implements a file-based artifact cache for CLI usage.
// Artifacts are stored raw (a whole-genome PNG can run to gigabytes,
// so no wrapping encode), with expiration tracked in a sidecar
// metadata file.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache in the given directory.
// The directory will be created if it doesn't exist.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// entryMeta is the sidecar metadata for one cached artifact.
type entryMeta struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves a value from the cache.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	dataPath, metaPath := c.paths(key)

	meta, err := os.ReadFile(metaPath)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var m entryMeta
	if err := json.Unmarshal(meta, &m); err != nil {
		// Invalid metadata - treat as miss
		c.remove(key)
		return nil, false, nil
	}
	if !m.ExpiresAt.IsZero() && time.Now().After(m.ExpiresAt) {
		c.remove(key)
		return nil, false, nil
	}

	data, err := os.ReadFile(dataPath)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value in the cache. The artifact is written to a
// temporary name and renamed into place, so an interrupted render
// never leaves a half-written entry behind.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	dataPath, metaPath := c.paths(key)
	if err := os.MkdirAll(filepath.Dir(dataPath), 0o755); err != nil {
		return err
	}

	tmp := dataPath + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, dataPath); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	var m entryMeta
	if ttl > 0 {
		m.ExpiresAt = time.Now().Add(ttl)
	}
	meta, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(metaPath, meta, 0o644)
}

// Delete removes a value from the cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	c.remove(key)
	return nil
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

func (c *FileCache) remove(key string) {
	dataPath, metaPath := c.paths(key)
	_ = os.Remove(dataPath)
	_ = os.Remove(metaPath)
}

// paths converts a cache key to artifact and metadata file paths.
// Uses a hash-based directory structure to avoid too many files in one dir.
func (c *FileCache) paths(key string) (dataPath, metaPath string) {
	hash := Hash([]byte(key))
	subdir := filepath.Join(c.dir, hash[:2])
	return filepath.Join(subdir, hash[2:]+".dat"), filepath.Join(subdir, hash[2:]+".meta")
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
