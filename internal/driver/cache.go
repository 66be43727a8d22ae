package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"scriptrust/internal/ast"
	"scriptrust/internal/diag"
	"scriptrust/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest is a sha256 content hash used as the cache key.
type Digest = [sha256.Size]byte

// DiskCache stores generated Rust keyed by source hash, so unchanged inputs
// skip the pipeline entirely. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached artifact of one successful compile.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	SourcePath string
	SourceHash Digest

	// Generated Rust output
	Code string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt initializes a disk cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// HashSource computes the cache key for a source text.
func HashSource(src []byte) Digest {
	return sha256.Sum256(src)
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "gen", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache atomically.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = diskCacheSchemaVersion
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload from the disk cache. A missing entry or a schema
// mismatch is a miss, not an error.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// CompileCached compiles through the cache: a hit returns the stored code, a
// miss compiles and stores the artifact when the compile succeeds. A nil
// cache degrades to a plain compile.
func CompileCached(cache *DiskCache, name string, src []byte, opts CompileOptions) (*CompileResult, bool) {
	key := HashSource(src)

	var payload DiskPayload
	if hit, err := cache.Get(key, &payload); err == nil && hit {
		// only successful compiles are cached, so a hit carries no errors;
		// the tree is not stored and stays empty
		fs := source.NewFileSet()
		fileID := fs.AddVirtual(name, src)
		return &CompileResult{
			FileSet: fs,
			FileID:  fileID,
			Program: &ast.Program{},
			Code:    payload.Code,
			Bag:     diag.NewBag(1),
		}, true
	}

	res := Compile(name, src, opts)
	if res.Ok() {
		_ = cache.Put(key, &DiskPayload{
			SourcePath: name,
			SourceHash: key,
			Code:       res.Code,
		})
	}
	return res, false
}
