package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/jonwraymond/imagecache/cachekey"
)

const fileExt = ".cnt"

// FileStore is an encoded-bytes tier on local disk. Entries live at
// {dir}/{id[0:2]}/{id}.cnt where id is cachekey.ResourceID(key). Writes go
// to a temporary file in the shard and are renamed into place. Under an
// expiring policy an entry older than the TTL, judged by its modification
// time, reads as a miss and is removed.
type FileStore struct {
	dir    string
	policy Policy
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithFilePolicy sets the expiry policy. Default: NoExpiryPolicy.
func WithFilePolicy(p Policy) FileOption {
	return func(s *FileStore) { s.policy = p }
}

// NewFileStore creates a file tier rooted at dir, creating it if needed.
func NewFileStore(dir string, opts ...FileOption) (*FileStore, error) {
	if dir == "" {
		return nil, ErrNoDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create dir: %w", err)
	}
	s := &FileStore{dir: dir, policy: NoExpiryPolicy()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// live stats the entry for key and drops it when it has expired.
func (s *FileStore) live(key cachekey.Key) (bool, error) {
	path := s.Path(key)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache: stat entry: %w", err)
	}
	if exp := s.policy.expiry(info.ModTime()); !exp.IsZero() && !time.Now().Before(exp) {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return false, fmt.Errorf("cache: remove expired entry: %w", err)
		}
		return false, nil
	}
	return true, nil
}

// Dir returns the root directory.
func (s *FileStore) Dir() string { return s.dir }

// Path returns where the entry for key is stored.
func (s *FileStore) Path(key cachekey.Key) string {
	id := cachekey.ResourceID(key)
	return filepath.Join(s.dir, id[:2], id+fileExt)
}

// Get reads the entry for key.
func (s *FileStore) Get(ctx context.Context, key cachekey.Key) ([]byte, bool, error) {
	if err := ValidateKey(key); err != nil {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if ok, err := s.live(key); !ok || err != nil {
		return nil, false, err
	}
	b, err := os.ReadFile(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: read entry: %w", err)
	}
	return b, true, nil
}

// Contains reports whether an entry file exists for key.
func (s *FileStore) Contains(_ context.Context, key cachekey.Key) (bool, error) {
	if err := ValidateKey(key); err != nil {
		return false, err
	}
	return s.live(key)
}

// Set writes value for key atomically.
func (s *FileStore) Set(ctx context.Context, key cachekey.Key, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	path := s.Path(key)
	shard := filepath.Dir(path)
	if err := os.MkdirAll(shard, 0o755); err != nil {
		return fmt.Errorf("cache: create shard: %w", err)
	}

	tmp, err := os.CreateTemp(shard, "*.tmp")
	if err != nil {
		return fmt.Errorf("cache: create temp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("cache: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("cache: close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("cache: rename entry: %w", err)
	}
	return nil
}

// Delete removes the entry for key. Idempotent.
func (s *FileStore) Delete(_ context.Context, key cachekey.Key) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	err := os.Remove(s.Path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cache: remove entry: %w", err)
	}
	return nil
}

// Clear removes every entry and shard directory.
func (s *FileStore) Clear() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("cache: read dir: %w", err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(s.dir, e.Name())); err != nil {
			return fmt.Errorf("cache: clear: %w", err)
		}
	}
	return nil
}

// Probe checks that the directory is writable.
func (s *FileStore) Probe(_ context.Context) error {
	f, err := os.CreateTemp(s.dir, ".probe-*")
	if err != nil {
		return fmt.Errorf("cache: dir not writable: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

var (
	_ Store[[]byte] = (*FileStore)(nil)
	_ Prober        = (*FileStore)(nil)
)
