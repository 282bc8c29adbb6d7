package photo

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const thumbsBucket = "thumbnails"

// DiskCache persists rendered thumbnails across sessions in a bbolt file.
// Keys include size and modification time, so an edited file misses.
type DiskCache struct {
	db *bolt.DB
}

// OpenDiskCache opens or creates the cache file at path.
func OpenDiskCache(path string) (*DiskCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open thumbnail cache %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(thumbsBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &DiskCache{db: db}, nil
}

// CacheKey identifies one version of a file.
func CacheKey(path string, size int64, mod time.Time) string {
	return fmt.Sprintf("%s|%d|%d", path, size, mod.UnixNano())
}

// Get returns the cached bytes for key.
func (c *DiskCache) Get(key string) ([]byte, bool) {
	var out []byte
	_ = c.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(thumbsBucket)).Get([]byte(key)); v != nil {
			out = append([]byte(nil), v...)
		}
		return nil
	})
	return out, out != nil
}

// Put stores data under key.
func (c *DiskCache) Put(key string, data []byte) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(thumbsBucket)).Put([]byte(key), data)
	})
}

// Len returns the number of cached thumbnails.
func (c *DiskCache) Len() int {
	n := 0
	_ = c.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket([]byte(thumbsBucket)).Stats().KeyN
		return nil
	})
	return n
}

func (c *DiskCache) Close() error {
	return c.db.Close()
}
