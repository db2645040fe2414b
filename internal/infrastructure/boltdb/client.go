package boltdb

import (
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names for the scheduler's datastore.
const (
	BucketSchedules = "schedules"
	BucketStats     = "stats"
	BucketMeta      = "meta"
)

// Client wraps the BoltDB file holding every date-keyed record. Bolt's
// single-writer file lock and transactional writes give the atomic
// replace-on-write the storage contract requires.
type Client struct {
	db *bolt.DB
}

// Open initializes the datastore file and ensures all buckets exist.
func Open(path string) (*Client, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{BucketSchedules, BucketStats, BucketMeta} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Client{db: db}, nil
}

// View runs a read-only transaction.
func (c *Client) View(fn func(tx *bolt.Tx) error) error {
	if c == nil || c.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return c.db.View(fn)
}

// Update runs a read-write transaction.
func (c *Client) Update(fn func(tx *bolt.Tx) error) error {
	if c == nil || c.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return c.db.Update(fn)
}

// Count returns the number of keys in a bucket.
func (c *Client) Count(bucket string) (int, error) {
	var count int
	err := c.View(func(tx *bolt.Tx) error {
		count = tx.Bucket([]byte(bucket)).Stats().KeyN
		return nil
	})
	return count, err
}

// Stats exposes Bolt statistics for monitoring endpoints.
func (c *Client) Stats() bolt.Stats {
	if c == nil || c.db == nil {
		return bolt.Stats{}
	}
	return c.db.Stats()
}

// Close closes the Bolt database.
func (c *Client) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}
