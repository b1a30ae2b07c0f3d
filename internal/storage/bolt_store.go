package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/artemisiagab/skill-sport-briefing/internal/domain"
	bolt "go.etcd.io/bbolt"
)

const (
	briefingBucket   = "briefings"
	expiryValueBytes = 8
)

// boltStore implements Store backed by BoltDB. Each value is an expiry prefix
// followed by the payload JSON.
type boltStore struct {
	db              *bolt.DB
	cleanupMu       sync.Mutex
	lastCleanup     atomic.Int64
	briefingTTL     time.Duration
	cleanupInterval time.Duration
}

// openBolt initializes a BoltDB-backed archive.
func openBolt(path string, opts Options) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(briefingBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	store := &boltStore{
		db:              db,
		briefingTTL:     opts.BriefingTTL,
		cleanupInterval: opts.CleanupInterval,
	}
	store.lastCleanup.Store(time.Now().Unix())
	return store, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// SaveBriefing archives the payload under its date, overwriting any previous
// gather for the same day.
func (b *boltStore) SaveBriefing(date string, payload domain.Payload) error {
	if b == nil || b.db == nil {
		return nil
	}

	now := time.Now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal briefing: %w", err)
	}

	value := make([]byte, expiryValueBytes+len(raw))
	binary.BigEndian.PutUint64(value, uint64(now.Add(b.briefingTTL).Unix()))
	copy(value[expiryValueBytes:], raw)

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(briefingBucket))
		if bucket == nil {
			return fmt.Errorf("briefing bucket missing")
		}
		return bucket.Put([]byte(date), value)
	})
}

// Briefing returns the archived payload for the given date, if any. Expired
// entries are removed on access.
func (b *boltStore) Briefing(date string) (domain.Payload, bool, error) {
	if b == nil || b.db == nil {
		return domain.Payload{}, false, nil
	}

	if err := b.maybeCleanupExpired(time.Now()); err != nil {
		return domain.Payload{}, false, err
	}

	var (
		payload domain.Payload
		found   bool
	)
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(briefingBucket))
		if bucket == nil {
			return fmt.Errorf("briefing bucket missing")
		}

		key := []byte(date)
		value := bucket.Get(key)
		if value == nil {
			return nil
		}

		expiry, raw, ok := decodeValue(value)
		if !ok || !expiry.After(time.Now()) {
			return bucket.Delete(key)
		}

		if err := json.Unmarshal(raw, &payload); err != nil {
			return fmt.Errorf("decode archived briefing %s: %w", date, err)
		}
		found = true
		return nil
	})
	return payload, found, err
}

// maybeCleanupExpired removes expired briefings on a fixed cadence to avoid
// unbounded growth.
func (b *boltStore) maybeCleanupExpired(now time.Time) error {
	if b == nil || b.db == nil {
		return nil
	}

	last := time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	b.cleanupMu.Lock()
	defer b.cleanupMu.Unlock()

	last = time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(briefingBucket))
		if bucket == nil {
			return fmt.Errorf("briefing bucket missing")
		}

		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			expiry, _, ok := decodeValue(v)
			if !ok || !expiry.After(now) {
				if err := cursor.Delete(); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err == nil {
		b.lastCleanup.Store(now.Unix())
	}
	return err
}

// decodeValue splits a stored value into its expiry time and payload bytes.
func decodeValue(value []byte) (time.Time, []byte, bool) {
	if len(value) < expiryValueBytes {
		return time.Time{}, nil, false
	}
	unix := int64(binary.BigEndian.Uint64(value))
	if unix <= 0 {
		return time.Time{}, nil, false
	}
	return time.Unix(unix, 0), value[expiryValueBytes:], true
}
