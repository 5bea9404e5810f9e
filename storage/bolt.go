package storage

import (
	"context"
	"encoding/binary"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/robinbryce/tilemmr/tiles"
)

var headKey = []byte("head")

// Bolt is a tiles.Provider backed by a bbolt database: one bucket per
// log, tile id as an 8-byte big-endian key, and a reserved "head" key
// holding the current head id. Each tile's version is stored as an
// 8-byte big-endian prefix ahead of its data within the same value, so
// a read returns both in one Get.
type Bolt struct {
	db *bbolt.DB
}

// OpenBolt opens or creates the bbolt database at path.
func OpenBolt(path string) (*Bolt, error) {
	db, err := bbolt.Open(path, 0o666, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: open bolt database: %w", err)
	}
	return &Bolt{db: db}, nil
}

// Close closes the underlying database.
func (b *Bolt) Close() error {
	return b.db.Close()
}

func bucketName(log tiles.LogID) []byte {
	return []byte(log.String())
}

func tileKey(id uint64) []byte {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], id)
	return key[:]
}

func encodeVersionedValue(version uint64, data []byte) []byte {
	out := make([]byte, 8+len(data))
	binary.BigEndian.PutUint64(out[:8], version)
	copy(out[8:], data)
	return out
}

func decodeVersionedValue(v []byte) (version uint64, data []byte) {
	version = binary.BigEndian.Uint64(v[:8])
	data = append([]byte(nil), v[8:]...)
	return version, data
}

func (b *Bolt) ReadTile(_ context.Context, log tiles.LogID, id uint64) ([]byte, string, error) {
	var data []byte
	var version uint64
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName(log))
		if bucket == nil {
			return tiles.ErrNotFound
		}
		v := bucket.Get(tileKey(id))
		if v == nil {
			return tiles.ErrNotFound
		}
		version, data = decodeVersionedValue(v)
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("%d", version), nil
}

func (b *Bolt) ReadHead(ctx context.Context, log tiles.LogID) ([]byte, string, error) {
	var id uint64
	var found bool
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName(log))
		if bucket == nil {
			return nil
		}
		v := bucket.Get(headKey)
		if v == nil {
			return nil
		}
		id = binary.BigEndian.Uint64(v)
		found = true
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("storage: read head: %w", err)
	}
	if !found {
		return nil, "", tiles.ErrEmpty
	}
	return b.ReadTile(ctx, log, id)
}

func (b *Bolt) CreateTile(_ context.Context, log tiles.LogID, id uint64, data []byte) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketName(log))
		if err != nil {
			return fmt.Errorf("storage: create log bucket: %w", err)
		}
		if bucket.Get(tileKey(id)) != nil {
			return tiles.ErrExists
		}
		if err := bucket.Put(tileKey(id), encodeVersionedValue(0, data)); err != nil {
			return fmt.Errorf("storage: put tile %d: %w", id, err)
		}
		current := bucket.Get(headKey)
		if current == nil || binary.BigEndian.Uint64(current) <= id {
			var headValue [8]byte
			binary.BigEndian.PutUint64(headValue[:], id)
			if err := bucket.Put(headKey, headValue[:]); err != nil {
				return fmt.Errorf("storage: advance head to %d: %w", id, err)
			}
		}
		return nil
	})
}

func (b *Bolt) ReplaceTile(_ context.Context, log tiles.LogID, id uint64, version string, data []byte) error {
	var wantVersion uint64
	if _, err := fmt.Sscanf(version, "%d", &wantVersion); err != nil {
		return fmt.Errorf("storage: malformed version %q: %w", version, err)
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketName(log))
		if bucket == nil {
			return tiles.ErrNotFound
		}
		v := bucket.Get(tileKey(id))
		if v == nil {
			return tiles.ErrNotFound
		}
		current, _ := decodeVersionedValue(v)
		if current != wantVersion {
			return tiles.ErrChanged
		}
		return bucket.Put(tileKey(id), encodeVersionedValue(current+1, data))
	})
}

var _ tiles.Provider = (*Bolt)(nil)
