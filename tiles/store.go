package tiles

import (
	"context"
	"errors"
	"hash"
)

// Provider is the storage-backend seam a TileStore delegates to. Three
// realizations live in the storage package: Memory, SQLite, Bolt.
//
// version is an opaque compare-and-swap token: ReadTile/ReadHead return
// the version currently stored; ReplaceTile must carry the version
// observed at the corresponding read, and fails ErrChanged if the
// stored value has since moved on.
type Provider interface {
	ReadTile(ctx context.Context, log LogID, id uint64) (data []byte, version string, err error)
	ReadHead(ctx context.Context, log LogID) (data []byte, version string, err error)
	CreateTile(ctx context.Context, log LogID, id uint64, data []byte) error
	ReplaceTile(ctx context.Context, log LogID, id uint64, version string, data []byte) error
}

// TileStore wraps a Provider with tile-level CRUD: parsing persisted
// byte images into Tiles on read, and cropping Tiles to their used
// bytes before handing them to the provider on write.
type TileStore struct {
	cfg           Config
	log           LogID
	provider      Provider
	hasherFactory func() hash.Hash
}

func NewTileStore(cfg Config, log LogID, provider Provider, hasherFactory func() hash.Hash) *TileStore {
	return &TileStore{cfg: cfg, log: log, provider: provider, hasherFactory: hasherFactory}
}

// Head returns the current head tile and its version. An empty
// provider is not an error: it yields a new, empty id=0 tile with no
// version (the store has nothing to compare-and-swap against yet).
func (ts *TileStore) Head(ctx context.Context) (*Tile, string, error) {
	data, version, err := ts.provider.ReadHead(ctx, ts.log)
	if errors.Is(err, ErrEmpty) {
		return New(ts.cfg, ts.hasherFactory()), "", nil
	}
	if err != nil {
		return nil, "", err
	}
	t, err := Load(ts.cfg, data, ts.hasherFactory())
	return t, version, err
}

// Get loads the tile with the given id, propagating ErrNotFound.
func (ts *TileStore) Get(ctx context.Context, id uint64) (*Tile, string, error) {
	data, version, err := ts.provider.ReadTile(ctx, ts.log, id)
	if err != nil {
		return nil, "", err
	}
	t, err := Load(ts.cfg, data, ts.hasherFactory())
	return t, version, err
}

// Create builds the tile that follows parent. It is pure in-memory:
// no I/O happens until Commit.
func (ts *TileStore) Create(parent *Tile) *Tile {
	return Create(ts.cfg, parent, ts.hasherFactory())
}

// Commit persists t. A tile with no nodes is a no-op (tiles must never
// be persisted empty). version == "" means t has never been stored
// before, so Commit creates it; otherwise it attempts a
// compare-and-swap replace against that version.
func (ts *TileStore) Commit(ctx context.Context, t *Tile, version string) error {
	if t.Empty() {
		return nil
	}
	cropped := t.Bytes()
	if version == "" {
		return ts.provider.CreateTile(ctx, ts.log, t.id, cropped)
	}
	return ts.provider.ReplaceTile(ctx, ts.log, t.id, version, cropped)
}
