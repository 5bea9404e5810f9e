package tiles

import (
	"hash"

	"github.com/robinbryce/tilemmr/mmr"
)

// Tile is an in-memory, byte-addressable record holding a contiguous
// MMR index range plus the ancestor-peak stack that makes it
// self-contained for inclusion proofs.
type Tile struct {
	cfg              Config
	id               uint64
	firstIndex       uint64
	lastLeafMMRIndex uint64
	nextIndex        uint64
	data             []byte
	ancestorPeaks    map[uint64][]byte
	hasher           hash.Hash
}

// ID, FirstIndex, LastLeafMMRIndex and NextIndex expose the tile's
// invariants read-only.
func (t *Tile) ID() uint64               { return t.id }
func (t *Tile) FirstIndex() uint64       { return t.firstIndex }
func (t *Tile) LastLeafMMRIndex() uint64 { return t.lastLeafMMRIndex }
func (t *Tile) NextIndex() uint64        { return t.nextIndex }

// Empty reports whether the tile holds no nodes yet, in which case it
// must not be persisted.
func (t *Tile) Empty() bool { return t.nextIndex == t.firstIndex }

// New allocates the empty id=0 tile.
func New(cfg Config, hasher hash.Hash) *Tile {
	t := &Tile{
		cfg:              cfg,
		id:                0,
		firstIndex:       cfg.firstIndex(0),
		lastLeafMMRIndex: cfg.lastLeafMMRIndex(0),
		data:             make([]byte, cfg.maxTileSize()),
		ancestorPeaks:    map[uint64][]byte{},
		hasher:           hasher,
	}
	t.nextIndex = t.firstIndex
	encodeHeader(t.data, cfg.FieldWidth, cfg.TileHeight, 0)
	return t
}

// Create allocates the tile immediately following parent, seeding its
// ancestor peak region from parent.NextPeakStack().
func Create(cfg Config, parent *Tile, hasher hash.Hash) *Tile {
	id := parent.id + 1
	t := &Tile{
		cfg:              cfg,
		id:                id,
		firstIndex:       cfg.firstIndex(id),
		lastLeafMMRIndex: cfg.lastLeafMMRIndex(id),
		data:             make([]byte, cfg.maxTileSize()),
		hasher:           hasher,
	}
	t.nextIndex = t.firstIndex
	encodeHeader(t.data, cfg.FieldWidth, cfg.TileHeight, id)
	copy(t.data[cfg.headerSize():], parent.NextPeakStack())
	t.ancestorPeaks = t.readAncestorPeaksMap()
	return t
}

// Load parses a persisted tile image into a fully-allocated work
// buffer, ready to accept further appends without reallocating.
func Load(cfg Config, persisted []byte, hasher hash.Hash) (*Tile, error) {
	height, id := decodeHeader(persisted, cfg.FieldWidth)
	if height != cfg.TileHeight {
		return nil, ErrTileHeightMismatch
	}
	t := &Tile{
		cfg:              cfg,
		id:                id,
		firstIndex:       cfg.firstIndex(id),
		lastLeafMMRIndex: cfg.lastLeafMMRIndex(id),
		data:             make([]byte, cfg.maxTileSize()),
		hasher:           hasher,
	}
	copy(t.data, persisted)
	nodesStart := cfg.nodesStart()
	nodeCount := (len(persisted) - nodesStart) / cfg.FieldWidth
	t.nextIndex = t.firstIndex + uint64(nodeCount)
	t.ancestorPeaks = t.readAncestorPeaksMap()
	return t, nil
}

// readAncestorPeaksMap derives the ancestor-peak map from the tile's
// header/peak-slot bytes: the peaks of MMR(firstIndex-1) with height at
// least H-1, assigned in order to the peak slots.
func (t *Tile) readAncestorPeaksMap() map[uint64][]byte {
	m := map[uint64][]byte{}
	if t.id == 0 {
		return m
	}
	qualifying := qualifyingAncestorPeaks(t.firstIndex-1, t.cfg.TileHeight)
	w := t.cfg.FieldWidth
	peaksStart := t.cfg.headerSize()
	for rank, p := range qualifying {
		off := peaksStart + rank*w
		m[p] = t.data[off : off+w]
	}
	return m
}

// AppendLeaf runs the add-leaf-hash procedure against the tile, folding
// in however many interior parent hashes the append completes.
func (t *Tile) AppendLeaf(value []byte) error {
	if t.nextIndex > t.lastLeafMMRIndex {
		return ErrTileFull
	}
	_, err := mmr.AddHashedLeaf(t.hasher, t, value)
	return err
}

// Append writes value at the next free slot and returns the new
// nextIndex. It implements mmr.NodeAppender.
func (t *Tile) Append(value []byte) (uint64, error) {
	capacity := (len(t.data) - t.cfg.nodesStart()) / t.cfg.FieldWidth
	slot := t.nextIndex - t.firstIndex
	if int(slot) >= capacity {
		return 0, ErrInvariantViolated
	}
	w := t.cfg.FieldWidth
	off := t.cfg.nodesStart() + int(slot)*w
	copy(t.data[off:off+w], value)
	t.nextIndex++
	return t.nextIndex, nil
}

// Get returns the hash bytes at node index i, consulting the ancestor
// peak map for indices below the tile's own range. It implements
// mmr.NodeAppender.
func (t *Tile) Get(i uint64) ([]byte, error) {
	if i < t.firstIndex {
		if v, ok := t.ancestorPeaks[i]; ok {
			return v, nil
		}
		return nil, ErrIndexOutOfRange
	}
	if i >= t.nextIndex {
		return nil, ErrIndexOutOfRange
	}
	w := t.cfg.FieldWidth
	slot := i - t.firstIndex
	off := t.cfg.nodesStart() + int(slot)*w
	return t.data[off : off+w], nil
}

// UsedBytes is the byte length of the tile's persisted image: the
// header and peak regions plus one field per node actually written, or
// 0 if the tile is empty.
func (t *Tile) UsedBytes() int {
	if t.Empty() {
		return 0
	}
	return t.cfg.nodesStart() + int(t.nextIndex-t.firstIndex)*t.cfg.FieldWidth
}

// Bytes returns the tile's persisted image, cropped to UsedBytes.
func (t *Tile) Bytes() []byte {
	return t.data[:t.UsedBytes()]
}

// NextPeakStack produces the byte slice that seeds the successor
// tile's ancestor peak region: the carried prefix of this tile's own
// ancestor peaks, followed by this tile's own last node - a new peak of
// height >= H-1, since the tile is full.
func (t *Tile) NextPeakStack() []byte {
	keep := carriedPeakCount(t.id) - discardedPeakCount(t.id)
	w := t.cfg.FieldWidth
	peaksStart := t.cfg.headerSize()
	out := make([]byte, 0, (keep+1)*w)
	for rank := 0; rank < keep; rank++ {
		off := peaksStart + rank*w
		out = append(out, t.data[off:off+w]...)
	}
	lastNode, _ := t.Get(t.nextIndex - 1)
	out = append(out, lastNode...)
	return out
}
