package tiles

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/robinbryce/tilemmr/mmr"
)

// TileLog orchestrates batch append across tile boundaries and answers
// node lookups via a last-touched tile cache - effective because proof
// access patterns exhibit locality: an inclusion proof against a
// tile-local accumulator references only that tile.
type TileLog struct {
	cfg         Config
	store       *TileStore
	lastTouched *Tile
	log         *zap.SugaredLogger
}

// NewTileLog wires a TileStore into a TileLog. log may be nil, in which
// case the log operates silently.
func NewTileLog(cfg Config, store *TileStore, log *zap.SugaredLogger) *TileLog {
	return &TileLog{cfg: cfg, store: store, log: log}
}

func (l *TileLog) debugf(template string, args ...interface{}) {
	if l.log != nil {
		l.log.Debugf(template, args...)
	}
}

func (l *TileLog) warnf(template string, args ...interface{}) {
	if l.log != nil {
		l.log.Warnf(template, args...)
	}
}

// Append appends leaves one at a time, committing and opening a fresh
// tile whenever the current one fills. The currently-open tile is
// all-or-nothing: if a mid-batch commit fails, tiles already closed and
// committed remain durable and visible, but nothing from the open tile
// at the point of failure is persisted.
func (l *TileLog) Append(ctx context.Context, leaves [][]byte) error {
	adder, version, err := l.store.Head(ctx)
	if err != nil {
		return fmt.Errorf("tiles: reading head: %w", err)
	}
	dirty := false
	for _, leaf := range leaves {
		if err := adder.AppendLeaf(leaf); err != nil {
			if !errors.Is(err, ErrTileFull) {
				return err
			}
			if dirty {
				l.debugf("tile %d full, committing and opening a new tile", adder.ID())
				if err := l.store.Commit(ctx, adder, version); err != nil {
					return fmt.Errorf("tiles: committing tile %d: %w", adder.ID(), err)
				}
			}
			l.lastTouched = adder
			adder = l.store.Create(adder)
			version = ""
			dirty = false
			if err := adder.AppendLeaf(leaf); err != nil {
				if errors.Is(err, ErrTileFull) {
					return fmt.Errorf("tiles: fresh tile %d reported full: %w", adder.ID(), ErrInvariantViolated)
				}
				return err
			}
		}
		dirty = true
	}
	if dirty {
		if err := l.store.Commit(ctx, adder, version); err != nil {
			return fmt.Errorf("tiles: committing tile %d: %w", adder.ID(), err)
		}
	}
	l.lastTouched = adder
	return nil
}

// Head returns the current head tile without opening it for writes.
func (l *TileLog) Head(ctx context.Context) (*Tile, error) {
	t, _, err := l.store.Head(ctx)
	if err != nil {
		return nil, fmt.Errorf("tiles: reading head: %w", err)
	}
	return t, nil
}

// GetTile returns the tile with the given id, for callers - inspection
// and export - that need a whole tile rather than a single node value.
func (l *TileLog) GetTile(ctx context.Context, id uint64) (*Tile, error) {
	t, _, err := l.store.Get(ctx, id)
	return t, err
}

// Get returns the hash bytes at node index i, consulting the
// last-touched tile cache before falling back to the store.
func (l *TileLog) Get(ctx context.Context, i uint64) ([]byte, error) {
	if l.lastTouched != nil {
		if v, err := l.lastTouched.Get(i); err == nil {
			return v, nil
		}
	}
	// Node i is written while leaf LeafCount(i)-1 is added, so it lives
	// in that leaf's tile.
	tid := (mmr.LeafCount(i) - 1) / l.cfg.LeavesPerTile()
	t, _, err := l.store.Get(ctx, tid)
	if err != nil {
		l.warnf("get(%d): loading tile %d: %v", i, tid, err)
		return nil, err
	}
	l.lastTouched = t
	return t.Get(i)
}

// NodeIterator is a finite, non-restartable lazy sequence over a node
// range. It reads purely from the store and never consults or
// populates TileLog's last-touched cache, so large scans don't
// invalidate it. Call EnumerateNodes/EnumerateLeaves again to restart.
type NodeIterator struct {
	ctx   context.Context
	store *TileStore
	cfg   Config
	next  uint64
	last  uint64
	tile  *Tile

	// leavesOnly skips interior (height > 0) nodes.
	leavesOnly bool
}

// Next returns the next hash value in the range, or ok=false once the
// range is exhausted.
func (it *NodeIterator) Next() (value []byte, ok bool, err error) {
	for it.leavesOnly && it.next <= it.last && mmr.IndexHeight(it.next) != 0 {
		it.next++
	}
	if it.next > it.last {
		return nil, false, nil
	}
	tid := (mmr.LeafCount(it.next) - 1) / it.cfg.LeavesPerTile()
	if it.tile == nil || it.tile.ID() != tid {
		t, _, err := it.store.Get(it.ctx, tid)
		if err != nil {
			return nil, false, err
		}
		it.tile = t
	}
	v, err := it.tile.Get(it.next)
	if err != nil {
		return nil, false, err
	}
	it.next++
	return v, true, nil
}

// EnumerateNodes returns an iterator over node indices [first, last].
func (l *TileLog) EnumerateNodes(ctx context.Context, first, last uint64) *NodeIterator {
	return &NodeIterator{ctx: ctx, store: l.store, cfg: l.cfg, next: first, last: last}
}

// EnumerateLeaves returns an iterator over the leaves [firstLeaf,
// lastLeaf], translated to the underlying node index range; interior
// nodes within that range are skipped.
func (l *TileLog) EnumerateLeaves(ctx context.Context, firstLeaf, lastLeaf uint64) *NodeIterator {
	it := l.EnumerateNodes(ctx, mmr.MMRIndex(firstLeaf), mmr.MMRIndex(lastLeaf))
	it.leavesOnly = true
	return it
}
