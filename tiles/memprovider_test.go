package tiles

import (
	"context"
	"strconv"
	"sync"
)

// memProvider is a minimal in-memory Provider double, good enough to
// drive TileStore/TileLog tests without a real backend. storage.Memory
// is its production equivalent.
type memProvider struct {
	mu      sync.Mutex
	tiles   map[uint64][]byte
	version map[uint64]int
	headID  uint64
	hasHead bool
}

func newMemProvider() *memProvider {
	return &memProvider{tiles: map[uint64][]byte{}, version: map[uint64]int{}}
}

func (p *memProvider) ReadTile(_ context.Context, _ LogID, id uint64) ([]byte, string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	data, ok := p.tiles[id]
	if !ok {
		return nil, "", ErrNotFound
	}
	return data, strconv.Itoa(p.version[id]), nil
}

func (p *memProvider) ReadHead(ctx context.Context, log LogID) ([]byte, string, error) {
	p.mu.Lock()
	if !p.hasHead {
		p.mu.Unlock()
		return nil, "", ErrEmpty
	}
	id := p.headID
	p.mu.Unlock()
	return p.ReadTile(ctx, log, id)
}

func (p *memProvider) CreateTile(_ context.Context, _ LogID, id uint64, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.tiles[id]; ok {
		return ErrExists
	}
	p.tiles[id] = append([]byte(nil), data...)
	p.version[id] = 0
	if !p.hasHead || id >= p.headID {
		p.headID = id
		p.hasHead = true
	}
	return nil
}

func (p *memProvider) ReplaceTile(_ context.Context, _ LogID, id uint64, version string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	current, ok := p.version[id]
	if !ok {
		return ErrNotFound
	}
	if strconv.Itoa(current) != version {
		return ErrChanged
	}
	p.tiles[id] = append([]byte(nil), data...)
	p.version[id] = current + 1
	return nil
}
