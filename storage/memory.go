// Package storage provides Provider realizations for tiles.TileStore:
// an in-process map for tests and small tools, and durable backends
// over SQLite and bbolt.
package storage

import (
	"context"
	"strconv"
	"sync"

	"github.com/robinbryce/tilemmr/tiles"
)

type logTiles struct {
	data    map[uint64][]byte
	version map[uint64]int
	headID  uint64
	hasHead bool
}

// Memory is an in-process, mutex-guarded tiles.Provider keyed by LogID.
// It never persists anything to disk; it exists for tests and for
// --backend memory in the CLI.
type Memory struct {
	mu   sync.Mutex
	logs map[tiles.LogID]*logTiles
}

// NewMemory returns an empty Memory provider.
func NewMemory() *Memory {
	return &Memory{logs: map[tiles.LogID]*logTiles{}}
}

func (m *Memory) logFor(log tiles.LogID) *logTiles {
	lt, ok := m.logs[log]
	if !ok {
		lt = &logTiles{data: map[uint64][]byte{}, version: map[uint64]int{}}
		m.logs[log] = lt
	}
	return lt
}

func (m *Memory) ReadTile(_ context.Context, log tiles.LogID, id uint64) ([]byte, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lt := m.logFor(log)
	data, ok := lt.data[id]
	if !ok {
		return nil, "", tiles.ErrNotFound
	}
	return data, strconv.Itoa(lt.version[id]), nil
}

func (m *Memory) ReadHead(ctx context.Context, log tiles.LogID) ([]byte, string, error) {
	m.mu.Lock()
	lt := m.logFor(log)
	if !lt.hasHead {
		m.mu.Unlock()
		return nil, "", tiles.ErrEmpty
	}
	id := lt.headID
	m.mu.Unlock()
	return m.ReadTile(ctx, log, id)
}

func (m *Memory) CreateTile(_ context.Context, log tiles.LogID, id uint64, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	lt := m.logFor(log)
	if _, ok := lt.data[id]; ok {
		return tiles.ErrExists
	}
	lt.data[id] = append([]byte(nil), data...)
	lt.version[id] = 0
	if !lt.hasHead || id >= lt.headID {
		lt.headID = id
		lt.hasHead = true
	}
	return nil
}

func (m *Memory) ReplaceTile(_ context.Context, log tiles.LogID, id uint64, version string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	lt := m.logFor(log)
	current, ok := lt.version[id]
	if !ok {
		return tiles.ErrNotFound
	}
	if strconv.Itoa(current) != version {
		return tiles.ErrChanged
	}
	lt.data[id] = append([]byte(nil), data...)
	lt.version[id] = current + 1
	return nil
}

var _ tiles.Provider = (*Memory)(nil)
