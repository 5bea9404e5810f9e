// Package tiles implements the tile format, the tile store, and the
// tile log: the physical layout of a Merkle Mountain Range as
// fixed-shape, independently persistable chunks, and the orchestration
// that appends to and reads from a sequence of them.
package tiles

import (
	"encoding/binary"

	"github.com/robinbryce/tilemmr/mmr"
)

// peakSlotCount is the fixed number of ancestor-peak slots reserved in
// every tile's header region - the upper bound on peaks a 2^64-bounded
// MMR can ever carry.
const peakSlotCount = 64

// Config parameterises tile geometry: tile_height H (leaves per tile =
// 1<<H) and the field width W (hash size).
type Config struct {
	TileHeight uint64
	FieldWidth int
}

// DefaultFieldWidth is the hash size this format is defined over
// (SHA-256 and other 32-byte digests).
const DefaultFieldWidth = 32

// LeavesPerTile returns 1<<H.
func (cfg Config) LeavesPerTile() uint64 {
	return uint64(1) << cfg.TileHeight
}

// headerSize is exactly one field width: two big-endian u64s (height,
// id) right-justified in it, the rest reserved/zero.
func (cfg Config) headerSize() int {
	return cfg.FieldWidth
}

// peaksSize is the fixed 64-slot ancestor peak region.
func (cfg Config) peaksSize() int {
	return peakSlotCount * cfg.FieldWidth
}

// nodesStart is the byte offset where the node region begins.
func (cfg Config) nodesStart() int {
	return cfg.headerSize() + cfg.peaksSize()
}

// maxTileSize is the fully-allocated byte size of a tile's work buffer:
// header + peak slots + room for every node the tile can ever hold. A
// tile's own perfect subtree needs HeightIndexSize(H) slots, but
// add-leaf-hash keeps merging upward into the carried ancestor peaks
// too, so up to peakSlotCount further interior nodes can land in this
// tile before a merge finally stops short of a carried peak.
func (cfg Config) maxTileSize() int {
	nodes := mmr.HeightIndexSize(cfg.TileHeight) + peakSlotCount
	return cfg.nodesStart() + int(nodes)*cfg.FieldWidth
}

// firstIndex is the MMR node index of the first node (the first leaf)
// this tile owns.
func (cfg Config) firstIndex(id uint64) uint64 {
	return mmr.MMRIndex(id * cfg.LeavesPerTile())
}

// lastLeafMMRIndex is the MMR node index the tile's last leaf occupies
// once the tile is full.
func (cfg Config) lastLeafMMRIndex(id uint64) uint64 {
	return mmr.MMRIndex((id+1)*cfg.LeavesPerTile() - 1)
}

func encodeHeader(buf []byte, w int, height, id uint64) {
	for i := range buf[:w] {
		buf[i] = 0
	}
	binary.BigEndian.PutUint64(buf[w-16:w-8], height)
	binary.BigEndian.PutUint64(buf[w-8:w], id)
}

func decodeHeader(buf []byte, w int) (height, id uint64) {
	height = binary.BigEndian.Uint64(buf[w-16 : w-8])
	id = binary.BigEndian.Uint64(buf[w-8 : w])
	return height, id
}
