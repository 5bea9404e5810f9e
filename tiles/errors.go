package tiles

import "errors"

var (
	// ErrIndexOutOfRange is returned by Tile.Get for a node index
	// outside the tile's owned region and not present in its ancestor
	// peak map.
	ErrIndexOutOfRange = errors.New("tiles: index out of range")
	// ErrTileFull is returned by Tile.AppendLeaf when the tile has
	// reached capacity. It is always caught by TileLog.Append and
	// never surfaced to the caller.
	ErrTileFull = errors.New("tiles: tile is full")
	// ErrTileHeightMismatch is returned by Load when the persisted
	// header's tile_height differs from the configured height.
	ErrTileHeightMismatch = errors.New("tiles: tile height mismatch")
	// ErrNotFound is returned by a Provider when a requested tile id
	// does not exist.
	ErrNotFound = errors.New("tiles: tile not found")
	// ErrEmpty is returned by a Provider when no tiles exist yet.
	ErrEmpty = errors.New("tiles: store is empty")
	// ErrExists is returned by a Provider's create when the id is
	// already present.
	ErrExists = errors.New("tiles: tile already exists")
	// ErrChanged is returned by a Provider's replace when the stored
	// version no longer matches the caller's version.
	ErrChanged = errors.New("tiles: tile version changed")
	// ErrInvalidProof marks a consistency proof whose shape is
	// inconsistent with the from/to sizes it was built against. No
	// function in this package returns it; mmr.ConsistentRoots and
	// mmr.VerifyConsistency report that condition as mmr.ErrInvalidProof.
	ErrInvalidProof = errors.New("tiles: invalid proof")
	// ErrInvariantViolated marks a condition the design treats as a
	// bug rather than a recoverable error - e.g. a freshly created
	// tile immediately reporting ErrTileFull.
	ErrInvariantViolated = errors.New("tiles: invariant violated")
)
