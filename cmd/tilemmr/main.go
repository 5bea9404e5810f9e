// Command tilemmr is a CLI front end over the tiles/storage packages:
// append leaves, produce and verify inclusion/consistency proofs, and
// inspect or export a tiled log. It is a thin consumer of the core and
// carries none of its own proof logic.
package main

func main() {
	Execute()
}
