package mmr

// CompleteMMR returns the smallest c >= i such that g(c+1) <= g(c): the
// first position at or after i that is a left child or a terminal node,
// i.e. owes no pending parent.
func CompleteMMR(i uint64) uint64 {
	for IndexHeight(i+1) > IndexHeight(i) {
		i++
	}
	return i
}

// FirstMMRSize returns the first complete MMR size (node count) whose
// range contains i, i.e. CompleteMMR(i)+1.
func FirstMMRSize(i uint64) uint64 {
	return CompleteMMR(i) + 1
}
