package quality

// Candidate is one competitor in a best-of-group selection
type Candidate struct {
	// Name is the display name used for tie-breaks
	Name  string
	Total float64
}

// Best returns the index of the winning candidate: the strictly highest
// total, ties going to the name that sorts first byte-wise. Fewer than two
// candidates have no winner.
func Best(candidates []Candidate) (int, bool) {
	if len(candidates) < 2 {
		return -1, false
	}

	best := 0
	for i := 1; i < len(candidates); i++ {
		c, b := candidates[i], candidates[best]
		if c.Total > b.Total || (c.Total == b.Total && c.Name < b.Name) {
			best = i
		}
	}
	return best, true
}
