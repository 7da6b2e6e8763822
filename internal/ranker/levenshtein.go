package ranker

// levenshtein computes the edit distance between a and b: the minimum
// number of single-character insertions, deletions, or substitutions
// turning one into the other. Hand-rolled, per DESIGN.md: no string-distance
// library appears anywhere in the corpus (the original source's own
// `levenshtein` crate has no Go equivalent among the pack's dependencies),
// so this is the teacher-idiom-free, direct translation of the textbook
// Wagner–Fischer dynamic-programming algorithm, single-row optimized.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}

	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i

		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[j] = min(
				prev[j]+1,
				curr[j-1]+1,
				prev[j-1]+cost,
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
