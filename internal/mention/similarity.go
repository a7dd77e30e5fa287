package mention

// similarText computes the number of matching characters between two rune
// slices using the common-substring recursion also used by PHP's
// similar_text: find the longest common substring, then recurse into the
// unmatched prefixes and suffixes.
func similarText(a, b []rune) int {
	max, posA, posB := 0, 0, 0
	for i := range a {
		for j := range b {
			k := 0
			for i+k < len(a) && j+k < len(b) && a[i+k] == b[j+k] {
				k++
			}
			if k > max {
				max, posA, posB = k, i, j
			}
		}
	}
	if max == 0 {
		return 0
	}

	sum := max
	if posA > 0 && posB > 0 {
		sum += similarText(a[:posA], b[:posB])
	}
	if posA+max < len(a) && posB+max < len(b) {
		sum += similarText(a[posA+max:], b[posB+max:])
	}
	return sum
}

// SimilarityPercent returns the character similarity between two strings as
// a percentage of their combined length. Identical strings score 100,
// strings without common characters score 0. The computation is
// O(len(a)*len(b)), which is why callers pre-filter candidates before
// reaching for it.
func SimilarityPercent(a, b string) float64 {
	if a == "" && b == "" {
		return 0
	}
	ra, rb := []rune(a), []rune(b)
	return float64(similarText(ra, rb)) * 200.0 / float64(len(ra)+len(rb))
}
