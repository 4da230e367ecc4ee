// internal/textutil/fuzzy.go
package textutil

import "strings"

// shortNameLen is the boundary below which only one edit is tolerated;
// abbreviations and short handles produce too many near-neighbors otherwise.
const shortNameLen = 8

// EditDistance computes the classic Levenshtein distance between two strings,
// counted in runes, using a rolling single-row table.
func EditDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// MatchNames reports whether two normalized names denote the same entity.
// Accepts substring containment either way, edit distance ≤1 for short names,
// or ≤2 otherwise. Favors recall on short handles while bounding false
// positives on longer names.
func MatchNames(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	d := EditDistance(a, b)
	if max(len([]rune(a)), len([]rune(b))) <= shortNameLen {
		return d <= 1
	}
	return d <= 2
}

// Ratio returns the similarity ratio 1 - distance/max(len, 1) between two
// strings, in [0, 1].
func Ratio(a, b string) float64 {
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		longest = 1
	}
	return 1 - float64(EditDistance(a, b))/float64(longest)
}

func min3(a, b, c int) int {
	return min(a, min(b, c))
}
