package skills

import (
	"sort"
	"strings"
)

// TokenSortRatio scores two strings in [0, 100] independent of word order.
// Both strings are lower-cased, split on whitespace, sorted and re-joined,
// then compared with an indel-distance ratio: 200 * LCS / (len(a) + len(b)).
func TokenSortRatio(a, b string) float64 {
	return ratio(sortTokens(a), sortTokens(b))
}

func sortTokens(s string) string {
	tokens := strings.Fields(strings.ToLower(s))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}
	return 200 * float64(lcsLength(ra, rb)) / float64(total)
}

// lcsLength returns the length of the longest common subsequence.
func lcsLength(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// bestFuzzyMatch returns the highest scoring vocabulary token. Ties go to
// the earliest token. ok is false only for an empty vocabulary.
func bestFuzzyMatch(s string, vocabulary []string) (token string, score float64, ok bool) {
	query := sortTokens(s)
	best := -1.0
	for _, v := range vocabulary {
		if r := ratio(query, sortTokens(v)); r > best {
			best = r
			token = v
		}
	}
	if best < 0 {
		return "", 0, false
	}
	return token, best, true
}
