package ranking

import (
	"strings"

	"github.com/jonathan/career-roadmap/internal/types"
)

const (
	// keywordBonus is added when the free-text context mentions one of the
	// occupation's leading vocabulary tokens.
	keywordBonus = 0.2

	// keywordScanLimit is how many leading vocabulary tokens are checked
	// against the context.
	keywordScanLimit = 5
)

// computeSkillOverlapScore returns |skills ∩ vocabulary| / max(1, |vocabulary|)
// and the matched tokens in vocabulary order.
func computeSkillOverlapScore(occupation *types.Occupation, skills map[string]struct{}) (float64, []string) {
	matched := make([]string, 0)
	for _, s := range occupation.Skills {
		if _, ok := skills[s]; ok {
			matched = append(matched, s)
		}
	}
	return float64(len(matched)) / float64(max(1, len(occupation.Skills))), matched
}

// computeKeywordBonus returns keywordBonus when any of the first
// keywordScanLimit vocabulary tokens is a substring of the lower-cased context.
func computeKeywordBonus(occupation *types.Occupation, loweredContext string) float64 {
	if loweredContext == "" {
		return 0
	}
	for i, kw := range occupation.Skills {
		if i >= keywordScanLimit {
			break
		}
		if kw != "" && strings.Contains(loweredContext, kw) {
			return keywordBonus
		}
	}
	return 0
}
