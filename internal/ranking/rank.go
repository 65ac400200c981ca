// Package ranking scores reference occupations against a resolved skill set.
package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/career-roadmap/internal/types"
)

// MatchScore pairs an occupation with its score for one matching pass.
type MatchScore struct {
	Occupation    types.Occupation
	Score         float64
	Overlap       float64
	KeywordBonus  float64
	MatchedSkills []string
	Notes         string
}

// ScoreOccupations scores every occupation and returns them by descending
// score. Equal scores keep corpus order.
func ScoreOccupations(skills []string, context string, occupations []types.Occupation) []MatchScore {
	skillSet := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		skillSet[s] = struct{}{}
	}
	loweredContext := strings.ToLower(context)

	scores := make([]MatchScore, 0, len(occupations))
	for i := range occupations {
		o := &occupations[i]
		overlap, matched := computeSkillOverlapScore(o, skillSet)
		bonus := computeKeywordBonus(o, loweredContext)

		scores = append(scores, MatchScore{
			Occupation:    *o,
			Score:         overlap + bonus,
			Overlap:       overlap,
			KeywordBonus:  bonus,
			MatchedSkills: matched,
			Notes:         generateNotes(overlap, bonus, matched),
		})
	}

	// Sort by score (descending)
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	return scores
}

// SelectBest returns the highest scoring occupation, preferring the earliest
// in corpus order on ties. An empty corpus yields ErrEmptyCorpus.
func SelectBest(skills []string, context string, occupations []types.Occupation) (*MatchScore, error) {
	if len(occupations) == 0 {
		return nil, ErrEmptyCorpus
	}
	scores := ScoreOccupations(skills, context, occupations)
	return &scores[0], nil
}

// generateNotes creates a brief explanation of the match.
func generateNotes(overlap, bonus float64, matchedSkills []string) string {
	var parts []string

	switch {
	case len(matchedSkills) == 0:
		parts = append(parts, "No skill matches")
	case overlap >= 0.7:
		parts = append(parts, fmt.Sprintf("Strong skill match (%s)", strings.Join(matchedSkills, ", ")))
	case overlap >= 0.4:
		parts = append(parts, fmt.Sprintf("Moderate skill match (%s)", strings.Join(matchedSkills, ", ")))
	default:
		parts = append(parts, fmt.Sprintf("Weak skill match (%s)", strings.Join(matchedSkills, ", ")))
	}

	if bonus > 0 {
		parts = append(parts, "summary mentions a core skill")
	}

	return strings.Join(parts, "; ")
}
