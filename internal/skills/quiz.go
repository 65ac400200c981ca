package skills

import (
	"sort"
	"strings"

	"github.com/jonathan/career-roadmap/internal/types"
)

// maxQuizSkills caps how many quiz-derived skills are kept.
const maxQuizSkills = 8

// quizClusters maps a quiz answer type to the skills it indicates.
var quizClusters = map[string][]string{
	"A": {"python", "analysis", "sql", "data visualization"},
	"B": {"communication", "teaching", "empathy", "presentation"},
	"C": {"design", "creativity", "ui/ux", "writing"},
	"D": {"project management", "organization", "planning", "leadership"},
}

// DeriveFromQuiz tallies the skills indicated by each answer and returns up
// to 8 of them by descending count. Equal counts keep first-seen order.
// Answer types are case-insensitive; unknown types contribute nothing.
func DeriveFromQuiz(answers []types.QuizAnswer) []string {
	counts := make(map[string]int)
	var order []string

	for _, a := range answers {
		for _, sk := range quizClusters[strings.ToUpper(strings.TrimSpace(a.Type))] {
			if _, seen := counts[sk]; !seen {
				order = append(order, sk)
			}
			counts[sk]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > maxQuizSkills {
		order = order[:maxQuizSkills]
	}
	if order == nil {
		return []string{}
	}
	return order
}
