package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/career-roadmap/internal/types"
)

func answers(kinds ...string) []types.QuizAnswer {
	out := make([]types.QuizAnswer, len(kinds))
	for i, k := range kinds {
		out[i] = types.QuizAnswer{Type: k}
	}
	return out
}

func TestDeriveFromQuiz(t *testing.T) {
	tests := []struct {
		name    string
		answers []types.QuizAnswer
		want    []string
	}{
		{"no answers", nil, []string{}},
		{
			name:    "single answer",
			answers: answers("A"),
			want:    []string{"python", "analysis", "sql", "data visualization"},
		},
		{
			name:    "higher tally first, ties keep first-seen order",
			answers: answers("B", "a", "A"),
			want: []string{
				"python", "analysis", "sql", "data visualization",
				"communication", "teaching", "empathy", "presentation",
			},
		},
		{
			name:    "capped at eight",
			answers: answers("A", "B", "C"),
			want: []string{
				"python", "analysis", "sql", "data visualization",
				"communication", "teaching", "empathy", "presentation",
			},
		},
		{"unknown types ignored", answers("E", "", "z"), []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveFromQuiz(tt.answers))
		})
	}
}
