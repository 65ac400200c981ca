package ranking

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-roadmap/internal/types"
)

func testCorpus() []types.Occupation {
	return []types.Occupation{
		{Name: "Data Analyst", Skills: []string{"python", "sql", "data visualization", "pandas"}},
		{Name: "Frontend Developer", Skills: []string{"javascript", "react", "html", "css"}},
		{Name: "Data Engineer", Skills: []string{"python", "sql", "spark", "airflow", "kafka", "scala", "dbt", "docker"}},
	}
}

func TestSelectBest_DataAnalyst(t *testing.T) {
	best, err := SelectBest([]string{"python", "sql"}, "", testCorpus())
	require.NoError(t, err)
	assert.Equal(t, "Data Analyst", best.Occupation.Name)
	assert.InDelta(t, 0.5, best.Score, 1e-9)
	assert.Equal(t, []string{"python", "sql"}, best.MatchedSkills)
	assert.Contains(t, best.Notes, "Moderate skill match")
}

func TestSelectBest_EmptyCorpus(t *testing.T) {
	best, err := SelectBest([]string{"python"}, "", nil)
	assert.Nil(t, best)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyCorpus))

	var cfgErr *ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestSelectBest_TieGoesToCorpusOrder(t *testing.T) {
	corpus := []types.Occupation{
		{Name: "First", Skills: []string{"a", "b"}},
		{Name: "Second", Skills: []string{"a", "c"}},
	}
	for i := 0; i < 10; i++ {
		best, err := SelectBest([]string{"a"}, "", corpus)
		require.NoError(t, err)
		assert.Equal(t, "First", best.Occupation.Name)
	}

	// Zero scores everywhere still pick the first occupation
	best, err := SelectBest(nil, "", corpus)
	require.NoError(t, err)
	assert.Equal(t, "First", best.Occupation.Name)
}

func TestScoreOccupations_KeywordBonus(t *testing.T) {
	scores := ScoreOccupations(nil, "I love building things in REACT", testCorpus())
	require.Len(t, scores, 3)
	assert.Equal(t, "Frontend Developer", scores[0].Occupation.Name)
	assert.InDelta(t, 0.2, scores[0].Score, 1e-9)
	assert.Contains(t, scores[0].Notes, "summary mentions a core skill")
}

func TestScoreOccupations_KeywordScanStopsAtFive(t *testing.T) {
	// "scala" is the sixth vocabulary token of Data Engineer
	scores := ScoreOccupations(nil, "scala", testCorpus())
	for _, s := range scores {
		assert.Zero(t, s.KeywordBonus, s.Occupation.Name)
	}

	// "kafka" is the fifth
	scores = ScoreOccupations(nil, "kafka", testCorpus())
	assert.Equal(t, "Data Engineer", scores[0].Occupation.Name)
	assert.InDelta(t, 0.2, scores[0].KeywordBonus, 1e-9)
}

func TestScoreOccupations_EmptyVocabulary(t *testing.T) {
	scores := ScoreOccupations([]string{"python"}, "python", []types.Occupation{{Name: "Empty"}})
	require.Len(t, scores, 1)
	assert.Zero(t, scores[0].Score)
	assert.Equal(t, "No skill matches", scores[0].Notes)
}

func TestScoreOccupations_Monotonic(t *testing.T) {
	corpus := testCorpus()
	rank := func(skills []string, name string) int {
		for i, s := range ScoreOccupations(skills, "", corpus) {
			if s.Occupation.Name == name {
				return i
			}
		}
		t.Fatalf("%s not scored", name)
		return -1
	}

	prev := rank(nil, "Frontend Developer")
	skills := []string{}
	for _, s := range []string{"javascript", "react", "html", "css"} {
		skills = append(skills, s)
		r := rank(skills, "Frontend Developer")
		assert.LessOrEqual(t, r, prev, "adding %s must not lower the rank", s)
		prev = r
	}
	assert.Equal(t, 0, prev)
}
