package enrichment

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-roadmap/internal/types"
)

func TestRecommendEducation(t *testing.T) {
	tests := []struct {
		name   string
		skills []string
		want   []string
	}{
		{"analytical", []string{"Statistics", "sql"}, []string{Bachelor, Master}},
		{"teaching", []string{"staff training"}, []string{Bachelor, Certificate}},
		{"trade", []string{"welding"}, []string{Certificate, Associate}},
		{"default", []string{"sales"}, []string{Certificate, Bachelor}},
		{"none", nil, []string{Certificate, Bachelor}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecommendEducation(tt.skills))
		})
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Keep me", Describe("data analyst", []string{"sql"}, "Keep me"))
	assert.Equal(t,
		"Data analyst typically involves working with sql, python and applying sql to deliver job outcomes.",
		Describe("data analyst", []string{"sql", "python"}, "  "))
	assert.Equal(t,
		"Ux designer focuses on designer and related skills to achieve role objectives.",
		Describe("UX Designer", nil, ""))
}

func TestPrimarySkill(t *testing.T) {
	assert.Equal(t, "sql", primarySkill([]string{"manage large scale data pipelines", "sql"}, "x"))
	assert.Equal(t, "a b c d", primarySkill([]string{"a b c d"}, "x"))
	assert.Equal(t, "core skills", primarySkill(nil, "UX"))
}

func TestTasks_DeterministicAndCapped(t *testing.T) {
	all := []string{HighSchool, Certificate, Associate, Bachelor, Master, PhD}
	first := Tasks("data analyst", []string{"sql"}, all)
	second := Tasks("data analyst", []string{"sql"}, all)

	assert.Equal(t, first, second)
	assert.Len(t, first, maxTasks)
	seen := map[string]bool{}
	for _, task := range first {
		assert.False(t, seen[task], "duplicate task %q", task)
		seen[task] = true
		assert.NotContains(t, task, "{")
	}
}

func TestTasks_IncludesGeneralTasks(t *testing.T) {
	tasks := Tasks("nurse", []string{"patient care"}, []string{Certificate})

	assert.LessOrEqual(t, len(tasks), 5)
	assert.Contains(t, tasks, "Build a public portfolio showcasing projects related to nurse")
	assert.Contains(t, tasks, "Set short-term learning goals and review progress every month")
}

func TestEnrich_KeepsExistingEducation(t *testing.T) {
	occ := Enrich(types.Occupation{Name: "Researcher", Skills: []string{"research"}, Education: []string{PhD}})

	assert.Equal(t, []string{PhD}, occ.Education)
	assert.NotEmpty(t, occ.Description)
	assert.NotEmpty(t, occ.Tasks)
}

func writeCareers(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "careers.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestEnrichFile_ListAndBackup(t *testing.T) {
	original := `[{"career":"data analyst","skills":["sql","statistics"],"salary":"n/a"},{"title":"Welder","skills":["welding",3]}]`
	path := writeCareers(t, original)

	res, err := EnrichFile(path, zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, res.BackupCreated)
	assert.Equal(t, 2, res.Updated)
	require.Len(t, res.Examples, 2)
	assert.Equal(t, "Welder", res.Examples[1].Name)

	backup, err := os.ReadFile(BackupPath(path))
	require.NoError(t, err)
	assert.Equal(t, original, string(backup))

	var out []map[string]any
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out, 2)
	assert.Equal(t, "n/a", out[0]["salary"])
	assert.Equal(t, []any{Bachelor, Master}, out[0]["education"])
	assert.Equal(t, []any{Certificate, Associate}, out[1]["education"])
	assert.NotEmpty(t, out[1]["tasks"])
}

func TestEnrichFile_RerunIsStable(t *testing.T) {
	path := writeCareers(t, `{"careers":[{"career":"nurse","skills":["patient care"]}],"version":2}`)

	_, err := EnrichFile(path, zerolog.Nop())
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	res, err := EnrichFile(path, zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, res.BackupCreated)
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	var out struct {
		Careers []types.Occupation `json:"careers"`
		Version int                `json:"version"`
	}
	require.NoError(t, json.Unmarshal(second, &out))
	assert.Equal(t, 2, out.Version)
	require.Len(t, out.Careers, 1)
	assert.NotEmpty(t, out.Careers[0].Description)
}

func TestEnrichFile_Missing(t *testing.T) {
	_, err := EnrichFile(filepath.Join(t.TempDir(), "careers.json"), zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "careers file not found")
}
