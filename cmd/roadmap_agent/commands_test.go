package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-roadmap/internal/enrichment"
	"github.com/jonathan/career-roadmap/internal/ingestion"
	"github.com/jonathan/career-roadmap/internal/types"
)

func TestParseAnswers(t *testing.T) {
	answers := parseAnswers([]string{"a", " B ", "", "d"})
	assert.Equal(t, []types.QuizAnswer{{Type: "A"}, {Type: "B"}, {Type: "D"}}, answers)
	assert.Empty(t, parseAnswers(nil))
}

func TestOrDefault(t *testing.T) {
	assert.Equal(t, "x", orDefault("x", "y"))
	assert.Equal(t, "y", orDefault("", "y"))
}

func setGenerateFlags(t *testing.T, skills, answers []string, asJSON, noExport bool) {
	t.Helper()
	prevSkills, prevAnswers, prevJSON, prevNoExport := genSkills, genAnswers, genJSON, genNoExport
	genSkills, genAnswers, genJSON, genNoExport = skills, answers, asJSON, noExport
	t.Cleanup(func() {
		genSkills, genAnswers, genJSON, genNoExport = prevSkills, prevAnswers, prevJSON, prevNoExport
	})
}

func TestBuildRequest_RejectsUnknownAnswer(t *testing.T) {
	setGenerateFlags(t, nil, []string{"E"}, false, true)

	_, err := buildRequest()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid profile")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	prev := configPath
	configPath = filepath.Join(t.TempDir(), "missing.yaml")
	t.Cleanup(func() { configPath = prev })

	_, err := loadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRunGenerate_JSON(t *testing.T) {
	dir := t.TempDir()
	writeTestConfig(t, dir, filepath.Join(dir, "data", "careers.json"))
	setGenerateFlags(t, []string{"SQL", "Python"}, []string{"A"}, true, true)

	cmd, buf := testCommand()
	require.NoError(t, runGenerate(cmd, nil))

	var out types.Output
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.NotEmpty(t, out.ChosenCareer)
	assert.Len(t, out.Roadmaps, 3)
	assert.Contains(t, out.DerivedSkills, "sql")

	// the index is built on first use and persisted
	assert.FileExists(t, filepath.Join(dir, "embeddings", "index.json"))
	assert.NoFileExists(t, filepath.Join(dir, "latest.json"))
}

func TestRunGenerate_Export(t *testing.T) {
	dir := t.TempDir()
	writeTestConfig(t, dir, filepath.Join(dir, "data", "careers.json"))
	setGenerateFlags(t, []string{"SQL", "Python"}, nil, false, false)

	cmd, buf := testCommand()
	require.NoError(t, runGenerate(cmd, nil))

	assert.Contains(t, buf.String(), "CAREER MATCH")
	assert.Contains(t, buf.String(), "EXPORT")
	assert.FileExists(t, filepath.Join(dir, "latest.json"))
}

func TestRunBuildIndex(t *testing.T) {
	dir := t.TempDir()
	writeTestConfig(t, dir, filepath.Join(dir, "data", "careers.json"))

	cmd, buf := testCommand()
	require.NoError(t, runBuildIndex(cmd, nil))
	assert.Contains(t, buf.String(), "Index ready")
	assert.FileExists(t, filepath.Join(dir, "embeddings", "index.json"))
}

func TestRunIngest(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "data", "careers.json")
	writeTestConfig(t, dir, out)

	onetDir := filepath.Join(dir, "data", "onet")
	require.NoError(t, os.MkdirAll(onetDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(onetDir, "Skills.txt"), []byte(
		"O*NET-SOC Code\tTitle\tElement ID\tElement Name\n"+
			"15-2051.00\tData Scientists\t2.A.1.a\tCritical Thinking\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(onetDir, "Task Statements.txt"), []byte(
		"O*NET-SOC Code\tTitle\tTask ID\tTask\n"+
			"15-2051.00\tData Scientists\t1\tApply statistical methods to data.\n"), 0644))

	cmd, buf := testCommand()
	require.NoError(t, runIngest(cmd, nil))
	assert.Contains(t, buf.String(), "Wrote 1 careers")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var occupations []types.Occupation
	require.NoError(t, json.Unmarshal(data, &occupations))
	require.Len(t, occupations, 1)
	assert.Equal(t, "Data Scientists", occupations[0].Name)
	assert.Equal(t, []string{"critical thinking"}, occupations[0].Skills)
	assert.FileExists(t, ingestion.ManifestPath(out))
}

func TestRunEnrich(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "careers.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"career":"Data Analyst","skills":["sql","excel"]}]`), 0644))
	writeTestConfig(t, dir, path)

	cmd, buf := testCommand()
	require.NoError(t, runEnrich(cmd, nil))
	assert.Contains(t, buf.String(), "Enriched 1 careers")
	assert.FileExists(t, enrichment.BackupPath(path))
}
