package corpus

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-roadmap/internal/types"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "careers.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_List(t *testing.T) {
	path := writeFile(t, `[
		{"career": "Data Analyst", "skills": [" Python", "SQL", "python", ""], "tasks": [" Build dashboards ", ""]},
		{"title": "Nurse", "skills": ["empathy"], "description": " Care for patients. "}
	]`)

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	analyst := c.Occupations()[0]
	assert.Equal(t, "Data Analyst", analyst.Name)
	assert.Equal(t, []string{"python", "sql"}, analyst.Skills)
	assert.Equal(t, []string{"Build dashboards"}, analyst.Tasks)
	assert.Empty(t, analyst.Education)

	nurse := c.Occupations()[1]
	assert.Equal(t, "Nurse", nurse.Name)
	assert.Equal(t, "Care for patients.", nurse.Description)

	assert.Equal(t, []string{"empathy", "python", "sql"}, c.Vocabulary())
}

func TestLoad_WrappedObject(t *testing.T) {
	path := writeFile(t, `{"careers": [{"label": "Welder", "skills": ["welding"]}]}`)

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "Welder", c.Occupations()[0].Name)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
		wantIs  error
	}{
		{"empty file", "  \n", "careers data is empty", ErrEmptyData},
		{"empty list", "[]", "careers data contains no occupations", ErrNoOccupations},
		{"empty wrapped list", `{"careers": []}`, "careers data contains no occupations", ErrNoOccupations},
		{"invalid json", "[{", "failed to unmarshal JSON", nil},
		{"missing name", `[{"skills": ["sql"]}]`, "has no name", nil},
		{"duplicate name", `[{"career": "A"}, {"career": "A"}]`, "duplicate occupation", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			require.Error(t, err)

			var le *LoadError
			require.True(t, errors.As(err, &le))
			assert.Contains(t, err.Error(), tt.wantMsg)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			} else {
				assert.False(t, isMissingOrEmpty(err))
			}
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadOrBuiltin(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.json")

	t.Run("missing file falls back when allowed", func(t *testing.T) {
		var buf bytes.Buffer
		c, err := LoadOrBuiltin(missing, true, zerolog.New(&buf))
		require.NoError(t, err)
		assert.Equal(t, 2, c.Len())
		assert.Contains(t, buf.String(), "using built-in corpus")
	})

	t.Run("empty file falls back when allowed", func(t *testing.T) {
		c, err := LoadOrBuiltin(writeFile(t, ""), true, zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, "Data Analyst", c.Occupations()[0].Name)
	})

	t.Run("empty list falls back when allowed", func(t *testing.T) {
		c, err := LoadOrBuiltin(writeFile(t, `{"careers": []}`), true, zerolog.Nop())
		require.NoError(t, err)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("unnamed occupation is always fatal", func(t *testing.T) {
		_, err := LoadOrBuiltin(writeFile(t, `[{"skills": ["sql"]}]`), true, zerolog.Nop())
		assert.Error(t, err)
	})

	t.Run("missing file is fatal when disallowed", func(t *testing.T) {
		_, err := LoadOrBuiltin(missing, false, zerolog.Nop())
		assert.Error(t, err)
	})

	t.Run("malformed file is always fatal", func(t *testing.T) {
		_, err := LoadOrBuiltin(writeFile(t, "{not json"), true, zerolog.Nop())
		assert.Error(t, err)
	})
}

type fakeStore struct {
	occupations []types.Occupation
	err         error
}

func (f fakeStore) ListOccupations(context.Context) ([]types.Occupation, error) {
	return f.occupations, f.err
}

func TestLoadStore(t *testing.T) {
	c, err := LoadStore(context.Background(), fakeStore{occupations: []types.Occupation{
		{Name: "Data Analyst", Skills: []string{"SQL", "Python"}},
	}})
	require.NoError(t, err)
	assert.Equal(t, []string{"sql", "python"}, c.Occupations()[0].Skills)
	assert.Equal(t, []string{"python", "sql"}, c.Vocabulary())

	_, err = LoadStore(context.Background(), fakeStore{err: errors.New("connection refused")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	_, err = LoadStore(context.Background(), fakeStore{})
	assert.Error(t, err)
}

func TestWriteThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "careers.json")
	require.NoError(t, Write(path, Builtin().Occupations()))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Builtin().Occupations(), c.Occupations())
}

func TestCorpus_Find(t *testing.T) {
	c := Builtin()
	o, ok := c.Find("Frontend Developer")
	require.True(t, ok)
	assert.Equal(t, []string{"javascript", "react", "html", "css"}, o.Skills)

	_, ok = c.Find("frontend developer")
	assert.False(t, ok, "names are case-sensitive")
}
