package corpus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jonathan/career-roadmap/internal/types"
)

// record is the on-disk shape of one occupation. Older datasets name the
// occupation under "title" or "label" instead of "career".
type record struct {
	Career      string   `json:"career"`
	Title       string   `json:"title"`
	Label       string   `json:"label"`
	Skills      []string `json:"skills"`
	Tasks       []string `json:"tasks"`
	Education   []string `json:"education"`
	Description string   `json:"description"`
}

func (r record) name() string {
	for _, n := range []string{r.Career, r.Title, r.Label} {
		if n = strings.TrimSpace(n); n != "" {
			return n
		}
	}
	return ""
}

// Load reads a careers file. The file holds either a JSON list of
// occupations or an object with a "careers" list.
func Load(path string) (*Corpus, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	return Parse(content)
}

// Parse decodes and normalizes careers JSON.
func Parse(content []byte) (*Corpus, error) {
	content = bytes.TrimSpace(content)
	if len(content) == 0 {
		return nil, &LoadError{Message: "nothing to load", Cause: ErrEmptyData}
	}

	var records []record
	if content[0] == '{' {
		var wrapped struct {
			Careers []record `json:"careers"`
		}
		if err := json.Unmarshal(content, &wrapped); err != nil {
			return nil, &LoadError{Message: "failed to unmarshal JSON", Cause: err}
		}
		records = wrapped.Careers
	} else if err := json.Unmarshal(content, &records); err != nil {
		return nil, &LoadError{Message: "failed to unmarshal JSON", Cause: err}
	}

	occupations := make([]types.Occupation, 0, len(records))
	for _, r := range records {
		occupations = append(occupations, types.Occupation{
			Name:        r.name(),
			Skills:      r.Skills,
			Tasks:       r.Tasks,
			Education:   r.Education,
			Description: r.Description,
		})
	}

	normalized, err := Normalize(occupations)
	if err != nil {
		return nil, err
	}
	if len(normalized) == 0 {
		return nil, &LoadError{Message: "nothing to load", Cause: ErrNoOccupations}
	}
	return New(normalized), nil
}

// Normalize trims and lower-cases skills, drops blanks and duplicate skills,
// and trims tasks and education. Empty or duplicate occupation names are an error.
func Normalize(occupations []types.Occupation) ([]types.Occupation, error) {
	names := make(map[string]struct{}, len(occupations))
	out := make([]types.Occupation, 0, len(occupations))

	for i, o := range occupations {
		name := strings.TrimSpace(o.Name)
		if name == "" {
			return nil, &LoadError{Message: fmt.Sprintf("occupation %d has no name", i)}
		}
		if _, dup := names[name]; dup {
			return nil, &LoadError{Message: fmt.Sprintf("duplicate occupation %q", name)}
		}
		names[name] = struct{}{}

		out = append(out, types.Occupation{
			Name:        name,
			Skills:      normalizeSkills(o.Skills),
			Tasks:       trimAll(o.Tasks),
			Education:   trimAll(o.Education),
			Description: strings.TrimSpace(o.Description),
		})
	}
	return out, nil
}

func normalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// LoadOrBuiltin loads path, falling back to Builtin when the file is missing
// or empty and allowBuiltin is set. Malformed data is always an error.
func LoadOrBuiltin(path string, allowBuiltin bool, log zerolog.Logger) (*Corpus, error) {
	c, err := Load(path)
	if err == nil {
		log.Info().Str("path", path).Int("occupations", c.Len()).Msg("corpus loaded")
		return c, nil
	}
	if !allowBuiltin || !isMissingOrEmpty(err) {
		return nil, err
	}
	log.Warn().Err(err).Str("path", path).Msg("using built-in corpus")
	return Builtin(), nil
}

func isMissingOrEmpty(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, ErrEmptyData) || errors.Is(err, ErrNoOccupations)
}

// OccupationLister is the storage dependency of LoadStore.
type OccupationLister interface {
	ListOccupations(ctx context.Context) ([]types.Occupation, error)
}

// LoadStore reads the corpus from a database store, normalizing it the same
// way as the file loader.
func LoadStore(ctx context.Context, store OccupationLister) (*Corpus, error) {
	occupations, err := store.ListOccupations(ctx)
	if err != nil {
		return nil, &LoadError{Message: "failed to read occupations from store", Cause: err}
	}
	normalized, err := Normalize(occupations)
	if err != nil {
		return nil, err
	}
	if len(normalized) == 0 {
		return nil, &LoadError{Message: "nothing to load", Cause: ErrNoOccupations}
	}
	return New(normalized), nil
}

// Write stores occupations as an indented JSON list.
func Write(path string, occupations []types.Occupation) error {
	data, err := json.MarshalIndent(occupations, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal careers: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write careers file %s: %w", path, err)
	}
	return nil
}
