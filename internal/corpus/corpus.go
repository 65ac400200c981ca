// Package corpus provides the read-only reference catalog of occupations.
package corpus

import (
	"sort"

	"github.com/jonathan/career-roadmap/internal/types"
)

// Corpus is an immutable, ordered set of occupations. It is safe for
// concurrent use once constructed.
type Corpus struct {
	occupations []types.Occupation
	vocabulary  []string
}

// New wraps already-normalized occupations. Order is preserved.
func New(occupations []types.Occupation) *Corpus {
	c := &Corpus{occupations: occupations}
	c.vocabulary = buildVocabulary(occupations)
	return c
}

// Occupations returns the occupations in corpus order. Callers must not modify them.
func (c *Corpus) Occupations() []types.Occupation {
	return c.occupations
}

// Len returns the number of occupations.
func (c *Corpus) Len() int {
	return len(c.occupations)
}

// Vocabulary returns the sorted distinct skill tokens across all occupations.
func (c *Corpus) Vocabulary() []string {
	return c.vocabulary
}

// Find returns the occupation with the given name.
func (c *Corpus) Find(name string) (types.Occupation, bool) {
	for _, o := range c.occupations {
		if o.Name == name {
			return o, true
		}
	}
	return types.Occupation{}, false
}

func buildVocabulary(occupations []types.Occupation) []string {
	seen := make(map[string]struct{})
	vocab := make([]string, 0)
	for _, o := range occupations {
		for _, s := range o.Skills {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			vocab = append(vocab, s)
		}
	}
	sort.Strings(vocab)
	return vocab
}

// Builtin returns the two-occupation corpus used when no dataset is available.
func Builtin() *Corpus {
	return New([]types.Occupation{
		{
			Name:        "Data Analyst",
			Skills:      []string{"python", "sql", "data visualization", "pandas"},
			Tasks:       []string{},
			Education:   []string{"bachelor's"},
			Description: "Analyze data.",
		},
		{
			Name:        "Frontend Developer",
			Skills:      []string{"javascript", "react", "html", "css"},
			Tasks:       []string{},
			Education:   []string{"bootcamp", "self-taught"},
			Description: "Build web UI.",
		},
	})
}
